package buildargs

import (
	"fmt"
	"io"

	"github.com/neptaco/unibuild/pkg/exitcode"
)

// Requirement is one entry of the validation table
type Requirement struct {
	Flag string
	// Code is the exit code when the flag is missing
	Code int
	// Check validates a present value. It returns the exit code and message
	// for an invalid value, or 0 when the value is acceptable.
	Check func(value string) (int, string)
}

// RequiredFlags is checked in order; the first unmet requirement wins.
var RequiredFlags = []Requirement{
	{Flag: FlagProjectPath, Code: exitcode.MissingProjectPath},
	{Flag: FlagBuildTarget, Code: exitcode.MissingBuildTarget, Check: checkBuildTarget},
	{Flag: FlagCustomBuildPath, Code: exitcode.MissingCustomBuildPath},
}

func checkBuildTarget(value string) (int, string) {
	if IsBuildTarget(value) {
		return 0, ""
	}
	return exitcode.InvalidBuildTarget, fmt.Sprintf("%s is not a defined BuildTarget", value)
}

// ValidationError reports the first unmet requirement
type ValidationError struct {
	Flag    string
	Code    int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) ExitCode() int {
	return e.Code
}

// Validate checks opts against RequiredFlags and defaults customBuildName.
// It returns a copy of opts; the input is never modified. Diagnostics go to
// out, which may be nil.
func Validate(opts Options, out io.Writer) (Options, error) {
	if out == nil {
		out = io.Discard
	}

	for _, req := range RequiredFlags {
		if !opts.Has(req.Flag) {
			msg := fmt.Sprintf("Missing argument -%s", req.Flag)
			_, _ = fmt.Fprintln(out, msg)
			return nil, &ValidationError{Flag: req.Flag, Code: req.Code, Message: msg}
		}
		if req.Check == nil {
			continue
		}
		if code, msg := req.Check(opts.Get(req.Flag)); code != 0 {
			_, _ = fmt.Fprintln(out, msg)
			return nil, &ValidationError{Flag: req.Flag, Code: code, Message: msg}
		}
	}

	validated := opts.Clone()
	if validated.CustomBuildName() == "" {
		_, _ = fmt.Fprintf(out, "Missing argument -%s, defaulting to %s.\n", FlagCustomBuildName, DefaultBuildName)
		validated[FlagCustomBuildName] = DefaultBuildName
	}

	writeBanner(out, "Using settings")
	for _, name := range validated.Names() {
		_, _ = fmt.Fprintf(out, "%s: %s\n", name, DisplayValue(name, validated[name]))
	}
	_, _ = fmt.Fprintln(out)

	return validated, nil
}

// ParseAndValidate runs Parse followed by Validate
func ParseAndValidate(tokens []string, out io.Writer) (Options, error) {
	return Validate(Parse(tokens, out), out)
}
