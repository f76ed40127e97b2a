// Package exitcode defines the process exit statuses reported to the CI
// orchestrator and maps build outcomes onto them.
package exitcode

import (
	"errors"
	"fmt"
)

const (
	Success                = 0
	Generic                = 1
	BuildFailed            = 101
	BuildCancelled         = 102
	BuildUnknown           = 103
	MissingProjectPath     = 110
	MissingBuildTarget     = 120
	InvalidBuildTarget     = 121
	MissingCustomBuildPath = 130
)

// BuildResult is the outcome reported by the player build pipeline
type BuildResult string

const (
	ResultSucceeded BuildResult = "Succeeded"
	ResultFailed    BuildResult = "Failed"
	ResultCancelled BuildResult = "Cancelled"
	ResultUnknown   BuildResult = "Unknown"
)

// ForResult returns the exit code for a build outcome
func ForResult(result BuildResult) int {
	switch result {
	case ResultSucceeded:
		return Success
	case ResultFailed:
		return BuildFailed
	case ResultCancelled:
		return BuildCancelled
	default:
		return BuildUnknown
	}
}

// ResultForCode is the inverse of ForResult for the build codes. ok is false
// for codes that do not describe a build outcome.
func ResultForCode(code int) (BuildResult, bool) {
	switch code {
	case Success:
		return ResultSucceeded, true
	case BuildFailed:
		return ResultFailed, true
	case BuildCancelled:
		return ResultCancelled, true
	case BuildUnknown:
		return ResultUnknown, true
	default:
		return "", false
	}
}

// Coder is implemented by errors that carry their own exit code
type Coder interface {
	ExitCode() int
}

// Error attaches an exit code to an error
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) ExitCode() int { return e.Code }

// New wraps err with code
func New(code int, err error) *Error {
	return &Error{Code: code, Err: err}
}

// FromResult returns nil for a successful build and an *Error otherwise
func FromResult(result BuildResult) error {
	code := ForResult(result)
	if code == Success {
		return nil
	}
	return New(code, fmt.Errorf("build %s", describe(result)))
}

func describe(result BuildResult) string {
	switch result {
	case ResultFailed:
		return "failed"
	case ResultCancelled:
		return "was cancelled"
	default:
		return "finished with an unknown result"
	}
}

// Code returns the exit code for err: Success for nil, the carried code for
// a Coder anywhere in the chain, Generic otherwise.
func Code(err error) int {
	if err == nil {
		return Success
	}
	var c Coder
	if errors.As(err, &c) {
		return c.ExitCode()
	}
	return Generic
}
