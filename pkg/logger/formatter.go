package logger

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/neptaco/unibuild/pkg/exitcode"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorYellow = "\033[33m"
	ColorGreen  = "\033[32m"
	ColorGray   = "\033[90m"
	ColorBold   = "\033[1m"
)

// LogLevel represents the type of log line
type LogLevel int

const (
	LogLevelNormal LogLevel = iota
	LogLevelWarning
	LogLevelError
	LogLevelStackTrace
	LogLevelNoise
	LogLevelBuildResult
)

// Default max line length before truncation
const DefaultMaxLineLength = 500

// Formatter classifies and colors Unity editor log lines
type Formatter struct {
	noColor        bool
	hideStackTrace bool // Hide non-project stack traces
	maxLineLength  int
	projectPaths   []string
}

// FormatterOption configures a Formatter
type FormatterOption func(*Formatter)

// WithNoColor disables color output
func WithNoColor(noColor bool) FormatterOption {
	return func(f *Formatter) {
		f.noColor = noColor
	}
}

// WithHideStackTrace hides non-project stack trace lines
func WithHideStackTrace(hide bool) FormatterOption {
	return func(f *Formatter) {
		f.hideStackTrace = hide
	}
}

// WithMaxLineLength sets the maximum line length before truncation (0 = no limit)
func WithMaxLineLength(length int) FormatterOption {
	return func(f *Formatter) {
		f.maxLineLength = length
	}
}

// NewFormatter creates a new Formatter
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		projectPaths:  []string{"Assets/", "Packages/"},
		maxLineLength: DefaultMaxLineLength,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Startup and import chatter emitted by every batch build
var noisePatterns = []string{
	"Mono path[",
	"Loading GUID",
	"Refreshing native plugins",
	"Preloading",
	"GI:",
	"Initialize engine version",
	"Compiling shader",
	"UnloadTime:",
	"DisplayProgressbar:",
	"Registering precompiled user dll",
	"Native extension for",
	"Begin MonoManager ReloadAssembly",
	"[Package Manager]",
	"[Licensing::",
	"Domain Reload Profiling:",
	"Start importing",
	"Asset Pipeline Refresh",
}

// buildResultPattern matches the summary line the player build pipeline
// prints once BuildPipeline.BuildPlayer returns.
var buildResultPattern = regexp.MustCompile(`Build Finished, Result: (Success|Failure|Cancelled|Unknown)`)

var errorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\berror\b`),
	regexp.MustCompile(`(?i)exception\b`),
	regexp.MustCompile(`(?i)\bfailed\b`),
	regexp.MustCompile(`(?i)^Assets/.*\.cs\(\d+,\d+\):\s*error`),
}

var warningPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwarning\b`),
	regexp.MustCompile(`(?i)^Assets/.*\.cs\(\d+,\d+\):\s*warning`),
}

// applied after TrimSpace
var stackTracePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^at\s+`),
	regexp.MustCompile(`^\(Filename:`),
	regexp.MustCompile(`^UnityEngine\.\w+.*:`),
	regexp.MustCompile(`^UnityEditor\.\w+.*:`),
	regexp.MustCompile(`^System\.\w+`),
	regexp.MustCompile(`^\w+\.\w+[^:]*:[^(]+\(.*\)$`),
	regexp.MustCompile(`^\w+\.\w+[^:]*:[^(]+\(.*\)\s*\(at`),
	regexp.MustCompile(`^\[0x[0-9a-f]+\]`),
	regexp.MustCompile(`^Rethrow as \w+:`),
}

// BuildResult extracts the build outcome from a summary line
func (f *Formatter) BuildResult(line string) (exitcode.BuildResult, bool) {
	m := buildResultPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	switch m[1] {
	case "Success":
		return exitcode.ResultSucceeded, true
	case "Failure":
		return exitcode.ResultFailed, true
	case "Cancelled":
		return exitcode.ResultCancelled, true
	default:
		return exitcode.ResultUnknown, true
	}
}

// ClassifyLine determines the log level of a line
func (f *Formatter) ClassifyLine(line string) LogLevel {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return LogLevelNormal
	}

	if buildResultPattern.MatchString(trimmed) {
		return LogLevelBuildResult
	}

	// Noise before errors so [Licensing::] lines containing "error" stay gray
	for _, noise := range noisePatterns {
		if strings.Contains(trimmed, noise) {
			return LogLevelNoise
		}
	}

	for _, pattern := range stackTracePatterns {
		if pattern.MatchString(trimmed) {
			return LogLevelStackTrace
		}
	}

	for _, pattern := range errorPatterns {
		if pattern.MatchString(trimmed) {
			return LogLevelError
		}
	}

	for _, pattern := range warningPatterns {
		if pattern.MatchString(trimmed) {
			return LogLevelWarning
		}
	}

	return LogLevelNormal
}

var nonProjectPrefixes = []string{
	"System.",
	"UnityEngine.",
	"UnityEditor.",
	"Mono.",
	"Microsoft.",
}

// IsProjectStackTrace checks if a stack trace line points into the project
func (f *Formatter) IsProjectStackTrace(line string) bool {
	trimmed := strings.TrimSpace(line)

	for _, prefix := range nonProjectPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return false
		}
	}

	if strings.Contains(line, "Library/PackageCache/") {
		return false
	}

	for _, path := range f.projectPaths {
		if strings.Contains(line, path) {
			return true
		}
	}

	return false
}

func (f *Formatter) truncateLine(line string) string {
	if f.maxLineLength > 0 && len(line) > f.maxLineLength {
		return line[:f.maxLineLength] + "..."
	}
	return line
}

// FormatLine formats a log line with appropriate colors
func (f *Formatter) FormatLine(line string) string {
	level := f.ClassifyLine(line)
	line = f.truncateLine(line)

	if f.noColor {
		return line
	}

	switch level {
	case LogLevelError:
		return fmt.Sprintf("%s%s%s%s", ColorBold, ColorRed, line, ColorReset)
	case LogLevelWarning:
		return fmt.Sprintf("%s%s%s", ColorYellow, line, ColorReset)
	case LogLevelStackTrace, LogLevelNoise:
		return fmt.Sprintf("%s%s%s", ColorGray, line, ColorReset)
	case LogLevelBuildResult:
		if result, _ := f.BuildResult(line); result == exitcode.ResultSucceeded {
			return fmt.Sprintf("%s%s%s%s", ColorBold, ColorGreen, line, ColorReset)
		}
		return fmt.Sprintf("%s%s%s%s", ColorBold, ColorRed, line, ColorReset)
	default:
		return line
	}
}

// Dim renders secondary text such as timestamps
func (f *Formatter) Dim(text string) string {
	if f.noColor {
		return text
	}
	return ColorGray + text + ColorReset
}

// ShouldShow returns whether the line should be displayed
func (f *Formatter) ShouldShow(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}

	if f.hideStackTrace && f.ClassifyLine(line) == LogLevelStackTrace {
		return f.IsProjectStackTrace(line)
	}
	return true
}
