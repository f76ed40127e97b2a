package logger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/neptaco/unibuild/pkg/exitcode"
)

// Logger consumes Unity editor output line by line. It is an io.Writer so it
// can be attached to exec.Cmd.Stdout/Stderr.
type Logger struct {
	file         *os.File
	out          io.Writer
	ciMode       bool
	showTime     bool
	warnings     int
	errors       int
	result       exitcode.BuildResult
	mutex        sync.Mutex
	pipeReader   *io.PipeReader
	pipeWriter   *io.PipeWriter
	done         chan struct{}
	formatter    *Formatter
	redactor     *Redactor
	currentGroup NoiseCategory // active ::group:: in CI mode
}

type LoggerOption func(*Logger)

func WithCIMode(ci bool) LoggerOption {
	return func(l *Logger) {
		l.ciMode = ci
	}
}

func WithFormatter(f *Formatter) LoggerOption {
	return func(l *Logger) {
		l.formatter = f
	}
}

func WithShowTime(show bool) LoggerOption {
	return func(l *Logger) {
		l.showTime = show
	}
}

// WithOutput sets the console destination (default os.Stdout)
func WithOutput(w io.Writer) LoggerOption {
	return func(l *Logger) {
		l.out = w
	}
}

// WithRedactor masks secrets in both console and file output
func WithRedactor(r *Redactor) LoggerOption {
	return func(l *Logger) {
		l.redactor = r
	}
}

// NewWithOptions creates a Logger. When logFile is set (and not "-") every
// line is also copied, uncolored, to that file.
func NewWithOptions(logFile string, opts ...LoggerOption) *Logger {
	l := &Logger{
		formatter: NewFormatter(),
		out:       os.Stdout,
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(l)
	}

	if logFile != "" && logFile != "-" {
		file, err := os.Create(logFile)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Failed to create log file %s: %v\n", logFile, err)
		} else {
			l.file = file
		}
	}

	l.pipeReader, l.pipeWriter = io.Pipe()

	go l.processLogs()

	return l
}

func (l *Logger) Write(p []byte) (n int, err error) {
	return l.pipeWriter.Write(p)
}

func (l *Logger) processLogs() {
	defer close(l.done)

	// No line length limit: a huge line must not hide the lines after it
	reader := bufio.NewReader(l.pipeReader)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			l.ProcessLine(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			return
		}
	}
}

// ProcessLine handles a single log line
func (l *Logger) ProcessLine(line string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	line = l.redactor.Redact(line)

	level := l.formatter.ClassifyLine(line)
	noiseCategory := l.formatter.GetNoiseCategory(line)

	if noiseCategory == NoiseCategoryNone {
		switch level {
		case LogLevelWarning:
			l.warnings++
		case LogLevelError:
			l.errors++
		case LogLevelBuildResult:
			l.result, _ = l.formatter.BuildResult(line)
		}
	}

	if l.file != nil {
		_, _ = fmt.Fprintln(l.file, line)
	}

	if l.ciMode {
		l.processLineCIMode(line, level, noiseCategory)
	} else {
		l.processLineNormalMode(line)
	}
}

func (l *Logger) processLineCIMode(line string, level LogLevel, noiseCategory NoiseCategory) {
	if level == LogLevelStackTrace && !l.formatter.IsProjectStackTrace(line) {
		return
	}

	if noiseCategory != NoiseCategoryNone {
		if l.currentGroup != noiseCategory {
			l.endGroup()
			l.startGroup(noiseCategory)
		}
		_, _ = fmt.Fprintln(l.out, line)
		return
	}

	l.endGroup()

	switch level {
	case LogLevelError:
		_, _ = fmt.Fprintf(l.out, "::error::%s\n", line)
	case LogLevelWarning:
		_, _ = fmt.Fprintf(l.out, "::warning::%s\n", line)
	case LogLevelBuildResult:
		if l.result == exitcode.ResultSucceeded {
			_, _ = fmt.Fprintf(l.out, "::notice::%s\n", line)
		} else {
			_, _ = fmt.Fprintf(l.out, "::error::%s\n", line)
		}
	default:
		_, _ = fmt.Fprintln(l.out, line)
	}
}

func (l *Logger) processLineNormalMode(line string) {
	if !l.formatter.ShouldShow(line) {
		return
	}

	formatted := l.formatter.FormatLine(line)

	if l.showTime {
		timestamp := time.Now().Format("15:04:05.000")
		_, _ = fmt.Fprintf(l.out, "%s %s\n", l.formatter.Dim("["+timestamp+"]"), formatted)
	} else {
		_, _ = fmt.Fprintln(l.out, formatted)
	}
}

func (l *Logger) startGroup(category NoiseCategory) {
	l.currentGroup = category
	_, _ = fmt.Fprintf(l.out, "::group::%s\n", string(category))
}

func (l *Logger) endGroup() {
	if l.currentGroup != NoiseCategoryNone {
		_, _ = fmt.Fprintln(l.out, "::endgroup::")
		l.currentGroup = NoiseCategoryNone
	}
}

func (l *Logger) GetStats() (warnings, errors int) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.warnings, l.errors
}

// Result returns the build outcome announced in the log, if any
func (l *Logger) Result() (exitcode.BuildResult, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.result, l.result != ""
}

// Close flushes pending lines, prints the warning/error summary and closes
// the log file.
func (l *Logger) Close() error {
	_ = l.pipeWriter.Close()
	<-l.done

	l.mutex.Lock()
	if l.ciMode {
		l.endGroup()
	}
	warnings, errors := l.warnings, l.errors
	l.mutex.Unlock()

	if warnings > 0 || errors > 0 {
		summary := fmt.Sprintf("=== Summary: %d warnings, %d errors ===", warnings, errors)
		switch {
		case l.formatter.noColor:
			_, _ = fmt.Fprintf(l.out, "\n%s\n", summary)
		case errors > 0:
			_, _ = fmt.Fprintf(l.out, "\n%s%s%s\n", ColorRed, summary, ColorReset)
		default:
			_, _ = fmt.Fprintf(l.out, "\n%s%s%s\n", ColorYellow, summary, ColorReset)
		}
	}

	if l.file != nil {
		return l.file.Close()
	}

	return nil
}
