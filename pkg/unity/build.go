package unity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/neptaco/unibuild/pkg/buildargs"
	"github.com/neptaco/unibuild/pkg/exitcode"
	"github.com/neptaco/unibuild/pkg/logger"
	"github.com/neptaco/unibuild/pkg/platform"
	"github.com/neptaco/unibuild/pkg/ui"
)

// DefaultBuildMethod is the static editor method that reads the build
// options from the command line and calls BuildPipeline.BuildPlayer.
const DefaultBuildMethod = "UnityBuilderAction.Builder.BuildProject"

const defaultTimeoutSeconds = 3600

// maxVersionCode is the largest versionCode Google Play accepts
const maxVersionCode = 2100000000

// Flags the builder sets itself; user supplied copies are dropped
var reservedFlags = map[string]bool{
	"batchmode":     true,
	"nographics":    true,
	"quit":          true,
	"logFile":       true,
	"executeMethod": true,
	"projectPath":   true,
}

type BuildConfig struct {
	// Options must have passed buildargs.Validate
	Options        buildargs.Options
	Method         string
	LogFile        string
	CIMode         bool
	ShowTimestamp  bool
	NoColor        bool
	FailOnWarning  bool
	TimeoutSeconds int
	// Output receives the formatted editor log (default os.Stdout)
	Output io.Writer
}

type Builder struct {
	project *Project
	editor  *Editor
}

func NewBuilder(project *Project, editor *Editor) *Builder {
	if editor == nil {
		editor = NewEditor(project.UnityVersion)
	}
	return &Builder{
		project: project,
		editor:  editor,
	}
}

// CheckOptions validates the options the editor-side build method parses
// itself, so that a bad value fails before the editor spends minutes starting.
func CheckOptions(opts buildargs.Options) error {
	if opts.Has(buildargs.FlagAndroidVersionCode) {
		raw := opts.Get(buildargs.FlagAndroidVersionCode)
		// Unity reads the value with int.Parse: decimal digits only
		code, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("-%s must be an integer, got %q", buildargs.FlagAndroidVersionCode, raw)
		}
		if code < 1 || code > maxVersionCode {
			return fmt.Errorf("-%s must be between 1 and %d, got %d", buildargs.FlagAndroidVersionCode, maxVersionCode, code)
		}
	}
	return nil
}

// Build runs the player build in the editor and reports its outcome. The
// returned error is only set when the editor could not be run at all; a
// failed or cancelled build is reported through the result.
func (b *Builder) Build(ctx context.Context, config BuildConfig) (exitcode.BuildResult, error) {
	if err := CheckOptions(config.Options); err != nil {
		ui.Error("%v", err)
		return exitcode.ResultFailed, nil
	}

	editorPath, err := b.editor.GetPath()
	if err != nil {
		return exitcode.ResultUnknown, fmt.Errorf("failed to get Unity Editor path: %w", err)
	}

	opts, err := b.prepareOutput(config.Options)
	if err != nil {
		return exitcode.ResultUnknown, err
	}

	args := b.buildArgs(opts, config.Method)

	timeout := config.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	redactor := logger.NewRedactor(buildargs.HiddenValue, opts.SecretValues()...)
	logOpts := []logger.LoggerOption{
		logger.WithCIMode(config.CIMode),
		logger.WithShowTime(config.ShowTimestamp),
		logger.WithRedactor(redactor),
		logger.WithFormatter(logger.NewFormatter(logger.WithNoColor(config.NoColor))),
	}
	if config.Output != nil {
		logOpts = append(logOpts, logger.WithOutput(config.Output))
	}
	log := logger.NewWithOptions(config.LogFile, logOpts...)

	cmd := exec.CommandContext(runCtx, editorPath, args...)
	cmd.Stdout = log
	cmd.Stderr = log
	cmd.Dir = b.project.Path
	// The editor spawns helper processes that may inherit the output pipes
	cmd.WaitDelay = 10 * time.Second

	ui.Debug("Starting Unity build", "path", editorPath, "args", redactor.Redact(strings.Join(args, " ")))

	if err := cmd.Start(); err != nil {
		_ = log.Close()
		return exitcode.ResultUnknown, fmt.Errorf("failed to start Unity: %w", err)
	}

	waitErr := cmd.Wait()
	_ = log.Close()

	result := b.resolveResult(runCtx, log, waitErr)
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		ui.Error("Build timeout after %d seconds", timeout)
	}

	warnings, _ := log.GetStats()
	if result == exitcode.ResultSucceeded && config.FailOnWarning && warnings > 0 {
		ui.Error("Build completed with %d warnings", warnings)
		result = exitcode.ResultFailed
	}

	return result, nil
}

// resolveResult prefers the pipeline's own summary line, then the editor's
// exit code (the build method exits with the build codes), then timeout.
func (b *Builder) resolveResult(ctx context.Context, log *logger.Logger, waitErr error) exitcode.BuildResult {
	if ctx.Err() != nil {
		return exitcode.ResultCancelled
	}

	if result, ok := log.Result(); ok {
		return result
	}

	code := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return exitcode.ResultUnknown
		}
		code = exitErr.ExitCode()
	}

	if result, ok := exitcode.ResultForCode(code); ok {
		return result
	}
	ui.Debug("Unity exited with an unrecognized code", "code", code)
	return exitcode.ResultUnknown
}

// prepareOutput makes customBuildPath absolute and creates the directory the
// artifact is written to.
func (b *Builder) prepareOutput(opts buildargs.Options) (buildargs.Options, error) {
	opts = opts.Clone()
	target := opts.BuildTarget()

	outputPath, err := filepath.Abs(opts.CustomBuildPath())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve build path: %w", err)
	}
	opts[buildargs.FlagCustomBuildPath] = outputPath

	if !platform.OutputMatchesTarget(target, outputPath) {
		ui.Warn("Build path %s does not end with %s expected for %s",
			outputPath, platform.OutputExtension(target), target)
	}

	dir := filepath.Dir(outputPath)
	if platform.ProducesDirectory(target) {
		dir = outputPath
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return opts, nil
}

func (b *Builder) buildArgs(opts buildargs.Options, method string) []string {
	if method == "" {
		method = DefaultBuildMethod
	}

	args := []string{
		"-projectPath", b.project.Path,
		"-batchmode",
		"-nographics",
		"-quit",
		"-logFile", "-",
		"-executeMethod", method,
	}

	passthrough := make(buildargs.Options, len(opts))
	for name, value := range opts {
		if reservedFlags[name] {
			ui.Debug("Ignoring reserved flag", "flag", name)
			continue
		}
		passthrough[name] = value
	}

	return append(args, passthrough.Args()...)
}
