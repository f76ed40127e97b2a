package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/neptaco/unibuild/pkg/buildargs"
	"github.com/neptaco/unibuild/pkg/exitcode"
	"github.com/neptaco/unibuild/pkg/ui"
	"github.com/neptaco/unibuild/pkg/unity"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildProject    string
	buildTarget     string
	buildOutput     string
	buildName       string
	buildVersion    string
	buildFailOnWarn bool
	buildTimestamp  bool
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [-- unity options]",
	Short: "Build a Unity player",
	Long: `Build a Unity player in batch mode.

Options after "--" are passed Unity-style and override the convenience
flags. -projectPath, -buildTarget and -customBuildPath are required;
-customBuildName defaults to TestBuild.`,
	Example: `  # Unity-style options
  unibuild build -- -projectPath . -buildTarget StandaloneLinux64 -customBuildPath Build/game.x86_64

  # Convenience flags, target alias and extra options for the build method
  unibuild build --project . --target android --output Build/game.apk -- \
    -androidKeystoreName user.keystore -androidKeystorePass "$KEYSTORE_PASS"`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildProject, "project", "p", "", "Path to Unity project (-projectPath)")
	buildCmd.Flags().StringVar(&buildTarget, "target", "", "Build target or alias, see 'unibuild targets' (-buildTarget)")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Path of the built player (-customBuildPath)")
	buildCmd.Flags().StringVar(&buildName, "name", "", "Build name (-customBuildName)")
	buildCmd.Flags().StringVar(&buildVersion, "version", "", "Build version (-buildVersion)")
	buildCmd.Flags().String("method", "", "Static method that performs the build (-executeMethod)")
	buildCmd.Flags().String("log-file", "", "Copy the editor log to this file")
	buildCmd.Flags().Int("timeout", 0, "Build timeout in seconds")
	buildCmd.Flags().BoolVar(&buildFailOnWarn, "fail-on-warning", false, "Fail the build if the editor logged warnings")
	buildCmd.Flags().BoolVarP(&buildTimestamp, "timestamp", "t", false, "Show timestamp for each log line")

	bindFlag(buildCmd, "build.method", "method")
	bindFlag(buildCmd, "build.log-file", "log-file")
	bindFlag(buildCmd, "build.timeout", "timeout")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("failed to bind %s flag: %v", flag, err))
	}
}

// buildTokens assembles the Unity-style token list. Later tokens win, so
// the order is config file, convenience flags, then raw options.
func buildTokens(args []string) []string {
	tokens := append([]string{}, viper.GetStringSlice("build.args")...)

	add := func(name, value string) {
		if value != "" {
			tokens = append(tokens, "-"+name, value)
		}
	}
	add(buildargs.FlagProjectPath, buildProject)
	add(buildargs.FlagBuildTarget, buildargs.ResolveBuildTarget(buildTarget))
	add(buildargs.FlagCustomBuildPath, buildOutput)
	add(buildargs.FlagCustomBuildName, buildName)
	add(buildargs.FlagBuildVersion, buildVersion)

	return append(tokens, args...)
}

func runBuild(cmd *cobra.Command, args []string) error {
	opts, err := buildargs.ParseAndValidate(buildTokens(args), os.Stdout)
	if err != nil {
		return err
	}

	project, err := unity.LoadProject(opts.ProjectPath())
	if err != nil {
		return exitcode.New(exitcode.MissingProjectPath, fmt.Errorf("failed to load project: %w", err))
	}
	ui.Debug("Loaded project", "path", project.Path, "version", project.UnityVersion)

	timeout, err := cast.ToIntE(viper.Get("build.timeout"))
	if err != nil {
		return fmt.Errorf("invalid build.timeout: %w", err)
	}

	editor := unity.NewEditor(project.UnityVersion, unity.WithEditorPath(viper.GetString("unity.editor-path")))
	builder := unity.NewBuilder(project, editor)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.Info("Building %s for %s", project.Path, opts.BuildTarget())

	result, err := builder.Build(ctx, unity.BuildConfig{
		Options:        opts,
		Method:         viper.GetString("build.method"),
		LogFile:        viper.GetString("build.log-file"),
		CIMode:         viper.GetBool("ci"),
		ShowTimestamp:  buildTimestamp,
		NoColor:        noColor(),
		FailOnWarning:  buildFailOnWarn,
		TimeoutSeconds: timeout,
	})
	if err != nil {
		return exitcode.New(exitcode.BuildUnknown, err)
	}

	if result == exitcode.ResultSucceeded {
		ui.Success("Build succeeded")
		ui.Muted("Output: %s", opts.CustomBuildPath())
		return nil
	}
	return exitcode.FromResult(result)
}
