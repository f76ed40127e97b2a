package cmd

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/neptaco/unibuild/pkg/exitcode"
	"github.com/neptaco/unibuild/pkg/ui"
	"github.com/neptaco/unibuild/pkg/unity"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string
	Version  string
)

var rootCmd = &cobra.Command{
	Use:   "unibuild",
	Short: "Unity player builds for CI",
	Long: `Unibuild builds Unity players in batch mode for CI pipelines.

Build options are given Unity-style after "--" (-projectPath, -buildTarget,
-customBuildPath, ...), validated, and handed to the editor-side build
method. The process exits with the build result:

  0    build succeeded
  1    any other error (configuration, log viewer, Unity Hub)
  101  build failed
  102  build cancelled
  103  build result unknown, or the editor could not be started
  110  -projectPath missing or not a Unity project
  120  -buildTarget missing
  121  -buildTarget is not a valid target
  130  -customBuildPath missing`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(version string) {
	Version = version
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		os.Exit(exitcode.Code(err))
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.unibuild.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Bool("ci", false, "emit GitHub Actions annotations")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	for _, name := range []string{"log-level", "no-color", "ci"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			log.Fatal("Failed to bind flag", "flag", name, "err", err)
		}
	}

	viper.SetDefault("build.method", unity.DefaultBuildMethod)
	viper.SetDefault("build.timeout", 3600)
	viper.SetDefault("ci", os.Getenv("GITHUB_ACTIONS") == "true")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".unibuild")
	}

	viper.SetEnvPrefix("UNIBUILD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	configErr := viper.ReadInConfig()

	level, err := log.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		level = log.InfoLevel
	}
	ui.SetDebugMode(level == log.DebugLevel)

	if viper.GetBool("no-color") || os.Getenv("NO_COLOR") != "" {
		ui.SetNoColor(true)
	}

	if configErr == nil {
		ui.Debug("Using config file", "path", viper.ConfigFileUsed())
	}
}

// noColor reports whether styling is disabled for editor log output
func noColor() bool {
	return viper.GetBool("no-color") || os.Getenv("NO_COLOR") != "" || !ui.IsTTY()
}
