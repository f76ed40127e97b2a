package cmd

import (
	"os"

	"github.com/neptaco/unibuild/pkg/buildargs"
	"github.com/neptaco/unibuild/pkg/exitcode"
	"github.com/neptaco/unibuild/pkg/platform"
	"github.com/neptaco/unibuild/pkg/ui"
	"github.com/neptaco/unibuild/pkg/unity"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [-- unity options]",
	Short: "Validate build options without building",
	Long: `Parse and validate build options the same way 'unibuild build' does,
then exit with the validation code (0 when the options are usable).`,
	Example: `  unibuild check -- -projectPath . -buildTarget Android -customBuildPath Build/game.apk`,
	RunE:    runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&buildProject, "project", "p", "", "Path to Unity project (-projectPath)")
	checkCmd.Flags().StringVar(&buildTarget, "target", "", "Build target or alias (-buildTarget)")
	checkCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Path of the built player (-customBuildPath)")
	checkCmd.Flags().StringVar(&buildName, "name", "", "Build name (-customBuildName)")
	checkCmd.Flags().StringVar(&buildVersion, "version", "", "Build version (-buildVersion)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := buildargs.ParseAndValidate(buildTokens(args), os.Stdout)
	if err != nil {
		return err
	}

	if err := unity.CheckOptions(opts); err != nil {
		return exitcode.New(exitcode.BuildFailed, err)
	}

	target := opts.BuildTarget()
	if !platform.OutputMatchesTarget(target, opts.CustomBuildPath()) {
		ui.Warn("Build path %s does not end with %s expected for %s",
			opts.CustomBuildPath(), platform.OutputExtension(target), target)
	}

	ui.Success("Build options are valid")
	return nil
}
