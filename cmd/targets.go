package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/neptaco/unibuild/pkg/buildargs"
	"github.com/neptaco/unibuild/pkg/platform"
	"github.com/neptaco/unibuild/pkg/ui"
	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List build targets accepted by -buildTarget",
	Long: `List the build targets accepted by -buildTarget, the aliases the
--target flag accepts for them, and the artifact each one produces.

Target names are case-sensitive.`,
	RunE: runTargets,
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}

func runTargets(cmd *cobra.Command, args []string) error {
	native := platform.NativeBuildTarget()

	if !ui.IsTTY() {
		// one name per line for scripts
		for _, target := range buildargs.BuildTargets {
			fmt.Println(target)
		}
		return nil
	}

	nameStyle := lipgloss.NewStyle().Width(26)
	ui.Header("%-26s%-12s%s", "TARGET", "OUTPUT", "ALIASES")
	for _, target := range buildargs.BuildTargets {
		output := platform.OutputExtension(target)
		if platform.ProducesDirectory(target) {
			output = "directory"
		}
		if output == "" {
			output = "-"
		}

		name := nameStyle.Render(target)
		if target == native {
			name = nameStyle.Bold(true).Render(target)
		}
		fmt.Printf("%s%-12s%s\n", name, output, strings.Join(buildargs.AliasesFor(target), ", "))
	}

	ui.Muted("\nHost platform target: %s", native)
	return nil
}
