package cmd

import (
	"fmt"

	"github.com/neptaco/unibuild/pkg/hub"
	"github.com/neptaco/unibuild/pkg/ui"
	"github.com/neptaco/unibuild/pkg/unity"
	"github.com/spf13/cobra"
)

var editorsProject string

var editorsCmd = &cobra.Command{
	Use:   "editors",
	Short: "List installed Unity Editor versions",
	Long: `List installed Unity Editor versions found in the Unity Hub install
directories (or reported by Unity Hub). With --project the editor the
project needs is marked, and the command fails when it is not installed.`,
	RunE: runEditors,
}

func init() {
	rootCmd.AddCommand(editorsCmd)

	editorsCmd.Flags().StringVarP(&editorsProject, "project", "p", "", "Mark the editor required by this Unity project")
}

func runEditors(cmd *cobra.Command, args []string) error {
	ui.Debug("Listing installed Unity Editor versions")

	var wanted string
	if editorsProject != "" {
		project, err := unity.LoadProject(editorsProject)
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}
		wanted = project.UnityVersion
	}

	editors, err := ui.WithSpinner("Fetching installed editors...", func() ([]hub.EditorInfo, error) {
		hubClient := hub.NewClient()
		return hubClient.ListInstalledEditors()
	})
	if err != nil {
		return fmt.Errorf("failed to list editors: %w", err)
	}

	if len(editors) == 0 {
		fmt.Println("No Unity Editor installations found")
	} else {
		fmt.Println("Installed Unity Editor versions:")
	}

	found := false
	for _, editor := range editors {
		if editor.Version == wanted {
			found = true
			ui.Success("%s (%s)", editor.Version, editor.Path)
			continue
		}
		fmt.Printf("  - %s (%s)\n", editor.Version, editor.Path)
	}

	if wanted != "" && !found {
		return fmt.Errorf("unity editor %s required by %s is not installed", wanted, editorsProject)
	}
	return nil
}
