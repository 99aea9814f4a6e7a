package cmd

import (
	"github.com/spf13/cobra"

	"assethub.dev/pkg/assethub/internal/domain"
	m "assethub.dev/pkg/assethub/internal/model"
)

// activityCmd represents the activity command.
var activityCmd = newActivityCmd()

func newActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity DIR",
		Short: "Show the work timeline of a directory",
		Long: `Analyze every file under DIR and report when work happened on it.

Dates are taken from the file system and from date stamps embedded in file
names (2024-03-15, 03.15.24, ART03Y25, ...). Files are scored by how recent
and how substantial the work on them looks; the highest scores are listed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			top, err := cmd.Flags().GetInt(topFlagName)
			if err != nil {
				return err
			}

			wf, err := currentWorkflow()
			if err != nil {
				return err
			}

			return wf.Activity(cmd.Context(), domain.ActivityArgs{Dir: m.Path(args[0]), Top: top})
		},
	}

	cmd.Flags().IntP(topFlagName, "n", domain.DefaultTopFiles, "number of most active files to list")

	return cmd
}

func init() {
	rootCmd.AddCommand(activityCmd)
}
