package cmd

import (
	"github.com/spf13/cobra"

	"assethub.dev/pkg/assethub/internal/domain"
)

// showCmd represents the show command.
var showCmd = newShowCmd()

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a summary of the asset index",
		Long:  "Show the totals of a previously written asset index and list its products by code.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grouped, err := cmd.Flags().GetBool(groupedFlagName)
			if err != nil {
				return err
			}

			wf, err := currentWorkflow()
			if err != nil {
				return err
			}

			return wf.Show(cmd.Context(), domain.ShowArgs{Index: indexPath(), Grouped: grouped})
		},
	}

	cmd.Flags().Bool(groupedFlagName, false, "collapse files that share a name into one entry")

	return cmd
}

func init() {
	rootCmd.AddCommand(showCmd)
}
