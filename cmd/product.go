package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"assethub.dev/pkg/assethub/internal/domain"
)

// productCmd represents the product command.
var productCmd = newProductCmd()

func newProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product CODE",
		Short: "Show the assets of one product",
		Long: `Show every asset indexed for the product with the given code.

With --insights the product folder is inspected as well: its layout is
summarized and each asset gets an estimated purpose.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grouped, err := cmd.Flags().GetBool(groupedFlagName)
			if err != nil {
				return err
			}

			insights, err := cmd.Flags().GetBool(insightsFlagName)
			if err != nil {
				return err
			}

			wf, err := currentWorkflow()
			if err != nil {
				return err
			}

			return wf.Product(cmd.Context(), domain.ProductArgs{
				Index:    indexPath(),
				Code:     strings.TrimSpace(args[0]),
				Grouped:  grouped,
				Insights: insights,
			})
		},
	}

	cmd.Flags().Bool(groupedFlagName, false, "collapse files that share a name into one entry")
	cmd.Flags().Bool(insightsFlagName, false, "inspect the product folder and estimate each file's purpose")

	return cmd
}

func init() {
	rootCmd.AddCommand(productCmd)
}
