package cmd

import (
	"github.com/spf13/cobra"

	"assethub.dev/pkg/assethub/internal/config"
	"assethub.dev/pkg/assethub/internal/domain"
	m "assethub.dev/pkg/assethub/internal/model"
)

const scanLongDescription = `Scan the configured roots and write the asset index.

Every direct subfolder of a root whose name starts with a product code
("12345 Widget Box", "23456 - Line - Product") is walked recursively and
its design files are classified. Pass root keys to limit the scan:

  assethub scan                     scan every configured root
  assethub scan human_current       scan a single root
  assethub scan pet_current pet_wip scan two roots, in that order

An existing index is backed up next to the output before it is replaced.`

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [root-key...]",
		Short: "Scan the packaging share and write the asset index",
		Long:  scanLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			roots, err := cfg.ScanRoots(args)
			if err != nil {
				return err
			}

			wf, err := currentWorkflow()
			if err != nil {
				return err
			}

			return wf.Scan(cmd.Context(), domain.ScanArgs{
				Roots:       roots,
				Output:      m.Path(cfg.Output),
				Concurrency: cfg.Scan.Parallel,
				Temporal:    cfg.Scan.Temporal,
			})
		},
	}

	cmd.Flags().IntP(parallelFlagName, "p", config.DefaultScanParallel, "number of product folders scanned concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), config.ScanParallelKey)

	cmd.Flags().String(baseFlagName, ".", "base directory the roots are resolved against")
	bindFlagToConfig(cmd.Flags().Lookup(baseFlagName), config.SourceBaseKey)

	cmd.Flags().Bool(temporalFlagName, false, "attach a file activity summary to every asset")
	bindFlagToConfig(cmd.Flags().Lookup(temporalFlagName), config.ScanTemporalKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
