package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"assethub.dev/pkg/assethub/internal/config"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate default assethub.yaml and rules.yaml files",
		Long: `Create an assethub.yaml in the current working directory populated with the
current defaults, and a rules.yaml holding the built-in classification tables.
Both can be edited manually; set rules.file to use the edited rules.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			rulesPath := filepath.Join(configFolderPath, rulesFileName)

			err = config.WriteRuleSet(rulesPath, config.DefaultRuleSet())
			if err != nil {
				return fmt.Errorf("failed to write rules file: %w", err)
			}

			cmd.Printf("Wrote %s and %s\n", targetPath, rulesPath)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
