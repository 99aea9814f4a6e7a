package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	m "assethub.dev/pkg/assethub/internal/model"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version, the Go version and the index format this binary writes.",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("index format\t", m.IndexFormatVersion)

			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("assethub version\t", info.Main.Version)
			cmd.Println("go version\t", info.GoVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
