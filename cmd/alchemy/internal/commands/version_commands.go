package commands

import (
	"github.com/spf13/cobra"
)

// InitVersionCommand registers the version command
func InitVersionCommand(rootCmd *cobra.Command) {
	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the alchemy version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("alchemy %s\n", Version)
		},
	}
	rootCmd.AddCommand(versionCmd)
}
