package cmd

import (
	"fmt"

	"github.com/bitrise-io/ai-health-assessor/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the version of the health assessor`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "AI Health Assessor v%s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
