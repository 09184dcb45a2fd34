package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/bitrise-io/ai-health-assessor/common"
	"github.com/bitrise-io/ai-health-assessor/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	logLevel string
	envFile  string

	// settings is resolved once before any subcommand runs and only read afterwards
	settings common.Settings
)

var rootCmd = &cobra.Command{
	Use:   "health-assessor",
	Short: "AI Health Assessor - BMI category and health verdicts from an LLM",
	Long: `AI Health Assessor collects a few body metrics or health factors, asks a hosted
language model to categorise them and prints the result.
It can run single assessments from the command line or serve them over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// stdout is reserved for assessment results
		logger.InitWithWriter(logLevel, os.Stderr)
		logger.Debugf("Log level set to: %s", logLevel)

		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		settings = common.WithYamlFile()
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command and handles errors
func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Set the logging level (debug, info, warn, error, dpanic, panic, fatal)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"Dotenv file with the API credentials, ignored when missing")
}
