package cmd

import (
	"github.com/bitrise-io/ai-health-assessor/assessment"
	"github.com/bitrise-io/ai-health-assessor/logger"
	"github.com/bitrise-io/ai-health-assessor/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve both assessments over HTTP",
	Long:  `Start an HTTP server exposing the BMI and health assessments as JSON endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := providerFlag(cmd)

		// both clients are built up front so a missing credential stops the server from starting
		bmiClient, err := newClient(provider, settings.Models.BMI)
		if err != nil {
			return err
		}
		healthClient, err := newClient(provider, settings.Models.Health)
		if err != nil {
			return err
		}

		assessor := assessment.NewAssessor(bmiClient, healthClient, settings)

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = settings.Server.Address
		}

		if logLevel != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}
		router := server.NewRouter(server.NewHandler(assessor), settings.Server.AllowedOrigins)

		logger.Infow("Starting server", "addr", addr, "provider", provider)
		return router.Run(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	addLLMFlags(serveCmd, false)
	serveCmd.Flags().String("addr", "", "Address to listen on; defaults to the settings file")
}
