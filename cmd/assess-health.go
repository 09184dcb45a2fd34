package cmd

import (
	"fmt"

	"github.com/bitrise-io/ai-health-assessor/assessment"
	"github.com/bitrise-io/ai-health-assessor/metrics"
	"github.com/spf13/cobra"
)

var healthFactorFlags = []struct {
	name  string
	usage string
}{
	{"healthy-weight", "Are you in a healthy weight range for your height and age today? (True/False)"},
	{"good-blood-pressure", "Do you have good blood pressure today? (True/False)"},
	{"normal-cholesterol", "Is your cholesterol level normal today? (True/False)"},
	{"no-other-issues", "Are you clear of other health issues not addressed above? (True/False)"},
}

var assessHealthCmd = &cobra.Command{
	Use:   "assess-health",
	Short: "Get a Good / not Good health verdict",
	Long:  `Ask the model for a one line health verdict based on four self-declared health factors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		answers := make([]bool, len(healthFactorFlags))
		for i, flag := range healthFactorFlags {
			raw, _ := cmd.Flags().GetString(flag.name)
			answer, err := metrics.ParseBool(flag.name, raw)
			if err != nil {
				reportUserError(cmd.ErrOrStderr(), err)
				return nil
			}
			answers[i] = answer
		}

		client, err := newClient(providerFlag(cmd), modelFlag(cmd, settings.Models.Health))
		if err != nil {
			return err
		}
		assessor := assessment.NewAssessor(nil, client, settings)

		result, err := assessor.AssessHealth("", metrics.HealthFactors{
			HealthyWeight:     answers[0],
			GoodBloodPressure: answers[1],
			NormalCholesterol: answers[2],
			NoOtherIssues:     answers[3],
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Assessment Result:")
		fmt.Fprintln(out, result.Verdict.Text)
		if !result.Verdict.Recognized() {
			fmt.Fprintln(cmd.ErrOrStderr(), "Note: the model did not answer with one of the expected verdicts.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assessHealthCmd)

	addLLMFlags(assessHealthCmd, true)
	for _, flag := range healthFactorFlags {
		assessHealthCmd.Flags().String(flag.name, metrics.FormatBool(true), flag.usage)
	}
}
