package cmd

import (
	"fmt"

	"github.com/bitrise-io/ai-health-assessor/assessment"
	"github.com/bitrise-io/ai-health-assessor/metrics"
	"github.com/spf13/cobra"
)

var assessBMICmd = &cobra.Command{
	Use:   "assess-bmi",
	Short: "Compute BMI and get its WHO category",
	Long:  `Convert the height, compute the BMI and ask the model for the WHO BMI category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		height, _ := cmd.Flags().GetString("height")
		weight, _ := cmd.Flags().GetFloat64("weight")
		age, _ := cmd.Flags().GetInt("age")
		gender, _ := cmd.Flags().GetString("gender")

		in := assessment.BMIInput{
			Height:   height,
			WeightKg: weight,
			AgeYears: age,
			Gender:   gender,
		}

		// validate the form before touching credentials or the network
		if _, err := assessment.NormalizeBMIInput(in); err != nil {
			if reportUserError(cmd.ErrOrStderr(), err) {
				return nil
			}
			return err
		}

		client, err := newClient(providerFlag(cmd), modelFlag(cmd, settings.Models.BMI))
		if err != nil {
			return err
		}
		assessor := assessment.NewAssessor(client, nil, settings)

		result, err := assessor.AssessBMI("", in)
		if err != nil {
			if reportUserError(cmd.ErrOrStderr(), err) {
				return nil
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Assessment Result:")
		fmt.Fprintf(out, "BMI Value: %s\n", metrics.FormatBMI(result.BMI))
		fmt.Fprintf(out, "BMI Category: %s\n", result.Assessment.Category)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assessBMICmd)

	addLLMFlags(assessBMICmd, true)
	assessBMICmd.Flags().String("height", `5'10"`, `Height as ft'in" (e.g., 5'11")`)
	assessBMICmd.Flags().Float64("weight", 75.0, "Weight in kg (0-500)")
	assessBMICmd.Flags().Int("age", 27, "Age in years (0-150)")
	assessBMICmd.Flags().String("gender", string(metrics.Male), "Gender (Male or Female)")
}
