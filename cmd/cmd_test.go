package cmd

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/bitrise-io/ai-health-assessor/assessment"
	"github.com/bitrise-io/ai-health-assessor/llm"
	"github.com/bitrise-io/ai-health-assessor/metrics"
	"github.com/bitrise-io/ai-health-assessor/version"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cwd, wdErr := os.Getwd()
	if wdErr != nil {
		t.Fatal(wdErr)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAssessBMI_MalformedHeightIsReported(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")

	stdout, stderr, err := runCommand(t, "assess-bmi", "--height", "511")
	if err != nil {
		t.Fatalf("Expected the error to be reported, not returned: %v", err)
	}
	if stdout != "" {
		t.Errorf("Expected no result output, got %q", stdout)
	}
	if !strings.Contains(stderr, metrics.HeightFormatHint) {
		t.Errorf("Expected format hint on stderr, got %q", stderr)
	}
}

func TestAssessBMI_MissingCredentialPropagates(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")

	_, _, err := runCommand(t, "assess-bmi", "--height", `5'10"`, "--provider", "groq")
	var authErr *llm.AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("Expected AuthenticationError, got %v", err)
	}
}

func TestAssessHealth_InvalidAnswerIsReported(t *testing.T) {
	_, stderr, err := runCommand(t, "assess-health", "--healthy-weight", "maybe")
	if err != nil {
		t.Fatalf("Expected the error to be reported, not returned: %v", err)
	}
	if !strings.Contains(stderr, "healthy-weight") {
		t.Errorf("Expected the offending flag in the message, got %q", stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if version.Version == "" {
		t.Fatal("Version should not be empty")
	}
	if want := "AI Health Assessor v" + version.Version + "\n"; stdout != want {
		t.Errorf("Expected %q, got %q", want, stdout)
	}
}

func TestReportUserError(t *testing.T) {
	var buf bytes.Buffer

	if !reportUserError(&buf, &assessment.InvalidResponseError{Raw: "x"}) {
		t.Error("Expected InvalidResponseError to be reported")
	}
	if strings.TrimSpace(buf.String()) != assessment.RetryMessage {
		t.Errorf("Expected %q, got %q", assessment.RetryMessage, buf.String())
	}

	if reportUserError(&buf, errors.New("connection refused")) {
		t.Error("Expected transport errors to be left to the caller")
	}
}
