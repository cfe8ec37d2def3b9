package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/gradebook/config"
	"github.com/alem-hub/gradebook/internal/domain/shared"
)

// withEnvFile points config at a temporary dotenv file and clears the
// variables it may set so the file wins.
func withEnvFile(t *testing.T, content string) {
	t.Helper()
	keys := []string{
		"APP_ENV", "APP_NAME", "APP_VERSION",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
		config.EnvKey(config.FeatureReportKeyFailingByIndex),
		config.EnvKey(config.FeaturePromptDistinctRangeMessage),
	}
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	path := filepath.Join(t.TempDir(), "gradebook.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("GRADEBOOK_ENV_FILE", path)
}

func TestRun_PrintsReport(t *testing.T) {
	withEnvFile(t, "LOG_OUTPUT=discard\n")

	var out bytes.Buffer
	err := run(context.Background(), strings.NewReader("1\nAigerim\n30\n80\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "\nStudent: Aigerim, Best Grade: 80.0, Average Grade: 55.0\n")
	assert.Contains(t, out.String(), "Aigerim: 1 failing grade(s)\n")
	assert.True(t, strings.HasSuffix(out.String(),
		"\nTotal number of failing grades across all students: 1\n"))
}

func TestRun_FeatureFlagsFromEnvFile(t *testing.T) {
	withEnvFile(t, "LOG_OUTPUT=discard\n"+
		"FEATURE_REPORT_KEY_FAILING_BY_INDEX=true\n"+
		"FEATURE_PROMPT_DISTINCT_RANGE_MESSAGE=true\n")

	var out bytes.Buffer
	err := run(context.Background(), strings.NewReader("1\nBek\n200\n40\n60\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Expected a number between 1 and 101 (exclusive)\n")
	assert.Contains(t, out.String(), "Bek (#1): 1 failing grade(s)\n")
}

func TestRun_EndOfInput(t *testing.T) {
	withEnvFile(t, "LOG_OUTPUT=discard\n")

	var out bytes.Buffer
	err := run(context.Background(), strings.NewReader("2\nA\n70\n70\n"), &out)
	assert.ErrorIs(t, err, shared.ErrEndOfInput)
	assert.NotContains(t, out.String(), "Student Information")
}

func TestRun_InvalidConfig(t *testing.T) {
	withEnvFile(t, "LOG_LEVEL=loud\n")

	var out bytes.Buffer
	err := run(context.Background(), strings.NewReader("1\nA\n70\n70\n"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
	assert.Empty(t, out.String())
}
