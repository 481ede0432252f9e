package cmd

import (
	"bytes"
	"dashshim/core"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchErrorDoesNotPrintUsage(t *testing.T) {
	t.Setenv("DASHSHIM_COMMAND", "dashshim-test-no-such-interpreter")
	t.Setenv("DASHSHIM_ADMIN_PORT", "0")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"serve"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	var launchErr *core.LaunchError
	require.True(t, errors.As(err, &launchErr), "%v", err)
	assert.NotContains(t, out.String(), "Usage:")
	assert.NotContains(t, out.String(), "Error:")
}
