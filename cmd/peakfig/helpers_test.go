package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test", RunE: func(_ *cobra.Command, _ []string) error { return nil }}
	addExtractionFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestOptionsFromFlagsDefaults(t *testing.T) {
	cmd := newFlagTestCmd(t)

	opts, err := optionsFromFlags(cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, opts.StartPage)
	assert.Equal(t, 0, opts.EndPage)
	assert.True(t, opts.ApplyScaling)
	assert.Equal(t, 1.0, opts.XTolerance)
	assert.Equal(t, 1.0, opts.YTolerance)
	assert.Nil(t, opts.MinScaled, "min-scaled should be unset until the user sets it")
	assert.Nil(t, opts.MaxScaled, "max-scaled should be unset until the user sets it")
}

func TestOptionsFromFlagsExplicit(t *testing.T) {
	cmd := newFlagTestCmd(t,
		"--start-page", "5",
		"--end-page", "20",
		"--no-scaling",
		"--min-scaled", "1000",
		"--max-scaled", "1000000",
		"--x-tolerance", "2.5",
	)

	opts, err := optionsFromFlags(cmd)
	require.NoError(t, err)

	assert.Equal(t, 5, opts.StartPage)
	assert.Equal(t, 20, opts.EndPage)
	assert.False(t, opts.ApplyScaling)
	assert.Equal(t, 2.5, opts.XTolerance)
	require.NotNil(t, opts.MinScaled)
	assert.Equal(t, 1000.0, *opts.MinScaled)
	require.NotNil(t, opts.MaxScaled)
	assert.Equal(t, 1000000.0, *opts.MaxScaled)
}

func TestOptionsFromFlagsZeroThresholdIsMeaningful(t *testing.T) {
	// Explicitly passing 0 is different from not passing the flag at all.
	cmd := newFlagTestCmd(t, "--min-scaled", "0")

	opts, err := optionsFromFlags(cmd)
	require.NoError(t, err)

	require.NotNil(t, opts.MinScaled)
	assert.Equal(t, 0.0, *opts.MinScaled)
}
