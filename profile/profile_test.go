package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamlconf/profile"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()

	assert.Empty(t, cfg.CPUProfile)
	assert.Empty(t, cfg.HeapProfile)
	assert.Empty(t, cfg.AllocsProfile)
	assert.Zero(t, cfg.MemProfileRate)
	assert.False(t, cfg.Enabled())
}

func TestRegisterFlags(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args []string
		want profile.Config
	}{
		"defaults": {
			want: profile.Config{MemProfileRate: profile.DefaultMemProfileRate},
		},
		"all set": {
			args: []string{
				"--cpu-profile=cpu.prof",
				"--heap-profile=heap.prof",
				"--allocs-profile=allocs.prof",
				"--mem-profile-rate=1024",
			},
			want: profile.Config{
				CPUProfile:     "cpu.prof",
				HeapProfile:    "heap.prof",
				AllocsProfile:  "allocs.prof",
				MemProfileRate: 1024,
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := profile.NewConfig()
			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			cfg.RegisterFlags(flags)

			require.NoError(t, flags.Parse(tc.args))

			tc.want.Flags = cfg.Flags
			assert.Equal(t, tc.want, *cfg)
		})
	}
}

func TestRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cfg.RegisterCompletions(cmd))

	completionFn, ok := cmd.GetFlagCompletionFunc("mem-profile-rate")
	require.True(t, ok)

	values, directive := completionFn(cmd, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.Empty(t, values)
}

func TestProfilerDisabled(t *testing.T) {
	t.Parallel()

	p := profile.NewConfig().NewProfiler(nil)

	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())
}

// Not parallel: heap profiling changes process-wide state.
func TestProfilerWritesSnapshots(t *testing.T) {
	dir := t.TempDir()

	cfg := profile.NewConfig()
	cfg.HeapProfile = filepath.Join(dir, "heap.prof")
	cfg.AllocsProfile = filepath.Join(dir, "allocs.prof")
	require.True(t, cfg.Enabled())

	p := cfg.NewProfiler(nil)

	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())
	require.NoError(t, p.Stop())

	for _, path := range []string{cfg.HeapProfile, cfg.AllocsProfile} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestProfilerBadPath(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	cfg.HeapProfile = filepath.Join(t.TempDir(), "missing", "heap.prof")

	err := cfg.NewProfiler(nil).Stop()
	require.ErrorIs(t, err, profile.ErrProfile)
}
