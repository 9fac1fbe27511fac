package log_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamlconf/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  log.Level
		err   error
		input string
	}{
		"error":          {input: "error", want: log.LevelError},
		"warn":           {input: "warn", want: log.LevelWarn},
		"warning alias":  {input: "warning", want: log.LevelWarn},
		"mixed case":     {input: "DeBuG", want: log.LevelDebug},
		"info":           {input: "info", want: log.LevelInfo},
		"unknown":        {input: "loud", err: log.ErrUnknownLogLevel},
		"empty is error": {input: "", err: log.ErrUnknownLogLevel},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseLevel(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  log.Format
		err   error
		input string
	}{
		"json":    {input: "json", want: log.FormatJSON},
		"logfmt":  {input: "LOGFMT", want: log.FormatLogfmt},
		"text":    {input: "text", want: log.FormatText},
		"unknown": {input: "yaml", err: log.ErrUnknownLogFormat},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseFormat(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNameLists(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"error", "warn", "info", "debug"}, log.GetAllLevelStrings())
	assert.Equal(t, []string{"json", "logfmt", "text"}, log.GetAllFormatStrings())
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelError, log.LevelError.SlogLevel())
	assert.Equal(t, slog.LevelWarn, log.LevelWarn.SlogLevel())
	assert.Equal(t, slog.LevelInfo, log.LevelInfo.SlogLevel())
	assert.Equal(t, slog.LevelDebug, log.LevelDebug.SlogLevel())
	assert.Equal(t, slog.LevelInfo, log.Level("other").SlogLevel())
}

func TestNewHandlerFormats(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		check  func(t *testing.T, out string)
		format log.Format
	}{
		"json": {
			format: log.FormatJSON,
			check: func(t *testing.T, out string) {
				t.Helper()

				var record map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &record))
				assert.Equal(t, "loaded document", record["msg"])
				assert.InDelta(t, 3, record["keys"], 0)
				assert.Contains(t, record, "source")
			},
		},
		"logfmt": {
			format: log.FormatLogfmt,
			check: func(t *testing.T, out string) {
				t.Helper()

				assert.Contains(t, out, `msg="loaded document"`)
				assert.Contains(t, out, "keys=3")
			},
		},
		"text": {
			format: log.FormatText,
			check: func(t *testing.T, out string) {
				t.Helper()

				assert.Contains(t, out, "loaded document")
				assert.Contains(t, out, "keys=3")
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := slog.New(log.NewHandler(&buf, log.LevelInfo, tc.format))
			logger.Info("loaded document", slog.Int("keys", 3))

			tc.check(t, buf.String())
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level log.Level
		want  []string
	}{
		"error": {level: log.LevelError, want: []string{"error"}},
		"warn":  {level: log.LevelWarn, want: []string{"warn", "error"}},
		"debug": {level: log.LevelDebug, want: []string{"debug", "info", "warn", "error"}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := slog.New(log.NewHandler(&buf, tc.level, log.FormatJSON))
			logger.Debug("debug")
			logger.Info("info")
			logger.Warn("warn")
			logger.Error("error")

			var got []string

			for line := range strings.Lines(buf.String()) {
				var record map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &record))

				msg, ok := record["msg"].(string)
				require.True(t, ok)

				got = append(got, msg)
			}

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewHandlerFromStrings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	h, err := log.NewHandlerFromStrings(&buf, "warning", "json")
	require.NoError(t, err)
	assert.True(t, h.Enabled(t.Context(), slog.LevelWarn))
	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))

	_, err = log.NewHandlerFromStrings(&buf, "loud", "json")
	require.ErrorIs(t, err, log.ErrInvalidArgument)
	require.ErrorIs(t, err, log.ErrUnknownLogLevel)

	_, err = log.NewHandlerFromStrings(&buf, "info", "xml")
	require.ErrorIs(t, err, log.ErrInvalidArgument)
	require.ErrorIs(t, err, log.ErrUnknownLogFormat)
}

func TestConfigFlags(t *testing.T) {
	t.Parallel()

	cfg := log.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "text", cfg.Format)

	require.NoError(t, flags.Parse([]string{"--log-level", "debug", "--log-format", "json"}))

	var buf bytes.Buffer

	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)

	logger.Debug("visible")
	assert.Contains(t, buf.String(), `"msg":"visible"`)

	cfg.Level = "nope"
	_, err = cfg.NewLogger(&buf)
	require.ErrorIs(t, err, log.ErrInvalidArgument)
}

func TestCustomFlagNames(t *testing.T) {
	t.Parallel()

	cfg := log.Flags{Level: "verbosity", Format: "output"}.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse([]string{"--verbosity", "error", "--output", "logfmt"}))
	assert.Equal(t, "error", cfg.Level)
	assert.Equal(t, "logfmt", cfg.Format)
}

func TestRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := log.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cfg.RegisterCompletions(cmd))

	for flag, want := range map[string][]string{
		"log-level":  log.GetAllLevelStrings(),
		"log-format": log.GetAllFormatStrings(),
	} {
		complete, ok := cmd.GetFlagCompletionFunc(flag)
		require.True(t, ok, flag)

		values, directive := complete(cmd, nil, "")
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
		assert.Equal(t, want, values)
	}

	missing := &cobra.Command{Use: "bare"}
	require.Error(t, log.NewConfig().RegisterCompletions(missing))
}
