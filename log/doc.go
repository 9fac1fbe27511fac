// Package log builds [log/slog] handlers from level and format names.
//
// Three formats are supported: [FormatJSON] and [FormatLogfmt] use the
// standard library handlers, and [FormatText] renders human-friendly lines
// via [charm.land/log/v2], colored when writing to a terminal. Levels are
// [LevelError], [LevelWarn], [LevelInfo] and [LevelDebug].
//
// Use [Config] to expose the choice as CLI flags with shell completion:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	logger, err := cfg.NewLogger(os.Stderr)
//	if err != nil {
//		return err
//	}
//
//	slog.SetDefault(logger)
package log
