package yamldoc

import "log/slog"

// DefaultIndent is the number of spaces per nesting level on output.
const DefaultIndent = 2

// Option configures a [Document].
type Option func(*Document)

// WithLogger sets the logger used for load and save diagnostics. By default
// nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithIndent sets the output indentation. Values below 2 are ignored.
func WithIndent(n int) Option {
	return func(d *Document) {
		if n >= 2 {
			d.indent = n
		}
	}
}
