package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/yamlconf/stringtest"
)

func TestInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty": {
			input: "",
			want:  "",
		},
		"outer newlines removed once": {
			input: "\n\nkey: value\n\n",
			want:  "\nkey: value\n",
		},
		"nested document dedented": {
			input: `
				server:
				  port: 8080
				  hosts:
				    - a
			`,
			want: "server:\n  port: 8080\n  hosts:\n    - a\n",
		},
		"blank and whitespace lines emptied": {
			input: "\n  a: 1\n\t \n\n  b: 2",
			want:  "a: 1\n\n\nb: 2",
		},
		"comment lines count toward indent": {
			input: "\n    # head\n      key: 1",
			want:  "# head\n  key: 1",
		},
		"only whitespace": {
			input: "   \n\t",
			want:  "\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.Input(tc.input))
		})
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		join  func(...string) string
		lines []string
		want  string
	}{
		"lf lines": {
			join:  stringtest.JoinLF,
			lines: []string{"a: 1", "b: 2", ""},
			want:  "a: 1\nb: 2\n",
		},
		"crlf lines": {
			join:  stringtest.JoinCRLF,
			lines: []string{"a: 1", "b: 2", ""},
			want:  "a: 1\r\nb: 2\r\n",
		},
		"lf nothing": {
			join: stringtest.JoinLF,
			want: "",
		},
		"crlf single": {
			join:  stringtest.JoinCRLF,
			lines: []string{"only"},
			want:  "only",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.join(tc.lines...))
		})
	}
}
