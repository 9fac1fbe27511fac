package textdiff_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamlconf/stringtest"
	"go.jacobcolvin.com/yamlconf/textdiff"
)

func TestLines(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		before string
		after  string
		want   []textdiff.Line
	}{
		"identical": {
			before: "a: 1\nb: 2\n",
			after:  "a: 1\nb: 2\n",
			want: []textdiff.Line{
				{Op: textdiff.Equal, Text: "a: 1"},
				{Op: textdiff.Equal, Text: "b: 2"},
			},
		},
		"changed value": {
			before: "a: 1\nb: 2\n",
			after:  "a: 1\nb: 3\n",
			want: []textdiff.Line{
				{Op: textdiff.Equal, Text: "a: 1"},
				{Op: textdiff.Delete, Text: "b: 2"},
				{Op: textdiff.Insert, Text: "b: 3"},
			},
		},
		"appended line": {
			before: "a: 1\n",
			after:  "a: 1\nc: 3\n",
			want: []textdiff.Line{
				{Op: textdiff.Equal, Text: "a: 1"},
				{Op: textdiff.Insert, Text: "c: 3"},
			},
		},
		"empty before": {
			before: "",
			after:  "a: 1\n",
			want: []textdiff.Line{
				{Op: textdiff.Insert, Text: "a: 1"},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := textdiff.Lines(tc.before, tc.after)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.before != tc.after, textdiff.Changed(got))
		})
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	lines := textdiff.Lines("a: 1\nb: 2\n", "a: 1\nb: 3\n")

	var buf bytes.Buffer
	require.NoError(t, textdiff.Write(&buf, lines, false))

	want := stringtest.JoinLF(
		" a: 1",
		"-b: 2",
		"+b: 3",
		"",
	)
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, textdiff.Write(&buf, lines, true))
	assert.Contains(t, buf.String(), "\x1b[")
}
