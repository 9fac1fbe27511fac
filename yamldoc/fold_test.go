package yamldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanFold(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  bool
	}{
		"words":                {input: "hello folded world", want: true},
		"trailing newline":     {input: "hello world\n", want: true},
		"single word":          {input: "hello", want: false},
		"empty":                {input: "", want: false},
		"double space":         {input: "hello  world", want: false},
		"leading space":        {input: " hello world", want: false},
		"trailing space":       {input: "hello world ", want: false},
		"embedded newline":     {input: "hello\nworld now", want: false},
		"tab":                  {input: "hello\tworld now", want: false},
		"two trailing newline": {input: "hello world\n\n", want: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, canFold(tc.input))
		})
	}
}

func TestIndicatorOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 6, indicatorOffset([]byte("desc: |-"), 6))
	assert.Equal(t, 6, indicatorOffset([]byte("desc: |-"), 2), "scans forward")
	assert.Equal(t, 8, indicatorOffset([]byte("ééé: |-"), 5), "columns count characters")
	assert.Equal(t, -1, indicatorOffset([]byte("desc: >-"), 6))
	assert.Equal(t, -1, indicatorOffset([]byte("a"), 4))
}
