package treeschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamlconf/treeschema"
)

func TestMergeMultipleInputs(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		inputA string
		inputB string
		opts   []treeschema.Option
		check  func(*testing.T, map[string]any)
	}{
		"union of properties": {
			inputA: "a: 1\nb: hello\n",
			inputB: "b: world\nc: true\n",
			check: func(t *testing.T, props map[string]any) {
				t.Helper()

				assert.Contains(t, props, "a")
				assert.Contains(t, props, "b")
				assert.Contains(t, props, "c")
			},
		},
		"integer and number widen to number": {
			inputA: "val: 1\n",
			inputB: "val: 1.5\n",
			check: func(t *testing.T, props map[string]any) {
				t.Helper()

				assert.Equal(t, map[string]any{"type": "number"}, props["val"])
			},
		},
		"incompatible types drop the constraint": {
			inputA: "val: 1\n",
			inputB: "val: text\n",
			check: func(t *testing.T, props map[string]any) {
				t.Helper()

				assert.Equal(t, true, props["val"])
			},
		},
		"null merges transparently": {
			inputA: "val: null\n",
			inputB: "val: text\n",
			check: func(t *testing.T, props map[string]any) {
				t.Helper()

				assert.Equal(t, map[string]any{"type": "string"}, props["val"])
			},
		},
		"nested objects merge": {
			inputA: "db:\n  host: x\n",
			inputB: "db:\n  port: 5432\n",
			check: func(t *testing.T, props map[string]any) {
				t.Helper()

				db, ok := props["db"].(map[string]any)
				require.True(t, ok)

				nested, ok := db["properties"].(map[string]any)
				require.True(t, ok)
				assert.Contains(t, nested, "host")
				assert.Contains(t, nested, "port")
			},
		},
		"strict stays strict": {
			inputA: "db:\n  host: x\n",
			inputB: "db:\n  port: 5432\n",
			opts:   []treeschema.Option{treeschema.WithStrict(true)},
			check: func(t *testing.T, props map[string]any) {
				t.Helper()

				db, ok := props["db"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, false, db["additionalProperties"])
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := generate(t, treeschema.NewGenerator(tc.opts...), tc.inputA, tc.inputB)

			props, ok := got["properties"].(map[string]any)
			require.True(t, ok)

			tc.check(t, props)
		})
	}
}
