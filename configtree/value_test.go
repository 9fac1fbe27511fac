package configtree_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamlconf/configtree"
)

func TestValueSettersClearOtherPayloads(t *testing.T) {
	t.Parallel()

	v := configtree.NewMapping()
	v.Mapping().Set("k", configtree.Scalar(1))
	v.Comments = []string{"kept"}

	v.SetString("text", configtree.StyleLiteral)
	assert.Equal(t, configtree.KindScalar, v.Kind())
	assert.Nil(t, v.Mapping())
	assert.Equal(t, configtree.StyleLiteral, v.Style())
	assert.Equal(t, []string{"kept"}, v.Comments)

	v.SetSequence([]*configtree.Value{configtree.Scalar(1), nil})
	assert.Nil(t, v.Scalar())
	require.Len(t, v.Items(), 2)
	assert.True(t, v.Items()[1].IsAbsent())

	v.SetScalar(42)
	assert.Nil(t, v.Items())
	assert.Equal(t, configtree.StylePlain, v.Style(), "numbers have no style")

	v.SetScalar(nil)
	assert.True(t, v.IsAbsent())

	v.SetMapping(nil)
	require.NotNil(t, v.Mapping())
	assert.Equal(t, 0, v.Mapping().Len())
}

func TestValueSetStyleOnlyAppliesToText(t *testing.T) {
	t.Parallel()

	n := configtree.Scalar(3)
	n.SetStyle(configtree.StyleDoubleQuoted)
	assert.Equal(t, configtree.StylePlain, n.Style())

	s := configtree.Scalar("x")
	s.SetStyle(configtree.StyleDoubleQuoted)
	assert.Equal(t, configtree.StyleDoubleQuoted, s.Style())
}

func TestValueEqualNilAndEmptyComments(t *testing.T) {
	t.Parallel()

	a := configtree.Scalar("x")
	b := configtree.Scalar("x")
	b.Comments = []string{}

	assert.True(t, a.Equal(b))

	b.Inline = []string{"i"}
	assert.False(t, a.Equal(b))
}

func TestValueEqualSequences(t *testing.T) {
	t.Parallel()

	a := configtree.Sequence(configtree.Scalar(1), configtree.String("b", configtree.StylePlain))
	b := configtree.Sequence(configtree.Scalar(1), configtree.String("b", configtree.StylePlain))
	assert.True(t, a.Equal(b))

	b.Items()[1].SetStyle(configtree.StyleSingleQuoted)
	assert.False(t, a.Equal(b))

	c := configtree.Sequence(configtree.Scalar(1))
	assert.False(t, a.Equal(c))
}

func TestValueInterfaceKeepsOrder(t *testing.T) {
	t.Parallel()

	v := configtree.NewMapping()
	v.Mapping().Set("z", configtree.Scalar(1))
	v.Mapping().Set("a", configtree.Sequence(configtree.Scalar("x"), configtree.Absent()))

	out, err := json.Marshal(v.Interface())
	require.NoError(t, err)
	assert.JSONEq(t, `{"z":1,"a":["x",null]}`, string(out))
	assert.Less(t, strings.Index(string(out), `"z"`), strings.Index(string(out), `"a"`))
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	for _, name := range configtree.GetAllStyleStrings() {
		style, err := configtree.ParseStyle(name)
		require.NoError(t, err)
		assert.Equal(t, name, style.String())
	}

	style, err := configtree.ParseStyle("FOLDED")
	require.NoError(t, err)
	assert.Equal(t, configtree.StyleFolded, style)
	assert.True(t, style.IsBlock())

	_, err = configtree.ParseStyle("fancy")
	require.ErrorIs(t, err, configtree.ErrUnknownStyle)
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "absent", configtree.KindAbsent.String())
	assert.Equal(t, "scalar", configtree.KindScalar.String())
	assert.Equal(t, "mapping", configtree.KindMapping.String())
	assert.Equal(t, "sequence", configtree.KindSequence.String())
}

func TestValueSourceAndFlow(t *testing.T) {
	t.Parallel()

	v := configtree.Scalar(31)
	v.SetSource("0x1F")

	src, ok := v.Source()
	require.True(t, ok)
	assert.Equal(t, "0x1F", src)
	assert.True(t, v.Equal(configtree.Scalar(31)), "source text is not compared")

	v.SetScalar(32)
	_, ok = v.Source()
	assert.False(t, ok, "setters drop the source text")

	seq := configtree.Sequence(configtree.Scalar(1))
	seq.SetFlow(true)
	assert.True(t, seq.Flow())
	assert.True(t, seq.Clone().Flow())

	m := configtree.NewMapping()
	m.SetSource("ignored")
	_, ok = m.Source()
	assert.False(t, ok)

	v.SetFlow(true)
	assert.False(t, v.Flow(), "scalars have no flow style")
}

func TestValueScalarNormalizesNumbers(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in   any
		want any
	}{
		"int8":          {in: int8(-3), want: -3},
		"int16":         {in: int16(300), want: 300},
		"int32":         {in: int32(70000), want: 70000},
		"int64":         {in: int64(42), want: 42},
		"uint8":         {in: uint8(7), want: 7},
		"uint16":        {in: uint16(8), want: 8},
		"uint32":        {in: uint32(9), want: 9},
		"uint":          {in: uint(10), want: 10},
		"uint64":        {in: uint64(11), want: 11},
		"uint64 max":    {in: uint64(math.MaxUint64), want: uint64(math.MaxUint64)},
		"float32":       {in: float32(1.5), want: 1.5},
		"int unchanged": {in: 12, want: 12},
		"string":        {in: "x", want: "x"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v := configtree.Scalar(tc.in)
			assert.Equal(t, tc.want, v.Scalar())
			assert.True(t, v.Equal(configtree.Scalar(tc.want)))
		})
	}
}
