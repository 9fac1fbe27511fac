package configtree

import (
	"math"
	"strconv"
)

// GetString returns the text at path. Non-textual scalars are formatted.
func (t *Tree) GetString(path string) (string, bool) {
	v := t.Get(path)

	switch s := v.Scalar().(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case uint64:
		return strconv.FormatUint(s, 10), true
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), true
	}

	return "", false
}

// GetInt returns the integer at path. Integral floats and numeric strings
// are converted.
func (t *Tree) GetInt(path string) (int, bool) {
	switch n := t.Get(path).Scalar().(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}

		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}

		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}

		return i, true
	}

	return 0, false
}

// GetFloat returns the number at path.
func (t *Tree) GetFloat(path string) (float64, bool) {
	switch n := t.Get(path).Scalar().(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}

		return f, true
	}

	return 0, false
}

// GetBool returns the boolean at path.
func (t *Tree) GetBool(path string) (bool, bool) {
	switch b := t.Get(path).Scalar().(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, false
		}

		return parsed, true
	}

	return false, false
}

// GetStrings returns the textual items of the sequence at path. Items that
// are not text are skipped.
func (t *Tree) GetStrings(path string) ([]string, bool) {
	v := t.Get(path)
	if !v.IsSequence() {
		return nil, false
	}

	out := make([]string, 0, len(v.Items()))

	for _, item := range v.Items() {
		if s, ok := item.Text(); ok {
			out = append(out, s)
		}
	}

	return out, true
}
