package configtree

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStyle indicates an unrecognized style name.
var ErrUnknownStyle = errors.New("unknown style")

// Style is the presentation form of a textual scalar.
type Style int

const (
	// StylePlain is an unquoted scalar.
	StylePlain Style = iota
	// StyleDoubleQuoted is a "double-quoted" scalar.
	StyleDoubleQuoted
	// StyleSingleQuoted is a 'single-quoted' scalar.
	StyleSingleQuoted
	// StyleLiteral is a literal block scalar (|).
	StyleLiteral
	// StyleFolded is a folded block scalar (>).
	StyleFolded
)

var styleNames = []string{"plain", "double", "single", "literal", "folded"}

// String returns the style name.
func (s Style) String() string {
	if int(s) < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("Style(%d)", int(s))
	}

	return styleNames[s]
}

// ParseStyle parses a style name as returned by [Style.String].
func ParseStyle(name string) (Style, error) {
	for i, n := range styleNames {
		if strings.EqualFold(n, name) {
			return Style(i), nil
		}
	}

	return StylePlain, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

// GetAllStyleStrings returns all style names.
func GetAllStyleStrings() []string {
	return append([]string(nil), styleNames...)
}

// IsBlock reports whether s is a block scalar style.
func (s Style) IsBlock() bool {
	return s == StyleLiteral || s == StyleFolded
}
