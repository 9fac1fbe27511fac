package yamldoc

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// yaml.v3 cannot emit a folded block that keeps the source line breaks, so
// folded strings whose words are separated by single spaces are written as
// literal blocks with one word per line. After encoding, the "|" indicator
// of each such block is swapped for ">", which reads back as the original
// string.

// canFold reports whether s survives the word-per-line rewrite. An optional
// single trailing newline is allowed.
func canFold(s string) bool {
	body := strings.TrimSuffix(s, "\n")

	if !strings.Contains(body, " ") ||
		strings.ContainsAny(body, "\n\r\t") ||
		strings.Contains(body, "  ") {
		return false
	}

	return body[0] != ' ' && body[len(body)-1] != ' '
}

func foldWords(s string) string {
	return strings.ReplaceAll(s, " ", "\n")
}

type position struct {
	line   int // 0-based
	column int // 0-based, in characters
}

// restoreFolds rewrites the block indicator of every folded node in out.
// Positions are found by reading out back and walking the result in step
// with the emitted graph.
func restoreFolds(out []byte, emitted *yaml.Node, folds map[*yaml.Node]bool) ([]byte, error) {
	if len(folds) == 0 {
		return out, nil
	}

	var composed yaml.Node
	if err := yaml.Unmarshal(out, &composed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFoldRestore, err)
	}

	var positions []position

	if err := locate(emitted, &composed, folds, &positions); err != nil {
		return nil, err
	}

	lines := bytes.Split(out, []byte("\n"))

	for _, pos := range positions {
		if pos.line >= len(lines) {
			return nil, fmt.Errorf("%w: line %d out of range", ErrFoldRestore, pos.line+1)
		}

		i := indicatorOffset(lines[pos.line], pos.column)
		if i < 0 {
			return nil, fmt.Errorf("%w: no block indicator on line %d", ErrFoldRestore, pos.line+1)
		}

		lines[pos.line][i] = '>'
	}

	return bytes.Join(lines, []byte("\n")), nil
}

func locate(emitted, composed *yaml.Node, folds map[*yaml.Node]bool, out *[]position) error {
	if emitted.Kind != composed.Kind || len(emitted.Content) != len(composed.Content) {
		return fmt.Errorf("%w: output does not match emitted nodes at line %d", ErrFoldRestore, composed.Line)
	}

	if folds[emitted] {
		if composed.Style&yaml.LiteralStyle == 0 {
			return fmt.Errorf("%w: expected literal block at line %d", ErrFoldRestore, composed.Line)
		}

		*out = append(*out, position{line: composed.Line - 1, column: composed.Column - 1})
	}

	for i := range emitted.Content {
		if err := locate(emitted.Content[i], composed.Content[i], folds, out); err != nil {
			return err
		}
	}

	return nil
}

// indicatorOffset returns the byte offset of the "|" at or after the given
// character column, or -1.
func indicatorOffset(line []byte, column int) int {
	offset := 0

	for range column {
		if offset >= len(line) {
			return -1
		}

		_, size := utf8.DecodeRune(line[offset:])
		offset += size
	}

	i := bytes.IndexByte(line[min(offset, len(line)):], '|')
	if i < 0 {
		return -1
	}

	return offset + i
}
