// Package textdiff computes and renders line diffs between two renderings
// of a document.
package textdiff

import (
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of change a [Line] represents.
type Op int

const (
	// Equal is a line present in both texts.
	Equal Op = iota
	// Insert is a line only present in the new text.
	Insert
	// Delete is a line only present in the old text.
	Delete
)

// Line is one line of a diff, without its line ending.
type Line struct {
	Text string
	Op   Op
}

// Lines returns the line diff turning before into after.
func Lines(before, after string) []Line {
	dmp := diffpatch.New()

	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []Line

	for _, d := range diffs {
		op := Equal

		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffEqual:
		}

		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}

			out = append(out, Line{Op: op, Text: strings.TrimSuffix(text, "\n")})
		}
	}

	return out
}

// Changed reports whether lines contains any insertion or deletion.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Op != Equal {
			return true
		}
	}

	return false
}

// Write renders lines with "+", "-" and " " prefixes. Changed lines are
// colored green and red when colored is set.
func Write(w io.Writer, lines []Line, colored bool) error {
	insert := color.New(color.FgGreen)
	remove := color.New(color.FgRed)

	if colored {
		insert.EnableColor()
		remove.EnableColor()
	} else {
		insert.DisableColor()
		remove.DisableColor()
	}

	var sb strings.Builder

	for _, l := range lines {
		switch l.Op {
		case Insert:
			sb.WriteString(insert.Sprint("+" + l.Text))
		case Delete:
			sb.WriteString(remove.Sprint("-" + l.Text))
		case Equal:
			sb.WriteString(" " + l.Text)
		}

		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())

	return err
}
