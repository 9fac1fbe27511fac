package yamldoc

import (
	"bytes"
	"slices"
	"strings"

	"go.jacobcolvin.com/yamlconf/configtree"
)

// commentLines splits a yaml.v3 comment block into entries. Each entry loses
// its "#" and one following space; empty lines become
// [configtree.BlankLine]. Blank lines at either edge are dropped; for entry
// comments the parser reads them back from the source lines.
func commentLines(block string) []string {
	if block == "" {
		return nil
	}

	raw := strings.Split(block, "\n")
	lines := make([]string, 0, len(raw))

	for _, line := range raw {
		line = strings.TrimRight(strings.TrimLeft(line, " \t"), "\r")
		if line == "" {
			lines = append(lines, configtree.BlankLine)

			continue
		}

		line = strings.TrimPrefix(line, "#")
		line = strings.TrimPrefix(line, " ")
		lines = append(lines, line)
	}

	return trimBlank(lines)
}

// inlineLines converts a yaml.v3 line comment into a single entry.
func inlineLines(comment string) []string {
	lines := commentLines(comment)
	if len(lines) == 0 {
		return nil
	}

	return []string{strings.Join(lines, " ")}
}

// blockComment renders entries as a yaml.v3 head or foot comment.
func blockComment(lines []string) string {
	lines = trimBlank(lines)
	if len(lines) == 0 {
		return ""
	}

	var sb strings.Builder

	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}

		if line == configtree.BlankLine {
			continue
		}

		sb.WriteString(commentText(line))
	}

	return sb.String()
}

// blankMarker stands in for an empty line inside a head comment. yaml.v3
// drops empty lines at the edges of a comment, so they are written as marker
// comments and turned into empty lines by [restoreBlankLines].
const blankMarker = "# \uE000"

// headComment renders entries as a yaml.v3 head comment, keeping every
// [configtree.BlankLine].
func headComment(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	parts := make([]string, len(lines))

	for i, line := range lines {
		if line == configtree.BlankLine {
			parts[i] = blankMarker

			continue
		}

		parts[i] = commentText(line)
	}

	return strings.Join(parts, "\n")
}

// restoreBlankLines empties every line of out that holds a [blankMarker].
func restoreBlankLines(out []byte) []byte {
	marker := []byte(blankMarker)
	if !bytes.Contains(out, marker) {
		return out
	}

	lines := bytes.Split(out, []byte("\n"))
	for i, line := range lines {
		if bytes.Equal(bytes.TrimSpace(line), marker) {
			lines[i] = nil
		}
	}

	return bytes.Join(lines, []byte("\n"))
}

// inlineComment renders entries as a single yaml.v3 line comment. Multiple
// entries share the line.
func inlineComment(lines []string) string {
	parts := make([]string, 0, len(lines))

	for _, line := range lines {
		if line == configtree.BlankLine {
			continue
		}

		parts = append(parts, commentText(line))
	}

	return strings.Join(parts, " ")
}

func commentText(line string) string {
	line = strings.ReplaceAll(line, "\n", " ")
	if line == "" {
		return "#"
	}

	return "# " + line
}

// joinComments appends head to carried foot comments, separated by a blank
// line when both are present.
func joinComments(carry, head []string) []string {
	switch {
	case len(carry) == 0:
		return head
	case len(head) == 0:
		return carry
	}

	out := slices.Clip(carry)
	out = append(out, configtree.BlankLine)

	return append(out, head...)
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && lines[0] == configtree.BlankLine {
		lines = lines[1:]
	}

	for len(lines) > 0 && lines[len(lines)-1] == configtree.BlankLine {
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 0 {
		return nil
	}

	return lines
}
