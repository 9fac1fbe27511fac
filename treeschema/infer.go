package treeschema

import (
	"strings"
	"time"

	"go.jacobcolvin.com/yamlconf/configtree"
)

// JSON Schema type constants.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// inferType returns the JSON Schema type for v. Absent values and unknown
// scalars return an empty string (no constraint).
func inferType(v *configtree.Value) string {
	switch v.Kind() {
	case configtree.KindMapping:
		return typeObject
	case configtree.KindSequence:
		return typeArray
	case configtree.KindAbsent:
		return ""
	case configtree.KindScalar:
	}

	switch v.Scalar().(type) {
	case bool:
		return typeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return typeInteger
	case float32, float64:
		return typeNumber
	case string, time.Time:
		return typeString
	}

	return ""
}

// widenType returns the widened type when merging two type strings.
// Returns empty string (no constraint) for incompatible types.
func widenType(a, b string) string {
	switch {
	case a == b:
		return a
	case a == "":
		return b
	case b == "":
		return a
	case a == typeInteger && b == typeNumber, a == typeNumber && b == typeInteger:
		return typeNumber
	}

	return ""
}

// describe derives a description from a value's comments: the last group of
// leading comment lines, or else the inline comment.
func describe(v *configtree.Value) string {
	if desc := cleanComment(v.Comments); desc != "" {
		return desc
	}

	return cleanComment(v.Inline)
}

// cleanComment joins the comment lines after the last inner blank line with
// spaces. Lines that are empty after trimming are skipped.
func cleanComment(lines []string) string {
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}

	start := 0

	for i, line := range lines {
		if isBlank(line) {
			start = i + 1
		}
	}

	var parts []string

	for _, line := range lines[min(start, len(lines)):] {
		cleaned := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if cleaned != "" {
			parts = append(parts, cleaned)
		}
	}

	return strings.Join(parts, " ")
}

func isBlank(line string) bool {
	return line == configtree.BlankLine || strings.TrimSpace(line) == ""
}
