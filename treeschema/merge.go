package treeschema

import (
	"maps"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// mergeSchemas unions two schemas. Properties from both sides are kept,
// conflicting types are widened, and metadata prefers a.
func mergeSchemas(a, b *jsonschema.Schema) *jsonschema.Schema {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}

	result := &jsonschema.Schema{
		Type:        widenType(a.Type, b.Type),
		Title:       firstNonEmpty(a.Title, b.Title),
		Description: firstNonEmpty(a.Description, b.Description),
		Default:     a.Default,
	}

	if result.Default == nil {
		result.Default = b.Default
	}

	if a.Properties != nil || b.Properties != nil {
		mergeProperties(result, a, b)
	}

	result.AdditionalProperties = mergeAdditionalProperties(a.AdditionalProperties, b.AdditionalProperties)

	switch {
	case a.Items != nil && b.Items != nil:
		result.Items = mergeSchemas(a.Items, b.Items)
	case a.Items != nil:
		result.Items = a.Items
	default:
		result.Items = b.Items
	}

	return result
}

// mergeAdditionalProperties fails open: an unset or true schema on either
// side allows additional properties.
func mergeAdditionalProperties(a, b *jsonschema.Schema) *jsonschema.Schema {
	if a == nil && b == nil {
		return nil
	}

	if a == nil || b == nil || isTrueSchema(a) || isTrueSchema(b) {
		return TrueSchema()
	}

	return a
}

// isTrueSchema checks if a schema is the "true" schema (validates everything).
func isTrueSchema(s *jsonschema.Schema) bool {
	return s != nil &&
		s.Not == nil &&
		s.Type == "" &&
		len(s.Types) == 0 &&
		s.Properties == nil &&
		s.Items == nil &&
		len(s.AllOf) == 0 &&
		len(s.AnyOf) == 0 &&
		len(s.OneOf) == 0
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}

	return b
}

// propertyKeys returns property keys in PropertyOrder, then any remaining
// keys sorted.
func propertyKeys(s *jsonschema.Schema) []string {
	keys := make([]string, 0, len(s.Properties))
	seen := make(map[string]bool, len(s.Properties))

	for _, k := range s.PropertyOrder {
		if _, ok := s.Properties[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	for _, k := range slices.Sorted(maps.Keys(s.Properties)) {
		if !seen[k] {
			keys = append(keys, k)
		}
	}

	return keys
}

// mergeProperties unions the properties of a and b into result, keeping the
// order of a followed by keys only present in b.
func mergeProperties(result, a, b *jsonschema.Schema) {
	result.Properties = make(map[string]*jsonschema.Schema)

	for _, k := range propertyKeys(a) {
		result.Properties[k] = a.Properties[k]
		result.PropertyOrder = append(result.PropertyOrder, k)
	}

	for _, k := range propertyKeys(b) {
		if existing, ok := result.Properties[k]; ok {
			result.Properties[k] = mergeSchemas(existing, b.Properties[k])

			continue
		}

		result.Properties[k] = b.Properties[k]
		result.PropertyOrder = append(result.PropertyOrder, k)
	}
}
