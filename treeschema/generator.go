package treeschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/yamlconf/configtree"
)

// ErrWriteOutput is returned when a schema cannot be written.
var ErrWriteOutput = errors.New("write output")

const draft7 = "http://json-schema.org/draft-07/schema#"

// Generator infers JSON Schema from configuration trees.
type Generator struct {
	title       string
	description string
	id          string
	strict      bool
	comments    bool
	defaults    bool
}

// Option configures a Generator.
type Option func(*Generator)

// NewGenerator creates a Generator with the given options. Comments are
// used as descriptions unless disabled with [WithComments].
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{comments: true}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WithTitle sets the schema title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithDescription sets the schema description.
func WithDescription(desc string) Option {
	return func(g *Generator) {
		g.description = desc
	}
}

// WithID sets the schema $id.
func WithID(id string) Option {
	return func(g *Generator) {
		g.id = id
	}
}

// WithStrict sets additionalProperties to false on objects.
func WithStrict(strict bool) Option {
	return func(g *Generator) {
		g.strict = strict
	}
}

// WithComments controls whether leading and inline comments become
// property descriptions.
func WithComments(enabled bool) Option {
	return func(g *Generator) {
		g.comments = enabled
	}
}

// WithDefaults records scalar values as schema defaults.
func WithDefaults(enabled bool) Option {
	return func(g *Generator) {
		g.defaults = enabled
	}
}

// Generate produces a draft-07 schema describing all trees. Properties are
// unioned across trees and conflicting types are widened.
func (g *Generator) Generate(trees ...*configtree.Tree) *jsonschema.Schema {
	var result *jsonschema.Schema

	for _, tree := range trees {
		result = mergeSchemas(result, g.walkMapping(tree.Root()))
	}

	if result == nil {
		result = &jsonschema.Schema{}
	}

	result.Schema = draft7

	if g.title != "" {
		result.Title = g.title
	}

	if g.description != "" {
		result.Description = g.description
	}

	if g.id != "" {
		result.ID = g.id
	}

	if (result.Type == typeObject || result.Properties != nil) && result.AdditionalProperties == nil {
		result.AdditionalProperties = g.additionalProperties()
	}

	return result
}

// Write encodes schema as indented JSON followed by a newline.
func Write(w io.Writer, schema *jsonschema.Schema, indent int) error {
	out, err := json.MarshalIndent(schema, "", strings.Repeat(" ", max(indent, 0)))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	out = append(out, '\n')

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func (g *Generator) walkValue(v *configtree.Value) *jsonschema.Schema {
	switch v.Kind() {
	case configtree.KindMapping:
		return g.walkMapping(v)
	case configtree.KindSequence:
		return g.walkSequence(v)
	case configtree.KindScalar:
		return g.walkScalar(v)
	case configtree.KindAbsent:
	}

	return &jsonschema.Schema{}
}

// walkMapping builds an object schema with properties in key order.
func (g *Generator) walkMapping(v *configtree.Value) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:                 typeObject,
		AdditionalProperties: g.additionalProperties(),
	}

	m := v.Mapping()
	if m == nil || m.Len() == 0 {
		return schema
	}

	schema.Properties = make(map[string]*jsonschema.Schema, m.Len())

	for key, child := range m.All() {
		childSchema := g.walkValue(child)

		if g.comments && childSchema.Description == "" {
			childSchema.Description = describe(child)
		}

		schema.Properties[key] = childSchema
		schema.PropertyOrder = append(schema.PropertyOrder, key)
	}

	return schema
}

func (g *Generator) walkSequence(v *configtree.Value) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:  typeArray,
		Items: g.inferItems(v.Items()),
	}
}

// inferItems merges item schemas when every item is a mapping, otherwise
// widens the scalar item types.
func (g *Generator) inferItems(items []*configtree.Value) *jsonschema.Schema {
	if len(items) == 0 {
		return nil
	}

	allMappings := true

	for _, item := range items {
		if !item.IsMapping() {
			allMappings = false

			break
		}
	}

	if allMappings {
		var result *jsonschema.Schema

		for _, item := range items {
			result = mergeSchemas(result, g.walkMapping(item))
		}

		return result
	}

	resultType := inferType(items[0])

	for _, item := range items[1:] {
		resultType = widenType(resultType, inferType(item))
	}

	if resultType == "" {
		return nil
	}

	return &jsonschema.Schema{Type: resultType}
}

func (g *Generator) walkScalar(v *configtree.Value) *jsonschema.Schema {
	schema := &jsonschema.Schema{Type: inferType(v)}

	if g.defaults {
		schema.Default = DefaultValue(v.Scalar())
	}

	return schema
}

func (g *Generator) additionalProperties() *jsonschema.Schema {
	if g.strict {
		return FalseSchema()
	}

	return TrueSchema()
}
