package yamldoc

import (
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"go.jacobcolvin.com/yamlconf/configtree"
)

// ParseValue reads a single YAML value, such as a scalar or a flow
// collection given on a command line. Unlike [Document.LoadBytes] any kind
// of root is accepted. Empty input yields an absent value.
func ParseValue(text string) (*configtree.Value, error) {
	var node yaml.Node

	err := yaml.Unmarshal([]byte(text), &node)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, newSyntaxError([]byte(text), err))
	}

	if len(node.Content) == 0 {
		return configtree.Absent(), nil
	}

	p := newParser(slog.New(slog.DiscardHandler))

	body, err := p.deref(node.Content[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	v, err := p.value(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	return v, nil
}

// MarshalValue renders v as a standalone YAML document, the reverse of
// [ParseValue]. Comments inside v are written; the leading and inline
// comments of v itself are not, since they belong to its parent key.
func MarshalValue(v *configtree.Value, opts ...Option) ([]byte, error) {
	em := newEmitter()
	doc := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{em.value(v)},
	}

	return New(opts...).encode(doc, em.folds)
}
