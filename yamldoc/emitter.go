package yamldoc

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"go.jacobcolvin.com/yamlconf/configtree"
)

// emitter builds a yaml.v3 node graph from configtree values. It records the
// folded scalars it rewrote as literal blocks so that [restoreFolds] can
// switch them back after encoding.
type emitter struct {
	folds map[*yaml.Node]bool
	// flow counts the enclosing flow collections. Block scalars cannot be
	// written inside one.
	flow int
}

func newEmitter() *emitter {
	return &emitter{folds: make(map[*yaml.Node]bool)}
}

// document places root comments on the document node: leading comments as
// its head, trailing comments as its foot.
func (e *emitter) document(root *configtree.Value) *yaml.Node {
	var body *yaml.Node

	if m := root.Mapping(); m != nil {
		flow := m.Len() == 0 || root.Flow()
		if flow {
			e.flow++
			defer func() { e.flow-- }()
		}

		body = e.mapping(m, nil)
		if flow {
			body.Style = yaml.FlowStyle
		}
	} else {
		body = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle}
	}

	body.LineComment = inlineComment(root.Inline)

	return &yaml.Node{
		Kind:        yaml.DocumentNode,
		Content:     []*yaml.Node{body},
		HeadComment: blockComment(root.Comments),
		FootComment: blockComment(root.Trailing),
	}
}

// mapping emits keys in insertion order. Leading comments go above each key;
// inline comments go on the key line for containers and after the value for
// scalars. Trailing comments attach to the last key.
func (e *emitter) mapping(m *configtree.Mapping, trailing []string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	var last *yaml.Node

	for key, v := range m.All() {
		keyNode := &yaml.Node{
			Kind:        yaml.ScalarNode,
			Tag:         tagStr,
			Value:       key,
			HeadComment: headComment(v.Comments),
		}

		valueNode := e.value(v)

		if v.IsMapping() || v.IsSequence() {
			keyNode.LineComment = inlineComment(v.Inline)
		} else {
			valueNode.LineComment = inlineComment(v.Inline)
		}

		node.Content = append(node.Content, keyNode, valueNode)
		last = keyNode
	}

	if foot := blockComment(trailing); foot != "" {
		if last != nil {
			last.FootComment = foot
		} else {
			node.FootComment = foot
		}
	}

	return node
}

func (e *emitter) sequence(v *configtree.Value) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if v.Flow() {
		node.Style = yaml.FlowStyle
	}

	for _, item := range v.Items() {
		child := e.value(item)
		child.HeadComment = headComment(item.Comments)
		child.LineComment = inlineComment(item.Inline)
		node.Content = append(node.Content, child)
	}

	if foot := blockComment(v.Trailing); foot != "" {
		if n := len(node.Content); n > 0 {
			node.Content[n-1].FootComment = foot
		} else {
			node.FootComment = foot
		}
	}

	return node
}

func (e *emitter) value(v *configtree.Value) *yaml.Node {
	if v.Flow() {
		e.flow++
		defer func() { e.flow-- }()
	}

	switch v.Kind() {
	case configtree.KindMapping:
		node := e.mapping(v.Mapping(), v.Trailing)
		if v.Flow() {
			node.Style = yaml.FlowStyle
		}

		return node
	case configtree.KindSequence:
		return e.sequence(v)
	case configtree.KindScalar:
		return e.scalar(v)
	case configtree.KindAbsent:
	}

	null := &yaml.Node{Kind: yaml.ScalarNode, Tag: tagNull, Value: "null"}
	if src, ok := v.Source(); ok && src != "" && plainTag(src) == tagNull {
		null.Value = src
	}

	return null
}

func (e *emitter) scalar(v *configtree.Value) *yaml.Node {
	if s, ok := v.Text(); ok {
		return e.text(s, v.Style())
	}

	// Reuse the loaded spelling (e.g. "0x1F" or "1.0"); it is dropped as
	// soon as the payload changes.
	if src, ok := v.Source(); ok && src != "" {
		if tag := plainTag(src); tag != tagStr {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: src}
		}
	}

	node := &yaml.Node{}
	if err := node.Encode(v.Scalar()); err != nil || node.Kind != yaml.ScalarNode {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: fmt.Sprint(v.Scalar())}
	}

	node.Style = 0

	switch v.Scalar().(type) {
	case float32, float64:
		// Integral floats encode as "1", which reads back as an int.
		if node.ShortTag() == "!!int" {
			node.Value += ".0"
			node.Tag = "!!float"
		}
	}

	return node
}

// text emits a string. Plain strings that would read back as another type
// are quoted by the encoder, except timestamps which load as strings.
// Foldable strings are emitted literally with one word per line. Inside a
// flow collection folded strings are double quoted.
func (e *emitter) text(s string, style configtree.Style) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: s}

	switch style {
	case configtree.StylePlain:
		if plainTag(s) == tagTimestamp {
			node.Tag = tagTimestamp
		}
	case configtree.StyleDoubleQuoted:
		node.Style = yaml.DoubleQuotedStyle
	case configtree.StyleSingleQuoted:
		node.Style = yaml.SingleQuotedStyle
	case configtree.StyleLiteral:
		node.Style = yaml.LiteralStyle
	case configtree.StyleFolded:
		if e.flow > 0 {
			node.Style = yaml.DoubleQuotedStyle

			break
		}

		if !canFold(s) {
			node.Style = yaml.FoldedStyle

			break
		}

		node.Value = foldWords(s)
		node.Style = yaml.LiteralStyle
		e.folds[node] = true
	}

	return node
}
