package yamldoc

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"go.jacobcolvin.com/yamlconf/configtree"
)

const (
	tagStr       = "!!str"
	tagNull      = "!!null"
	tagMerge     = "!!merge"
	tagTimestamp = "!!timestamp"
)

// maxCollectionAliases caps how many aliases to mappings or sequences one
// document may expand.
const maxCollectionAliases = 50

var (
	errAliasCycle    = errors.New("alias refers to itself")
	errUnknownAnchor = errors.New("unknown anchor")
	errTooManyAlias  = errors.New("too many aliases to collections")
)

// parser converts a composed yaml.v3 node graph into configtree values,
// moving comments from node slots onto the entries they describe.
type parser struct {
	logger   *slog.Logger
	visiting map[*yaml.Node]bool
	// lines is the source text, used to find blank lines next to comments.
	// Without it blank lines at the edges of a comment are lost.
	lines []string
	// headEnd is the line after the document head comment, or 0.
	headEnd int
	aliases int
}

func newParser(logger *slog.Logger) *parser {
	return &parser{logger: logger, visiting: make(map[*yaml.Node]bool)}
}

// document returns the root mapping of doc. A nil value means the document
// was empty.
func (p *parser) document(doc *yaml.Node) (*configtree.Value, error) {
	body := doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, nil
		}

		body = doc.Content[0]
	}

	if body.Kind == 0 {
		return nil, nil
	}

	if doc.HeadComment != "" {
		p.headEnd = p.firstKeyLine(body)
	}

	node, err := p.deref(body)
	if err != nil {
		return nil, err
	}

	var root *configtree.Value

	switch {
	case node.Kind == yaml.MappingNode:
		root, err = p.mapping(node)
		if err != nil {
			return nil, err
		}
	case node.Kind == yaml.ScalarNode && node.ShortTag() == tagNull:
		root = configtree.NewMapping()
	default:
		return nil, fmt.Errorf("%w: found %s at line %d", ErrNotMapping, kindName(node.Kind), node.Line)
	}

	root.Comments = joinLines(commentLines(doc.HeadComment), commentLines(body.HeadComment))
	root.Inline = inlineLines(body.LineComment)
	root.Trailing = joinLines(root.Trailing, commentLines(doc.FootComment))

	if node.Kind == yaml.ScalarNode {
		root.Trailing = joinLines(root.Trailing, commentLines(body.FootComment))
	}

	return root, nil
}

type entry struct {
	key   *yaml.Node
	value *yaml.Node
	// merged entries come from another mapping, so their source lines say
	// nothing about this one.
	merged bool
}

// mapping builds a mapping value. Comments on node itself are left to the
// caller, except for its foot comment which becomes the trailing list.
func (p *parser) mapping(node *yaml.Node) (*configtree.Value, error) {
	out := configtree.NewMapping()
	out.SetFlow(node.Style&yaml.FlowStyle != 0 && len(node.Content) > 0)

	m := out.Mapping()
	block := node.Style&yaml.FlowStyle == 0

	entries, err := p.entries(node)
	if err != nil {
		return nil, err
	}

	var (
		carry      []string
		afterBlock bool
	)

	for _, e := range entries {
		key, ok := keyText(e.key)
		if !ok {
			p.logger.Warn("skipping non-scalar mapping key",
				slog.Int("line", e.key.Line),
				slog.Int("column", e.key.Column),
			)

			carry = joinLines(carry, commentLines(e.key.FootComment))

			continue
		}

		target, err := p.deref(e.value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}

		child, err := p.value(target)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}

		own := e.value.Kind != yaml.AliasNode

		head := commentLines(e.key.HeadComment)
		if own {
			head = joinLines(head, commentLines(e.value.HeadComment))
		}

		if block && !e.merged && !afterBlock {
			child.Comments = p.leading(carry, head, e.key.Line, e.key.HeadComment)
		} else {
			child.Comments = joinComments(carry, head)
		}

		afterBlock = endsInBlockScalar(e.value)

		carry = commentLines(e.key.FootComment)

		keyInline := inlineLines(e.key.LineComment)

		var valueInline []string
		if own {
			valueInline = inlineLines(e.value.LineComment)
		}

		if isContainer(target) {
			child.Inline = firstLines(keyInline, valueInline)
		} else {
			child.Inline = firstLines(valueInline, keyInline)

			if own {
				carry = joinLines(carry, commentLines(e.value.FootComment))
			}
		}

		m.Set(key, child)
	}

	out.Trailing = joinLines(carry, commentLines(node.FootComment))

	return out, nil
}

// entries flattens merge keys. Merged entries are inserted at the position
// of the merge key unless the mapping defines the key explicitly; among
// several merged mappings the earlier one wins.
func (p *parser) entries(node *yaml.Node) ([]entry, error) {
	explicit := make(map[string]bool)

	for i := 0; i+1 < len(node.Content); i += 2 {
		if key := node.Content[i]; key.ShortTag() != tagMerge {
			if text, ok := keyText(key); ok {
				explicit[text] = true
			}
		}
	}

	var (
		out    []entry
		merged = make(map[string]bool)
	)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.ShortTag() != tagMerge {
			out = append(out, entry{key: key, value: value})

			continue
		}

		sources, err := p.mergeSources(value)
		if err != nil {
			return nil, err
		}

		for _, src := range sources {
			if p.visiting[src] {
				return nil, fmt.Errorf("%w at line %d", errAliasCycle, value.Line)
			}

			p.visiting[src] = true
			inner, err := p.entries(src)

			delete(p.visiting, src)

			if err != nil {
				return nil, err
			}

			for _, e := range inner {
				text, ok := keyText(e.key)
				if !ok || explicit[text] || merged[text] {
					continue
				}

				merged[text] = true
				e.merged = true

				out = append(out, e)
			}
		}
	}

	return out, nil
}

func (p *parser) mergeSources(value *yaml.Node) ([]*yaml.Node, error) {
	target, err := p.deref(value)
	if err != nil {
		return nil, err
	}

	switch target.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{target}, nil
	case yaml.SequenceNode:
		var out []*yaml.Node

		for _, item := range target.Content {
			resolved, err := p.deref(item)
			if err != nil {
				return nil, err
			}

			if resolved.Kind == yaml.MappingNode {
				out = append(out, resolved)
			}
		}

		return out, nil
	}

	p.logger.Warn("ignoring merge key with non-mapping value", slog.Int("line", value.Line))

	return nil, nil
}

func (p *parser) value(node *yaml.Node) (*configtree.Value, error) {
	if p.visiting[node] {
		return nil, fmt.Errorf("%w at line %d", errAliasCycle, node.Line)
	}

	p.visiting[node] = true
	defer delete(p.visiting, node)

	switch node.Kind {
	case yaml.MappingNode:
		return p.mapping(node)
	case yaml.SequenceNode:
		return p.sequence(node)
	case yaml.ScalarNode:
		return scalar(node), nil
	}

	return configtree.Absent(), nil
}

func (p *parser) sequence(node *yaml.Node) (*configtree.Value, error) {
	items := make([]*configtree.Value, 0, len(node.Content))

	var (
		carry      []string
		afterBlock bool
		block      = node.Style&yaml.FlowStyle == 0
	)

	for _, item := range node.Content {
		target, err := p.deref(item)
		if err != nil {
			return nil, err
		}

		child, err := p.value(target)
		if err != nil {
			return nil, err
		}

		var head []string

		own := item.Kind != yaml.AliasNode
		if own {
			head = commentLines(item.HeadComment)
			child.Inline = inlineLines(item.LineComment)
		}

		if block && own && !afterBlock {
			child.Comments = p.leading(carry, head, item.Line, item.HeadComment)
		} else {
			child.Comments = joinComments(carry, head)
		}

		afterBlock = endsInBlockScalar(item)

		carry = nil

		if own && !isContainer(target) {
			carry = commentLines(item.FootComment)
		}

		items = append(items, child)
	}

	out := configtree.Sequence(items...)
	out.SetFlow(node.Style&yaml.FlowStyle != 0 && len(items) > 0)
	out.Trailing = joinLines(carry, commentLines(node.FootComment))

	return out, nil
}

// leading builds the leading comments of an entry at line whose own head
// comment is headText. Blank lines the node graph dropped are read back
// from the source: one above the head comment, or one between carried foot
// comments and the entry.
func (p *parser) leading(carry, head []string, line int, headText string) []string {
	top := line
	if headText != "" {
		top -= strings.Count(headText, "\n") + 1
	}

	if !p.blankAbove(top) {
		return joinComments(carry, head)
	}

	switch {
	case len(carry) == 0:
		return append([]string{configtree.BlankLine}, head...)
	case len(head) == 0:
		return append(slices.Clip(carry), configtree.BlankLine)
	}

	return joinComments(carry, head)
}

// blankAbove reports whether the source line above the 1-based line is
// empty. The line separating the document head comment does not count.
func (p *parser) blankAbove(line int) bool {
	above := line - 1
	if above < 1 || above > len(p.lines) || above == p.headEnd-1 {
		return false
	}

	return strings.TrimSpace(p.lines[above-1]) == ""
}

// firstKeyLine returns the line of the first entry of body, where the
// document head comment ends.
func (p *parser) firstKeyLine(body *yaml.Node) int {
	line := body.Line
	if body.Kind == yaml.MappingNode && len(body.Content) > 0 {
		line = body.Content[0].Line
		if head := body.Content[0].HeadComment; head != "" {
			line -= strings.Count(head, "\n") + 1
		}
	}

	return line
}

// deref follows an alias node to its anchored target. Aliases to
// collections are counted against [maxCollectionAliases].
func (p *parser) deref(node *yaml.Node) (*yaml.Node, error) {
	if node.Kind != yaml.AliasNode {
		return node, nil
	}

	if node.Alias == nil {
		return nil, fmt.Errorf("%w %q at line %d", errUnknownAnchor, node.Value, node.Line)
	}

	if isContainer(node.Alias) {
		p.aliases++
		if p.aliases > maxCollectionAliases {
			return nil, fmt.Errorf("%w: more than %d at line %d", errTooManyAlias, maxCollectionAliases, node.Line)
		}
	}

	return node.Alias, nil
}

// scalar converts a scalar node. Strings keep their quoting style; other
// tags are decoded and remember their source text. Values that fail to
// decode are kept as their raw text.
func scalar(node *yaml.Node) *configtree.Value {
	style := styleOf(node.Style)

	switch node.ShortTag() {
	case tagStr:
		if style == configtree.StyleDoubleQuoted && plainTag(node.Value) != tagStr {
			// Quoting was required; the writer adds it back.
			style = configtree.StylePlain
		}

		return configtree.String(node.Value, style)
	case tagTimestamp:
		// Dates stay text; the writer tags them so they are not quoted.
		return configtree.String(node.Value, style)
	case tagNull:
		v := configtree.Absent()
		v.SetSource(node.Value)

		return v
	}

	var decoded any
	if err := node.Decode(&decoded); err != nil {
		return configtree.String(node.Value, style)
	}

	if s, ok := decoded.(string); ok {
		return configtree.String(s, style)
	}

	v := configtree.Scalar(decoded)
	v.SetSource(node.Value)

	return v
}

func keyText(key *yaml.Node) (string, bool) {
	if key.Kind == yaml.AliasNode && key.Alias != nil {
		key = key.Alias
	}

	if key.Kind != yaml.ScalarNode {
		return "", false
	}

	if key.ShortTag() == tagNull {
		return "null", true
	}

	return key.Value, true
}

func styleOf(s yaml.Style) configtree.Style {
	switch {
	case s&yaml.DoubleQuotedStyle != 0:
		return configtree.StyleDoubleQuoted
	case s&yaml.SingleQuotedStyle != 0:
		return configtree.StyleSingleQuoted
	case s&yaml.LiteralStyle != 0:
		return configtree.StyleLiteral
	case s&yaml.FoldedStyle != 0:
		return configtree.StyleFolded
	}

	return configtree.StylePlain
}

// plainTag returns the tag text would resolve to as an untagged plain
// scalar.
func plainTag(text string) string {
	probe := yaml.Node{Kind: yaml.ScalarNode, Value: text}

	return probe.ShortTag()
}

// endsInBlockScalar reports whether the text of node ends with a literal or
// folded block, which owns the blank lines after it.
func endsInBlockScalar(node *yaml.Node) bool {
	for isContainer(node) && len(node.Content) > 0 {
		node = node.Content[len(node.Content)-1]
	}

	return node.Kind == yaml.ScalarNode && node.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0
}

func isContainer(node *yaml.Node) bool {
	return node.Kind == yaml.MappingNode || node.Kind == yaml.SequenceNode
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}

	return "node"
}

func joinLines(a, b []string) []string {
	if len(a) == 0 {
		return b
	}

	if len(b) == 0 {
		return a
	}

	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)

	return append(out, b...)
}

func firstLines(a, b []string) []string {
	if len(a) > 0 {
		return a
	}

	return b
}
