package yamldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"go.jacobcolvin.com/yamlconf/configtree"
)

// Document is a [configtree.Tree] that can be read from and written to YAML
// text, keeping comments, key order and string styles.
//
// A Document is not safe for concurrent use.
type Document struct {
	*configtree.Tree

	logger *slog.Logger
	indent int
}

// New returns an empty document.
func New(opts ...Option) *Document {
	d := &Document{
		Tree:   configtree.New(),
		logger: slog.New(slog.DiscardHandler),
		indent: DefaultIndent,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Read returns a new document loaded from r.
func Read(r io.Reader, opts ...Option) (*Document, error) {
	d := New(opts...)

	err := d.Load(r)
	if err != nil {
		return nil, err
	}

	return d, nil
}

// ReadFile returns a new document loaded from the file at path.
func ReadFile(path string, opts ...Option) (*Document, error) {
	d := New(opts...)

	err := d.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Load replaces the document contents with the YAML read from r.
// See [Document.LoadBytes].
func (d *Document) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}

	return d.LoadBytes(data)
}

// LoadFile replaces the document contents with the YAML in the file at path.
// A missing file returns [ErrNotFound].
func (d *Document) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // Config path is caller-supplied.
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}

	d.logger.Debug("loading document", slog.String("path", path))

	return d.LoadBytes(data)
}

// LoadBytes replaces the document contents with the YAML in data.
//
// Empty input leaves the document untouched. Only the first YAML document
// is read. The root must be a mapping, otherwise [ErrNotMapping] is
// returned. Text that cannot be composed returns [ErrInvalidYAML] wrapping a
// [*SyntaxError]. On any error the previous contents are kept.
func (d *Document) LoadBytes(data []byte) error {
	var node yaml.Node

	err := yaml.Unmarshal(data, &node)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidYAML, newSyntaxError(data, err))
	}

	p := newParser(d.logger)
	p.lines = strings.Split(string(data), "\n")

	root, err := p.document(&node)
	if errors.Is(err, ErrNotMapping) {
		return err
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	if root == nil {
		d.logger.Debug("empty document, keeping current contents")

		return nil
	}

	d.Replace(root)
	d.logger.Debug("loaded document", slog.Int("keys", root.Mapping().Len()))

	return nil
}

// Bytes renders the document as YAML.
func (d *Document) Bytes() ([]byte, error) {
	em := newEmitter()

	return d.encode(em.document(d.Root()), em.folds)
}

func (d *Document) encode(doc *yaml.Node, folds map[*yaml.Node]bool) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(d.indent)

	err := enc.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	out, err := restoreFolds(buf.Bytes(), doc, folds)
	if err != nil {
		return nil, err
	}

	return restoreBlankLines(out), nil
}

// Encode writes the document as YAML to w.
func (d *Document) Encode(w io.Writer) error {
	out, err := d.Bytes()
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return nil
}

// Save writes the document to path, creating parent directories as needed.
// The file is replaced atomically; an existing file keeps its permissions.
func (d *Document) Save(path string) error {
	out, err := d.Bytes()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)

	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	mode := fs.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	defer os.Remove(tmp.Name()) //nolint:errcheck // Already renamed on success.

	_, err = tmp.Write(out)
	if err == nil {
		err = tmp.Chmod(mode)
	}

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	d.logger.Debug("saved document", slog.String("path", path), slog.Int("bytes", len(out)))

	return nil
}
