package syntax

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for tree documents with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported tree document format")

// Format identifies the serialization of a tree document.
type Format string

// Supported tree document formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// Document is the serialized form of a node as emitted by the parser.
type Document struct {
	Kind     string      `json:"kind" yaml:"kind" msgpack:"kind"`
	Line     int         `json:"line" yaml:"line" msgpack:"line"`
	Text     string      `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Children []*Document `json:"children,omitempty" yaml:"children,omitempty" msgpack:"children,omitempty"`
}

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// IsTreeDocument reports whether path has a tree document extension.
func IsTreeDocument(path string) bool {
	_, err := FormatFromPath(path)
	return err == nil
}

// Decode reads a tree document and builds the linked node tree.
func Decode(r io.Reader, format Format) (*Node, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s tree document: %w", format, err)
	}
	if doc.Kind == "" {
		return nil, fmt.Errorf("tree document has no root kind")
	}
	return Build(&doc), nil
}

// Encode writes the tree rooted at n as a document.
func Encode(w io.Writer, n *Node, format Format) error {
	doc := ToDocument(n)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Build converts a document into a linked node tree. Unknown kind names
// become KindOther so that a newer parser never breaks analysis.
func Build(doc *Document) *Node {
	if doc == nil {
		return nil
	}
	kind, _ := ParseKind(doc.Kind)
	n := &Node{Kind: kind, Line: doc.Line, Text: doc.Text}
	for _, c := range doc.Children {
		n.AddChild(Build(c))
	}
	return n
}

// ToDocument converts a node tree into its serialized form.
func ToDocument(n *Node) *Document {
	if n == nil {
		return nil
	}
	doc := &Document{Kind: n.Kind.String(), Line: n.Line, Text: n.Text}
	for _, c := range n.children {
		doc.Children = append(doc.Children, ToDocument(c))
	}
	return doc
}
