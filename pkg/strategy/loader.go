package strategy

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes serialized strategy YAML into a typed Document.
//
// The decode is deliberately lenient about unknown fields: structural
// enforcement belongs to the JSON Schema pass, and the domain validator must
// be able to inspect documents the schema would reject.
func Parse(text string) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads a strategy document from a reader.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read strategy: %w", err)
	}
	return Parse(string(data))
}

// LoadFile reads and decodes a strategy YAML file.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open strategy: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Dump serializes a document back to canonical YAML. The store, the diff
// reporter, and the HTTP surface all round-trip documents through Dump so
// that two serializations of the same document compare equal line-for-line.
func Dump(doc *Document) (string, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal strategy: %w", err)
	}
	return string(data), nil
}
