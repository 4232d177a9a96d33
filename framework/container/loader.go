package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ── Bulk loading ──────────────────────────────────────────────────────────────

// LoadFile reads a bindings document and calls Set for every top-level entry,
// in document order. Files ending in .json are read as JSON, everything else
// as YAML.
//
//	# bindings.yaml
//	mailer: SmtpMailer          # string → target reference
//	clock: ~                    # null → direct binding
//	limits: {rps: 10, burst: 20} # anything else → literal value
func (c *Container) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errConfigLoad(path, err)
	}

	var entries []entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		entries, err = parseJSON(data)
	default:
		entries, err = parseYAML(data)
	}
	if err != nil {
		return errConfigLoad(path, err)
	}

	// Nothing is registered unless the whole document parsed.
	for _, e := range entries {
		c.Set(e.id, e.concrete)
	}

	c.log().Info("bindings loaded", zap.String("file", path), zap.Int("count", len(entries)))
	return nil
}

type entry struct {
	id       string
	concrete any
}

// LoadBindings registers an already parsed mapping. Keys are applied in
// sorted order so the resulting binding order is deterministic.
func (c *Container) LoadBindings(bindings map[string]any) {
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.Set(k, bindings[k])
	}
}

func parseYAML(data []byte) ([]entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	// Empty document.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level must be a mapping of identifier to binding, got %s", nodeKind(root))
	}

	entries := make([]entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		concrete, err := yamlConcrete(value)
		if err != nil {
			return nil, fmt.Errorf("binding %q (line %d): %w", key.Value, key.Line, err)
		}
		entries = append(entries, entry{id: key.Value, concrete: concrete})
	}
	return entries, nil
}

// yamlConcrete maps a value node to what Set expects: strings stay target
// references, null means direct, anything else is decoded as a literal.
func yamlConcrete(n *yaml.Node) (any, error) {
	if n.Kind == yaml.ScalarNode {
		switch n.ShortTag() {
		case "!!str":
			return n.Value, nil
		case "!!null":
			return nil, nil
		}
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.MappingNode:
		return "mapping"
	}
	return "document"
}

func parseJSON(data []byte) ([]entry, error) {
	// Empty document, same as YAML.
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	iter := jsoniter.ParseBytes(jsoniter.ConfigCompatibleWithStandardLibrary, data)
	if next := iter.WhatIsNext(); next != jsoniter.ObjectValue {
		return nil, fmt.Errorf("top level must be an object of identifier to binding")
	}

	var entries []entry
	iter.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
		entries = append(entries, entry{id: key, concrete: it.Read()})
		return it.Error == nil
	})
	if iter.Error != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", iter.Error)
	}
	// Only whitespace may follow the top-level object.
	if iter.WhatIsNext(); !errors.Is(iter.Error, io.EOF) {
		return nil, fmt.Errorf("unexpected content after the top-level object")
	}
	return entries, nil
}
