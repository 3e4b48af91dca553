package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Path of the annotation options inside the schema document.
const (
	SchemaSectionKey = "Cognitive Appraisals"
	SchemaOptionsKey = "Options"
)

var (
	// ErrParse is returned when the schema file is not valid YAML.
	ErrParse = errors.New("schema: malformed YAML")
	// ErrMissingKey is returned when the expected section or options key is absent.
	ErrMissingKey = errors.New("schema: missing key")
)

// LoadSchema reads the YAML schema at path and returns the value stored under
// "Cognitive Appraisals" -> "Options" as JSON. Mapping key order is kept.
func LoadSchema(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open schema %s: %w", path, err)
	}

	options, err := DecodeSchema(data)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return options, nil
}

// DecodeSchema extracts the options value from raw YAML.
func DecodeSchema(data []byte) (json.RawMessage, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	section, err := lookupKey(&root, SchemaSectionKey)
	if err != nil {
		return nil, err
	}
	options, err := lookupKey(section, SchemaOptionsKey)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, options); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return json.RawMessage(buf.Bytes()), nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func lookupKey(n *yaml.Node, key string) (*yaml.Node, error) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %q (parent is not a mapping)", ErrMissingKey, key)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrMissingKey, key)
}

// writeJSON renders a YAML node as JSON, walking mappings in document order.
func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	n = resolve(n)
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(resolve(n.Content[i]).Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		buf.Write(b)
	}
	return nil
}
