// Package models defines data structures used throughout the generator.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Slot is one named slot value. Values are strings or booleans as read from
// the frame tables; nested maps and slices are tolerated and copied deeply.
type Slot struct {
	Name  string
	Value interface{}
}

// Slots is an ordered slot mapping. It serializes as a JSON object or YAML
// mapping whose keys keep their declaration order.
type Slots []Slot

// Clone returns a deep copy so a sample never aliases its frame's slots
func (s Slots) Clone() Slots {
	if s == nil {
		return nil
	}
	out := make(Slots, len(s))
	for i, slot := range s {
		out[i] = Slot{Name: slot.Name, Value: cloneValue(slot.Value)}
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case Slots:
		return val.Clone()
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return val
	}
}

// MarshalJSON writes the slots as an object in declaration order. A nil
// Slots is written as an empty object.
func (s Slots) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, slot := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(slot.Name); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		if err := enc.Encode(slot.Value); err != nil {
			return nil, fmt.Errorf("slot %q: %w", slot.Name, err)
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping its key order
func (s *Slots) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("slots must be an object, got %v", tok)
	}

	out := Slots{}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		if seen[name] {
			return fmt.Errorf("duplicate slot %q", name)
		}
		seen[name] = true

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("slot %q: %w", name, err)
		}
		out = append(out, Slot{Name: name, Value: value})
	}
	*s = out
	return nil
}

// MarshalYAML writes the slots as a mapping in declaration order
func (s Slots) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, slot := range s {
		key := &yaml.Node{}
		if err := key.Encode(slot.Name); err != nil {
			return nil, err
		}
		value := &yaml.Node{}
		if err := value.Encode(slot.Value); err != nil {
			return nil, fmt.Errorf("slot %q: %w", slot.Name, err)
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping keeping its key order
func (s *Slots) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: slots must be a mapping", node.Line)
	}

	out := make(Slots, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return err
		}
		if seen[name] {
			return fmt.Errorf("line %d: duplicate slot %q", node.Content[i].Line, name)
		}
		seen[name] = true

		var value interface{}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("slot %q: %w", name, err)
		}
		out = append(out, Slot{Name: name, Value: value})
	}
	*s = out
	return nil
}

// Frame is a static semantic template: an intent label with its slot values and
// the realization category used to pick a surface string.
type Frame struct {
	Intent string `json:"intent" yaml:"intent"`
	Slots  Slots  `json:"slots" yaml:"slots"`
	Type   string `json:"type" yaml:"type"`
}

// Clone returns a deep copy of the frame
func (f Frame) Clone() Frame {
	return Frame{Intent: f.Intent, Slots: f.Slots.Clone(), Type: f.Type}
}
