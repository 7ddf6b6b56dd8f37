package electionfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

var ErrCandidateNotFound = errors.New("candidate not found in election file")

// Editor rewrites single fields of an election file through the YAML node
// tree, so comments and key order survive.
type Editor struct {
	path string
	root yaml.Node
}

// OpenEditor loads the file at path for editing.
func OpenEditor(path string) (*Editor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading election file: %w", err)
	}
	e, err := NewEditor(data)
	if err != nil {
		return nil, err
	}
	e.path = path
	return e, nil
}

// NewEditor parses data for editing; Save is unavailable without a path.
func NewEditor(data []byte) (*Editor, error) {
	e := &Editor{}
	if err := yaml.Unmarshal(data, &e.root); err != nil {
		return nil, fmt.Errorf("parsing election file: %w", err)
	}
	if e.root.Kind != yaml.DocumentNode || len(e.root.Content) == 0 || e.root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing election file: top level is not a mapping")
	}
	return e, nil
}

// SetCandidateField sets key on the candidate at position on the list of
// the named party, adding the key when it is missing.
func (e *Editor) SetCandidateField(partyName string, position int, key, value string) error {
	parties := mappingValue(e.root.Content[0], "parties")
	if parties == nil || parties.Kind != yaml.SequenceNode {
		return ErrCandidateNotFound
	}
	for _, party := range parties.Content {
		name := mappingValue(party, "name")
		if name == nil || name.Value != partyName {
			continue
		}
		candidates := mappingValue(party, "candidates")
		if candidates == nil || candidates.Kind != yaml.SequenceNode {
			return ErrCandidateNotFound
		}
		for _, cand := range candidates.Content {
			pos := mappingValue(cand, "position")
			if pos == nil {
				continue
			}
			if n, err := strconv.Atoi(pos.Value); err == nil && n == position {
				setMappingValue(cand, key, value)
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s #%d", ErrCandidateNotFound, partyName, position)
}

// Bytes renders the edited document.
func (e *Editor) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&e.root); err != nil {
		return nil, fmt.Errorf("encoding election file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding election file: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the edited document back to the file it was opened from.
func (e *Editor) Save() error {
	if e.path == "" {
		return errors.New("editor has no file path")
	}
	data, err := e.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(e.path, data, 0o644)
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func setMappingValue(node *yaml.Node, key, value string) {
	if v := mappingValue(node, key); v != nil {
		v.Kind = yaml.ScalarNode
		v.Tag = "!!str"
		v.Value = value
		v.Content = nil
		return
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}
