package block

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlBlock mirrors one block in a program file.
type yamlBlock struct {
	Kind   string                `yaml:"kind"`
	Fields map[string]string     `yaml:"fields,omitempty"`
	Inputs map[string]*yamlBlock `yaml:"inputs,omitempty"`
	Items  *int                  `yaml:"items,omitempty"`
	Next   *yamlBlock            `yaml:"next,omitempty"`

	line int
}

// UnmarshalYAML records the source line so load errors can point at it.
func (y *yamlBlock) UnmarshalYAML(value *yaml.Node) error {
	type plain yamlBlock
	if err := value.Decode((*plain)(y)); err != nil {
		return err
	}
	y.line = value.Line
	return nil
}

// yamlFile is the top-level layout of a program file
type yamlFile struct {
	Program []*yamlBlock `yaml:"program"`
}

// Load reads a YAML program file.
func Load(path string) (Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	prog, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// Parse decodes a YAML program document.
func Parse(data []byte) (Program, error) {
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return convertProgram(file.Program)
}

// ParseBlocks decodes a bare YAML sequence of top-level blocks, the form
// used inside test fixtures.
func ParseBlocks(data []byte) (Program, error) {
	var blocks []*yamlBlock
	if err := yaml.Unmarshal(data, &blocks); err != nil {
		return nil, err
	}
	return convertProgram(blocks)
}

// Decode converts an already parsed YAML sequence of top-level blocks, so
// programs can be embedded in larger documents.
func Decode(node *yaml.Node) (Program, error) {
	var blocks []*yamlBlock
	if err := node.Decode(&blocks); err != nil {
		return nil, err
	}
	return convertProgram(blocks)
}

func convertProgram(blocks []*yamlBlock) (Program, error) {
	prog := make(Program, 0, len(blocks))
	for _, y := range blocks {
		if y == nil {
			continue
		}
		n, err := convert(y)
		if err != nil {
			return nil, err
		}
		prog = append(prog, n)
	}
	return prog, nil
}

func convert(y *yamlBlock) (*Node, error) {
	if y.Kind == "" {
		return nil, fmt.Errorf("line %d: block has no kind", y.line)
	}

	n := New(y.Kind)
	for k, v := range y.Fields {
		n.Fields[k] = v
	}

	items := 0
	for slot, child := range y.Inputs {
		if child == nil {
			continue
		}
		c, err := convert(child)
		if err != nil {
			return nil, err
		}
		n.Inputs[slot] = c
		if idx, ok := itemIndex(slot); ok && idx+1 > items {
			items = idx + 1
		}
	}

	if y.Items != nil {
		if *y.Items < 0 {
			return nil, fmt.Errorf("line %d: %s has negative item count %d", y.line, y.Kind, *y.Items)
		}
		items = *y.Items
	}
	n.Items = items

	if y.Next != nil {
		next, err := convert(y.Next)
		if err != nil {
			return nil, err
		}
		n.After = next
	}
	return n, nil
}

// itemIndex parses "ADD<n>" slot names.
func itemIndex(slot string) (int, bool) {
	rest, ok := strings.CutPrefix(slot, "ADD")
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
