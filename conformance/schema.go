package conformance

import (
	"blockc/block"

	"gopkg.in/yaml.v3"
)

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Tests       []TestCase `yaml:"tests"`
}

// TestCase represents a single test within a suite
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"`   // bool or string
	Indent      string      `yaml:"indent,omitempty"` // statement indentation, two spaces if empty
	Program     yaml.Node   `yaml:"program"`          // sequence of top-level blocks
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what result is expected from a test
type Expectation struct {
	Output   *string  `yaml:"output,omitempty"`   // exact match
	Error    string   `yaml:"error,omitempty"`    // error message substring
	Contains []string `yaml:"contains,omitempty"` // output substrings
}

// IsEmpty reports whether the expectation checks nothing.
func (e Expectation) IsEmpty() bool {
	return e.Output == nil && e.Error == "" && len(e.Contains) == 0
}

// Blocks decodes the program of the test.
func (tc *TestCase) Blocks() (block.Program, error) {
	if tc.Program.Kind == 0 {
		return nil, nil
	}
	return block.Decode(&tc.Program)
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
	case string:
		return true, v
	}
	return false, ""
}
