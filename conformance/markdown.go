package conformance

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Fence languages understood in markdown case files.
const (
	FenceProgram  = "yaml"     // the block program
	FenceOutput   = "php"      // exact expected output
	FenceError    = "error"    // expected error message substring
	FenceContains = "contains" // one expected output substring per line
)

// ExtractTestCases parses a markdown document. Every heading starting with
// "Test: " opens a case; the fenced blocks under it give its program and
// expectations.
func ExtractTestCases(markdown string) ([]TestCase, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []TestCase
	var current *TestCase
	hasProgram := false

	flush := func() error {
		if current == nil {
			return nil
		}
		if !hasProgram {
			return fmt.Errorf("test '%s' has no %s fence", current.Name, FenceProgram)
		}
		if current.Expect.IsEmpty() {
			return fmt.Errorf("test '%s' has no expectation fence", current.Name)
		}
		cases = append(cases, *current)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			name, ok := strings.CutPrefix(heading, "Test: ")
			if !ok {
				return ast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return ast.WalkStop, err
			}
			current = &TestCase{Name: strings.TrimSpace(name)}
			hasProgram = false

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := fenceContent(n, source)
			line := lineNumber(n, source)

			if current == nil {
				if language == "" {
					return ast.WalkContinue, nil
				}
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
			}

			switch language {
			case FenceProgram:
				if hasProgram {
					return ast.WalkStop, fmt.Errorf("line %d: multiple %s fences found in test '%s'", line, language, current.Name)
				}
				if err := yaml.Unmarshal([]byte(content), &current.Program); err != nil {
					return ast.WalkStop, fmt.Errorf("line %d: test '%s': %w", line, current.Name, err)
				}
				hasProgram = true
			case FenceOutput:
				out := content
				current.Expect.Output = &out
			case FenceError:
				current.Expect.Error = strings.TrimSpace(content)
			case FenceContains:
				for _, s := range strings.Split(content, "\n") {
					if s = strings.TrimSpace(s); s != "" {
						current.Expect.Contains = append(current.Expect.Contains, s)
					}
				}
			case "":
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

// nodeText extracts the plain text of a markdown node
func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(fence *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < fence.Lines().Len(); i++ {
		line := fence.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// lineNumber returns the 1-based line a node starts on.
func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:min(start, len(source))], []byte("\n")) + 1
}
