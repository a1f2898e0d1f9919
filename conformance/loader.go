package conformance

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TestPath is the fixture directory, relative to this package.
const TestPath = "testdata"

// LoadedTest represents a test with its source file path
type LoadedTest struct {
	File  string
	Suite string
	Test  TestCase
}

// LoadAllTests walks dir and loads every YAML suite and every markdown
// case file (*_test.md) in it.
func LoadAllTests(dir string) ([]LoadedTest, error) {
	var loaded []LoadedTest

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		var tests []LoadedTest
		switch {
		case filepath.Ext(path) == ".yaml":
			tests, err = loadSuiteFile(path)
		case strings.HasSuffix(path, "_test.md"):
			tests, err = loadMarkdownFile(path)
		default:
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		// Get relative path for cleaner test names
		relPath, _ := filepath.Rel(dir, path)
		for i := range tests {
			tests[i].File = filepath.ToSlash(relPath)
		}
		loaded = append(loaded, tests...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

// loadSuiteFile parses a single YAML file and returns all test cases
func loadSuiteFile(path string) ([]LoadedTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, err
	}

	tests := make([]LoadedTest, 0, len(suite.Tests))
	for _, test := range suite.Tests {
		tests = append(tests, LoadedTest{Suite: suite.Name, Test: test})
	}
	return tests, nil
}

// loadMarkdownFile reads the cases of a markdown file. The suite is named
// after the file.
func loadMarkdownFile(path string) ([]LoadedTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cases, err := ExtractTestCases(string(data))
	if err != nil {
		return nil, err
	}

	suite := strings.TrimSuffix(filepath.Base(path), "_test.md")
	tests := make([]LoadedTest, 0, len(cases))
	for _, tc := range cases {
		tests = append(tests, LoadedTest{Suite: suite, Test: tc})
	}
	return tests, nil
}
