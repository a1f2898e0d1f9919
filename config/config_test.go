package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	be.Err(t, err, nil)
	be.Equal(t, cfg.Indent, "  ")
	be.True(t, cfg.OpenTag)
	be.True(t, !cfg.Trace.Enabled)

	cfg, err = Parse([]byte("indent: \"\\t\"\n"))
	be.Err(t, err, nil)
	be.Equal(t, cfg.Indent, "\t")
	be.True(t, cfg.OpenTag)
}

func TestParseFull(t *testing.T) {
	cfg, err := Parse([]byte(`
indent: "    "
open_tag: false
trace:
  enabled: true
  filters: [lists_*, text_charAt]
`))
	be.Err(t, err, nil)
	be.Equal(t, cfg, Config{
		Indent:  "    ",
		OpenTag: false,
		Trace:   Trace{Enabled: true, Filters: []string{"lists_*", "text_charAt"}},
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "indnet: 2\n", "field indnet not found"},
		{"bad indent", "indent: xx\n", `indent must be spaces or tabs, got "xx"`},
		{"empty filter", "trace: {filters: [\" \"]}\n", "empty trace filter"},
		{"bad type", "open_tag: maybe\n", "cannot unmarshal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			be.Err(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blockc.yaml")
	be.Err(t, os.WriteFile(path, []byte("open_tag: false\n"), 0o644), nil)

	cfg, err := Load(path)
	be.Err(t, err, nil)
	be.True(t, !cfg.OpenTag)

	be.Err(t, os.WriteFile(path, []byte("indent: x\n"), 0o644), nil)
	_, err = Load(path)
	be.Err(t, err, path+": indent must be")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	be.True(t, os.IsNotExist(err))
}

func TestSetFilters(t *testing.T) {
	cfg := Default()
	cfg.SetFilters(" lists_* , ,text_*")
	be.Equal(t, cfg.Trace.Filters, []string{"lists_*", "text_*"})
	cfg.SetFilters("")
	be.Equal(t, len(cfg.Trace.Filters), 0)
}

func TestTracer(t *testing.T) {
	cfg := Default()
	be.True(t, cfg.Tracer(nil) == nil)
	be.True(t, cfg.Options(nil).Tracer == nil)

	var buf bytes.Buffer
	cfg.Trace = Trace{Enabled: true, Filters: []string{"text"}}
	tr := cfg.Tracer(&buf)
	be.True(t, tr.IsEnabled())
	tr.Emit("text", "program[0]:text", "None")
	tr.Emit("math_number", "program[1]:math_number", "None")
	be.Equal(t, buf.String(), "[TRACE] EMIT text at program[0]:text level=None\n")
	be.Equal(t, cfg.Options(&buf).Indent, "  ")
}
