package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const ethanolJSON = `{"molecules": [{
	"name": "ethanol",
	"atoms": [{"z": 6}, {"z": 6}, {"z": 8}],
	"bonds": [{"begin": 0, "end": 1, "type": "single"}, {"begin": 1, "end": 2, "type": "single"}],
	"coords": [{"x": 0, "y": 0}, {"x": 1.3, "y": 0.75}, {"x": 2.6, "y": 0}]
}, {
	"name": "water",
	"atoms": [{"z": 8}],
	"coords": [{"x": 0, "y": 0}]
}]}`

// run executes the root command and returns what it wrote to Out.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	var out bytes.Buffer
	c.Out = &out
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ethanol.json")
	if err := os.WriteFile(path, []byte(ethanolJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderCommandStdout(t *testing.T) {
	out, err := run(t, "render", writeDoc(t), "--no-cache", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<svg") {
		t.Errorf("stdout = %.80q", out)
	}
}

func TestRenderCommandFiles(t *testing.T) {
	doc := writeDoc(t)
	base := filepath.Join(t.TempDir(), "out", "ethanol")
	if _, err := run(t, "render", doc, "--no-cache", "-f", "svg,json", "-o", base, "--atom-indices"); err != nil {
		t.Fatal(err)
	}
	for _, ext := range []string{".svg", ".json"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s: %v", ext, err)
		}
	}
}

func TestGridCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "grid.png")
	if _, err := run(t, "grid", writeDoc(t), "--no-cache", "--columns", "2", "-f", "png", "-o", out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestGraphCommandDOT(t *testing.T) {
	out, err := run(t, "graph", writeDoc(t), "--no-cache", "-f", "dot", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "graph G {") {
		t.Errorf("stdout = %.40q", out)
	}
}

func TestCommandErrors(t *testing.T) {
	doc := writeDoc(t)
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "nope.json"), "--no-cache"}},
		{"index out of range", []string{"render", doc, "--no-cache", "--index", "5", "-o", "-"}},
		{"bad format", []string{"render", doc, "--no-cache", "-f", "gif"}},
		{"bad highlight", []string{"render", doc, "--no-cache", "--highlight-atoms", "a"}},
		{"missing options file", []string{"grid", doc, "--no-cache", "--options", "missing.toml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestOptionsCommand(t *testing.T) {
	out, err := run(t, "options")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[draw]", "bond_line_width", "base_font_size"} {
		if !strings.Contains(out, want) {
			t.Errorf("options output lacks %q", want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "dev") {
		t.Errorf("version = %q", out)
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.Join(dir, appName) {
		t.Errorf("cache path = %q", out)
	}
}
