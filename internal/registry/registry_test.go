package registry

import (
	"embed"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msalah0e/devdeck/internal/graph"
	"github.com/msalah0e/devdeck/internal/scene"
	"github.com/msalah0e/devdeck/internal/taxonomy"
)

//go:embed testdata
var testFS embed.FS

func TestLoadFromFS(t *testing.T) {
	reg, err := LoadFromFS(testFS, "testdata")
	if err != nil {
		t.Fatalf("LoadFromFS failed: %v", err)
	}

	if len(reg.All()) != 2 {
		t.Fatalf("expected 2 views, got %d", len(reg.All()))
	}
	if len(reg.Templates()) != 1 {
		t.Fatalf("expected 1 template, got %d", len(reg.Templates()))
	}

	v := reg.Get("sitemap")
	if v == nil {
		t.Fatal("sitemap (yaml) not found")
	}
	if v.Title != "Site Map" {
		t.Errorf("expected 'Site Map', got %q", v.Title)
	}
	if reg.Get("nonexistent") != nil {
		t.Error("Get(nonexistent) should return nil")
	}
}

func TestLookup(t *testing.T) {
	reg, _ := LoadFromFS(testFS, "testdata")
	if _, err := reg.Lookup("pipeline"); err != nil {
		t.Fatalf("Lookup(pipeline): %v", err)
	}
	_, err := reg.Lookup("missing")
	if !errors.Is(err, ErrViewNotFound) {
		t.Errorf("expected ErrViewNotFound, got %v", err)
	}
	_, err = reg.Template("missing")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestViewGraph(t *testing.T) {
	reg, _ := LoadFromFS(testFS, "testdata")
	v, _ := reg.Lookup("pipeline")

	g, err := v.Graph()
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}
	dst, ok := g.Node("dst")
	if !ok {
		t.Fatal("dst not found")
	}
	if dst.Kind != taxonomy.Database {
		t.Errorf("expected database kind, got %v", dst.Kind)
	}
	if dst.Position != graph.Pt(320, 60) {
		t.Errorf("unexpected position %v", dst.Position)
	}
	if dst.Ports.Inputs[1].Type != taxonomy.Any {
		t.Errorf("unknown type should fall back to any, got %v", dst.Ports.Inputs[1].Type)
	}

	edges := g.Edges()
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}
	if edges[1].ID != "e2" {
		t.Errorf("expected generated id e2, got %q", edges[1].ID)
	}
	if edges[0].Source != (graph.Endpoint{Node: "src", Port: "text"}) {
		t.Errorf("unexpected source %v", edges[0].Source)
	}
}

func TestViewOpenModes(t *testing.T) {
	reg, _ := LoadFromFS(testFS, "testdata")

	v, _ := reg.Lookup("sitemap")
	s, err := v.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.Mode() != scene.ReadOnly {
		t.Errorf("expected read-only scene")
	}
	if s.Title() != "Site Map" {
		t.Errorf("expected title 'Site Map', got %q", s.Title())
	}

	v, _ = reg.Lookup("pipeline")
	s, err = v.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.Mode() != scene.Editable {
		t.Errorf("expected editable scene")
	}
}

func TestViewUnknownKind(t *testing.T) {
	v := View{Name: "bad", Nodes: []NodeDef{{ID: "x", Kind: "spaceship"}}}
	if _, err := v.Graph(); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	v.Mode = "sideways"
	if _, err := v.Open(); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestLint(t *testing.T) {
	reg, _ := LoadFromFS(testFS, "testdata")
	v, _ := reg.Lookup("pipeline")

	problems := v.Lint()
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %d: %v", len(problems), problems)
	}
	if !strings.Contains(problems[0], `unknown type "tensor"`) {
		t.Errorf("unexpected first problem %q", problems[0])
	}
	if !strings.Contains(problems[1], `"ghost" not found`) {
		t.Errorf("unexpected second problem %q", problems[1])
	}

	sitemap, _ := reg.Lookup("sitemap")
	if p := sitemap.Lint(); len(p) != 0 {
		t.Errorf("expected clean sitemap, got %v", p)
	}
}

func TestTemplateNode(t *testing.T) {
	reg, _ := LoadFromFS(testFS, "testdata")
	tpl, err := reg.Template("summarizer")
	if err != nil {
		t.Fatalf("Template: %v", err)
	}

	n, err := tpl.Node("agent-1")
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	if n.ID != "agent-1" || n.Label != "Summarizer" || n.Kind != taxonomy.Function {
		t.Errorf("unexpected node %+v", n)
	}
	if n.Meta["model"] != "small-model" || n.Meta["prompt"] != "Summarize the input." {
		t.Errorf("unexpected meta %v", n.Meta)
	}
	if len(n.Ports.Inputs) != 1 || n.Ports.Outputs[0].Type != taxonomy.String {
		t.Errorf("unexpected ports %+v", n.Ports)
	}
}

func TestSearch(t *testing.T) {
	reg, _ := LoadFromFS(testFS, "testdata")

	tests := []struct {
		query string
		want  int
	}{
		{"pipe", 1},
		{"SITE", 1},
		{"two-stage", 1},
		{"zzz", 0},
	}
	for _, tt := range tests {
		if got := len(reg.Search(tt.query)); got != tt.want {
			t.Errorf("Search(%q) = %d results, want %d", tt.query, got, tt.want)
		}
	}
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want graph.Endpoint
	}{
		{"a.b", graph.Endpoint{Node: "a", Port: "b"}},
		{"api.v2.out", graph.Endpoint{Node: "api.v2", Port: "out"}},
		{"lonely", graph.Endpoint{Node: "lonely"}},
	}
	for _, tt := range tests {
		if got := ParseEndpoint(tt.in); got != tt.want {
			t.Errorf("ParseEndpoint(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadAllUserOverrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	dir := filepath.Join(tmp, "devdeck", "views")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	override := `
views:
  - name: pipeline
    title: Custom Pipeline
    mode: readonly
templates:
  - name: reviewer
    kind: function
`
	if err := os.WriteFile(filepath.Join(dir, "mine.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.toml"), []byte("[[views]\nname="), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadAll(testFS, "testdata")
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(reg.All()) != 2 {
		t.Fatalf("expected 2 views after override, got %d", len(reg.All()))
	}
	if reg.Names()[1] != "pipeline" {
		t.Errorf("override changed order: %v", reg.Names())
	}
	if v := reg.Get("pipeline"); v.Title != "Custom Pipeline" {
		t.Errorf("expected user override, got %q", v.Title)
	}
	if _, err := reg.Template("reviewer"); err != nil {
		t.Errorf("user template not loaded: %v", err)
	}
}

func TestLoadAllWithoutUserDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	reg, err := LoadAll(testFS, "testdata")
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(reg.All()) != 2 {
		t.Errorf("expected 2 views, got %d", len(reg.All()))
	}
}

func TestLintColorAndPosition(t *testing.T) {
	v := View{
		Name: "odd",
		Nodes: []NodeDef{
			{ID: "a", Kind: "service", X: -40, Y: 10, Color: `red" onload="x`},
			{ID: "b", Kind: "service", X: 200, Y: 10, Color: "#ff8800"},
		},
	}
	problems := v.Lint()
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %d: %v", len(problems), problems)
	}
	if !strings.Contains(problems[0], "is not #rrggbb") || !strings.Contains(problems[1], "negative position (-40,10)") {
		t.Errorf("unexpected problems %v", problems)
	}

	g, err := v.Graph()
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	a, _ := g.Node("a")
	if a.Style.Color != "" || a.Position != graph.Pt(0, 10) {
		t.Errorf("node a loaded as %+v", a)
	}
	if b, _ := g.Node("b"); b.Style.Color != "#ff8800" {
		t.Errorf("node b color %q", b.Style.Color)
	}
}
