package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/msalah0e/devdeck/internal/export"
	"github.com/msalah0e/devdeck/internal/registry"
)

func TestDisplayPort(t *testing.T) {
	tests := []struct{ in, want string }{
		{":8080", ":8080"},
		{"127.0.0.1:9000", ":9000"},
		{"[::1]:7000", ":7000"},
		{"8080", ":8080"},
	}
	for _, tt := range tests {
		if got := displayPort(tt.in); got != tt.want {
			t.Errorf("displayPort(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAppendPreview(t *testing.T) {
	v := registry.View{
		Name:     "agents",
		Workflow: true,
		Nodes:    []registry.NodeDef{{ID: "input", Kind: "user", X: 120, Y: 150}},
	}
	n, err := appendPreview(v, registry.Template{Name: "coder", Kind: "function", Model: "large"})
	if err != nil {
		t.Fatalf("appendPreview: %v", err)
	}
	if n.Position.X != 320 || n.Position.Y != 150 {
		t.Errorf("unexpected position %s", n.Position)
	}
	if n.Label != "coder" {
		t.Errorf("label should fall back to the template name, got %q", n.Label)
	}

	if _, err := appendPreview(v, registry.Template{Name: "bad", Kind: "spaceship"}); err == nil {
		t.Error("expected unknown kind error")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderToReportsWriteError(t *testing.T) {
	v := registry.View{Name: "tiny", Nodes: []registry.NodeDef{{ID: "a", Kind: "app"}}}

	var buf bytes.Buffer
	if err := renderTo(&buf, v, export.SVG); err != nil {
		t.Fatalf("renderTo: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<svg") {
		t.Errorf("expected SVG, got %q", buf.String())
	}

	if err := renderTo(failingWriter{}, v, export.SVG); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected write error, got %v", err)
	}
}
