package graph

import (
	"errors"
	"strings"
	"testing"

	"github.com/msalah0e/devdeck/internal/taxonomy"
)

func testGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := New([]Node{
		{
			ID: "web", Kind: taxonomy.App, Label: "Web", Position: Pt(40, 60),
			Ports: Ports{Outputs: []Port{{ID: "req", Label: "request", Type: taxonomy.Object}}},
		},
		{
			ID: "api", Kind: taxonomy.API, Label: "API", Position: Pt(300, 60),
			Ports: Ports{
				Inputs:  []Port{{ID: "in", Label: "in", Type: taxonomy.Object}},
				Outputs: []Port{{ID: "q", Label: "query", Type: taxonomy.String}},
			},
		},
	}, []Edge{
		{ID: "e1", Source: Endpoint{"web", "req"}, Target: Endpoint{"api", "in"}},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func TestNewDuplicateNode(t *testing.T) {
	_, err := New([]Node{{ID: "a"}, {ID: "a"}}, nil)
	if !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("expected ErrDuplicateNode, got %v", err)
	}
}

func TestNewDuplicateEdge(t *testing.T) {
	_, err := New([]Node{{ID: "a"}}, []Edge{{ID: "e"}, {ID: "e"}})
	if !errors.Is(err, ErrDuplicateEdge) {
		t.Fatalf("expected ErrDuplicateEdge, got %v", err)
	}
}

func TestNodeLookup(t *testing.T) {
	g := testGraph(t)

	n, ok := g.Node("api")
	if !ok {
		t.Fatal("api not found")
	}
	if n.Label != "API" {
		t.Errorf("expected label 'API', got %q", n.Label)
	}
	if _, ok := g.Node("nope"); ok {
		t.Error("expected lookup of unknown node to fail")
	}
}

func TestNodeReturnsCopy(t *testing.T) {
	g := testGraph(t)

	n, _ := g.Node("api")
	n.Position = Pt(999, 999)
	n.Ports.Inputs[0].ID = "mutated"

	again, _ := g.Node("api")
	if again.Position != Pt(300, 60) {
		t.Errorf("graph position changed through copy: %v", again.Position)
	}
	if again.Ports.Inputs[0].ID != "in" {
		t.Errorf("graph ports changed through copy: %q", again.Ports.Inputs[0].ID)
	}
}

func TestSetNodePositionTouchesOneNode(t *testing.T) {
	g := testGraph(t)

	if !g.SetNodePosition("web", Pt(10, 20)) {
		t.Fatal("SetNodePosition returned false")
	}
	web, _ := g.Node("web")
	api, _ := g.Node("api")
	if web.Position != Pt(10, 20) {
		t.Errorf("expected web at (10,20), got %v", web.Position)
	}
	if api.Position != Pt(300, 60) {
		t.Errorf("api moved to %v", api.Position)
	}
	if g.SetNodePosition("ghost", Pt(1, 1)) {
		t.Error("expected false for unknown node")
	}
}

func TestListsPreserveOrder(t *testing.T) {
	g := testGraph(t)
	nodes := g.Nodes()
	if len(nodes) != 2 || nodes[0].ID != "web" || nodes[1].ID != "api" {
		t.Errorf("unexpected node order: %+v", nodes)
	}
	g.SetNodePosition("web", Pt(900, 0))
	nodes = g.Nodes()
	if nodes[0].ID != "web" {
		t.Error("moving a node changed list order")
	}
	if edges := g.Edges(); len(edges) != 1 || edges[0].ID != "e1" {
		t.Errorf("unexpected edges: %+v", edges)
	}
}

func TestAppendNodeEmptyGraph(t *testing.T) {
	g, _ := New(nil, nil)
	n, err := g.AppendNode(Node{ID: "agent", Label: "Agent"})
	if err != nil {
		t.Fatalf("AppendNode failed: %v", err)
	}
	if n.Position != Pt(200, 150) {
		t.Errorf("expected (200,150), got %v", n.Position)
	}
}

func TestAppendNodeRightOfRightmost(t *testing.T) {
	g, _ := New([]Node{
		{ID: "a", Position: Pt(540, 10)},
		{ID: "b", Position: Pt(120, 400)},
	}, nil)
	n, err := g.AppendNode(Node{ID: "c", Position: Pt(5, 5)})
	if err != nil {
		t.Fatalf("AppendNode failed: %v", err)
	}
	if n.Position != Pt(740, 150) {
		t.Errorf("expected (740,150), got %v", n.Position)
	}
	stored, _ := g.Node("c")
	if stored.Position != Pt(740, 150) {
		t.Errorf("stored position %v", stored.Position)
	}
}

func TestAppendNodeGeneratesID(t *testing.T) {
	g, _ := New([]Node{{ID: "node-2"}}, nil)
	n, err := g.AppendNode(Node{})
	if err != nil {
		t.Fatalf("AppendNode failed: %v", err)
	}
	if n.ID != "node-3" {
		t.Errorf("expected generated id node-3, got %q", n.ID)
	}
	if _, err := g.AppendNode(Node{ID: "node-2"}); !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("expected ErrDuplicateNode, got %v", err)
	}
}

func TestFrozenGraph(t *testing.T) {
	g := testGraph(t)
	g.Freeze()
	if _, err := g.AppendNode(Node{ID: "x"}); !errors.Is(err, ErrFrozen) {
		t.Errorf("expected ErrFrozen, got %v", err)
	}
	if err := g.AppendEdge(Edge{ID: "e2"}); !errors.Is(err, ErrFrozen) {
		t.Errorf("expected ErrFrozen, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	g := testGraph(t)
	if problems := g.Validate(); len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}

	_ = g.AppendEdge(Edge{ID: "missing-node", Source: Endpoint{"ghost", "x"}, Target: Endpoint{"api", "in"}})
	_ = g.AppendEdge(Edge{ID: "wrong-side", Source: Endpoint{"api", "in"}, Target: Endpoint{"api", "in"}})
	_ = g.AppendEdge(Edge{ID: "missing-port", Source: Endpoint{"web", "req"}, Target: Endpoint{"api", "nope"}})

	problems := g.Validate()
	if len(problems) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(problems), problems)
	}
	checks := []string{"source node \"ghost\" not found", "is an input port", "target port api.nope not found"}
	for i, want := range checks {
		if !strings.Contains(problems[i].String(), want) {
			t.Errorf("problem %d = %q, want substring %q", i, problems[i], want)
		}
	}
}

func TestClampMin(t *testing.T) {
	if got := Pt(-5, 7).ClampMin(); got != Pt(0, 7) {
		t.Errorf("got %v", got)
	}
	if got := Pt(3, -1).ClampMin(); got != Pt(3, 0) {
		t.Errorf("got %v", got)
	}
}

func TestNewClampsNegativePositions(t *testing.T) {
	g, err := New([]Node{{ID: "a", Position: Pt(-40, -10)}, {ID: "b", Position: Pt(30, -1)}}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p, _ := g.Position("a"); p != Pt(0, 0) {
		t.Errorf("a at %v, want (0,0)", p)
	}
	if p, _ := g.Position("b"); p != Pt(30, 0) {
		t.Errorf("b at %v, want (30,0)", p)
	}
	if problems := g.Validate(); len(problems) != 0 {
		t.Errorf("expected no problems, got %v", problems)
	}

	g.SetNodePosition("b", Pt(-5, 12))
	if p, _ := g.Position("b"); p != Pt(0, 12) {
		t.Errorf("b at %v after SetNodePosition, want (0,12)", p)
	}
}
