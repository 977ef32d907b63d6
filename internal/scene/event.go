package scene

import (
	"fmt"

	"github.com/msalah0e/devdeck/internal/graph"
)

// EventType names a host input event.
type EventType string

const (
	PointerDown EventType = "pointerdown"
	PointerMove EventType = "pointermove"
	PointerUp   EventType = "pointerup"
	Wheel       EventType = "wheel"
	ZoomIn      EventType = "zoomin"
	ZoomOut     EventType = "zoomout"
	Reset       EventType = "reset"
	Select      EventType = "select"
)

// Event is a host input in screen coordinates, as delivered by the HTTP
// host.
type Event struct {
	Type   EventType `json:"type"`
	X      int       `json:"x"`
	Y      int       `json:"y"`
	DeltaY float64   `json:"deltaY,omitempty"`
	Node   string    `json:"node,omitempty"`
}

// Dispatch applies ev to the scene.
func (s *Scene) Dispatch(ev Event) error {
	p := graph.Pt(ev.X, ev.Y)
	switch ev.Type {
	case PointerDown:
		s.PointerDown(p)
	case PointerMove:
		s.PointerMove(p)
	case PointerUp:
		s.PointerUp(p)
	case Wheel:
		s.Wheel(ev.DeltaY)
	case ZoomIn:
		s.ZoomIn()
	case ZoomOut:
		s.ZoomOut()
	case Reset:
		s.Reset()
	case Select:
		if ev.Node != "" {
			if _, ok := s.graph.Node(ev.Node); !ok {
				return fmt.Errorf("select: node %q not found", ev.Node)
			}
		}
		s.Select(ev.Node)
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}
