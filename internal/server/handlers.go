package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/msalah0e/devdeck/internal/graph"
	"github.com/msalah0e/devdeck/internal/registry"
	"github.com/msalah0e/devdeck/internal/render"
	"github.com/msalah0e/devdeck/internal/scene"
)

// maxBody bounds request bodies; events and append requests are tiny.
const maxBody = 64 << 10

// errNotWorkflow rejects appends to views outside the workflow editor.
var errNotWorkflow = errors.New("view is not a workflow")

// ViewInfo is one entry of the view listing.
type ViewInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Mode        string `json:"mode"`
	Workflow    bool   `json:"workflow,omitempty"`
	Nodes       int    `json:"nodes"`
	Edges       int    `json:"edges"`
}

// AppendRequest asks for a node built from an agent template.
type AppendRequest struct {
	Template string `json:"template"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Stats())
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	views := s.reg.All()
	out := make([]ViewInfo, 0, len(views))
	for _, v := range views {
		mode := v.Mode
		if m, err := v.SceneMode(); err == nil {
			mode = m.String()
		}
		out = append(out, ViewInfo{
			Name:        v.Name,
			Title:       v.DisplayTitle(),
			Description: v.Description,
			Mode:        mode,
			Workflow:    v.Workflow,
			Nodes:       len(v.Nodes),
			Edges:       len(v.Edges),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.withScene(w, r, func(sess *session) (int, any, error) {
		return http.StatusOK, sess.scene.Snapshot(), nil
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.drop(r.PathValue("name")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.writeImage(w, r, "image/svg+xml", render.WriteSVG)
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	s.writeImage(w, r, "image/png", render.WritePNG)
}

// writeImage renders outside the scene lock from a snapshot.
func (s *Server) writeImage(w http.ResponseWriter, r *http.Request, contentType string, encode func(io.Writer, render.Frame) error) {
	sess, err := s.session(r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	sess.mu.Lock()
	frame := sess.scene.Snapshot()
	sess.mu.Unlock()

	var buf bytes.Buffer
	if err := encode(&buf, frame); err != nil {
		writeError(w, fmt.Errorf("render: %w", err))
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var ev scene.Event
	if err := decode(r, &ev); err != nil {
		writeError(w, err)
		return
	}
	s.withScene(w, r, func(sess *session) (int, any, error) {
		if err := sess.scene.Dispatch(ev); err != nil {
			return 0, nil, badRequest{err}
		}
		return http.StatusOK, sess.scene.Snapshot(), nil
	})
}

func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	var req AppendRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Template == "" {
		writeError(w, badRequest{errors.New("template is required")})
		return
	}
	tmpl, err := s.reg.Template(req.Template)
	if err != nil {
		writeError(w, err)
		return
	}
	s.withScene(w, r, func(sess *session) (int, any, error) {
		if !sess.view.Workflow {
			return 0, nil, fmt.Errorf("%w: %s", errNotWorkflow, sess.view.Name)
		}
		n, err := sess.scene.AppendTemplate(tmpl)
		if err != nil {
			return 0, nil, err
		}
		s.log.Info("agent appended", "view", sess.view.Name, "template", tmpl.Name, "node", n.ID)
		return http.StatusCreated, n, nil
	})
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	s.withScene(w, r, func(sess *session) (int, any, error) {
		return http.StatusOK, map[string]string{"selected": sess.scene.Selected()}, nil
	})
}

// withScene runs fn under the scene lock and writes its result as JSON.
func (s *Server) withScene(w http.ResponseWriter, r *http.Request, fn func(*session) (int, any, error)) {
	sess, err := s.session(r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	sess.mu.Lock()
	status, body, err := fn(sess)
	sess.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, body)
}

type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest{fmt.Errorf("decode body: %w", err)}
	}
	return nil
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var bad badRequest
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.Is(err, registry.ErrViewNotFound), errors.Is(err, registry.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, graph.ErrFrozen), errors.Is(err, errNotWorkflow), errors.Is(err, graph.ErrDuplicateNode):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
