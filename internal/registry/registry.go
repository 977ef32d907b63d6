package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrViewNotFound is returned when no view has the requested name.
	ErrViewNotFound = errors.New("view not found")
	// ErrTemplateNotFound is returned when no agent template has the requested name.
	ErrTemplateNotFound = errors.New("template not found")
)

// Registry holds all known views and agent templates.
type Registry struct {
	views     []View
	byName    map[string]*View
	templates []Template
	tplByName map[string]*Template
}

// New creates a registry from lists of views and templates.
func New(views []View, templates []Template) *Registry {
	r := &Registry{
		views:     views,
		byName:    make(map[string]*View, len(views)),
		templates: templates,
		tplByName: make(map[string]*Template, len(templates)),
	}
	for i := range r.views {
		r.byName[r.views[i].Name] = &r.views[i]
	}
	for i := range r.templates {
		r.tplByName[r.templates[i].Name] = &r.templates[i]
	}
	return r
}

// All returns all views in the registry.
func (r *Registry) All() []View {
	return r.views
}

// Get returns a view by name, or nil if not found.
func (r *Registry) Get(name string) *View {
	return r.byName[name]
}

// Lookup returns a view by name or ErrViewNotFound.
func (r *Registry) Lookup(name string) (View, error) {
	v := r.byName[name]
	if v == nil {
		return View{}, fmt.Errorf("%w: %q", ErrViewNotFound, name)
	}
	return *v, nil
}

// Names returns view names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.views))
	for i, v := range r.views {
		names[i] = v.Name
	}
	return names
}

// Templates returns all agent templates.
func (r *Registry) Templates() []Template {
	return r.templates
}

// Template returns an agent template by name or ErrTemplateNotFound.
func (r *Registry) Template(name string) (Template, error) {
	t := r.tplByName[name]
	if t == nil {
		return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return *t, nil
}

// Search finds views whose name, title or description contains query.
func (r *Registry) Search(query string) []View {
	q := strings.ToLower(query)
	var results []View
	for _, v := range r.views {
		if matches(v, q) {
			results = append(results, v)
		}
	}
	return results
}

func matches(v View, query string) bool {
	if strings.Contains(strings.ToLower(v.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(v.Title), query) {
		return true
	}
	return strings.Contains(strings.ToLower(v.Description), query)
}
