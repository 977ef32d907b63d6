package registry

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/msalah0e/devdeck/internal/config"
)

// UserDir returns the directory scanned for user view files.
func UserDir() string {
	return filepath.Join(config.ConfigDir(), "views")
}

// LoadAll merges the embedded views with user files from ~/.config/devdeck/views/.
// A user view or template replaces an embedded one with the same name.
func LoadAll(fsys fs.FS, dir string) (*Registry, error) {
	// Load embedded (built-in) views
	reg, err := LoadFromFS(fsys, dir)
	if err != nil {
		return nil, err
	}
	views := reg.All()
	templates := reg.Templates()

	userDir := UserDir()
	entries, err := os.ReadDir(userDir)
	if err != nil {
		// No views directory is fine
		return New(views, templates), nil
	}

	for _, entry := range entries {
		if entry.IsDir() || !isDefinitionFile(entry.Name()) {
			continue
		}
		p := filepath.Join(userDir, entry.Name())
		data, err := os.ReadFile(p)
		if err != nil {
			slog.Warn("skipping view file", "path", p, "err", err)
			continue
		}
		df, err := decodeFile(entry.Name(), data)
		if err != nil {
			slog.Warn("skipping view file", "path", p, "err", err)
			continue
		}
		views = append(views, df.Views...)
		templates = append(templates, df.Templates...)
	}

	return New(dedupViews(views), dedupTemplates(templates)), nil
}

// dedupViews keeps the last view of each name at the position of its first
// occurrence, so overrides do not reorder the list.
func dedupViews(views []View) []View {
	last := make(map[string]int, len(views))
	for i, v := range views {
		last[v.Name] = i
	}
	result := make([]View, 0, len(last))
	added := make(map[string]bool, len(last))
	for _, v := range views {
		if added[v.Name] {
			continue
		}
		added[v.Name] = true
		result = append(result, views[last[v.Name]])
	}
	return result
}

func dedupTemplates(templates []Template) []Template {
	last := make(map[string]int, len(templates))
	for i, t := range templates {
		last[t.Name] = i
	}
	result := make([]Template, 0, len(last))
	added := make(map[string]bool, len(last))
	for _, t := range templates {
		if added[t.Name] {
			continue
		}
		added[t.Name] = true
		result = append(result, templates[last[t.Name]])
	}
	return result
}
