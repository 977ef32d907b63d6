package registry

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type definitionFile struct {
	Views     []View     `toml:"views" yaml:"views"`
	Templates []Template `toml:"templates" yaml:"templates"`
}

// LoadFromFS loads all views and templates from the TOML and YAML files in
// dir. Other files are ignored.
func LoadFromFS(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading embedded views: %w", err)
	}

	var all definitionFile
	for _, entry := range entries {
		if entry.IsDir() || !isDefinitionFile(entry.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		df, err := decodeFile(entry.Name(), data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
		}
		all.Views = append(all.Views, df.Views...)
		all.Templates = append(all.Templates, df.Templates...)
	}

	return New(all.Views, all.Templates), nil
}

func isDefinitionFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

func decodeFile(name string, data []byte) (definitionFile, error) {
	var df definitionFile
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &df); err != nil {
			return df, err
		}
	default:
		if err := toml.Unmarshal(data, &df); err != nil {
			return df, err
		}
	}
	return df, nil
}
