// Package export renders views to image files.
package export

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/msalah0e/devdeck/internal/parallel"
	"github.com/msalah0e/devdeck/internal/registry"
	"github.com/msalah0e/devdeck/internal/render"
)

// Format is an output image format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat accepts "svg" or "png", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case SVG, PNG:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want svg or png)", s)
}

// FormatFor infers the format from a file extension, falling back to def.
func FormatFor(path string, def Format) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return def
}

// Write encodes f in the given format.
func Write(w io.Writer, f render.Frame, format Format) error {
	switch format {
	case SVG:
		return render.WriteSVG(w, f)
	case PNG:
		return render.WritePNG(w, f)
	}
	return fmt.Errorf("unknown format %q", format)
}

// Snapshot mounts v, takes one frame and unmounts it.
func Snapshot(v registry.View) (render.Frame, error) {
	sc, err := v.Open()
	if err != nil {
		return render.Frame{}, err
	}
	defer sc.Close()
	return sc.Snapshot(), nil
}

// File renders v to path, creating parent directories.
func File(v registry.View, path string, format Format) error {
	frame, err := Snapshot(v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := Write(bw, frame, format); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", v.Name, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Path returns dir/<view>.<format>.
func Path(dir string, v registry.View, format Format) string {
	return filepath.Join(dir, v.Name+"."+string(format))
}

// All renders every view into dir with r. Each task mounts its own scene,
// so no scene is shared between goroutines.
func All(ctx context.Context, views []registry.View, dir string, format Format, r parallel.Runner) []parallel.Result {
	tasks := make([]parallel.Task, len(views))
	for i, v := range views {
		tasks[i] = parallel.Task{
			Name: v.Name,
			Fn: func(ctx context.Context) (string, error) {
				if err := ctx.Err(); err != nil {
					return "", err
				}
				path := Path(dir, v, format)
				return path, File(v, path, format)
			},
		}
	}
	return r.Run(ctx, tasks)
}
