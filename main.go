package main

import (
	"embed"
	"os"

	"github.com/msalah0e/devdeck/cmd"
)

//go:embed views/*.toml
var viewsFS embed.FS

func main() {
	cmd.SetViewsFS(viewsFS)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
