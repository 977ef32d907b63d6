package cmd

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/msalah0e/devdeck/internal/config"
	"github.com/msalah0e/devdeck/internal/logging"
	"github.com/msalah0e/devdeck/internal/registry"
	"github.com/msalah0e/devdeck/internal/ui"
	"github.com/spf13/cobra"
)

var version = "0.4.0"

var (
	reg       *registry.Registry
	viewsFS   fs.FS
	cfg       *config.Config
	debugMode bool
	envFile   string
)

// SetViewsFS sets the embedded filesystem containing the built-in views.
func SetViewsFS(fsys fs.FS) {
	viewsFS = fsys
}

func loadRegistry() *registry.Registry {
	if reg != nil {
		return reg
	}
	r, err := registry.LoadAll(viewsFS, "views")
	if err != nil {
		ui.Bad.Printf("devdeck: failed to load views: %v\n", err)
		return registry.New(nil, nil)
	}
	reg = r
	return reg
}

func loadConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}

// lookupView resolves a view name or exits with a hint.
func lookupView(name string) registry.View {
	v, err := loadRegistry().Lookup(name)
	if err != nil {
		ui.Warn.Printf("devdeck: unknown view %q\n", name)
		ui.Subtle.Println("  Run `devdeck views` to list available views")
		os.Exit(1)
	}
	return v
}

var rootCmd = &cobra.Command{
	Use:   "devdeck",
	Short: "devdeck — interactive node-graph canvas for your stack",
	Long: ui.Brand.Sprint(ui.Deck+" devdeck") + " — draw, drag and export your architecture\n" +
		ui.Subtle.Sprint("Architecture, apps map and agent workflow views on one canvas"),
	Version: version + " " + ui.Deck,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.LoadEnv(envFile); err != nil {
			ui.Warn.Printf("devdeck: %s: %v\n", envFile, err)
		}
		c := loadConfig()
		ui.SetColor(c.UI.Color)
		ui.SetEmoji(c.UI.Emoji)
		if debugMode {
			c.Log.Level = "debug"
		}
		slog.SetDefault(logging.New(os.Stderr, c.Log))
	},
}

func init() {
	rootCmd.SetVersionTemplate("devdeck {{ .Version }}\n")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Log interaction sessions and view problems")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before the config")

	rootCmd.AddCommand(
		viewsCmd(),
		showCmd(),
		validateCmd(),
		renderCmd(),
		tuiCmd(),
		serveCmd(),
		templatesCmd(),
		configCmd(),
		completionCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
