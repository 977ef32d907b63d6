package cmd

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/msalah0e/devdeck/internal/logging"
	"github.com/msalah0e/devdeck/internal/scene"
	"github.com/msalah0e/devdeck/internal/tui"
	"github.com/msalah0e/devdeck/internal/ui"
	"github.com/spf13/cobra"
)

func tuiCmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:     "ui <view>",
		Aliases: []string{"tui", "open"},
		Short:   "Open a view on an interactive terminal canvas",
		Long: `Open a view in the terminal. Drag nodes with the left button, drag the
background to pan, scroll to zoom.

  +/-   zoom in / out        0     reset zoom and pan
  a     add agent (workflow views)
  esc   clear selection      q     quit

  devdeck ui architecture
  devdeck ui agents --log-file /tmp/devdeck.log --debug`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: viewCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			c := loadConfig()
			v := lookupView(args[0])

			// The alternate screen owns stdout and stderr; logs go to a
			// file or nowhere.
			log := slog.New(slog.DiscardHandler)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
				if err != nil {
					ui.Bad.Printf("devdeck: %v\n", err)
					os.Exit(1)
				}
				defer f.Close()
				log = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: logging.ParseLevel(c.Log.Level)}))
			}
			log = log.With("view", v.Name)

			sc, err := v.Open(
				scene.WithLogger(log),
				scene.WithSelectHandler(func(id string) { log.Info("node selected", "node", id) }),
			)
			if err != nil {
				ui.Bad.Printf("devdeck: %v\n", err)
				os.Exit(1)
			}
			defer sc.Close()

			model := tui.New(sc, tui.Options{
				CellWidth:  c.TUI.CellWidth,
				CellHeight: c.TUI.CellHeight,
				Templates:  loadRegistry().Templates(),
				Workflow:   v.Workflow,
				NoIcons:    !c.UI.Emoji,
				Logger:     log,
			})
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
			if _, err := program.Run(); err != nil {
				fmt.Fprintf(os.Stderr, "devdeck: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file while the canvas is open")
	return cmd
}
