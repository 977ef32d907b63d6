package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/msalah0e/devdeck/internal/server"
	"github.com/msalah0e/devdeck/internal/ui"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve views over HTTP for browser previews",
		Long: `Serve every view as a live scene over HTTP. Pointer and wheel events
posted as JSON drive the same drag, pan and zoom logic as the terminal
canvas.

  GET    /api/views                    list views
  GET    /api/views/{name}             scene snapshot (JSON)
  GET    /api/views/{name}/svg         scene as SVG
  GET    /api/views/{name}/png         scene as PNG
  POST   /api/views/{name}/events      {"type":"pointerdown","x":10,"y":20}
  POST   /api/views/{name}/nodes       {"template":"planner"} (workflow views)
  GET    /api/views/{name}/selection   selected node id
  DELETE /api/views/{name}             discard state, reopen from definition
  GET    /api/status                   request counters`,
		Run: func(cmd *cobra.Command, args []string) {
			c := loadConfig()
			if addr == "" {
				addr = c.Serve.Addr
			}

			ui.Banner("serve")
			fmt.Printf("  Listening on %s\n", ui.Brand.Sprint("http://localhost"+displayPort(addr)))
			fmt.Printf("  %s\n\n", ui.Subtle.Sprint("Ctrl-C to stop"))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(loadRegistry(), server.Config{Addr: addr, Logger: slog.Default()})
			if err := srv.ListenAndServe(ctx); err != nil {
				ui.Bad.Printf("devdeck: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

// displayPort returns the ":port" part of addr for the banner.
func displayPort(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i:]
		}
	}
	return ":" + addr
}
