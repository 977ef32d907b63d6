package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/msalah0e/devdeck/internal/export"
	"github.com/msalah0e/devdeck/internal/parallel"
	"github.com/msalah0e/devdeck/internal/registry"
	"github.com/msalah0e/devdeck/internal/ui"
	"github.com/spf13/cobra"
)

func renderCmd() *cobra.Command {
	var (
		format string
		out    string
		all      bool
		jobs     int
		failFast bool
	)

	cmd := &cobra.Command{
		Use:     "render [view]",
		Aliases: []string{"export"},
		Short:   "Render a view to SVG or PNG",
		Long: `Render a view at its initial layout (100% zoom, no pan).

  devdeck render architecture                  # SVG to stdout
  devdeck render architecture -o arch.png      # format from extension
  devdeck render --all --format png -o dist/   # every view, in parallel`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: viewCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			c := loadConfig()
			if format == "" {
				format = c.Export.Format
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				ui.Bad.Printf("devdeck: %v\n", err)
				os.Exit(1)
			}

			if all {
				dir := out
				if dir == "" {
					dir = c.Export.Dir
				}
				if jobs < 1 {
					jobs = c.Export.Concurrency
				}
				renderAll(dir, f, parallel.Runner{Concurrency: jobs, Progress: os.Stdout, FailFast: failFast})
				return
			}

			if len(args) == 0 {
				ui.Warn.Println("devdeck: render needs a view name or --all")
				os.Exit(1)
			}
			v := lookupView(args[0])

			if out == "" || out == "-" {
				if err := renderTo(cmd.OutOrStdout(), v, f); err != nil {
					ui.Bad.Printf("devdeck: %v\n", err)
					os.Exit(1)
				}
				return
			}

			if !cmd.Flags().Changed("format") {
				f = export.FormatFor(out, f)
			}
			if err := export.File(v, out, f); err != nil {
				ui.Bad.Printf("devdeck: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  %s %s → %s\n", ui.StatusIcon(true), v.Name, out)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: svg or png (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, or directory with --all")
	cmd.Flags().BoolVar(&all, "all", false, "Render every view")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Parallel renders with --all (default from config)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop rendering after the first failure with --all")
	return cmd
}

func renderAll(dir string, f export.Format, r parallel.Runner) {
	views := loadRegistry().All()
	ui.Banner("render")
	fmt.Printf("  Rendering %d views as %s into %s\n\n", len(views), f, ui.Subtle.Sprint(dir))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := export.All(ctx, views, dir, f, r)
	failed := parallel.Failed(results)

	fmt.Println()
	fmt.Printf("  %d rendered · %d failed\n", len(results)-len(failed), len(failed))
	if len(failed) > 0 {
		os.Exit(1)
	}
}

// renderTo writes v to w, including the final flush.
func renderTo(w io.Writer, v registry.View, f export.Format) error {
	frame, err := export.Snapshot(v)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if err := export.Write(bw, frame, f); err != nil {
		return err
	}
	return bw.Flush()
}
