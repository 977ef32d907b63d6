package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/msalah0e/devdeck/internal/registry"
	"github.com/msalah0e/devdeck/internal/render"
	"github.com/msalah0e/devdeck/internal/ui"
	"github.com/spf13/cobra"
)

func viewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "views [query]",
		Aliases: []string{"list", "ls"},
		Short:   "List available views",
		Args:    cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			r := loadRegistry()
			views := r.All()
			if len(args) == 1 {
				views = r.Search(args[0])
			}

			ui.Banner("views")

			if len(views) == 0 {
				fmt.Println("  No views found.")
				return
			}

			headers := []string{"View", "Title", "Mode", "Nodes", "Edges"}
			var rows [][]string
			for _, v := range views {
				mode := v.Mode
				if m, err := v.SceneMode(); err == nil {
					mode = m.String()
				}
				if v.Workflow {
					mode += " (workflow)"
				}
				rows = append(rows, []string{
					v.Name,
					v.DisplayTitle(),
					mode,
					fmt.Sprint(len(v.Nodes)),
					fmt.Sprint(len(v.Edges)),
				})
			}
			ui.Table(headers, rows)

			fmt.Println()
			fmt.Printf("  %d views · user views in %s\n", len(views), ui.Subtle.Sprint(registry.UserDir()))
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "show <view>",
		Aliases:           []string{"info"},
		Short:             "Show the nodes, ports and edges of a view",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: viewCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			v := lookupView(args[0])
			g, err := v.Graph()
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}

			ui.Banner("view info")
			fmt.Printf("  %s %s\n", ui.Brand.Sprint(v.DisplayTitle()), ui.Subtle.Sprintf("(%s)", v.Name))
			if v.Description != "" {
				fmt.Printf("  %s\n", v.Description)
			}
			fmt.Println()

			for _, n := range g.Nodes() {
				head := ui.Swatch(render.NodeColor(n))
				if icon := ui.Glyph(render.NodeIcon(n)); icon != "" {
					head += " " + icon
				}
				fmt.Printf("  %s %s %s\n", head,
					ui.Brand.Sprint(n.Label), ui.Subtle.Sprintf("%s %s %s", n.ID, n.Kind, n.Position))
				for _, out := range []bool{false, true} {
					arrow := "→"
					if out {
						arrow = "←"
					}
					for _, p := range n.Side(out) {
						label := p.ID
						if p.Label != "" && p.Label != p.ID {
							label += " " + ui.Subtle.Sprintf("%q", p.Label)
						}
						fmt.Printf("      %s %s %s %s\n", arrow, ui.Swatch(p.Type.Color()), label, ui.Subtle.Sprint(p.Type))
					}
				}
				if len(n.Meta) > 0 {
					var meta []string
					for _, k := range []string{"template", "model", "prompt"} {
						if val, ok := n.Meta[k]; ok {
							meta = append(meta, k+"="+val)
						}
					}
					if len(meta) > 0 {
						fmt.Printf("      %s\n", ui.Subtle.Sprint(strings.Join(meta, " ")))
					}
				}
			}

			edges := render.Edges(g)
			if len(edges) > 0 {
				fmt.Println()
				fmt.Println("  Edges:")
				for i, e := range edges {
					ge := g.Edges()[i]
					status := ""
					if e.Dangling {
						status = " " + ui.WarnIcon() + " dangling"
					}
					fmt.Printf("    %s %s %s → %s%s\n", ui.Swatch(e.Color), e.ID, ge.Source, ge.Target, status)
				}
			}
		},
	}
}
