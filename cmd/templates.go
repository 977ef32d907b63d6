package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/msalah0e/devdeck/internal/graph"
	"github.com/msalah0e/devdeck/internal/registry"
	"github.com/msalah0e/devdeck/internal/ui"
	"github.com/spf13/cobra"
)

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"agents"},
		Short:   "List agent templates for workflow views",
		Run: func(cmd *cobra.Command, args []string) {
			templates := loadRegistry().Templates()

			ui.Banner("agent templates")

			if len(templates) == 0 {
				fmt.Println("  No agent templates found.")
				return
			}

			headers := []string{"Template", "Label", "Kind", "Model", "Ports"}
			var rows [][]string
			for _, t := range templates {
				rows = append(rows, []string{
					t.Name,
					t.Label,
					t.Kind,
					t.Model,
					fmt.Sprintf("%d in · %d out", len(t.Inputs), len(t.Outputs)),
				})
			}
			ui.Table(headers, rows)
			fmt.Println()
			fmt.Println("  Add one with `devdeck templates add <view> <template>` or `a` in `devdeck ui`")
		},
	}

	cmd.AddCommand(templatesAddCmd())
	return cmd
}

// templatesAddCmd previews an append: the view is mounted, the template
// appended and the resulting placement printed. Nothing is persisted.
func templatesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <view> <template>",
		Short: "Preview where an agent template would be appended",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return templateCompletionFunc(cmd, args, toComplete)
			}
			return viewCompletionFunc(cmd, args, toComplete)
		},
		Run: func(cmd *cobra.Command, args []string) {
			v := lookupView(args[0])
			if !v.Workflow {
				ui.Warn.Printf("devdeck: %s is not a workflow view\n", v.Name)
				os.Exit(1)
			}
			t, err := loadRegistry().Template(args[1])
			if err != nil {
				ui.Warn.Printf("devdeck: %v\n", err)
				os.Exit(1)
			}

			n, err := appendPreview(v, t)
			if err != nil {
				ui.Bad.Printf("devdeck: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  %s %s %s at %s\n", ui.StatusIcon(true), ui.Brand.Sprint(n.Label), ui.Subtle.Sprintf("(%s)", n.ID), n.Position)
			var meta []string
			for _, k := range []string{"model", "prompt"} {
				if val := n.Meta[k]; val != "" {
					meta = append(meta, k+"="+val)
				}
			}
			if len(meta) > 0 {
				fmt.Printf("      %s\n", ui.Subtle.Sprint(strings.Join(meta, " ")))
			}
		},
	}
}

func appendPreview(v registry.View, t registry.Template) (graph.Node, error) {
	sc, err := v.Open()
	if err != nil {
		return graph.Node{}, err
	}
	defer sc.Close()
	return sc.AppendTemplate(t)
}
