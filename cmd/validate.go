package cmd

import (
	"fmt"
	"os"

	"github.com/msalah0e/devdeck/internal/registry"
	"github.com/msalah0e/devdeck/internal/ui"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [view...]",
		Short: "Check view definitions for dangling edges and unknown types",
		Long: `Check view definitions. Problems never stop a view from rendering:
dangling edges are drawn from the origin and unknown port types use the
"any" color. This command lists them so they can be fixed.

  devdeck validate                 # all views
  devdeck validate architecture    # one view
  devdeck validate --strict        # exit 1 on any warning`,
		ValidArgsFunction: viewCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			r := loadRegistry()
			var views []registry.View
			if len(args) == 0 {
				views = r.All()
			}
			for _, name := range args {
				views = append(views, lookupView(name))
			}

			ui.Banner("validate")

			failed, warned := 0, 0
			for _, v := range views {
				sc, err := v.Open()
				if err != nil {
					fmt.Printf("  %s %s %s\n", ui.StatusIcon(false), v.Name, ui.Bad.Sprint(err))
					failed++
					continue
				}
				sc.Close()
				problems := v.Lint()
				if len(problems) == 0 {
					fmt.Printf("  %s %s\n", ui.StatusIcon(true), v.Name)
					continue
				}
				warned++
				fmt.Printf("  %s %s\n", ui.WarnIcon(), v.Name)
				for _, p := range problems {
					fmt.Printf("      %s\n", ui.Subtle.Sprint(p))
				}
			}

			fmt.Println()
			fmt.Printf("  %d views · %d invalid · %d with warnings\n", len(views), failed, warned)
			if failed > 0 || (strict && warned > 0) {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")
	return cmd
}
