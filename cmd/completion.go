package cmd

import (
	"github.com/spf13/cobra"
)

// completionCmd generates shell completion scripts.
func completionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate completion scripts for your shell.

  # Bash (add to ~/.bashrc)
  eval "$(devdeck completion bash)"

  # Zsh (add to ~/.zshrc)
  eval "$(devdeck completion zsh)"

  # Fish
  devdeck completion fish | source

  # PowerShell
  devdeck completion powershell | Out-String | Invoke-Expression`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				_ = rootCmd.GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				_ = rootCmd.GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				_ = rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				_ = rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}

	return cmd
}

// viewCompletionFunc completes view names for the first argument.
func viewCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, v := range loadRegistry().All() {
		completions = append(completions, v.Name+"\t"+v.DisplayTitle())
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// templateCompletionFunc completes agent template names.
func templateCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, t := range loadRegistry().Templates() {
		completions = append(completions, t.Name+"\t"+t.Description)
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
