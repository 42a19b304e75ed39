package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for hackerhouse.

To load completions:

Bash:
  $ source <(hackerhouse completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ hackerhouse completion bash > /etc/bash_completion.d/hackerhouse
  # macOS:
  $ hackerhouse completion bash > $(brew --prefix)/etc/bash_completion.d/hackerhouse

Zsh:
  $ source <(hackerhouse completion zsh)
  # To load completions for each session, execute once:
  $ hackerhouse completion zsh > "${fpath[1]}/_hackerhouse"

Fish:
  $ hackerhouse completion fish | source
  # To load completions for each session, execute once:
  $ hackerhouse completion fish > ~/.config/fish/completions/hackerhouse.fish

PowerShell:
  PS> hackerhouse completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(out); err != nil {
				return fmt.Errorf("generating bash completion: %w", err)
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(out); err != nil {
				return fmt.Errorf("generating zsh completion: %w", err)
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(out, true); err != nil {
				return fmt.Errorf("generating fish completion: %w", err)
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletionWithDesc(out); err != nil {
				return fmt.Errorf("generating powershell completion: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
