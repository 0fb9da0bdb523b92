package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for chirp.

To load completions:

Bash:
  $ source <(chirp completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ chirp completion bash > /etc/bash_completion.d/chirp
  # macOS:
  $ chirp completion bash > $(brew --prefix)/etc/bash_completion.d/chirp

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ chirp completion zsh > "${fpath[1]}/_chirp"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ chirp completion fish | source

  # To load completions for each session, execute once:
  $ chirp completion fish > ~/.config/fish/completions/chirp.fish

PowerShell:
  PS> chirp completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> chirp completion powershell > chirp.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
