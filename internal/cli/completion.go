package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for moldraw.

To load completions:

Bash:
  $ source <(moldraw completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ moldraw completion bash > /etc/bash_completion.d/moldraw
  # macOS:
  $ moldraw completion bash > $(brew --prefix)/etc/bash_completion.d/moldraw

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ moldraw completion zsh > "${fpath[1]}/_moldraw"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ moldraw completion fish | source

  # To load completions for each session, execute once:
  $ moldraw completion fish > ~/.config/fish/completions/moldraw.fish

PowerShell:
  PS> moldraw completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> moldraw completion powershell > moldraw.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(c.Out)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.Out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.Out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.Out)
			}
			return nil
		},
	}

	return cmd
}
