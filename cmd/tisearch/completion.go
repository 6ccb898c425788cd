package tisearch

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// suffixCompletions are offered for --ext; "*" searches every file.
var suffixCompletions = []string{
	".txt\tplain text (default)",
	".md\tMarkdown",
	".log\tlog files",
	".csv\tcomma-separated values",
	"*\tevery file",
}

func init() {
	cmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion scripts",
		Long:      "Print a completion script for your shell. Besides commands and flags it completes --path with folders and --ext with common suffixes.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: completionShells,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletionV2(out, true)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell %q (want one of %v)", args[0], completionShells)
			}
		},
		Example: `  tisearch completion bash > /etc/bash_completion.d/tisearch
  tisearch completion zsh > "${fpath[1]}/_tisearch"
  tisearch completion fish > ~/.config/fish/completions/tisearch.fish`,
	}
	rootCmd.AddCommand(cmd)
}

// registerScanCompletions wires flag completion for the scan flags of cmd.
func registerScanCompletions(cmd *cobra.Command) {
	_ = cmd.MarkFlagDirname("path")
	_ = cmd.RegisterFlagCompletionFunc("ext", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return suffixCompletions, cobra.ShellCompDirectiveNoFileComp
	})
}
