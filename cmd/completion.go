package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskhelp/taskhelp/internal/clierr"
	"github.com/taskhelp/taskhelp/internal/filelock"
	"github.com/taskhelp/taskhelp/internal/output"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   "completion [shell]",
	Short: "Generate shell completion scripts",
	Long: `Generates a completion script for the given shell on stdout.

Supported shells: bash, zsh, fish, powershell.

Use 'completion install' to wire the script into your shell's rc file
automatically.`,
	ValidArgs: completionShells,
	Args:      cobra.ExactArgs(1),
	RunE:      runCompletion,
}

var completionInstallCmd = &cobra.Command{
	Use:   "install [shell]",
	Short: "Install completion into the shell's rc file",
	Long: `Appends a completion loader line to the shell's rc file (for fish,
writes the completion script into the completions directory). The shell
is detected from $SHELL when not given.`,
	ValidArgs: completionShells,
	Args:      cobra.MaximumNArgs(1),
	RunE:      runCompletionInstall,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	completionCmd.AddCommand(completionInstallCmd)
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(_ *cobra.Command, args []string) error {
	switch args[0] {
	case "bash":
		return rootCmd.GenBashCompletionV2(os.Stdout, true)
	case "zsh":
		return rootCmd.GenZshCompletion(os.Stdout)
	case "fish":
		return rootCmd.GenFishCompletion(os.Stdout, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
	}
	return invalidShellError(args[0])
}

func runCompletionInstall(_ *cobra.Command, args []string) error {
	shell := ""
	if len(args) > 0 {
		shell = args[0]
	} else {
		shell = filepath.Base(os.Getenv("SHELL"))
	}

	switch shell {
	case "bash":
		return installRCLine(rcPath(".bashrc"), "source <(taskhelp completion bash)")
	case "zsh":
		return installRCLine(rcPath(".zshrc"), "source <(taskhelp completion zsh)")
	case "fish":
		return installFish()
	case "powershell":
		output.Messagef(os.Stdout,
			"Add 'taskhelp completion powershell | Out-String | Invoke-Expression' to your PowerShell profile")
		return nil
	}
	return invalidShellError(shell)
}

// installRCLine appends the loader line to the rc file unless it is
// already present. The rc file is locked during the read-modify-write so
// concurrent installs do not interleave.
func installRCLine(path, line string) error {
	unlock, err := filelock.Lock(path + ".lock")
	if err != nil {
		return fmt.Errorf("locking %s: %w", path, err)
	}
	defer func() { _ = unlock() }()

	data, err := os.ReadFile(path) //nolint:gosec // rc path under the user's home
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.Contains(string(data), line) {
		output.Messagef(os.Stdout, "Completion already installed in %s", path)
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec // rc file
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n# taskhelp shell completion\n%s\n", line); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	output.Messagef(os.Stdout, "Installed completion in %s; restart your shell to activate", path)
	return nil
}

// installFish writes the completion script into fish's completions
// directory, where fish picks it up automatically.
func installFish() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	dir := filepath.Join(home, ".config", "fish", "completions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, "taskhelp.fish")
	f, err := os.Create(path) //nolint:gosec // fish completions path under the user's home
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := rootCmd.GenFishCompletion(f, true); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	output.Messagef(os.Stdout, "Installed completion in %s", path)
	return nil
}

func rcPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}

func invalidShellError(shell string) error {
	return clierr.Newf(clierr.InvalidShell,
		"Unsupported shell '%s' (supported: %s)", shell, strings.Join(completionShells, ", "))
}
