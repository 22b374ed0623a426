package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/blackwell-systems/dotgen/internal/version"
	"github.com/blackwell-systems/dotgen/pkg/logging"
)

var (
	verbosity int
	dryRun    bool
	force     bool
	rootFlag  string

	rootCmd = &cobra.Command{
		Use:   "dotgen",
		Short: "Machine-specific config files from shared templates",
		Long: `dotgen renders machine-specific configuration files from a shared
template directory. Variables come from five layers (auto-detected,
defaults, machine-type overrides, local overrides, environment) so the
same templates produce different concrete files on different hosts.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without writing any files")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Render even when outputs are newer than their templates")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Templates root directory (default $DOTGEN_ROOT or cwd)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newRegenCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newVarsCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newSyntaxCmd())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dotgen version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(dotgen completion bash)

Zsh:
  $ dotgen completion zsh > "${fpath[1]}/_dotgen"

Fish:
  $ dotgen completion fish | source`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

var manCmd = &cobra.Command{
	Use:    "man [directory]",
	Short:  "Generate man pages",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		header := &doc.GenManHeader{Title: "DOTGEN", Section: "1"}
		return doc.GenManTree(cmd.Root(), header, dir)
	},
}
