package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jsnovaweb/ServerSensei/internal/logger"
	"github.com/jsnovaweb/ServerSensei/internal/ui"
	"github.com/jsnovaweb/ServerSensei/pkg/sshutil"
)

// Global flags available to all subcommands
var (
	configFlag  string
	verboseFlag bool
	quietFlag   bool
	noColorFlag bool
)

// rootCmd is the base command all subcommands attach to.
var rootCmd = &cobra.Command{
	Use:   "sensei",
	Short: "Monitor local and remote systems and track changes over time",
	Long: `ServerSensei collects a snapshot of system metrics (CPU, memory, disk,
network, processes, security posture and more) from the local machine or a
remote server over SSH, compares it against the previously saved snapshot,
and reports what changed along with derived warnings and recommendations.

Examples:
  sensei report
  sensei report --target production
  sensei report --host admin@192.168.1.50 --ask-pass
  sensei status
  sensei security`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		if verboseFlag {
			os.Setenv("SENSEI_DEBUG", "1")
			logger.SetDefault(logger.NewEnvLogger("[sensei]"))
		}
		if quietFlag {
			logger.SetDefault(logger.Noop())
		}
	},
}

// Config returns the --config flag value.
func Config() string {
	return configFlag
}

// Quiet returns the --quiet flag value.
func Quiet() bool {
	return quietFlag
}

// Execute runs the root command and prints any error with its suggestion.
// The shared SSH agent connection is released before exiting either way.
func Execute() {
	err := rootCmd.Execute()
	sshutil.CloseAgent()
	if err != nil {
		errStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
		fmt.Fprintf(os.Stderr, "%s %s\n", errStyle.Render(ui.SymbolFail), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to config file (default: .sensei.yaml, then ~/.config/sensei/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}
