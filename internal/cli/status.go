package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsnovaweb/ServerSensei/internal/report"
)

var (
	statusFlags ConnFlags
	statusJSON  bool
)

// statusCmd collects and prints the current state without touching the
// saved baseline.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current system state without comparing",
	Long: `Collect a snapshot from the selected target and print the current
state of every section. The saved baseline is neither read nor replaced.

Examples:
  sensei status
  sensei status --target production
  sensei status --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus()
	},
}

func runStatus() error {
	s, err := openSession(statusFlags)
	if err != nil {
		return err
	}
	defer s.Close()

	current, err := s.builder().Build()
	if err != nil {
		return err
	}

	if statusJSON {
		return WriteJSONSuccess(os.Stdout, current)
	}

	printHeader(s.target.Name)
	fmt.Print(report.NewRenderer().RenderSnapshot(current))
	return nil
}

func init() {
	AddConnFlags(statusCmd, &statusFlags)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "emit machine-readable JSON")
	rootCmd.AddCommand(statusCmd)
}
