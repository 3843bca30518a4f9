package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsnovaweb/ServerSensei/internal/insight"
	"github.com/jsnovaweb/ServerSensei/internal/report"
	"github.com/jsnovaweb/ServerSensei/internal/snapshot"
	"github.com/jsnovaweb/ServerSensei/internal/ui"
)

var (
	reportFlags        ConnFlags
	reportSnapshotFile string
	reportJSON         bool
	reportNoSave       bool
)

// reportCmd collects a snapshot, compares it against the saved baseline,
// and renders the full report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Collect a snapshot, compare against the baseline, and report changes",
	Long: `Collect a full system snapshot from the selected target, compare it
against the previously saved snapshot, and print the current state, the
changes, and derived warnings and recommendations.

The new snapshot replaces the saved baseline afterwards. On the first run
there is nothing to compare against; the snapshot is recorded as the
baseline and the comparison is skipped.

Examples:
  sensei report
  sensei report --target production
  sensei report --host admin@192.168.1.50 --ask-pass
  sensei report --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport()
	},
}

// reportResult is the machine-readable shape of a report run.
type reportResult struct {
	Target   string             `json:"target"`
	Baseline bool               `json:"baseline"`
	Snapshot *snapshot.Snapshot `json:"snapshot"`
	Changed  []string           `json:"changed_sections,omitempty"`
	Insights *insight.Insights  `json:"insights,omitempty"`
}

func runReport() error {
	s, err := openSession(reportFlags)
	if err != nil {
		return err
	}
	defer s.Close()

	current, err := s.builder().Build()
	if err != nil {
		return err
	}

	store := snapshot.NewStore(s.snapshotFile(reportSnapshotFile))
	previous, err := store.LoadPrevious()
	if err != nil {
		return err
	}

	if !reportNoSave {
		if err := store.Save(current); err != nil {
			return err
		}
	}

	r := report.NewRenderer()

	if previous == nil {
		if reportJSON {
			return WriteJSONSuccess(os.Stdout, reportResult{
				Target:   s.target.Name,
				Baseline: true,
				Snapshot: current,
			})
		}
		printHeader(s.target.Name)
		fmt.Print(r.RenderSnapshot(current))
		fmt.Print(r.RenderBaseline())
		return nil
	}

	diff := snapshot.Compare(previous, current)
	insights := insight.Classify(diff)

	if reportJSON {
		result := reportResult{
			Target:   s.target.Name,
			Snapshot: current,
			Changed:  diff.Keys(),
		}
		if !insights.Empty() {
			result.Insights = &insights
		}
		return WriteJSONSuccess(os.Stdout, result)
	}

	printHeader(s.target.Name)
	fmt.Print(r.RenderSnapshot(current))
	fmt.Print(r.RenderComparison(previous, current, diff))
	fmt.Print(r.RenderExecutiveSummary(previous, current, diff))
	fmt.Print(r.RenderInsights(insights))
	return nil
}

// printHeader renders the branded header unless quiet mode is on.
func printHeader(target string) {
	if Quiet() {
		return
	}
	ui.PrintHeader(ui.HeaderInfo{
		Version: formatVersion(GetVersion()),
		Tagline: "System monitoring and comparison",
		Target:  target,
	})
}

func init() {
	AddConnFlags(reportCmd, &reportFlags)
	reportCmd.Flags().StringVar(&reportSnapshotFile, "snapshot-file", "", "baseline snapshot path (overrides config)")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "emit machine-readable JSON")
	reportCmd.Flags().BoolVar(&reportNoSave, "no-save", false, "compare without replacing the saved baseline")
	rootCmd.AddCommand(reportCmd)
}
