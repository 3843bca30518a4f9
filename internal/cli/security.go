package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsnovaweb/ServerSensei/internal/report"
	"github.com/jsnovaweb/ServerSensei/internal/security"
	"github.com/jsnovaweb/ServerSensei/internal/snapshot"
)

var securityJSON bool

// securityCmd runs a security scan on the local machine.
var securityCmd = &cobra.Command{
	Use:   "security",
	Short: "Run a security scan on the local machine",
	Long: `Scan the local machine's security posture: open listening ports,
suspicious process names, firewall state, and an overall score out of 100.

The scan inspects the machine sensei runs on. Remote targets receive
security data as part of their snapshot only when collected locally on
that machine.

Examples:
  sensei security
  sensei security --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSecurity()
	},
}

func runSecurity() error {
	sample, err := security.NewScanner().Scan()
	if err != nil {
		return err
	}

	if securityJSON {
		return WriteJSONSuccess(os.Stdout, sample)
	}

	printHeader("local")
	out := report.NewRenderer().RenderSnapshot(&snapshot.Snapshot{Security: sample})
	fmt.Print(strings.TrimLeft(out, "\n"))
	return nil
}

func init() {
	securityCmd.Flags().BoolVar(&securityJSON, "json", false, "emit machine-readable JSON")
	rootCmd.AddCommand(securityCmd)
}
