package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jsnovaweb/ServerSensei/internal/errors"
	"github.com/jsnovaweb/ServerSensei/internal/ui"
)

var killFlags ConnFlags

// killCmd terminates a process on the selected target.
var killCmd = &cobra.Command{
	Use:   "kill <pid>",
	Short: "Terminate a process on the selected target",
	Long: `Terminate a process by PID on the local machine or a remote target.

Examples:
  sensei kill 4321
  sensei kill 4321 --target production`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := strconv.Atoi(args[0])
		if err != nil || pid <= 0 {
			return errors.New(errors.ErrExec,
				fmt.Sprintf("'%s' is not a valid PID", args[0]),
				"Pass a positive process ID, e.g. from 'sensei status'.")
		}
		return runKill(pid)
	},
}

func runKill(pid int) error {
	s, err := openSession(killFlags)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.kill(pid); err != nil {
		return err
	}
	if !Quiet() {
		fmt.Printf("%s Terminated process %d on %s\n", ui.SymbolSuccess, pid, s.target.Name)
	}
	return nil
}

func init() {
	AddConnFlags(killCmd, &killFlags)
	rootCmd.AddCommand(killCmd)
}
