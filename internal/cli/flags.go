package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jsnovaweb/ServerSensei/internal/errors"
)

// ConnFlags holds the standard target-selection flags shared by commands
// that collect metrics.
type ConnFlags struct {
	Target  string // named target from the config file
	Host    string // ad-hoc host, bypassing the config targets
	User    string
	Port    int
	KeyFile string
	AskPass bool
}

// AddConnFlags registers the target-selection flags on a command.
func AddConnFlags(cmd *cobra.Command, flags *ConnFlags) {
	cmd.Flags().StringVarP(&flags.Target, "target", "t", "", "named target from the config file")
	cmd.Flags().StringVar(&flags.Host, "host", "", "connect to this host directly (hostname, user@host, or SSH alias)")
	cmd.Flags().StringVarP(&flags.User, "user", "u", "", "SSH username override")
	cmd.Flags().IntVarP(&flags.Port, "port", "p", 0, "SSH port override")
	cmd.Flags().StringVarP(&flags.KeyFile, "key", "k", "", "SSH private key path")
	cmd.Flags().BoolVar(&flags.AskPass, "ask-pass", false, "prompt for an SSH password")
}

// Validate checks for contradictory flag combinations.
func (f ConnFlags) Validate() error {
	if f.Target != "" && f.Host != "" {
		return errors.New(errors.ErrConfig,
			"--target and --host cannot be used together",
			"Use --target for a configured machine, or --host for an ad-hoc one, but not both.")
	}
	return nil
}

// promptPassword reads an SSH password from the terminal without echo.
func promptPassword(host string) (string, error) {
	fmt.Fprintf(os.Stderr, "Password for %s: ", host)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrAuth,
			"Failed to read password",
			"Run from an interactive terminal, or use key-based authentication instead.")
	}
	return string(pw), nil
}
