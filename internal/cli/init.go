package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jsnovaweb/ServerSensei/internal/config"
	"github.com/jsnovaweb/ServerSensei/internal/errors"
	"github.com/jsnovaweb/ServerSensei/internal/ui"
)

var initForce bool

// starterHeader introduces the generated config file.
const starterHeader = `# ServerSensei configuration
#
# Targets are named machines to monitor over SSH. Leave the map empty to
# monitor the local machine. "default" names the target used when
# --target is not given; empty means local.
`

// starterExample shows a commented remote target.
const starterExample = `
# Example remote target:
#
# targets:
#   production:
#     host: admin@prod.example.com
#     port: 22
#     key_file: ~/.ssh/id_ed25519
# default: production
`

// initCmd creates a starter .sensei.yaml in the current directory.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .sensei.yaml configuration",
	Long: `Create a starter configuration file in the current directory.

Examples:
  sensei init
  sensei init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func runInit() error {
	path := config.ConfigFileName
	if _, err := os.Stat(path); err == nil && !initForce {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s already exists", path),
			"Use --force to overwrite it.")
	}

	defaults := config.DefaultConfig()
	starter := struct {
		Version        int                      `yaml:"version"`
		Targets        map[string]config.Target `yaml:"targets"`
		Default        string                   `yaml:"default"`
		SnapshotFile   string                   `yaml:"snapshot_file"`
		ConnectTimeout string                   `yaml:"connect_timeout"`
	}{
		Version:        defaults.Version,
		Targets:        defaults.Targets,
		SnapshotFile:   defaults.SnapshotFile,
		ConnectTimeout: defaults.ConnectTimeout.String(),
	}

	body, err := yaml.Marshal(starter)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to render default configuration", "")
	}

	content := starterHeader + string(body) + starterExample
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write %s", path),
			"Check directory permissions.")
	}

	if !Quiet() {
		fmt.Printf("%s Created %s\n", ui.SymbolSuccess, path)
		fmt.Println("Edit it to add remote targets, then run 'sensei report'.")
	}
	return nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	rootCmd.AddCommand(initCmd)
}
