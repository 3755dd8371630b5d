package cmd

import (
	"errors"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	systemScope bool
	verbose     bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var rootCmd = &cobra.Command{
	Use:   "gitpm",
	Short: "Git package manager - install and manage applications from git repositories",
	Long: `gitpm installs, updates, and removes applications published as git
repositories. Packages are declared in repos*.conf config files, one
"url[,branch[,name]]" line per package; merged catalog sources, per-package
metadata (gitpm.json), and lifecycle scripts in each repository drive the
install, update, and remove pipelines.

Installs are user-scoped by default (~/.local/share/apps); pass --system to
install into /opt/apps instead.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if verbose {
			logger.SetLevel(logger.DebugLevel)
		}
		if systemScope && os.Geteuid() != 0 {
			return errors.New("--system requires root privileges")
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.PersistentFlags().BoolVar(&systemScope, "system", false,
		"Operate on the system scope (/opt/apps) instead of the user scope")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
}
