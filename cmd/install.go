package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/FyreX-opensource-design/gitpm/application"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var installForce bool

//nolint:gochecknoglobals // required by cobra CLI pattern
var installCmd = &cobra.Command{
	Use:   "install <name>",
	Short: "Install a package and its dependencies",
	Long: `Resolve a package from the merged catalog, expand its transitive
gitpm dependencies into an install plan, and install every missing package
in dependency order: clone, satisfy system dependencies, run the setup
script, record the install in the registry.`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	installCmd.Flags().BoolVar(&installForce, "force", false,
		"Skip the compatibility check and install anyway")
	rootCmd.AddCommand(installCmd)
}

func runInstall(_ *cobra.Command, args []string) error {
	svc, err := buildService()
	if err != nil {
		return err
	}
	return svc.Install(context.Background(), args[0], application.InstallOptions{
		Force: installForce,
	})
}
