package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var updateCheckOnly bool

//nolint:gochecknoglobals // required by cobra CLI pattern
var updateCmd = &cobra.Command{
	Use:   "update [name]",
	Short: "Update installed packages",
	Long: `Update one installed package, or every installed package when no
name is given. Each package's check script (or a commit comparison against
the remote branch head) decides whether an update is needed; packages that
need one are pulled and their update script (or setup script) is re-run.

A failure in one package is reported and the batch continues with the next
package.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false,
		"Check for updates without applying them")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(_ *cobra.Command, args []string) error {
	svc, err := buildService()
	if err != nil {
		return err
	}
	return svc.Update(context.Background(), args, updateCheckOnly)
}
