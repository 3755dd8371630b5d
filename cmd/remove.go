package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an installed package",
	Long: `Run the package's removal script (best-effort), delete its install
path, and drop its registry record.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(_ *cobra.Command, args []string) error {
	svc, err := buildService()
	if err != nil {
		return err
	}
	return svc.Remove(context.Background(), args[0])
}
