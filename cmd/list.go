package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FyreX-opensource-design/gitpm/application"
	"github.com/FyreX-opensource-design/gitpm/domain"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	listInstalledOnly bool
	listAvailableOnly bool
	listSearch        string
	listShowSource    bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed and available packages",
	Long: `List the packages installed in the selected scope and/or the
packages available from the merged config sources.`,
	RunE: runList,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	listCmd.Flags().BoolVar(&listInstalledOnly, "installed", false,
		"List only installed packages")
	listCmd.Flags().BoolVar(&listAvailableOnly, "available", false,
		"List only available packages from the config sources")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "",
		"Filter available packages by name, owner, or source file")
	listCmd.Flags().BoolVar(&listShowSource, "show-source", false,
		"Show which config file each package comes from")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	svc, err := buildService()
	if err != nil {
		return err
	}

	if !listAvailableOnly {
		printInstalled(svc.ListInstalled())
	}
	if !listInstalledOnly {
		if !listAvailableOnly {
			fmt.Println()
		}
		printAvailable(svc)
	}
	return nil
}

func printInstalled(records []domain.InstalledRecord) {
	if len(records) == 0 {
		fmt.Println("No packages installed.")
		return
	}

	fmt.Printf("Installed packages (%d):\n", len(records))
	fmt.Println(strings.Repeat("-", 100))
	fmt.Printf("%-25s %-20s %-15s %-40s\n", "Name", "Owner", "Branch", "Path")
	fmt.Println(strings.Repeat("-", 100))
	for _, record := range records {
		fmt.Printf("%-25s %-20s %-15s %-40s\n",
			record.Name,
			valueOr(domain.RepoOwnerFromURL(record.URL), "unknown"),
			valueOr(record.Branch, "default"),
			record.InstallPath,
		)
	}
}

func printAvailable(svc *application.PackageService) {
	specs := svc.ListAvailable()
	if listSearch != "" {
		specs = svc.Search(listSearch)
	}
	if len(specs) == 0 {
		fmt.Println("No packages available from the config sources.")
		return
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })

	fmt.Printf("Available packages (%d):\n", len(specs))
	width := 100
	if listShowSource {
		width = 120
	}
	fmt.Println(strings.Repeat("-", width))
	if listShowSource {
		fmt.Printf("%-25s %-20s %-15s %-13s %-18s %s\n",
			"Name", "Owner", "Branch", "Status", "Source", "URL")
	} else {
		fmt.Printf("%-25s %-20s %-15s %-13s %s\n",
			"Name", "Owner", "Branch", "Status", "URL")
	}
	fmt.Println(strings.Repeat("-", width))

	for _, spec := range specs {
		status := "[AVAILABLE]"
		if svc.IsInstalled(spec.Name) {
			status = "[INSTALLED]"
		}
		if listShowSource {
			fmt.Printf("%-25s %-20s %-15s %-13s %-18s %s\n",
				spec.Name,
				valueOr(domain.RepoOwnerFromURL(spec.URL), "unknown"),
				valueOr(spec.Branch, "default"),
				status,
				spec.SourceFile,
				spec.URL,
			)
		} else {
			fmt.Printf("%-25s %-20s %-15s %-13s %s\n",
				spec.Name,
				valueOr(domain.RepoOwnerFromURL(spec.URL), "unknown"),
				valueOr(spec.Branch, "default"),
				status,
				spec.URL,
			)
		}
	}
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
