package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/foldergen-labs/foldergen/internal/catalog"
	"github.com/foldergen-labs/foldergen/internal/config"
	"github.com/spf13/cobra"
)

var (
	catalogListFile string
	catalogListJSON bool
)

func init() {
	catalogListCmd.Flags().StringVar(&catalogListFile, "catalog", "", "Custom catalog file (default: configured or built-in catalog)")
	catalogListCmd.Flags().BoolVar(&catalogListJSON, "json", false, "Output in JSON format")
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate folder catalogs",
	Long: `A catalog maps each category to its subfolders and placement rule.
The built-in catalog can be replaced with a YAML file via --catalog or the
'catalog' config key.`,
}

type catalogEntry struct {
	Name       string   `json:"name"`
	Bit        uint32   `json:"bit"`
	RootOnly   bool     `json:"root_only"`
	Subfolders []string `json:"subfolders"`
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories, their subfolders and placement",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Get(config.KeyCatalog)
		if cmd.Flags().Changed("catalog") {
			path = catalogListFile
		}
		cat, err := loadCatalog(path)
		if err != nil {
			return err
		}

		var entries []catalogEntry
		for _, e := range cat.Entries() {
			subs := e.Subfolders
			if subs == nil {
				subs = []string{}
			}
			entries = append(entries, catalogEntry{
				Name:       e.Category.String(),
				Bit:        uint32(e.Category),
				RootOnly:   e.RootOnly,
				Subfolders: subs,
			})
		}

		out := cmd.OutOrStdout()
		if catalogListJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling catalog: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tBIT\tPLACEMENT\tSUBFOLDERS")
		for _, e := range entries {
			placement := "root"
			if e.RootOnly {
				placement = "base"
			}
			subs := strings.Join(e.Subfolders, ", ")
			if subs == "" {
				subs = "-"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.Name, e.Bit, placement, subs)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		rootOnly := "none"
		if sel := cat.RootOnly(); !sel.IsEmpty() {
			rootOnly = strings.Join(sel.Names(), ", ")
		}
		fmt.Fprintf(out, "\nRoot-only (created under the base directory): %s\n", rootOnly)
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a catalog file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		out := cmd.OutOrStdout()

		result, err := catalog.ValidateFile(path)
		if err != nil {
			return err
		}
		if !result.Valid {
			fmt.Fprintf(out, "%s is invalid:\n", path)
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "  - %s\n", issue)
			}
			return fmt.Errorf("catalog %s has %d issue(s)", path, len(result.Issues))
		}

		cat, err := catalog.Load(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s is valid (version %s)\n", path, cat.Version)
		return nil
	},
}
