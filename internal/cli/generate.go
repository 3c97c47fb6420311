package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/foldergen-labs/foldergen/internal/catalog"
	"github.com/foldergen-labs/foldergen/internal/config"
	"github.com/foldergen-labs/foldergen/internal/logger"
	"github.com/foldergen-labs/foldergen/internal/platform"
	"github.com/foldergen-labs/foldergen/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	genBase          string
	genRoot          string
	genCategories    string
	genPlaceholder   string
	genNoPlaceholder bool
	genCatalog       string
	genDryRun        bool
	genLockTimeout   time.Duration
)

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genBase, "base", config.DefaultBase, "Base asset directory (must exist)")
	f.StringVar(&genRoot, "root", config.DefaultRoot, "Root folder for nested categories; empty for none")
	f.StringVar(&genCategories, "categories", config.DefaultCategories, "Comma-separated categories, or \"all\"")
	f.StringVar(&genPlaceholder, "placeholder", config.DefaultPlaceholder, "Placeholder file name; empty disables placeholders")
	f.BoolVar(&genNoPlaceholder, "no-placeholder", false, "Do not create placeholder files")
	f.StringVar(&genCatalog, "catalog", "", "Custom catalog file (default: built-in catalog)")
	f.BoolVar(&genDryRun, "dry-run", false, "Print the folders and files that would be created")
	f.DurationVar(&genLockTimeout, "lock-timeout", 10*time.Second, "How long to wait for another run on the same base directory")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create the project folder skeleton",
	Long: `Create category folders under the base directory.

Categories are created under <base>/<root>/<Category>, except root-only
categories (Plugins in the built-in catalog) which go directly under <base>.
Leaf folders receive an empty placeholder file unless placeholders are
disabled. Running the command again is safe.

Flags that are not given fall back to 'foldergen config' values, then to
the built-in defaults.

Examples:
  foldergen generate
  foldergen generate --base Assets --root Game --categories images,scripts
  foldergen generate --placeholder "" --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := resolveGenerateOptions(cmd)

		sel, err := catalog.ParseSelection(opts.Categories)
		if err != nil {
			return err
		}

		cat, err := loadCatalog(opts.Catalog)
		if err != nil {
			return err
		}

		req := scaffold.Request{
			BaseDir:     opts.Base,
			RootFolder:  opts.Root,
			Categories:  sel,
			Placeholder: opts.Placeholder,
		}

		if genDryRun {
			printPlan(cmd.OutOrStdout(), scaffold.Plan(cat, req))
			return nil
		}

		// An empty selection is a no-op and needs neither the base dir nor the lock.
		if !sel.IsEmpty() {
			if err := platform.CheckBaseDir(opts.Base); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), genLockTimeout)
			defer cancel()
			lock, err := scaffold.AcquireLock(ctx, filepath.Join(config.Dir(), "locks"), opts.Base)
			switch {
			case errors.Is(err, scaffold.ErrLockUnavailable):
				logger.Get().Warn("running without lock", "base", opts.Base, "error", err)
			case err != nil:
				return err
			default:
				defer func() { _ = lock.Unlock() }()
			}
		}

		gen := scaffold.New(cat, logger.Get())
		result, err := gen.Generate(req)
		if err != nil {
			return err
		}
		printGenerateResult(cmd.OutOrStdout(), req, result)
		return nil
	},
}

// resolveGenerateOptions merges flags over config. Only flags the user set
// explicitly override the config values. Root and placeholder are trimmed,
// so a blank placeholder disables placeholders.
func resolveGenerateOptions(cmd *cobra.Command) config.Settings {
	s := config.Current()
	flags := cmd.Flags()
	if flags.Changed("base") {
		s.Base = genBase
	}
	if flags.Changed("root") {
		s.Root = genRoot
	}
	if flags.Changed("categories") {
		s.Categories = genCategories
	}
	if flags.Changed("placeholder") {
		s.Placeholder = genPlaceholder
	}
	if genNoPlaceholder {
		s.Placeholder = ""
	}
	if flags.Changed("catalog") {
		s.Catalog = genCatalog
	}
	s.Root = strings.TrimSpace(s.Root)
	s.Placeholder = strings.TrimSpace(s.Placeholder)
	return s
}

// loadCatalog returns the built-in catalog for an empty path.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}
