package catalog

import (
	_ "embed"
	"fmt"
	"math/bits"
	"os"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// SupportedVersions is the semver constraint a catalog file's version must
// satisfy to be loaded by this build.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

//go:embed default.yaml
var defaultCatalog []byte

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Entry describes how one category is laid out on disk.
type Entry struct {
	Category   Category
	Subfolders []string
	RootOnly   bool
}

// Catalog is an immutable category table. The zero value is not usable;
// build one with New, Parse, Load or Default.
type Catalog struct {
	Version     string
	Description string
	entries     []Entry // indexed by bit position
}

// File is the on-disk representation of a catalog.
type File struct {
	Version     string               `yaml:"version" json:"version"`
	Description string               `yaml:"description,omitempty" json:"description,omitempty"`
	Categories  map[string]EntrySpec `yaml:"categories" json:"categories"`
}

// EntrySpec is one category block of a catalog file.
type EntrySpec struct {
	Subfolders []string `yaml:"subfolders,omitempty" json:"subfolders,omitempty"`
	RootOnly   bool     `yaml:"root_only,omitempty" json:"root_only,omitempty"`
}

// InvalidError is returned when a catalog document fails schema validation.
type InvalidError struct {
	Source string
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	return fmt.Sprintf("invalid catalog %s: %s", e.Source, strings.Join(msgs, "; "))
}

// New builds a catalog from explicit entries. Categories without an entry
// get no subfolders and the nested placement rule.
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{entries: make([]Entry, len(declared))}
	for i, cat := range declared {
		c.entries[i] = Entry{Category: cat}
	}

	seen := make(map[Category]bool)
	for _, e := range entries {
		if _, ok := names[e.Category]; !ok {
			return nil, fmt.Errorf("catalog entry must name exactly one category, got %s", e.Category)
		}
		if seen[e.Category] {
			return nil, fmt.Errorf("duplicate catalog entry for %s", e.Category)
		}
		seen[e.Category] = true

		subs := make([]string, len(e.Subfolders))
		copy(subs, e.Subfolders)
		c.entries[index(e.Category)] = Entry{
			Category:   e.Category,
			Subfolders: subs,
			RootOnly:   e.RootOnly,
		}
	}
	return c, nil
}

// Default returns the embedded catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalog, "default.yaml")
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Load reads, validates and builds a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse validates a YAML catalog document and builds a Catalog from it.
// source names the document in error messages.
func Parse(data []byte, source string) (*Catalog, error) {
	res, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating catalog %s: %w", source, err)
	}
	if !res.Valid {
		return nil, &InvalidError{Source: source, Issues: res.Issues}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", source, err)
	}

	if err := CheckVersion(f.Version); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", source, err)
	}

	entries := make([]Entry, 0, len(f.Categories))
	for _, cat := range declared {
		spec, ok := f.Categories[names[cat]]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Category:   cat,
			Subfolders: spec.Subfolders,
			RootOnly:   spec.RootOnly,
		})
	}

	c, err := New(entries...)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", source, err)
	}
	c.Version = f.Version
	c.Description = f.Description
	return c, nil
}

// CheckVersion reports whether a catalog file version can be loaded.
func CheckVersion(version string) error {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("parsing catalog version %q: %w", version, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("catalog version %s is not supported (want %s)", version, SupportedVersions)
	}
	return nil
}

// SubfoldersFor returns the subfolders listed for a single category. The
// result is a copy and may be empty.
func (c *Catalog) SubfoldersFor(cat Category) []string {
	e, ok := c.lookup(cat)
	if !ok || len(e.Subfolders) == 0 {
		return nil
	}
	out := make([]string, len(e.Subfolders))
	copy(out, e.Subfolders)
	return out
}

// IsRootOnly reports whether a single category is placed directly under the
// base directory instead of under the root folder.
func (c *Catalog) IsRootOnly(cat Category) bool {
	e, ok := c.lookup(cat)
	return ok && e.RootOnly
}

// Entries returns every category's entry in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = Entry{
			Category:   e.Category,
			Subfolders: c.SubfoldersFor(e.Category),
			RootOnly:   e.RootOnly,
		}
	}
	return out
}

// RootOnly returns the selection of all root-only categories.
func (c *Catalog) RootOnly() Category {
	var sel Category
	for _, e := range c.entries {
		if e.RootOnly {
			sel |= e.Category
		}
	}
	return sel
}

func (c *Catalog) lookup(cat Category) (Entry, bool) {
	if _, ok := names[cat]; !ok {
		return Entry{}, false
	}
	return c.entries[index(cat)], true
}

// index returns the bit position of a single category, which is also its
// position in declaration order.
func index(cat Category) int {
	return bits.TrailingZeros32(uint32(cat))
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
