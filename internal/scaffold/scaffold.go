package scaffold

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/foldergen-labs/foldergen/internal/catalog"
	"github.com/foldergen-labs/foldergen/internal/logger"
)

// Request describes one generation run.
type Request struct {
	BaseDir     string           // Existing directory everything is created under
	RootFolder  string           // Nesting folder for non-root-only categories; empty for none
	Categories  catalog.Category // Selection of categories to create
	Placeholder string           // Placeholder file name; empty disables placeholders
}

// Status distinguishes a run that did work from one that had nothing to do.
type Status int

const (
	StatusCreated Status = iota
	StatusNoop
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusNoop:
		return "noop"
	default:
		return "unknown"
	}
}

// Result holds the outcome of a successful run.
type Result struct {
	Status   Status
	Dirs     []string // Directories ensured, in creation order
	Files    []string // Placeholder files written by this run
	Existing []string // Placeholder files that were already present
}

// StepKind is the kind of filesystem operation a Step performs.
type StepKind int

const (
	StepDir StepKind = iota
	StepPlaceholder
)

func (k StepKind) String() string {
	if k == StepPlaceholder {
		return "placeholder"
	}
	return "dir"
}

// Step is one filesystem operation of a plan.
type Step struct {
	Kind     StepKind
	Category catalog.Category
	Path     string
}

// Plan returns the steps a request performs, in execution order. It does not
// touch the filesystem.
func Plan(cat *catalog.Catalog, req Request) []Step {
	var steps []Step
	for _, c := range req.Categories.Split() {
		base := CategoryPath(cat, req.BaseDir, req.RootFolder, c)
		steps = append(steps, Step{Kind: StepDir, Category: c, Path: base})

		subs := cat.SubfoldersFor(c)
		if len(subs) == 0 {
			steps = appendPlaceholder(steps, c, base, req.Placeholder)
			continue
		}
		for _, sub := range subs {
			dir := filepath.Join(base, filepath.FromSlash(sub))
			steps = append(steps, Step{Kind: StepDir, Category: c, Path: dir})
			steps = appendPlaceholder(steps, c, dir, req.Placeholder)
		}
	}
	return steps
}

func appendPlaceholder(steps []Step, c catalog.Category, dir, name string) []Step {
	if name == "" {
		return steps
	}
	return append(steps, Step{Kind: StepPlaceholder, Category: c, Path: filepath.Join(dir, name)})
}

// CategoryPath returns the folder of a single category. Root-only
// categories ignore rootFolder.
func CategoryPath(cat *catalog.Catalog, baseDir, rootFolder string, c catalog.Category) string {
	if cat.IsRootOnly(c) {
		return filepath.Join(baseDir, c.String())
	}
	return filepath.Join(baseDir, rootFolder, c.String())
}

// Generator applies plans against the local filesystem.
type Generator struct {
	catalog *catalog.Catalog
	log     *slog.Logger
}

// New returns a Generator for cat. A nil catalog means the embedded default
// and a nil logger discards records.
func New(cat *catalog.Catalog, log *slog.Logger) *Generator {
	if cat == nil {
		cat = catalog.Default()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Generator{catalog: cat, log: log}
}

// Generate creates the folders for req. An empty selection succeeds with
// StatusNoop and no side effects. The first failing step aborts the run;
// work already done stays on disk.
func (g *Generator) Generate(req Request) (*Result, error) {
	if req.Categories.IsEmpty() {
		g.log.Info("nothing selected", "base", req.BaseDir)
		return &Result{Status: StatusNoop}, nil
	}

	g.log.Info("generating folders",
		"base", req.BaseDir,
		"root", req.RootFolder,
		"categories", req.Categories.String(),
		"placeholder", req.Placeholder,
	)

	result := &Result{Status: StatusCreated}
	for _, step := range Plan(g.catalog, req) {
		switch step.Kind {
		case StepDir:
			if err := os.MkdirAll(step.Path, 0755); err != nil {
				return nil, g.fail("create directory", step, err)
			}
			result.Dirs = append(result.Dirs, step.Path)
			g.log.Debug("directory ready", "category", step.Category.String(), "path", step.Path)

		case StepPlaceholder:
			written, err := writePlaceholder(step.Path)
			if err != nil {
				return nil, g.fail("create placeholder", step, err)
			}
			if written {
				result.Files = append(result.Files, step.Path)
				g.log.Debug("placeholder written", "category", step.Category.String(), "path", step.Path)
			} else {
				result.Existing = append(result.Existing, step.Path)
			}
		}
	}

	g.log.Info("generation finished", "dirs", len(result.Dirs), "files", len(result.Files))
	return result, nil
}

func (g *Generator) fail(op string, step Step, err error) error {
	g.log.Error("generation failed", "op", op, "category", step.Category.String(), "path", step.Path, "error", err)
	return &Error{Op: op, Category: step.Category, Path: step.Path, Err: err}
}

// ErrNotRegularFile is returned when something other than a regular file
// occupies a placeholder path.
var ErrNotRegularFile = errors.New("exists and is not a regular file")

// writePlaceholder creates an empty file at path unless one already exists.
// It reports whether this call created the file.
func writePlaceholder(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err == nil {
		return true, f.Close()
	}
	if !errors.Is(err, fs.ErrExist) {
		return false, err
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		return false, statErr
	}
	if !info.Mode().IsRegular() {
		return false, &fs.PathError{Op: "create", Path: path, Err: ErrNotRegularFile}
	}
	return false, nil
}
