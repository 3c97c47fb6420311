package scaffold

import (
	"fmt"

	"github.com/foldergen-labs/foldergen/internal/catalog"
)

// Error reports the step that failed. It unwraps to the underlying
// filesystem error.
type Error struct {
	Op       string
	Category catalog.Category
	Path     string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Path, e.Category, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
