// Package scaffold turns a generation request into directories and
// placeholder files under a base directory. Plan computes the ordered list
// of steps from the catalog alone; Generator.Generate applies them,
// stopping at the first filesystem error without rolling back. Every step
// is idempotent, so running the same request twice leaves the same tree.
package scaffold
