// Package cli defines the Cobra command tree for the foldergen CLI. Each file
// in this package registers one top-level command (generate, catalog, config,
// version) with the root command. Commands resolve flags against the user's
// config and delegate the actual work to the catalog and scaffold packages.
package cli
