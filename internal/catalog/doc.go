// Package catalog defines the fixed folder taxonomy used by the generator.
// Each Category occupies one bit so a selection of categories is itself a
// Category value. A Catalog maps categories to their subfolders and to the
// root-only placement rule; the default catalog is embedded, and custom
// catalogs are loaded from YAML files validated against an embedded JSON
// Schema.
package catalog
