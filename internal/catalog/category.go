package catalog

import (
	"fmt"
	"strings"
)

// Category is a single folder category or, when several bits are set, a
// selection of categories. Bit values are persisted in user config and
// must never be renumbered.
type Category uint32

const (
	Animations Category = 1 << iota
	Fonts
	Images
	Models
	Plugins
	Prefabs
	Resources
	Scenes
	Scripts
	Shaders
	Sounds
	StreamingAssets
)

// None is the empty selection.
const None Category = 0

// All selects every known category.
const All = Animations | Fonts | Images | Models | Plugins | Prefabs |
	Resources | Scenes | Scripts | Shaders | Sounds | StreamingAssets

// declared lists categories in declaration order. Generation and listing
// both iterate in this order.
var declared = []Category{
	Animations, Fonts, Images, Models, Plugins, Prefabs,
	Resources, Scenes, Scripts, Shaders, Sounds, StreamingAssets,
}

var names = map[Category]string{
	Animations:      "Animations",
	Fonts:           "Fonts",
	Images:          "Images",
	Models:          "Models",
	Plugins:         "Plugins",
	Prefabs:         "Prefabs",
	Resources:       "Resources",
	Scenes:          "Scenes",
	Scripts:         "Scripts",
	Shaders:         "Shaders",
	Sounds:          "Sounds",
	StreamingAssets: "StreamingAssets",
}

// Categories returns every single-bit category in declaration order.
func Categories() []Category {
	out := make([]Category, len(declared))
	copy(out, declared)
	return out
}

// String returns the folder name for a single category, a comma-separated
// list for a selection, and "None" for the empty selection.
func (c Category) String() string {
	if c == None {
		return "None"
	}
	if name, ok := names[c]; ok {
		return name
	}
	parts := c.Names()
	if unknown := c &^ All; unknown != 0 {
		parts = append(parts, fmt.Sprintf("Category(%#x)", uint32(unknown)))
	}
	return strings.Join(parts, ",")
}

// Has reports whether every bit of other is set in c.
func (c Category) Has(other Category) bool {
	return other != None && c&other == other
}

// IsEmpty reports whether the selection contains no known category.
func (c Category) IsEmpty() bool {
	return c&All == None
}

// Split returns the single categories contained in c in declaration order.
// Bits outside the known set are ignored.
func (c Category) Split() []Category {
	var out []Category
	for _, cat := range declared {
		if c&cat != 0 {
			out = append(out, cat)
		}
	}
	return out
}

// Names returns the folder names of the categories in c in declaration order.
func (c Category) Names() []string {
	var out []string
	for _, cat := range c.Split() {
		out = append(out, names[cat])
	}
	return out
}

// ParseCategory resolves a single category name, ignoring case.
func ParseCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	for _, cat := range declared {
		if strings.EqualFold(names[cat], name) {
			return cat, nil
		}
	}
	return None, fmt.Errorf("unknown category %q (known: %s)", name, strings.Join(All.Names(), ", "))
}

// ParseSelection parses a comma-separated list of category names. The
// keyword "all" selects every category; an empty string selects none.
func ParseSelection(list string) (Category, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return None, nil
	}
	if strings.EqualFold(list, "all") {
		return All, nil
	}

	var sel Category
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		cat, err := ParseCategory(part)
		if err != nil {
			return None, err
		}
		sel |= cat
	}
	return sel, nil
}
