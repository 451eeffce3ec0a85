package theme

import (
	errs "github.com/matzehuels/tilestack/pkg/errors"
	"github.com/matzehuels/tilestack/pkg/tileset"
)

// Validate checks the structure of a theme before it is stored.
//
// Generation itself accepts any theme; this is only applied on import so
// obviously broken documents do not reach the catalog.
func Validate(t *tileset.Theme) error {
	if t == nil {
		return errs.New(errs.ErrCodeInvalidTheme, "theme is empty")
	}
	if t.Name == "" {
		return errs.New(errs.ErrCodeInvalidTheme, "theme has no name")
	}
	if len(t.LayerGroups) == 0 {
		return errs.New(errs.ErrCodeInvalidTheme, "theme %q has no layer groups", t.Name)
	}

	groups := make(map[string]bool, len(t.LayerGroups))
	for _, g := range t.LayerGroups {
		if g.Name == "" {
			return errs.New(errs.ErrCodeInvalidTheme, "theme %q has an unnamed layer group", t.Name)
		}
		if groups[g.Name] {
			return errs.New(errs.ErrCodeInvalidTheme, "duplicate layer group %q", g.Name)
		}
		groups[g.Name] = true

		if len(g.Variants) == 0 {
			return errs.New(errs.ErrCodeInvalidTheme, "layer group %q has no variants", g.Name)
		}
		ids := make(map[string]bool, len(g.Variants))
		for _, v := range g.Variants {
			if v.ID == "" {
				return errs.New(errs.ErrCodeInvalidTheme, "layer group %q has a variant without id", g.Name)
			}
			if ids[v.ID] {
				return errs.New(errs.ErrCodeInvalidTheme, "duplicate variant %q in group %q", v.ID, g.Name)
			}
			ids[v.ID] = true
		}
	}
	return nil
}
