// Package theme loads tile themes and decides which of them are public.
//
// A [Catalog] is a store of themes keyed by id: [DirCatalog] reads theme
// files from disk, [MongoCatalog] reads documents from MongoDB, and
// [CachedCatalog] puts a [cache.Cache] in front of either. A [Registry] sits
// on top and applies the public view: only configured ids resolve, aliases
// redirect one id to another stored theme, and fixture ids carry a
// pre-generated board.
//
//	cat := theme.NewDirCatalog("./assets/themes")
//	reg := theme.NewRegistry(cat, theme.RegistryOptions{
//	    IDs:     []string{"hongKong", "test"},
//	    Aliases: map[string]string{"test": "hongKong"},
//	})
//	t, err := reg.Theme(ctx, "test") // reads hongKong
package theme

import (
	"context"
	"slices"

	errs "github.com/matzehuels/tilestack/pkg/errors"
	"github.com/matzehuels/tilestack/pkg/tileset"
)

// Catalog is a store of themes.
type Catalog interface {
	// IDs lists the stored theme ids, sorted.
	IDs(ctx context.Context) ([]string, error)

	// Theme loads one theme. Unknown ids fail with THEME_NOT_FOUND.
	Theme(ctx context.Context, id string) (*tileset.Theme, error)
}

// NotFound returns the error reported for an unknown theme id.
func NotFound(id string, cause error) error {
	if cause == nil {
		return errs.New(errs.ErrCodeThemeNotFound, "Theme '%s' not found", id)
	}
	return errs.Wrap(errs.ErrCodeThemeNotFound, cause, "Theme '%s' not found", id)
}

// RegistryOptions configures a [Registry].
type RegistryOptions struct {
	// IDs are the public theme ids in listing order.
	IDs []string

	// Aliases map a public id to the stored id it reads.
	Aliases map[string]string

	// Fixtures map a public id to a stored tile set file.
	Fixtures map[string]string
}

// Registry is the public view of a catalog. It is safe for concurrent use
// once built.
type Registry struct {
	catalog  Catalog
	ids      []string
	aliases  map[string]string
	fixtures map[string]string
}

// NewRegistry builds a registry over catalog.
func NewRegistry(catalog Catalog, opts RegistryOptions) *Registry {
	r := &Registry{
		catalog:  catalog,
		ids:      slices.Clone(opts.IDs),
		aliases:  make(map[string]string, len(opts.Aliases)),
		fixtures: make(map[string]string, len(opts.Fixtures)),
	}
	for k, v := range opts.Aliases {
		r.aliases[k] = v
	}
	for k, v := range opts.Fixtures {
		r.fixtures[k] = v
	}
	return r
}

// IDs returns the public theme ids in configured order.
func (r *Registry) IDs(context.Context) ([]string, error) {
	return slices.Clone(r.ids), nil
}

// Has reports whether id is public.
func (r *Registry) Has(id string) bool {
	return slices.Contains(r.ids, id)
}

// Resolve returns the stored id a public id reads.
func (r *Registry) Resolve(id string) (string, error) {
	if !r.Has(id) {
		return "", NotFound(id, nil)
	}
	if target, ok := r.aliases[id]; ok {
		return target, nil
	}
	return id, nil
}

// Theme loads the theme behind a public id.
func (r *Registry) Theme(ctx context.Context, id string) (*tileset.Theme, error) {
	target, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}
	t, err := r.catalog.Theme(ctx, target)
	if errs.Is(err, errs.ErrCodeThemeNotFound) && target != id {
		return nil, NotFound(id, err)
	}
	return t, err
}

// Fixture returns the tile set file configured for id, if any.
func (r *Registry) Fixture(id string) (string, bool) {
	if !r.Has(id) {
		return "", false
	}
	path, ok := r.fixtures[id]
	return path, ok
}

// Catalog returns the underlying store.
func (r *Registry) Catalog() Catalog {
	return r.catalog
}

var _ Catalog = (*Registry)(nil)
