package tileset

import (
	"math/rand/v2"
	"slices"

	errs "github.com/matzehuels/tilestack/pkg/errors"
)

// Option configures [Generate].
type Option func(*generator)

type generator struct {
	rng    *rand.Rand
	strict bool
}

// WithRand draws all randomness from r.
func WithRand(r *rand.Rand) Option { return func(g *generator) { g.rng = r } }

// WithSeed draws all randomness from a PCG source seeded with seed.
func WithSeed(seed uint64) Option { return func(g *generator) { g.rng = NewRand(seed) } }

// WithStrict makes Generate fail with UNDERFILLED_GROUP when a group leaves
// any tile without a layer, instead of returning the short board.
func WithStrict(strict bool) Option { return func(g *generator) { g.strict = strict } }

// Generate builds a rowSize × columnSize board for theme. The result has
// columnSize rows of rowSize tiles each.
//
// The tile count must be even and positive; otherwise Generate returns an
// INVALID_GRID_SIZE error without drawing any randomness. Without a random
// source option a fresh, randomly seeded one is used.
func Generate(theme *Theme, rowSize, columnSize int, opts ...Option) (TileSet, error) {
	if err := errs.ValidateGridSize(rowSize, columnSize, 0); err != nil {
		return nil, err
	}

	g := generator{}
	for _, opt := range opts {
		opt(&g)
	}
	if g.rng == nil {
		g.rng = NewRand(rand.Uint64())
	}

	total := rowSize * columnSize
	pairCount := total / 2

	// Each position starts as its own nil tile; With always allocates, so no
	// two positions can alias.
	tiles := make([]Tile, total)
	for _, group := range theme.LayerGroups {
		var placed int
		tiles, placed = distributeGroup(tiles, group, pairCount, g.rng)
		if g.strict && placed != total {
			return nil, errs.New(errs.ErrCodeUnderfilledGroup,
				"group %q covered %d of %d tiles", group.Name, placed, total)
		}
	}

	return Reshape(tiles, rowSize, columnSize)
}

// Reshape splits a flat, row-major tile list into columnSize rows of rowSize
// tiles. The rows are copies and do not share storage with tiles.
func Reshape(tiles []Tile, rowSize, columnSize int) (TileSet, error) {
	if rowSize < 0 || columnSize < 0 || len(tiles) != rowSize*columnSize {
		return nil, errs.New(errs.ErrCodeInvalidInput,
			"cannot reshape %d tiles into %d rows of %d", len(tiles), columnSize, rowSize)
	}

	set := make(TileSet, columnSize)
	for i := range columnSize {
		set[i] = slices.Clone(tiles[i*rowSize : (i+1)*rowSize])
	}
	return set, nil
}
