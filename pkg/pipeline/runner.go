package pipeline

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tilestack/pkg/observability"
	"github.com/matzehuels/tilestack/pkg/theme"
	"github.com/matzehuels/tilestack/pkg/tileset"
)

// Runner generates boards from a theme registry.
//
// The Runner holds no per-request state; multiple goroutines can safely
// call Generate concurrently. Each call uses its own random source.
type Runner struct {
	Registry *theme.Registry
	Logger   *log.Logger

	// DefaultRowSize and DefaultColumnSize fill in sizes a request leaves
	// at zero.
	DefaultRowSize    int
	DefaultColumnSize int

	// MaxTiles caps rows × columns; zero disables the cap.
	MaxTiles int

	// Strict is applied to requests that do not ask for it themselves.
	Strict bool
}

// NewRunner creates a runner over registry.
// If logger is nil, the default charm logger is used.
func NewRunner(registry *theme.Registry, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Registry:          registry,
		Logger:            logger,
		DefaultRowSize:    DefaultRowSize,
		DefaultColumnSize: DefaultColumnSize,
		MaxTiles:          DefaultMaxTiles,
	}
}

// Themes lists the public theme ids.
func (r *Runner) Themes(ctx context.Context) ([]string, error) {
	return r.Registry.IDs(ctx)
}

// Theme loads a public theme.
func (r *Runner) Theme(ctx context.Context, id string) (*tileset.Theme, error) {
	return r.Registry.Theme(ctx, id)
}

// Generate validates opts and returns a board.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if opts.RowSize == 0 {
		opts.RowSize = r.DefaultRowSize
	}
	if opts.ColumnSize == 0 {
		opts.ColumnSize = r.DefaultColumnSize
	}
	// Size is checked before the theme is looked at, so odd boards are
	// rejected for fixture themes too.
	if err := opts.ValidateAndSetDefaults(r.MaxTiles); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Generate()
	hooks.OnGenerateStart(ctx, opts.Theme, opts.RowSize, opts.ColumnSize)

	result, err := r.generate(ctx, opts)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnGenerateComplete(ctx, opts.Theme, 0, elapsed, err)
		return nil, err
	}

	result.Stats.Duration = elapsed
	hooks.OnGenerateComplete(ctx, opts.Theme, result.Stats.Tiles, elapsed, nil)

	opts.Logger.Debug("generated board",
		"id", result.ID,
		"theme", result.Theme,
		"seed", result.Seed,
		"fixture", result.Fixture,
		"tiles", result.Stats.Tiles,
		"pairs", result.Stats.Pairs,
		"groups", result.Stats.Groups,
		"duration", elapsed)
	return result, nil
}

func (r *Runner) generate(ctx context.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{ID: uuid.New(), Theme: opts.Theme}

	if path, ok := r.Registry.Fixture(opts.Theme); ok {
		set, err := theme.LoadFixture(path)
		if err != nil {
			return nil, err
		}
		result.Fixture = true
		result.TileSet = set
		result.Stats = statsFor(set)
		return result, nil
	}

	t, err := r.Registry.Theme(ctx, opts.Theme)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	set, err := tileset.Generate(t, opts.RowSize, opts.ColumnSize,
		tileset.WithSeed(seed),
		tileset.WithStrict(opts.Strict || r.Strict),
	)
	if err != nil {
		return nil, err
	}

	result.Seed = seed
	result.TileSet = set
	result.Stats = statsFor(set)
	return result, nil
}
