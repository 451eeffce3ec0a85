// Package pipeline runs board generation for the CLI and the API.
//
// Both entry points go through the same [Runner] so validation order,
// fixture handling and defaults are identical everywhere:
//
//  1. Validate: the board must have a positive, even number of tiles
//  2. Fixture: ids configured with a fixture return the stored board
//  3. Resolve: the theme is loaded through the registry (aliases applied)
//  4. Generate: a seed is drawn if none was given and the board is built
//
// # Usage
//
//	runner := pipeline.NewRunner(registry, logger)
//	result, err := runner.Generate(ctx, pipeline.Options{
//	    Theme:      "hongKong",
//	    RowSize:    5,
//	    ColumnSize: 6,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Seed, result.TileSet.Rows())
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	errs "github.com/matzehuels/tilestack/pkg/errors"
	"github.com/matzehuels/tilestack/pkg/tileset"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultRowSize is the number of tiles per row.
	DefaultRowSize = 5

	// DefaultColumnSize is the number of rows.
	DefaultColumnSize = 6

	// DefaultMaxTiles caps the board size when none is configured.
	DefaultMaxTiles = 400
)

// Format constants for CLI output.
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:  true,
	FormatTable: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidInput, "invalid format: %q (must be one of: json, table)", format)
	}
	return nil
}

// =============================================================================
// Options - Generation Request
// =============================================================================

// Options describes one board request.
type Options struct {
	Theme      string `json:"theme"`
	RowSize    int    `json:"rowSize,omitempty"`
	ColumnSize int    `json:"columnSize,omitempty"`

	// Seed makes the board reproducible. Zero draws a fresh seed, which is
	// reported back in Result.Seed.
	Seed uint64 `json:"seed,omitempty"`

	// Strict fails the request when a layer group cannot cover every tile.
	Strict bool `json:"strict,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults applies default sizes and checks the request.
// maxTiles of zero disables the size cap. Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults(maxTiles int) error {
	if o.validated {
		return nil
	}
	if err := errs.ValidateThemeID(o.Theme); err != nil {
		return err
	}
	if o.RowSize == 0 {
		o.RowSize = DefaultRowSize
	}
	if o.ColumnSize == 0 {
		o.ColumnSize = DefaultColumnSize
	}
	if err := errs.ValidateGridSize(o.RowSize, o.ColumnSize, maxTiles); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result is a generated (or fixture) board.
type Result struct {
	// ID identifies this board in logs and response headers.
	ID uuid.UUID

	// Theme is the requested public theme id.
	Theme string

	// Seed reproduces the board; zero for fixtures.
	Seed uint64

	// Fixture is true when the board was read from a stored file.
	Fixture bool

	TileSet tileset.TileSet
	Stats   Stats
}

// Stats describes a generated board.
type Stats struct {
	Tiles    int
	Pairs    int // pairs placed across all groups
	Groups   int
	Duration time.Duration
}

func statsFor(set tileset.TileSet) Stats {
	s := Stats{Tiles: set.Rows() * set.Columns()}
	counts := set.Counts()
	s.Groups = len(counts)
	for _, variants := range counts {
		for _, n := range variants {
			s.Pairs += n / tileset.PairSize
		}
	}
	return s
}
