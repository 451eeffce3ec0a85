// Package pkg provides the core libraries for Tilestack board generation.
//
// # Overview
//
// Tilestack builds boards for tile-matching puzzles. A theme describes layer
// groups (corner art, center art, and so on) with interchangeable variants;
// a board is a grid of tiles that each stack one variant per group, with
// every variant placed in pairs so the board can be cleared.
//
// # Architecture
//
// The typical data flow:
//
//	Theme file / MongoDB document
//	         ↓
//	    [theme] package (load, validate, cache, resolve public ids)
//	         ↓
//	    [pipeline] package (validate request, pick seed, fixtures)
//	         ↓
//	    [tileset] package (schedule variants, place pairs, reshape)
//	         ↓
//	    JSON board / terminal table
//
// # Quick Start
//
//	import "github.com/matzehuels/tilestack/pkg/tileset"
//
//	theme := &tileset.Theme{Name: "Demo", LayerGroups: groups}
//	set, err := tileset.Generate(theme, 5, 6, tileset.WithSeed(42))
//
// # Main Packages
//
// [tileset] - Board generation: variant scheduling, eligibility, pair
// placement and reshaping into rows. Pure and deterministic for a seed.
//
// [theme] - Theme catalogs backed by a directory of JSON, YAML or TOML files
// or a MongoDB collection, a caching decorator and the public id registry
// with aliases and stored fixture boards.
//
// [pipeline] - Request validation and the generation runner shared by the
// CLI and the HTTP server.
//
// [server] - The HTTP API: theme listing, theme lookup and board
// generation.
//
// [cache] - Byte caches (file, Redis, none) the theme catalog sits behind.
//
// [config] - TOML configuration with environment overrides.
//
// [errors] - Coded errors with HTTP status mapping and validation helpers.
//
// [observability] - Hooks for generation, cache and HTTP events.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [tileset]: https://pkg.go.dev/github.com/matzehuels/tilestack/pkg/tileset
// [theme]: https://pkg.go.dev/github.com/matzehuels/tilestack/pkg/theme
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tilestack/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/tilestack/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/tilestack/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/tilestack/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/tilestack/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tilestack/pkg/observability
package pkg
