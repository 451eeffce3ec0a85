// Package tileset generates boards for tile-matching puzzles.
//
// # Overview
//
// A board is a grid of composite tiles. Every tile is a stack of layers, one
// per [LayerGroup] of a [Theme] (for example corner, edge and center art).
// Variants of a group are always placed in pairs, so every variant appears an
// even number of times on the board and a matching game can pair them off.
//
// # Generation
//
// [Generate] builds a board in one pass:
//
//  1. Start from rows × columns empty tiles (the product must be even).
//  2. For each layer group, in theme order, draw a schedule of variants with
//     [ScheduleVariants]: full shuffles of the pool, truncated to the pair
//     count (half the number of tiles).
//  3. For each scheduled variant, [PlacePair] picks two random tiles that do
//     not hold a layer from the group yet ([FindEligible]) and appends the
//     variant to both ([PlaceLayer]).
//  4. Reshape the flat list into rows with [Reshape].
//
// Tiles are values: placing a layer returns a new tile backed by a fresh
// slice, so no two positions ever share storage.
//
// # Randomness
//
// All functions draw from an explicit *rand.Rand. Use [NewRand] with a fixed
// seed for reproducible boards:
//
//	set, err := tileset.Generate(theme, 5, 6, tileset.WithSeed(42))
//
// # Underfilled groups
//
// When a group's schedule runs out of eligible tiles (or the pool is empty),
// the remaining tiles simply miss a layer from that group. [WithStrict] turns
// this into an UNDERFILLED_GROUP error, and [Check] verifies a finished board.
package tileset
