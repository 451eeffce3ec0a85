package tileset

import (
	"math/rand/v2"
	"slices"
)

// PlaceLayer returns a copy of tiles where the tile at pos has one more
// layer, built from group and v. The input list and its tiles are not
// modified.
func PlaceLayer(tiles []Tile, pos int, group string, v Variant) []Tile {
	out := slices.Clone(tiles)
	out[pos] = tiles[pos].With(NewLayer(group, v))
	return out
}

// PlacePair places v on two random tiles that lack a layer from group and
// returns the updated copy of tiles. When fewer than two tiles are eligible
// the variant goes to as many as there are.
func PlacePair(tiles []Tile, group string, v Variant, rng *rand.Rand) []Tile {
	out := slices.Clone(tiles)
	placePair(out, group, v, rng)
	return out
}

// placePair is PlacePair on a list the caller owns. It writes fresh tile
// values into tiles and returns how many positions received the layer.
func placePair(tiles []Tile, group string, v Variant, rng *rand.Rand) int {
	layer := NewLayer(group, v)
	positions := FindEligible(tiles, group, PairSize, rng)
	for _, pos := range positions {
		tiles[pos] = tiles[pos].With(layer)
	}
	return len(positions)
}
