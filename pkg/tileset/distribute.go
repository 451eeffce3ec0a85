package tileset

import (
	"math/rand/v2"
	"slices"
)

// DistributeGroup schedules pairCount variants of group and places each one
// as a pair, returning the updated copy of tiles.
//
// With pairCount equal to half of len(tiles) and no layer of the group placed
// beforehand, every tile ends up with exactly one layer from the group.
func DistributeGroup(tiles []Tile, group LayerGroup, pairCount int, rng *rand.Rand) []Tile {
	out, _ := distributeGroup(tiles, group, pairCount, rng)
	return out
}

// distributeGroup also reports how many layers were placed.
func distributeGroup(tiles []Tile, group LayerGroup, pairCount int, rng *rand.Rand) ([]Tile, int) {
	out := slices.Clone(tiles)
	placed := 0
	for _, v := range ScheduleVariants(group, pairCount, rng) {
		placed += placePair(out, group.Name, v, rng)
	}
	return out, placed
}
