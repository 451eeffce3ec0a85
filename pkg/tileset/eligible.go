package tileset

import "math/rand/v2"

// PairSize is the number of tiles that receive each scheduled variant.
const PairSize = 2

// FindEligible returns up to quantity positions of tiles that hold no layer
// from group, in uniformly random order. Fewer positions are returned when
// fewer tiles are eligible.
func FindEligible(tiles []Tile, group string, quantity int, rng *rand.Rand) []int {
	candidates := make([]int, 0, len(tiles))
	for i, t := range tiles {
		if !t.HasLayer(group) {
			candidates = append(candidates, i)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	quantity = max(quantity, 0)
	if quantity < len(candidates) {
		candidates = candidates[:quantity]
	}
	return candidates
}
