package tileset

import (
	"math/rand/v2"
	"slices"
)

// ScheduleVariants returns exactly pairCount variants drawn from the group's
// pool. The sequence is built from ceil(pairCount/len(pool)) independent
// shuffles of the pool laid end to end, then truncated, so every full cycle
// contains each variant once.
//
// An empty pool or a non-positive pairCount yields an empty schedule. The
// group's variant slice is not reordered.
func ScheduleVariants(group LayerGroup, pairCount int, rng *rand.Rand) []Variant {
	n := len(group.Variants)
	if n == 0 || pairCount <= 0 {
		return nil
	}

	cycles := (pairCount + n - 1) / n
	pool := slices.Clone(group.Variants)
	out := make([]Variant, 0, cycles*n)
	for range cycles {
		rng.Shuffle(n, func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		out = append(out, pool...)
	}
	return out[:pairCount]
}
