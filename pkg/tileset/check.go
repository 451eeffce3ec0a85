package tileset

import (
	"slices"
	"sort"

	errs "github.com/matzehuels/tilestack/pkg/errors"
)

// Check verifies a finished board against theme: every tile must hold one
// layer per group in theme order, and every variant must be placed an even
// number of times. It returns the first violation found.
func Check(set TileSet, theme *Theme) error {
	want := theme.GroupNames()
	for r, row := range set {
		for c, tile := range row {
			if got := tile.GroupNames(); !slices.Equal(got, want) {
				return errs.New(errs.ErrCodeUnderfilledGroup,
					"tile (%d,%d) has groups %v, want %v", r, c, got, want)
			}
		}
	}

	counts := set.Counts()
	for _, group := range want {
		ids := make([]string, 0, len(counts[group]))
		for id := range counts[group] {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if n := counts[group][id]; n%2 != 0 {
				return errs.New(errs.ErrCodeInternal,
					"variant %s/%s placed %d times, want an even count", group, id, n)
			}
		}
	}
	return nil
}
