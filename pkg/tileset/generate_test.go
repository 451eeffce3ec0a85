package tileset

import (
	"reflect"
	"slices"
	"testing"

	errs "github.com/matzehuels/tilestack/pkg/errors"
)

func testTheme() *Theme {
	return &Theme{
		Name: "Test",
		LayerGroups: []LayerGroup{
			{Name: "foo", Variants: []Variant{variant("f1"), variant("f2")}},
			{Name: "bar", Variants: []Variant{variant("b1"), variant("b2")}},
		},
	}
}

func TestGenerateTwoByTwo(t *testing.T) {
	for seed := range uint64(20) {
		set, err := Generate(testTheme(), 2, 2, WithSeed(seed))
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		if set.Rows() != 2 || set.Columns() != 2 {
			t.Fatalf("shape = %dx%d, want 2x2", set.Rows(), set.Columns())
		}
		for _, row := range set {
			for _, tile := range row {
				if got := tile.GroupNames(); !slices.Equal(got, []string{"foo", "bar"}) {
					t.Errorf("seed %d: groups = %v, want [foo bar]", seed, got)
				}
			}
		}

		counts := set.Counts()
		for group, want := range map[string][]string{"foo": {"f1", "f2"}, "bar": {"b1", "b2"}} {
			for _, id := range want {
				if counts[group][id] != 2 {
					t.Errorf("seed %d: %s/%s placed %d times, want 2", seed, group, id, counts[group][id])
				}
			}
		}
		if err := Check(set, testTheme()); err != nil {
			t.Errorf("Check: %v", err)
		}
	}
}

func TestGenerateShape(t *testing.T) {
	tests := []struct {
		rowSize, columnSize int
	}{
		{2, 2},
		{5, 6},
		{6, 5},
		{4, 1},
		{1, 8},
		{10, 10},
	}

	for _, tt := range tests {
		set, err := Generate(testTheme(), tt.rowSize, tt.columnSize, WithSeed(1))
		if err != nil {
			t.Fatalf("Generate(%d, %d) error: %v", tt.rowSize, tt.columnSize, err)
		}
		if set.Rows() != tt.columnSize {
			t.Errorf("Generate(%d, %d) rows = %d, want %d", tt.rowSize, tt.columnSize, set.Rows(), tt.columnSize)
		}
		for i, row := range set {
			if len(row) != tt.rowSize {
				t.Errorf("Generate(%d, %d) row %d has %d tiles, want %d", tt.rowSize, tt.columnSize, i, len(row), tt.rowSize)
			}
		}
		if err := Check(set, testTheme()); err != nil {
			t.Errorf("Generate(%d, %d): %v", tt.rowSize, tt.columnSize, err)
		}
	}
}

func TestGenerateThreeGroupsUnevenPools(t *testing.T) {
	theme := &Theme{
		Name: "Uneven",
		LayerGroups: []LayerGroup{
			{Name: "corner", Variants: []Variant{variant("c1"), variant("c2"), variant("c3")}},
			{Name: "edge", Variants: []Variant{variant("e1")}},
			{Name: "center", Variants: []Variant{variant("m1"), variant("m2"), variant("m3"), variant("m4"), variant("m5")}},
		},
	}

	set, err := Generate(theme, 5, 6, WithSeed(99), WithStrict(true))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if err := Check(set, theme); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestGenerateInvalidGridSize(t *testing.T) {
	tests := []struct {
		name                string
		rowSize, columnSize int
	}{
		{"odd", 3, 3},
		{"one tile", 1, 1},
		{"zero", 0, 4},
		{"negative", -2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(testTheme(), tt.rowSize, tt.columnSize)
			if !errs.Is(err, errs.ErrCodeInvalidGridSize) {
				t.Errorf("Generate(%d, %d) error = %v, want INVALID_GRID_SIZE", tt.rowSize, tt.columnSize, err)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(testTheme(), 4, 4, WithSeed(42))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(testTheme(), 4, 4, WithRand(NewRand(42)))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should produce the same board")
	}
}

func TestGenerateUnseeded(t *testing.T) {
	set, err := Generate(testTheme(), 2, 4)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if err := Check(set, testTheme()); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestGenerateEmptyPool(t *testing.T) {
	theme := &Theme{
		Name: "Broken",
		LayerGroups: []LayerGroup{
			{Name: "foo", Variants: []Variant{variant("f1")}},
			{Name: "empty"},
		},
	}

	set, err := Generate(theme, 2, 2, WithSeed(1))
	if err != nil {
		t.Fatalf("non-strict Generate error: %v", err)
	}
	for _, tile := range set.Flatten() {
		if got := tile.GroupNames(); !slices.Equal(got, []string{"foo"}) {
			t.Errorf("groups = %v, want [foo]", got)
		}
	}
	if err := Check(set, theme); !errs.Is(err, errs.ErrCodeUnderfilledGroup) {
		t.Errorf("Check error = %v, want UNDERFILLED_GROUP", err)
	}

	if _, err := Generate(theme, 2, 2, WithSeed(1), WithStrict(true)); !errs.Is(err, errs.ErrCodeUnderfilledGroup) {
		t.Errorf("strict Generate error = %v, want UNDERFILLED_GROUP", err)
	}
}

func TestGenerateDuplicateGroupNames(t *testing.T) {
	theme := &Theme{
		Name: "Dup",
		LayerGroups: []LayerGroup{
			{Name: "foo", Variants: []Variant{variant("a")}},
			{Name: "foo", Variants: []Variant{variant("b")}},
		},
	}

	set, err := Generate(theme, 2, 2, WithSeed(3))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	// The second group finds no eligible tiles: under-assignment, never duplication.
	for _, tile := range set.Flatten() {
		if len(tile) != 1 || tile[0].ID != "a" {
			t.Errorf("tile = %v, want only variant a", tile)
		}
	}

	if _, err := Generate(theme, 2, 2, WithSeed(3), WithStrict(true)); !errs.Is(err, errs.ErrCodeUnderfilledGroup) {
		t.Errorf("strict Generate error = %v, want UNDERFILLED_GROUP", err)
	}
}

func TestReshape(t *testing.T) {
	tiles := make([]Tile, 12)
	set, err := Reshape(tiles, 3, 4)
	if err != nil {
		t.Fatalf("Reshape error: %v", err)
	}
	if len(set) != 4 {
		t.Fatalf("rows = %d, want 4", len(set))
	}
	for i, row := range set {
		if len(row) != 3 {
			t.Errorf("row %d has %d tiles, want 3", i, len(row))
		}
	}

	if _, err := Reshape(tiles, 5, 5); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("Reshape(12 tiles, 5, 5) error = %v, want INVALID_INPUT", err)
	}
}

func TestReshapeRowOrder(t *testing.T) {
	tiles := []Tile{
		{layer("g", "0")}, {layer("g", "1")},
		{layer("g", "2")}, {layer("g", "3")},
	}
	set, err := Reshape(tiles, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if set[0][1][0].ID != "1" || set[1][0][0].ID != "2" {
		t.Errorf("Reshape is not row-major: %v", set)
	}
}

func TestCheckOddCount(t *testing.T) {
	theme := &Theme{LayerGroups: []LayerGroup{{Name: "g"}}}
	set := TileSet{{{layer("g", "a")}, {layer("g", "b")}}}
	if err := Check(set, theme); !errs.Is(err, errs.ErrCodeInternal) {
		t.Errorf("Check error = %v, want INTERNAL_ERROR for odd counts", err)
	}
}
