package tileset

import (
	"testing"
)

func ids(vs []Variant) map[string]bool {
	set := make(map[string]bool, len(vs))
	for _, v := range vs {
		set[v.ID] = true
	}
	return set
}

func TestScheduleVariantsFullCycles(t *testing.T) {
	group := LayerGroup{Name: "foo", Variants: []Variant{variant("0"), variant("1")}}

	schedule := ScheduleVariants(group, 8, NewRand(42))
	if len(schedule) != 8 {
		t.Fatalf("len = %d, want 8", len(schedule))
	}
	for i := 0; i < len(schedule); i += 2 {
		chunk := ids(schedule[i : i+2])
		if !chunk["0"] || !chunk["1"] {
			t.Errorf("chunk %d = %v, want both variants", i/2, schedule[i:i+2])
		}
	}
}

func TestScheduleVariantsTruncated(t *testing.T) {
	group := LayerGroup{Name: "foo", Variants: []Variant{variant("a"), variant("b"), variant("c")}}

	schedule := ScheduleVariants(group, 4, NewRand(9))
	if len(schedule) != 4 {
		t.Fatalf("len = %d, want 4", len(schedule))
	}
	if first := ids(schedule[:3]); len(first) != 3 {
		t.Errorf("first cycle = %v, want every variant once", schedule[:3])
	}
}

func TestScheduleVariantsLargePool(t *testing.T) {
	pool := []Variant{variant("a"), variant("b"), variant("c"), variant("d"), variant("e")}
	group := LayerGroup{Name: "foo", Variants: pool}

	schedule := ScheduleVariants(group, 2, NewRand(5))
	if len(schedule) != 2 {
		t.Fatalf("len = %d, want 2", len(schedule))
	}
	if schedule[0].ID == schedule[1].ID {
		t.Errorf("schedule within one cycle repeats %s", schedule[0].ID)
	}
}

func TestScheduleVariantsEmpty(t *testing.T) {
	tests := []struct {
		name      string
		group     LayerGroup
		pairCount int
	}{
		{"empty pool", LayerGroup{Name: "foo"}, 4},
		{"zero pairs", LayerGroup{Name: "foo", Variants: []Variant{variant("a")}}, 0},
		{"negative pairs", LayerGroup{Name: "foo", Variants: []Variant{variant("a")}}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScheduleVariants(tt.group, tt.pairCount, NewRand(1)); len(got) != 0 {
				t.Errorf("ScheduleVariants = %v, want empty", got)
			}
		})
	}
}

func TestScheduleVariantsKeepsPoolOrder(t *testing.T) {
	pool := []Variant{variant("a"), variant("b"), variant("c"), variant("d")}
	group := LayerGroup{Name: "foo", Variants: pool}

	ScheduleVariants(group, 12, NewRand(3))

	for i, want := range []string{"a", "b", "c", "d"} {
		if pool[i].ID != want {
			t.Fatalf("pool reordered: %v", pool)
		}
	}
}
