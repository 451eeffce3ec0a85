package tileset

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
)

// Variant is one concrete option within a layer group.
type Variant struct {
	ID  string `json:"id" yaml:"id" toml:"id" bson:"id"`
	SVG string `json:"svg" yaml:"svg" toml:"svg" bson:"svg"`
}

// LayerGroup is a named pool of variants. Exactly one variant of every group
// ends up on each tile.
type LayerGroup struct {
	Name     string    `json:"name" yaml:"name" toml:"name" bson:"name"`
	Variants []Variant `json:"variants" yaml:"variants" toml:"variants" bson:"variants"`
}

// Theme is an ordered sequence of layer groups. Group order is the order in
// which layers are stacked onto tiles.
//
// The color fields are presentation hints for clients and play no part in
// generation.
type Theme struct {
	Name        string       `json:"name" yaml:"name" toml:"name" bson:"name"`
	LayerGroups []LayerGroup `json:"layerGroups" yaml:"layerGroups" toml:"layerGroups" bson:"layerGroups"`

	AppBackgroundColor           string `json:"appBackgroundColor,omitempty" yaml:"appBackgroundColor,omitempty" toml:"appBackgroundColor,omitempty" bson:"appBackgroundColor,omitempty"`
	FontColor                    string `json:"fontColor,omitempty" yaml:"fontColor,omitempty" toml:"fontColor,omitempty" bson:"fontColor,omitempty"`
	TileBackgroundColorPrimary   string `json:"tileBackgroundColorPrimary,omitempty" yaml:"tileBackgroundColorPrimary,omitempty" toml:"tileBackgroundColorPrimary,omitempty" bson:"tileBackgroundColorPrimary,omitempty"`
	TileBackgroundColorSecondary string `json:"tileBackgroundColorSecondary,omitempty" yaml:"tileBackgroundColorSecondary,omitempty" toml:"tileBackgroundColorSecondary,omitempty" bson:"tileBackgroundColorSecondary,omitempty"`
}

// GroupNames returns the layer group names in declared order.
func (t *Theme) GroupNames() []string {
	names := make([]string, len(t.LayerGroups))
	for i, g := range t.LayerGroups {
		names[i] = g.Name
	}
	return names
}

// Layer is a variant placed on a tile.
type Layer struct {
	GroupName string `json:"group_name"`
	ID        string `json:"id"`
	SVG       string `json:"svg"`
}

// NewLayer builds the layer that places v from the named group.
func NewLayer(group string, v Variant) Layer {
	return Layer{GroupName: group, ID: v.ID, SVG: v.SVG}
}

// Tile is an ordered stack of layers.
type Tile []Layer

// HasLayer reports whether the tile already holds a layer from group.
func (t Tile) HasLayer(group string) bool {
	for _, l := range t {
		if l.GroupName == group {
			return true
		}
	}
	return false
}

// GroupNames returns the group of every layer, bottom to top.
func (t Tile) GroupNames() []string {
	names := make([]string, len(t))
	for i, l := range t {
		names[i] = l.GroupName
	}
	return names
}

// With returns a copy of t with l appended. The receiver is left untouched
// and the result never shares a backing array with it.
func (t Tile) With(l Layer) Tile {
	out := make(Tile, len(t), len(t)+1)
	copy(out, t)
	return append(out, l)
}

// MarshalJSON encodes an empty tile as [] rather than null. SVG markup is
// left unescaped; encoders wrapping a tile must also disable HTML escaping
// to keep it that way.
func (t Tile) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]Layer(t)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// TileSet is a board: rows of tiles, row-major.
type TileSet [][]Tile

// Rows returns the number of rows.
func (s TileSet) Rows() int { return len(s) }

// Columns returns the number of tiles per row (zero for an empty board).
func (s TileSet) Columns() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Flatten returns the tiles in row-major order.
func (s TileSet) Flatten() []Tile {
	var tiles []Tile
	for _, row := range s {
		tiles = append(tiles, row...)
	}
	return tiles
}

// Counts returns how often each variant was placed, keyed by group name and
// then variant id.
func (s TileSet) Counts() map[string]map[string]int {
	counts := make(map[string]map[string]int)
	for _, row := range s {
		for _, tile := range row {
			for _, l := range tile {
				if counts[l.GroupName] == nil {
					counts[l.GroupName] = make(map[string]int)
				}
				counts[l.GroupName][l.ID]++
			}
		}
	}
	return counts
}

// NewRand returns a PCG-backed random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
