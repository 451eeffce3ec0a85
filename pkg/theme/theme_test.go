package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/tilestack/pkg/cache"
	errs "github.com/matzehuels/tilestack/pkg/errors"
	"github.com/matzehuels/tilestack/pkg/tileset"
)

const jsonTheme = `{
  "name": "Json",
  "fontColor": "#fff",
  "layerGroups": [
    {"name": "corner", "variants": [{"id": "c1", "svg": "<svg/>"}]},
    {"name": "center", "variants": [{"id": "m1", "svg": "<svg/>"}, {"id": "m2", "svg": "<svg/>"}]}
  ]
}`

const yamlTheme = `name: Yaml
layerGroups:
  - name: corner
    variants:
      - id: c1
        svg: "<svg/>"
`

const tomlTheme = `name = "Toml"

[[layerGroups]]
name = "corner"

[[layerGroups.variants]]
id = "c1"
svg = "<svg/>"

[[layerGroups.variants]]
id = "c2"
svg = "<svg/>"
`

func writeThemes(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDirCatalogFormats(t *testing.T) {
	dir := writeThemes(t, map[string]string{
		"a.json":    jsonTheme,
		"b.yaml":    yamlTheme,
		"c.toml":    tomlTheme,
		"notes.txt": "ignored",
	})
	cat := NewDirCatalog(dir)
	ctx := context.Background()

	ids, err := cat.IDs(ctx)
	if err != nil {
		t.Fatalf("IDs: %v", err)
	}
	if want := []string{"a", "b", "c"}; !equal(ids, want) {
		t.Errorf("IDs = %v, want %v", ids, want)
	}

	tests := []struct {
		id     string
		name   string
		groups int
		first  int
	}{
		{"a", "Json", 2, 1},
		{"b", "Yaml", 1, 1},
		{"c", "Toml", 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			th, err := cat.Theme(ctx, tt.id)
			if err != nil {
				t.Fatalf("Theme: %v", err)
			}
			if th.Name != tt.name {
				t.Errorf("Name = %q, want %q", th.Name, tt.name)
			}
			if len(th.LayerGroups) != tt.groups {
				t.Fatalf("groups = %d, want %d", len(th.LayerGroups), tt.groups)
			}
			if n := len(th.LayerGroups[0].Variants); n != tt.first {
				t.Errorf("first group variants = %d, want %d", n, tt.first)
			}
		})
	}

	th, _ := cat.Theme(ctx, "a")
	if th.FontColor != "#fff" {
		t.Errorf("FontColor = %q", th.FontColor)
	}
}

func TestDirCatalogErrors(t *testing.T) {
	dir := writeThemes(t, map[string]string{"broken.json": "{"})
	cat := NewDirCatalog(dir)
	ctx := context.Background()

	if _, err := cat.Theme(ctx, "missing"); !errs.Is(err, errs.ErrCodeThemeNotFound) {
		t.Errorf("missing: err = %v, want THEME_NOT_FOUND", err)
	}
	if _, err := cat.Theme(ctx, "../etc/passwd"); !errs.Is(err, errs.ErrCodeThemeNotFound) {
		t.Errorf("traversal: err = %v, want THEME_NOT_FOUND", err)
	}
	if _, err := cat.Theme(ctx, "broken"); !errs.Is(err, errs.ErrCodeInvalidTheme) {
		t.Errorf("broken: err = %v, want INVALID_THEME", err)
	}
	if _, err := NewDirCatalog(filepath.Join(dir, "nope")).IDs(ctx); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing dir: err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDecodeFile(t *testing.T) {
	dir := writeThemes(t, map[string]string{"x.yml": yamlTheme, "x.ini": ""})

	th, err := DecodeFile(filepath.Join(dir, "x.yml"))
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if th.Name != "Yaml" {
		t.Errorf("Name = %q", th.Name)
	}
	if _, err := DecodeFile(filepath.Join(dir, "x.ini")); !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("ini: err = %v, want UNSUPPORTED", err)
	}
	if _, err := DecodeFile(filepath.Join(dir, "y.json")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing: err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRegistry(t *testing.T) {
	dir := writeThemes(t, map[string]string{"hongKong.json": jsonTheme, "hidden.json": jsonTheme})
	reg := NewRegistry(NewDirCatalog(dir), RegistryOptions{
		IDs:      []string{"hongKong", "test", "ghost"},
		Aliases:  map[string]string{"test": "hongKong", "ghost": "nowhere"},
		Fixtures: map[string]string{"test": "fixture.json"},
	})
	ctx := context.Background()

	ids, _ := reg.IDs(ctx)
	if want := []string{"hongKong", "test", "ghost"}; !equal(ids, want) {
		t.Errorf("IDs = %v, want %v", ids, want)
	}

	th, err := reg.Theme(ctx, "test")
	if err != nil {
		t.Fatalf("alias: %v", err)
	}
	if th.Name != "Json" {
		t.Errorf("alias resolved to %q", th.Name)
	}

	// Stored but not public.
	_, err = reg.Theme(ctx, "hidden")
	if !errs.Is(err, errs.ErrCodeThemeNotFound) {
		t.Fatalf("hidden: err = %v, want THEME_NOT_FOUND", err)
	}
	if msg := errs.UserMessage(err); msg != "Theme 'hidden' not found" {
		t.Errorf("message = %q", msg)
	}

	// Public alias to a missing theme reports the public id.
	_, err = reg.Theme(ctx, "ghost")
	if msg := errs.UserMessage(err); msg != "Theme 'ghost' not found" {
		t.Errorf("ghost message = %q", msg)
	}

	if path, ok := reg.Fixture("test"); !ok || path != "fixture.json" {
		t.Errorf("Fixture(test) = %q, %v", path, ok)
	}
	if _, ok := reg.Fixture("hongKong"); ok {
		t.Error("hongKong should have no fixture")
	}
}

func TestRegistryIDsAreCopied(t *testing.T) {
	reg := NewRegistry(NewDirCatalog(t.TempDir()), RegistryOptions{IDs: []string{"a"}})
	ids, _ := reg.IDs(context.Background())
	ids[0] = "b"
	if !reg.Has("a") || reg.Has("b") {
		t.Error("mutating IDs() result should not affect the registry")
	}
}

// countingCatalog counts Theme calls.
type countingCatalog struct {
	Catalog
	calls int
}

func (c *countingCatalog) Theme(ctx context.Context, id string) (*tileset.Theme, error) {
	c.calls++
	return c.Catalog.Theme(ctx, id)
}

func TestCachedCatalog(t *testing.T) {
	dir := writeThemes(t, map[string]string{"a.json": jsonTheme})
	inner := &countingCatalog{Catalog: NewDirCatalog(dir)}

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cat := NewCachedCatalog(inner, fc, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		th, err := cat.Theme(ctx, "a")
		if err != nil {
			t.Fatalf("Theme: %v", err)
		}
		if th.Name != "Json" || len(th.LayerGroups) != 2 {
			t.Fatalf("cached theme mismatch: %+v", th)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}

	if err := cat.Invalidate(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := cat.Theme(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("after Invalidate inner called %d times, want 2", inner.calls)
	}

	if _, err := cat.Theme(ctx, "missing"); !errs.Is(err, errs.ErrCodeThemeNotFound) {
		t.Errorf("missing: err = %v", err)
	}
}

func TestCachedCatalogNilCache(t *testing.T) {
	dir := writeThemes(t, map[string]string{"a.json": jsonTheme})
	inner := &countingCatalog{Catalog: NewDirCatalog(dir)}
	cat := NewCachedCatalog(inner, nil, 0)

	for i := 0; i < 2; i++ {
		if _, err := cat.Theme(context.Background(), "a"); err != nil {
			t.Fatal(err)
		}
	}
	if inner.calls != 2 {
		t.Errorf("nil cache should always miss, inner called %d times", inner.calls)
	}
}

func TestLoadFixture(t *testing.T) {
	dir := writeThemes(t, map[string]string{
		"set.json": `[[[{"group_name":"corner","id":"c1","svg":"<svg/>"}],[]]]`,
		"bad.json": `{"not":"a board"}`,
	})

	set, err := LoadFixture(filepath.Join(dir, "set.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if set.Rows() != 1 || set.Columns() != 2 {
		t.Fatalf("shape = %dx%d, want 1x2", set.Rows(), set.Columns())
	}
	if got := set[0][0][0]; got.GroupName != "corner" || got.ID != "c1" {
		t.Errorf("layer = %+v", got)
	}

	if _, err := LoadFixture(filepath.Join(dir, "nope.json")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing: err = %v", err)
	}
	if _, err := LoadFixture(filepath.Join(dir, "bad.json")); !errs.Is(err, errs.ErrCodeInternal) {
		t.Errorf("bad: err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	good := func() *tileset.Theme {
		return &tileset.Theme{
			Name: "ok",
			LayerGroups: []tileset.LayerGroup{
				{Name: "a", Variants: []tileset.Variant{{ID: "a1"}, {ID: "a2"}}},
				{Name: "b", Variants: []tileset.Variant{{ID: "b1"}}},
			},
		}
	}
	if err := Validate(good()); err != nil {
		t.Fatalf("Validate(good) = %v", err)
	}

	tests := []struct {
		name   string
		modify func(*tileset.Theme)
	}{
		{"no name", func(th *tileset.Theme) { th.Name = "" }},
		{"no groups", func(th *tileset.Theme) { th.LayerGroups = nil }},
		{"unnamed group", func(th *tileset.Theme) { th.LayerGroups[0].Name = "" }},
		{"duplicate group", func(th *tileset.Theme) { th.LayerGroups[1].Name = "a" }},
		{"empty pool", func(th *tileset.Theme) { th.LayerGroups[1].Variants = nil }},
		{"variant without id", func(th *tileset.Theme) { th.LayerGroups[0].Variants[0].ID = "" }},
		{"duplicate variant", func(th *tileset.Theme) { th.LayerGroups[0].Variants[1].ID = "a1" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := good()
			tt.modify(th)
			if err := Validate(th); !errs.Is(err, errs.ErrCodeInvalidTheme) {
				t.Errorf("Validate = %v, want INVALID_THEME", err)
			}
		})
	}
	if err := Validate(nil); !errs.Is(err, errs.ErrCodeInvalidTheme) {
		t.Errorf("Validate(nil) = %v", err)
	}
}

func TestBundledAssets(t *testing.T) {
	root := filepath.Join("..", "..", "assets")
	th, err := NewDirCatalog(filepath.Join(root, "themes")).Theme(context.Background(), "hongKong")
	if err != nil {
		t.Fatalf("hongKong: %v", err)
	}
	if err := Validate(th); err != nil {
		t.Errorf("Validate: %v", err)
	}

	set, err := LoadFixture(filepath.Join(root, "tileSets", "testTileSet.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if set.Rows() != 6 || set.Columns() != 5 {
		t.Errorf("fixture = %d×%d, want 6×5", set.Rows(), set.Columns())
	}
	if err := tileset.Check(set, th); err != nil {
		t.Errorf("fixture does not pair off: %v", err)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
