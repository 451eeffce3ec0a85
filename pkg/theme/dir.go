package theme

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/tilestack/pkg/errors"
	"github.com/matzehuels/tilestack/pkg/tileset"
)

// decoders maps theme file extensions to their decoder, in lookup order.
var decoders = []struct {
	ext    string
	decode func([]byte, *tileset.Theme) error
}{
	{".json", decodeJSON},
	{".yaml", decodeYAML},
	{".yml", decodeYAML},
	{".toml", decodeTOML},
}

func decodeJSON(data []byte, t *tileset.Theme) error {
	return json.Unmarshal(data, t)
}

func decodeYAML(data []byte, t *tileset.Theme) error {
	return yaml.Unmarshal(data, t)
}

func decodeTOML(data []byte, t *tileset.Theme) error {
	_, err := toml.Decode(string(data), t)
	return err
}

// DirCatalog reads themes from <dir>/<id>.json, .yaml, .yml or .toml.
// When several files share an id the first extension in that list wins.
type DirCatalog struct {
	dir string
}

// NewDirCatalog returns a catalog over dir. The directory is not read until
// a theme is requested.
func NewDirCatalog(dir string) *DirCatalog {
	return &DirCatalog{dir: dir}
}

// Dir returns the catalog directory.
func (c *DirCatalog) Dir() string { return c.dir }

// IDs lists the ids of all theme files in the directory.
func (c *DirCatalog) IDs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "theme directory %s", c.dir)
		}
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "read theme directory %s", c.dir)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !knownExt(ext) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ext)
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func knownExt(ext string) bool {
	for _, d := range decoders {
		if d.ext == ext {
			return true
		}
	}
	return false
}

// Theme loads and decodes the file for id.
func (c *DirCatalog) Theme(ctx context.Context, id string) (*tileset.Theme, error) {
	if err := errs.ValidateThemeID(id); err != nil {
		return nil, NotFound(id, err)
	}

	var lastErr error
	for _, d := range decoders {
		path := filepath.Join(c.dir, id+d.ext)
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}

		var t tileset.Theme
		if err := d.decode(data, &t); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidTheme, err, "decode theme %s", path)
		}
		return &t, nil
	}
	return nil, NotFound(id, lastErr)
}

var _ Catalog = (*DirCatalog)(nil)

// DecodeFile reads a single theme file, choosing the decoder by extension.
func DecodeFile(path string) (*tileset.Theme, error) {
	ext := filepath.Ext(path)
	for _, d := range decoders {
		if d.ext != ext {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "theme file %s", path)
			}
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "read theme file %s", path)
		}
		var t tileset.Theme
		if err := d.decode(data, &t); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidTheme, err, "decode theme %s", path)
		}
		return &t, nil
	}
	return nil, errs.New(errs.ErrCodeUnsupported, "unsupported theme file extension %q", ext)
}
