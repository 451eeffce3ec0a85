package theme

import (
	"encoding/json"
	"os"

	errs "github.com/matzehuels/tilestack/pkg/errors"
	"github.com/matzehuels/tilestack/pkg/tileset"
)

// LoadFixture reads a pre-generated tile set from a JSON file.
func LoadFixture(path string) (tileset.TileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "fixture %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "read fixture %s", path)
	}

	var set tileset.TileSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "decode fixture %s", path)
	}
	return set, nil
}
