package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tilestack/pkg/buildinfo"
	errs "github.com/matzehuels/tilestack/pkg/errors"
	"github.com/matzehuels/tilestack/pkg/pipeline"
)

// Response headers set on generated boards.
const (
	HeaderTilesetID   = "X-Tileset-ID"
	HeaderTilesetSeed = "X-Tileset-Seed"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	ids, err := s.runner.Themes(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.runner.Theme(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	opts, err := generateOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Generate(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set(HeaderTilesetID, res.ID.String())
	if !res.Fixture {
		w.Header().Set(HeaderTilesetSeed, strconv.FormatUint(res.Seed, 10))
	}
	writeJSON(w, http.StatusOK, res.TileSet)
}

// generateOptions reads board options from the path and query string.
// Missing sizes are left at zero for the runner's defaults.
func generateOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Theme: chi.URLParam(r, "id")}

	var err error
	if opts.RowSize, err = intParam(q.Get("rowSize"), "rowSize"); err != nil {
		return opts, err
	}
	if opts.ColumnSize, err = intParam(q.Get("columnSize"), "columnSize"); err != nil {
		return opts, err
	}
	if v := q.Get("seed"); v != "" {
		if opts.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "seed must be an unsigned integer")
		}
	}
	if v := q.Get("strict"); v != "" {
		if opts.Strict, err = strconv.ParseBool(v); err != nil {
			return opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "strict must be a boolean")
		}
	}
	return opts, nil
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "%s must be an integer", name)
	}
	// Zero would silently select the default size.
	if n <= 0 {
		return 0, errs.New(errs.ErrCodeInvalidGridSize, "%s must be positive", name)
	}
	return n, nil
}
