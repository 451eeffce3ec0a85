package server

import (
	"encoding/json"
	"net/http"

	errs "github.com/matzehuels/tilestack/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorBody{Detail: detail, Code: code})
}

// writeError maps err to a status and JSON body. Server-side failures are
// logged with their cause; the client only sees the message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	code := string(errs.GetCode(err))

	detail := errs.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", RequestIDFrom(r.Context()),
			"err", err)
		if code == "" {
			code = string(errs.ErrCodeInternal)
			detail = "Internal Server Error"
		}
	}
	writeDetail(w, status, code, detail)
}
