package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/mdtoc/internal/config"
	"github.com/dgallion1/mdtoc/internal/editor"
	"github.com/dgallion1/mdtoc/internal/toc"
)

// tocRequest is the body shared by the document endpoints.
type tocRequest struct {
	Document string           `json:"document"`
	Offset   *int             `json:"offset,omitempty"`
	Line     string           `json:"line,omitempty"`
	Fragment string           `json:"fragment,omitempty"`
	Cursor   *int             `json:"cursor,omitempty"`
	Config   *renderOverrides `json:"config,omitempty"`
}

// renderOverrides replaces server defaults for a single request.
type renderOverrides struct {
	ListMarker  *string `json:"list_marker,omitempty"`
	IndentUnit  *int    `json:"indent_unit,omitempty"`
	QuoteLines  *bool   `json:"quote_lines,omitempty"`
	StartMarker *string `json:"start_marker,omitempty"`
	TitleLine   *string `json:"title_line,omitempty"`
	EndMarker   *string `json:"end_marker,omitempty"`
	MaxDepth    *int    `json:"max_depth,omitempty"`
}

func (o *renderOverrides) apply(cfg config.Config) config.Config {
	if o == nil {
		return cfg
	}
	if o.ListMarker != nil {
		cfg.ListMarker = *o.ListMarker
	}
	if o.IndentUnit != nil {
		cfg.IndentUnit = *o.IndentUnit
	}
	if o.QuoteLines != nil {
		cfg.QuoteLines = *o.QuoteLines
	}
	if o.StartMarker != nil {
		cfg.StartMarker = *o.StartMarker
	}
	if o.TitleLine != nil {
		cfg.TitleLine = *o.TitleLine
	}
	if o.EndMarker != nil {
		cfg.EndMarker = *o.EndMarker
	}
	if o.MaxDepth != nil {
		cfg.MaxDepth = *o.MaxDepth
	}
	return cfg
}

// decode reads the request body and builds an editor for its configuration.
// It writes the error response itself and returns ok=false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (tocRequest, *editor.Editor, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req tocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return req, nil, false
	}

	cfg := req.Config.apply(s.cfg)
	if err := cfg.Validate(); err != nil {
		jsonError(w, "invalid config: "+err.Error(), http.StatusBadRequest)
		return req, nil, false
	}
	return req, editor.New(cfg.Render(), s.log), true
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ed, ok := s.decode(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"toc": ed.Render(req.Document)})
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	req, ed, ok := s.decode(w, r)
	if !ok {
		return
	}
	out, err := ed.Insert(req.Document, offsetOr(req.Offset, 0))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": out})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	req, ed, ok := s.decode(w, r)
	if !ok {
		return
	}

	// Without an offset only an existing block is refreshed.
	if req.Offset == nil {
		out, replaced := ed.RefreshIfPresent(req.Document)
		writeJSON(w, http.StatusOK, map[string]any{"document": out, "replaced": replaced})
		return
	}

	out, replaced, err := ed.Refresh(req.Document, *req.Offset)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": out, "replaced": replaced})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	req, ed, ok := s.decode(w, r)
	if !ok {
		return
	}
	out, deleted := ed.Delete(req.Document)
	if !deleted {
		jsonError(w, "no toc found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": out, "deleted": true})
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	req, ed, ok := s.decode(w, r)
	if !ok {
		return
	}

	var (
		off int
		err error
	)
	switch {
	case req.Line != "":
		off, err = ed.Follow(req.Document, req.Line)
	case req.Fragment != "":
		off, err = toc.ResolveFragment(req.Fragment, req.Document)
	case req.Cursor != nil:
		off, err = ed.FollowAt(req.Document, *req.Cursor)
	default:
		jsonError(w, "one of line, fragment or cursor is required", http.StatusBadRequest)
		return
	}

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{
			"offset": off,
			"line":   editor.LineOf(req.Document, off),
		})
	case errors.Is(err, toc.ErrInvalidIndentation):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, editor.ErrOffset):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		jsonError(w, "no target: "+err.Error(), http.StatusNotFound)
	}
}

func offsetOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
