package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/preview"
)

// Generic message for export failures; details only go to the log.
const exportFailedMessage = "could not generate file"

type optionsBody struct {
	Title           string `json:"title"`
	Quality         int    `json:"quality"`
	Compression     bool   `json:"compression"`
	IncludeMetadata bool   `json:"includeMetadata"`
	Watermark       bool   `json:"watermark"`
}

// defaultOptionsBody seeds decoding so omitted fields keep their defaults.
func defaultOptionsBody() *optionsBody {
	d := draftkit.DefaultExportOptions()
	return &optionsBody{
		Quality:         d.Quality,
		Compression:     d.Compression,
		IncludeMetadata: d.IncludeMetadata,
	}
}

func (o *optionsBody) exportOptions() *draftkit.ExportOptions {
	if o == nil {
		return draftkit.DefaultExportOptions()
	}
	return &draftkit.ExportOptions{
		Title:           o.Title,
		Quality:         o.Quality,
		Compression:     o.Compression,
		IncludeMetadata: o.IncludeMetadata,
		Watermark:       o.Watermark,
	}
}

type paginateRequest struct {
	Content string `json:"content"`
	Budget  int    `json:"budget"`
	Format  string `json:"format"`
}

type paginateResponse struct {
	Pages  []string `json:"pages"`
	Count  int      `json:"count"`
	Budget int      `json:"budget"`
}

type preflightRequest struct {
	Content string `json:"content"`
}

type preflightResponse struct {
	draftkit.PreflightResult
	Blocking bool `json:"blocking"`
}

type exportRequest struct {
	Content     string       `json:"content"`
	Options     *optionsBody `json:"options"`
	Acknowledge bool         `json:"acknowledge"`
}

type shareRequest struct {
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Options *optionsBody `json:"options"`
}

type shareResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error     string                    `json:"error"`
	Preflight *draftkit.PreflightResult `json:"preflight,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePaginate(w http.ResponseWriter, r *http.Request) {
	var req paginateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	budget, err := draftkit.ResolveBudget(req.Format, req.Budget)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pages := draftkit.Paginate(req.Content, budget)
	writeJSON(w, http.StatusOK, paginateResponse{Pages: pages, Count: len(pages), Budget: budget})
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	var req preflightRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result := draftkit.Analyze(req.Content)
	writeJSON(w, http.StatusOK, preflightResponse{PreflightResult: result, Blocking: result.Blocking()})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req := exportRequest{Options: defaultOptionsBody()}
	if !decodeJSON(w, r, &req) {
		return
	}
	opts := req.Options.exportOptions()
	if err := opts.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	log := s.opts.Logger.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()

	exp := s.pool.Acquire()
	if exp == nil {
		log.Error().Msg("no exporter available")
		writeError(w, http.StatusServiceUnavailable, "export is unavailable")
		return
	}
	defer s.pool.Release(exp)

	res, err := exp.Export(r.Context(), draftkit.ExportInput{
		Content:           req.Content,
		Options:           opts,
		AcknowledgeIssues: req.Acknowledge,
	})
	switch {
	case errors.Is(err, draftkit.ErrPreflightBlocked):
		body := errorResponse{Error: err.Error()}
		if res != nil {
			body.Preflight = &res.Preflight
		}
		log.Info().Msg("export blocked by preflight")
		writeJSON(w, http.StatusConflict, body)
		return
	case err != nil && r.Context().Err() != nil:
		log.Warn().Err(err).Msg("export cancelled")
		writeError(w, http.StatusServiceUnavailable, "export cancelled")
		return
	case err != nil:
		log.Error().Err(err).Msg("export failed")
		writeError(w, http.StatusInternalServerError, exportFailedMessage)
		return
	}

	log.Info().
		Str("mode", string(res.Mode)).
		Str("severity", string(res.Preflight.Severity)).
		Int("bytes", len(res.PDF)).
		Msg("export done")

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
	h.Set("Content-Length", strconv.Itoa(len(res.PDF)))
	h.Set("X-Export-Mode", string(res.Mode))
	h.Set("X-Preflight-Severity", string(res.Preflight.Severity))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	req := shareRequest{Options: defaultOptionsBody()}
	if !decodeJSON(w, r, &req) {
		return
	}
	opts := req.Options.exportOptions()
	if opts.Title == "" {
		opts.Title = req.Title
	}

	payload := draftkit.NewSharePayload(req.Content, opts, s.opts.Now())
	link, err := draftkit.EncodeShareURL(s.shareBaseURL(r), payload)
	switch {
	case errors.Is(err, draftkit.ErrShareLinkTooLong):
		writeError(w, http.StatusRequestEntityTooLarge, "document is too large to share as a link; export a PDF instead")
		return
	case err != nil:
		s.opts.Logger.Error().Err(err).Msg("share link failed")
		writeError(w, http.StatusInternalServerError, "could not create share link")
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{URL: link})
}

func (s *Server) handleShareView(w http.ResponseWriter, r *http.Request) {
	payload, ok := draftkit.DecodeShareURL(r.URL.RequestURI())
	if !ok {
		http.Error(w, "share link is invalid or incomplete", http.StatusNotFound)
		return
	}

	opts := draftkit.ShareExportOptions(payload)
	view := previewView(payload, opts)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.preview.Render(r.Context(), w, view); err != nil {
		s.opts.Logger.Error().Err(err).Msg("share view failed")
		http.Error(w, "could not render shared document", http.StatusInternalServerError)
	}
}

// previewView splits a shared document into pages at the default budget.
func previewView(p draftkit.SharePayload, opts *draftkit.ExportOptions) preview.View {
	title := p.Title
	if title == "" {
		title = opts.ResolvedTitle()
	}
	return preview.View{
		Title:     title,
		CreatedAt: p.CreatedAt,
		Watermark: opts.Watermark,
		Pages:     draftkit.Paginate(p.Content, draftkit.DefaultBudget),
	}
}

func (s *Server) shareBaseURL(r *http.Request) string {
	if s.opts.ShareBaseURL != "" {
		return s.opts.ShareBaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/share"
}

// decodeJSON reads the request body into v. On failure it writes the error
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}
