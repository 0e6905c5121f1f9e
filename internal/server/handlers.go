package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/variant"
	embedded "github.com/jonathan/cv-builder/schemas"
)

// accessKeyHeader carries the shared access key on session creation.
const accessKeyHeader = "X-Access-Key"

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	Variant string `json:"variant"`
}

// CreateSessionResponse is returned by POST /sessions.
type CreateSessionResponse struct {
	SessionID string         `json:"session_id"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Document  types.Document `json:"document"`
}

// ApplyOpsRequest is the body of POST /sessions/{id}/ops.
type ApplyOpsRequest struct {
	Ops []document.Op `json:"ops"`
}

// VariantSummary describes a variant in GET /variants.
type VariantSummary struct {
	Name       string           `json:"name"`
	Label      string           `json:"label"`
	TextBlocks []SectionSummary `json:"text_blocks"`
	Sections   []SectionSummary `json:"sections"`
	Order      []string         `json:"order"`
}

// SectionSummary names one section or text block.
type SectionSummary struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) handleListVariants(w http.ResponseWriter, _ *http.Request) {
	names := s.registry.Names()
	out := make([]VariantSummary, 0, len(names))
	for _, name := range names {
		v, err := s.registry.Get(name)
		if err != nil {
			continue
		}
		out = append(out, summarize(v))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"variants": out})
}

func summarize(v *types.Variant) VariantSummary {
	sum := VariantSummary{
		Name:       v.Name,
		Label:      v.Label,
		TextBlocks: make([]SectionSummary, 0, len(v.TextBlocks)),
		Sections:   make([]SectionSummary, 0, len(v.Sections)),
		Order:      v.Order(),
	}
	for _, b := range v.TextBlocks {
		sum.TextBlocks = append(sum.TextBlocks, SectionSummary{Key: b.Key, Title: b.Title})
	}
	for _, sec := range v.Sections {
		sum.Sections = append(sum.Sections, SectionSummary{Key: sec.Key, Title: sec.Title})
	}
	return sum
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if !s.access.VerifyKey(r.Header.Get(accessKeyHeader)) {
		s.writeError(w, &ErrInvalidAccessKey{})
		return
	}

	var req CreateSessionRequest
	if err := s.decodeJSON(w, r, &req, true); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Variant == "" {
		req.Variant = variant.Default
	}

	sess, err := s.sessions.Create(req.Variant)
	if err != nil {
		s.writeError(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(sess.ID)
	if err != nil {
		_ = s.sessions.Delete(sess.ID)
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, CreateSessionResponse{
		SessionID: sess.ID,
		Token:     token,
		ExpiresAt: s.jwtService.now().Add(s.jwtService.config.Expiration()).UTC(),
		Document:  sess.Snapshot(),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	doc, err := s.sessions.Snapshot(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleReplaceSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	body, err := s.readBody(w, r, false)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !json.Valid(body) {
		s.writeError(w, &ErrValidation{Field: "body", Message: "malformed JSON"})
		return
	}
	if err := schemas.ValidateJSONString(embedded.Document, string(body)); err != nil {
		s.writeError(w, err)
		return
	}

	var doc types.Document
	if err := decodeStrict(body, &doc); err != nil {
		s.writeError(w, err)
		return
	}

	out, err := sess.Replace(doc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApplyOps(w http.ResponseWriter, r *http.Request) {
	var req ApplyOpsRequest
	if err := s.decodeJSON(w, r, &req, false); err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := s.sessions.Apply(r.PathValue("id"), req.Ops)
	if err != nil {
		var opErr *document.OpError
		if errors.As(err, &opErr) {
			s.jsonResponse(w, HTTPStatus(err), map[string]any{
				"error":    err.Error(),
				"op_index": opErr.Index,
				"document": doc,
			})
			return
		}
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.View())
}

func (s *Server) handlePreviewHTML(w http.ResponseWriter, r *http.Request) {
	s.writeSurface(w, r, export.FormatHTML)
}

func (s *Server) handlePreviewLaTeX(w http.ResponseWriter, r *http.Request) {
	s.writeSurface(w, r, export.FormatLaTeX)
}

func (s *Server) writeSurface(w http.ResponseWriter, r *http.Request, format string) {
	surface, _, err := s.render(r.PathValue("id"), format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType(format))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, surface.Content); err != nil {
		s.logger.Error("failed to write preview", "error", err)
	}
}

// handleExport returns the document as an attachment. The format query
// parameter selects pdf (default), html or latex.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatPDF
	}

	var exporter export.Exporter = export.FileExporter{}
	source := format
	switch format {
	case export.FormatHTML, export.FormatLaTeX:
	case export.FormatPDF:
		if s.exporter == nil {
			s.errorResponse(w, http.StatusNotImplemented, "PDF export is not configured")
			return
		}
		exporter = s.exporter
		source = export.FormatHTML
	default:
		s.writeError(w, &ErrValidation{Field: "format", Message: "must be one of pdf, html, latex"})
		return
	}

	surface, title, err := s.render(r.PathValue("id"), source)
	if err != nil {
		s.writeError(w, err)
		return
	}

	artifact, err := exporter.Export(r.Context(), surface, title)
	if err != nil {
		s.logger.Error("export failed", "session", r.PathValue("id"), "format", format, "error", err)
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(artifact.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		s.logger.Error("failed to write artifact", "error", err)
	}
}

// render projects the session's document and draws it in the given format.
func (s *Server) render(id, format string) (export.Surface, string, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return export.Surface{}, "", err
	}
	view := sess.View()

	var content string
	switch format {
	case export.FormatHTML:
		content, err = rendering.RenderHTML(view)
	case export.FormatLaTeX:
		if s.latexTemplate != "" {
			content, err = rendering.RenderLaTeXFile(view, s.latexTemplate)
		} else {
			content, err = rendering.RenderLaTeX(view)
		}
	default:
		err = &ErrValidation{Field: "format", Message: "unsupported format " + format}
	}
	if err != nil {
		return export.Surface{}, "", err
	}
	return export.Surface{Format: format, Content: content}, view.Title, nil
}

// decodeJSON reads a bounded JSON body into v, rejecting unknown fields.
// An empty body is accepted only when allowEmpty is set.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	body, err := s.readBody(w, r, allowEmpty)
	if err != nil || body == nil {
		return err
	}
	return decodeStrict(body, v)
}

// readBody reads a bounded request body. It returns nil for an empty body
// when allowEmpty is set.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request, allowEmpty bool) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if allowEmpty {
			return nil, nil
		}
		return nil, &ErrValidation{Field: "body", Message: "request body is empty"}
	}
	return body, nil
}

func decodeStrict(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// writeError maps err to a status and writes it as JSON.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	}
	s.errorResponse(w, status, err.Error())
}
