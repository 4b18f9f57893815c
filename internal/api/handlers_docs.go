package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/docslot/internal/clean"
	"github.com/dgallion1/docslot/internal/fill"
	"github.com/dgallion1/docslot/internal/parser"
	"github.com/dgallion1/docslot/internal/structure"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// readUpload parses the multipart form and loads its "file" part as a
// document. It writes the error response itself and returns nil on failure.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) *parser.Document {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".docx") {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil
	}

	doc, err := parser.FromBytes(data, filename)
	if err != nil {
		jsonError(w, "invalid document: "+err.Error(), http.StatusBadRequest)
		return nil
	}
	return doc
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	defer cleanupForm(r)
	doc := s.readUpload(w, r)
	if doc == nil {
		return
	}

	ex := structure.NewExtractor(s.log,
		structure.WithRules(s.svc.Rules),
		structure.WithWindow(s.cfg.ContextWindow),
	)
	st, err := ex.Extract(doc)
	if err != nil {
		jsonError(w, "extract failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleFill(w http.ResponseWriter, r *http.Request) {
	defer cleanupForm(r)
	doc := s.readUpload(w, r)
	if doc == nil {
		return
	}

	raw, err := formContent(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	contents, err := fill.ParseContentMap(raw)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	f := fill.New(s.log)
	column := s.cfg.FillColumn
	if v := r.FormValue("column"); v != "" {
		column = v
	}
	if f.Policy, err = fill.ParseColumnPolicy(column); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.VerifyFingerprint = s.cfg.VerifyFingerprint
	if v := r.FormValue("verify"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			jsonError(w, "verify must be a boolean", http.StatusBadRequest)
			return
		}
		f.VerifyFingerprint = b
	}

	report, err := f.Fill(doc, contents)
	if errors.Is(err, fill.ErrIdentifierDrift) {
		jsonError(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		jsonError(w, "fill failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeDocument(w, doc, "filled_", map[string]string{
		"X-Docslot-Filled":    strconv.Itoa(report.Filled()),
		"X-Docslot-Unmatched": strconv.Itoa(len(report.Unmatched)),
		"X-Docslot-Skipped":   strconv.Itoa(len(report.Skipped)),
	})
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	defer cleanupForm(r)
	doc := s.readUpload(w, r)
	if doc == nil {
		return
	}

	report := clean.New(s.log).Clean(doc)
	s.writeDocument(w, doc, "clean_", map[string]string{
		"X-Docslot-Cells":      strconv.Itoa(report.Cells),
		"X-Docslot-Paragraphs": strconv.Itoa(report.Paragraphs),
	})
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	defer cleanupForm(r)
	doc := s.readUpload(w, r)
	if doc == nil {
		return
	}
	writeJSON(w, http.StatusOK, parser.Inspect(doc))
}

func cleanupForm(r *http.Request) {
	if r.MultipartForm != nil {
		r.MultipartForm.RemoveAll()
	}
}

// formContent returns the content map from the "content" field, or from a
// file part of the same name.
func formContent(r *http.Request) ([]byte, error) {
	if v := r.FormValue("content"); v != "" {
		return []byte(v), nil
	}
	f, _, err := r.FormFile("content")
	if err != nil {
		return nil, fmt.Errorf("content is required")
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Server) writeDocument(w http.ResponseWriter, doc *parser.Document, prefix string, headers map[string]string) {
	data, err := doc.Bytes()
	if err != nil {
		jsonError(w, "failed to write document", http.StatusInternalServerError)
		return
	}
	for k, v := range headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", prefix+doc.Name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" || name == "_" {
		name = "unnamed.docx"
	}
	return name
}
