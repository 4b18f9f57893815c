package api

import (
	"net/http"
	"strconv"

	"github.com/dgallion1/docslot/internal/parser"
	"github.com/dgallion1/docslot/internal/qbank"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.svc.Index == nil {
		jsonError(w, "question bank index unavailable", http.StatusServiceUnavailable)
		return
	}

	q := r.URL.Query()
	query := qbank.Query{
		Keyword:      q.Get("keyword"),
		Year:         q.Get("year"),
		District:     q.Get("district"),
		ExamType:     q.Get("exam_type"),
		QuestionType: q.Get("question_type"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		query.Limit = n
	}

	if q.Get("questions") != "true" {
		writeJSON(w, http.StatusOK, map[string]any{"results": s.svc.Index.Search(query)})
		return
	}

	if query.Keyword == "" {
		jsonError(w, "keyword is required with questions=true", http.StatusBadRequest)
		return
	}
	searcher := qbank.NewSearcher(s.svc.Index, parser.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext}, s.log)
	results, questions, err := searcher.SmartSearch(r.Context(), query.Keyword, query, query.Limit, 0)
	if err != nil {
		jsonError(w, "search failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results, "questions": questions})
}
