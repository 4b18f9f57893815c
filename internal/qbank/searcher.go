package qbank

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/docslot/internal/parser"
)

// Question is one extracted question with its provenance.
type Question struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	File    string `json:"file"`
}

// Searcher loads indexed documents on demand.
type Searcher struct {
	Index  *Index
	Parser parser.Options
	Log    *slog.Logger
}

func NewSearcher(ix *Index, opts parser.Options, log *slog.Logger) *Searcher {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Searcher{Index: ix, Parser: opts, Log: log}
}

// Paragraphs reads the paragraph stream of an indexed file.
func (s *Searcher) Paragraphs(path string) ([]string, error) {
	p, err := parser.ForFile(path, s.Parser)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	ex, err := p.Parse(f, path)
	if err != nil {
		return nil, err
	}
	return ex.Paragraphs(), nil
}

// SmartSearch finds documents about topic within filters, then loads up to
// maxDocs of them and extracts at most maxPerDoc matching questions from
// each. Documents that fail to load are logged and skipped.
func (s *Searcher) SmartSearch(ctx context.Context, topic string, filters Query, maxDocs, maxPerDoc int) ([]Entry, []Question, error) {
	if maxDocs <= 0 {
		maxDocs = 3
	}
	if maxPerDoc <= 0 {
		maxPerDoc = 5
	}
	filters.Keyword = topic
	filters.Limit = maxDocs * 2
	results := s.Index.Search(filters)
	log := s.Log.With("topic", topic)
	if len(results) == 0 {
		log.Info("no matching resources")
		return results, []Question{}, nil
	}

	questions := []Question{}
	loaded := 0
	for _, e := range results {
		if loaded >= maxDocs {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		paras, err := s.Paragraphs(e.File)
		if err != nil {
			log.Warn("failed to load resource", "file", e.Filename, "error", err)
			continue
		}
		loaded++

		qs := ExtractQuestions(paras, topic)
		source := fmt.Sprintf("(%s %s%s)", e.Year, e.District, e.ExamType)
		for _, q := range qs[:min(len(qs), maxPerDoc)] {
			questions = append(questions, Question{Content: q, Source: source, File: e.Filename})
		}
	}
	log.Info("smart search complete", "matches", len(results), "loaded", loaded, "questions", len(questions))
	return results[:min(len(results), maxDocs)], questions, nil
}
