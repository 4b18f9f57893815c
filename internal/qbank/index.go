// Package qbank indexes a directory of exam papers and worksheets and
// searches it by path metadata and preview text.
package qbank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/docslot/internal/fsutil"
	"github.com/dgallion1/docslot/internal/parser"
)

// ErrIndexNotFound is returned by Load when the index file does not exist.
var ErrIndexNotFound = errors.New("index not found")

// PreviewRunes bounds an entry's preview.
const PreviewRunes = 500

// Entry is one indexed resource.
type Entry struct {
	ID           int    `json:"id"`
	File         string `json:"file"`
	Filename     string `json:"filename"`
	Year         string `json:"year"`
	District     string `json:"district"`
	ExamType     string `json:"exam_type"`
	QuestionType string `json:"question_type"`
	Preview      string `json:"preview"`
	SizeKB       int64  `json:"size_kb"`
	Modified     string `json:"modified"`
}

type Metadata struct {
	TotalFiles   int     `json:"total_files"`
	TotalSizeMB  float64 `json:"total_size_mb"`
	CreatedAt    string  `json:"created_at"`
	ResourcePath string  `json:"resource_path"`
}

// Index is the on-disk question bank catalogue.
type Index struct {
	Metadata Metadata `json:"metadata"`
	Files    []Entry  `json:"files"`
}

// Options tune Build.
type Options struct {
	Parser  parser.Options
	Workers int
	Log     *slog.Logger
	// Now stamps created_at. Nil uses time.Now.
	Now func() time.Time
}

type built struct {
	entry Entry
	size  int64
	err   error
}

// Build walks root for supported resources and indexes them. Files that
// cannot be read are logged and skipped.
func Build(ctx context.Context, root string, opts Options) (*Index, error) {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	var paths []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != abs && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), "~$") || !parser.IsSupportedExtension(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	log.Info("indexing resources", "root", abs, "files", len(paths))

	results := make([]built, len(paths))
	sem := make(chan struct{}, workers)
	done := make(chan struct{}, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sem <- struct{}{}
		go func(i int, path string) {
			defer func() { <-sem; done <- struct{}{} }()
			results[i] = indexFile(abs, path, opts.Parser)
		}(i, path)
	}
	for range paths {
		<-done
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ix := &Index{Files: make([]Entry, 0, len(paths))}
	var total int64
	for i, r := range results {
		if r.err != nil {
			log.Warn("skipping resource", "file", paths[i], "error", r.err)
			continue
		}
		r.entry.ID = len(ix.Files) + 1
		ix.Files = append(ix.Files, r.entry)
		total += r.size
	}
	ix.Metadata = Metadata{
		TotalFiles:   len(ix.Files),
		TotalSizeMB:  float64(total) / (1024 * 1024),
		CreatedAt:    now().Format(time.DateTime),
		ResourcePath: abs,
	}
	log.Info("index built", "files", len(ix.Files), "skipped", len(paths)-len(ix.Files))
	return ix, nil
}

func indexFile(root, path string, opts parser.Options) built {
	info, err := os.Stat(path)
	if err != nil {
		return built{err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return built{err: err}
	}
	p, err := parser.ForFile(path, opts)
	if err != nil {
		return built{err: err}
	}
	ex, err := p.Parse(bytes.NewReader(data), filepath.Base(path))
	if err != nil {
		return built{err: err}
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	meta := ParsePath(rel)
	return built{
		entry: Entry{
			File:         path,
			Filename:     filepath.Base(path),
			Year:         meta.Year,
			District:     meta.District,
			ExamType:     meta.ExamType,
			QuestionType: meta.QuestionType,
			Preview:      Preview(ex, PreviewRunes),
			SizeKB:       info.Size() / 1024,
			Modified:     info.ModTime().Format(time.DateOnly),
		},
		size: info.Size(),
	}
}

// Preview collects paragraph text, then cells from the first three tables'
// first three rows, until limit runes are gathered.
func Preview(ex *parser.Extraction, limit int) string {
	var parts []string
	seen := make(map[string]bool)
	count := 0
	for _, p := range ex.Paragraphs() {
		parts = append(parts, p)
		seen[p] = true
		count += utf8.RuneCountInString(p)
		if count >= limit {
			break
		}
	}
	if count < limit {
		for _, c := range ex.Cells(3, 3) {
			if seen[c] {
				continue
			}
			parts = append(parts, c)
			seen[c] = true
			count += utf8.RuneCountInString(c)
			if count >= limit {
				break
			}
		}
	}
	return truncateRunes(strings.Join(parts, " "), limit)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// Save writes the index as indented JSON.
func (ix *Index) Save(path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ix); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// Load reads an index written by Save.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrIndexNotFound)
		}
		return nil, fmt.Errorf("read index: %w", err)
	}
	var ix Index
	if err := json.Unmarshal(data, &ix); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	if ix.Files == nil {
		ix.Files = []Entry{}
	}
	return &ix, nil
}
