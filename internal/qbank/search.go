package qbank

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// DefaultLimit caps search results when Query.Limit is zero.
const DefaultLimit = 10

// Query filters index entries. Empty fields match everything.
type Query struct {
	Keyword      string
	Year         string
	District     string
	ExamType     string
	QuestionType string
	Limit        int
}

func (q Query) match(e Entry) bool {
	if q.Year != "" && e.Year != q.Year {
		return false
	}
	if q.District != "" && e.District != q.District {
		return false
	}
	if q.ExamType != "" && e.ExamType != q.ExamType {
		return false
	}
	if q.QuestionType != "" && e.QuestionType != q.QuestionType {
		return false
	}
	if q.Keyword != "" {
		kw := strings.ToLower(q.Keyword)
		if !strings.Contains(strings.ToLower(e.Filename), kw) && !strings.Contains(strings.ToLower(e.Preview), kw) {
			return false
		}
	}
	return true
}

// Search returns matching entries, newest year first and smaller files
// first within a year.
func (ix *Index) Search(q Query) []Entry {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := []Entry{}
	for _, e := range ix.Files {
		if q.match(e) {
			results = append(results, e)
		}
	}
	slices.SortStableFunc(results, func(a, b Entry) int {
		if c := cmp.Compare(yearNumber(b.Year), yearNumber(a.Year)); c != 0 {
			return c
		}
		return cmp.Compare(a.SizeKB, b.SizeKB)
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func yearNumber(y string) int {
	n, err := strconv.Atoi(y)
	if err != nil {
		return 0
	}
	return n
}
