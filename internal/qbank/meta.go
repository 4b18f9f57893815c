package qbank

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Unknown marks a path attribute that could not be derived.
const Unknown = "unknown"

// DefaultQuestionType is used when no keyword group matches.
const DefaultQuestionType = "综合"

var yearRe = regexp.MustCompile(`20\d\d`)

// Districts are matched against path components in this order.
var Districts = []string{
	"徐汇", "浦东", "嘉定", "黄浦", "静安", "虹口", "杨浦", "长宁", "普陀",
	"宝山", "闵行", "松江", "金山", "青浦", "奉贤", "崇明", "上海",
}

// ExamTypes are matched against path components in this order.
var ExamTypes = []string{"一模", "二模", "中考", "期末", "期中"}

type keywordGroup struct {
	name     string
	keywords []string
}

var questionTypes = []keywordGroup{
	{"语法", []string{"语法", "非谓语", "从句", "时态", "语态"}},
	{"阅读", []string{"阅读", "a篇", "b篇", "c篇", "d篇", "完形"}},
	{"作文", []string{"作文", "写作", "范文"}},
	{"词汇", []string{"词汇", "单词", "短语"}},
	{"听力", []string{"听力", "听说"}},
	{"综合", []string{"综合", "模拟", "真题"}},
}

// PathInfo is the metadata encoded in a resource's location.
type PathInfo struct {
	Year         string
	District     string
	ExamType     string
	QuestionType string
}

// ParsePath derives metadata from a slash- or OS-separated relative path.
func ParsePath(rel string) PathInfo {
	parts := strings.FieldsFunc(filepath.ToSlash(rel), func(r rune) bool { return r == '/' })
	info := PathInfo{
		Year:         Unknown,
		District:     firstIn(parts, Districts),
		ExamType:     firstIn(parts, ExamTypes),
		QuestionType: DefaultQuestionType,
	}
	for _, p := range parts {
		if y := yearRe.FindString(p); y != "" {
			info.Year = y
			break
		}
	}

	lower := strings.ToLower(rel)
	for _, g := range questionTypes {
		if containsAny(lower, g.keywords) {
			info.QuestionType = g.name
			break
		}
	}
	return info
}

func firstIn(parts, names []string) string {
	for _, p := range parts {
		for _, n := range names {
			if strings.Contains(p, n) {
				return n
			}
		}
	}
	return Unknown
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
