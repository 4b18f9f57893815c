// Package classify holds the keyword heuristics that label headings, tables,
// sections and slots. Every function here is pure and never fails: input no
// rule matches falls back to the default role.
package classify

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dgallion1/docslot/internal/doctree"
	"gopkg.in/yaml.v3"
)

// Rule maps keywords to a role. A rule matches when every All keyword and at
// least one Any keyword occurs in the text. Empty lists are satisfied.
type Rule struct {
	Role string   `yaml:"role"`
	All  []string `yaml:"all,omitempty"`
	Any  []string `yaml:"any,omitempty"`
}

// Match reports whether text satisfies the rule.
func (r Rule) Match(text string) bool {
	if len(r.All) == 0 && len(r.Any) == 0 {
		return false
	}
	for _, kw := range r.All {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return true
	}
	for _, kw := range r.Any {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Rules is the ordered vocabulary used by the classifier. The first matching
// rule in a table wins.
type Rules struct {
	TableRoles         []Rule   `yaml:"table_roles"`
	SectionRoles       []Rule   `yaml:"section_roles"`
	ReflectionKeywords []string `yaml:"reflection_keywords"`
}

// DefaultRules returns the built-in vocabulary.
func DefaultRules() *Rules {
	return &Rules{
		TableRoles: []Rule{
			{Role: doctree.TableStudentInfo, All: []string{"姓名", "年级"}},
			{Role: doctree.TableLessonMeta, Any: []string{"教学内容", "教学目标"}},
			{Role: doctree.TableQA, Any: []string{"题目", "Answer"}},
		},
		SectionRoles: []Rule{
			{Role: doctree.SectionTeach, Any: []string{"知识", "讲解", "学情"}},
			{Role: doctree.SectionPractice, Any: []string{"训练", "练习"}},
			{Role: doctree.SectionReview, Any: []string{"回顾"}},
			{Role: doctree.SectionReflection, Any: []string{"反思"}},
			{Role: doctree.SectionAnswerKey, Any: []string{"答案"}},
		},
		ReflectionKeywords: []string{"反思"},
	}
}

// LoadRules reads a YAML rule file. Tables the file omits keep their
// built-in values.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("rules file %s: %w", path, err)
		}
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes a YAML rule document on top of DefaultRules.
func ParseRules(data []byte) (*Rules, error) {
	r := DefaultRules()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks that every rule names a role and at least one keyword.
func (r *Rules) Validate() error {
	check := func(table string, rules []Rule) error {
		for i, rule := range rules {
			if strings.TrimSpace(rule.Role) == "" {
				return fmt.Errorf("%s[%d]: role is required", table, i)
			}
			if len(rule.All) == 0 && len(rule.Any) == 0 {
				return fmt.Errorf("%s[%d] (%s): at least one keyword is required", table, i, rule.Role)
			}
		}
		return nil
	}
	if err := check("table_roles", r.TableRoles); err != nil {
		return err
	}
	return check("section_roles", r.SectionRoles)
}

func firstMatch(rules []Rule, text, fallback string) string {
	for _, rule := range rules {
		if rule.Match(text) {
			return rule.Role
		}
	}
	return fallback
}

// TableRole labels a table from its trimmed first-row cell texts.
func (r *Rules) TableRole(header []string) string {
	return firstMatch(r.TableRoles, strings.Join(header, " "), doctree.TableGeneral)
}

// SectionRole labels a section from its heading text.
func (r *Rules) SectionRole(title string) string {
	return firstMatch(r.SectionRoles, title, doctree.SectionGeneral)
}

// SlotRole resolves the role of a slot. tableRole is empty for paragraph
// slots and sectionRole is empty for preamble slots.
func (r *Rules) SlotRole(tableRole, sectionRole, location string, context []string) string {
	if tableRole != "" {
		return tableRole
	}
	if sectionRole != "" && sectionRole != doctree.SectionGeneral {
		return sectionRole + "_content"
	}
	if r.mentionsReflection(location) {
		return doctree.SlotReflectionInput
	}
	for _, c := range context {
		if r.mentionsReflection(c) {
			return doctree.SlotReflectionInput
		}
	}
	return doctree.SlotGeneral
}

func (r *Rules) mentionsReflection(s string) bool {
	for _, kw := range r.ReflectionKeywords {
		if kw != "" && strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
