// Package doctree holds the exported structure of an annotated template:
// sections, blocks, and the slot metadata attached to them.
package doctree

// Kind is the block variant. It is exported as the "type" field.
type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindList      Kind = "list"
	KindEmpty     Kind = "empty_paragraph"
	KindTable     Kind = "table"
)

// Table roles inferred from a table's header row.
const (
	TableStudentInfo = "student_info"
	TableLessonMeta  = "lesson_meta"
	TableQA          = "qa_table"
	TableGeneral     = "general_table"
)

// Section roles inferred from a heading's text.
const (
	SectionTeach      = "teach"
	SectionPractice   = "practice"
	SectionReview     = "review"
	SectionReflection = "reflection"
	SectionAnswerKey  = "answer_key"
	SectionGeneral    = "general_section"
)

// Slot roles that are not derived from a table or section role.
const (
	SlotReflectionInput = "reflection_input"
	SlotGeneral         = "general_slot"
)

// PreambleLocation is the location of blocks that precede the first heading.
const PreambleLocation = "preamble"

// Structure is the root of an extraction: the preamble plus top-level sections.
type Structure struct {
	Preamble    []*Block     `json:"preamble_blocks,omitempty"`
	Sections    []*Section   `json:"sections"`
	Fingerprint *Fingerprint `json:"fingerprint,omitempty"`
}

// Section is a heading-delimited subtree.
type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Level       int        `json:"level"`
	Role        string     `json:"section_role"`
	Blocks      []*Block   `json:"blocks"`
	SubSections []*Section `json:"sub_sections"`
}

// Style is the paragraph style as seen by heading detection.
type Style struct {
	Name      string  `json:"name"`
	Alignment *string `json:"alignment"`
}

// Block is a paragraph-like or table-like unit of content.
type Block struct {
	ID   string `json:"id"`
	Kind Kind   `json:"type"`

	// Paragraph kinds.
	Text       string `json:"text,omitempty"`
	RawText    string `json:"raw_text,omitempty"`
	Style      *Style `json:"style,omitempty"`
	QuestionID *int   `json:"question_id,omitempty"`
	IsQuestion bool   `json:"is_question,omitempty"`
	Level      *int   `json:"level,omitempty"`

	// Table kind.
	TableRole   string   `json:"table_role,omitempty"`
	Rows        int      `json:"rows,omitempty"`
	Cols        int      `json:"cols,omitempty"`
	TextContent []string `json:"text_content,omitzero"`

	// Slot annotation.
	IsSlot   bool     `json:"is_slot,omitempty"`
	SlotRole string   `json:"slot_role,omitempty"`
	Location string   `json:"location,omitempty"`
	Context  []string `json:"context,omitzero"`
}

// Fingerprint summarises the identifier stream a structure was extracted
// from. A filler computing the same digest over a document is addressing the
// same blocks.
type Fingerprint struct {
	Scheme     string `json:"scheme"`
	Digest     string `json:"digest"`
	Sections   int    `json:"sections"`
	Paragraphs int    `json:"paragraphs"`
	Tables     int    `json:"tables"`
}

// IsParagraph reports whether the block is one of the paragraph kinds.
func (b *Block) IsParagraph() bool {
	return b.Kind != KindTable
}
