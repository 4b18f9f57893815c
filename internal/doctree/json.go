package doctree

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrNotFound is returned by Load when the structure file does not exist.
var ErrNotFound = errors.New("structure not found")

// Parse decodes an exported structure.
func Parse(data []byte) (*Structure, error) {
	var s Structure
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse structure: %w", err)
	}
	if s.Sections == nil {
		s.Sections = []*Section{}
	}
	return &s, nil
}

// Load reads an exported structure file.
func Load(path string) (*Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("structure %s: %w: %w", path, ErrNotFound, err)
		}
		return nil, fmt.Errorf("read structure: %w", err)
	}
	return Parse(data)
}

type paragraphJSON struct {
	ID         string   `json:"id"`
	Kind       Kind     `json:"type"`
	Text       string   `json:"text"`
	RawText    string   `json:"raw_text"`
	Style      Style    `json:"style"`
	IsSlot     bool     `json:"is_slot,omitempty"`
	SlotRole   string   `json:"slot_role,omitempty"`
	Location   string   `json:"location,omitempty"`
	Context    []string `json:"context,omitzero"`
	QuestionID *int     `json:"question_id,omitempty"`
	IsQuestion bool     `json:"is_question,omitempty"`
	Level      *int     `json:"level,omitempty"`
}

type tableJSON struct {
	ID          string   `json:"id"`
	Kind        Kind     `json:"type"`
	TableRole   string   `json:"table_role"`
	Rows        int      `json:"rows"`
	Cols        int      `json:"cols"`
	TextContent []string `json:"text_content"`
	IsSlot      bool     `json:"is_slot"`
	SlotRole    string   `json:"slot_role,omitempty"`
	Location    string   `json:"location,omitempty"`
	Context     []string `json:"context,omitzero"`
}

// MarshalJSON emits the paragraph or table shape depending on the kind, so
// that fields belonging to the other shape never appear.
func (b Block) MarshalJSON() ([]byte, error) {
	if b.Kind == KindTable {
		content := b.TextContent
		if content == nil {
			content = []string{}
		}
		return json.Marshal(tableJSON{
			ID:          b.ID,
			Kind:        b.Kind,
			TableRole:   b.TableRole,
			Rows:        b.Rows,
			Cols:        b.Cols,
			TextContent: content,
			IsSlot:      b.IsSlot,
			SlotRole:    b.SlotRole,
			Location:    b.Location,
			Context:     b.Context,
		})
	}

	var style Style
	if b.Style != nil {
		style = *b.Style
	}
	return json.Marshal(paragraphJSON{
		ID:         b.ID,
		Kind:       b.Kind,
		Text:       b.Text,
		RawText:    b.RawText,
		Style:      style,
		IsSlot:     b.IsSlot,
		SlotRole:   b.SlotRole,
		Location:   b.Location,
		Context:    b.Context,
		QuestionID: b.QuestionID,
		IsQuestion: b.IsQuestion,
		Level:      b.Level,
	})
}
