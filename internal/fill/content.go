package fill

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dgallion1/docslot/internal/fsutil"
	"github.com/dgallion1/docslot/internal/parser"
)

// FingerprintKey is the reserved content-map key carrying the digest of
// the structure the map was generated from.
const FingerprintKey = "$fingerprint"

// Value is the content for one block: a single text or one text per table
// row. Invalid holds the decode problem of an entry that cannot be written;
// such entries are kept so the filler can report them.
type Value struct {
	Text    string
	Items   []string
	IsList  bool
	Invalid string
}

// Text returns a single-text value.
func Text(s string) Value { return Value{Text: s} }

// List returns a per-row value.
func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Items: items, IsList: true}
}

// String renders the value as paragraph text. Lists are joined by newlines.
func (v Value) String() string {
	if v.IsList {
		return strings.Join(v.Items, "\n")
	}
	return v.Text
}

// UnmarshalJSON accepts a string, a scalar, or an array of scalars. Numbers
// and booleans are kept as their JSON text and null becomes "". Any other
// value decodes without error into a Value with Invalid set.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		items := make([]string, 0, len(raw))
		for i, r := range raw {
			s, err := scalarText(r)
			if err != nil {
				*v = Value{Invalid: fmt.Sprintf("item %d: %v", i, err)}
				return nil
			}
			items = append(items, s)
		}
		*v = Value{Items: items, IsList: true}
		return nil
	}
	s, err := scalarText(data)
	if err != nil {
		*v = Value{Invalid: err.Error()}
		return nil
	}
	*v = Value{Text: s}
	return nil
}

func scalarText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", errors.New("empty value")
	}
	switch raw[0] {
	case '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case 'n':
		if string(raw) == "null" {
			return "", nil
		}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return fmt.Sprint(b), nil
		}
	case '{', '[':
		return "", fmt.Errorf("unsupported value %.20s", raw)
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			return n.String(), nil
		}
	}
	return "", fmt.Errorf("invalid value %.20s", raw)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Invalid != "" {
		return []byte("null"), nil
	}
	if v.IsList {
		items := v.Items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(v.Text)
}

// ContentMap maps block identifiers to their new content.
type ContentMap map[string]Value

// Fingerprint returns the digest carried under FingerprintKey.
func (m ContentMap) Fingerprint() (string, bool) {
	v, ok := m[FingerprintKey]
	if !ok || v.IsList || v.Invalid != "" || v.Text == "" {
		return "", false
	}
	return v.Text, true
}

// SetFingerprint records the digest of the source structure.
func (m ContentMap) SetFingerprint(digest string) {
	m[FingerprintKey] = Text(digest)
}

// Len returns the number of block entries, excluding the fingerprint.
func (m ContentMap) Len() int {
	n := len(m)
	if _, ok := m[FingerprintKey]; ok {
		n--
	}
	return n
}

// ParseContentMap decodes a JSON content map. Only malformed JSON or a
// document that is not an object is an error; entries with unusable values
// are kept with Invalid set.
func ParseContentMap(data []byte) (ContentMap, error) {
	var m ContentMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse content map: %w", err)
	}
	if m == nil {
		m = ContentMap{}
	}
	return m, nil
}

// LoadContentMap reads a content map file. A missing file is reported as
// parser.ErrNotFound.
func LoadContentMap(path string) (ContentMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("content map %s: %w: %w", path, parser.ErrNotFound, err)
		}
		return nil, fmt.Errorf("read content map: %w", err)
	}
	return ParseContentMap(data)
}

// Save writes the map as indented JSON.
func (m ContentMap) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode content map: %w", err)
	}
	return fsutil.WriteFileAtomic(path, append(data, '\n'), 0o644)
}
