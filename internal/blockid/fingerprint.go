package blockid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/dgallion1/docslot/internal/doctree"
	"github.com/dgallion1/docslot/internal/parser"
)

// Scheme versions the fingerprint input format.
const Scheme = "v1"

// Fingerprint hashes the identifier stream of a walk. Text is not part of
// the input, so a filled document hashes like its template.
type Fingerprint struct {
	h hash.Hash
	c Counter
}

func NewFingerprint() *Fingerprint {
	return &Fingerprint{h: sha256.New()}
}

// Add feeds one step.
func (f *Fingerprint) Add(s Step) {
	rows := 0
	if s.Item.Table != nil {
		rows = parser.RowCount(s.Item.Table)
	}
	fmt.Fprintf(f.h, "%s\x1f%s\x1f%d\x1f%d\n", s.ID, s.Kind, s.HeadingLevel, rows)
	f.c.Next(s.Kind)
}

// Sum returns the digest of every step added so far.
func (f *Fingerprint) Sum() doctree.Fingerprint {
	sec, p, t := f.c.Counts()
	return doctree.Fingerprint{
		Scheme:     Scheme,
		Digest:     hex.EncodeToString(f.h.Sum(nil)),
		Sections:   sec,
		Paragraphs: p,
		Tables:     t,
	}
}

// Compute walks doc and returns its fingerprint.
func Compute(doc *parser.Document, heading HeadingFunc) (doctree.Fingerprint, error) {
	steps, err := Walk(doc, heading)
	if err != nil {
		return doctree.Fingerprint{}, err
	}
	fp := NewFingerprint()
	for s := range steps {
		fp.Add(s)
	}
	return fp.Sum(), nil
}
