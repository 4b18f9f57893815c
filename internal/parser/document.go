package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dgallion1/docslot/internal/fsutil"
	"github.com/fumiama/go-docx"
)

// ErrNotFound is returned when a document path does not exist.
var ErrNotFound = errors.New("document not found")

// Document is a .docx held fully in memory together with its style table.
type Document struct {
	Name string

	file   *docx.Docx
	styles *Styles
}

// Open reads and parses the .docx at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("read document: %w", err)
	}
	return FromBytes(data, filepath.Base(path))
}

// FromBytes parses a .docx from memory. The slice backs the container for
// the lifetime of the document and must not be modified.
func FromBytes(data []byte, name string) (*Document, error) {
	f, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx %s: %w", name, err)
	}
	styles, err := readStyles(data)
	if err != nil {
		return nil, fmt.Errorf("read styles %s: %w", name, err)
	}
	return &Document{Name: name, file: f, styles: styles}, nil
}

// Wrap adopts an in-memory go-docx document. Style names resolve to their
// style ids because no styles part has been read.
func Wrap(f *docx.Docx, name string) *Document {
	return &Document{Name: name, file: f, styles: &Styles{}}
}

// Docx exposes the underlying container.
func (d *Document) Docx() *docx.Docx {
	return d.file
}

// Styles returns the style table read from word/styles.xml.
func (d *Document) Styles() *Styles {
	return d.styles
}

// WriteTo serializes the document as a .docx archive.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if _, err := d.file.WriteTo(cw); err != nil {
		return cw.n, fmt.Errorf("write docx: %w", err)
	}
	return cw.n, nil
}

// Bytes serializes the document into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the document to path atomically.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
