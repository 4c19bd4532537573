// Package document provides the sources the classifier reads text from.
//
// A Document only has to yield whitespace-delimited text; the classifier
// never learns whether it came from a file, a mail message or memory.
package document

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Document is a named, readable unit of text
type Document interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// FileDocument reads raw text from a file
type FileDocument struct {
	path string
}

// File returns a document backed by the file at path
func File(path string) *FileDocument {
	return &FileDocument{path: path}
}

// Name returns the base name of the file
func (f *FileDocument) Name() string {
	return filepath.Base(f.path)
}

// Path returns the full file path
func (f *FileDocument) Path() string {
	return f.path
}

// Open opens the file for reading
func (f *FileDocument) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// TextDocument holds its content in memory
type TextDocument struct {
	name    string
	content string
}

// Text returns an in-memory document
func Text(name, content string) *TextDocument {
	return &TextDocument{name: name, content: content}
}

// Name returns the document name
func (t *TextDocument) Name() string {
	return t.name
}

// Open returns a reader over the content
func (t *TextDocument) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(t.content)), nil
}

// Tokens returns a document made of exactly the given tokens, with no
// header. Tokenize it with a policy that keeps the first token.
func Tokens(name string, tokens ...string) *TextDocument {
	return Text(name, strings.Join(tokens, " "))
}
