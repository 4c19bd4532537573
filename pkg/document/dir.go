package document

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Format selects how files found in a directory are read
type Format string

const (
	// FormatRaw reads files as plain whitespace-delimited text
	FormatRaw Format = "raw"
	// FormatMail parses files as mail messages
	FormatMail Format = "mail"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatRaw:
		return FormatRaw, nil
	case FormatMail:
		return FormatMail, nil
	}
	return "", fmt.Errorf("unknown document format: %s", s)
}

// Options controls directory listing
type Options struct {
	// Extensions accepted, lower case with leading dot. "" matches files
	// without an extension. Empty slice accepts everything.
	Extensions []string
	Format     Format
}

// DefaultExtensions are the mail and text file types read by default
var DefaultExtensions = []string{".txt", ".eml", ".msg", ".email", ""}

// Dir lists every matching file under root as a document, sorted by path
func Dir(root string, opts Options) ([]Document, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !opts.accepts(path) {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	sort.Strings(paths)

	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		docs = append(docs, opts.open(path))
	}
	return docs, nil
}

// Files wraps explicit paths as documents, keeping their order
func Files(paths []string, format Format) []Document {
	opts := Options{Format: format}
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		docs = append(docs, opts.open(path))
	}
	return docs
}

func (o Options) open(path string) Document {
	if o.Format == FormatMail {
		return Mail(path)
	}
	return File(path)
}

// accepts checks if the file extension is one we read
func (o Options) accepts(path string) bool {
	if len(o.Extensions) == 0 {
		return true
	}

	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range o.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
