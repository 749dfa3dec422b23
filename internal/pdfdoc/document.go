package pdfdoc

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document provides page-level access to an annual report PDF.
// Page indices are zero-based throughout; the underlying library is
// one-based and the conversion happens here, nowhere else.
type Document struct {
	path      string
	file      *os.File
	r         *pdf.Reader
	texts     []string
	extracted []bool
}

// Open opens a PDF file and validates it against the configured limits.
func Open(path string, maxFileSize int64, maxPages int) (*Document, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if maxFileSize > 0 && fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), maxFileSize)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	if maxPages > 0 && r.NumPage() > maxPages {
		f.Close()
		return nil, fmt.Errorf("document has %d pages (max: %d)", r.NumPage(), maxPages)
	}

	return &Document{
		path:      path,
		file:      f,
		r:         r,
		texts:     make([]string, r.NumPage()),
		extracted: make([]bool, r.NumPage()),
	}, nil
}

// Close releases the underlying file handle.
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Path returns the path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.r.NumPage()
}

// PageText returns the extracted text of the given zero-based page.
// Extraction failures yield an empty string; a page with no text layer
// is expected input, not an error.
func (d *Document) PageText(index int) string {
	if index < 0 || index >= len(d.texts) {
		return ""
	}
	if !d.extracted[index] {
		d.texts[index] = d.extractPageText(index)
		d.extracted[index] = true
	}
	return d.texts[index]
}

// PageTexts returns the text of every page, extracting lazily.
func (d *Document) PageTexts() []string {
	out := make([]string, len(d.texts))
	for i := range d.texts {
		out[i] = d.PageText(i)
	}
	return out
}

// ReplaceTexts substitutes the extracted text of every page, used after an
// OCR conversion produced a searchable text layer. The slice is truncated
// or padded to the document's page count.
func (d *Document) ReplaceTexts(texts []string) {
	replaced := make([]string, d.r.NumPage())
	copy(replaced, texts)
	d.texts = replaced
	d.extracted = make([]bool, d.r.NumPage())
	for i := range d.extracted {
		d.extracted[i] = true
	}
}

// extractPageText pulls plain text from one page, guarding against panics
// in the underlying parser on malformed content streams.
func (d *Document) extractPageText(index int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	page := d.r.Page(index + 1)
	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return content
}

// HeaderLines returns the first n non-empty lines of a page, used for
// company validation and candidate previews.
func (d *Document) HeaderLines(index, n int) []string {
	var lines []string
	for _, line := range strings.Split(d.PageText(index), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) >= n {
			break
		}
	}
	return lines
}
