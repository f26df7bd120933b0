// Package extract turns uploaded exam documents into plain text for the
// flashcard generator. PDF is the primary format; HTML exports of question
// papers are accepted as well.
package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Error reports a document that could not be parsed. Non-fatal: generation
// is skipped and the message shown to the user.
type Error struct {
	Name string // file name or label shown to the user
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract text from %s: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Document extracts plain text from a document payload, dispatching on
// content. name is only used for error messages and HTML detection.
func Document(name string, payload []byte) (string, error) {
	switch {
	case bytes.HasPrefix(payload, []byte("%PDF-")):
		text, err := fromPDF(payload)
		if err != nil {
			return "", &Error{Name: name, Err: err}
		}
		return text, nil
	case looksLikeHTML(name, payload):
		text, err := fromHTML(payload)
		if err != nil {
			return "", &Error{Name: name, Err: err}
		}
		return text, nil
	default:
		return "", &Error{Name: name, Err: fmt.Errorf("unsupported document format (expected PDF or HTML)")}
	}
}

// File reads and extracts a document from disk.
func File(path string) (string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Name: filepath.Base(path), Err: err}
	}
	return Document(filepath.Base(path), payload)
}

func looksLikeHTML(name string, payload []byte) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	head := bytes.ToLower(bytes.TrimSpace(payload))
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

// cleanText normalizes line endings and strips artifacts common in PDF
// extraction output.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\x00", "")
	return strings.TrimSpace(text)
}
