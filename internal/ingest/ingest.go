// Package ingest extracts plain text from uploaded contract files.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for file extensions that cannot be read.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrNoText is returned when a file parses but yields no text.
	ErrNoText = errors.New("no extractable text")
)

// Parsed is the text extracted from one upload.
type Parsed struct {
	Filename string
	Title    string
	MIME     string
	Text     string
}

var mimeTypes = map[string]string{
	".txt":  "text/plain",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pdf":  "application/pdf",
	".html": "text/html",
	".htm":  "text/html",
}

// SupportedExtensions lists the extensions Extract accepts.
func SupportedExtensions() []string {
	return []string{".txt", ".docx", ".pdf", ".html", ".htm"}
}

// MIMEFor returns the MIME type recorded for filename, or "" when the
// extension is not supported.
func MIMEFor(filename string) string {
	return mimeTypes[strings.ToLower(filepath.Ext(filename))]
}

// Extract reads data according to the extension of filename.
func Extract(filename string, data []byte) (*Parsed, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var (
		text  string
		title string
		err   error
	)
	switch ext {
	case ".txt":
		text = decodeText(data)
	case ".docx":
		text, err = parseDOCX(data)
	case ".pdf":
		text, err = parsePDF(data)
	case ".html", ".htm":
		doc := FromHTML(data)
		text, title = doc.Text, doc.Title
	default:
		if ext == "" {
			ext = "(none)"
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filename), err)
	}
	text = normalizeWhitespace(text)
	if text == "" {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filename), ErrNoText)
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return &Parsed{
		Filename: filepath.Base(filename),
		Title:    title,
		MIME:     mimeTypes[ext],
		Text:     text,
	}, nil
}

func decodeText(data []byte) string {
	s := strings.TrimPrefix(string(data), "\ufeff")
	return strings.ToValidUTF8(s, "")
}

// normalizeWhitespace collapses runs of spaces inside lines and keeps at most
// one blank line between paragraphs.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed == "" {
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, trimmed)
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
