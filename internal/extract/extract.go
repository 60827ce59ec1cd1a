package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Sentinel errors callers branch on. The concrete cause stays attached via
// wrapping.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrExtraction      = errors.New("extraction failed")
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// File reads the document at path and extracts normalized text. The file is
// only read, never mutated or deleted; cleanup stays with the caller.
func File(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supported(ext) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrExtraction, filepath.Base(path), err)
	}
	return Text(data, path)
}

// Text extracts normalized text from an in-memory document.
// Libraries used: github.com/ledongthuc/pdf (PDF) and
// github.com/nguyenthenguyen/docx (DOC/DOCX).
func Text(data []byte, fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	var (
		raw string
		err error
	)
	switch ext {
	case ".pdf":
		raw, err = extractPDF(data)
	case ".doc", ".docx":
		raw, err = extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrExtraction, ext, err)
	}
	return Normalize(raw), nil
}

// Normalize collapses every whitespace run to a single ASCII space and trims
// both ends. Idempotent.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))
}

func supported(ext string) bool {
	switch ext {
	case ".pdf", ".doc", ".docx":
		return true
	default:
		return false
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty document")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}

// stripDocxXML projects document.xml to plain text, discarding styling.
// Paragraph and line-break ends become newlines so words don't run together;
// Normalize collapses them afterwards.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return buf.String()
}
