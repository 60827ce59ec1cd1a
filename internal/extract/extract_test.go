package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTextFromPDFSample(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "sample.pdf"))
	if err != nil {
		t.Fatalf("read test pdf: %v", err)
	}

	text, err := Text(data, "sample.pdf")
	if err != nil {
		t.Fatalf("extract pdf: %v", err)
	}
	if text == "" {
		t.Fatal("expected non-empty text from pdf sample")
	}
	if !strings.Contains(text, "Backend Engineer") {
		t.Fatalf("expected page text in output, got %q", text)
	}
	// Pages concatenate in document order.
	if strings.Index(text, "John Smith") > strings.Index(text, "Kubernetes") {
		t.Fatalf("page order lost: %q", text)
	}
}

func TestTextFromDocxSample(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "sample.docx"))
	if err != nil {
		t.Fatalf("read test docx: %v", err)
	}

	text, err := Text(data, "resume.docx")
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	if !strings.Contains(text, "Jane Doe") {
		t.Fatalf("expected document text, got %q", text)
	}
	if strings.Contains(text, "<w:") {
		t.Fatalf("styling markup leaked into output: %q", text)
	}
}

func TestTextRejectsUnsupportedExtension(t *testing.T) {
	_, err := Text([]byte("plain text resume"), "resume.txt")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if !strings.Contains(err.Error(), ".txt") {
		t.Fatalf("expected rejected extension in error, got %v", err)
	}
}

func TestTextCorruptPDFWrapsExtractionError(t *testing.T) {
	_, err := Text([]byte("%PDF-1.4 not actually a pdf"), "broken.pdf")
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	in := "  John\tSmith\n\nBackend   Engineer \r\n"
	want := "John Smith Backend Engineer"
	if got := Normalize(in); got != want {
		t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once := Normalize("a\n b\t\tc  d")
	if twice := Normalize(once); twice != once {
		t.Fatalf("expected idempotent normalize, %q != %q", twice, once)
	}
}

func TestFileReadsFromDisk(t *testing.T) {
	text, err := File(filepath.Join("testdata", "sample.pdf"))
	if err != nil {
		t.Fatalf("extract file: %v", err)
	}
	if text == "" {
		t.Fatal("expected non-empty text")
	}
}

func TestFileUnsupportedBeforeRead(t *testing.T) {
	_, err := File(filepath.Join("testdata", "missing.zip"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}
