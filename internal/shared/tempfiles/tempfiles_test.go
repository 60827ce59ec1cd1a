package tempfiles

import (
	"os"
	"strings"
	"testing"
)

func TestSaveCreatesUniqueNames(t *testing.T) {
	dir := New(t.TempDir())

	first, err := dir.Save("resume.pdf", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := dir.Save("resume.pdf", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("save second: %v", err)
	}
	if first == second {
		t.Fatalf("expected unique paths, got %s twice", first)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	dir := New(t.TempDir())

	path, err := dir.Save("resume.pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := dir.Remove(path); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file gone, stat err=%v", err)
	}
	if err := dir.Remove(path); err != nil {
		t.Fatalf("second remove should tolerate missing file: %v", err)
	}
	if err := dir.Remove(""); err != nil {
		t.Fatalf("empty path remove: %v", err)
	}
}

func TestSaveRejectsTraversal(t *testing.T) {
	dir := New(t.TempDir())
	if _, err := dir.Save("../escape.pdf", strings.NewReader("x")); err == nil {
		t.Fatal("expected traversal name to be rejected")
	}
}
