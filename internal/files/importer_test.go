package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestImporterReadsAllowedExtensions(t *testing.T) {
	importer := NewImporter()
	for _, name := range []string{"notes.md", "notes.markdown", "notes.txt", "NOTES.MD"} {
		path := writeFile(t, name, []byte("# Title\n\nbody"))
		got, err := importer.Read(context.Background(), path)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got != "# Title\n\nbody" {
			t.Fatalf("%s: unexpected text %q", name, got)
		}
	}
}

func TestImporterRejectsUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "image.png", []byte("not really"))
	_, err := NewImporter().Read(context.Background(), path)
	if !errors.Is(err, ErrUnsupportedExtension) {
		t.Fatalf("expected ErrUnsupportedExtension, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestImporterRequiresPath(t *testing.T) {
	_, err := NewImporter().Read(context.Background(), "  ")
	if !errors.Is(err, ErrPathRequired) {
		t.Fatalf("expected ErrPathRequired, got %v", err)
	}
}

func TestImporterMissingFile(t *testing.T) {
	_, err := NewImporter().Read(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestImporterStripsUTF8BOMAndCRLF(t *testing.T) {
	path := writeFile(t, "bom.md", []byte("\xef\xbb\xbfline one\r\nline two\r\n"))
	got, err := NewImporter().Read(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "line one\nline two\n" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestImporterDecodesUTF16LittleEndian(t *testing.T) {
	// "hi" with a UTF-16LE byte order mark.
	path := writeFile(t, "wide.txt", []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00})
	got, err := NewImporter().Read(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hi" {
		t.Fatalf("expected hi, got %q", got)
	}
}

func TestImporterRejectsBinaryContent(t *testing.T) {
	for name, data := range map[string][]byte{
		"invalid.md": {0xC3, 0x28, 'a'},
		"nul.txt":    []byte("abc\x00def"),
	} {
		path := writeFile(t, name, data)
		_, err := NewImporter().Read(context.Background(), path)
		if !errors.Is(err, ErrNotText) {
			t.Fatalf("%s: expected ErrNotText, got %v", name, err)
		}
	}
}

func TestImporterMaxSize(t *testing.T) {
	path := writeFile(t, "big.md", []byte("0123456789"))
	_, err := NewImporter(WithMaxSize(4)).Read(context.Background(), path)
	if !errors.Is(err, ErrNotText) {
		t.Fatalf("expected size rejection, got %v", err)
	}
}

func TestImporterEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.md", nil)
	got, err := NewImporter().Read(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}
