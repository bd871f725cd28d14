package inserter

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestInsertReplacesSelection(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		start, end int
		snippet    string
		offset     int
		wantText   string
		wantCursor int
	}{
		{"insert at start", "world", 0, 0, "hello ", 6, "hello world", 6},
		{"insert at end", "abc", 3, 3, "  ", 2, "abc  ", 5},
		{"replace middle", "a-b-c", 1, 4, "+", 1, "a+c", 2},
		{"wrap selection", "hello", 0, 5, "**hello**", 2, "**hello**", 2},
		{"empty markers", "ab", 1, 1, "****", 2, "a****b", 3},
		{"multibyte", "héllo wörld", 6, 11, "there", 5, "héllo there", 11},
		{"offset beyond snippet", "x", 0, 0, "[](url)", 1, "[](url)x", 1},
		{"delete selection", "abcdef", 2, 4, "", 0, "abef", 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Insert(tc.text, tc.start, tc.end, tc.snippet, tc.offset)
			if err != nil {
				t.Fatalf("Insert() error = %v", err)
			}
			if got.Text != tc.wantText {
				t.Fatalf("text: want %q, got %q", tc.wantText, got.Text)
			}
			if got.Cursor != tc.wantCursor {
				t.Fatalf("cursor: want %d, got %d", tc.wantCursor, got.Cursor)
			}
		})
	}
}

func TestInsertLengthProperty(t *testing.T) {
	texts := []string{"", "a", "hello world", "日本語のテキスト", "line1\nline2\n"}
	snippets := []string{"", "**", "```\n\n```", "→"}

	for _, text := range texts {
		n := Len(text)
		for start := 0; start <= n; start++ {
			for end := start; end <= n; end++ {
				for _, snippet := range snippets {
					got, err := Insert(text, start, end, snippet, 0)
					if err != nil {
						t.Fatalf("Insert(%q,%d,%d,%q) error = %v", text, start, end, snippet, err)
					}
					want := n - (end - start) + Len(snippet)
					if Len(got.Text) != want {
						t.Fatalf("Insert(%q,%d,%d,%q): length %d, want %d", text, start, end, snippet, Len(got.Text), want)
					}
				}
			}
		}
	}
}

func TestInsertNoOp(t *testing.T) {
	for _, text := range []string{"", "unchanged", "multi\nline"} {
		got, err := Insert(text, 0, 0, "", 0)
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if got.Text != text || got.Cursor != 0 {
			t.Fatalf("expected no-op for %q, got %+v", text, got)
		}
	}

	got, err := Insert("abc", 2, 2, "", 0)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if got.Text != "abc" || got.Cursor != 2 {
		t.Fatalf("expected cursor to stay at 2, got %+v", got)
	}
}

func TestIndentInsertsTwoSpaces(t *testing.T) {
	got, err := Indent("abc", Collapsed(3))
	if err != nil {
		t.Fatalf("Indent() error = %v", err)
	}
	if got.Text != "abc  " {
		t.Fatalf("want %q, got %q", "abc  ", got.Text)
	}
	if got.Cursor != 5 {
		t.Fatalf("want cursor 5, got %d", got.Cursor)
	}

	got, err = Indent("abc", Collapsed(1))
	if err != nil {
		t.Fatalf("Indent() error = %v", err)
	}
	if got.Text != "a  bc" || got.Cursor != 3 {
		t.Fatalf("unexpected indent result %+v", got)
	}
}

func TestInsertRejectsInvalidSelection(t *testing.T) {
	cases := []Selection{
		{Start: -1, End: 0},
		{Start: 2, End: 1},
		{Start: 0, End: 4},
	}
	for _, sel := range cases {
		_, err := InsertAt("abc", sel, "x", 0)
		if err == nil {
			t.Fatalf("expected error for %+v", sel)
		}
		if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
			t.Fatalf("expected validation category for %+v, got %v", sel, err)
		}
	}
}

func TestSelectedAndSpan(t *testing.T) {
	sel := Span(5, 0)
	if sel.Start != 0 || sel.End != 5 || sel.Len() != 5 {
		t.Fatalf("unexpected span %+v", sel)
	}
	if got := Selected("hello world", sel); got != "hello" {
		t.Fatalf("want hello, got %q", got)
	}
	if got := Selected("hi", sel); got != "" {
		t.Fatalf("expected empty string for out of range selection, got %q", got)
	}
	if !Collapsed(3).Empty() {
		t.Fatal("collapsed selection must be empty")
	}
}
