package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	cols := []column{
		{title: "#", right: true},
		{title: "Source"},
		{title: "Listened", right: true},
	}
	rows := [][]string{
		{"1", "hello", "3"},
		{"10", "привет", "12"},
	}

	lines := formatTable(cols, rows)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != " # Source Listened" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 1 hello         3" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "10 привет       12" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableTruncatesWideCells(t *testing.T) {
	cols := []column{{title: "Text", maxWidth: 6}}
	lines := formatTable(cols, [][]string{{"a very long phrase"}})
	if lines[1] != "a ver…" {
		t.Fatalf("unexpected truncated cell: %q", lines[1])
	}
}
