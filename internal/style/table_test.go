package style

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	tbl := NewTable(
		Column{Name: "TIME", Width: 10},
		Column{Name: "SIZE", Width: 8, Align: AlignRight},
	)
	tbl.AddRow("12:00:01", "250 KB")
	tbl.AddRow("12:45:10", "310 KB")

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// header + separator + 2 rows
	if len(lines) != 4 {
		t.Fatalf("rendered %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "TIME") || !strings.Contains(lines[0], "SIZE") {
		t.Errorf("header missing column names: %q", lines[0])
	}
	if !strings.Contains(out, "250 KB") || !strings.Contains(out, "310 KB") {
		t.Error("rows missing values")
	}
}

func TestTableTruncatesLongValues(t *testing.T) {
	tbl := NewTable(Column{Name: "PATH", Width: 10}).SetHeaderSeparator(false)
	tbl.AddRow("/very/long/transcript/path.jsonl")

	out := tbl.Render()
	if !strings.Contains(out, "...") {
		t.Errorf("long value not truncated: %q", out)
	}
}

func TestTablePadsShortRows(t *testing.T) {
	tbl := NewTable(
		Column{Name: "A", Width: 4},
		Column{Name: "B", Width: 4},
	)
	tbl.AddRow("x") // second column omitted

	// Must not panic, second cell renders empty.
	out := tbl.Render()
	if !strings.Contains(out, "x") {
		t.Errorf("row value missing: %q", out)
	}
}

func TestTableEmpty(t *testing.T) {
	if out := NewTable().Render(); out != "" {
		t.Errorf("empty table rendered %q, want empty", out)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		want    string
	}{
		{"zero", 0, "0%"},
		{"half", 50, "50%"},
		{"full", 100, "100%"},
		{"clamped low", -5, "0%"},
		{"clamped high", 150, "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ProgressBar(tt.percent, 10)
			if !strings.Contains(out, tt.want) {
				t.Errorf("ProgressBar(%d) = %q, want suffix %q", tt.percent, out, tt.want)
			}
		})
	}

	full := ProgressBar(100, 10)
	if strings.Contains(full, "░") {
		t.Error("full bar should contain no empty cells")
	}
}
