package tables

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
)

const layoutText = `                    Statement of Profit and Loss

Revenue from operations        21     12,345.67     11,234.56
Other income                   22        234.50        198.20
Total income                          12,580.17     11,432.76
Employee benefits expense      24      3,456.78      3,210.98
Finance costs                  25        123.45        145.67
Other expenses                 27      1,234.56      1,198.76
Total expenses                         5,049.46      4,755.41
Profit before tax                      7,530.71      6,677.35
`

func TestParseColumnBlocks(t *testing.T) {
	tables := parseWithStrategy(layoutText, strategyStrictLines)
	if len(tables) == 0 {
		t.Fatal("strict-lines found no tables")
	}

	items, refs := extractItems(tables[0])
	if len(items) < minStatementItems {
		t.Fatalf("extracted %d items, want at least %d: %v", len(items), minStatementItems, items)
	}
	if item := items["Revenue from operations"]; item.Current != 12345.67 {
		t.Errorf("revenue current = %v, want 12345.67", item.Current)
	}
	if got := refs["Other expenses"]; got != "27" {
		t.Errorf("note ref = %q, want \"27\"", got)
	}
}

func TestParseLabelValueLines(t *testing.T) {
	text := "Travelling and conveyance 123.45 98.76\n" +
		"Rent 56.78 54.00\n" +
		"Power and fuel 89.01 85.50\n" +
		"Total 269.24 238.26\n"

	tables := parseWithStrategy(text, strategyText)
	if len(tables) != 1 {
		t.Fatalf("text strategy returned %d tables, want 1", len(tables))
	}
	if len(tables[0].Rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(tables[0].Rows))
	}
	row := tables[0].Rows[0]
	if row[0] != "Travelling and conveyance" || row[1] != "123.45" || row[2] != "98.76" {
		t.Errorf("row = %v", row)
	}
}

func TestStrategyOrder(t *testing.T) {
	// Single-space separated lines only the text strategy can parse.
	text := "Some prose without any columns at all\n" +
		"Rent 56.78 54.00\n" +
		"Power 89.01 85.50\n" +
		"Total 145.79 139.50\n"

	if got := parseWithStrategy(text, strategyStrictLines); len(got) != 0 {
		t.Errorf("strict-lines should find nothing, got %d tables", len(got))
	}
	if got := parseWithStrategy(text, strategyText); len(got) != 1 {
		t.Errorf("text strategy should find one table, got %d", len(got))
	}
}

type layoutStub struct {
	out  string
	err  error
	args [][]string
}

func (s *layoutStub) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	s.args = append(s.args, append([]string{name}, args...))
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.out), nil
}

func TestLayoutEngineExtract(t *testing.T) {
	stub := &layoutStub{out: layoutText}
	engine := NewLayoutEngine(stub, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tables, err := engine.Extract(context.Background(), "subset.pdf")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(tables) == 0 {
		t.Fatal("expected tables from layout text")
	}
	if len(stub.args) != 1 || stub.args[0][0] != "pdftotext" {
		t.Errorf("commands = %v", stub.args)
	}
}

func TestLayoutEngineRenderFailure(t *testing.T) {
	stub := &layoutStub{err: fmt.Errorf("binary not found")}
	engine := NewLayoutEngine(stub, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := engine.Extract(context.Background(), "subset.pdf")
	if err == nil || !strings.Contains(err.Error(), "render") {
		t.Fatalf("expected render error, got %v", err)
	}
}

func TestPlausibleNoteRef(t *testing.T) {
	if ref, ok := plausibleNoteRef("27"); !ok || ref != "27" {
		t.Errorf("plausibleNoteRef(27) = %q, %v", ref, ok)
	}
	for _, s := range []string{"61", "0", "123", "27.5", "abc", ""} {
		if _, ok := plausibleNoteRef(s); ok {
			t.Errorf("plausibleNoteRef(%q) accepted", s)
		}
	}
}
