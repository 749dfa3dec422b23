package tables

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/statementlens/pnlextract/internal/ocrsvc"
	"github.com/statementlens/pnlextract/internal/pdfdoc"
)

// LayoutEngine is the fallback extractor: it renders pages with
// pdftotext in layout mode and reconstructs tables from the column
// whitespace, trying progressively looser strategies.
type LayoutEngine struct {
	runner ocrsvc.Runner
	logger *slog.Logger
}

// NewLayoutEngine builds the fallback engine.
func NewLayoutEngine(runner ocrsvc.Runner, logger *slog.Logger) *LayoutEngine {
	return &LayoutEngine{runner: runner, logger: logger}
}

// Name identifies the engine in diagnostics.
func (e *LayoutEngine) Name() string {
	return "pdftotext-layout"
}

// strategy names, in the order they are attempted.
const (
	strategyStrictLines  = "strict-lines"
	strategyRelaxedLines = "relaxed-lines"
	strategyText         = "text"
)

var strategies = []string{strategyStrictLines, strategyRelaxedLines, strategyText}

// Extract renders the PDF and walks the strategies in order, returning
// the tables of the first strategy that finds any.
func (e *LayoutEngine) Extract(ctx context.Context, pdfPath string) ([]Table, error) {
	out, err := e.runner.Run(ctx, "pdftotext", "-layout", pdfPath, "-")
	if err != nil {
		return nil, fmt.Errorf("failed to render PDF layout: %w", err)
	}
	text := string(out)

	for _, strat := range strategies {
		tables := parseWithStrategy(text, strat)
		e.logger.Debug("tables.layout.strategy",
			slog.String("strategy", strat),
			slog.Int("tables", len(tables)))
		if len(tables) > 0 {
			return tables, nil
		}
	}
	return nil, nil
}

var (
	strictSplit  = regexp.MustCompile(`\s{3,}`)
	relaxedSplit = regexp.MustCompile(`\s{2,}`)
	trailingNums = regexp.MustCompile(`^(.*?[A-Za-z][^0-9]*?)\s+((?:\(?-?[\d,]+(?:\.\d+)?\)?|-|–|Nil)(?:\s+(?:\(?-?[\d,]+(?:\.\d+)?\)?|-|–|Nil))*)\s*$`)
)

// parseWithStrategy reconstructs tables from layout text.
//
// strict-lines splits rows on runs of three or more spaces and keeps
// blocks of consecutive multi-column rows; relaxed-lines does the same
// with two-space runs; text gives up on columns and pairs each label
// with the numbers trailing it on the same line.
func parseWithStrategy(text string, strat string) []Table {
	switch strat {
	case strategyStrictLines:
		return parseColumnBlocks(text, strictSplit, 3)
	case strategyRelaxedLines:
		return parseColumnBlocks(text, relaxedSplit, 2)
	case strategyText:
		return parseLabelValueLines(text)
	default:
		return nil
	}
}

// parseColumnBlocks groups consecutive lines that split into at least
// minCols fields into one table each; a break in the pattern closes
// the current block.
func parseColumnBlocks(text string, split *regexp.Regexp, minCols int) []Table {
	var tables []Table
	var current [][]string

	flush := func() {
		// One-row blocks are headers or stray lines, not tables.
		if len(current) >= 3 {
			tables = append(tables, Table{Rows: current})
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		fields := split.Split(strings.TrimSpace(line), -1)
		if len(fields) >= minCols && strings.TrimSpace(line) != "" {
			current = append(current, fields)
			continue
		}
		flush()
	}
	flush()
	return tables
}

// parseLabelValueLines builds a single table out of every line that
// ends in one or more numbers, splitting label from the numeric tail.
func parseLabelValueLines(text string) []Table {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := trailingNums.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		row := []string{strings.TrimSpace(m[1])}
		for _, v := range strings.Fields(m[2]) {
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	if len(rows) < 3 {
		return nil
	}
	return []Table{{Rows: rows}}
}

// ExtractNoteRefFromText scans raw statement page text for the note
// number printed beside a line item, used when table extraction drops
// the reference column. Reports format rows as
// "Label  NoteRef  Current  Previous", so any standalone one or two
// digit number in range counts.
func ExtractNoteRefFromText(doc *pdfdoc.Document, statementPage int, itemKeyword string) string {
	keyword := strings.ToLower(itemKeyword)

	for offset := 0; offset < 2; offset++ {
		page := statementPage + offset
		if page >= doc.PageCount() {
			break
		}
		lines := strings.Split(doc.PageText(page), "\n")

		for i, line := range lines {
			if !strings.Contains(strings.ToLower(line), keyword) {
				continue
			}

			for _, part := range relaxedSplit.Split(strings.TrimSpace(line), -1) {
				if ref, ok := plausibleNoteRef(part); ok {
					return ref
				}
			}
			for j := i + 1; j < min(i+3, len(lines)); j++ {
				if ref, ok := plausibleNoteRef(strings.TrimSpace(lines[j])); ok {
					return ref
				}
			}
		}
	}
	return ""
}

var bareNoteRef = regexp.MustCompile(`^\d{1,2}$`)

// plausibleNoteRef accepts standalone note numbers between 1 and 60;
// anything larger is a value, not a reference.
func plausibleNoteRef(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !bareNoteRef.MatchString(s) {
		return "", false
	}
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	if n >= 1 && n <= 60 {
		return s, true
	}
	return "", false
}
