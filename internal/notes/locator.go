// Package notes locates a numbered note in the notes section and
// extracts its expense breakup table.
package notes

import (
	"fmt"
	"regexp"
	"strings"
)

// maxSearchPages bounds how far past the search start the locator
// scans; an unbounded scan would false-match note-shaped numbers in
// annexures hundreds of pages later.
const maxSearchPages = 80

// Location is where a note heading was found. Line is -1 when only the
// page is known.
type Location struct {
	Page int
	Line int
}

// Locate finds the page carrying the given note number, searching from
// startPage. Strategies run strictly in order of specificity:
//
//  1. note number and keyword on the same line
//  2. note heading at line start with the keyword within nearby lines
//  3. note heading anywhere on a page that also mentions the keyword
//  4. note heading alone
//  5. keyword alone
//
// The first hit wins; a looser strategy never overrides a stricter
// one. Returns false when nothing matches within the window.
func Locate(texts []string, noteNumber, keyword string, startPage int) (Location, bool) {
	if startPage < 0 {
		startPage = 0
	}
	end := min(startPage+maxSearchPages, len(texts))
	if startPage >= end {
		return Location{}, false
	}

	window := texts[startPage:end]
	keywordLower := strings.ToLower(keyword)
	noteEsc := regexp.QuoteMeta(noteNumber)

	strategies := []func([]string, string, string) (int, int, bool){
		findSameLine,
		findNearby,
		findOnPage,
		findHeadingOnly,
		findKeywordOnly,
	}
	for _, strat := range strategies {
		if page, line, ok := strat(window, noteEsc, keywordLower); ok {
			return Location{Page: startPage + page, Line: line}, true
		}
	}
	return Location{}, false
}

// findSameLine matches headings like "27. Other expenses",
// "27 - Other expenses", "Note 27: Other expenses", and the inverted
// "Other expenses (Note 27)".
func findSameLine(window []string, noteEsc, keyword string) (int, int, bool) {
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*` + noteEsc + `\s*[.\-–—:)]\s*.*` + regexp.QuoteMeta(keyword)),
		regexp.MustCompile(`(?i)^\s*` + noteEsc + `\s+.*` + regexp.QuoteMeta(keyword)),
		regexp.MustCompile(`(?i)note\s+` + noteEsc + `\s*[.\-–—:)]\s*.*` + regexp.QuoteMeta(keyword)),
		regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword) + `.*\b` + noteEsc + `\b`),
	}

	for p, text := range window {
		for l, line := range splitTrimmed(text) {
			for _, pat := range patterns {
				if pat.MatchString(line) {
					return p, l, true
				}
			}
		}
	}
	return 0, 0, false
}

// findNearby matches a note heading at line start with the keyword (or
// the word "expense") within two lines above or five below.
func findNearby(window []string, noteEsc, keyword string) (int, int, bool) {
	headingStart := regexp.MustCompile(`(?i)^\s*` + noteEsc + `\s*[.\-–—:)]\s`)

	for p, text := range window {
		lines := splitTrimmed(text)
		for l, line := range lines {
			if !headingStart.MatchString(line) {
				continue
			}
			ctx := strings.ToLower(strings.Join(lines[max(0, l-2):min(len(lines), l+6)], " "))
			if strings.Contains(ctx, keyword) || strings.Contains(ctx, "expense") {
				return p, l, true
			}
		}
	}
	return 0, 0, false
}

// findOnPage matches pages that mention the keyword anywhere and carry
// a note heading anywhere.
func findOnPage(window []string, noteEsc, keyword string) (int, int, bool) {
	heading := regexp.MustCompile(`(?im)(?:^|\n)\s*(?:note\s*)?` + noteEsc + `\s*[.\-–—:)]\s`)
	headingLine := regexp.MustCompile(`(?i)(?:note\s*)?` + noteEsc + `\s*[.\-–—:)]`)

	for p, text := range window {
		if !strings.Contains(strings.ToLower(text), keyword) {
			continue
		}
		if !heading.MatchString(text) {
			continue
		}
		for l, line := range splitTrimmed(text) {
			if headingLine.MatchString(line) {
				return p, l, true
			}
		}
	}
	return 0, 0, false
}

// findHeadingOnly drops the keyword requirement: some reports bury the
// note inside a combined table where "Other expenses" never appears as
// standalone text.
func findHeadingOnly(window []string, noteEsc, _ string) (int, int, bool) {
	heading := regexp.MustCompile(`(?im)(?:^|\n)\s*(?:note\s*)?` + noteEsc + `\s*[.\-–—:)]\s+[A-Za-z]`)
	headingLine := regexp.MustCompile(`(?i)(?:note\s*)?` + noteEsc + `\s*[.\-–—:)]`)

	for p, text := range window {
		if !heading.MatchString(text) {
			continue
		}
		for l, line := range splitTrimmed(text) {
			if headingLine.MatchString(line) {
				return p, l, true
			}
		}
	}
	return 0, 0, false
}

// findKeywordOnly is the last resort: a notes-section page mentioning
// the keyword at all. No heading line is identified.
func findKeywordOnly(window []string, _, keyword string) (int, int, bool) {
	for p, text := range window {
		lower := strings.ToLower(text)
		if strings.Contains(lower, keyword) && strings.Contains(lower, "expense") {
			return p, -1, true
		}
	}
	return 0, 0, false
}

func splitTrimmed(text string) []string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

// DescribeMiss explains a failed search for diagnostics.
func DescribeMiss(noteNumber, keyword string, startPage, pageCount int) string {
	end := min(startPage+maxSearchPages, pageCount)
	return fmt.Sprintf("note %s (%s) not found in pages %d-%d", noteNumber, keyword, startPage+1, end)
}
