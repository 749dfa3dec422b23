package identify

import (
	"regexp"
	"strings"
)

// TOC pages mention every statement by name and would otherwise look
// like perfect matches, so they are filtered out everywhere a page is
// considered as a statement candidate.

var tocMarkers = []string{
	"table of contents", "contents", "index",
	"sr. no.", "sr no", "serial no", "particulars",
	"list of", "annexure",
}

var (
	tocEntryPattern  = regexp.MustCompile(`^.*[A-Za-z].*(?:\.{2,}|\s)\d{1,3}(?:\s*-\s*\d{1,3})?$`)
	tocDottedPattern = regexp.MustCompile(`\.{3,}`)
	decimalPattern   = regexp.MustCompile(`\d+\.\d+`)
	contentsWord     = regexp.MustCompile(`\bcontents\b`)
	indexWord        = regexp.MustCompile(`\bindex\b`)
)

// IsLikelyTOC reports whether a page looks like a table of contents or
// index: a TOC marker in the header, enough "label ... page number"
// lines, or many dotted leaders.
func IsLikelyTOC(text string) bool {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return false
	}

	header := strings.ToLower(strings.Join(lines[:min(8, len(lines))], " "))
	for _, marker := range tocMarkers {
		if !strings.Contains(header, marker) {
			continue
		}
		// "contents" and "index" appear inside longer phrases, so they
		// only count as standalone words.
		switch marker {
		case "contents":
			if contentsWord.MatchString(header) {
				return true
			}
		case "index":
			if indexWord.MatchString(header) {
				return true
			}
		default:
			return true
		}
	}

	sample := lines
	if len(sample) > 50 {
		sample = sample[:50]
	}

	tocLike := 0
	dottedLines := 0
	for _, line := range sample {
		// Financial value rows carry commas or decimals; skip them so a
		// statement page full of numbers is not mistaken for a TOC.
		if strings.Contains(line, ",") || decimalPattern.MatchString(line) {
			continue
		}
		if tocEntryPattern.MatchString(line) {
			tocLike++
		}
		if tocDottedPattern.MatchString(line) {
			dottedLines++
		}
	}

	if tocLike >= 4 && float64(tocLike)/float64(len(sample)) >= 0.20 {
		return true
	}
	return dottedLines >= 5
}
