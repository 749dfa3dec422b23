package identify

import (
	"regexp"
	"strings"
)

// pnlTitlePatterns cover the title variants seen across Indian GAAP,
// Ind AS, IFRS and older report formats, including OCR-damaged short
// forms. They match against normalized text.
var pnlTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`statement\s+of\s+(?:standalone\s+)?profit\s*(?:and|&)\s*loss`),
	regexp.MustCompile(`profit\s*(?:and|&)\s*loss\s+account`),
	regexp.MustCompile(`profit\s*(?:and|&)\s*loss\s+statement`),
	regexp.MustCompile(`statement\s+of\s+profit\s+or\s+loss`),
	regexp.MustCompile(`statement\s+of\s+(?:total\s+)?(?:comprehensive\s+)?income`),
	regexp.MustCompile(`statement\s+of\s+income\s+and\s+expenses?`),
	regexp.MustCompile(`statement\s+of\s+operations`),
	regexp.MustCompile(`income\s+and\s+expenditure\s+(?:account|statement)`),
	regexp.MustCompile(`income\s+(?:and|&)\s+expense\s+statement`),
	regexp.MustCompile(`revenue\s+(?:account|statement)`),
	regexp.MustCompile(`(?:standalone\s+)?p\s*(?:&|and)\s*l\s+(?:account|statement)`),
	regexp.MustCompile(`profit\s*(?:and|&|or)\s*loss`),
}

var (
	noiseChars = regexp.MustCompile(`[|_~]`)
	allSpace   = regexp.MustCompile(`\s+`)
)

var unicodeNormalizer = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"—", "-", "–", "-", "‒", "-",
	" ", " ",
)

// Normalize lowercases text and flattens the unicode and OCR noise
// that breaks naive substring matching: curly quotes, dash variants,
// non-breaking spaces, pipes from mangled table borders, and split
// titles spread over several lines.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	lower = unicodeNormalizer.Replace(lower)
	lower = noiseChars.ReplaceAllString(lower, " ")
	lower = allSpace.ReplaceAllString(lower, " ")
	lower = strings.ReplaceAll(lower, "/", " ")
	lower = strings.ReplaceAll(lower, "-", " ")
	return lower
}

// HasPnLTitle reports whether the text contains a recognizable profit
// and loss statement title.
func HasPnLTitle(text string) bool {
	normalized := Normalize(text)
	for _, p := range pnlTitlePatterns {
		if p.MatchString(normalized) {
			return true
		}
	}
	return false
}

// standaloneLabels are the wordings reports use to mark non-consolidated
// statements.
var standaloneLabels = []string{"standalone", "separate", "individual"}

// HasStandaloneLabel reports whether lowercased text carries any variant
// of the "standalone" marker.
func HasStandaloneLabel(textLower string) bool {
	for _, label := range standaloneLabels {
		if strings.Contains(textLower, label) {
			return true
		}
	}
	return false
}

// headerText returns the first n lines of a page, lowercased, for
// header-only checks.
func headerText(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.ToLower(strings.Join(lines, "\n"))
}
