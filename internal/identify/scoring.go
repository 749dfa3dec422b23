package identify

import "strings"

// contentKeywords weight phrases by how unique they are to a statement
// of profit and loss. Genuine statement pages typically score 25 or
// more; incidental mentions elsewhere stay under 10.
var contentKeywords = map[string]int{
	"revenue from operations":       5,
	"profit before tax":             5,
	"profit for the year":           5,
	"profit for the period":         5,
	"profit before exceptional":     5,
	"total comprehensive income":    4,
	"earnings per share":            4,
	"basic eps":                     4,
	"diluted eps":                   4,
	"other income":                  3,
	"total income":                  3,
	"total expenses":                3,
	"employee benefits expense":     3,
	"employee benefit expense":      3,
	"finance costs":                 3,
	"finance cost":                  3,
	"depreciation and amortisation": 3,
	"depreciation and amortization": 3,
	"cost of materials consumed":    3,
	"other expenses":                2,
	"current tax":                   2,
	"deferred tax":                  2,
	"tax expense":                   2,
	"income from operations":        2,
	"operating revenue":             2,
	"cost of goods sold":            2,
	"cost of revenue":               2,
	"gross profit":                  2,
	"operating profit":              2,
	"net profit":                    2,
	"profit after tax":              2,
	"loss before tax":               2,
	"loss for the year":             2,
	"ebitda":                        1,
}

// negativeKeywords mark pages that mention statement vocabulary in
// passing: reports, notices, governance sections.
var negativeKeywords = []string{
	"table of contents", "contents", "index",
	"director", "auditor", "governance", "management discussion",
	"chairman", "board of", "secretary", "compliance",
	"notice of", "agenda",
}

// minContentScore is the lowest score accepted when scoring is the only
// evidence for a page.
const minContentScore = 20

// ScorePage rates how likely a page is to be a statement of profit and
// loss. With requireStandalone set, pages labelled consolidated are
// heavily penalised and explicit standalone labels earn a bonus; use it
// whenever the document also carries a consolidated section, since the
// generic keywords appear on both versions of the statement.
func ScorePage(text string, requireStandalone bool) int {
	lower := Normalize(text)
	score := 0

	for keyword, weight := range contentKeywords {
		if strings.Contains(lower, keyword) {
			score += weight
		}
	}

	for _, neg := range negativeKeywords {
		if strings.Contains(lower, neg) {
			score -= 8
		}
	}

	if HasPnLTitle(text) {
		score += 10
	}

	// Header/footer-only pages.
	if len(strings.TrimSpace(text)) < 200 {
		score -= 10
	}

	if IsLikelyTOC(text) {
		score -= 20
	}

	if requireStandalone {
		header := headerText(text, 10)
		if strings.Contains(header, "consolidated") {
			score -= 30
		}
		if HasStandaloneLabel(header) {
			score += 15
		}
	}

	return score
}
