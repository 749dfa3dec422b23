package identify

import "strings"

// HasConsolidatedSection reports whether the document carries a
// consolidated statements section. Only page headers are inspected so
// incidental mentions in notes or the directors' report do not count.
// An explicit "standalone" label on a financial page also counts: it
// implies a consolidated counterpart exists elsewhere.
func HasConsolidatedSection(texts []string) bool {
	for _, text := range texts {
		if IsLikelyTOC(text) {
			continue
		}
		header := headerText(text, 10)
		isFinancial := HasPnLTitle(header) ||
			strings.Contains(header, "balance sheet") ||
			strings.Contains(header, "cash flow")
		if !isFinancial {
			continue
		}
		if strings.Contains(header, "consolidated") {
			return true
		}
		if HasStandaloneLabel(header) {
			return true
		}
	}
	return false
}

// FindByTitles locates statement pages by title matching in two
// passes: explicitly labelled standalone pages first, then any titled
// page when the report has no consolidated section. Pages without a
// recognizable title are left to content scoring, which the caller
// runs as its own method so provenance stays accurate.
func FindByTitles(texts []string) Pages {
	pages := NewPages()

	// Pass 1: explicit standalone labels.
	for i, text := range texts {
		if IsLikelyTOC(text) {
			continue
		}
		lower := strings.ToLower(text)
		if pages.ProfitAndLoss == PageNone && HasPnLTitle(lower) && HasStandaloneLabel(lower) {
			pages.ProfitAndLoss = i
		}
		if pages.BalanceSheet == PageNone && strings.Contains(lower, "balance sheet") && HasStandaloneLabel(lower) {
			pages.BalanceSheet = i
		}
		if pages.CashFlow == PageNone && strings.Contains(lower, "cash flow") && HasStandaloneLabel(lower) {
			pages.CashFlow = i
		}
	}

	// Pass 2: single-entity reports have no consolidated section, so
	// any titled page is the standalone one.
	if pages.ProfitAndLoss == PageNone && !HasConsolidatedSection(texts) {
		for i, text := range texts {
			if IsLikelyTOC(text) {
				continue
			}
			lower := strings.ToLower(text)
			if pages.ProfitAndLoss == PageNone && HasPnLTitle(lower) {
				pages.ProfitAndLoss = i
			}
			if pages.BalanceSheet == PageNone && strings.Contains(lower, "balance sheet") && len(text) > 200 {
				pages.BalanceSheet = i
			}
			if pages.CashFlow == PageNone && strings.Contains(lower, "cash flow") && len(text) > 200 {
				pages.CashFlow = i
			}
		}
	}

	return pages
}

// FindByScoring returns the best-scoring page, if any page clears the
// minimum score. When the document has a consolidated section the
// scoring penalizes consolidated pages so the standalone statement
// wins.
func FindByScoring(texts []string) (int, bool) {
	requireStandalone := HasConsolidatedSection(texts)

	bestPage, bestScore := -1, 0
	for i, text := range texts {
		if score := ScorePage(text, requireStandalone); score > bestScore {
			bestScore = score
			bestPage = i
		}
	}
	if bestScore >= minContentScore && bestPage >= 0 {
		return bestPage, true
	}
	return -1, false
}

// AllCandidates returns every page that could plausibly be the
// standalone profit and loss statement. Title matches are collected
// first; if none exist, every page clearing the content score counts.
// The caller uses the candidate count to derive confidence.
func AllCandidates(texts []string) []int {
	hasConsolidated := HasConsolidatedSection(texts)
	var candidates []int

	for i, text := range texts {
		if IsLikelyTOC(text) {
			continue
		}
		lower := strings.ToLower(text)
		if !HasPnLTitle(lower) {
			continue
		}
		if hasConsolidated {
			if HasStandaloneLabel(lower) {
				candidates = append(candidates, i)
			}
		} else {
			candidates = append(candidates, i)
		}
	}

	if len(candidates) == 0 {
		for i, text := range texts {
			if ScorePage(text, hasConsolidated) >= minContentScore {
				candidates = append(candidates, i)
			}
		}
	}
	return candidates
}
