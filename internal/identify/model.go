package identify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/statementlens/pnlextract/internal/llmsvc"
)

const (
	summaryLinesPerPage = 15
	summaryBatchPages   = 80
)

// PageSummaries renders the given pages into the compact per-page
// summaries the model reads. Page numbers are one-based in the output.
func PageSummaries(texts []string, start, end int) string {
	var sb strings.Builder
	for i := start; i < end && i < len(texts); i++ {
		sb.WriteString(fmt.Sprintf("Page %d:\n", i+1))

		count := 0
		for _, line := range strings.Split(texts[i], "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
			count++
			if count >= summaryLinesPerPage {
				break
			}
		}
		if count == 0 {
			sb.WriteString("  (no extractable text)\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// findByModel batches page summaries through the model and merges the
// per-batch findings, earliest batch winning. A located profit and loss
// page that turns out to be a table of contents is discarded: models
// reliably confuse the TOC entry for the statement itself.
func findByModel(ctx context.Context, client *llmsvc.Client, texts []string, logger *slog.Logger) (llmsvc.Findings, error) {
	var merged llmsvc.Findings

	for start := 0; start < len(texts); start += summaryBatchPages {
		end := min(start+summaryBatchPages, len(texts))

		findings, err := client.IdentifyPages(ctx, PageSummaries(texts, start, end))
		if err != nil {
			return llmsvc.Findings{}, fmt.Errorf("model identification failed on pages %d-%d: %w", start+1, end, err)
		}
		merged.Merge(findings)

		logger.Debug("identify.model.batch",
			slog.Int("start_page", start+1),
			slog.Int("end_page", end),
			slog.Bool("found_pnl", merged.Pages.ProfitAndLoss != nil))
	}

	if p := merged.Pages.ProfitAndLoss; p != nil {
		idx := *p - 1
		if idx < 0 || idx >= len(texts) {
			merged.Pages.ProfitAndLoss = nil
		} else if IsLikelyTOC(texts[idx]) {
			logger.Warn("identify.model.toc_rejected", slog.Int("page", *p))
			merged.Pages.ProfitAndLoss = nil
		}
	}
	return merged, nil
}

// pagesFromFindings converts one-based model findings into zero-based
// pages, dropping out-of-range values.
func pagesFromFindings(f llmsvc.Findings, pageCount int) Pages {
	pages := NewPages()
	conv := func(p *int) int {
		if p == nil {
			return PageNone
		}
		idx := *p - 1
		if idx < 0 || idx >= pageCount {
			return PageNone
		}
		return idx
	}
	pages.ProfitAndLoss = conv(f.Pages.ProfitAndLoss)
	pages.BalanceSheet = conv(f.Pages.BalanceSheet)
	pages.CashFlow = conv(f.Pages.CashFlow)
	pages.NotesStart = conv(f.Pages.NotesStart)
	return pages
}
