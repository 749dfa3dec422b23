package identify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/statementlens/pnlextract/internal/llmsvc"
)

// Identifier runs the identification chain over a document's page
// texts.
type Identifier struct {
	llm    *llmsvc.Client
	logger *slog.Logger
}

// New builds an Identifier. llm may be nil, in which case the model
// method is skipped entirely.
func New(llm *llmsvc.Client, logger *slog.Logger) *Identifier {
	return &Identifier{llm: llm, logger: logger}
}

// Identify locates the standalone statement pages. Methods run in
// order: the model first, then title matching, then keyword scoring.
// A method that errors is logged and skipped, never fatal; only a
// chain with no match at all yields MethodNone.
func (id *Identifier) Identify(ctx context.Context, texts []string) Result {
	res := Result{Pages: NewPages(), Method: MethodNone}

	modelFoundPnL := false
	if id.llm.Enabled() {
		res.Attempted = append(res.Attempted, MethodModel)
		findings, err := findByModel(ctx, id.llm, texts, id.logger)
		if err != nil {
			id.logger.Warn("identify.model.failed", slog.String("error", err.Error()))
			res.Warnings = append(res.Warnings, fmt.Sprintf("model identification unavailable: %v", err))
		} else {
			res.CompanyName = findings.CompanyName
			res.Currency = findings.Currency
			res.FiscalYearCurrent = findings.FiscalYearCurrent
			res.FiscalYearPrevious = findings.FiscalYearPrevious

			pages := pagesFromFindings(findings, len(texts))
			if pages.ProfitAndLoss != PageNone {
				res.Pages = pages
				res.Method = MethodModel
				modelFoundPnL = true
			}
		}
	}

	if res.Method == MethodNone {
		res.Attempted = append(res.Attempted, MethodTitle)
		if pages := FindByTitles(texts); pages.ProfitAndLoss != PageNone {
			res.Pages = pages
			res.Method = MethodTitle
		}
	}

	if res.Method == MethodNone {
		res.Attempted = append(res.Attempted, MethodScoring)
		if best, ok := FindByScoring(texts); ok {
			res.Pages.ProfitAndLoss = best
			res.Method = MethodScoring
		}
	}

	res.Candidates = AllCandidates(texts)
	id.reconcile(&res, modelFoundPnL)

	id.logger.Info("identify.done",
		slog.String("method", string(res.Method)),
		slog.Int("pnl_page", res.Pages.ProfitAndLoss),
		slog.Int("candidates", len(res.Candidates)),
		slog.Float64("confidence", res.Confidence))
	return res
}

// reconcile folds the candidate list into the final confidence. The
// chosen page is added as a candidate if the candidate scan missed it,
// so confidence always reflects every page in play.
func (id *Identifier) reconcile(res *Result, modelFoundPnL bool) {
	chosen := res.Pages.ProfitAndLoss
	if chosen != PageNone && !contains(res.Candidates, chosen) {
		res.Candidates = append(res.Candidates, chosen)
	}

	res.Confidence = Confidence(len(res.Candidates), modelFoundPnL)
	res.NeedsConfirmation = res.Confidence < ConfidenceThreshold

	if len(res.Candidates) >= 3 {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"found %d possible profit and loss pages %v; confidence is low, confirm the page manually",
			len(res.Candidates), oneBased(res.Candidates)))
	}
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func oneBased(pages []int) []int {
	out := make([]int, len(pages))
	for i, p := range pages {
		out[i] = p + 1
	}
	return out
}
