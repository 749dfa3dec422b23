package llmsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// Findings is the structured answer for one batch of page summaries.
// Page numbers are one-based as printed in the summaries; nil means the
// model did not see that statement in the batch.
type Findings struct {
	CompanyName        string       `json:"company_name"`
	Currency           string       `json:"currency"`
	FiscalYearCurrent  string       `json:"fiscal_year_current"`
	FiscalYearPrevious string       `json:"fiscal_year_previous"`
	Pages              FindingPages `json:"pages"`
}

// FindingPages holds the located statement pages.
type FindingPages struct {
	ProfitAndLoss *int `json:"pnl"`
	BalanceSheet  *int `json:"balance_sheet"`
	CashFlow      *int `json:"cash_flow"`
	NotesStart    *int `json:"notes_start"`
}

// Merge fills nil fields of f from other, preferring values already
// present. Batches are merged front to back so the earliest sighting of
// each statement wins.
func (f *Findings) Merge(other Findings) {
	if f.CompanyName == "" {
		f.CompanyName = other.CompanyName
	}
	if f.Currency == "" {
		f.Currency = other.Currency
	}
	if f.FiscalYearCurrent == "" {
		f.FiscalYearCurrent = other.FiscalYearCurrent
	}
	if f.FiscalYearPrevious == "" {
		f.FiscalYearPrevious = other.FiscalYearPrevious
	}
	if f.Pages.ProfitAndLoss == nil {
		f.Pages.ProfitAndLoss = other.Pages.ProfitAndLoss
	}
	if f.Pages.BalanceSheet == nil {
		f.Pages.BalanceSheet = other.Pages.BalanceSheet
	}
	if f.Pages.CashFlow == nil {
		f.Pages.CashFlow = other.Pages.CashFlow
	}
	if f.Pages.NotesStart == nil {
		f.Pages.NotesStart = other.Pages.NotesStart
	}
}

const identifySystemPrompt = `You analyze summaries of pages from an Indian company's annual report and locate the standalone financial statements. Respond with JSON only, no prose.`

const identifyUserTemplate = `Below are short summaries of pages from an annual report, one per page, labeled with their page number.

Find the STANDALONE (not consolidated) financial statements and respond with exactly this JSON structure:

{
  "company_name": "<company name or empty string>",
  "currency": "<reporting currency and unit, e.g. 'INR lakhs', or empty string>",
  "fiscal_year_current": "<e.g. 'FY2024' or empty string>",
  "fiscal_year_previous": "<e.g. 'FY2023' or empty string>",
  "pages": {
    "pnl": <page number of the standalone statement of profit and loss, or null>,
    "balance_sheet": <page number of the standalone balance sheet, or null>,
    "cash_flow": <page number of the standalone cash flow statement, or null>,
    "notes_start": <page number where notes to the standalone financial statements begin, or null>
  }
}

Rules:
- Use the page numbers exactly as labeled below.
- Skip consolidated statements; only report standalone ones.
- A table of contents page that merely lists the statements is not the statement itself.
- Use null for anything you cannot find.

Page summaries:
%s`

// BuildIdentifyRequest renders the system and user prompts for one
// batch of page summaries.
func BuildIdentifyRequest(summaries string) (system, user string) {
	return identifySystemPrompt, fmt.Sprintf(identifyUserTemplate, summaries)
}

// IdentifyPages sends one batch of summaries and parses the answer.
func (c *Client) IdentifyPages(ctx context.Context, summaries string) (Findings, error) {
	system, user := BuildIdentifyRequest(summaries)
	raw, err := c.Complete(ctx, system, user)
	if err != nil {
		return Findings{}, err
	}
	return ParseFindings(raw)
}

// ParseFindings decodes a model response into Findings. Markdown fences
// are stripped first, and malformed JSON is repaired before decoding,
// since models sometimes emit trailing commas or unquoted keys.
func ParseFindings(raw string) (Findings, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return Findings{}, fmt.Errorf("empty model response")
	}

	repaired, err := jsonrepair.RepairJSON(cleaned)
	if err != nil {
		return Findings{}, fmt.Errorf("failed to repair model JSON: %w", err)
	}

	var f Findings
	if err := json.Unmarshal([]byte(repaired), &f); err != nil {
		return Findings{}, fmt.Errorf("failed to decode model JSON: %w", err)
	}
	return f, nil
}

// stripFences removes a surrounding markdown code fence if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
