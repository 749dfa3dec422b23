package llmsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFindings(t *testing.T) {
	t.Run("clean JSON", func(t *testing.T) {
		raw := `{
			"company_name": "Acme Industries Limited",
			"currency": "INR lakhs",
			"fiscal_year_current": "FY2024",
			"fiscal_year_previous": "FY2023",
			"pages": {"pnl": 142, "balance_sheet": 140, "cash_flow": 144, "notes_start": 150}
		}`
		f, err := ParseFindings(raw)
		require.NoError(t, err)
		assert.Equal(t, "Acme Industries Limited", f.CompanyName)
		require.NotNil(t, f.Pages.ProfitAndLoss)
		assert.Equal(t, 142, *f.Pages.ProfitAndLoss)
		require.NotNil(t, f.Pages.NotesStart)
		assert.Equal(t, 150, *f.Pages.NotesStart)
	})

	t.Run("fenced JSON with nulls", func(t *testing.T) {
		raw := "```json\n{\"company_name\": \"\", \"pages\": {\"pnl\": 12, \"balance_sheet\": null, \"cash_flow\": null, \"notes_start\": null}}\n```"
		f, err := ParseFindings(raw)
		require.NoError(t, err)
		require.NotNil(t, f.Pages.ProfitAndLoss)
		assert.Equal(t, 12, *f.Pages.ProfitAndLoss)
		assert.Nil(t, f.Pages.BalanceSheet)
	})

	t.Run("trailing comma is repaired", func(t *testing.T) {
		raw := `{"company_name": "Acme", "pages": {"pnl": 7,},}`
		f, err := ParseFindings(raw)
		require.NoError(t, err)
		require.NotNil(t, f.Pages.ProfitAndLoss)
		assert.Equal(t, 7, *f.Pages.ProfitAndLoss)
	})

	t.Run("empty response is an error", func(t *testing.T) {
		_, err := ParseFindings("   ")
		assert.Error(t, err)
	})
}

func TestFindingsMerge(t *testing.T) {
	p := func(n int) *int { return &n }

	first := Findings{
		CompanyName: "Acme Industries Limited",
		Pages:       FindingPages{ProfitAndLoss: p(142)},
	}
	second := Findings{
		CompanyName:       "Acme",
		FiscalYearCurrent: "FY2024",
		Pages:             FindingPages{ProfitAndLoss: p(300), NotesStart: p(150)},
	}

	first.Merge(second)

	assert.Equal(t, "Acme Industries Limited", first.CompanyName, "earlier batch keeps its value")
	assert.Equal(t, "FY2024", first.FiscalYearCurrent, "later batch fills gaps")
	assert.Equal(t, 142, *first.Pages.ProfitAndLoss, "earlier sighting wins")
	assert.Equal(t, 150, *first.Pages.NotesStart)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}

func TestNewDisabledWithoutKey(t *testing.T) {
	c, err := New(Config{}, nil)
	require.NoError(t, err)
	assert.False(t, c.Enabled())
}
