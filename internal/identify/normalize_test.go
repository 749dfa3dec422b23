package identify

import "testing"

func TestHasPnLTitle(t *testing.T) {
	matches := []string{
		"Statement of Profit and Loss for the year ended 31 March 2024",
		"STATEMENT OF STANDALONE PROFIT AND LOSS",
		"Statement of Profit or Loss",
		"Profit & Loss Account",
		"Profit and Loss\nStatement",
		"Statement of Comprehensive Income",
		"Income and Expenditure Account",
		"Standalone P&L Statement",
		"Statement | of | Profit | and | Loss",
		"Statement of Profit – and – Loss",
	}
	for _, s := range matches {
		if !HasPnLTitle(s) {
			t.Errorf("HasPnLTitle(%q) = false, want true", s)
		}
	}

	nonMatches := []string{
		"Balance Sheet as at 31 March 2024",
		"Notes to the financial statements",
		"Directors' Report",
		"",
	}
	for _, s := range nonMatches {
		if HasPnLTitle(s) {
			t.Errorf("HasPnLTitle(%q) = true, want false", s)
		}
	}
}

func TestNormalize(t *testing.T) {
	in := "Profit and—Loss  |  Account\nfor FY2023/24"
	want := "profit and loss account for fy2023 24"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestHasStandaloneLabel(t *testing.T) {
	if !HasStandaloneLabel("standalone statement of profit and loss") {
		t.Error("expected standalone label")
	}
	if !HasStandaloneLabel("separate financial statements") {
		t.Error("expected separate label")
	}
	if HasStandaloneLabel("consolidated statement of profit and loss") {
		t.Error("consolidated is not a standalone label")
	}
}
