package identify

import (
	"strings"
	"testing"
)

func TestIsLikelyTOC(t *testing.T) {
	t.Run("contents heading", func(t *testing.T) {
		text := "Contents\nCorporate Overview\nStatutory Reports\nFinancial Statements"
		if !IsLikelyTOC(text) {
			t.Error("expected TOC for contents heading")
		}
	})

	t.Run("entries ending in page numbers", func(t *testing.T) {
		var lines []string
		entries := []string{
			"Notice of AGM 4",
			"Board's Report 12",
			"Balance Sheet 51",
			"Statement of Profit and Loss 52",
			"Cash Flow Statement 54",
			"Notes to Financial Statements 56-98",
		}
		lines = append(lines, "Annual Report 2023-24")
		lines = append(lines, entries...)
		if !IsLikelyTOC(strings.Join(lines, "\n")) {
			t.Error("expected TOC for page-number entries")
		}
	})

	t.Run("dotted leaders", func(t *testing.T) {
		text := strings.Repeat("Some Section ........... 42\n", 6)
		if !IsLikelyTOC(text) {
			t.Error("expected TOC for dotted leaders")
		}
	})

	t.Run("statement page with values is not a TOC", func(t *testing.T) {
		text := "Statement of Profit and Loss\n" +
			"Revenue from operations 12,345.67\n" +
			"Other income 234.50\n" +
			"Total income 12,580.17\n" +
			"Employee benefits expense 3,456.78\n" +
			"Profit before tax 2,100.45\n"
		if IsLikelyTOC(text) {
			t.Error("statement page misdetected as TOC")
		}
	})

	t.Run("empty page", func(t *testing.T) {
		if IsLikelyTOC("   \n  ") {
			t.Error("empty page is not a TOC")
		}
	})

	t.Run("embedded word is not a heading", func(t *testing.T) {
		text := "Shareholder discontents were noted at the meeting\n" +
			"and the resolution was carried by a show of hands.\n" +
			"The meeting closed with a vote of thanks."
		if IsLikelyTOC(text) {
			t.Error("embedded word misdetected as TOC heading")
		}
	})
}
