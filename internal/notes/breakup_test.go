package notes

import (
	"testing"

	"github.com/statementlens/pnlextract/internal/tables"
)

func TestParseFromText(t *testing.T) {
	page := `27. Other expenses
(in INR million)
For the year ended March 31, 2024
Travelling and conveyance  123.45  98.76
Legal and professional charges  234.56  210.00
Rent  56.78  54.00
Power and fuel  89.01  85.50
Total  503.80  448.26
28. Finance costs
Interest on borrowings  12.00  10.00`

	b := ParseFromText([]string{page}, 0, "27")

	if len(b.Items) != 5 {
		t.Fatalf("items = %d, want 5: %+v", len(b.Items), b.Items)
	}
	first := b.Items[0]
	if first.Label != "Travelling and conveyance" || first.Current != 123.45 || first.Previous != 98.76 {
		t.Errorf("first item = %+v", first)
	}
	if b.Total == nil || b.Total.Label != "Total" || b.Total.Current != 503.80 {
		t.Errorf("total = %+v", b.Total)
	}
	for _, item := range b.Items {
		if item.Label == "Interest on borrowings" {
			t.Error("parsing must stop at the next note heading")
		}
	}
}

func TestParseFromTextLabelThenValues(t *testing.T) {
	// Extraction sometimes splits label and values onto separate lines.
	page := `27. Other expenses
Travelling and conveyance
123.45
98.76
Rent
56.78
54.00`

	b := ParseFromText([]string{page}, 0, "27")

	if len(b.Items) != 2 {
		t.Fatalf("items = %d, want 2: %+v", len(b.Items), b.Items)
	}
	if b.Items[0].Current != 123.45 || b.Items[0].Previous != 98.76 {
		t.Errorf("first item = %+v", b.Items[0])
	}
	if b.Items[1].Current != 56.78 || b.Items[1].Previous != 54.00 {
		t.Errorf("second item = %+v", b.Items[1])
	}
}

func TestParseFromTextStopsAtFootnotes(t *testing.T) {
	page := `27. Other expenses
Rent  56.78  54.00
Power  12.00  11.00
* Includes payments to statutory auditors as detailed below
Audit fees  3.00  2.50`

	b := ParseFromText([]string{page}, 0, "27")

	if len(b.Items) != 2 {
		t.Fatalf("items = %d, want 2: %+v", len(b.Items), b.Items)
	}
}

func TestParseFromTextMissingNote(t *testing.T) {
	b := ParseFromText([]string{"Nothing relevant here"}, 0, "27")
	if len(b.Items) != 0 || b.Total != nil {
		t.Errorf("expected empty breakup, got %+v", b)
	}
}

func TestParseFromTextSpansPages(t *testing.T) {
	pages := []string{
		"27. Other expenses\nRent  56.78  54.00",
		"Power and fuel  89.01  85.50\nTotal  145.79  139.50",
	}
	b := ParseFromText(pages, 0, "27")

	if len(b.Items) != 3 {
		t.Fatalf("items = %d, want 3: %+v", len(b.Items), b.Items)
	}
	if b.Total == nil || b.Total.Current != 145.79 {
		t.Errorf("total = %+v", b.Total)
	}
}

func TestParseFromTable(t *testing.T) {
	tbl := tables.Table{Rows: [][]string{
		{"27. Other expenses", "", ""},
		{"Particulars", "2023-24", "2022-23"},
		{"Travelling and conveyance", "123.45", "98.76"},
		{"Rent", "56.78", "54.00"},
		{"Power and fuel", "89.01", "85.50"},
		{"Total", "269.24", "238.26"},
	}}

	b := ParseFromTable(tbl, "27")

	if len(b.Items) != 4 {
		t.Fatalf("items = %d, want 4: %+v", len(b.Items), b.Items)
	}
	if b.Items[0].Label != "Travelling and conveyance" {
		t.Errorf("first item = %+v", b.Items[0])
	}
	if b.Total == nil || b.Total.Current != 269.24 || b.Total.Previous != 238.26 {
		t.Errorf("total = %+v", b.Total)
	}
}

func TestFindTotalFallsBackToLastRow(t *testing.T) {
	items := []tables.LineItem{
		{Label: "Rent", Current: 1},
		{Label: "Power", Current: 2},
	}
	total := findTotal(items)
	if total == nil || total.Label != "Power" {
		t.Errorf("total = %+v, want last row", total)
	}
}
