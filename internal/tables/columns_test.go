package tables

import "testing"

func statementTable() Table {
	return Table{Rows: [][]string{
		{"", "Note", "2023-24", "2022-23"},
		{"Revenue from operations", "21", "12,345.67", "11,234.56"},
		{"Other income", "22", "234.50", "198.20"},
		{"Total income", "", "12,580.17", "11,432.76"},
		{"Employee benefits expense", "24", "3,456.78", "3,210.98"},
		{"Finance costs", "25", "123.45", "145.67"},
		{"Depreciation and amortisation", "26", "567.89", "534.21"},
		{"Other expenses", "27", "1,234.56", "1,198.76"},
		{"Total expenses", "", "5,382.68", "5,089.62"},
		{"Profit before tax", "", "7,197.49", "6,343.14"},
		{"Profit for the year", "", "5,397.49", "4,757.14"},
	}}
}

func TestIdentifyColumns(t *testing.T) {
	t.Run("note column excluded from values", func(t *testing.T) {
		label, curr, prev := IdentifyColumns(statementTable())
		if label != 0 {
			t.Errorf("label = %d, want 0", label)
		}
		if curr != 2 {
			t.Errorf("current = %d, want 2", curr)
		}
		if prev != 3 {
			t.Errorf("previous = %d, want 3", prev)
		}
	})

	t.Run("ordinal column excluded", func(t *testing.T) {
		tbl := Table{Rows: [][]string{
			{"Particulars", "", "2024", "2023"},
			{"Revenue from operations", "I", "1,100.00", "1,000.00"},
			{"Other income", "II", "110.00", "100.00"},
			{"Total income", "III", "1,210.00", "1,100.00"},
			{"Total expenses", "IV", "800.00", "750.00"},
			{"Profit before tax", "V", "410.00", "350.00"},
		}}
		_, curr, prev := IdentifyColumns(tbl)
		if curr != 2 || prev != 3 {
			t.Errorf("columns = (%d, %d), want (2, 3)", curr, prev)
		}
	})

	t.Run("single value column", func(t *testing.T) {
		tbl := Table{Rows: [][]string{
			{"Revenue from operations", "1,100.00"},
			{"Other income", "110.00"},
			{"Total income", "1,210.00"},
		}}
		_, curr, prev := IdentifyColumns(tbl)
		if curr != 1 {
			t.Errorf("current = %d, want 1", curr)
		}
		if prev != -1 {
			t.Errorf("previous = %d, want -1", prev)
		}
	})

	t.Run("column with one stray numeric cell excluded", func(t *testing.T) {
		// Ten rows put the 15% threshold at two numeric cells, so a
		// trailing remarks column with a single figure must not be
		// mistaken for the previous-year column.
		tbl := Table{Rows: [][]string{
			{"Particulars", "2023-24", "2022-23", "Remarks"},
			{"Revenue from operations", "1,100.00", "1,000.00", ""},
			{"Other income", "110.00", "100.00", ""},
			{"Total income", "1,210.00", "1,100.00", ""},
			{"Employee benefits expense", "300.00", "280.00", "restated"},
			{"Finance costs", "45.00", "50.00", ""},
			{"Other expenses", "200.00", "190.00", "42.00"},
			{"Total expenses", "545.00", "520.00", ""},
			{"Profit before tax", "665.00", "580.00", ""},
			{"Profit for the year", "500.00", "435.00", ""},
		}}
		_, curr, prev := IdentifyColumns(tbl)
		if curr != 1 || prev != 2 {
			t.Errorf("columns = (%d, %d), want (1, 2)", curr, prev)
		}
	})

	t.Run("sparse table falls back to last columns", func(t *testing.T) {
		tbl := Table{Rows: [][]string{
			{"Heading", "middle", "right"},
			{"Label only", "text", "more text"},
			{"Another label", "text", "text"},
		}}
		_, curr, prev := IdentifyColumns(tbl)
		if curr != 1 || prev != 2 {
			t.Errorf("columns = (%d, %d), want (1, 2)", curr, prev)
		}
	})
}

func TestIsOrdinalColumn(t *testing.T) {
	tbl := Table{Rows: [][]string{
		{"Revenue", "I.", "12.50"},
		{"Expenses", "II.", "13.75"},
		{"Profit", "III.", "1,400"},
		{"Tax", "", "15"},
	}}
	if !isOrdinalColumn(tbl, 1) {
		t.Error("roman numeral column should be ordinal")
	}
	if isOrdinalColumn(tbl, 2) {
		t.Error("value column is not ordinal")
	}
	if isOrdinalColumn(tbl, 0) {
		t.Error("label column is not ordinal")
	}
}
