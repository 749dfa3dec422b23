package tables

import "testing"

func TestExtractItems(t *testing.T) {
	items, refs := extractItems(statementTable())

	want := map[string]struct{ curr, prev float64 }{
		"Revenue from operations":       {12345.67, 11234.56},
		"Other income":                  {234.50, 198.20},
		"Total income":                  {12580.17, 11432.76},
		"Employee benefits expense":     {3456.78, 3210.98},
		"Finance costs":                 {123.45, 145.67},
		"Depreciation and amortisation": {567.89, 534.21},
		"Other expenses":                {1234.56, 1198.76},
		"Total expenses":                {5382.68, 5089.62},
		"Profit before tax":             {7197.49, 6343.14},
		"Profit for the year":           {5397.49, 4757.14},
	}

	for name, w := range want {
		item, ok := items[name]
		if !ok {
			t.Errorf("missing item %q", name)
			continue
		}
		if item.Current != w.curr || item.Previous != w.prev {
			t.Errorf("%s = (%v, %v), want (%v, %v)", name, item.Current, item.Previous, w.curr, w.prev)
		}
	}

	if got := refs["Other expenses"]; got != "27" {
		t.Errorf("note ref for Other expenses = %q, want \"27\"", got)
	}
	if got := refs["Revenue from operations"]; got != "21" {
		t.Errorf("note ref for Revenue from operations = %q, want \"21\"", got)
	}
	if _, ok := refs["Total income"]; ok {
		t.Error("Total income has no note column entry, should have no ref")
	}
}

func TestExtractItemsNegativeValues(t *testing.T) {
	tbl := Table{Rows: [][]string{
		{"Profit before tax", "(123.45)", "678.90"},
		{"Deferred tax", "-", "12.00"},
		{"Current tax", "45.00", "Nil"},
	}}
	items, _ := extractItems(tbl)

	if item := items["Profit before tax"]; item.Current != -123.45 {
		t.Errorf("parenthesised value = %v, want -123.45", item.Current)
	}
	if item := items["Deferred tax"]; item.Current != 0 {
		t.Errorf("dash value = %v, want 0", item.Current)
	}
	if item := items["Current tax"]; item.Previous != 0 {
		t.Errorf("Nil value = %v, want 0", item.Previous)
	}
}

func TestMatchItem(t *testing.T) {
	eps := canonicalItem{Name: "Basic EPS", Patterns: []string{"basic"}}
	if !matchItem("Basic (in Rs.)", eps) {
		t.Error("EPS rows should prefix-match")
	}
	if matchItem("Earnings per share - basic and diluted note", eps) {
		t.Error("EPS must not match mid-label")
	}

	pbt := canonicalItem{Name: "Profit before tax", Patterns: []string{"profit before tax"}}
	if !matchItem("Profit / (loss) before tax and exceptional items", canonicalItem{
		Name: "Profit before tax", Patterns: []string{"profit before tax", "profit / (loss) before tax"},
	}) {
		t.Error("slash variant should match")
	}
	if matchItem("", pbt) {
		t.Error("empty label never matches")
	}
}
