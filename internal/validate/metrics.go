package validate

import "github.com/statementlens/pnlextract/internal/tables"

// Metrics are the derived figures for one reporting period.
type Metrics struct {
	Revenue          float64
	OtherIncome      float64
	TotalIncome      float64
	OperatingExpense float64
	OperatingProfit  float64
	EBITDA           float64
	FinanceCosts     float64
	ProfitBeforeTax  float64
	TaxExpense       float64
	ProfitAfterTax   float64
	OperatingMargin  float64
	EBITDAMargin     float64
	PBTMargin        float64
	PATMargin        float64
}

// ComputeMetrics derives operating profit, EBITDA and margins from the
// extracted line items for both periods. Margins are zero when revenue
// is zero.
func ComputeMetrics(st *tables.Statement) (current, previous Metrics) {
	return computePeriod(st, false), computePeriod(st, true)
}

func computePeriod(st *tables.Statement, previous bool) Metrics {
	get := func(name string) float64 {
		item := st.Item(name)
		if previous {
			return item.Previous
		}
		return item.Current
	}

	rev := get("Revenue from operations")
	opex := get("Cost of materials consumed") +
		get("Employee benefits expense") +
		get("Cost of professionals") +
		get("Depreciation and amortisation") +
		get("Other expenses")
	opProfit := rev - opex
	ebitda := opProfit + get("Depreciation and amortisation")

	m := Metrics{
		Revenue:          rev,
		OtherIncome:      get("Other income"),
		TotalIncome:      rev + get("Other income"),
		OperatingExpense: opex,
		OperatingProfit:  opProfit,
		EBITDA:           ebitda,
		FinanceCosts:     get("Finance costs"),
		ProfitBeforeTax:  get("Profit before tax"),
		TaxExpense:       get("Total tax expense"),
		ProfitAfterTax:   get("Profit for the year"),
	}
	if rev != 0 {
		m.OperatingMargin = opProfit / rev * 100
		m.EBITDAMargin = ebitda / rev * 100
		m.PBTMargin = m.ProfitBeforeTax / rev * 100
		m.PATMargin = m.ProfitAfterTax / rev * 100
	}
	return m
}
