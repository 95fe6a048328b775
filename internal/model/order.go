package model

import (
	"math"
	"sort"
)

// OrderLine is one row of an ordering summary: the stock bars of one grade
// and one stock length that must be purchased.
type OrderLine struct {
	Grade   string      `json:"grade"`
	Stock   StockLength `json:"stock"`
	Bars    int         `json:"bars"`
	MetresM float64     `json:"metres"` // total linear metres ordered
	KgM     float64     `json:"kg"`     // total ordered weight
}

// OrderSummary is the purchasing view of a planned schedule: what to order,
// grouped by grade and stock length, against what will actually be cut.
type OrderSummary struct {
	Lines []OrderLine `json:"lines"`

	TotalOrderedMetres float64 `json:"total_ordered_metres"`
	TotalOrderedKg     float64 `json:"total_ordered_kg"`
	TotalCutMetres     float64 `json:"total_cut_metres"`
	TotalCutKg         float64 `json:"total_cut_kg"`
}

// WasteKg returns the weight of material ordered but not cut.
func (s OrderSummary) WasteKg() float64 {
	return math.Round((s.TotalOrderedKg-s.TotalCutKg)*100) / 100
}

// BuildOrderSummary aggregates the planned marks of a schedule into an
// ordering summary. Marks that have not been planned (no usage) contribute
// nothing to the ordered totals but still count toward the cut totals.
func BuildOrderSummary(schedule Schedule) OrderSummary {
	type key struct {
		grade string
		stock StockLength
	}
	lines := make(map[key]*OrderLine)

	var summary OrderSummary
	for _, m := range schedule.Marks {
		cutMetres := m.TotalCutMetres()
		summary.TotalCutMetres += cutMetres
		summary.TotalCutKg += SteelWeightKg(float64(m.Diameter), cutMetres)

		for _, u := range m.Usage {
			k := key{grade: m.Grade(), stock: u.Stock}
			line, ok := lines[k]
			if !ok {
				line = &OrderLine{Grade: m.Grade(), Stock: u.Stock}
				lines[k] = line
			}
			line.Bars += u.Bars
			metres := float64(u.Stock) * float64(u.Bars)
			line.MetresM += metres
			line.KgM += SteelWeightKg(float64(m.Diameter), metres)
		}
	}

	for _, line := range lines {
		summary.Lines = append(summary.Lines, *line)
		summary.TotalOrderedMetres += line.MetresM
		summary.TotalOrderedKg += line.KgM
	}
	sort.Slice(summary.Lines, func(i, j int) bool {
		if summary.Lines[i].Grade != summary.Lines[j].Grade {
			return summary.Lines[i].Grade < summary.Lines[j].Grade
		}
		return summary.Lines[i].Stock < summary.Lines[j].Stock
	})

	summary.TotalOrderedKg = math.Round(summary.TotalOrderedKg*100) / 100
	summary.TotalCutKg = math.Round(summary.TotalCutKg*100) / 100
	return summary
}
