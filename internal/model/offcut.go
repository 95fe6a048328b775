package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut is a usable bar remnant left over after cutting: long enough to be
// worth keeping for a later job rather than scrapping.
type Offcut struct {
	ID        string      `json:"id"`
	Stock     StockLength `json:"stock"`      // stock length it was cut from
	Length    float64     `json:"length"`     // usable remnant length in metres
	PlanIndex int         `json:"plan_index"` // index of the source plan in the result
	Grade     string      `json:"grade,omitempty"`
}

// MinOffcutLength is the minimum remnant length (metres) worth keeping.
// Anything shorter is waste.
const MinOffcutLength = 0.5

// DetectOffcuts scans an optimization result and returns the remnants long
// enough to reuse, sorted longest first.
func DetectOffcuts(result OptimizationResult) []Offcut {
	var offcuts []Offcut
	for i, plan := range result.Plans {
		w := plan.Waste()
		if w < MinOffcutLength {
			continue
		}
		offcuts = append(offcuts, Offcut{
			ID:        uuid.New().String()[:8],
			Stock:     plan.Stock,
			Length:    w,
			PlanIndex: i,
		})
	}
	sort.Slice(offcuts, func(i, j int) bool { return offcuts[i].Length > offcuts[j].Length })
	return offcuts
}

// ToCatalogEntry converts an offcut into a stock length so it can be added
// to a later run's catalog for reuse.
func (o Offcut) ToCatalogEntry() StockLength {
	return StockLength(o.Length)
}

// TotalOffcutLength returns the combined length of all offcuts in metres.
func TotalOffcutLength(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Length
	}
	return total
}
