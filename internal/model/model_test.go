package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Stock lengths and catalog ───────────────────────────────────────────────

func TestStockLength_String(t *testing.T) {
	assert.Equal(t, "6m", StockLength(6).String())
	assert.Equal(t, "7.5m", StockLength(7.5).String())
	assert.Equal(t, "12m", StockLength(12).String())
}

func TestParseStockLength(t *testing.T) {
	tests := []struct {
		in      string
		want    StockLength
		wantErr bool
	}{
		{"6", 6, false},
		{"7.5m", 7.5, false},
		{" 12 M ", 12, false},
		{"9.0", 9, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-6", 0, true},
		{"0", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseStockLength(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
		} else {
			require.NoError(t, err, "input %q", tt.in)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestCatalog_Validate(t *testing.T) {
	assert.NoError(t, DefaultCatalog().Validate())
	assert.Error(t, Catalog{}.Validate())
	assert.Error(t, Catalog{6, 0}.Validate())
	assert.Error(t, Catalog{6, -9}.Validate())
}

func TestCatalog_SortedDeduplicates(t *testing.T) {
	c := Catalog{12, 6, 9, 6, 7.5, 12}
	assert.Equal(t, Catalog{6, 7.5, 9, 12}, c.Sorted())
}

func TestCatalog_Max(t *testing.T) {
	assert.Equal(t, StockLength(12), DefaultCatalog().Max())
	assert.Equal(t, StockLength(0), Catalog{}.Max())
}

// ─── Cutting plans and results ───────────────────────────────────────────────

func TestCuttingPlan_Waste(t *testing.T) {
	p := CuttingPlan{Stock: 6, Pieces: []float64{4, 1.5}}
	assert.InDelta(t, 5.5, p.UsedLength(), 1e-9)
	assert.InDelta(t, 0.5, p.Waste(), 1e-9)
}

func TestCuttingPlan_WasteClampsFloatResidue(t *testing.T) {
	// Ten 0.6m pieces do not sum to exactly 6.0 in floating point.
	pieces := make([]float64, 10)
	for i := range pieces {
		pieces[i] = 0.6
	}
	p := CuttingPlan{Stock: 6, Pieces: pieces}
	assert.GreaterOrEqual(t, p.Waste(), 0.0)
	assert.InDelta(t, 0, p.Waste(), 1e-9)
}

func TestOptimizationResult_Aggregates(t *testing.T) {
	r := OptimizationResult{Plans: []CuttingPlan{
		{Stock: 6, Pieces: []float64{5.8}},
		{Stock: 6, Pieces: []float64{4, 2}},
		{Stock: 12, Pieces: []float64{11.5}},
	}}

	assert.Equal(t, 3, r.BarsUsed())
	assert.Equal(t, 4, r.PieceCount())
	assert.InDelta(t, 0.7, r.TotalWaste(), 1e-9)
	assert.InDelta(t, 24, r.TotalOrderedLength(), 1e-9)
	assert.InDelta(t, (24-0.7)/24*100, r.Utilization(), 1e-9)

	usage := r.UsageByStock()
	require.Len(t, usage, 2)
	assert.Equal(t, StockLength(6), usage[0].Stock)
	assert.Equal(t, 2, usage[0].Bars)
	assert.InDelta(t, 0.2, usage[0].Waste, 1e-9)
	assert.Equal(t, StockLength(12), usage[1].Stock)
	assert.Equal(t, 1, usage[1].Bars)
}

func TestOptimizationResult_EmptyUtilization(t *testing.T) {
	assert.Equal(t, 0.0, OptimizationResult{}.Utilization())
}

// ─── Bar marks and schedules ─────────────────────────────────────────────────

func TestBarMark_Grade(t *testing.T) {
	m := NewBarMark("A1", RebarHD, 12, []float64{1000}, 0, 1, "")
	assert.Equal(t, "HD12", m.Grade())

	m.Type = RebarD
	m.Diameter = 16
	assert.Equal(t, "D16", m.Grade())
}

func TestBarMark_SegmentsString(t *testing.T) {
	m := NewBarMark("A1", RebarHD, 12, []float64{200, 1000, 200}, 2, 1, "")
	assert.Equal(t, "200+1000+200", m.SegmentsString())
}

func TestBarMark_IDsAreShortAndUnique(t *testing.T) {
	a := NewBarMark("A", RebarHD, 12, []float64{1000}, 0, 1, "")
	b := NewBarMark("B", RebarHD, 12, []float64{1000}, 0, 1, "")
	assert.Len(t, a.ID, 8)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSchedule_TotalWeightKg(t *testing.T) {
	s := Schedule{Marks: []BarMark{
		{Diameter: 12, CutLengthM: 1.352, Units: 10},
		{Diameter: 16, CutLengthM: 4.25, Units: 4},
	}}
	want := SteelWeightKg(12, 13.52) + SteelWeightKg(16, 17)
	assert.InDelta(t, want, s.TotalWeightKg(), 0.01)
}

func TestNewProject_Defaults(t *testing.T) {
	p := NewProject()
	assert.Equal(t, "Untitled", p.Name)
	assert.Equal(t, DefaultCatalog(), p.Catalog)
	assert.Nil(t, p.Result)
}
