package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// StockLength is a standard manufactured bar length in metres.
type StockLength float64

// Metres returns the stock length as a plain float64.
func (s StockLength) Metres() float64 {
	return float64(s)
}

// String formats the stock length the way suppliers quote it, e.g. "6m" or "7.5m".
func (s StockLength) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64) + "m"
}

// ParseStockLength parses strings like "7.5m", "7.5" or "12 m".
func ParseStockLength(str string) (StockLength, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(strings.ToLower(str)), "m")
	v, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid stock length %q", str)
	}
	if v <= 0 {
		return 0, fmt.Errorf("stock length must be positive, got %q", str)
	}
	return StockLength(v), nil
}

// Catalog is the fixed set of stock lengths available for an optimization run.
// It is treated as immutable once passed to the optimizer.
type Catalog []StockLength

// DefaultCatalog returns the standard supplier catalog: 6m, 7.5m, 9m and 12m bars.
func DefaultCatalog() Catalog {
	return Catalog{6, 7.5, 9, 12}
}

// Validate checks that the catalog is non-empty and strictly positive.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	for _, s := range c {
		if s <= 0 {
			return fmt.Errorf("catalog contains non-positive stock length %v", float64(s))
		}
	}
	return nil
}

// Sorted returns a copy of the catalog sorted ascending with duplicates removed.
func (c Catalog) Sorted() Catalog {
	seen := make(map[StockLength]bool, len(c))
	out := make(Catalog, 0, len(c))
	for _, s := range c {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Max returns the largest stock length in the catalog, or 0 for an empty catalog.
func (c Catalog) Max() StockLength {
	var max StockLength
	for _, s := range c {
		if s > max {
			max = s
		}
	}
	return max
}

// CutRequirement is a required piece length and how many pieces are needed.
// Length is in metres.
type CutRequirement struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Length   float64 `json:"length"`
	Quantity int     `json:"quantity"`
}

func NewCutRequirement(label string, length float64, qty int) CutRequirement {
	return CutRequirement{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Length:   length,
		Quantity: qty,
	}
}

// InfeasibleRequirement records a requirement that cannot be cut from any
// catalog stock length, with a human-readable reason.
type InfeasibleRequirement struct {
	Requirement CutRequirement `json:"requirement"`
	Reason      string         `json:"reason"`
}

// CuttingPlan assigns one or more pieces to a single stock bar.
// Pieces are stored in the order they were packed (descending length).
type CuttingPlan struct {
	Stock  StockLength `json:"stock"`
	Pieces []float64   `json:"pieces"`
}

// UsedLength returns the total length of all pieces assigned to the bar.
func (p CuttingPlan) UsedLength() float64 {
	var total float64
	for _, piece := range p.Pieces {
		total += piece
	}
	return total
}

// Waste returns the offcut remaining after all assigned pieces are cut.
// Sub-micron float residue is clamped to zero; a genuinely negative value
// indicates a packing bug and is surfaced by the optimizer's invariant check.
func (p CuttingPlan) Waste() float64 {
	w := float64(p.Stock) - p.UsedLength()
	if w < 0 && w > -1e-9 {
		return 0
	}
	return w
}

// StockUsage aggregates bar count and waste for a single stock length.
type StockUsage struct {
	Stock StockLength `json:"stock"`
	Bars  int         `json:"bars"`
	Waste float64     `json:"waste"`
}

// OptimizationResult is the full solution: one CuttingPlan per stock bar
// consumed, covering every feasible piece exactly once, plus the
// requirements that could not be planned.
type OptimizationResult struct {
	Plans      []CuttingPlan           `json:"plans"`
	Infeasible []InfeasibleRequirement `json:"infeasible,omitempty"`
}

// TotalWaste returns the summed waste across all plans.
func (r OptimizationResult) TotalWaste() float64 {
	var total float64
	for _, p := range r.Plans {
		total += p.Waste()
	}
	return total
}

// BarsUsed returns the total number of stock bars consumed.
func (r OptimizationResult) BarsUsed() int {
	return len(r.Plans)
}

// PieceCount returns the number of pieces covered by the plans.
func (r OptimizationResult) PieceCount() int {
	var n int
	for _, p := range r.Plans {
		n += len(p.Pieces)
	}
	return n
}

// UsageByStock groups bar counts and waste by stock length, sorted ascending.
func (r OptimizationResult) UsageByStock() []StockUsage {
	byStock := make(map[StockLength]*StockUsage)
	for _, p := range r.Plans {
		u, ok := byStock[p.Stock]
		if !ok {
			u = &StockUsage{Stock: p.Stock}
			byStock[p.Stock] = u
		}
		u.Bars++
		u.Waste += p.Waste()
	}

	usage := make([]StockUsage, 0, len(byStock))
	for _, u := range byStock {
		usage = append(usage, *u)
	}
	sort.Slice(usage, func(i, j int) bool { return usage[i].Stock < usage[j].Stock })
	return usage
}

// TotalOrderedLength returns the total metres of stock consumed.
func (r OptimizationResult) TotalOrderedLength() float64 {
	var total float64
	for _, p := range r.Plans {
		total += float64(p.Stock)
	}
	return total
}

// Utilization returns the percentage of ordered stock that ends up as pieces.
func (r OptimizationResult) Utilization() float64 {
	ordered := r.TotalOrderedLength()
	if ordered == 0 {
		return 0
	}
	return (ordered - r.TotalWaste()) / ordered * 100.0
}

// RebarType is the deformed bar designation prefix: "D" (grade 300) or "HD" (grade 500).
type RebarType string

const (
	RebarD  RebarType = "D"
	RebarHD RebarType = "HD"
)

// BarMark is one row of a bar bending schedule: a labelled bar shape with
// its segment lengths, bend count and unit count, plus the stock planning
// outcome once the mark has been run through the optimizer.
type BarMark struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Type       RebarType `json:"type"`
	Diameter   int       `json:"diameter"` // mm
	Location   string    `json:"location"`
	SegmentsMM []float64 `json:"segments_mm"`
	Bends90    int       `json:"bends_90"`
	Units      int       `json:"units"`

	// PreferredStock pins the mark to a specific stock length;
	// zero means "let the optimizer choose".
	PreferredStock StockLength `json:"preferred_stock,omitempty"`

	// Computed by engine.PlanMark.
	CutLengthM float64      `json:"cut_length_m,omitempty"`
	Usage      []StockUsage `json:"usage,omitempty"`
}

func NewBarMark(label string, rebarType RebarType, diameter int, segmentsMM []float64, bends90, units int, location string) BarMark {
	return BarMark{
		ID:         uuid.New().String()[:8],
		Label:      label,
		Type:       rebarType,
		Diameter:   diameter,
		Location:   location,
		SegmentsMM: segmentsMM,
		Bends90:    bends90,
		Units:      units,
	}
}

// Grade returns the bar designation, e.g. "HD12".
func (b BarMark) Grade() string {
	return fmt.Sprintf("%s%d", b.Type, b.Diameter)
}

// StockBars returns the total stock bars planned for this mark.
func (b BarMark) StockBars() int {
	var n int
	for _, u := range b.Usage {
		n += u.Bars
	}
	return n
}

// TotalCutMetres returns the linear metres of bar actually cut for this mark.
func (b BarMark) TotalCutMetres() float64 {
	return b.CutLengthM * float64(b.Units)
}

// SegmentsString renders the segment lengths as "200+1000+200".
func (b BarMark) SegmentsString() string {
	parts := make([]string, len(b.SegmentsMM))
	for i, s := range b.SegmentsMM {
		parts[i] = strconv.FormatFloat(s, 'f', -1, 64)
	}
	return strings.Join(parts, "+")
}

// Schedule is an ordered bar bending schedule.
type Schedule struct {
	Name  string    `json:"name"`
	Marks []BarMark `json:"marks"`
}

// TotalWeightKg returns the total cut steel weight of the schedule in kg.
func (s Schedule) TotalWeightKg() float64 {
	var total float64
	for _, m := range s.Marks {
		total += SteelWeightKg(float64(m.Diameter), m.TotalCutMetres())
	}
	return math.Round(total*100) / 100
}

// Project ties a schedule, its catalog and the latest optimization together
// for save/load.
type Project struct {
	Name     string              `json:"name"`
	Schedule Schedule            `json:"schedule"`
	Catalog  Catalog             `json:"catalog"`
	Result   *OptimizationResult `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Schedule: Schedule{Name: "Untitled"},
		Catalog:  DefaultCatalog(),
	}
}
