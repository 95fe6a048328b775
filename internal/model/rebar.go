package model

import (
	"fmt"
	"math"
)

// StandardDiameters lists the deformed bar diameters stocked by suppliers, in mm.
var StandardDiameters = []int{10, 12, 16, 20, 25, 32}

// barsPerTonne maps stock length -> diameter (mm) -> number of bars per tonne.
// Values are the supplier conversion tables used for ordering.
var barsPerTonne = map[StockLength]map[int]int{
	6:   {10: 270, 12: 188, 16: 106, 20: 68, 25: 43, 32: 26},
	7.5: {10: 216, 12: 150, 16: 85, 20: 54, 25: 35, 32: 21},
	9:   {10: 180, 12: 125, 16: 70, 20: 45, 25: 29, 32: 18},
	12:  {10: 135, 12: 94, 16: 53, 20: 34, 25: 22, 32: 13},
}

// bendDeductions90 maps bar diameter (mm) to the length deduction (mm) applied
// per 90 degree bend when converting segment lengths to a cutting length.
var bendDeductions90 = map[int]float64{
	10: 20, 12: 24, 16: 32, 18: 36, 20: 40, 25: 50, 32: 64,
}

// Tonnage converts a bar count to tonnes for the given diameter and stock length.
func Tonnage(bars int, diameter int, stock StockLength) (float64, error) {
	perTonne, err := lookupBarsPerTonne(diameter, stock)
	if err != nil {
		return 0, err
	}
	return float64(bars) / float64(perTonne), nil
}

// BarsFromTonnage converts tonnes to a (fractional) bar count for the given
// diameter and stock length. Callers round up when ordering.
func BarsFromTonnage(tonnes float64, diameter int, stock StockLength) (float64, error) {
	perTonne, err := lookupBarsPerTonne(diameter, stock)
	if err != nil {
		return 0, err
	}
	return tonnes * float64(perTonne), nil
}

func lookupBarsPerTonne(diameter int, stock StockLength) (int, error) {
	byDiameter, ok := barsPerTonne[stock]
	if !ok {
		return 0, fmt.Errorf("no tonnage table for stock length %s", stock)
	}
	perTonne, ok := byDiameter[diameter]
	if !ok {
		return 0, fmt.Errorf("no tonnage table entry for diameter %dmm", diameter)
	}
	return perTonne, nil
}

// CutLengthMM computes the cutting length of a bent bar: the sum of its
// segment lengths minus the bend deduction for each 90 degree bend.
// All lengths in mm. Diameters without a deduction entry deduct nothing.
func CutLengthMM(segmentsMM []float64, diameter, bends90 int) float64 {
	var sum float64
	for _, s := range segmentsMM {
		sum += s
	}
	return sum - bendDeductions90[diameter]*float64(bends90)
}

// StirrupCutLengthMM computes the cutting length of a closed stirrup from its
// perimeter and bar diameter, assuming the standard shape: two 135 degree
// hooks of 10d each, with deductions for three 90 degree bends (2d each) and
// the two 135 degree bends (3d each). All lengths in mm.
func StirrupCutLengthMM(perimeterMM, diameterMM float64) float64 {
	hooks := 2 * (10 * diameterMM)
	deduction := 3*2*diameterMM + 2*3*diameterMM
	return perimeterMM + hooks - deduction
}

// PerimeterSquare returns the perimeter of a square stirrup shape.
func PerimeterSquare(side float64) float64 {
	return 4 * side
}

// PerimeterRectangle returns the perimeter of a rectangular stirrup shape.
func PerimeterRectangle(length, width float64) float64 {
	return 2 * (length + width)
}

// PerimeterCircle returns the circumference of a circular stirrup shape.
func PerimeterCircle(diameter float64) float64 {
	return math.Pi * diameter
}

// SteelWeightKg returns the weight in kg of a bar run, using the standard
// d^2/162.2 kg/m approximation, rounded to 2 decimal places.
func SteelWeightKg(diameterMM, lengthM float64) float64 {
	return math.Round(diameterMM*diameterMM/162.2*lengthM*100) / 100
}

// BarsRequired returns the number of stock bars needed to produce the given
// number of cuts, with each bar yielding floor(stock/cutLength) cuts.
func BarsRequired(cutLengthM float64, stock StockLength, cuts int) (int, error) {
	if cutLengthM <= 0 {
		return 0, fmt.Errorf("cut length must be positive, got %.3f", cutLengthM)
	}
	if cuts < 1 {
		return 0, fmt.Errorf("number of cuts must be at least 1, got %d", cuts)
	}
	cutsPerBar := math.Floor(float64(stock) / cutLengthM)
	if cutsPerBar < 1 {
		return 0, fmt.Errorf("cut length %.3fm exceeds stock length %s", cutLengthM, stock)
	}
	return int(math.Ceil(float64(cuts) / cutsPerBar)), nil
}
