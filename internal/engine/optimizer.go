// Package engine implements the waste-minimizing stock length optimizer.
//
// Given a list of required cut lengths and a fixed catalog of stock bar
// lengths, it assigns every piece to a stock bar using a first-fit-decreasing
// heuristic: pieces are sorted longest first, each new bar is opened with the
// stock length that leaves the least waste for the pieces it can take, and
// ties go to the shorter bar. The result is deterministic for a given input.
package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/barmate/barmate/internal/model"
)

var (
	// ErrInvalidInput is returned for inputs rejected before optimization
	// begins: non-positive lengths or quantities, or an empty catalog.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvariantViolation indicates a completed plan whose pieces exceed
	// its stock length. It means a bug in pattern construction, not bad input.
	ErrInvariantViolation = errors.New("internal invariant violation")
)

// fitEps is the tolerance, in metres, used for capacity comparisons. It
// absorbs float summation residue only; it is kept below the Waste clamp
// window so a piece admitted at the boundary can never drive a plan's waste
// negative. Anything further over capacity is a real overrun and the piece
// goes to another bar, or to the infeasible list.
const fitEps = 1e-10

// Optimizer plans cut requirements against a fixed stock catalog.
// It holds no mutable state and is safe for concurrent use.
type Optimizer struct {
	Catalog model.Catalog
}

func New(catalog model.Catalog) *Optimizer {
	return &Optimizer{Catalog: catalog}
}

// Optimize computes a cutting plan covering every unit of every feasible
// requirement exactly once. Requirements whose length exceeds the largest
// catalog entry are collected into the result's Infeasible list rather than
// aborting the run, so the caller sees the full picture in one response.
//
// Invalid input (non-positive length or quantity, empty catalog) is rejected
// up front with ErrInvalidInput. An empty requirement list yields an empty
// result.
func (o *Optimizer) Optimize(requirements []model.CutRequirement) (model.OptimizationResult, error) {
	catalog := o.Catalog.Sorted()
	if err := catalog.Validate(); err != nil {
		return model.OptimizationResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, r := range requirements {
		if r.Length <= 0 {
			return model.OptimizationResult{}, fmt.Errorf("%w: requirement %q has non-positive length %.3f", ErrInvalidInput, r.Label, r.Length)
		}
		if r.Quantity < 1 {
			return model.OptimizationResult{}, fmt.Errorf("%w: requirement %q has non-positive quantity %d", ErrInvalidInput, r.Label, r.Quantity)
		}
	}

	var result model.OptimizationResult
	maxStock := catalog[len(catalog)-1]

	// Expand quantities into individual pieces, setting aside requirements
	// that no stock bar can produce.
	var pieces []float64
	for _, r := range requirements {
		if r.Length > float64(maxStock)+fitEps {
			result.Infeasible = append(result.Infeasible, model.InfeasibleRequirement{
				Requirement: r,
				Reason:      fmt.Sprintf("piece length %.3fm exceeds largest stock length %s", r.Length, maxStock),
			})
			continue
		}
		for i := 0; i < r.Quantity; i++ {
			pieces = append(pieces, r.Length)
		}
	}

	// First-fit-decreasing: longest pieces placed first.
	sort.Sort(sort.Reverse(sort.Float64Slice(pieces)))

	remaining := pieces
	for len(remaining) > 0 {
		stock := o.selectStock(catalog, remaining)
		plan, rest := packBar(stock, remaining)
		if plan.Waste() < 0 {
			return result, fmt.Errorf("%w: plan on %s bar overpacked by %.6fm", ErrInvariantViolation, stock, -plan.Waste())
		}
		result.Plans = append(result.Plans, plan)
		remaining = rest
	}

	return result, nil
}

// selectStock picks the stock length for the next bar: the one whose
// trial-packed bar (opened for the current largest pending piece and filled
// greedily) leaves the least waste. The catalog is iterated ascending, so a
// tie keeps the shorter bar.
func (o *Optimizer) selectStock(catalog model.Catalog, pending []float64) model.StockLength {
	largest := pending[0]
	best := catalog[len(catalog)-1]
	bestWaste := math.Inf(1)

	for _, stock := range catalog {
		if largest > float64(stock)+fitEps {
			continue
		}
		plan, _ := packBar(stock, pending)
		if waste := plan.Waste(); waste < bestWaste-fitEps {
			best = stock
			bestWaste = waste
		}
	}
	return best
}

// packBar opens one bar of the given stock length and fills it from the
// pending pieces, largest-fits-first. Pending must be sorted descending.
// It returns the completed plan and the pieces left over.
func packBar(stock model.StockLength, pending []float64) (model.CuttingPlan, []float64) {
	plan := model.CuttingPlan{Stock: stock}
	capacity := float64(stock)

	var rest []float64
	for _, piece := range pending {
		if piece <= capacity+fitEps {
			plan.Pieces = append(plan.Pieces, piece)
			capacity -= piece
		} else {
			rest = append(rest, piece)
		}
	}
	return plan, rest
}
