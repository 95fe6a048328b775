package engine

import (
	"fmt"
	"math"

	"github.com/barmate/barmate/internal/model"
)

// PlanMark computes the cutting length of a bar mark from its segments and
// bends, then plans its stock usage. A mark with a preferred stock length is
// pinned to that length with a simple cuts-per-bar calculation; otherwise the
// optimizer picks the cheapest mix from the catalog.
func (o *Optimizer) PlanMark(mark *model.BarMark) error {
	cutMM := model.CutLengthMM(mark.SegmentsMM, mark.Diameter, mark.Bends90)
	if cutMM <= 0 {
		return fmt.Errorf("%w: mark %q has non-positive cutting length", ErrInvalidInput, mark.Label)
	}
	mark.CutLengthM = math.Round(cutMM) / 1000

	if mark.PreferredStock > 0 {
		bars, err := model.BarsRequired(mark.CutLengthM, mark.PreferredStock, mark.Units)
		if err != nil {
			return fmt.Errorf("mark %q: %w", mark.Label, err)
		}
		waste := float64(mark.PreferredStock)*float64(bars) - mark.CutLengthM*float64(mark.Units)
		mark.Usage = []model.StockUsage{{Stock: mark.PreferredStock, Bars: bars, Waste: waste}}
		return nil
	}

	req := model.CutRequirement{
		ID:       mark.ID,
		Label:    mark.Label,
		Length:   mark.CutLengthM,
		Quantity: mark.Units,
	}
	result, err := o.Optimize([]model.CutRequirement{req})
	if err != nil {
		return fmt.Errorf("mark %q: %w", mark.Label, err)
	}
	if len(result.Infeasible) > 0 {
		return fmt.Errorf("mark %q: %s", mark.Label, result.Infeasible[0].Reason)
	}
	mark.Usage = result.UsageByStock()
	return nil
}

// PlanSchedule plans every mark of a schedule in place. It stops at the first
// mark that cannot be planned.
func (o *Optimizer) PlanSchedule(schedule *model.Schedule) error {
	for i := range schedule.Marks {
		if err := o.PlanMark(&schedule.Marks[i]); err != nil {
			return err
		}
	}
	return nil
}
