package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/barmate/barmate/internal/model"
)

// ExportExcel writes a project workbook with three sheets: the bar bending
// schedule, the cutting plans, and the ordering summary.
func ExportExcel(path string, project model.Project) error {
	if len(project.Schedule.Marks) == 0 {
		return fmt.Errorf("no bar marks to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeScheduleSheet(f, project.Schedule); err != nil {
		return err
	}
	if project.Result != nil {
		if err := writePlansSheet(f, *project.Result); err != nil {
			return err
		}
	}
	if err := writeOrderSheet(f, project.Schedule); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeScheduleSheet(f *excelize.File, schedule model.Schedule) error {
	const sheet = "Schedule"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Mark", "Grade", "Location", "Segments (mm)", "Bends", "Units", "Cut Length (m)", "Stock Bars", "Cut Total (m)", "Weight (kg)"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, m := range schedule.Marks {
		values := []interface{}{
			m.Label,
			m.Grade(),
			m.Location,
			m.SegmentsString(),
			m.Bends90,
			m.Units,
			m.CutLengthM,
			m.StockBars(),
			m.TotalCutMetres(),
			model.SteelWeightKg(float64(m.Diameter), m.TotalCutMetres()),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	totalRow := len(schedule.Marks) + 3
	cell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, fmt.Sprintf("Total cut weight: %.2f kg", schedule.TotalWeightKg()))
}

func writePlansSheet(f *excelize.File, result model.OptimizationResult) error {
	const sheet = "Cutting Plans"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Bar", "Stock", "Pieces (m)", "Used (m)", "Waste (m)"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, p := range result.Plans {
		pieces := ""
		for i, piece := range p.Pieces {
			if i > 0 {
				pieces += " + "
			}
			pieces += fmt.Sprintf("%.3f", piece)
		}
		values := []interface{}{row + 1, p.Stock.String(), pieces, p.UsedLength(), p.Waste()}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	summaryRow := len(result.Plans) + 3
	cell, err := excelize.CoordinatesToCellName(1, summaryRow)
	if err != nil {
		return err
	}
	summary := fmt.Sprintf("Bars: %d  Waste: %.2f m  Utilization: %.1f%%",
		result.BarsUsed(), result.TotalWaste(), result.Utilization())
	if err := f.SetCellValue(sheet, cell, summary); err != nil {
		return err
	}

	for i, inf := range result.Infeasible {
		cell, err := excelize.CoordinatesToCellName(1, summaryRow+2+i)
		if err != nil {
			return err
		}
		text := fmt.Sprintf("UNPLANNED: %s %.3f m x %d (%s)",
			inf.Requirement.Label, inf.Requirement.Length, inf.Requirement.Quantity, inf.Reason)
		if err := f.SetCellValue(sheet, cell, text); err != nil {
			return err
		}
	}
	return nil
}

func writeOrderSheet(f *excelize.File, schedule model.Schedule) error {
	const sheet = "Order Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	summary := model.BuildOrderSummary(schedule)

	headers := []string{"Grade", "Stock", "Bars", "Metres", "Weight (kg)"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, line := range summary.Lines {
		values := []interface{}{line.Grade, line.Stock.String(), line.Bars, line.MetresM, line.KgM}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	totalRow := len(summary.Lines) + 3
	cell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return err
	}
	totals := fmt.Sprintf("Order: %.1f m / %.2f kg  Cut: %.1f m / %.2f kg  Offcut: %.2f kg",
		summary.TotalOrderedMetres, summary.TotalOrderedKg,
		summary.TotalCutMetres, summary.TotalCutKg, summary.WasteKg())
	return f.SetCellValue(sheet, cell, totals)
}
