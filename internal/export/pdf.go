// Package export renders planned schedules and cutting plans to the file
// formats handed to the yard: PDF cutting sheets, spreadsheets, DXF drawings
// and QR-coded bundle tags.
package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/barmate/barmate/internal/model"
)

// pieceColor represents an RGB color for a cut piece.
type pieceColor struct {
	R, G, B int
}

// pieceColors mirrors the color scheme used in the UI results tab.
var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	barHeight    = 10.0
	barSpacing   = 8.0
	barLabelW    = 28.0
)

// ExportPDF generates a PDF for a cutting plan: a diagram page showing every
// stock bar with its cuts drawn to scale, followed by a summary page.
func ExportPDF(path string, result model.OptimizationResult) error {
	if len(result.Plans) == 0 {
		return fmt.Errorf("no cutting plans to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	maxStock := float64(maxStockLength(result))
	barsPerPage := diagramBarsPerPage()

	for i, plan := range result.Plans {
		if i%barsPerPage == 0 {
			pdf.AddPage()
			renderDiagramHeader(pdf, result)
		}
		y := marginTop + headerHeight + float64(i%barsPerPage)*(barHeight+barSpacing)
		renderBar(pdf, plan, i+1, y, maxStock)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// diagramBarsPerPage returns how many bar diagrams fit in the drawable area
// of one page.
func diagramBarsPerPage() int {
	drawable := pageHeight - marginTop - headerHeight - marginBottom
	return int(drawable / (barHeight + barSpacing))
}

// ExportSchedulePDF generates a bar bending schedule PDF: the schedule table,
// the ordering summary, and the cutting diagrams for the latest optimization
// if one is attached to the project.
func ExportSchedulePDF(path string, project model.Project) error {
	if len(project.Schedule.Marks) == 0 {
		return fmt.Errorf("no bar marks to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSchedulePage(pdf, project)

	if project.Result != nil && len(project.Result.Plans) > 0 {
		result := *project.Result
		maxStock := float64(maxStockLength(result))
		barsPerPage := diagramBarsPerPage()
		for i, plan := range result.Plans {
			if i%barsPerPage == 0 {
				pdf.AddPage()
				renderDiagramHeader(pdf, result)
			}
			y := marginTop + headerHeight + float64(i%barsPerPage)*(barHeight+barSpacing)
			renderBar(pdf, plan, i+1, y, maxStock)
		}

		pdf.AddPage()
		renderSummaryPage(pdf, result)
	}

	return pdf.OutputFileAndClose(path)
}

// maxStockLength returns the longest stock length used by any plan.
func maxStockLength(result model.OptimizationResult) model.StockLength {
	var max model.StockLength
	for _, p := range result.Plans {
		if p.Stock > max {
			max = p.Stock
		}
	}
	return max
}

// renderDiagramHeader draws the title and stats line of a diagram page.
func renderDiagramHeader(pdf *fpdf.Fpdf, result model.OptimizationResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 8, "Cutting Plan", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+8)
	stats := fmt.Sprintf("Bars: %d | Pieces: %d | Waste: %.2f m | Utilization: %.1f%%",
		result.BarsUsed(), result.PieceCount(), result.TotalWaste(), result.Utilization())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")
}

// renderBar draws one stock bar as a horizontal strip with its pieces drawn
// to scale and the waste hatched at the end.
func renderBar(pdf *fpdf.Fpdf, plan model.CuttingPlan, barNum int, y, maxStock float64) {
	drawWidth := pageWidth - marginLeft - marginRight - barLabelW
	scale := drawWidth / maxStock

	// Bar label on the left
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y+barHeight/2-2)
	pdf.CellFormat(barLabelW-2, 4, fmt.Sprintf("#%d  %s", barNum, plan.Stock), "", 0, "L", false, 0, "")

	barX := marginLeft + barLabelW
	barW := float64(plan.Stock) * scale

	// Bar outline
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(barX, y, barW, barHeight, "FD")

	// Pieces
	x := barX
	for i, piece := range plan.Pieces {
		col := pieceColors[i%len(pieceColors)]
		w := piece * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, w, barHeight, "FD")

		label := fmt.Sprintf("%.2f", piece)
		if pdf.GetStringWidth(label) < w-1 {
			pdf.SetFont("Helvetica", "", 7)
			pdf.SetXY(x+(w-pdf.GetStringWidth(label))/2, y+barHeight/2-1.5)
			pdf.CellFormat(pdf.GetStringWidth(label), 3, label, "", 0, "C", false, 0, "")
		}
		x += w
	}

	// Waste annotation
	if waste := plan.Waste(); waste > 0.005 {
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetTextColor(180, 0, 0)
		wasteLabel := fmt.Sprintf("%.2f waste", waste)
		pdf.SetXY(barX+barW+1, y+barHeight/2-1.5)
		if barX+barW+pdf.GetStringWidth(wasteLabel) < pageWidth-marginRight {
			pdf.CellFormat(pdf.GetStringWidth(wasteLabel), 3, wasteLabel, "", 0, "L", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
	}
}

// renderSchedulePage draws the bar bending schedule table.
func renderSchedulePage(pdf *fpdf.Fpdf, project model.Project) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Bar Bending Schedule: "+project.Name, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	colWidths := []float64{22, 20, 40, 52, 16, 16, 26, 24, 26, 25}
	headers := []string{"Mark", "Grade", "Location", "Segments (mm)", "Bends", "Units", "Cut Len (m)", "Stock Bars", "Cut Total (m)", "Weight (kg)"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	for i, m := range project.Schedule.Marks {
		if y > pageHeight-marginBottom-12 {
			pdf.AddPage()
			y = marginTop
		}

		rowData := []string{
			m.Label,
			m.Grade(),
			m.Location,
			m.SegmentsString(),
			fmt.Sprintf("%d", m.Bends90),
			fmt.Sprintf("%d", m.Units),
			fmt.Sprintf("%.3f", m.CutLengthM),
			fmt.Sprintf("%d", m.StockBars()),
			fmt.Sprintf("%.2f", m.TotalCutMetres()),
			fmt.Sprintf("%.2f", model.SteelWeightKg(float64(m.Diameter), m.TotalCutMetres())),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Totals line
	y += 4
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(120, 6, fmt.Sprintf("Total cut weight: %.2f kg", project.Schedule.TotalWeightKg()), "", 0, "L", false, 0, "")

	// Ordering summary table
	summary := model.BuildOrderSummary(project.Schedule)
	if len(summary.Lines) == 0 {
		return
	}

	y += 12
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Order Summary", "", 0, "L", false, 0, "")
	y += 9

	orderWidths := []float64{30, 30, 25, 35, 35}
	orderHeaders := []string{"Grade", "Stock", "Bars", "Metres", "Weight (kg)"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	xPos = marginLeft
	for i, header := range orderHeaders {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(orderWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += orderWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(255, 255, 255)
	for _, line := range summary.Lines {
		rowData := []string{
			line.Grade,
			line.Stock.String(),
			fmt.Sprintf("%d", line.Bars),
			fmt.Sprintf("%.1f", line.MetresM),
			fmt.Sprintf("%.2f", line.KgM),
		}
		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(orderWidths[j], 6, cell, "1", 0, "C", false, 0, "")
			xPos += orderWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(marginLeft, y+2)
	pdf.CellFormat(160, 6, fmt.Sprintf("Order: %.1f m / %.2f kg   Cut: %.1f m / %.2f kg   Offcut: %.2f kg",
		summary.TotalOrderedMetres, summary.TotalOrderedKg,
		summary.TotalCutMetres, summary.TotalCutKg, summary.WasteKg()), "", 0, "L", false, 0, "")
}

// renderSummaryPage draws the final summary page with stock usage statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.OptimizationResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutting Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Stock Bars Used", fmt.Sprintf("%d", result.BarsUsed())},
		{"Pieces Cut", fmt.Sprintf("%d", result.PieceCount())},
		{"Stock Ordered", fmt.Sprintf("%.2f m", result.TotalOrderedLength())},
		{"Total Waste", fmt.Sprintf("%.2f m", result.TotalWaste())},
		{"Utilization", fmt.Sprintf("%.1f%%", result.Utilization())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-stock breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Stock Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{40, 30, 40, 40}
	headers := []string{"Stock Length", "Bars", "Ordered (m)", "Waste (m)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, u := range result.UsageByStock() {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		rowData := []string{
			u.Stock.String(),
			fmt.Sprintf("%d", u.Bars),
			fmt.Sprintf("%.1f", float64(u.Stock)*float64(u.Bars)),
			fmt.Sprintf("%.2f", u.Waste),
		}
		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Infeasible requirements warning
	if len(result.Infeasible) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Requirements that could not be planned", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, inf := range result.Infeasible {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.3f m x %d (%s)",
				inf.Requirement.Label, inf.Requirement.Length, inf.Requirement.Quantity, inf.Reason)
			pdf.CellFormat(240, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BarMate - Rebar Cutting Optimizer", "", 0, "C", false, 0, "")
}
