package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/barmate/barmate/internal/engine"
	"github.com/barmate/barmate/internal/model"
)

// buildCalculatorsPanel groups the standalone rebar calculators: cutting
// length, stirrup, tonnage conversion and steel weight.
func (a *App) buildCalculatorsPanel() fyne.CanvasObject {
	left := container.NewVBox(
		a.buildCutLengthCard(),
		a.buildStirrupCard(),
		a.buildBarSizeCard(),
	)
	right := container.NewVBox(
		a.buildTonnageCard(),
		a.buildWeightCard(),
	)
	return container.NewVScroll(container.NewGridWithColumns(2, left, right))
}

func diameterSelect(initial int) *widget.Select {
	options := make([]string, len(model.StandardDiameters))
	for i, d := range model.StandardDiameters {
		options[i] = strconv.Itoa(d)
	}
	sel := widget.NewSelect(options, nil)
	sel.SetSelected(strconv.Itoa(initial))
	return sel
}

func (a *App) buildCutLengthCard() fyne.CanvasObject {
	segmentsEntry := widget.NewEntry()
	segmentsEntry.SetPlaceHolder("e.g. 400,1000")
	diameter := diameterSelect(a.config.DefaultDiameter)
	bendsEntry := widget.NewEntry()
	bendsEntry.SetText("1")
	result := widget.NewLabel("")

	calcBtn := widget.NewButton("Calculate", func() {
		var segments []float64
		for _, f := range strings.Split(segmentsEntry.Text, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil || v <= 0 {
				result.SetText("Invalid segment lengths")
				return
			}
			segments = append(segments, v)
		}
		d, _ := strconv.Atoi(diameter.Selected)
		bends, err := strconv.Atoi(bendsEntry.Text)
		if err != nil || bends < 0 {
			result.SetText("Invalid bend count")
			return
		}
		cutMM := model.CutLengthMM(segments, d, bends)
		if cutMM <= 0 {
			result.SetText("Bend deductions exceed segment lengths")
			return
		}
		result.SetText(fmt.Sprintf("Cutting length: %.0f mm (%.3f m)", cutMM, cutMM/1000))
	})

	return widget.NewCard("Cutting Length", "Bent bar cutting length from segments",
		container.NewVBox(
			container.NewGridWithColumns(2, widget.NewLabel("Segments (mm):"), segmentsEntry),
			container.NewGridWithColumns(2, widget.NewLabel("Diameter (mm):"), diameter),
			container.NewGridWithColumns(2, widget.NewLabel("90° bends:"), bendsEntry),
			calcBtn,
			result,
		),
	)
}

func (a *App) buildStirrupCard() fyne.CanvasObject {
	shape := widget.NewSelect([]string{"Square", "Rectangle", "Circle"}, nil)
	shape.SetSelected("Square")
	dim1 := widget.NewEntry()
	dim1.SetPlaceHolder("Side / length / diameter (mm)")
	dim2 := widget.NewEntry()
	dim2.SetPlaceHolder("Width (rectangle only, mm)")
	diameter := diameterSelect(10)
	result := widget.NewLabel("")

	calcBtn := widget.NewButton("Calculate", func() {
		v1, err := strconv.ParseFloat(strings.TrimSpace(dim1.Text), 64)
		if err != nil || v1 <= 0 {
			result.SetText("Invalid dimensions")
			return
		}

		var perimeter float64
		switch shape.Selected {
		case "Square":
			perimeter = model.PerimeterSquare(v1)
		case "Rectangle":
			v2, err := strconv.ParseFloat(strings.TrimSpace(dim2.Text), 64)
			if err != nil || v2 <= 0 {
				result.SetText("Invalid dimensions")
				return
			}
			perimeter = model.PerimeterRectangle(v1, v2)
		case "Circle":
			perimeter = model.PerimeterCircle(v1)
		}

		d, _ := strconv.ParseFloat(diameter.Selected, 64)
		cutMM := model.StirrupCutLengthMM(perimeter, d)
		result.SetText(fmt.Sprintf("Cutting length: %.0f mm (%.3f m)", cutMM, cutMM/1000))
	})

	return widget.NewCard("Stirrup", "Closed stirrup cutting length with hooks",
		container.NewVBox(
			container.NewGridWithColumns(2, widget.NewLabel("Shape:"), shape),
			container.NewGridWithColumns(2, widget.NewLabel("Dimension 1:"), dim1),
			container.NewGridWithColumns(2, widget.NewLabel("Dimension 2:"), dim2),
			container.NewGridWithColumns(2, widget.NewLabel("Bar diameter (mm):"), diameter),
			calcBtn,
			result,
		),
	)
}

func (a *App) buildBarSizeCard() fyne.CanvasObject {
	lengthEntry := widget.NewEntry()
	lengthEntry.SetPlaceHolder("Cut length (m)")
	countEntry := widget.NewEntry()
	countEntry.SetPlaceHolder("Number of cuts")
	result := widget.NewLabel("")

	calcBtn := widget.NewButton("Find Best Stock", func() {
		length, err := strconv.ParseFloat(strings.TrimSpace(lengthEntry.Text), 64)
		if err != nil || length <= 0 {
			result.SetText("Invalid cut length")
			return
		}
		count, err := strconv.Atoi(strings.TrimSpace(countEntry.Text))
		if err != nil || count <= 0 {
			result.SetText("Invalid cut count")
			return
		}

		opt := engine.New(a.project.Catalog)
		res, err := opt.Optimize([]model.CutRequirement{
			model.NewCutRequirement("calc", length, count),
		})
		if err != nil {
			result.SetText(err.Error())
			return
		}
		if len(res.Infeasible) > 0 {
			result.SetText(res.Infeasible[0].Reason)
			return
		}

		var lines []string
		for _, u := range res.UsageByStock() {
			lines = append(lines, fmt.Sprintf("%d x %s", u.Bars, u.Stock))
		}
		result.SetText(fmt.Sprintf("Use %s,  waste %.3f m", strings.Join(lines, " + "), res.TotalWaste()))
	})

	return widget.NewCard("Optimal Bar Size", "Best stock lengths for a repeated cut",
		container.NewVBox(
			container.NewGridWithColumns(2, widget.NewLabel("Cut length (m):"), lengthEntry),
			container.NewGridWithColumns(2, widget.NewLabel("Cuts:"), countEntry),
			calcBtn,
			result,
		),
	)
}

func (a *App) buildTonnageCard() fyne.CanvasObject {
	barsEntry := widget.NewEntry()
	barsEntry.SetPlaceHolder("Bar count")
	tonnesEntry := widget.NewEntry()
	tonnesEntry.SetPlaceHolder("Tonnes")
	diameter := diameterSelect(a.config.DefaultDiameter)

	stocks := model.DefaultCatalog()
	stockOptions := make([]string, len(stocks))
	for i, s := range stocks {
		stockOptions[i] = s.String()
	}
	stockSel := widget.NewSelect(stockOptions, nil)
	stockSel.SetSelected(stockOptions[0])
	result := widget.NewLabel("")

	calcBtn := widget.NewButton("Convert", func() {
		d, _ := strconv.Atoi(diameter.Selected)
		stock, err := model.ParseStockLength(stockSel.Selected)
		if err != nil {
			result.SetText(err.Error())
			return
		}

		if bars, err := strconv.Atoi(strings.TrimSpace(barsEntry.Text)); err == nil && bars > 0 {
			t, err := model.Tonnage(bars, d, stock)
			if err != nil {
				result.SetText(err.Error())
				return
			}
			result.SetText(fmt.Sprintf("%d bars = %.3f tonnes", bars, t))
			return
		}
		if tonnes, err := strconv.ParseFloat(strings.TrimSpace(tonnesEntry.Text), 64); err == nil && tonnes > 0 {
			b, err := model.BarsFromTonnage(tonnes, d, stock)
			if err != nil {
				result.SetText(err.Error())
				return
			}
			result.SetText(fmt.Sprintf("%.3f tonnes = %.1f bars (order %d)", tonnes, b, int(math.Ceil(b))))
			return
		}
		result.SetText("Enter a bar count or a tonnage")
	})

	return widget.NewCard("Tonnage", "Convert between bar counts and tonnes",
		container.NewVBox(
			container.NewGridWithColumns(2, widget.NewLabel("Bars:"), barsEntry),
			container.NewGridWithColumns(2, widget.NewLabel("Tonnes:"), tonnesEntry),
			container.NewGridWithColumns(2, widget.NewLabel("Diameter (mm):"), diameter),
			container.NewGridWithColumns(2, widget.NewLabel("Stock length:"), stockSel),
			calcBtn,
			result,
		),
	)
}

func (a *App) buildWeightCard() fyne.CanvasObject {
	diameter := diameterSelect(a.config.DefaultDiameter)
	lengthEntry := widget.NewEntry()
	lengthEntry.SetPlaceHolder("Total length (m)")
	result := widget.NewLabel("")

	calcBtn := widget.NewButton("Calculate", func() {
		d, _ := strconv.ParseFloat(diameter.Selected, 64)
		length, err := strconv.ParseFloat(strings.TrimSpace(lengthEntry.Text), 64)
		if err != nil || length <= 0 {
			result.SetText("Invalid length")
			return
		}
		kg := model.SteelWeightKg(d, length)
		result.SetText(fmt.Sprintf("%.2f kg  (%.3f kg/m)", kg, d*d/162.2))
	})

	return widget.NewCard("Steel Weight", "Weight of a bar run at d²/162.2 kg/m",
		container.NewVBox(
			container.NewGridWithColumns(2, widget.NewLabel("Diameter (mm):"), diameter),
			container.NewGridWithColumns(2, widget.NewLabel("Length (m):"), lengthEntry),
			calcBtn,
			result,
		),
	)
}
