// Package ui implements the Fyne desktop interface: the bar bending schedule
// editor, the stock catalog, the rebar calculators and the results view.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/barmate/barmate/internal/engine"
	"github.com/barmate/barmate/internal/export"
	cutimporter "github.com/barmate/barmate/internal/importer"
	"github.com/barmate/barmate/internal/model"
	"github.com/barmate/barmate/internal/project"
	"github.com/barmate/barmate/internal/version"
)

// App holds all application state and UI references.
type App struct {
	window  fyne.Window
	config  model.AppConfig
	project model.Project
	tabs    *container.AppTabs

	// UI references for dynamic updates
	scheduleContainer *fyne.Container
	catalogContainer  *fyne.Container
	resultContainer   *fyne.Container
}

func NewApp(window fyne.Window) *App {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		config = model.DefaultAppConfig()
	}
	p := model.NewProject()
	p.Catalog = config.Catalog()
	return &App{
		window:  window,
		config:  config,
		project: p,
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.project = model.NewProject()
			a.project.Catalog = a.config.Catalog()
			a.refreshScheduleList()
			a.refreshCatalogList()
			a.refreshResults()
		}),
		fyne.NewMenuItem("Open Project...", func() {
			a.loadProject()
		}),
		fyne.NewMenuItem("Save Project...", func() {
			a.saveProject()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Cut List...", func() {
			a.importCutList()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Schedule PDF...", func() {
			a.exportSchedulePDF()
		}),
		fyne.NewMenuItem("Export Workbook...", func() {
			a.exportWorkbook()
		}),
		fyne.NewMenuItem("Export Bend Shapes DXF...", func() {
			a.exportDXF()
		}),
		fyne.NewMenuItem("Export Bundle Tags...", func() {
			a.exportTags()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	// Edit Menu
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Clear All Bar Marks", func() {
			a.project.Schedule.Marks = nil
			a.project.Result = nil
			a.refreshScheduleList()
			a.refreshResults()
		}),
		fyne.NewMenuItem("Reset Catalog to Default", func() {
			a.project.Catalog = model.DefaultCatalog()
			a.refreshCatalogList()
		}),
	)

	// Tools Menu
	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Optimize", func() {
			a.runOptimize()
			a.tabs.SelectIndex(3) // Switch to Results tab
		}),
	)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(
		fileMenu,
		editMenu,
		toolsMenu,
		helpMenu,
	))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About BarMate",
		"BarMate — Rebar Cutting Optimizer\n\n"+
			"A cross-platform desktop application for planning\n"+
			"waste-minimizing rebar cutting and bar bending schedules.\n\n"+
			"Version "+version.Version,
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	scheduleTab := container.NewTabItem("Schedule", a.buildSchedulePanel())
	catalogTab := container.NewTabItem("Stock Catalog", a.buildCatalogPanel())
	calculatorsTab := container.NewTabItem("Calculators", a.buildCalculatorsPanel())
	resultsTab := container.NewTabItem("Results", a.buildResultsPanel())

	a.tabs = container.NewAppTabs(scheduleTab, catalogTab, calculatorsTab, resultsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return a.tabs
}

// ─── Schedule Panel ────────────────────────────────────────

func (a *App) buildSchedulePanel() fyne.CanvasObject {
	a.scheduleContainer = container.NewVBox()
	a.refreshScheduleList()

	addBtn := widget.NewButtonWithIcon("Add Bar Mark", theme.ContentAddIcon(), func() {
		a.showAddMarkDialog()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Bar Bending Schedule", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.scheduleContainer),
	)
}

func (a *App) refreshScheduleList() {
	a.scheduleContainer.RemoveAll()

	if len(a.project.Schedule.Marks) == 0 {
		a.scheduleContainer.Add(widget.NewLabel("No bar marks yet. Click 'Add Bar Mark' to begin."))
		return
	}

	header := container.NewGridWithColumns(8,
		widget.NewLabelWithStyle("Mark", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Grade", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Segments (mm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Bends", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Units", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Location", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.scheduleContainer.Add(header)
	a.scheduleContainer.Add(widget.NewSeparator())

	for i := range a.project.Schedule.Marks {
		idx := i // capture
		m := a.project.Schedule.Marks[idx]
		row := container.NewGridWithColumns(8,
			widget.NewLabel(m.Label),
			widget.NewLabel(m.Grade()),
			widget.NewLabel(m.SegmentsString()),
			widget.NewLabel(fmt.Sprintf("%d", m.Bends90)),
			widget.NewLabel(fmt.Sprintf("%d", m.Units)),
			widget.NewLabel(m.Location),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showEditMarkDialog(idx)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.project.Schedule.Marks = append(a.project.Schedule.Marks[:idx], a.project.Schedule.Marks[idx+1:]...)
				a.refreshScheduleList()
			}),
		)
		a.scheduleContainer.Add(row)
	}
}

// markForm bundles the entry widgets of the add/edit bar mark dialogs.
type markForm struct {
	label    *widget.Entry
	rebar    *widget.Select
	diameter *widget.Select
	segments *widget.Entry
	bends    *widget.Entry
	units    *widget.Entry
	location *widget.Entry
	stock    *widget.Select
}

const optimalStockOption = "Optimal"

func (a *App) newMarkForm() markForm {
	diameters := make([]string, len(model.StandardDiameters))
	for i, d := range model.StandardDiameters {
		diameters[i] = strconv.Itoa(d)
	}

	stockOptions := []string{optimalStockOption}
	for _, s := range a.project.Catalog.Sorted() {
		stockOptions = append(stockOptions, s.String())
	}

	f := markForm{
		label:    widget.NewEntry(),
		rebar:    widget.NewSelect([]string{"D", "HD"}, nil),
		diameter: widget.NewSelect(diameters, nil),
		segments: widget.NewEntry(),
		bends:    widget.NewEntry(),
		units:    widget.NewEntry(),
		location: widget.NewEntry(),
		stock:    widget.NewSelect(stockOptions, nil),
	}
	f.segments.SetPlaceHolder("e.g. 200,1000,200")
	f.rebar.SetSelected(a.config.DefaultRebarType)
	f.diameter.SetSelected(strconv.Itoa(a.config.DefaultDiameter))
	f.bends.SetText("0")
	f.units.SetText("1")
	f.stock.SetSelected(optimalStockOption)
	return f
}

func (f markForm) items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem("Mark", f.label),
		widget.NewFormItem("Type", f.rebar),
		widget.NewFormItem("Diameter (mm)", f.diameter),
		widget.NewFormItem("Segments (mm)", f.segments),
		widget.NewFormItem("90° Bends", f.bends),
		widget.NewFormItem("Units", f.units),
		widget.NewFormItem("Location", f.location),
		widget.NewFormItem("Stock length", f.stock),
	}
}

// preferredStock returns the pinned stock length, or zero for "Optimal".
func (f markForm) preferredStock() (model.StockLength, error) {
	if f.stock.Selected == optimalStockOption || f.stock.Selected == "" {
		return 0, nil
	}
	return model.ParseStockLength(f.stock.Selected)
}

// parse validates the form inputs and returns the parsed values.
func (f markForm) parse() (model.RebarType, int, []float64, int, int, error) {
	diameter, _ := strconv.Atoi(f.diameter.Selected)

	var segments []float64
	for _, field := range strings.Split(f.segments.Text, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil || v <= 0 {
			return "", 0, nil, 0, 0, fmt.Errorf("segments must be positive lengths in mm, e.g. 200,1000,200")
		}
		segments = append(segments, v)
	}

	bends, err := strconv.Atoi(f.bends.Text)
	if err != nil || bends < 0 {
		return "", 0, nil, 0, 0, fmt.Errorf("bend count must be a non-negative integer")
	}
	units, err := strconv.Atoi(f.units.Text)
	if err != nil || units <= 0 {
		return "", 0, nil, 0, 0, fmt.Errorf("unit count must be a positive integer")
	}

	return model.RebarType(f.rebar.Selected), diameter, segments, bends, units, nil
}

func (a *App) showAddMarkDialog() {
	f := a.newMarkForm()
	f.label.SetText(fmt.Sprintf("A%d", len(a.project.Schedule.Marks)+1))

	form := dialog.NewForm("Add Bar Mark", "Add", "Cancel", f.items(),
		func(ok bool) {
			if !ok {
				return
			}
			rebarType, diameter, segments, bends, units, err := f.parse()
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			stock, err := f.preferredStock()
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			mark := model.NewBarMark(f.label.Text, rebarType, diameter, segments, bends, units, f.location.Text)
			mark.PreferredStock = stock
			a.project.Schedule.Marks = append(a.project.Schedule.Marks, mark)
			a.refreshScheduleList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 420))
	form.Show()
}

func (a *App) showEditMarkDialog(idx int) {
	m := a.project.Schedule.Marks[idx]

	f := a.newMarkForm()
	segments := make([]string, len(m.SegmentsMM))
	for i, s := range m.SegmentsMM {
		segments[i] = strconv.FormatFloat(s, 'f', -1, 64)
	}

	f.label.SetText(m.Label)
	f.rebar.SetSelected(string(m.Type))
	f.diameter.SetSelected(strconv.Itoa(m.Diameter))
	f.segments.SetText(strings.Join(segments, ","))
	f.bends.SetText(strconv.Itoa(m.Bends90))
	f.units.SetText(strconv.Itoa(m.Units))
	f.location.SetText(m.Location)
	if m.PreferredStock > 0 {
		f.stock.SetSelected(m.PreferredStock.String())
	}

	form := dialog.NewForm("Edit Bar Mark", "Save", "Cancel", f.items(),
		func(ok bool) {
			if !ok {
				return
			}
			rebarType, diameter, segments, bends, units, err := f.parse()
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			stock, err := f.preferredStock()
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			mark := &a.project.Schedule.Marks[idx]
			mark.Label = f.label.Text
			mark.Type = rebarType
			mark.Diameter = diameter
			mark.SegmentsMM = segments
			mark.Bends90 = bends
			mark.Units = units
			mark.Location = f.location.Text
			mark.PreferredStock = stock
			mark.CutLengthM = 0
			mark.Usage = nil
			a.refreshScheduleList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 420))
	form.Show()
}

// ─── Stock Catalog Panel ───────────────────────────────────

func (a *App) buildCatalogPanel() fyne.CanvasObject {
	a.catalogContainer = container.NewVBox()
	a.refreshCatalogList()

	addBtn := widget.NewButtonWithIcon("Add Stock Length", theme.ContentAddIcon(), func() {
		a.showAddStockDialog()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Available Stock Lengths", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.catalogContainer),
	)
}

func (a *App) refreshCatalogList() {
	a.catalogContainer.RemoveAll()

	if len(a.project.Catalog) == 0 {
		a.catalogContainer.Add(widget.NewLabel("Catalog is empty. Click 'Add Stock Length' to begin."))
		return
	}

	sorted := a.project.Catalog.Sorted()
	for i := range sorted {
		idx := i
		s := sorted[idx]
		row := container.NewGridWithColumns(2,
			widget.NewLabel(s.String()),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.project.Catalog = append(sorted[:idx:idx], sorted[idx+1:]...)
				a.refreshCatalogList()
			}),
		)
		a.catalogContainer.Add(row)
	}
}

func (a *App) showAddStockDialog() {
	lengthEntry := widget.NewEntry()
	lengthEntry.SetPlaceHolder("Length in metres, e.g. 7.5")

	form := dialog.NewForm("Add Stock Length", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Length (m)", lengthEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			s, err := model.ParseStockLength(lengthEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.project.Catalog = append(a.project.Catalog, s).Sorted()
			a.refreshCatalogList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(350, 180))
	form.Show()
}

// ─── Results Panel ─────────────────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.resultContainer = container.NewVBox(
		widget.NewLabel("No results yet. Add bar marks, then click Tools > Optimize."),
	)
	return container.NewVScroll(a.resultContainer)
}

func (a *App) refreshResults() {
	a.resultContainer.RemoveAll()

	result := a.project.Result
	if result == nil || (len(result.Plans) == 0 && len(result.Infeasible) == 0) {
		a.resultContainer.Add(widget.NewLabel("No results yet. Add bar marks, then click Tools > Optimize."))
		return
	}

	summary := fmt.Sprintf("Bars: %d   Pieces: %d   Waste: %.2f m   Utilization: %.1f%%",
		result.BarsUsed(), result.PieceCount(), result.TotalWaste(), result.Utilization())
	a.resultContainer.Add(widget.NewLabelWithStyle(summary, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	a.resultContainer.Add(widget.NewSeparator())

	for i, plan := range result.Plans {
		pieces := make([]string, len(plan.Pieces))
		for j, p := range plan.Pieces {
			pieces[j] = fmt.Sprintf("%.3f", p)
		}
		line := fmt.Sprintf("Bar %d  (%s):  %s   —  waste %.3f m",
			i+1, plan.Stock, strings.Join(pieces, " + "), plan.Waste())
		a.resultContainer.Add(widget.NewLabel(line))
	}

	if len(result.Infeasible) > 0 {
		a.resultContainer.Add(widget.NewSeparator())
		a.resultContainer.Add(widget.NewLabelWithStyle("Could not be planned:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		for _, inf := range result.Infeasible {
			a.resultContainer.Add(widget.NewLabel(fmt.Sprintf("%s: %s", inf.Requirement.Label, inf.Reason)))
		}
	}

	order := model.BuildOrderSummary(a.project.Schedule)
	if len(order.Lines) > 0 {
		a.resultContainer.Add(widget.NewSeparator())
		a.resultContainer.Add(widget.NewLabelWithStyle("Order Summary", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		for _, line := range order.Lines {
			a.resultContainer.Add(widget.NewLabel(fmt.Sprintf("%s x %s:  %d bars,  %.1f m,  %.1f kg",
				line.Grade, line.Stock, line.Bars, line.MetresM, line.KgM)))
		}
		a.resultContainer.Add(widget.NewLabel(fmt.Sprintf("Order %.1f m (%.1f kg) to cut %.1f m (%.1f kg), scrap %.1f kg",
			order.TotalOrderedMetres, order.TotalOrderedKg, order.TotalCutMetres, order.TotalCutKg, order.WasteKg())))
	}
	a.resultContainer.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) runOptimize() {
	if len(a.project.Schedule.Marks) == 0 {
		dialog.ShowInformation("Nothing to optimize", "Add at least one bar mark first.", a.window)
		return
	}

	opt := engine.New(a.project.Catalog)
	if err := opt.PlanSchedule(&a.project.Schedule); err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	// Aggregate all marks into one optimization run for the cutting diagrams.
	requirements := make([]model.CutRequirement, 0, len(a.project.Schedule.Marks))
	for _, m := range a.project.Schedule.Marks {
		requirements = append(requirements, model.CutRequirement{
			ID:       m.ID,
			Label:    m.Label,
			Length:   m.CutLengthM,
			Quantity: m.Units,
		})
	}

	result, err := opt.Optimize(requirements)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.project.Result = &result
	a.refreshScheduleList()
	a.refreshResults()
}

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SaveProject(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		project.RememberProject(&a.config, path)
		if err := project.SaveAppConfig(project.DefaultConfigPath(), a.config); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(a.project.Name + ".json")
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		proj, err := project.LoadProject(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.project = proj
		a.refreshScheduleList()
		a.refreshCatalogList()
		a.refreshResults()
	}, a.window)
	d.Show()
}

// ─── Import ────────────────────────────────────────────────

func (a *App) importCutList() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := cutimporter.ImportFile(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) handleImportResult(result cutimporter.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	// Imported cuts become straight bar marks; lengths arrive in metres.
	if len(result.Requirements) > 0 {
		for _, req := range result.Requirements {
			mark := model.NewBarMark(req.Label, model.RebarType(a.config.DefaultRebarType),
				a.config.DefaultDiameter, []float64{req.Length * 1000}, 0, req.Quantity, "")
			a.project.Schedule.Marks = append(a.project.Schedule.Marks, mark)
		}
		a.refreshScheduleList()

		msg := fmt.Sprintf("Successfully imported %d cuts.", len(result.Requirements))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}

// ─── Export ────────────────────────────────────────────────

func (a *App) exportSchedulePDF() {
	a.exportWith("schedule.pdf", func(path string) error {
		return export.ExportSchedulePDF(path, a.project)
	})
}

func (a *App) exportWorkbook() {
	a.exportWith("schedule.xlsx", func(path string) error {
		return export.ExportExcel(path, a.project)
	})
}

func (a *App) exportDXF() {
	a.exportWith("shapes.dxf", func(path string) error {
		return export.ExportDXF(path, a.project.Schedule)
	})
}

func (a *App) exportTags() {
	a.exportWith("tags.pdf", func(path string) error {
		return export.ExportTags(path, a.project.Schedule)
	})
}

func (a *App) exportWith(defaultName string, exportFn func(path string) error) {
	if len(a.project.Schedule.Marks) == 0 {
		dialog.ShowInformation("Nothing to export", "Add at least one bar mark first.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := exportFn(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}
