// BarMate — Rebar Cutting Optimizer
//
// A cross-platform desktop application for planning waste-minimizing
// rebar cutting and bar bending schedules.
//
// Build:
//   go build -o barmate ./cmd/barmate
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o barmate.exe ./cmd/barmate
//   GOOS=darwin  GOARCH=amd64 go build -o barmate-darwin ./cmd/barmate
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/barmate/barmate/internal/ui"
)

func main() {
	application := app.NewWithID("com.barmate.barmate")
	window := application.NewWindow("BarMate — Rebar Cutting Optimizer")

	appUI := ui.NewApp(window)
	appUI.SetupMenus() // Setup the native menu bar
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1000, 700))
	window.CenterOnScreen()
	window.ShowAndRun()
}
