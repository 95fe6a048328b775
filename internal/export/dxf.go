package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/barmate/barmate/internal/model"
)

// DXF layout constants (drawing units are mm).
const (
	dxfRowSpacing = 800.0 // vertical spacing between bar mark rows
	dxfTextHeight = 60.0
	dxfTextGap    = 100.0 // gap between a shape and its caption
)

// ExportDXF writes the bend shapes of a schedule as a DXF drawing, one bar
// mark per row with a caption underneath. Segments are drawn at true length
// with a 90 degree turn between consecutive segments, which covers the
// straight, L, U and Z shapes a bending schedule uses.
func ExportDXF(path string, schedule model.Schedule) error {
	if len(schedule.Marks) == 0 {
		return fmt.Errorf("no bar marks to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer("SHAPES", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to create shapes layer: %w", err)
	}
	if _, err := d.AddLayer("TEXT", dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to create text layer: %w", err)
	}

	for i, m := range schedule.Marks {
		originY := -float64(i) * dxfRowSpacing

		if err := d.ChangeLayer("SHAPES"); err != nil {
			return err
		}
		if err := drawBendShape(d, m, 0, originY); err != nil {
			return fmt.Errorf("failed to draw shape for %q: %w", m.Label, err)
		}

		if err := d.ChangeLayer("TEXT"); err != nil {
			return err
		}
		caption := fmt.Sprintf("%s  %s  %s  x%d", m.Label, m.Grade(), m.SegmentsString(), m.Units)
		if _, err := d.Text(caption, 0, originY-dxfTextGap, 0, dxfTextHeight); err != nil {
			return fmt.Errorf("failed to write caption for %q: %w", m.Label, err)
		}
	}

	return d.SaveAs(path)
}

// drawBendShape draws a mark's segments as connected lines, turning 90
// degrees counterclockwise between segments.
func drawBendShape(d *drawing.Drawing, m model.BarMark, startX, startY float64) error {
	// Direction cycle: right, up, left, down.
	dirs := [][2]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

	x, y := startX, startY
	for i, seg := range m.SegmentsMM {
		dir := dirs[i%len(dirs)]
		nx := x + dir[0]*seg
		ny := y + dir[1]*seg
		if _, err := d.Line(x, y, 0, nx, ny, 0); err != nil {
			return err
		}
		x, y = nx, ny
	}
	return nil
}
