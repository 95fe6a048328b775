package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/barmate/barmate/internal/model"
)

// TagInfo holds the data encoded into each bundle tag's QR code.
type TagInfo struct {
	Mark      string  `json:"mark"`
	Grade     string  `json:"grade"`
	Location  string  `json:"location,omitempty"`
	Segments  string  `json:"segments_mm"`
	Bends     int     `json:"bends"`
	Units     int     `json:"units"`
	CutLength float64 `json:"cut_length_m"`
}

// Tag layout constants for Avery 5160-compatible labels (3 columns, 10 rows
// per page). Each label cell is approximately 66.7mm x 25.4mm on US Letter.
const (
	tagPageWidth  = 215.9 // US Letter width in mm
	tagMarginTop  = 12.7  // mm
	tagMarginLeft = 4.8   // mm
	tagWidth      = 66.7  // mm per label
	tagHeight     = 25.4  // mm per label
	tagCols       = 3
	tagRows       = 10
	tagsPerPage   = tagCols * tagRows
	tagQRSize     = 20.0 // QR code size in mm
	tagPadding    = 2.0  // mm internal padding
)

// ExportTags generates a PDF of QR-coded bundle tags, one per bar mark.
// Each tag carries the mark, grade, shape and unit count, plus a QR code
// encoding the same data as JSON, laid out on a standard label sheet.
func ExportTags(path string, schedule model.Schedule) error {
	tags := CollectTagInfos(schedule)
	if len(tags) == 0 {
		return fmt.Errorf("no bar marks to generate tags for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, tag := range tags {
		if i%tagsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % tagsPerPage
		col := posOnPage % tagCols
		row := posOnPage / tagCols

		x := tagMarginLeft + float64(col)*tagWidth
		y := tagMarginTop + float64(row)*tagHeight

		if err := renderTag(pdf, x, y, i, tag); err != nil {
			return fmt.Errorf("failed to render tag for %q: %w", tag.Mark, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderTag draws a single bundle tag at the given position.
func renderTag(pdf *fpdf.Fpdf, x, y float64, idx int, info TagInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, tagWidth, tagHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal tag info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.Mark, idx)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + tagWidth - tagQRSize - tagPadding
	qrY := y + (tagHeight-tagQRSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, tagQRSize, tagQRSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + tagPadding
	textW := tagWidth - tagQRSize - 3*tagPadding

	// Mark and grade (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+tagPadding)

	title := fmt.Sprintf("%s  %s", info.Mark, info.Grade)
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	// Shape
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+tagPadding+5)
	shape := info.Segments
	if info.Bends > 0 {
		shape = fmt.Sprintf("%s (%d bends)", info.Segments, info.Bends)
	}
	pdf.CellFormat(textW, 3.5, shape, "", 1, "L", false, 0, "")

	// Cut length and unit count
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+tagPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%.3f m x %d off", info.CutLength, info.Units), "", 1, "L", false, 0, "")

	// Location
	if info.Location != "" {
		pdf.SetXY(textX, y+tagPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.CellFormat(textW, 3, info.Location, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectTagInfos extracts tag information from a schedule for use in
// testing or alternative export formats.
func CollectTagInfos(schedule model.Schedule) []TagInfo {
	var tags []TagInfo
	for _, m := range schedule.Marks {
		tags = append(tags, TagInfo{
			Mark:      m.Label,
			Grade:     m.Grade(),
			Location:  m.Location,
			Segments:  m.SegmentsString(),
			Bends:     m.Bends90,
			Units:     m.Units,
			CutLength: m.CutLengthM,
		})
	}
	return tags
}
