package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/barmate/barmate/internal/model"
)

func TestExportTags_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags.pdf")

	err := ExportTags(path, buildTestProject().Schedule)
	if err != nil {
		t.Fatalf("ExportTags returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportTags_EmptySchedule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := ExportTags(path, model.Schedule{})
	if err == nil {
		t.Fatal("expected error for empty schedule, got nil")
	}
}

func TestExportTags_ManyMarksSpanPages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many.pdf")

	var schedule model.Schedule
	for i := 0; i < 35; i++ {
		m := model.NewBarMark("A1", model.RebarHD, 12, []float64{1000}, 0, 1, "")
		schedule.Marks = append(schedule.Marks, m)
	}

	if err := ExportTags(path, schedule); err != nil {
		t.Fatalf("ExportTags returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
}

func TestCollectTagInfos(t *testing.T) {
	schedule := buildTestProject().Schedule
	tags := CollectTagInfos(schedule)

	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
	if tags[0].Mark != "A1" {
		t.Errorf("expected first tag to be A1, got %q", tags[0].Mark)
	}
	if tags[0].Grade != "HD12" {
		t.Errorf("expected grade HD12, got %q", tags[0].Grade)
	}
	if tags[0].Segments != "200+1000+200" {
		t.Errorf("wrong segments: %q", tags[0].Segments)
	}
	if tags[0].Units != 10 {
		t.Errorf("expected 10 units, got %d", tags[0].Units)
	}

	// The tag payload must round-trip as JSON for the QR code.
	data, err := json.Marshal(tags[0])
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded TagInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded != tags[0] {
		t.Errorf("tag did not round-trip: %+v != %+v", decoded, tags[0])
	}
}
