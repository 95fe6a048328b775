package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barmate/barmate/internal/model"
)

// ─── Flag parsing helpers ──────────────────────────────────

func TestParseCutSpec(t *testing.T) {
	req, err := parseCutSpec("5.8:3")
	require.NoError(t, err)
	assert.Equal(t, 5.8, req.Length)
	assert.Equal(t, 3, req.Quantity)
	assert.Equal(t, "5.8m", req.Label)

	req, err = parseCutSpec("A1:2.4:10")
	require.NoError(t, err)
	assert.Equal(t, "A1", req.Label)
	assert.Equal(t, 2.4, req.Length)
	assert.Equal(t, 10, req.Quantity)
}

func TestParseCutSpec_Invalid(t *testing.T) {
	for _, spec := range []string{"", "5.8", "a:b", "1:2:3:4", "x:1.5", "A1:abc:3"} {
		_, err := parseCutSpec(spec)
		assert.Error(t, err, "spec %q", spec)
	}
}

func TestParseCatalog(t *testing.T) {
	catalog, err := parseCatalog("")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCatalog(), catalog)

	catalog, err = parseCatalog("6, 12")
	require.NoError(t, err)
	assert.Equal(t, model.Catalog{6, 12}, catalog)

	_, err = parseCatalog("6,abc")
	assert.Error(t, err)
}

func TestParseSegments(t *testing.T) {
	segs, err := parseSegments("400, 1000")
	require.NoError(t, err)
	assert.Equal(t, []float64{400, 1000}, segs)

	_, err = parseSegments("400,-5")
	assert.Error(t, err)
	_, err = parseSegments("")
	assert.Error(t, err)
}

// ─── Command execution ─────────────────────────────────────

func TestOptimizeCommand_InlineCuts(t *testing.T) {
	cmd := newOptimizeCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--cut", "5.8:3"})

	require.NoError(t, cmd.Execute())

	report := out.String()
	assert.Contains(t, report, "Bars used:")
	assert.Contains(t, report, "3")
	assert.Contains(t, report, "5.800")
}

func TestOptimizeCommand_NoRequirements(t *testing.T) {
	cmd := newOptimizeCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	assert.Error(t, cmd.Execute())
}

func TestOptimizeCommand_InfeasibleExitsNonZero(t *testing.T) {
	cmd := newOptimizeCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--cut", "13:1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be planned")
	assert.Contains(t, out.String(), "UNPLANNED REQUIREMENTS")
}

func TestOptimizeCommand_FromCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cuts.csv")
	require.NoError(t, os.WriteFile(path, []byte("Mark,Length,Qty\nA1,4,2\nB1,2,2\n"), 0644))

	cmd := newOptimizeCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--input", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Total waste:")
}

func TestOptimizeCommand_PDFOutput(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "plan.pdf")

	cmd := newOptimizeCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--cut", "5.8:3", "--pdf", pdfPath})

	require.NoError(t, cmd.Execute())

	info, err := os.Stat(pdfPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCutLengthCommand(t *testing.T) {
	cmd := newCutLengthCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--segments", "200,1000,200", "--diameter", "12", "--bends", "2"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1352")
}

func TestStirrupCommand(t *testing.T) {
	cmd := newStirrupCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--shape", "square", "--side", "300", "--diameter", "10"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1280")
}

func TestStirrupCommand_UnknownShape(t *testing.T) {
	cmd := newStirrupCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--shape", "triangle", "--side", "300"})

	assert.Error(t, cmd.Execute())
}

func TestTonnageCommand_BarsToTonnes(t *testing.T) {
	cmd := newTonnageCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--bars", "188", "--diameter", "12", "--stock", "6"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.000 tonnes")
}

func TestTonnageCommand_TonnesToBars(t *testing.T) {
	cmd := newTonnageCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--tonnes", "2", "--diameter", "12", "--stock", "6"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "376")
}

func TestWeightCommand(t *testing.T) {
	cmd := newWeightCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--diameter", "12", "--length", "10"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "8.88 kg")
}

func TestExportCommand_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	jobPath := filepath.Join(dir, "job.json")
	require.NoError(t, os.WriteFile(jobPath, []byte(`{"name":"Job","schedule":{"name":"Job","marks":[{"id":"m1","label":"A1","type":"HD","diameter":12,"segments_mm":[5800],"units":3}]},"catalog":[6,7.5,9,12]}`), 0644))

	cmd := newExportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{jobPath, "--output", "out.txt"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported output format"))
}

func TestExportCommand_PDF(t *testing.T) {
	dir := t.TempDir()
	jobPath := filepath.Join(dir, "job.json")
	require.NoError(t, os.WriteFile(jobPath, []byte(`{"name":"Job","schedule":{"name":"Job","marks":[{"id":"m1","label":"A1","type":"HD","diameter":12,"segments_mm":[5800],"units":3,"cut_length_m":5.8}]},"catalog":[6,7.5,9,12]}`), 0644))

	outPath := filepath.Join(dir, "schedule.pdf")
	cmd := newExportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{jobPath, "--output", outPath})

	require.NoError(t, cmd.Execute())

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
