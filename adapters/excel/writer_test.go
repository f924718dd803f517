package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"remltab/internal/report"
)

func f64(v float64) *float64 { return &v }

func sampleTables() *report.Tables {
	return &report.Tables{
		Summary: map[string]map[string]report.SummaryEntry{
			"A": {
				"X": {Converged: "YES", HerK1: f64(0.5)},
				"Y": {Converged: "NO", HerAll: f64(0.3)},
			},
		},
		Details: []report.DetailRow{
			{
				Phenotype: "A", Type: "X", Component: "Her_K1", Converged: "YES",
				Heritability: f64(0.5), SE: f64(0.1), Size: f64(100), MegaIntensity: f64(1.0), SE2: f64(0.1),
			},
			{
				Phenotype: "A", Type: "Y", Component: "Her_All", Converged: "NO",
				Heritability: f64(0.3), Size: f64(50), MegaIntensity: f64(0.9), SE2: f64(0.05),
			},
		},
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	counts, err := NewWorkbookWriter(nil).Write(path, sampleTables())
	require.NoError(t, err)
	assert.Equal(t, 1, counts.SummaryRows)
	assert.Equal(t, 2, counts.DetailRows)
	assert.Equal(t, 2, counts.StatsRows)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{SummarySheet, DetailSheet, StatsSheet}, f.GetSheetList())

	cell := func(sheet, ref string) string {
		t.Helper()
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	// Header rows: category groups X (B..F) and Y (G..K).
	assert.Equal(t, "Phenotype", cell(SummarySheet, "A1"))
	assert.Equal(t, "Phenotype", cell(SummarySheet, "A2"))
	assert.Equal(t, "X", cell(SummarySheet, "B1"))
	assert.Equal(t, "Y", cell(SummarySheet, "G1"))
	assert.Equal(t, "Her_K1", cell(SummarySheet, "B2"))
	assert.Equal(t, "Converged", cell(SummarySheet, "F2"))
	assert.Equal(t, "Her_All", cell(SummarySheet, "J2"))

	merged, err := f.GetMergeCells(SummarySheet)
	require.NoError(t, err)
	assert.Len(t, merged, 2)

	// Data row: X group carries Her_K1 and Converged, Y group Her_All
	// and Converged, no cross-contamination between groups.
	assert.Equal(t, "A", cell(SummarySheet, "A3"))
	assert.Equal(t, "0.5", cell(SummarySheet, "B3"))
	assert.Equal(t, "", cell(SummarySheet, "C3"))
	assert.Equal(t, "", cell(SummarySheet, "E3"))
	assert.Equal(t, "YES", cell(SummarySheet, "F3"))
	assert.Equal(t, "", cell(SummarySheet, "G3"))
	assert.Equal(t, "0.3", cell(SummarySheet, "J3"))
	assert.Equal(t, "NO", cell(SummarySheet, "K3"))

	// Detail sheet.
	assert.Equal(t, "Phenotype", cell(DetailSheet, "A1"))
	assert.Equal(t, "SE_2", cell(DetailSheet, "I1"))
	assert.Equal(t, "Her_K1", cell(DetailSheet, "C2"))
	assert.Equal(t, "100", cell(DetailSheet, "G2"))
	assert.Equal(t, "Her_All", cell(DetailSheet, "C3"))
	assert.Equal(t, "", cell(DetailSheet, "F3")) // missing SE stays blank

	// Stats sheet.
	assert.Equal(t, "Category", cell(StatsSheet, "A1"))
	assert.Equal(t, "X", cell(StatsSheet, "A2"))
	assert.Equal(t, "Her_K1", cell(StatsSheet, "B2"))
	assert.Equal(t, "1", cell(StatsSheet, "C2"))
	assert.Equal(t, "0.5", cell(StatsSheet, "D2"))
}

func TestWrite_MissingGroupStaysBlank(t *testing.T) {
	tables := &report.Tables{
		Summary: map[string]map[string]report.SummaryEntry{
			"A": {"X": {Converged: "YES", HerK1: f64(0.5)}},
			"B": {"Y": {Converged: "NO", HerK1: f64(0.7)}},
		},
	}
	path := filepath.Join(t.TempDir(), "out.xlsx")

	counts, err := NewWorkbookWriter(nil).Write(path, tables)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.SummaryRows)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// Row 3 is phenotype A: X group filled, Y group blank.
	v, err := f.GetCellValue(SummarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "0.5", v)
	for _, ref := range []string{"G3", "H3", "I3", "J3", "K3"} {
		v, err := f.GetCellValue(SummarySheet, ref)
		require.NoError(t, err)
		assert.Equal(t, "", v)
	}

	// Row 4 is phenotype B: X group blank, Y group filled.
	v, err = f.GetCellValue(SummarySheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "", v)
	v, err = f.GetCellValue(SummarySheet, "G4")
	require.NoError(t, err)
	assert.Equal(t, "0.7", v)
}

func TestWrite_EmptyTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	tables := &report.Tables{Summary: map[string]map[string]report.SummaryEntry{}}

	counts, err := NewWorkbookWriter(nil).Write(path, tables)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.SummaryRows)
	assert.Equal(t, 0, counts.DetailRows)
	assert.Equal(t, 0, counts.StatsRows)
}
