package excel

import (
	"github.com/xuri/excelize/v2"

	"remltab/internal"
	"remltab/internal/errors"
	"remltab/internal/report"
)

// Sheet names in the generated workbook.
const (
	SummarySheet = "Heritability Summary"
	DetailSheet  = "Detailed Information"
	StatsSheet   = "Category Statistics"
)

// subHeaders are the per-category column labels on the summary sheet.
var subHeaders = []string{"Her_K1", "Her_K2", "Her_K3", "Her_All", "Converged"}

// groupWidth is the number of summary columns per category group.
const groupWidth = 5

// detailHeaders is the header row of the detail sheet.
var detailHeaders = []string{
	"Phenotype", "Type", "Component", "Converged",
	"Heritability", "SE", "Size", "Mega_Intensity", "SE_2",
}

// statsHeaders is the header row of the statistics sheet.
var statsHeaders = []string{
	"Category", "Component", "N", "Mean", "Median", "StdDev", "Min", "Max",
}

// Counts reports how many data rows each sheet received.
type Counts struct {
	SummaryRows int
	DetailRows  int
	StatsRows   int
}

// WorkbookWriter renders accumulated tables into a three-sheet xlsx
// workbook.
type WorkbookWriter struct {
	log *internal.Logger
}

// NewWorkbookWriter creates a workbook writer.
func NewWorkbookWriter(logger *internal.Logger) *WorkbookWriter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &WorkbookWriter{log: logger}
}

// Write renders tables to path, overwriting any existing file there.
func (w *WorkbookWriter) Write(path string, tables *report.Tables) (Counts, error) {
	f := excelize.NewFile()
	defer f.Close()

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return Counts{}, errors.RenderError("failed to create bold style", err)
	}
	boldCenterStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return Counts{}, errors.RenderError("failed to create header style", err)
	}

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return Counts{}, errors.RenderError("failed to name summary sheet", err)
	}

	counts := Counts{DetailRows: len(tables.Details)}

	counts.SummaryRows, err = w.writeSummary(f, tables, boldStyle, boldCenterStyle)
	if err != nil {
		return Counts{}, err
	}
	if err := w.writeDetails(f, tables, boldStyle); err != nil {
		return Counts{}, err
	}
	counts.StatsRows, err = w.writeStats(f, tables, boldStyle)
	if err != nil {
		return Counts{}, err
	}

	if err := f.SaveAs(path); err != nil {
		return Counts{}, errors.IOError("failed to save workbook", err)
	}
	w.log.Info("workbook saved to %s (%d summary, %d detail, %d stats rows)",
		path, counts.SummaryRows, counts.DetailRows, counts.StatsRows)
	return counts, nil
}

// writeSummary lays out the two header rows (merged category groups
// spanning five columns each) and one data row per phenotype. Missing
// (phenotype, category) combinations stay blank across the whole
// group, preserving the rectangular grid.
func (w *WorkbookWriter) writeSummary(f *excelize.File, tables *report.Tables, boldStyle, boldCenterStyle int) (int, error) {
	categories := tables.Categories()

	if err := setCell(f, SummarySheet, 1, 1, "Phenotype"); err != nil {
		return 0, err
	}
	if err := setCell(f, SummarySheet, 1, 2, "Phenotype"); err != nil {
		return 0, err
	}
	if err := styleCell(f, SummarySheet, 1, 2, boldStyle); err != nil {
		return 0, err
	}

	col := 2
	for _, category := range categories {
		start, err := excelize.CoordinatesToCellName(col, 1)
		if err != nil {
			return 0, errors.RenderError("invalid summary coordinates", err)
		}
		end, err := excelize.CoordinatesToCellName(col+groupWidth-1, 1)
		if err != nil {
			return 0, errors.RenderError("invalid summary coordinates", err)
		}
		if err := f.MergeCell(SummarySheet, start, end); err != nil {
			return 0, errors.RenderError("failed to merge category header", err)
		}
		if err := f.SetCellValue(SummarySheet, start, category); err != nil {
			return 0, errors.RenderError("failed to write category header", err)
		}
		if err := f.SetCellStyle(SummarySheet, start, end, boldCenterStyle); err != nil {
			return 0, errors.RenderError("failed to style category header", err)
		}

		for i, sub := range subHeaders {
			if err := setCell(f, SummarySheet, col+i, 2, sub); err != nil {
				return 0, err
			}
			if err := styleCell(f, SummarySheet, col+i, 2, boldCenterStyle); err != nil {
				return 0, err
			}
		}
		col += groupWidth
	}

	phenotypes := tables.Phenotypes()
	for r, phenotype := range phenotypes {
		rowIdx := r + 3
		if err := setCell(f, SummarySheet, 1, rowIdx, phenotype); err != nil {
			return 0, err
		}
		col = 2
		for _, category := range categories {
			if entry, ok := tables.Summary[phenotype][category]; ok {
				cells := []interface{}{
					optional(entry.HerK1),
					optional(entry.HerK2),
					optional(entry.HerK3),
					optional(entry.HerAll),
					entry.Converged,
				}
				for i, v := range cells {
					if v == nil {
						continue
					}
					if err := setCell(f, SummarySheet, col+i, rowIdx, v); err != nil {
						return 0, err
					}
				}
			}
			col += groupWidth
		}
	}
	return len(phenotypes), nil
}

func (w *WorkbookWriter) writeDetails(f *excelize.File, tables *report.Tables, boldStyle int) error {
	if _, err := f.NewSheet(DetailSheet); err != nil {
		return errors.RenderError("failed to create detail sheet", err)
	}
	for i, h := range detailHeaders {
		if err := setCell(f, DetailSheet, i+1, 1, h); err != nil {
			return err
		}
		if err := styleCell(f, DetailSheet, i+1, 1, boldStyle); err != nil {
			return err
		}
	}
	for r, row := range tables.Details {
		rowIdx := r + 2
		cells := []interface{}{
			row.Phenotype,
			row.Type,
			row.Component,
			row.Converged,
			optional(row.Heritability),
			optional(row.SE),
			optional(row.Size),
			optional(row.MegaIntensity),
			optional(row.SE2),
		}
		for i, v := range cells {
			if v == nil {
				continue
			}
			if err := setCell(f, DetailSheet, i+1, rowIdx, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *WorkbookWriter) writeStats(f *excelize.File, tables *report.Tables, boldStyle int) (int, error) {
	categoryStats, err := tables.CategoryStats()
	if err != nil {
		return 0, err
	}

	if _, err := f.NewSheet(StatsSheet); err != nil {
		return 0, errors.RenderError("failed to create stats sheet", err)
	}
	for i, h := range statsHeaders {
		if err := setCell(f, StatsSheet, i+1, 1, h); err != nil {
			return 0, err
		}
		if err := styleCell(f, StatsSheet, i+1, 1, boldStyle); err != nil {
			return 0, err
		}
	}
	for r, s := range categoryStats {
		rowIdx := r + 2
		cells := []interface{}{
			s.Category, s.Component, s.N, s.Mean, s.Median, s.StdDev, s.Min, s.Max,
		}
		for i, v := range cells {
			if err := setCell(f, StatsSheet, i+1, rowIdx, v); err != nil {
				return 0, err
			}
		}
	}
	return len(categoryStats), nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return errors.RenderError("invalid cell coordinates", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return errors.RenderError("failed to write cell "+cell, err)
	}
	return nil
}

func styleCell(f *excelize.File, sheet string, col, row, styleID int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return errors.RenderError("invalid cell coordinates", err)
	}
	if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
		return errors.RenderError("failed to style cell "+cell, err)
	}
	return nil
}

// optional converts a nullable float into a cell value, nil meaning
// the cell stays blank.
func optional(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
