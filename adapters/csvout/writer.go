package csvout

import (
	"os"
	"strconv"

	"github.com/gocarina/gocsv"

	"remltab/internal/errors"
	"remltab/internal/report"
)

// detailRecord mirrors the detail sheet's columns for CSV export.
// Values are pre-rendered strings so missing data serializes as NA
// instead of an empty cell.
type detailRecord struct {
	Phenotype     string `csv:"Phenotype"`
	Type          string `csv:"Type"`
	Component     string `csv:"Component"`
	Converged     string `csv:"Converged"`
	Heritability  string `csv:"Heritability"`
	SE            string `csv:"SE"`
	Size          string `csv:"Size"`
	MegaIntensity string `csv:"Mega_Intensity"`
	SE2           string `csv:"SE_2"`
}

// naToken marks missing values in the exported CSV.
const naToken = "NA"

// WriteDetails exports the detail table to a CSV file at path,
// overwriting any existing file. Column set and row order match the
// workbook's detail sheet.
func WriteDetails(path string, details []report.DetailRow) error {
	records := make([]detailRecord, 0, len(details))
	for _, row := range details {
		records = append(records, detailRecord{
			Phenotype:     row.Phenotype,
			Type:          row.Type,
			Component:     row.Component,
			Converged:     orNA(row.Converged),
			Heritability:  formatValue(row.Heritability),
			SE:            formatValue(row.SE),
			Size:          formatValue(row.Size),
			MegaIntensity: formatValue(row.MegaIntensity),
			SE2:           formatValue(row.SE2),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.IOError("failed to create CSV file", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		return errors.RenderError("failed to write CSV rows", err)
	}
	return nil
}

func formatValue(v *float64) string {
	if v == nil {
		return naToken
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func orNA(s string) string {
	if s == "" {
		return naToken
	}
	return s
}
