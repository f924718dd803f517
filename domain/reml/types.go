package reml

// Component labels recognized in a REML report, in the order they
// appear in workbook output.
const (
	ComponentK1  = "Her_K1"
	ComponentK2  = "Her_K2"
	ComponentK3  = "Her_K3"
	ComponentAll = "Her_All"
)

// ComponentOrder fixes the output ordering of recognized components.
var ComponentOrder = []string{ComponentK1, ComponentK2, ComponentK3, ComponentAll}

// Recognized reports whether a component label is one of the four
// labels stored from a report. Other labels are parsed and dropped.
func Recognized(label string) bool {
	switch label {
	case ComponentK1, ComponentK2, ComponentK3, ComponentAll:
		return true
	}
	return false
}

// ComponentRow holds the five numeric fields of one component line.
// A nil field means the source token was the missing-data marker,
// failed to parse, or was not present on the line.
type ComponentRow struct {
	Heritability  *float64
	SE            *float64
	Size          *float64
	MegaIntensity *float64
	SE2           *float64
}

// Values returns the row's fields in report column order.
func (r ComponentRow) Values() []*float64 {
	return []*float64{r.Heritability, r.SE, r.Size, r.MegaIntensity, r.SE2}
}

// FileResult is the parsed content of a single report file.
type FileResult struct {
	// Converged is the status token from the first Converged line, or
	// empty when the report has none.
	Converged string
	// Components maps recognized labels to their parsed rows. Labels
	// absent from the report are absent from the map.
	Components map[string]ComponentRow
}

// ParsedFilename is the phenotype/category pair decoded from a report
// path's base name.
type ParsedFilename struct {
	Phenotype string
	Category  string
}
