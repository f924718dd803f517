package report

import (
	"path/filepath"
	"sort"

	"remltab/domain/reml"
	"remltab/internal"
	"remltab/internal/config"
	"remltab/internal/errors"
)

// SummaryEntry is the condensed per-(phenotype, category) record: the
// convergence status plus the heritability (first value) of each
// recognized component.
type SummaryEntry struct {
	Converged string
	HerK1     *float64
	HerK2     *float64
	HerK3     *float64
	HerAll    *float64
}

// DetailRow is one fully expanded (file, component) observation.
type DetailRow struct {
	Phenotype     string
	Type          string
	Component     string
	Converged     string
	Heritability  *float64
	SE            *float64
	Size          *float64
	MegaIntensity *float64
	SE2           *float64
}

// Tables holds both accumulator tables produced by one run.
type Tables struct {
	// Summary maps phenotype -> category -> condensed entry. A later
	// file for the same pair overwrites the earlier one; files are
	// processed in sorted path order, so the overwrite is
	// deterministic.
	Summary map[string]map[string]SummaryEntry
	// Details is append-only: sorted file order, then fixed component
	// order within a file.
	Details []DetailRow
}

// Phenotypes returns the summary's phenotypes in lexicographic order.
func (t *Tables) Phenotypes() []string {
	keys := make([]string, 0, len(t.Summary))
	for p := range t.Summary {
		keys = append(keys, p)
	}
	sort.Strings(keys)
	return keys
}

// Categories returns the sorted union of categories observed across
// all processed files. Workbook column grouping follows this set; it
// is not predetermined.
func (t *Tables) Categories() []string {
	seen := make(map[string]bool)
	for _, byCategory := range t.Summary {
		for c := range byCategory {
			seen[c] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for c := range seen {
		keys = append(keys, c)
	}
	sort.Strings(keys)
	return keys
}

// Expand resolves a glob pattern to a sorted list of report paths. An
// empty match set is a valid result, not an error.
func Expand(pattern string) ([]string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.InvalidInput("malformed file-selection pattern: " + pattern)
	}
	sort.Strings(paths)
	return paths, nil
}

// Builder accumulates parsed report files into Tables.
type Builder struct {
	parser    *reml.Parser
	extension string
	log       *internal.Logger
}

// NewBuilder creates a builder configured from cfg.
func NewBuilder(cfg *config.Config, logger *internal.Logger) *Builder {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Builder{
		parser:    reml.NewParser(cfg.NAMarker),
		extension: cfg.Extension,
		log:       logger,
	}
}

// Build parses the given files in order and accumulates both tables.
// Unreadable files propagate as fatal errors; degenerate content
// (missing component block, malformed tokens) never does.
func (b *Builder) Build(paths []string) (*Tables, error) {
	tables := &Tables{Summary: make(map[string]map[string]SummaryEntry)}

	for _, path := range paths {
		decoded := reml.ParseFilename(path, b.extension)
		parsed, err := b.parser.ParseFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", path)
		}

		b.log.Debug("parsed %s: phenotype=%s category=%s components=%d",
			path, decoded.Phenotype, decoded.Category, len(parsed.Components))

		b.addSummary(tables, decoded, parsed)
		b.addDetails(tables, decoded, parsed)
	}

	return tables, nil
}

func (b *Builder) addSummary(t *Tables, decoded reml.ParsedFilename, parsed reml.FileResult) {
	if t.Summary[decoded.Phenotype] == nil {
		t.Summary[decoded.Phenotype] = make(map[string]SummaryEntry)
	}
	t.Summary[decoded.Phenotype][decoded.Category] = SummaryEntry{
		Converged: parsed.Converged,
		HerK1:     firstValue(parsed, reml.ComponentK1),
		HerK2:     firstValue(parsed, reml.ComponentK2),
		HerK3:     firstValue(parsed, reml.ComponentK3),
		HerAll:    firstValue(parsed, reml.ComponentAll),
	}
}

func (b *Builder) addDetails(t *Tables, decoded reml.ParsedFilename, parsed reml.FileResult) {
	for _, label := range reml.ComponentOrder {
		row, ok := parsed.Components[label]
		if !ok {
			continue
		}
		t.Details = append(t.Details, DetailRow{
			Phenotype:     decoded.Phenotype,
			Type:          decoded.Category,
			Component:     label,
			Converged:     parsed.Converged,
			Heritability:  row.Heritability,
			SE:            row.SE,
			Size:          row.Size,
			MegaIntensity: row.MegaIntensity,
			SE2:           row.SE2,
		})
	}
}

// firstValue extracts a component's heritability, nil when the
// component is absent or its first value is missing.
func firstValue(parsed reml.FileResult, label string) *float64 {
	row, ok := parsed.Components[label]
	if !ok {
		return nil
	}
	return row.Heritability
}
