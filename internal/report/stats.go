package report

import (
	"github.com/montanaflynn/stats"

	"remltab/domain/reml"
	"remltab/internal/errors"
)

// CategoryStat summarizes the heritability values observed for one
// (category, component) pair across all phenotypes.
type CategoryStat struct {
	Category  string
	Component string
	N         int
	Mean      float64
	Median    float64
	StdDev    float64
	Min       float64
	Max       float64
}

// CategoryStats computes descriptive statistics per (category,
// component) pair from the detail table. Pairs with no observed
// heritability values are omitted. Rows are ordered by category, then
// fixed component order.
func (t *Tables) CategoryStats() ([]CategoryStat, error) {
	byPair := make(map[string]map[string][]float64)
	for _, row := range t.Details {
		if row.Heritability == nil {
			continue
		}
		if byPair[row.Type] == nil {
			byPair[row.Type] = make(map[string][]float64)
		}
		byPair[row.Type][row.Component] = append(byPair[row.Type][row.Component], *row.Heritability)
	}

	var result []CategoryStat
	for _, category := range t.Categories() {
		components := byPair[category]
		for _, label := range reml.ComponentOrder {
			values, ok := components[label]
			if !ok || len(values) == 0 {
				continue
			}
			stat, err := describe(category, label, values)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to summarize %s/%s", category, label)
			}
			result = append(result, stat)
		}
	}
	return result, nil
}

func describe(category, label string, values []float64) (CategoryStat, error) {
	data := stats.Float64Data(values)

	mean, err := data.Mean()
	if err != nil {
		return CategoryStat{}, err
	}
	median, err := data.Median()
	if err != nil {
		return CategoryStat{}, err
	}
	// Population standard deviation: a single observation yields 0.
	stdDev, err := data.StandardDeviationPopulation()
	if err != nil {
		return CategoryStat{}, err
	}
	min, err := data.Min()
	if err != nil {
		return CategoryStat{}, err
	}
	max, err := data.Max()
	if err != nil {
		return CategoryStat{}, err
	}

	return CategoryStat{
		Category:  category,
		Component: label,
		N:         len(values),
		Mean:      mean,
		Median:    median,
		StdDev:    stdDev,
		Min:       min,
		Max:       max,
	}, nil
}
