// Package analytics turns loaded salary tables into the figures, tables and
// chart series behind the dashboard. Every function is pure; inputs are never
// modified.
package analytics

import (
	"fmt"
	"sort"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// ComputeGlobalMetrics returns count, mean, median, min and max of the salary column.
// No filtering is applied; records are assumed to be cleaned upstream.
func ComputeGlobalMetrics(records []models.SalaryRecord) (models.GlobalMetrics, error) {
	if len(records) == 0 {
		return models.GlobalMetrics{}, fmt.Errorf("global metrics: %w", models.ErrEmptyDataset)
	}

	values := salaries(records)
	sort.Float64s(values)

	return models.GlobalMetrics{
		Count:  len(values),
		Mean:   mean(values),
		Median: quantileSorted(values, 0.5),
		Min:    values[0],
		Max:    values[len(values)-1],
	}, nil
}

// DistinctCategories counts the distinct category labels of the summary table
func DistinctCategories(summaries []models.CategorySummary) int {
	seen := make(map[string]struct{}, len(summaries))
	for _, s := range summaries {
		seen[s.Category] = struct{}{}
	}
	return len(seen)
}

func salaries(records []models.SalaryRecord) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Salary
	}
	return values
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// quantileSorted uses linear interpolation between closest ranks, matching
// pandas' default. values must be sorted and non-empty.
func quantileSorted(values []float64, q float64) float64 {
	if len(values) == 1 {
		return values[0]
	}
	pos := q * float64(len(values)-1)
	lo := int(pos)
	if lo >= len(values)-1 {
		return values[len(values)-1]
	}
	frac := pos - float64(lo)
	return values[lo] + (values[lo+1]-values[lo])*frac
}
