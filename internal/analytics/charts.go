package analytics

import (
	"sort"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// DefaultBins is the histogram bin count used by the dashboard
const DefaultBins = 25

// Histogram splits the salary range into equal-width bins and counts records per
// cluster. The last bin includes the maximum. A constant salary column yields a
// single zero-width bin.
func Histogram(records []models.SalaryRecord, bins int) []models.HistogramBin {
	if len(records) == 0 {
		return nil
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	lo, hi := records[0].Salary, records[0].Salary
	for _, r := range records[1:] {
		if r.Salary < lo {
			lo = r.Salary
		}
		if r.Salary > hi {
			hi = r.Salary
		}
	}
	if hi == lo {
		bins = 1
	}

	width := (hi - lo) / float64(bins)
	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i] = models.HistogramBin{
			Lower:  lo + float64(i)*width,
			Upper:  lo + float64(i+1)*width,
			Counts: make(map[models.Cluster]int, len(models.Clusters)),
		}
		for _, c := range models.Clusters {
			out[i].Counts[c] = 0
		}
	}
	out[bins-1].Upper = hi

	for _, r := range records {
		idx := bins - 1
		if width > 0 {
			idx = int((r.Salary - lo) / width)
			// NaN and infinite offsets convert to arbitrary ints
			idx = min(max(idx, 0), bins-1)
		}
		out[idx].Counts[r.Cluster]++
	}
	return out
}

// CategoryMeans returns the mean salary per category in ascending order, the
// order a horizontal bar chart draws bottom to top
func CategoryMeans(summaries []models.CategorySummary) []models.CategoryMean {
	means := make([]models.CategoryMean, 0, len(summaries))
	for _, s := range summaries {
		means = append(means, models.CategoryMean{Category: s.Category, Mean: s.Mean})
	}
	sort.SliceStable(means, func(i, j int) bool {
		return means[i].Mean < means[j].Mean
	})
	return means
}

// BoxStatsByCategory computes the five-number summary for every (category, cluster) pair
func BoxStatsByCategory(records []models.SalaryRecord) []models.BoxStats {
	values := make(map[groupKey][]float64)
	for _, r := range records {
		k := groupKey{category: r.Category, cluster: r.Cluster}
		values[k] = append(values[k], r.Salary)
	}

	keys := make([]groupKey, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	rank := make(map[string]int)
	for i, c := range CategoryOrder(records) {
		rank[c] = i
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].category != keys[j].category {
			return rank[keys[i].category] < rank[keys[j].category]
		}
		return keys[i].cluster < keys[j].cluster
	})

	stats := make([]models.BoxStats, 0, len(keys))
	for _, k := range keys {
		v := values[k]
		sort.Float64s(v)
		stats = append(stats, models.BoxStats{
			Category: k.category,
			Cluster:  k.cluster,
			Min:      v[0],
			Q1:       quantileSorted(v, 0.25),
			Median:   quantileSorted(v, 0.5),
			Q3:       quantileSorted(v, 0.75),
			Max:      v[len(v)-1],
			Count:    len(v),
		})
	}
	return stats
}
