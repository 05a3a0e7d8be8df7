package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

func TestHistogram(t *testing.T) {
	records := []models.SalaryRecord{
		rec("A", 0, models.ClusterLow),
		rec("A", 24, models.ClusterLow),
		rec("A", 25, models.ClusterLow),
		rec("A", 60, models.ClusterHigh),
		rec("A", 100, models.ClusterHigh),
	}
	bins := Histogram(records, 4)
	require.Len(t, bins, 4)

	assert.Equal(t, 0.0, bins[0].Lower)
	assert.Equal(t, 25.0, bins[0].Upper)
	assert.Equal(t, 100.0, bins[3].Upper)

	assert.Equal(t, 2, bins[0].Counts[models.ClusterLow])
	assert.Equal(t, 1, bins[1].Counts[models.ClusterLow])
	assert.Equal(t, 1, bins[2].Counts[models.ClusterHigh])
	assert.Equal(t, 1, bins[3].Counts[models.ClusterHigh], "maximum lands in the last bin")
	assert.Equal(t, 0, bins[3].Counts[models.ClusterLow])
}

func TestHistogram_CountsSumToRecords(t *testing.T) {
	records := sampleRecords()
	total := 0
	for _, b := range Histogram(records, 0) {
		total += b.Total()
	}
	assert.Equal(t, len(records), total)
	assert.Len(t, Histogram(records, 0), DefaultBins)
}

func TestHistogram_ConstantAndEmpty(t *testing.T) {
	assert.Nil(t, Histogram(nil, 10))

	bins := Histogram([]models.SalaryRecord{rec("A", 5, models.ClusterLow), rec("B", 5, models.ClusterHigh)}, 10)
	require.Len(t, bins, 1)
	assert.Equal(t, 2, bins[0].Total())
	assert.Equal(t, 5.0, bins[0].Lower)
	assert.Equal(t, 5.0, bins[0].Upper)
}

func TestHistogram_NonFiniteAndExtremeValues(t *testing.T) {
	inputs := [][]models.SalaryRecord{
		{rec("A", 100, models.ClusterLow), rec("A", math.Inf(1), models.ClusterHigh), rec("B", 300, models.ClusterLow)},
		{rec("A", 100, models.ClusterLow), rec("A", math.NaN(), models.ClusterHigh), rec("B", 300, models.ClusterLow)},
		{rec("A", math.NaN(), models.ClusterLow), rec("A", 100, models.ClusterHigh), rec("B", 300, models.ClusterLow)},
		{rec("A", -math.MaxFloat64, models.ClusterLow), rec("A", 100, models.ClusterHigh), rec("B", math.MaxFloat64, models.ClusterLow)},
	}
	for _, records := range inputs {
		var bins []models.HistogramBin
		require.NotPanics(t, func() { bins = Histogram(records, 25) })

		total := 0
		for _, b := range bins {
			total += b.Total()
		}
		assert.Equal(t, len(records), total)
	}
}

func TestCategoryMeans(t *testing.T) {
	means := CategoryMeans(sampleCategories())
	require.Len(t, means, 3)
	assert.Equal(t, "Soporte técnico", means[0].Category)
	assert.Equal(t, "Datos y analítica", means[1].Category)
	assert.Equal(t, "Desarrollo de software", means[2].Category)
}

func TestBoxStatsByCategory(t *testing.T) {
	records := []models.SalaryRecord{
		rec("B", 10, models.ClusterHigh),
		rec("A", 4, models.ClusterLow),
		rec("A", 1, models.ClusterLow),
		rec("A", 3, models.ClusterLow),
		rec("A", 2, models.ClusterLow),
	}
	stats := BoxStatsByCategory(records)
	require.Len(t, stats, 2)

	assert.Equal(t, models.BoxStats{Category: "B", Cluster: models.ClusterHigh, Min: 10, Q1: 10, Median: 10, Q3: 10, Max: 10, Count: 1}, stats[0])
	assert.Equal(t, models.BoxStats{Category: "A", Cluster: models.ClusterLow, Min: 1, Q1: 1.75, Median: 2.5, Q3: 3.25, Max: 4, Count: 4}, stats[1])
}
