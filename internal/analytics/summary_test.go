package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
	"github.com/fr4nk3nst1ner/salarydash/internal/utils"
)

func TestBuildSummaryTable(t *testing.T) {
	rows := BuildSummaryTable(sampleCategories(), utils.DefaultCurrency)
	require.Len(t, rows, 3)

	assert.Equal(t, models.SummaryRow{
		Category:        "Desarrollo de software",
		Postings:        3,
		Mean:            "₡1,633,333",
		Median:          "₡1,900,000",
		Min:             "₡900,000",
		Max:             "₡2,100,000",
		DominantCluster: "alto",
	}, rows[0])
	assert.Equal(t, "Datos y analítica", rows[1].Category)
	assert.Equal(t, "Soporte técnico", rows[2].Category)
	assert.Equal(t, "bajo", rows[2].DominantCluster)
}

func TestBuildSummaryTable_StableTies(t *testing.T) {
	summaries := []models.CategorySummary{
		{Category: "first", Mean: 10},
		{Category: "top", Mean: 20},
		{Category: "second", Mean: 10},
		{Category: "third", Mean: 10},
	}
	rows := BuildSummaryTable(summaries, utils.DefaultCurrency)

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Category
	}
	assert.Equal(t, []string{"top", "first", "second", "third"}, got)
}

func TestBuildSummaryTable_DescendingByMean(t *testing.T) {
	summaries := []models.CategorySummary{
		{Category: "a", Mean: 3}, {Category: "b", Mean: 9}, {Category: "c", Mean: 1},
		{Category: "d", Mean: 7}, {Category: "e", Mean: 5},
	}
	rows := BuildSummaryTable(summaries, utils.CurrencyFormat{Symbol: "", Separator: ","})
	for i := 1; i < len(rows); i++ {
		prev, err := utils.ParseAmount(rows[i-1].Mean)
		require.NoError(t, err)
		cur, err := utils.ParseAmount(rows[i].Mean)
		require.NoError(t, err)
		assert.Greater(t, prev, cur)
	}
}

func TestBuildSummaryTable_UnknownDominantClusterPassesThrough(t *testing.T) {
	rows := BuildSummaryTable([]models.CategorySummary{{Category: "a", DominantCluster: "mixto"}}, utils.DefaultCurrency)
	assert.Equal(t, "mixto", rows[0].DominantCluster)
}

func TestCells(t *testing.T) {
	row := models.SummaryRow{Category: "a", Postings: 4, Mean: "₡1", Median: "₡2", Min: "₡0", Max: "₡3", DominantCluster: "bajo"}
	assert.Equal(t, []string{"a", "4", "₡1", "₡2", "₡0", "₡3", "bajo"}, Cells(row))
	assert.Len(t, SummaryHeader, len(Cells(row)))
}
