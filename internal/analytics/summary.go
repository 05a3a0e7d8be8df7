package analytics

import (
	"sort"
	"strconv"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
	"github.com/fr4nk3nst1ner/salarydash/internal/utils"
)

// BuildSummaryTable produces the display rows of the category summary: the four
// monetary columns currency-formatted, sorted by descending mean salary with ties
// left in input order.
func BuildSummaryTable(summaries []models.CategorySummary, format utils.CurrencyFormat) []models.SummaryRow {
	sorted := append([]models.CategorySummary(nil), summaries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Mean > sorted[j].Mean
	})

	rows := make([]models.SummaryRow, 0, len(sorted))
	for _, s := range sorted {
		rows = append(rows, models.SummaryRow{
			Category:        s.Category,
			Postings:        s.Postings,
			Mean:            format.Format(s.Mean),
			Median:          format.Format(s.Median),
			Min:             format.Format(s.Min),
			Max:             format.Format(s.Max),
			DominantCluster: dominantLabel(s.DominantCluster),
		})
	}
	return rows
}

// SummaryHeader is the column header of BuildSummaryTable rows
var SummaryHeader = []string{
	"Categoría semántica",
	"Puestos",
	"Salario promedio",
	"Salario mediana",
	"Salario mínimo",
	"Salario máximo",
	"Cluster dominante",
}

// Cells flattens a summary row into its column values in SummaryHeader order
func Cells(row models.SummaryRow) []string {
	return []string{
		row.Category,
		strconv.Itoa(row.Postings),
		row.Mean,
		row.Median,
		row.Min,
		row.Max,
		row.DominantCluster,
	}
}

// dominantLabel shows numeric cluster ids as labels and leaves anything else untouched
func dominantLabel(raw string) string {
	if c, err := models.ParseCluster(raw); err == nil {
		return c.String()
	}
	return raw
}
