package ui

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/salarydash/internal/analytics"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
	"github.com/fr4nk3nst1ner/salarydash/internal/utils"
)

func init() {
	pterm.DisableStyling()
}

func sampleReport(t *testing.T) *analytics.Report {
	t.Helper()
	ds := &models.Dataset{
		Records: []models.SalaryRecord{
			{Salary: 900000, Category: "Desarrollo de software", Cluster: models.ClusterLow},
			{Salary: 2100000, Category: "Desarrollo de software", Cluster: models.ClusterHigh},
			{Salary: 450000, Category: "Soporte técnico", Cluster: models.ClusterLow},
		},
		Categories: []models.CategorySummary{
			{Category: "Soporte técnico", Postings: 1, Mean: 450000, Median: 450000, Min: 450000, Max: 450000, DominantCluster: "0"},
			{Category: "Desarrollo de software", Postings: 2, Mean: 1234567.89, Median: 1500000, Min: 900000, Max: 2100000, DominantCluster: "1"},
		},
	}
	p := analytics.NewPipeline()
	p.Bins = 5
	r, err := p.Run(ds)
	require.NoError(t, err)
	return r
}

func TestSummaryTable(t *testing.T) {
	out, err := SummaryTable(sampleReport(t).Summary)
	require.NoError(t, err)

	assert.Contains(t, out, "Categoría semántica")
	assert.Contains(t, out, "₡1,234,567")
	assert.Contains(t, out, "₡450,000")
	assert.Less(t, strings.Index(out, "Desarrollo de software"), strings.Index(out, "Soporte técnico"))
}

func TestReportPrinter_Print(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReportPrinter(&buf).Print(sampleReport(t)))

	out := buf.String()
	for _, title := range []string{
		"Métricas generales",
		"Distribución salarial por cluster",
		"Salario promedio por categoría semántica (CRC)",
		"Salario promedio por categoría y cluster",
		"Resumen salarial por categoría",
	} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "Registros analizados")
	assert.Contains(t, out, "cluster dominante")
	assert.Contains(t, out, "alto")
}

func TestColorizeSalary(t *testing.T) {
	assert.Equal(t, "₡2,500,000", ColorizeSalary(2500000, utils.DefaultCurrency))
	assert.Equal(t, "₡12,000", ColorizeSalary(12000.99, utils.DefaultCurrency))
}

func TestDominantCluster(t *testing.T) {
	bin := models.HistogramBin{Counts: map[models.Cluster]int{models.ClusterLow: 1, models.ClusterHigh: 3}}
	assert.Equal(t, models.ClusterHigh, dominantCluster(bin))

	tie := models.HistogramBin{Counts: map[models.Cluster]int{models.ClusterLow: 2, models.ClusterHigh: 2}}
	assert.Equal(t, models.ClusterLow, dominantCluster(tie))
}

func TestLoadProgress(t *testing.T) {
	p := NewLoadProgress(io.Discard)
	data := strings.Repeat("x", 4096)

	r := p.Wrap("records", strings.NewReader(data), int64(len(data)))
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, string(got))

	unknown := p.Wrap("categories", strings.NewReader("abc"), -1)
	_, err = io.ReadAll(unknown)
	require.NoError(t, err)

	p.Finish()
	assert.Empty(t, p.bars)
}
