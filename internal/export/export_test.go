package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/salarydash/internal/analytics"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

func sampleReport(t *testing.T) *analytics.Report {
	t.Helper()
	ds := &models.Dataset{
		Records: []models.SalaryRecord{
			{Salary: 900000, Category: "Desarrollo de software", Cluster: models.ClusterLow},
			{Salary: 2100000, Category: "Desarrollo de software", Cluster: models.ClusterHigh},
			{Salary: 450000, Category: "Soporte técnico", Cluster: models.ClusterLow},
			{Salary: 520000, Category: "Soporte técnico", Cluster: models.ClusterLow},
		},
		Categories: []models.CategorySummary{
			{Category: "Soporte técnico", Postings: 2, Mean: 485000, Median: 485000, Min: 450000, Max: 520000, DominantCluster: "0"},
			{Category: "Desarrollo de software", Postings: 2, Mean: 1500000.75, Median: 1500000, Min: 900000, Max: 2100000, DominantCluster: "1"},
		},
	}
	r, err := analytics.NewPipeline().Run(ds)
	require.NoError(t, err)
	return r
}

func readCSV(t *testing.T, data string) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWrite_SummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(t), TableSummary, FormatCSV))

	rows := readCSV(t, buf.String())
	require.Len(t, rows, 3)
	assert.Equal(t, analytics.SummaryHeader, rows[0])
	assert.Equal(t, []string{"Desarrollo de software", "2", "₡1,500,000", "₡1,500,000", "₡900,000", "₡2,100,000", "alto"}, rows[1])
	assert.Equal(t, []string{"Soporte técnico", "2", "₡485,000", "₡485,000", "₡450,000", "₡520,000", "bajo"}, rows[2])
}

func TestWrite_ClustersCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(t), TableClusters, FormatCSV))

	rows := readCSV(t, buf.String())
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"categoria_semantica_final", "cluster_salario", "salario_promedio", "cantidad_puestos"}, rows[0])
	assert.Equal(t, []string{"Desarrollo de software", "alto", "2100000.00", "1"}, rows[1])
	assert.Equal(t, []string{"Soporte técnico", "bajo", "485000.00", "2"}, rows[3])
}

func TestWrite_JSON(t *testing.T) {
	r := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, TableSummary, FormatJSON))
	var rows []models.SummaryRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, r.Summary, rows)

	buf.Reset()
	require.NoError(t, Write(&buf, r, TableClusters, FormatJSON))
	assert.Contains(t, buf.String(), `"cluster": "alto"`)
	var aggs []models.CategoryClusterAggregate
	require.NoError(t, json.Unmarshal(buf.Bytes(), &aggs))
	assert.Equal(t, r.Clusters, aggs)
}

func TestWrite_Deterministic(t *testing.T) {
	for _, format := range []string{FormatCSV, FormatJSON} {
		var first, second bytes.Buffer
		require.NoError(t, Write(&first, sampleReport(t), TableSummary, format))
		require.NoError(t, Write(&second, sampleReport(t), TableSummary, format))
		assert.Equal(t, first.String(), second.String(), format)
	}
}

func TestWrite_Unknown(t *testing.T) {
	r := sampleReport(t)
	assert.ErrorContains(t, Write(&bytes.Buffer{}, r, TableSummary, "xml"), "unknown format")
	assert.ErrorContains(t, Write(&bytes.Buffer{}, r, "histogram", FormatCSV), "unknown table")
}
