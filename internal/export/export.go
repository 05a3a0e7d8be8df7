// Package export writes report tables in machine-readable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fr4nk3nst1ner/salarydash/internal/analytics"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// Formats accepted by Write
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Tables accepted by Write
const (
	TableSummary  = "summary"
	TableClusters = "clusters"
)

// Write exports one table of the report in the given format
func Write(w io.Writer, r *analytics.Report, table, format string) error {
	switch format {
	case FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q (want csv or json)", format)
	}

	switch table {
	case TableSummary:
		if format == FormatJSON {
			return writeJSON(w, r.Summary)
		}
		return SummaryCSV(w, r.Summary)
	case TableClusters:
		if format == FormatJSON {
			return writeJSON(w, r.Clusters)
		}
		return ClustersCSV(w, r.Clusters)
	default:
		return fmt.Errorf("unknown table %q (want summary or clusters)", table)
	}
}

// SummaryCSV writes the formatted summary table with its display header
func SummaryCSV(w io.Writer, rows []models.SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(analytics.SummaryHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(analytics.Cells(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ClustersCSV writes the category×cluster aggregates with unformatted means
func ClustersCSV(w io.Writer, aggs []models.CategoryClusterAggregate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"categoria_semantica_final", "cluster_salario", "salario_promedio", "cantidad_puestos"}); err != nil {
		return err
	}
	for _, a := range aggs {
		if err := cw.Write([]string{
			a.Category,
			a.Cluster.String(),
			strconv.FormatFloat(a.Mean, 'f', 2, 64),
			strconv.Itoa(a.Count),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
