package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// Column names of the row-level salary file
const (
	ColSalary   = "salario_limpio_colones"
	ColCategory = "categoria_semantica_final"
	ColCluster  = "cluster_salario"
)

// Column names of the category summary file
const (
	ColPostings        = "cantidad_puestos"
	ColMean            = "salario_promedio"
	ColMedian          = "salario_mediana"
	ColMin             = "salario_min"
	ColMax             = "salario_max"
	ColDominantCluster = "cluster_dominante"
)

// RecordColumns lists the columns ReadRecords requires
var RecordColumns = []string{ColSalary, ColCategory, ColCluster}

// CategoryColumns lists the columns ReadCategories requires
var CategoryColumns = []string{
	ColCategory, ColPostings, ColMean, ColMedian, ColMin, ColMax, ColDominantCluster,
}

// table is a parsed CSV body with a header index
type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(r io.Reader, required []string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no header row: %w", models.ErrEmptyDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("column %q not found: %w", col, models.ErrMalformedColumn)
		}
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if isBlank(row) {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data rows: %w", models.ErrEmptyDataset)
	}

	return &table{index: index, rows: rows}, nil
}

// cell returns the trimmed value of col in row i; short rows read as empty
func (t *table) cell(i int, col string) string {
	row := t.rows[i]
	j := t.index[col]
	if j >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[j])
}

func (t *table) float(i int, col string) (float64, error) {
	raw := t.cell(i, col)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// line numbers are 1-based and count the header
		return 0, fmt.Errorf("line %d, column %q: value %q is not numeric: %w", i+2, col, raw, models.ErrMalformedColumn)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("line %d, column %q: value %q is not a finite number: %w", i+2, col, raw, models.ErrMalformedColumn)
	}
	return f, nil
}

func (t *table) int(i int, col string) (int, error) {
	f, err := t.float(i, col)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("line %d, column %q: value %v is not an integer: %w", i+2, col, f, models.ErrMalformedColumn)
	}
	return int(f), nil
}

// ReadRecords parses the row-level salary file
func ReadRecords(r io.Reader) ([]models.SalaryRecord, error) {
	t, err := readTable(r, RecordColumns)
	if err != nil {
		return nil, err
	}

	records := make([]models.SalaryRecord, 0, len(t.rows))
	for i := range t.rows {
		salary, err := t.float(i, ColSalary)
		if err != nil {
			return nil, err
		}
		cluster, err := models.ParseCluster(t.cell(i, ColCluster))
		if err != nil {
			return nil, fmt.Errorf("line %d, column %q: %w: %w", i+2, ColCluster, models.ErrMalformedColumn, err)
		}
		records = append(records, models.SalaryRecord{
			Salary:   salary,
			Category: t.cell(i, ColCategory),
			Cluster:  cluster,
		})
	}
	return records, nil
}

// ReadCategories parses the per-category summary file
func ReadCategories(r io.Reader) ([]models.CategorySummary, error) {
	t, err := readTable(r, CategoryColumns)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.CategorySummary, 0, len(t.rows))
	for i := range t.rows {
		s := models.CategorySummary{
			Category:        t.cell(i, ColCategory),
			DominantCluster: t.cell(i, ColDominantCluster),
		}
		if s.Postings, err = t.int(i, ColPostings); err != nil {
			return nil, err
		}
		for _, f := range []struct {
			col string
			dst *float64
		}{
			{ColMean, &s.Mean},
			{ColMedian, &s.Median},
			{ColMin, &s.Min},
			{ColMax, &s.Max},
		} {
			if *f.dst, err = t.float(i, f.col); err != nil {
				return nil, err
			}
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
