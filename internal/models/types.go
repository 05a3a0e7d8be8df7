package models

import "time"

// SalaryRecord represents one deduplicated job posting with its cleaned monthly salary
type SalaryRecord struct {
	Salary   float64 `json:"salario_limpio_colones"`
	Category string  `json:"categoria_semantica_final"`
	Cluster  Cluster `json:"cluster_salario"`
}

// CategorySummary represents the pre-aggregated salary figures of one semantic category
type CategorySummary struct {
	Category        string  `json:"categoria_semantica_final"`
	Postings        int     `json:"cantidad_puestos"`
	Mean            float64 `json:"salario_promedio"`
	Median          float64 `json:"salario_mediana"`
	Min             float64 `json:"salario_min"`
	Max             float64 `json:"salario_max"`
	DominantCluster string  `json:"cluster_dominante"`
}

// CategoryClusterAggregate represents the mean salary and row count of one (category, cluster) pair
type CategoryClusterAggregate struct {
	Category string  `json:"category"`
	Cluster  Cluster `json:"cluster"`
	Mean     float64 `json:"mean"`
	Count    int     `json:"count"`
}

// GlobalMetrics represents the scalar figures shown above the charts
type GlobalMetrics struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// SummaryRow represents one display-ready row of the category summary table
type SummaryRow struct {
	Category        string `json:"category"`
	Postings        int    `json:"postings"`
	Mean            string `json:"mean"`
	Median          string `json:"median"`
	Min             string `json:"min"`
	Max             string `json:"max"`
	DominantCluster string `json:"dominant_cluster"`
}

// HistogramBin represents one equal-width salary bin split by cluster
type HistogramBin struct {
	Lower  float64         `json:"lower"`
	Upper  float64         `json:"upper"`
	Counts map[Cluster]int `json:"counts"`
}

// Total returns the number of records that fell into the bin
func (b HistogramBin) Total() int {
	total := 0
	for _, n := range b.Counts {
		total += n
	}
	return total
}

// CategoryMean represents one bar of the mean-salary-by-category chart
type CategoryMean struct {
	Category string  `json:"category"`
	Mean     float64 `json:"mean"`
}

// BoxStats represents the five-number summary of one (category, cluster) box
type BoxStats struct {
	Category string  `json:"category"`
	Cluster  Cluster `json:"cluster"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
	Count    int     `json:"count"`
}

// Dataset holds both input tables as loaded from disk. Consumers must not mutate it.
type Dataset struct {
	Records    []SalaryRecord    `json:"records"`
	Categories []CategorySummary `json:"categories"`
	LoadedAt   time.Time         `json:"loaded_at"`
}
