package analytics

import (
	"sort"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

type groupKey struct {
	category string
	cluster  models.Cluster
}

// AggregateByCategoryAndCluster groups records by (category, cluster) and
// computes the mean salary and row count of each group. Groups come out in
// order of first category appearance, then cluster id.
func AggregateByCategoryAndCluster(records []models.SalaryRecord) []models.CategoryClusterAggregate {
	sums := make(map[groupKey]float64)
	counts := make(map[groupKey]int)
	clustersOf := make(map[string][]models.Cluster)
	order := CategoryOrder(records)

	for _, r := range records {
		k := groupKey{category: r.Category, cluster: r.Cluster}
		if _, ok := counts[k]; !ok {
			clustersOf[r.Category] = append(clustersOf[r.Category], r.Cluster)
		}
		sums[k] += r.Salary
		counts[k]++
	}

	aggs := make([]models.CategoryClusterAggregate, 0, len(counts))
	for _, category := range order {
		clusters := clustersOf[category]
		sort.Slice(clusters, func(i, j int) bool { return clusters[i] < clusters[j] })
		for _, cluster := range clusters {
			k := groupKey{category: category, cluster: cluster}
			n := counts[k]
			aggs = append(aggs, models.CategoryClusterAggregate{
				Category: category,
				Cluster:  cluster,
				Mean:     sums[k] / float64(n),
				Count:    n,
			})
		}
	}
	return aggs
}

// SortByMeanDesc returns a copy of aggs ordered by descending mean; equal means keep their order
func SortByMeanDesc(aggs []models.CategoryClusterAggregate) []models.CategoryClusterAggregate {
	out := append([]models.CategoryClusterAggregate(nil), aggs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Mean > out[j].Mean
	})
	return out
}

// OrderByCategories returns a copy of aggs arranged by the position of their
// category in order, then by cluster id. Categories missing from order go last
// in their existing relative order.
func OrderByCategories(aggs []models.CategoryClusterAggregate, order []string) []models.CategoryClusterAggregate {
	rank := make(map[string]int, len(order))
	for i, c := range order {
		if _, dup := rank[c]; !dup {
			rank[c] = i
		}
	}
	position := func(category string) int {
		if r, ok := rank[category]; ok {
			return r
		}
		return len(order)
	}

	out := append([]models.CategoryClusterAggregate(nil), aggs...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := position(out[i].Category), position(out[j].Category)
		if pi != pj {
			return pi < pj
		}
		return out[i].Cluster < out[j].Cluster
	})
	return out
}

// CategoryOrder lists the categories of records in order of first appearance
func CategoryOrder(records []models.SalaryRecord) []string {
	seen := make(map[string]struct{})
	var order []string
	for _, r := range records {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		order = append(order, r.Category)
	}
	return order
}
