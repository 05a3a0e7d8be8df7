package analytics

import "github.com/fr4nk3nst1ner/salarydash/internal/models"

func rec(category string, salary float64, cluster models.Cluster) models.SalaryRecord {
	return models.SalaryRecord{Salary: salary, Category: category, Cluster: cluster}
}

func sampleRecords() []models.SalaryRecord {
	return []models.SalaryRecord{
		rec("Desarrollo de software", 900000, models.ClusterLow),
		rec("Soporte técnico", 450000, models.ClusterLow),
		rec("Desarrollo de software", 2100000, models.ClusterHigh),
		rec("Datos y analítica", 1500000, models.ClusterHigh),
		rec("Soporte técnico", 520000, models.ClusterLow),
		rec("Datos y analítica", 800000, models.ClusterLow),
		rec("Desarrollo de software", 1900000, models.ClusterHigh),
	}
}

func sampleCategories() []models.CategorySummary {
	return []models.CategorySummary{
		{Category: "Soporte técnico", Postings: 2, Mean: 485000, Median: 485000, Min: 450000, Max: 520000, DominantCluster: "0"},
		{Category: "Desarrollo de software", Postings: 3, Mean: 1633333.33, Median: 1900000, Min: 900000, Max: 2100000, DominantCluster: "1"},
		{Category: "Datos y analítica", Postings: 2, Mean: 1150000, Median: 1150000, Min: 800000, Max: 1500000, DominantCluster: "alto"},
	}
}
