package analytics

import (
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
	"github.com/fr4nk3nst1ner/salarydash/internal/utils"
)

// Report is everything the dashboard renders for one dataset
type Report struct {
	Metrics            models.GlobalMetrics              `json:"metrics"`
	DistinctCategories int                               `json:"distinct_categories"`
	Summary            []models.SummaryRow               `json:"summary"`
	Clusters           []models.CategoryClusterAggregate `json:"clusters"`
	Histogram          []models.HistogramBin             `json:"histogram"`
	CategoryMeans      []models.CategoryMean             `json:"category_means"`
	BoxStats           []models.BoxStats                 `json:"box_stats"`
}

// Pipeline holds the presentation knobs of a report run
type Pipeline struct {
	Currency utils.CurrencyFormat
	Bins     int
}

// NewPipeline returns a pipeline with the default currency format and bin count
func NewPipeline() *Pipeline {
	return &Pipeline{
		Currency: utils.DefaultCurrency,
		Bins:     DefaultBins,
	}
}

// Run computes the full report. The output depends only on ds and the pipeline settings.
func (p *Pipeline) Run(ds *models.Dataset) (*Report, error) {
	metrics, err := ComputeGlobalMetrics(ds.Records)
	if err != nil {
		return nil, err
	}

	return &Report{
		Metrics:            metrics,
		DistinctCategories: DistinctCategories(ds.Categories),
		Summary:            BuildSummaryTable(ds.Categories, p.Currency),
		Clusters:           SortByMeanDesc(AggregateByCategoryAndCluster(ds.Records)),
		Histogram:          Histogram(ds.Records, p.Bins),
		CategoryMeans:      CategoryMeans(ds.Categories),
		BoxStats:           BoxStatsByCategory(ds.Records),
	}, nil
}
