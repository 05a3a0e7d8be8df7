package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/salarydash/internal/analytics"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
	"github.com/fr4nk3nst1ner/salarydash/internal/utils"
)

// Salary bands used to color monthly amounts in colones
const (
	bandHigh   = 2_000_000
	bandUpper  = 1_200_000
	bandMiddle = 600_000
)

var clusterStyles = map[models.Cluster]*pterm.Style{
	models.ClusterLow:  pterm.NewStyle(pterm.FgCyan),
	models.ClusterHigh: pterm.NewStyle(pterm.FgMagenta),
}

func clusterStyle(c models.Cluster) *pterm.Style {
	if style, ok := clusterStyles[c]; ok {
		return style
	}
	return pterm.NewStyle(pterm.FgDefault)
}

// ColorizeSalary formats a monthly salary and colors it by band
func ColorizeSalary(value float64, format utils.CurrencyFormat) string {
	formatted := format.Format(value)

	switch {
	case value >= bandHigh:
		return pterm.Green(formatted)
	case value >= bandUpper:
		return pterm.LightGreen(formatted)
	case value >= bandMiddle:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}

// ReportPrinter renders a report to a terminal
type ReportPrinter struct {
	Out      io.Writer
	Currency utils.CurrencyFormat
	// MaxLabel truncates category labels in charts
	MaxLabel int
}

// NewReportPrinter creates a printer with the default currency format
func NewReportPrinter(out io.Writer) *ReportPrinter {
	return &ReportPrinter{
		Out:      out,
		Currency: utils.DefaultCurrency,
		MaxLabel: 40,
	}
}

// Print renders every section of the report in dashboard order
func (p *ReportPrinter) Print(r *analytics.Report) error {
	sections := []struct {
		title  string
		render func(*analytics.Report) (string, error)
	}{
		{"Métricas generales", p.metrics},
		{"Distribución salarial por cluster", p.histogram},
		{"Salario promedio por categoría semántica (CRC)", p.categoryMeans},
		{"Salario promedio por categoría y cluster", p.clusters},
		{"Distribución salarial por categoría semántica", p.boxStats},
		{"Resumen salarial por categoría", p.summary},
	}

	for _, s := range sections {
		body, err := s.render(r)
		if err != nil {
			return fmt.Errorf("render %q: %w", s.title, err)
		}
		fmt.Fprint(p.Out, pterm.DefaultSection.Sprintln(s.title))
		fmt.Fprintln(p.Out, body)
	}
	return nil
}

func (p *ReportPrinter) metrics(r *analytics.Report) (string, error) {
	card := func(label, value string) pterm.Panel {
		return pterm.Panel{Data: pterm.DefaultBox.WithTitle(label).Sprint(value)}
	}
	panels := pterm.Panels{{
		card("Registros analizados", strconv.Itoa(r.Metrics.Count)),
		card("Salario promedio (CRC)", p.Currency.Format(r.Metrics.Mean)),
		card("Salario mediano (CRC)", p.Currency.Format(r.Metrics.Median)),
		card("Categorías semánticas", strconv.Itoa(r.DistinctCategories)),
	}}
	return pterm.DefaultPanel.WithPanels(panels).WithPadding(2).Srender()
}

func (p *ReportPrinter) histogram(r *analytics.Report) (string, error) {
	if len(r.Histogram) == 0 {
		return "", nil
	}
	bars := make(pterm.Bars, 0, len(r.Histogram))
	for _, bin := range r.Histogram {
		bars = append(bars, pterm.Bar{
			Label: p.Currency.Format(bin.Lower) + " - " + p.Currency.Format(bin.Upper),
			Value: bin.Total(),
			Style: clusterStyle(dominantCluster(bin)),
		})
	}
	chart, err := pterm.DefaultBarChart.WithHorizontal().WithBars(bars).WithShowValue().Srender()
	if err != nil {
		return "", err
	}
	return chart + "\n" + legend(), nil
}

func (p *ReportPrinter) categoryMeans(r *analytics.Report) (string, error) {
	if len(r.CategoryMeans) == 0 {
		return "", nil
	}
	// horizontal charts draw the first bar on top; CategoryMeans is ascending
	bars := make(pterm.Bars, 0, len(r.CategoryMeans))
	for i := len(r.CategoryMeans) - 1; i >= 0; i-- {
		m := r.CategoryMeans[i]
		bars = append(bars, pterm.Bar{
			Label: utils.TruncateString(m.Category, p.MaxLabel),
			Value: int(m.Mean),
		})
	}
	return pterm.DefaultBarChart.WithHorizontal().WithBars(bars).WithShowValue().Srender()
}

func (p *ReportPrinter) clusters(r *analytics.Report) (string, error) {
	data := pterm.TableData{{"Categoría semántica", "Cluster", "Salario promedio", "Puestos"}}
	for _, a := range r.Clusters {
		data = append(data, []string{
			a.Category,
			clusterStyle(a.Cluster).Sprint(a.Cluster.String()),
			ColorizeSalary(a.Mean, p.Currency),
			strconv.Itoa(a.Count),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}

func (p *ReportPrinter) boxStats(r *analytics.Report) (string, error) {
	data := pterm.TableData{{"Categoría semántica", "Cluster", "Mín", "Q1", "Mediana", "Q3", "Máx", "n"}}
	for _, b := range r.BoxStats {
		data = append(data, []string{
			b.Category,
			clusterStyle(b.Cluster).Sprint(b.Cluster.String()),
			p.Currency.Format(b.Min),
			p.Currency.Format(b.Q1),
			p.Currency.Format(b.Median),
			p.Currency.Format(b.Q3),
			p.Currency.Format(b.Max),
			strconv.Itoa(b.Count),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}

func (p *ReportPrinter) summary(r *analytics.Report) (string, error) {
	return SummaryTable(r.Summary)
}

// SummaryTable renders the category summary rows as a boxed table
func SummaryTable(rows []models.SummaryRow) (string, error) {
	data := pterm.TableData{analytics.SummaryHeader}
	for _, row := range rows {
		data = append(data, analytics.Cells(row))
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithRightAlignment().WithData(data).Srender()
}

func dominantCluster(bin models.HistogramBin) models.Cluster {
	best := models.ClusterLow
	for _, c := range models.Clusters {
		if bin.Counts[c] > bin.Counts[best] {
			best = c
		}
	}
	return best
}

func legend() string {
	parts := make([]string, 0, len(models.Clusters))
	for _, c := range models.Clusters {
		parts = append(parts, clusterStyle(c).Sprint("■ "+c.String()))
	}
	return "cluster dominante: " + strings.Join(parts, "  ")
}
