package web

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fr4nk3nst1ner/salarydash/internal/analytics"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

type indexData struct {
	Report   *analytics.Report
	LoadedAt time.Time
	Error    string
	MaxMean  float64
	MaxBin   int
}

func (s *Server) handleIndex(c *gin.Context) {
	data := indexData{}
	status := http.StatusOK

	ds, r, err := s.report(c.Request.Context())
	if err != nil {
		s.logger.Error("report unavailable", zap.Error(err))
		status = http.StatusServiceUnavailable
		data.Error = err.Error()
	} else {
		data.Report = r
		data.LoadedAt = ds.LoadedAt
		for _, m := range r.CategoryMeans {
			if m.Mean > data.MaxMean {
				data.MaxMean = m.Mean
			}
		}
		for _, b := range r.Histogram {
			if b.Total() > data.MaxBin {
				data.MaxBin = b.Total()
			}
		}
	}

	var buf bytes.Buffer
	if err := s.index.Execute(&buf, data); err != nil {
		s.logger.Error("render index", zap.Error(err))
		c.String(http.StatusInternalServerError, "render error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) indexTemplate() *template.Template {
	return template.Must(template.New("index").Funcs(template.FuncMap{
		"money": s.pipeline.Currency.Format,
		"pct": func(v, max float64) float64 {
			if max <= 0 {
				return 0
			}
			return v / max * 100
		},
		"binpct": func(bin models.HistogramBin, max int) float64 {
			if max <= 0 {
				return 0
			}
			return float64(bin.Total()) / float64(max) * 100
		},
		"count": func(bin models.HistogramBin, c models.Cluster) int {
			return bin.Counts[c]
		},
		"low":  func() models.Cluster { return models.ClusterLow },
		"high": func() models.Cluster { return models.ClusterHigh },
	}).Parse(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Dashboard Salarial</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #1f2937; }
.cards { display: flex; gap: 1rem; }
.card { border: 1px solid #e5e7eb; border-radius: 8px; padding: 1rem 1.5rem; }
.card .label { font-size: .85rem; color: #6b7280; }
.card .value { font-size: 1.6rem; font-weight: 600; }
table { border-collapse: collapse; margin-top: 1rem; }
th, td { border-bottom: 1px solid #e5e7eb; padding: .4rem .8rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.bar { background: #4F46E5; height: 1rem; }
.bar.bajo { background: #06B6D4; }
.bar.alto { background: #EC4899; }
.error { color: #b91c1c; }
</style>
</head>
<body>
<h1>Dashboard Salarial</h1>
{{if .Error}}
<p class="error" id="error">{{.Error}}</p>
{{else}}
{{with .Report}}
<div class="cards" id="metrics">
  <div class="card"><div class="label">Registros analizados</div><div class="value" data-metric="count">{{.Metrics.Count}}</div></div>
  <div class="card"><div class="label">Salario promedio (CRC)</div><div class="value" data-metric="mean">{{money .Metrics.Mean}}</div></div>
  <div class="card"><div class="label">Salario mediano (CRC)</div><div class="value" data-metric="median">{{money .Metrics.Median}}</div></div>
  <div class="card"><div class="label">Categorías semánticas</div><div class="value" data-metric="categories">{{.DistinctCategories}}</div></div>
</div>
{{end}}

<h2>Distribución salarial por cluster</h2>
<table id="histogram">
<tr><th>Rango</th><th>bajo</th><th>alto</th><th></th></tr>
{{range .Report.Histogram}}
<tr><td>{{money .Lower}} – {{money .Upper}}</td><td>{{count . low}}</td><td>{{count . high}}</td>
<td style="width:20rem"><div class="bar" style="width:{{binpct . $.MaxBin}}%"></div></td></tr>
{{end}}
</table>

<h2>Salario promedio por categoría semántica (CRC)</h2>
<table id="category-means">
{{range .Report.CategoryMeans}}
<tr><td>{{.Category}}</td><td>{{money .Mean}}</td><td style="width:20rem"><div class="bar" style="width:{{pct .Mean $.MaxMean}}%"></div></td></tr>
{{end}}
</table>

<h2>Salario promedio por categoría y cluster</h2>
<table id="clusters">
<tr><th>Categoría semántica</th><th>Cluster</th><th>Salario promedio</th><th>Puestos</th></tr>
{{range .Report.Clusters}}
<tr><td>{{.Category}}</td><td>{{.Cluster}}</td><td>{{money .Mean}}</td><td>{{.Count}}</td></tr>
{{end}}
</table>

<h2>Resumen salarial por categoría</h2>
<table id="summary">
<tr><th>Categoría semántica</th><th>Puestos</th><th>Salario promedio</th><th>Salario mediana</th><th>Salario mínimo</th><th>Salario máximo</th><th>Cluster dominante</th></tr>
{{range .Report.Summary}}
<tr><td>{{.Category}}</td><td>{{.Postings}}</td><td>{{.Mean}}</td><td>{{.Median}}</td><td>{{.Min}}</td><td>{{.Max}}</td><td>{{.DominantCluster}}</td></tr>
{{end}}
</table>
<p><small>Datos cargados: {{.LoadedAt.Format "2006-01-02 15:04:05"}}</small></p>
{{end}}
</body>
</html>
`
