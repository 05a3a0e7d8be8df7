// Package web serves the dashboard over HTTP: a server-rendered page plus a
// small read-only JSON API over the same report.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fr4nk3nst1ner/salarydash/internal/analytics"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

const maxBins = 500

// DatasetLoader returns the current dataset
type DatasetLoader interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

// Options configure a Server
type Options struct {
	// API routes require basic auth when both are set
	Username string
	Password string
}

// Server renders reports for HTTP clients
type Server struct {
	loader   DatasetLoader
	pipeline *analytics.Pipeline
	logger   *zap.Logger
	opts     Options
	router   *gin.Engine
	index    *template.Template

	mu         sync.Mutex
	lastDS     *models.Dataset
	lastReport *analytics.Report
}

// NewServer wires the routes
func NewServer(loader DatasetLoader, pipeline *analytics.Pipeline, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		loader:   loader,
		pipeline: pipeline,
		logger:   logger,
		opts:     opts,
	}
	s.index = s.indexTemplate()
	s.router = s.routes()
	return s
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.logger))

	// Public endpoints
	router.GET("/health", s.handleHealth)
	router.GET("/", s.handleIndex)

	api := router.Group("/api")
	if s.opts.Username != "" && s.opts.Password != "" {
		api.Use(gin.BasicAuthForRealm(gin.Accounts{s.opts.Username: s.opts.Password}, "salarydash"))
	}
	api.GET("/metrics", s.handleMetrics)
	api.GET("/summary", s.handleSummary)
	api.GET("/clusters", s.handleClusters)
	api.GET("/histogram", s.handleHistogram)
	api.GET("/categories/means", s.handleCategoryMeans)
	api.GET("/boxstats", s.handleBoxStats)

	return router
}

// Run serves on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if s.opts.Username != "" {
			s.logger.Info("web server listening", zap.String("addr", addr), zap.Bool("api_auth", true))
		} else {
			s.logger.Warn("web server listening with a public API (set WEB_USERNAME/WEB_PASSWORD to protect it)", zap.String("addr", addr))
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// report loads the dataset and runs the pipeline, reusing the last report
// while the dataset is unchanged
func (s *Server) report(ctx context.Context) (*models.Dataset, *analytics.Report, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ds == s.lastDS && s.lastReport != nil {
		return ds, s.lastReport, nil
	}
	r, err := s.pipeline.Run(ds)
	if err != nil {
		return nil, nil, err
	}
	s.lastDS, s.lastReport = ds, r
	return ds, r, nil
}

func (s *Server) withReport(c *gin.Context, fn func(*models.Dataset, *analytics.Report)) {
	ds, r, err := s.report(c.Request.Context())
	if err != nil {
		s.logger.Error("report unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	fn(ds, r)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (s *Server) handleMetrics(c *gin.Context) {
	s.withReport(c, func(ds *models.Dataset, r *analytics.Report) {
		c.JSON(http.StatusOK, gin.H{
			"metrics":             r.Metrics,
			"distinct_categories": r.DistinctCategories,
			"loaded_at":           ds.LoadedAt,
		})
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	s.withReport(c, func(_ *models.Dataset, r *analytics.Report) {
		c.JSON(http.StatusOK, r.Summary)
	})
}

// handleClusters orders by descending mean, or by the category order of the
// row-level file with ?order=category
func (s *Server) handleClusters(c *gin.Context) {
	s.withReport(c, func(ds *models.Dataset, r *analytics.Report) {
		switch c.DefaultQuery("order", "mean") {
		case "mean":
			c.JSON(http.StatusOK, r.Clusters)
		case "category":
			c.JSON(http.StatusOK, analytics.OrderByCategories(r.Clusters, analytics.CategoryOrder(ds.Records)))
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "order must be mean or category"})
		}
	})
}

func (s *Server) handleHistogram(c *gin.Context) {
	bins := s.pipeline.Bins
	if raw := c.Query("bins"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxBins {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("bins must be an integer between 1 and %d", maxBins)})
			return
		}
		bins = n
	}
	s.withReport(c, func(ds *models.Dataset, r *analytics.Report) {
		if bins == s.pipeline.Bins {
			c.JSON(http.StatusOK, r.Histogram)
			return
		}
		c.JSON(http.StatusOK, analytics.Histogram(ds.Records, bins))
	})
}

func (s *Server) handleCategoryMeans(c *gin.Context) {
	s.withReport(c, func(_ *models.Dataset, r *analytics.Report) {
		c.JSON(http.StatusOK, r.CategoryMeans)
	})
}

func (s *Server) handleBoxStats(c *gin.Context) {
	s.withReport(c, func(_ *models.Dataset, r *analytics.Report) {
		c.JSON(http.StatusOK, r.BoxStats)
	})
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
