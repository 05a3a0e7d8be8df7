// Package dataset loads the salary and category tables and keeps them cached
// until the underlying files change.
package dataset

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// Table names used in logs and errors
const (
	TableRecords    = "records"
	TableCategories = "categories"
)

// Loader reads both input tables through a shared cache
type Loader struct {
	Records    Source
	Categories Source
	// Wrap, when set, observes each table while it is read from its source
	Wrap ReaderWrapper

	cache  *Cache
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	last     *models.Dataset
	lastGens [2]uint64
}

// NewLoader creates a loader for the two sources. A nil cache gets a private one.
func NewLoader(records, categories Source, cache *Cache, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = NewCache(logger)
	}
	return &Loader{
		Records:    records,
		Categories: categories,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

// Cache returns the cache backing the loader
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Load returns the current dataset. While neither source changed, the same
// *models.Dataset is returned.
func (l *Loader) Load(ctx context.Context) (*models.Dataset, error) {
	records, recordsGen, err := fetch(ctx, l.cache, TableRecords, l.Records, l.Wrap, ReadRecords)
	if err != nil {
		return nil, err
	}
	categories, categoriesGen, err := fetch(ctx, l.cache, TableCategories, l.Categories, l.Wrap, ReadCategories)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	gens := [2]uint64{recordsGen, categoriesGen}
	if l.last != nil && gens == l.lastGens {
		return l.last, nil
	}

	ds := &models.Dataset{
		Records:    records,
		Categories: categories,
		LoadedAt:   l.now(),
	}
	l.last, l.lastGens = ds, gens
	l.logger.Info("dataset loaded",
		zap.Int("records", len(records)),
		zap.Int("categories", len(categories)),
	)
	return ds, nil
}
