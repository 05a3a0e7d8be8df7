package dataset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcher_InvalidatesOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	records, categories := writeInputs(t)
	loader := NewLoader(FileSource{Path: records}, FileSource{Path: categories}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := loader.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, loader.Cache().Len())

	w, err := NewWatcher(loader.Cache(), nil, loader.Records, loader.Categories)
	require.NoError(t, err)

	changed := make(chan string, 4)
	w.OnChange(func(path string) { changed <- path })
	require.NoError(t, w.Start(ctx))

	touch(t, records, recordsCSV+"1000000,Datos,1,Analista\n", time.Hour)

	select {
	case path := <-changed:
		assert.Equal(t, FileSource{Path: records}.Key(), path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
	assert.Equal(t, 1, loader.Cache().Len())

	ds, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, ds.Records, 4)

	w.Stop()
	w.Stop()
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(NewCache(nil), nil, &HTTPSource{URL: "https://example.org/x.csv"})
	require.NoError(t, err)
	assert.Empty(t, w.files)
	w.Stop()
	assert.NoError(t, w.Start(context.Background()), "start after stop is a no-op")
}
