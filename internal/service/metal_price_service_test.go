package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/pkg/metal"
	"pharaohvault-be/pkg/quote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	quotes []quote.Quote
	err    error
	calls  int
}

func (f *stubFetcher) Fetch(ctx context.Context) ([]quote.Quote, error) {
	f.calls++
	return f.quotes, f.err
}

func TestMetalPriceSyncAndList(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	now := time.Now()
	fetcher := &stubFetcher{quotes: []quote.Quote{
		{Metal: metal.Gold, PerOunce: 2400, FetchedAt: now},
		{Metal: metal.Silver, PerOunce: 30, FetchedAt: now},
	}}
	svc := NewMetalPriceService(store, fetcher, time.Minute, logger.NewNopLogger())

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	synced, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Len(t, synced, 2)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "gold", listed[0].MetalSymbol)
	assert.Equal(t, 2400.0, listed[0].Price)

	spots, err := svc.SpotPrices(ctx)
	require.NoError(t, err)
	assert.Equal(t, metal.SpotPrice{PerUnit: 30, Unit: metal.TroyOunce}, spots[metal.Silver])
}

func TestMetalPriceListIsCached(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	fetcher := &stubFetcher{quotes: []quote.Quote{{Metal: metal.Gold, PerOunce: 2000, FetchedAt: time.Now()}}}
	svc := NewMetalPriceService(store, fetcher, time.Minute, logger.NewNopLogger())

	_, err := svc.Sync(ctx)
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)

	// A write that bypasses Sync is not visible until the cache expires.
	store.prices["gold"].Price = 1
	listed, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, listed[0].Price)
}

func TestMetalPriceSyncErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantType string
	}{
		{"quota", quote.ErrQuotaExceeded, "quota_exceeded"},
		{"invalid", quote.ErrInvalidPrice, "invalid_price"},
		{"upstream", errors.Join(quote.ErrUpstream, errors.New("503")), "price_provider_error"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc := NewMetalPriceService(newFakeStore(), &stubFetcher{err: c.err}, time.Minute, logger.NewNopLogger())

			_, err := svc.Sync(context.Background())

			appErr, ok := apperror.From(err)
			require.True(t, ok)
			assert.Equal(t, apperror.KindUpstream, appErr.Kind)
			assert.Equal(t, c.wantType, appErr.Type)
		})
	}
}

func TestMetalPriceSyncPersistenceError(t *testing.T) {
	store := newFakeStore()
	store.failPriceUpsert = errors.New("db down")
	fetcher := &stubFetcher{quotes: []quote.Quote{{Metal: metal.Gold, PerOunce: 2000, FetchedAt: time.Now()}}}
	svc := NewMetalPriceService(store, fetcher, time.Minute, logger.NewNopLogger())

	_, err := svc.Sync(context.Background())
	assert.ErrorIs(t, err, apperror.ErrPersistence)
}
