package service

import (
	"context"
	"errors"
	"time"

	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/repository/unitofwork"
	"pharaohvault-be/pkg/metal"
	"pharaohvault-be/pkg/quote"

	"github.com/patrickmn/go-cache"
)

const pricesCacheKey = "metal_prices"

type IMetalPriceService interface {
	List(ctx context.Context) ([]*dto.MetalPriceResponse, error)
	Sync(ctx context.Context) ([]*dto.MetalPriceResponse, error)
	// SpotPrices returns the latest price per troy ounce for every known metal.
	SpotPrices(ctx context.Context) (map[metal.Metal]metal.SpotPrice, error)
}

type metalPriceService struct {
	uowFactory unitofwork.RepositoryFactory
	fetcher    quote.Fetcher
	cache      *cache.Cache
	logger     logger.ILogger
}

func NewMetalPriceService(uowFactory unitofwork.RepositoryFactory, fetcher quote.Fetcher, ttl time.Duration, logger logger.ILogger) IMetalPriceService {
	return &metalPriceService{
		uowFactory: uowFactory,
		fetcher:    fetcher,
		cache:      cache.New(ttl, 2*ttl),
		logger:     logger,
	}
}

func (s *metalPriceService) load(ctx context.Context) ([]*entity.MetalPrice, error) {
	if cached, found := s.cache.Get(pricesCacheKey); found {
		return cached.([]*entity.MetalPrice), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	prices, err := uow.MetalPriceRepository().FindAll(ctx)
	if err != nil {
		return nil, apperror.Persistence("Failed to load metal prices", err)
	}
	if len(prices) > 0 {
		s.cache.SetDefault(pricesCacheKey, prices)
	}
	return prices, nil
}

func (s *metalPriceService) List(ctx context.Context) ([]*dto.MetalPriceResponse, error) {
	prices, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return toMetalPriceResponses(prices), nil
}

// Sync pulls fresh quotes and overwrites the stored price per metal.
func (s *metalPriceService) Sync(ctx context.Context) ([]*dto.MetalPriceResponse, error) {
	quotes, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Error("PRICES", "Price fetch failed", map[string]interface{}{"error": err.Error()})
		return nil, quoteError(err)
	}

	prices := make([]*entity.MetalPrice, 0, len(quotes))
	for _, q := range quotes {
		prices = append(prices, &entity.MetalPrice{
			MetalSymbol: q.Metal,
			Price:       q.PerOunce,
			Currency:    "USD",
			LastUpdated: q.FetchedAt,
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MetalPriceRepository().UpsertAll(ctx, prices); err != nil {
		s.logger.Error("PRICES", "Price upsert failed", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Persistence("Database update failed", err)
	}

	s.cache.Delete(pricesCacheKey)

	s.logger.Info("PRICES", "Metal prices updated", map[string]interface{}{"count": len(prices)})

	return toMetalPriceResponses(prices), nil
}

func (s *metalPriceService) SpotPrices(ctx context.Context) (map[metal.Metal]metal.SpotPrice, error) {
	prices, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	spots := make(map[metal.Metal]metal.SpotPrice, len(prices))
	for _, p := range prices {
		spots[p.MetalSymbol] = metal.SpotPrice{PerUnit: p.Price, Unit: metal.TroyOunce}
	}
	return spots, nil
}

func quoteError(err error) error {
	switch {
	case errors.Is(err, quote.ErrQuotaExceeded):
		return apperror.Upstream("quota_exceeded", "Monthly API quota exceeded. Please upgrade your Gold API plan.", err)
	case errors.Is(err, quote.ErrInvalidPrice):
		return apperror.Upstream("invalid_price", "Invalid price data received from Gold API.", err)
	}
	return apperror.Upstream("price_provider_error", "Gold API request failed", err)
}

func toMetalPriceResponses(prices []*entity.MetalPrice) []*dto.MetalPriceResponse {
	res := make([]*dto.MetalPriceResponse, 0, len(prices))
	for _, p := range prices {
		res = append(res, &dto.MetalPriceResponse{
			MetalSymbol: string(p.MetalSymbol),
			Price:       p.Price,
			Currency:    p.Currency,
			LastUpdated: p.LastUpdated,
		})
	}
	return res
}
