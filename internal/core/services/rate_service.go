package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fxtrack/fxtrack/internal/apperrors"
	portssvc "github.com/fxtrack/fxtrack/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// cachedRates is the most recent successful fetch for one base currency.
type cachedRates struct {
	rates     map[string]float64
	fetchedAt time.Time
}

// rateService serves conversion rates through a last-fetch-wins cache.
//
// Each fetch for a base currency is numbered; a completed fetch installs its
// result only if no newer fetch for the same base started in the meantime.
// A superseded result is discarded, so the cache slot always reflects the
// latest request rather than whichever response happened to land last.
type rateService struct {
	BaseService
	provider portssvc.RateProvider
	ttl      time.Duration

	mu    sync.Mutex
	gen   map[string]uint64
	cache map[string]cachedRates
}

// NewRateService creates a rate service over the given provider. ttl bounds
// how long a cached mapping is considered fresh.
func NewRateService(provider portssvc.RateProvider, ttl time.Duration) portssvc.RateSvcFacade {
	return &rateService{
		provider: provider,
		ttl:      ttl,
		gen:      make(map[string]uint64),
		cache:    make(map[string]cachedRates),
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// Rates returns the code->rate mapping for base, fetching when the cache is
// cold or stale. Failures are not retried; a stale cached mapping is served
// as fallback so a flaky rate service degrades rather than breaks the form.
func (s *rateService) Rates(ctx context.Context, base string) (map[string]float64, error) {
	base = strings.ToUpper(base)
	if len(base) != 3 {
		return nil, fmt.Errorf("%w: base currency code must be 3 letters", apperrors.ErrValidation)
	}

	s.mu.Lock()
	if cached, ok := s.cache[base]; ok && time.Since(cached.fetchedAt) < s.ttl {
		s.mu.Unlock()
		return cached.rates, nil
	}
	s.gen[base]++
	myGen := s.gen[base]
	s.mu.Unlock()

	rates, err := s.provider.LatestRates(ctx, base)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.LogError(ctx, err, "Rate fetch failed", slog.String("base", base))
		if cached, ok := s.cache[base]; ok {
			// Stale but better than nothing; the caller decides.
			return cached.rates, nil
		}
		return nil, fmt.Errorf("failed to fetch rates for %s: %w", base, err)
	}

	if s.gen[base] != myGen {
		// A newer fetch superseded this one; discard our result in favor of
		// whatever the newer fetch installed (or will install).
		if cached, ok := s.cache[base]; ok {
			return cached.rates, nil
		}
		return rates, nil
	}

	s.cache[base] = cachedRates{rates: rates, fetchedAt: time.Now()}
	s.LogInfo(ctx, "Rates refreshed", slog.String("base", base), slog.Int("count", len(rates)))
	return rates, nil
}

// Currencies returns the sorted currency codes quoted against base.
func (s *rateService) Currencies(ctx context.Context, base string) ([]string, error) {
	rates, err := s.Rates(ctx, base)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// ConversionRate returns the multiplier from one currency to another. A
// missing or non-positive rate is a validation failure; NaN never escapes.
func (s *rateService) ConversionRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	rates, err := s.Rates(ctx, from)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := rates[strings.ToUpper(to)]
	if !ok || rate <= 0 {
		return decimal.Zero, fmt.Errorf("%w: no usable rate from %s to %s", apperrors.ErrValidation, from, to)
	}

	return decimal.NewFromFloat(rate), nil
}
