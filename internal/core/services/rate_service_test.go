package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fxtrack/fxtrack/internal/apperrors"
	"github.com/fxtrack/fxtrack/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRateProvider delegates to a swappable function so tests can control
// timing and results per call.
type fakeRateProvider struct {
	latest func(ctx context.Context, base string) (map[string]float64, error)
	calls  atomic.Int32
}

func (f *fakeRateProvider) LatestRates(ctx context.Context, base string) (map[string]float64, error) {
	f.calls.Add(1)
	return f.latest(ctx, base)
}

func TestRateService_CachesWithinTTL(t *testing.T) {
	ctx := context.Background()
	provider := &fakeRateProvider{
		latest: func(ctx context.Context, base string) (map[string]float64, error) {
			return map[string]float64{"EUR": 0.9, "PKR": 277.5}, nil
		},
	}
	svc := services.NewRateService(provider, time.Hour)

	first, err := svc.Rates(ctx, "USD")
	require.NoError(t, err)
	second, err := svc.Rates(ctx, "USD")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), provider.calls.Load(), "second call within TTL must be served from cache")
}

func TestRateService_RefetchesAfterTTL(t *testing.T) {
	ctx := context.Background()
	provider := &fakeRateProvider{
		latest: func(ctx context.Context, base string) (map[string]float64, error) {
			return map[string]float64{"EUR": 0.9}, nil
		},
	}
	svc := services.NewRateService(provider, time.Millisecond)

	_, err := svc.Rates(ctx, "USD")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = svc.Rates(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, int32(2), provider.calls.Load())
}

func TestRateService_NewerFetchSupersedesOlder(t *testing.T) {
	ctx := context.Background()
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	var call atomic.Int32
	provider := &fakeRateProvider{}
	provider.latest = func(ctx context.Context, base string) (map[string]float64, error) {
		if call.Add(1) == 1 {
			close(firstStarted)
			<-release
			// Stale result arriving after a newer fetch completed.
			return map[string]float64{"EUR": 0.5}, nil
		}
		return map[string]float64{"EUR": 0.9}, nil
	}
	svc := services.NewRateService(provider, time.Hour)

	done := make(chan map[string]float64)
	go func() {
		rates, err := svc.Rates(ctx, "USD")
		assert.NoError(t, err)
		done <- rates
	}()
	<-firstStarted

	// Second fetch starts while the first is still in flight and wins.
	newer, err := svc.Rates(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, 0.9, newer["EUR"])

	close(release)
	older := <-done
	assert.Equal(t, 0.9, older["EUR"], "superseded fetch must yield the newer result, not its own")

	// The cache keeps the newer mapping.
	cached, err := svc.Rates(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, 0.9, cached["EUR"])
	assert.Equal(t, int32(2), provider.calls.Load())
}

func TestRateService_ServesStaleOnFetchFailure(t *testing.T) {
	ctx := context.Background()
	var fail atomic.Bool
	provider := &fakeRateProvider{
		latest: func(ctx context.Context, base string) (map[string]float64, error) {
			if fail.Load() {
				return nil, errors.New("upstream down")
			}
			return map[string]float64{"EUR": 0.9}, nil
		},
	}
	svc := services.NewRateService(provider, time.Millisecond)

	_, err := svc.Rates(ctx, "USD")
	require.NoError(t, err)

	fail.Store(true)
	time.Sleep(5 * time.Millisecond)

	rates, err := svc.Rates(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, 0.9, rates["EUR"])
}

func TestRateService_FailureWithEmptyCache(t *testing.T) {
	ctx := context.Background()
	provider := &fakeRateProvider{
		latest: func(ctx context.Context, base string) (map[string]float64, error) {
			return nil, errors.New("upstream down")
		},
	}
	svc := services.NewRateService(provider, time.Hour)

	_, err := svc.Rates(ctx, "USD")
	assert.Error(t, err)
	// No retry: exactly one upstream call per request.
	assert.Equal(t, int32(1), provider.calls.Load())
}

func TestRateService_InvalidBase(t *testing.T) {
	ctx := context.Background()
	provider := &fakeRateProvider{
		latest: func(ctx context.Context, base string) (map[string]float64, error) {
			return map[string]float64{"EUR": 0.9}, nil
		},
	}
	svc := services.NewRateService(provider, time.Hour)

	_, err := svc.Rates(ctx, "US")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, int32(0), provider.calls.Load())
}

func TestRateService_Currencies(t *testing.T) {
	ctx := context.Background()
	provider := &fakeRateProvider{
		latest: func(ctx context.Context, base string) (map[string]float64, error) {
			return map[string]float64{"PKR": 277.5, "EUR": 0.9, "GBP": 0.79}, nil
		},
	}
	svc := services.NewRateService(provider, time.Hour)

	codes, err := svc.Currencies(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, []string{"EUR", "GBP", "PKR"}, codes)
}

func TestRateService_ConversionRate(t *testing.T) {
	ctx := context.Background()
	provider := &fakeRateProvider{
		latest: func(ctx context.Context, base string) (map[string]float64, error) {
			return map[string]float64{"PKR": 277.5, "BAD": 0}, nil
		},
	}
	svc := services.NewRateService(provider, time.Hour)

	rate, err := svc.ConversionRate(ctx, "USD", "PKR")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("277.5").Equal(rate))

	_, err = svc.ConversionRate(ctx, "USD", "XXX")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.ConversionRate(ctx, "USD", "BAD")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
