package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/pkg/cache"
	"github.com/ougirez/covidboard/internal/pkg/constants"
	"github.com/ougirez/covidboard/internal/pkg/logger"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const userAgent = "covidboard/1.0"

type Options struct {
	Timeout       time.Duration
	Retries       uint64
	RetryInterval time.Duration
}

func OptionsFromConfig() Options {
	return Options{
		Timeout:       viper.GetDuration(constants.ViperFetchTimeoutKey),
		Retries:       uint64(viper.GetInt(constants.ViperFetchRetriesKey)),
		RetryInterval: viper.GetDuration(constants.ViperFetchRetryIntervalKey),
	}
}

type Service struct {
	client        *http.Client
	cache         cache.Cache
	retries       uint64
	retryInterval time.Duration
	now           func() time.Time
}

func NewLoaderService(c cache.Cache, opts Options) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{
		client:        &http.Client{Timeout: opts.Timeout},
		cache:         c,
		retries:       opts.Retries,
		retryInterval: opts.RetryInterval,
		now:           time.Now,
	}
}

// Load returns the table behind src, from the cache when a fresh copy exists.
// Only bodies that parse are cached.
func (s *Service) Load(ctx context.Context, src Source) (*domain.Table, error) {
	cached := true
	body, fetchedAt, err := s.cache.Get(ctx, src.URL)
	if err != nil {
		if !errors.Is(err, constants.ErrCacheMiss) {
			logger.Warnf(ctx, "cache.Get, url-%s: %s", src.URL, err.Error())
		}

		body, err = s.fetch(ctx, src.URL)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", src.Dataset, err)
		}
		fetchedAt = s.now()
		cached = false
	}

	table, err := ParseTable(body, src)
	if err != nil {
		return nil, fmt.Errorf("ParseTable %s: %w", src.Dataset, err)
	}
	table.FetchedAt = fetchedAt

	if !cached {
		if setErr := s.cache.Set(ctx, src.URL, body, fetchedAt); setErr != nil {
			logger.Warnf(ctx, "cache.Set, url-%s: %s", src.URL, setErr.Error())
		}
	}

	logger.Debugf(ctx, "loaded %s: %d rows, fetched at %s", src.Dataset, len(table.Rows), fetchedAt.Format(time.RFC3339))
	return table, nil
}

// LoadAll loads every source concurrently and fails on the first error.
func (s *Service) LoadAll(ctx context.Context, sources []Source) (map[domain.Dataset]*domain.Table, error) {
	tables := make(map[domain.Dataset]*domain.Table, len(sources))
	tablesMx := sync.Mutex{}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, src := range sources {
		src := src
		eg.Go(func() error {
			table, err := s.Load(egCtx, src)
			if err != nil {
				return err
			}

			tablesMx.Lock()
			defer tablesMx.Unlock()
			tables[src.Dataset] = table
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("err in goroutine: %w", err)
	}

	return tables, nil
}

func (s *Service) fetch(ctx context.Context, url string) (body []byte, err error) {
	err = backoff.Retry(
		func() error {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if reqErr != nil {
				return backoff.Permanent(fmt.Errorf("http.NewRequest: %w", reqErr))
			}
			req.Header.Set("User-Agent", userAgent)

			resp, httpErr := s.client.Do(req)
			if httpErr != nil {
				return fmt.Errorf("http.Get: %w", httpErr)
			}
			defer func() {
				_ = resp.Body.Close()
			}()

			if resp.StatusCode != http.StatusOK {
				statusErr := fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
				if resp.StatusCode >= 400 && resp.StatusCode < 500 {
					return backoff.Permanent(statusErr)
				}
				return statusErr
			}

			var readErr error
			body, readErr = io.ReadAll(resp.Body)
			if readErr != nil {
				return fmt.Errorf("read body: %w", readErr)
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryInterval), s.retries),
			ctx,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrUpstream, err.Error())
	}

	return body, nil
}
