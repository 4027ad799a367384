package fetch

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/jfalvarez/bookscout/internal/library"
)

// defaultWorkers bounds the fan-out when no pool size is configured.
const defaultWorkers = 8

// Pool fans out many independent JSON lookups and joins the raw bodies by
// key. Each request carries its own timeout through the underlying client, so
// one slow or failing lookup never blocks or fails the others.
type Pool struct {
	fetcher library.Fetcher
	workers int
	logger  *zap.Logger
}

// NewPool builds a Pool running at most workers concurrent lookups.
func NewPool(fetcher library.Fetcher, workers int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{
		fetcher: fetcher,
		workers: workers,
		logger:  logger,
	}
}

// FetchMany issues every lookup concurrently under the worker bound and
// returns the successful bodies keyed by input key. It returns only after
// every request has reached a terminal state; keys whose fetch failed are
// simply absent from the result.
func (p *Pool) FetchMany(ctx context.Context, urls map[string]string) map[string]json.RawMessage {
	results := make(map[string]json.RawMessage, len(urls))
	if len(urls) == 0 {
		return results
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, p.workers)
	)
	for key, url := range urls {
		wg.Add(1)
		sem <- struct{}{}
		go func(key, url string) {
			defer wg.Done()
			defer func() { <-sem }()

			var raw json.RawMessage
			if err := p.fetcher.FetchJSON(ctx, url, &raw); err != nil {
				p.logger.Debug("lookup miss", zap.String("key", key), zap.Error(err))
				return
			}
			mu.Lock()
			results[key] = raw
			mu.Unlock()
		}(key, url)
	}
	wg.Wait()
	return results
}
