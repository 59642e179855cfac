package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/railing/pkg/cache"
	"github.com/matzehuels/railing/pkg/observability"
	"github.com/matzehuels/railing/pkg/placement"
)

const keyTypeLayout = "layout"

// Runner computes layouts through a cache.
//
// The Runner holds no per-request state, so one Runner may serve many
// goroutines as long as its Cache is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Place returns the layout for opts, from cache when possible.
//
// Invalid input is returned as an INVALID_INPUT error and never cached.
// Cache failures are logged and otherwise ignored.
func (r *Runner) Place(ctx context.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	key := r.Keyer.LayoutKey(opts.LayoutKeyOpts())

	if !opts.Refresh {
		if l, ok := r.lookup(ctx, key); ok {
			return &Result{Layout: l, CacheHit: true, Duration: time.Since(start)}, nil
		}
	}

	hooks := observability.Placement()
	hooks.OnPlaceStart(ctx, opts.Length)
	l, err := placement.New(opts.Config()).Place(opts.Length)
	hooks.OnPlaceComplete(ctx, opts.Length, l.Candidate.String(), l.Posts(), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("place %g: %w", opts.Length, err)
	}

	r.store(ctx, key, l, opts.TTL)
	r.Logger.Debug("computed layout",
		"length", opts.Length,
		"candidate", l.Candidate,
		"posts", l.Posts())

	return &Result{Layout: l, Duration: time.Since(start)}, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (placement.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return placement.Layout{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return placement.Layout{}, false
	}

	var l placement.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		// Unreadable entries are recomputed and overwritten.
		r.Logger.Debug("discarding cached layout", "err", err)
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return placement.Layout{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeLayout)
	return l, true
}

func (r *Runner) store(ctx context.Context, key string, l placement.Layout, ttl time.Duration) {
	data, err := json.Marshal(l)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
