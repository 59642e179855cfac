package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/railing/pkg/cache"
	railerrors "github.com/matzehuels/railing/pkg/errors"
	"github.com/matzehuels/railing/pkg/observability"
	"github.com/matzehuels/railing/pkg/placement"
)

// memCache is an in-memory Cache that can be told to fail.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
	failSet bool
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, false, errors.New("get failed")
	}
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errors.New("set failed")
	}
	m.data[key] = data
	m.ttls[key] = ttl
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

type recordingHooks struct {
	observability.NoopCacheHooks
	observability.NoopPlacementHooks
	mu     sync.Mutex
	hits   int
	misses int
	sets   int
	placed int
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	h.hits++
	h.mu.Unlock()
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	h.misses++
	h.mu.Unlock()
}

func (h *recordingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	h.sets++
	h.mu.Unlock()
}

func (h *recordingHooks) OnPlaceComplete(context.Context, float64, string, int, time.Duration, error) {
	h.mu.Lock()
	h.placed++
	h.mu.Unlock()
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"table", false},
		{"json", false},
		{"plain", false},
		{"svg", true},
		{"JSON", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions(200)
	if opts.Length != 200 || opts.PostWidth != 5 || opts.TargetGap != 18 {
		t.Errorf("DefaultOptions(200) = %+v", opts)
	}
	if got := opts.Config(); got != placement.DefaultConfig() {
		t.Errorf("Config() = %+v, want defaults", got)
	}
}

func TestRunnerPlaceCaches(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetCacheHooks(hooks)
	observability.SetPlacementHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())

	opts := DefaultOptions(200)
	opts.TTL = time.Hour

	first, err := r.Place(ctx, opts)
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if first.CacheHit {
		t.Error("first Place should miss the cache")
	}
	if first.Layout.Candidate != placement.CandidateMoved || first.Layout.Posts() != 8 {
		t.Errorf("first layout = %+v", first.Layout)
	}

	second, err := r.Place(ctx, opts)
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if !second.CacheHit {
		t.Error("second Place should hit the cache")
	}
	if len(second.Layout.Offsets) != len(first.Layout.Offsets) {
		t.Errorf("cached offsets = %v, want %v", second.Layout.Offsets, first.Layout.Offsets)
	}
	for i := range first.Layout.Offsets {
		if second.Layout.Offsets[i] != first.Layout.Offsets[i] {
			t.Errorf("cached offset %d = %v, want %v", i, second.Layout.Offsets[i], first.Layout.Offsets[i])
		}
	}

	key := r.Keyer.LayoutKey(opts.LayoutKeyOpts())
	if mc.ttls[key] != time.Hour {
		t.Errorf("stored ttl = %v, want 1h", mc.ttls[key])
	}
	if hooks.misses != 1 || hooks.hits != 1 || hooks.sets != 1 || hooks.placed != 1 {
		t.Errorf("hooks = misses %d hits %d sets %d placed %d, want 1 each",
			hooks.misses, hooks.hits, hooks.sets, hooks.placed)
	}
}

func TestRunnerPlaceRefresh(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())

	opts := DefaultOptions(64)
	if _, err := r.Place(ctx, opts); err != nil {
		t.Fatalf("Place error: %v", err)
	}
	opts.Refresh = true
	res, err := r.Place(ctx, opts)
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if res.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestRunnerPlaceInvalidInput(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())

	tests := []struct {
		name string
		opts Options
	}{
		{"span too long", DefaultOptions(10001)},
		{"zero post width", Options{Length: 100, PostWidth: 0, TargetGap: 18}},
		{"zero gap", Options{Length: 100, PostWidth: 5, TargetGap: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Place(ctx, tt.opts)
			if !railerrors.Is(err, railerrors.ErrCodeInvalidInput) {
				t.Errorf("Place error = %v, want INVALID_INPUT", err)
			}
		})
	}
	if len(mc.data) != 0 {
		t.Errorf("invalid requests should not be cached, cache has %d entries", len(mc.data))
	}
}

func TestRunnerPlaceEmptyLayout(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Place(context.Background(), DefaultOptions(0))
	if err != nil {
		t.Fatalf("Place(0) error: %v", err)
	}
	if !res.Layout.Empty() || res.Layout.Candidate != placement.CandidateNone {
		t.Errorf("Place(0) layout = %+v, want empty", res.Layout)
	}
}

func TestRunnerCacheFailuresAreIgnored(t *testing.T) {
	mc := newMemCache()
	mc.failGet = true
	mc.failSet = true
	r := NewRunner(mc, nil, quietLogger())

	res, err := r.Place(context.Background(), DefaultOptions(100))
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if res.CacheHit || res.Layout.Posts() != 4 {
		t.Errorf("Place result = %+v", res)
	}
}

func TestRunnerCorruptEntryRecomputed(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())

	opts := DefaultOptions(100)
	key := r.Keyer.LayoutKey(opts.LayoutKeyOpts())
	mc.data[key] = []byte("{broken")

	res, err := r.Place(ctx, opts)
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if res.CacheHit {
		t.Error("corrupt entry should not count as a hit")
	}
	if string(mc.data[key]) == "{broken" {
		t.Error("corrupt entry should be overwritten")
	}
}

func TestRunnerCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, quietLogger())
	if _, err := r.Place(ctx, DefaultOptions(100)); !errors.Is(err, context.Canceled) {
		t.Errorf("Place error = %v, want context.Canceled", err)
	}
}

func TestRunnerWithFileCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(fc, cache.NewScopedKeyer(nil, "test:"), quietLogger())
	defer r.Close()

	if _, err := r.Place(ctx, DefaultOptions(46)); err != nil {
		t.Fatalf("Place error: %v", err)
	}
	res, err := r.Place(ctx, DefaultOptions(46))
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if !res.CacheHit {
		t.Error("second Place should hit the file cache")
	}
	if res.Layout.Candidate != placement.CandidateMoved {
		t.Errorf("cached candidate = %v, want moved", res.Layout.Candidate)
	}
}
