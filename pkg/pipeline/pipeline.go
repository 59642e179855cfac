// Package pipeline runs placements with caching, logging and hooks.
//
// The CLI and the HTTP API both go through a [Runner] so that they share one
// cache layout and report the same events. The placement itself is done by
// package placement; this package only decides whether it needs to run.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Place(ctx, pipeline.DefaultOptions(200))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Layout.Offsets, res.CacheHit)
package pipeline

import (
	"time"

	"github.com/matzehuels/railing/pkg/cache"
	"github.com/matzehuels/railing/pkg/errors"
	"github.com/matzehuels/railing/pkg/placement"
)

// Output formats understood by the CLI and the API.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatPlain = "plain"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatTable: true,
	FormatJSON:  true,
	FormatPlain: true,
}

// ValidateFormat reports whether format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want table, json or plain)", format)
	}
	return nil
}

// Options describes one placement request.
type Options struct {
	Length    float64
	PostWidth float64
	TargetGap float64

	// Refresh skips the cache lookup but still stores the fresh result.
	Refresh bool

	// TTL is how long the result stays cached. Zero means no expiry.
	TTL time.Duration
}

// DefaultOptions returns options for length with the default post width
// and target gap.
func DefaultOptions(length float64) Options {
	cfg := placement.DefaultConfig()
	return Options{
		Length:    length,
		PostWidth: cfg.PostWidth,
		TargetGap: cfg.TargetGap,
	}
}

// Config returns the engine configuration the options describe.
func (o Options) Config() placement.Config {
	return placement.Config{PostWidth: o.PostWidth, TargetGap: o.TargetGap}
}

// LayoutKeyOpts returns the cache key inputs for these options.
func (o Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Length:    o.Length,
		PostWidth: o.PostWidth,
		TargetGap: o.TargetGap,
	}
}

// Result is the outcome of Runner.Place.
type Result struct {
	Layout   placement.Layout `json:"layout"`
	CacheHit bool             `json:"cache_hit"`
	Duration time.Duration    `json:"duration_ns"`
}
