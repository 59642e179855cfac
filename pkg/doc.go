// Package pkg holds the libraries behind the railing CLI and HTTP API.
//
// # Overview
//
// Railing places balusters along a railing span. The pkg directory is
// organized as:
//
//  1. [placement] - The placement engine (pure computation)
//  2. [pipeline] - Runs placements through a cache and reports events
//  3. [cache] - File, Redis and no-op layout caches
//  4. [config] - TOML configuration file
//  5. [errors] - Coded errors shared by the CLI and the API
//  6. [observability] - Hooks for logging and metrics
//  7. [buildinfo] - Version information injected at build time
//
// # Data Flow
//
//	span length + post width + target gap
//	         ↓
//	    [pipeline] Runner (cache lookup)
//	         ↓
//	    [placement] Engine (moved vs. center layout)
//	         ↓
//	    offsets (cm from span start to each post's leading edge)
//
// # Quick Start
//
//	eng := placement.NewDefault()
//	offsets, err := eng.Offsets(200)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(offsets) // [17 40 63 86 109 132 155 178]
//
// [placement]: github.com/matzehuels/railing/pkg/placement
// [pipeline]: github.com/matzehuels/railing/pkg/pipeline
// [cache]: github.com/matzehuels/railing/pkg/cache
// [config]: github.com/matzehuels/railing/pkg/config
// [errors]: github.com/matzehuels/railing/pkg/errors
// [observability]: github.com/matzehuels/railing/pkg/observability
// [buildinfo]: github.com/matzehuels/railing/pkg/buildinfo
package pkg
