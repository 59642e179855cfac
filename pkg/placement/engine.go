package placement

import (
	"github.com/matzehuels/railing/pkg/errors"
)

const (
	// DefaultPostWidth is the baluster width in centimeters.
	DefaultPostWidth = 5.0

	// DefaultTargetGap is the gap between adjacent post edges in centimeters.
	DefaultTargetGap = 18.0

	// MaxSpanLength is the longest span accepted, in centimeters.
	MaxSpanLength = 10000.0
)

// Config holds the dimensions that stay fixed for an engine.
type Config struct {
	PostWidth float64 `json:"post_width" toml:"post_width"`
	TargetGap float64 `json:"target_gap" toml:"target_gap"`
}

// DefaultConfig returns the 5 cm post, 18 cm gap configuration.
func DefaultConfig() Config {
	return Config{PostWidth: DefaultPostWidth, TargetGap: DefaultTargetGap}
}

// Pitch returns the center-to-center distance between adjacent posts.
func (c Config) Pitch() float64 {
	return c.TargetGap + c.PostWidth
}

// Validate reports whether the configuration and span length can be placed.
func (c Config) Validate(length float64) error {
	if err := errors.ValidatePositive("post width", c.PostWidth); err != nil {
		return err
	}
	if err := errors.ValidatePositive("target gap", c.TargetGap); err != nil {
		return err
	}
	return errors.ValidateMax("span length", length, MaxSpanLength)
}

// Engine places posts for a fixed configuration.
type Engine struct {
	cfg Config
}

// New creates an engine. The configuration is not validated until a
// placement is requested.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// NewDefault creates an engine with [DefaultConfig].
func NewDefault() *Engine {
	return New(DefaultConfig())
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Offsets returns the leading-edge offset of every post along a span of the
// given length, in ascending order. An infeasible span yields an empty slice
// and a nil error.
func (e *Engine) Offsets(length float64) ([]float64, error) {
	l, err := e.Place(length)
	if err != nil {
		return nil, err
	}
	return l.Offsets, nil
}

// Place computes both candidate layouts and returns the selected one,
// tagged with the candidate that won.
func (e *Engine) Place(length float64) (Layout, error) {
	if err := e.cfg.Validate(length); err != nil {
		return Layout{}, err
	}

	pitch := e.cfg.Pitch()
	moved := e.toOffsets(Tile(e.movedSeed(length), length, pitch))
	center := e.toOffsets(Tile(length/2, length, pitch))

	l := Layout{
		Length:    length,
		PostWidth: e.cfg.PostWidth,
		TargetGap: e.cfg.TargetGap,
	}
	switch {
	case len(moved) == 0:
		l.Candidate = CandidateNone
		l.Offsets = []float64{}
	case moved[0] < e.cfg.TargetGap/2:
		// Not enough clearance before the first post.
		l.Candidate = CandidateCenter
		l.Offsets = center
	default:
		l.Candidate = CandidateMoved
		l.Offsets = moved
	}
	return l, nil
}

// movedSeed is the center of the post just left of the central gap.
func (e *Engine) movedSeed(length float64) float64 {
	return (length - e.cfg.TargetGap - e.cfg.PostWidth) / 2
}

// toOffsets shifts post centers to leading edges.
func (e *Engine) toOffsets(centers []float64) []float64 {
	half := e.cfg.PostWidth / 2
	out := make([]float64, len(centers))
	for i, c := range centers {
		out[i] = c - half
	}
	return out
}
