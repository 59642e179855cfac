// Package placement computes where balusters go along a railing span.
//
// Given a span length, a post width and a target gap between posts, the
// engine returns the offsets from the start of the span to the leading edge
// of every post. Adjacent posts are always exactly one pitch apart, where
//
//	pitch = TargetGap + PostWidth
//
// # Candidate Layouts
//
// Two symmetric layouts compete for every span:
//
//   - Moved: the midpoint of the span falls in the middle of the gap between
//     the two central posts. This is the preferred layout.
//   - Center: the center of one post coincides with the midpoint of the span.
//
// Both are produced by [Tile], which anchors a lattice of post centers on a
// seed position and fills the span outward from it. The moved layout wins
// unless its first post would leave less than TargetGap/2 of clearance at
// the start of the span, in which case the center layout is returned.
// If the moved layout cannot place a single post the span is infeasible and
// an empty layout is returned without an error.
//
// # Validation
//
// Configuration is stored verbatim by [New] and checked on every call.
// A non-positive post width or target gap, or a span longer than
// [MaxSpanLength], yields an error with code INVALID_INPUT. Non-positive
// span lengths are not rejected; they tile to an empty layout.
//
// # Usage
//
//	eng := placement.NewDefault()
//	offsets, err := eng.Offsets(200)
//	// offsets == [17 40 63 86 109 132 155 178]
//
// Engines are immutable and safe for concurrent use.
package placement
