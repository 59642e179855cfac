package placement

import (
	"slices"
	"strconv"
)

// Tile returns the ascending post centers of a lattice with the given pitch
// that contains seed and fills a span of the given length.
//
// Positions are first collected by walking backward from seed while they
// stay above zero, each rounded to two decimal places (ties to even). If no position is
// collected the result is empty. Otherwise the lattice is extended forward
// from the rightmost collected position while positions stay below length;
// forward positions are not rounded.
//
// A non-positive pitch yields an empty result.
func Tile(seed, length, pitch float64) []float64 {
	if !(pitch > 0) {
		return nil
	}

	var centers []float64
	for pos := seed; pos > 0; pos -= pitch {
		centers = append(centers, round2(pos))
	}
	if len(centers) == 0 {
		return nil
	}
	slices.Reverse(centers)

	for pos := centers[len(centers)-1] + pitch; pos < length; pos += pitch {
		centers = append(centers, pos)
	}
	return centers
}

// round2 rounds v to two decimal places from its exact binary value, ties to
// even. Scaling by 100 first would round 2.675 up to 2.68.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
