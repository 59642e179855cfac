package server

import (
	"math"
	"net/url"
	"strconv"

	railerrors "github.com/matzehuels/railing/pkg/errors"
)

// parseQuery reads an offsets request from URL query parameters.
func parseQuery(q url.Values) (offsetsRequest, error) {
	var req offsetsRequest
	var err error
	if req.Length, err = optionalFloat(q, "length"); err != nil {
		return req, err
	}
	if req.PostWidth, err = optionalFloat(q, "post_width"); err != nil {
		return req, err
	}
	if req.TargetGap, err = optionalFloat(q, "target_gap"); err != nil {
		return req, err
	}
	if v := q.Get("refresh"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, railerrors.New(railerrors.ErrCodeInvalidInput, "refresh must be a boolean, got %q", v)
		}
		req.Refresh = b
	}
	return req, nil
}

// optionalFloat returns nil when the parameter is absent. NaN and infinities
// are rejected because they cannot be encoded in the JSON response.
func optionalFloat(q url.Values, name string) (*float64, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, railerrors.New(railerrors.ErrCodeInvalidInput, "%s must be a finite number, got %q", name, v)
	}
	return &f, nil
}
