package errors

// ValidatePositive checks that a named dimension is strictly positive.
func ValidatePositive(name string, v float64) error {
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateMax checks that a named dimension does not exceed max.
// Only the upper bound is enforced; zero and negative values pass.
func ValidateMax(name string, v, max float64) error {
	if v > max {
		return New(ErrCodeInvalidInput, "%s must be at most %g, got %g", name, max, v)
	}
	return nil
}
