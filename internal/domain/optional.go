package domain

import "time"

// Optional comparisons. When either operand is nil the result is false,
// for every operator including equality.

// LessTime reports a < b.
func LessTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Before(*b)
}

// LessOrEqualTime reports a <= b.
func LessOrEqualTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	return !a.After(*b)
}

// EqualTime reports a == b.
func EqualTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Equal(*b)
}

// LessInt reports a < b.
func LessInt(a, b *int) bool {
	if a == nil || b == nil {
		return false
	}
	return *a < *b
}

// LessOrEqualInt reports a <= b.
func LessOrEqualInt(a, b *int) bool {
	if a == nil || b == nil {
		return false
	}
	return *a <= *b
}

// EqualInt reports a == b.
func EqualInt(a, b *int) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// EqualBool reports a == b.
func EqualBool(a, b *bool) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
