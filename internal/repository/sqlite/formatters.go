package sqlite

import (
	"database/sql"
	"time"
)

// dbTimeLayout is fixed width and always UTC so stored values sort and
// compare lexically in the same order as the instants they encode.
const dbTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimeForDB formats a time.Time value for storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

// FormatTimePtrForDB formats a *time.Time value, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses a stored time string
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// ParseNullTimeFromDB parses a nullable stored time, returning nil for NULL
func ParseNullTimeFromDB(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := ParseTimeFromDB(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatIntPtrForDB returns the int value or nil
func FormatIntPtrForDB(n *int) interface{} {
	if n == nil {
		return nil
	}
	return int64(*n)
}

// FormatBoolPtrForDB stores booleans as 0/1, returning nil if unset
func FormatBoolPtrForDB(b *bool) interface{} {
	if b == nil {
		return nil
	}
	if *b {
		return int64(1)
	}
	return int64(0)
}
