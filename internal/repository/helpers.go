package repository

import (
	"database/sql"
	"time"

	"github.com/calebmorris/pacer/internal/domain"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the
// given layout. NULL, empty and unparseable values all come back nil: a
// corrupt optional timestamp degrades to "absent" rather than failing the
// read.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time for SQLite storage: SQL NULL
// for nil, otherwise the formatted string.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableIntToValue converts a *int for SQLite storage.
func nullableIntToValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// intPtrFromNull converts a sql.NullInt64 back into a *int.
func intPtrFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// dayDatePtr parses a YYYY-MM-DD column into a UTC midnight *time.Time.
func dayDatePtr(s sql.NullString) *time.Time {
	return parseNullableTime(s, domain.DayLayout)
}
