// Package types implements special types for the church backend.
package types

import (
	"errors"
	"fmt"
	"time"
)

// Year is a calendar tax year.
//
// Giving statements always cover a full calendar year, so date ranges
// derived from a Year are inclusive on both boundaries.
type Year int

var ErrYearInvalid = errors.New("the year must be between 1900 and 2200")

// Start returns the first day of the year as a date in UTC.
func (y Year) Start() time.Time {
	return time.Date(int(y), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the year as a date in UTC.
func (y Year) End() time.Time {
	return time.Date(int(y), time.December, 31, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether the calendar date of t falls into the year.
// Both year boundaries are included.
func (y Year) Contains(t time.Time) bool {
	return t.In(time.UTC).Year() == int(y)
}

// Valid reports whether the year is in the supported range.
//
// The limits are arbitrary, they exist to catch two-digit years and
// typos like 20245 before they reach the database.
func (y Year) Valid() bool {
	return y >= 1900 && y <= 2200
}

func (y Year) String() string {
	return fmt.Sprintf("%04d", int(y))
}
