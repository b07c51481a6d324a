package expense

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Date is a calendar day. No calendar validation is performed.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewDate builds a Date from its day, month and year
func NewDate(day, month, year int) Date {
	return Date{Day: day, Month: month, Year: year}
}

// DefaultDate returns 01/01/2024
func DefaultDate() Date {
	return NewDate(1, 1, 2024)
}

// Compare orders dates by year, then month, then day.
// It returns -1 if d is before o, 0 if they are equal and +1 otherwise.
func (d Date) Compare(o Date) int {
	if c := cmp.Compare(d.Year, o.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, o.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, o.Day)
}

// Before reports whether d comes before o
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// After reports whether d comes after o
func (d Date) After(o Date) bool {
	return o.Before(d)
}

// Equal reports whether all three fields match
func (d Date) Equal(o Date) bool {
	return d == o
}

// InRange reports whether d lies in the inclusive range [start, end].
func (d Date) InRange(start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

// String returns the date as DD/MM/YYYY
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%d", d.Day, d.Month, d.Year)
}

// ParseDate reads DD/MM/YYYY, DD-MM-YYYY, "DD MM YYYY" or YYYY-MM-DD.
// A four digit leading field selects year-first order.
func ParseDate(text string) (Date, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		return r == '/' || r == '-' || r == '.' || r == ' '
	})
	if len(fields) != 3 {
		return Date{}, fmt.Errorf("invalid date %q: expected DD/MM/YYYY or YYYY-MM-DD", text)
	}

	parts := make([]int, 3)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", text, err)
		}
		parts[i] = n
	}

	if len(fields[0]) == 4 {
		return NewDate(parts[2], parts[1], parts[0]), nil
	}
	return NewDate(parts[0], parts[1], parts[2]), nil
}
