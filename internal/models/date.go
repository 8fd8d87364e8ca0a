package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of a Date.
const DateLayout = "2006-01-02"

// legacyDateLayout matches records written as "Sat Oct 18 2026".
const legacyDateLayout = "Mon Jan 02 2006"

// Date is a calendar day with no time-of-day component.
type Date struct {
	t time.Time
}

// NewDate truncates t to its calendar day in t's own location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string or the legacy "Mon Jan 02 2006" form.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, legacyDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

// AddDays returns the date n calendar days after d.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Compare returns -1, 0 or +1 as d is before, equal to or after o.
func (d Date) Compare(o Date) int { return d.t.Compare(o.t) }

// Equal reports whether d and o are the same calendar day.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// IsZero reports whether d is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// String formats d as YYYY-MM-DD.
func (d Date) String() string { return d.t.Format(DateLayout) }

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
