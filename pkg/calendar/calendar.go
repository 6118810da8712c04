// Package calendar implements the date/time arithmetic collaborator that
// the IONEX and ANTEX readers assume is supplied externally: a total-order
// timestamp with delta/add operations in seconds. It is a thin wrapper
// around time.Time so the rest of the module never depends on time.Time's
// wall/monotonic subtleties directly.
package calendar

import "time"

// Epoch is a single point in time at which a map or record is defined.
type Epoch struct {
	t time.Time
}

// NewEpoch builds an Epoch from year, month, day, hour, minute and a
// fractional second, the same six fields an IONEX or RINEX datetime field
// carries (Y M D h m s).
func NewEpoch(year, month, day, hour, minute int, second float64) Epoch {
	sec := int(second)
	nsec := int((second - float64(sec)) * 1e9)
	return Epoch{t: time.Date(year, time.Month(month), day, hour, minute, sec, nsec, time.UTC)}
}

// FromTime wraps an existing time.Time as an Epoch.
func FromTime(t time.Time) Epoch {
	return Epoch{t: t}
}

// Time returns the underlying time.Time.
func (e Epoch) Time() time.Time {
	return e.t
}

// DeltaSeconds returns the number of seconds from other to e (positive if e
// is later than other), matching the external contract's delta_seconds.
func (e Epoch) DeltaSeconds(other Epoch) float64 {
	return e.t.Sub(other.t).Seconds()
}

// AddSeconds returns a new Epoch offset by s seconds (s may be negative),
// matching the external contract's add_seconds.
func (e Epoch) AddSeconds(s float64) Epoch {
	return Epoch{t: e.t.Add(time.Duration(s * float64(time.Second)))}
}

// Before reports whether e is strictly earlier than other.
func (e Epoch) Before(other Epoch) bool {
	return e.t.Before(other.t)
}

// After reports whether e is strictly later than other.
func (e Epoch) After(other Epoch) bool {
	return e.t.After(other.t)
}

// Equal reports whether e and other denote the same instant.
func (e Epoch) Equal(other Epoch) bool {
	return e.t.Equal(other.t)
}

// String renders the epoch in the usual IONEX/RINEX-ish layout.
func (e Epoch) String() string {
	return e.t.Format("2006-01-02 15:04:05")
}

// Min and Max are the earliest and latest representable sentinel epochs,
// matching the external calendar contract's min/max constants.
var (
	Min = Epoch{t: time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)}
	Max = Epoch{t: time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)}
)
