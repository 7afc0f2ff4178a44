package sdp

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gosdp/internal/grammar"
	"github.com/ghettovoice/gosdp/internal/ioutil"
)

// TimeUnit is the fixed-len-time-unit suffix of a typed time.
type TimeUnit byte

const (
	UnitNone    TimeUnit = 0
	UnitDays    TimeUnit = 'd'
	UnitHours   TimeUnit = 'h'
	UnitMinutes TimeUnit = 'm'
	UnitSeconds TimeUnit = 's'
)

// Seconds returns the number of seconds in one unit.
func (u TimeUnit) Seconds() uint64 {
	switch u {
	case UnitDays:
		return 86400
	case UnitHours:
		return 3600
	case UnitMinutes:
		return 60
	default:
		return 1
	}
}

func (u TimeUnit) String() string {
	if u == UnitNone {
		return ""
	}
	return string(rune(u))
}

// IsValid reports whether u is one of the known units.
func (u TimeUnit) IsValid() bool {
	switch u {
	case UnitNone, UnitDays, UnitHours, UnitMinutes, UnitSeconds:
		return true
	default:
		return false
	}
}

// TypedTime is a time value with an optional unit, e.g. "7d" or "3600".
type TypedTime struct {
	Value uint64   `json:"value"`
	Unit  TimeUnit `json:"unit,omitempty"`
}

// Seconds returns the time in seconds.
func (t TypedTime) Seconds() uint64 { return t.Value * t.Unit.Seconds() }

// Duration returns the time as [time.Duration].
func (t TypedTime) Duration() time.Duration { return time.Duration(t.Seconds()) * time.Second }

func (t TypedTime) String() string { return strconv.FormatUint(t.Value, 10) + t.Unit.String() }

// Equal reports whether both typed times denote the same number of seconds.
func (t TypedTime) Equal(val any) bool {
	var other TypedTime
	switch v := val.(type) {
	case TypedTime:
		other = v
	case *TypedTime:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return t.Seconds() == other.Seconds()
}

func parseTypedTime(s string) (TypedTime, error) {
	var t TypedTime
	if n := len(s); n > 0 {
		switch u := TimeUnit(s[n-1]); u {
		case UnitDays, UnitHours, UnitMinutes, UnitSeconds:
			t.Unit = u
			s = s[:n-1]
		}
	}
	v, err := grammar.ParseUint(s, 64)
	if err != nil {
		return TypedTime{}, errtrace.Wrap(err)
	}
	t.Value = v
	return t, nil
}

// Repeat is an "r=" field.
type Repeat struct {
	Interval TypedTime   `json:"interval"`
	Duration TypedTime   `json:"duration"`
	Offsets  []TypedTime `json:"offsets"`
}

// RenderTo writes "interval duration offsets..." to the provided writer.
func (r *Repeat) RenderTo(w io.Writer, _ *RenderOptions) (int, error) {
	if r == nil {
		return 0, nil
	}
	lw := ioutil.GetLineWriter(w, false)
	defer ioutil.FreeLineWriter(lw)
	lw.Print(r.Interval.String(), " ", r.Duration.String())
	for _, o := range r.Offsets {
		lw.Print(" ", o.String())
	}
	return errtrace.Wrap2(lw.Result())
}

// Render returns the string representation of the repeat field value.
func (r *Repeat) Render(opts *RenderOptions) string {
	if r == nil {
		return ""
	}
	return render(r, opts)
}

func (r *Repeat) String() string { return r.Render(nil) }

// Clone returns a deep copy of the repeat.
func (r *Repeat) Clone() *Repeat {
	if r == nil {
		return nil
	}
	r2 := *r
	r2.Offsets = slices.Clone(r.Offsets)
	return &r2
}

// Equal compares the repeats in seconds, so "7d" equals "604800".
func (r *Repeat) Equal(val any) bool {
	var other *Repeat
	switch v := val.(type) {
	case Repeat:
		other = &v
	case *Repeat:
		other = v
	default:
		return false
	}

	if r == other {
		return true
	} else if r == nil || other == nil {
		return false
	}

	return r.Interval.Equal(other.Interval) &&
		r.Duration.Equal(other.Duration) &&
		slices.EqualFunc(r.Offsets, other.Offsets, func(a, b TypedTime) bool { return a.Equal(b) })
}

// IsValid checks that the interval is positive and at least one offset is present.
func (r *Repeat) IsValid() bool {
	return r != nil && r.Interval.Value > 0 && len(r.Offsets) > 0 &&
		r.Interval.Unit.IsValid() && r.Duration.Unit.IsValid()
}

// ntpEpochOffset is the number of seconds between 1900-01-01 and 1970-01-01.
const ntpEpochOffset = 2208988800

// NTPTime converts NTP seconds to [time.Time]. Zero is returned as the zero time.
func NTPTime(sec uint64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(int64(sec)-ntpEpochOffset, 0).UTC() //nolint:gosec
}

// Timing is a "t=" field with its "r=" fields.
// Start and Stop are NTP seconds, zero means unbounded.
type Timing struct {
	Start   uint64   `json:"start"`
	Stop    uint64   `json:"stop"`
	Repeats []Repeat `json:"repeats,omitempty"`
}

// IsPermanent reports whether the session has no time bounds ("t=0 0").
func (t *Timing) IsPermanent() bool { return t != nil && t.Start == 0 && t.Stop == 0 }

// StartTime returns Start as [time.Time].
func (t *Timing) StartTime() time.Time { return NTPTime(t.Start) }

// StopTime returns Stop as [time.Time].
func (t *Timing) StopTime() time.Time { return NTPTime(t.Stop) }

// RenderTo writes "start stop" to the provided writer.
func (t *Timing) RenderTo(w io.Writer, _ *RenderOptions) (int, error) {
	if t == nil {
		return 0, nil
	}
	return errtrace.Wrap2(fmt.Fprint(w, strconv.FormatUint(t.Start, 10), " ", strconv.FormatUint(t.Stop, 10)))
}

// Render returns the string representation of the timing value.
func (t *Timing) Render(opts *RenderOptions) string {
	if t == nil {
		return ""
	}
	return render(t, opts)
}

func (t *Timing) String() string { return t.Render(nil) }

// Clone returns a deep copy of the timing.
func (t *Timing) Clone() *Timing {
	if t == nil {
		return nil
	}
	t2 := *t
	t2.Repeats = cloneRepeats(t.Repeats)
	return &t2
}

func cloneRepeats(rs []Repeat) []Repeat {
	if rs == nil {
		return nil
	}
	rs2 := make([]Repeat, len(rs))
	for i := range rs {
		rs2[i] = *rs[i].Clone()
	}
	return rs2
}

// Equal compares this timing with another for equality.
func (t *Timing) Equal(val any) bool {
	var other *Timing
	switch v := val.(type) {
	case Timing:
		other = &v
	case *Timing:
		other = v
	default:
		return false
	}

	if t == other {
		return true
	} else if t == nil || other == nil {
		return false
	}

	return t.Start == other.Start &&
		t.Stop == other.Stop &&
		slices.EqualFunc(t.Repeats, other.Repeats, func(a, b Repeat) bool { return a.Equal(&b) })
}

// IsValid checks that the stop time is not before the start time and all repeats are valid.
func (t *Timing) IsValid() bool {
	if t == nil || (t.Stop != 0 && t.Stop < t.Start) {
		return false
	}
	for i := range t.Repeats {
		if !t.Repeats[i].IsValid() {
			return false
		}
	}
	return true
}

// TimeZone is one adjustment of a "z=" field.
type TimeZone struct {
	AdjustmentTime uint64    `json:"adjustment_time"`
	Offset         TypedTime `json:"offset"`
	Negative       bool      `json:"negative,omitempty"`
}

func (tz TimeZone) String() string {
	s := strconv.FormatUint(tz.AdjustmentTime, 10) + " "
	if tz.Negative {
		s += "-"
	}
	return s + tz.Offset.String()
}

// OffsetDuration returns the signed offset.
func (tz TimeZone) OffsetDuration() time.Duration {
	if tz.Negative {
		return -tz.Offset.Duration()
	}
	return tz.Offset.Duration()
}
