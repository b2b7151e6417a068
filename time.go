package barter

import (
	"encoding/json"
	"math"
	"time"

	"github.com/iov-one/barter/errors"
)

// UnixTime represents a point in time as POSIX time with seconds precision.
// The escrow unlock time is persisted in this form.
type UnixTime int64

// Time returns a time.Time structure that represents the same moment in time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// IsZero returns true if this time represents a zero value.
func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add modifies this UNIX time by given duration. This is compatible with
// time.Time.Add method.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// AddSeconds shifts this time by given number of seconds. A negative value
// moves the time into the past. A result outside of the int64 range fails
// with ErrOverflow.
func (t UnixTime) AddSeconds(s int64) (UnixTime, error) {
	if (s > 0 && int64(t) > math.MaxInt64-s) || (s < 0 && int64(t) < math.MinInt64-s) {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d seconds after %d", s, int64(t))
	}
	return t + UnixTime(s), nil
}

// Before compares both times as seconds, without going through time.Time
// which cannot represent the whole int64 range.
func (t UnixTime) Before(other UnixTime) bool {
	return t < other
}

// AsUnixTime converts given Time structure into its UNIX time representation.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// UnmarshalJSON supports unmarshaling both as time.Time and from a number.
// Usually a number is used as a representation of this time in JSON but it is
// convinient to use a string format in configurations (ie genesis file).
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err == nil {
		if unix < 0 {
			return errors.Wrap(errors.ErrInput, "time before epoch")
		}
		*t = UnixTime(unix)
		return nil
	}

	var stdtime time.Time
	if err := json.Unmarshal(raw, &stdtime); err == nil {
		unix := UnixTime(stdtime.Unix())
		if unix < 0 {
			return errors.Wrap(errors.ErrInput, "time before epoch")
		}
		*t = unix
		return nil
	}

	return errors.Wrap(errors.ErrInput, "invalid time format")
}

// Validate returns an error if this time value is invalid.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

// String returns the usual string representation of this time as the time.Time
// structure would.
func (t UnixTime) String() string {
	return t.Time().String()
}
