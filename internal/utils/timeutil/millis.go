// Package timeutil converts between API timestamps and the int64 epoch
// milliseconds stored in the database.
package timeutil

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// NowMillis returns the current time as epoch milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// ToMillis converts t to epoch milliseconds. The zero time maps to 0.
func ToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// FromMillis converts epoch milliseconds to a UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ParseMillis widens a JSON number to int64 epoch milliseconds. Integer
// notation is parsed exactly; float or exponent notation is rounded to the
// nearest millisecond.
func ParseMillis(n json.Number) (int64, error) {
	raw := n.String()
	if raw == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("timestamp %q out of range", raw)
	}
	return int64(math.Round(f)), nil
}

// MillisOrNow returns the parsed value of n, or the current time when n is nil.
func MillisOrNow(n *json.Number) (int64, error) {
	if n == nil || n.String() == "" {
		return NowMillis(), nil
	}
	return ParseMillis(*n)
}
