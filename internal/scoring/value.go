package scoring

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a survey answer decoded leniently from JSON. Numbers and numeric strings are accepted;
// null, booleans, empty strings, objects, arrays and anything unparsable decode as missing.
// Decoding a Value never fails, so one bad field never rejects a request.
type Value struct {
	n  float64
	ok bool
}

// Num returns a present Value holding f.
func Num(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{n: f, ok: true}
}

// Missing returns an absent Value.
func Missing() Value { return Value{} }

// UnmarshalJSON implements json.Unmarshaler. It always returns nil.
func (v *Value) UnmarshalJSON(b []byte) error {
	*v = Value{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		*v = Num(f)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return nil
		}
		*v = Num(f)
	}
	return nil
}

// MarshalJSON encodes a present Value as a number and a missing one as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.n)
}

// Present reports whether the answer was supplied and numeric.
func (v Value) Present() bool { return v.ok }

// Int returns the answer truncated toward zero, or def when missing.
func (v Value) Int(def int) int {
	if !v.ok {
		return def
	}
	t := math.Trunc(v.n)
	if t > math.MaxInt32 {
		return math.MaxInt32
	}
	if t < math.MinInt32 {
		return math.MinInt32
	}
	return int(t)
}
