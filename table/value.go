package table

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrIncomparable is returned when two cell values have no defined order.
var ErrIncomparable = errors.New("incomparable values")

// Compare compares two cell values and returns:
// -1 if a < b
//
//	0 if a == b
//
// +1 if a > b
//
// Numbers compare numerically regardless of their Go type, strings lexically
// (case-sensitive), booleans with false < true and times chronologically.
// nil sorts before everything else. Any other combination returns an error
// wrapping ErrIncomparable.
func Compare(a, b interface{}) (int, error) {
	// Handle nil values
	if a == nil && b == nil {
		return 0, nil
	}
	if a == nil {
		return -1, nil
	}
	if b == nil {
		return 1, nil
	}

	// Integers first so large int64 values keep their precision
	if aInt, ok := toInt64(a); ok {
		if bInt, ok := toInt64(b); ok {
			return compareOrdered(aInt, bInt), nil
		}
	}

	// Whole floats against integers compare as integers, matching Key
	if aInt, ok := toInt64(a); ok {
		if bInt, ok := wholeFloat(b); ok {
			return compareOrdered(aInt, bInt), nil
		}
	}
	if aInt, ok := wholeFloat(a); ok {
		if bInt, ok := toInt64(b); ok {
			return compareOrdered(aInt, bInt), nil
		}
	}

	aNum, aIsNum := toFloat64(a)
	bNum, bIsNum := toFloat64(b)
	if aIsNum && bIsNum {
		return compareOrdered(aNum, bNum), nil
	}

	if aStr, ok := a.(string); ok {
		if bStr, ok := b.(string); ok {
			return strings.Compare(aStr, bStr), nil
		}
	}

	if aBool, ok := a.(bool); ok {
		if bBool, ok := b.(bool); ok {
			switch {
			case aBool == bBool:
				return 0, nil
			case !aBool:
				return -1, nil // false < true
			default:
				return 1, nil
			}
		}
	}

	if aTime, ok := a.(time.Time); ok {
		if bTime, ok := b.(time.Time); ok {
			return aTime.Compare(bTime), nil
		}
	}

	return 0, fmt.Errorf("%w: %T and %T", ErrIncomparable, a, b)
}

// Equal reports whether two cell values are the same value. Numerically
// equal numbers are equal even when their Go types differ.
func Equal(a, b interface{}) bool {
	return Key(a) == Key(b)
}

// Key returns a canonical string for a cell value.
//
// Values that are Equal share a key and values of different kinds never
// collide, so the key can index groups and detect duplicates without
// relying on map iteration order or hashing of interface values.
func Key(v interface{}) string {
	var b strings.Builder
	writeKey(&b, v)
	return b.String()
}

func writeKey(b *strings.Builder, v interface{}) {
	if v == nil {
		b.WriteString("nil")
		return
	}

	if i, ok := toInt64(v); ok {
		b.WriteString("n:")
		b.WriteString(strconv.FormatInt(i, 10))
		return
	}
	if u, ok := v.(uint64); ok {
		b.WriteString("n:")
		b.WriteString(strconv.FormatUint(u, 10))
		return
	}
	if f, ok := toFloat64(v); ok {
		b.WriteString("n:")
		// Whole floats share the integer spelling so 1 and 1.0 match
		if i, ok := wholeFloat(v); ok {
			b.WriteString(strconv.FormatInt(i, 10))
			return
		}
		switch {
		case f == math.Trunc(f) && f >= 0 && f < 1<<64:
			b.WriteString(strconv.FormatUint(uint64(f), 10))
		default:
			b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		}
		return
	}

	switch val := v.(type) {
	case string:
		b.WriteString("s:")
		b.WriteString(strconv.Quote(val))
	case bool:
		b.WriteString("b:")
		b.WriteString(strconv.FormatBool(val))
	case time.Time:
		b.WriteString("t:")
		b.WriteString(val.UTC().Format(time.RFC3339Nano))
	case []byte:
		b.WriteString("x:")
		b.WriteString(hex.EncodeToString(val))
	case []interface{}:
		b.WriteString("[")
		for i, item := range val {
			if i > 0 {
				b.WriteString(",")
			}
			writeKey(b, item)
		}
		b.WriteString("]")
	default:
		// Use %#v for better type differentiation
		fmt.Fprintf(b, "%T:%#v", val, val)
	}
}

func compareOrdered[T int64 | float64](a, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// toInt64 converts signed integers and uint types that fit into int64
func toInt64(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case uint:
		if uint64(val) > math.MaxInt64 {
			return 0, false
		}
		return int64(val), true
	case uint8:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint32:
		return int64(val), true
	case uint64:
		if val > math.MaxInt64 {
			return 0, false
		}
		return int64(val), true
	default:
		return 0, false
	}
}

// wholeFloat converts a float without fractional part that fits into int64
func wholeFloat(v interface{}) (int64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	default:
		return 0, false
	}
	if f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
		return 0, false
	}
	return int64(f), true
}

// toFloat64 converts a value to float64 if possible
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}
