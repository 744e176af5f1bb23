package primitive

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// Coerce converts a raw scalar to the best matching primitive, in order:
//  1. numbers and numeric text become int64 (fractions truncate toward zero);
//  2. booleans stay bool;
//  3. anything else becomes text.
//
// Only source-level booleans become bool: the text "true" stays text.
// A nil value is returned unchanged.
func Coerce(v any) any {
	if v == nil {
		return nil
	}

	if n, ok := Integer(v); ok {
		return n
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Bool {
		return rv.Bool()
	}

	return Text(v)
}

// IsNumeric reports whether v is a number or numeric text.
func IsNumeric(v any) bool {
	_, ok := Float(v)
	return ok
}

// Integer returns v as an int64 when v is numeric. Fractions truncate toward
// zero and out-of-range values clamp to the int64 range.
func Integer(v any) (int64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case json.Number:
		return integerText(x.String())
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return math.MaxInt64, true
		}

		return int64(u), true
	case reflect.Float32, reflect.Float64:
		return truncate(rv.Float())
	case reflect.String:
		return integerText(rv.String())
	default:
		return 0, false
	}
}

// Float returns v as a float64 when v is numeric.
func Float(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case json.Number:
		return floatText(x.String())
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	case reflect.String:
		return floatText(rv.String())
	default:
		return 0, false
	}
}

// Text renders a scalar as text. Strings and json.Number keep their exact
// text; floats use the shortest representation without an exponent.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case json.Number:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func integerText(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if !numericText(s) {
		return 0, false
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}

	f, ok := floatText(s)
	if !ok {
		return 0, false
	}

	return truncate(f)
}

// floatText accepts decimal text with optional sign, fraction and exponent.
// Hex, "inf", "nan" and values beyond the float64 range are not numeric.
func floatText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !numericText(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && (!errors.Is(err, strconv.ErrRange) || math.IsInf(f, 0)) {
		return 0, false
	}

	return f, true
}

// numericText reports whether s is decimal number text. A sign directly in
// front of the decimal point ("-.5") counts as well.
func numericText(s string) bool {
	if len(s) > 1 && (s[0] == '-' || s[0] == '+') && s[1] == '.' {
		s = s[:1] + "0" + s[1:]
	}

	return govalidator.IsFloat(s)
}

func truncate(f float64) (int64, bool) {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return 0, false
	case f >= math.MaxInt64:
		return math.MaxInt64, true
	case f <= math.MinInt64:
		return math.MinInt64, true
	default:
		return int64(math.Trunc(f)), true
	}
}
