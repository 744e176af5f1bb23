package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnsupportedKind = errors.New("field is not of a scalar kind")
	ErrNotScalar       = errors.New("value is not a scalar")
	ErrNotAllowed      = errors.New("conversion category is not enabled")
	ErrInvalidValue    = errors.New("value has no representation in the field kind")
	ErrOverflow        = errors.New("value overflows the field")
)

// Layouts accepted for textual date and time values, in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	time.DateOnly,
}

// ConversionError describes a scalar that could not be stored in a field.
type ConversionError struct {
	From  KindEnum
	To    reflect.Type
	Value any
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s %q to %s: %v", e.From, Text(e.Value), e.To, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Assign stores the scalar v into dst, converting it to the declared kind of
// dst. The (source kind, field kind) pair must belong to an enabled category.
// A nil v resets dst to its zero value. On error dst is left unchanged.
func Assign(dst reflect.Value, v any, allowed CategoryEnum) error {
	t := dst.Type()

	to := Underlying(t)
	if to == 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedKind, t)
	}

	if v == nil {
		dst.SetZero()
		return nil
	}

	from := KindOf(v)
	fail := func(err error) error {
		return &ConversionError{From: from, To: t, Value: v, Err: err}
	}

	if from == 0 {
		return fail(ErrNotScalar)
	}

	if !Allowed(from, to, allowed) {
		return fail(ErrNotAllowed)
	}

	if FromReflectType(t) == KindPrimitiveEnum && to == KindString && from == KindString &&
		!allowed.Has(CategoryEnumString) {
		return fail(ErrNotAllowed)
	}

	var err error

	switch {
	case to == KindTime:
		err = assignTime(dst, v)
	case to == KindDuration:
		err = assignDuration(dst, v)
	case to.IsFloat():
		err = assignFloat(dst, v)
	case to.IsSigned():
		err = assignSigned(dst, v)
	case to.IsUnsigned():
		err = assignUnsigned(dst, v)
	case to == KindBool:
		err = assignBool(dst, v)
	default:
		dst.SetString(textOf(v))
	}

	if err != nil {
		return fail(err)
	}

	return nil
}

func assignTime(dst reflect.Value, v any) error {
	if tm, ok := v.(time.Time); ok {
		dst.Set(reflect.ValueOf(tm))
		return nil
	}

	if KindOf(v) != KindString {
		f, ok := Float(v)
		if !ok {
			return ErrInvalidValue
		}

		sec, frac := math.Modf(f)
		dst.Set(reflect.ValueOf(time.Unix(int64(sec), int64(frac*1e9)).UTC()))

		return nil
	}

	s := strings.TrimSpace(Text(v))
	for _, layout := range timeLayouts {
		if tm, err := time.Parse(layout, s); err == nil {
			dst.Set(reflect.ValueOf(tm))
			return nil
		}
	}

	return ErrInvalidValue
}

func assignDuration(dst reflect.Value, v any) error {
	if d, ok := v.(time.Duration); ok {
		dst.SetInt(int64(d))
		return nil
	}

	if KindOf(v) != KindString {
		n, ok := Integer(v)
		if !ok {
			return ErrInvalidValue
		}

		dst.SetInt(n)

		return nil
	}

	d, err := time.ParseDuration(strings.TrimSpace(Text(v)))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	dst.SetInt(int64(d))

	return nil
}

func assignFloat(dst reflect.Value, v any) error {
	if b, ok := boolOf(v); ok {
		dst.SetFloat(boolNumber(b))
		return nil
	}

	f, ok := Float(v)
	if !ok {
		return ErrInvalidValue
	}

	if dst.OverflowFloat(f) {
		return ErrOverflow
	}

	dst.SetFloat(f)

	return nil
}

func assignSigned(dst reflect.Value, v any) error {
	if b, ok := boolOf(v); ok {
		dst.SetInt(int64(boolNumber(b)))
		return nil
	}

	n, ok := Integer(v)
	if !ok {
		return ErrInvalidValue
	}

	if dst.OverflowInt(n) {
		return ErrOverflow
	}

	dst.SetInt(n)

	return nil
}

func assignUnsigned(dst reflect.Value, v any) error {
	if b, ok := boolOf(v); ok {
		dst.SetUint(uint64(boolNumber(b)))
		return nil
	}

	var u uint64

	if rv := reflect.ValueOf(v); rv.CanUint() {
		u = rv.Uint()
	} else {
		n, ok := Integer(v)
		if !ok {
			return ErrInvalidValue
		}

		if n < 0 {
			return ErrOverflow
		}

		u = uint64(n)
	}

	if dst.OverflowUint(u) {
		return ErrOverflow
	}

	dst.SetUint(u)

	return nil
}

func assignBool(dst reflect.Value, v any) error {
	if b, ok := boolOf(v); ok {
		dst.SetBool(b)
		return nil
	}

	if KindOf(v).IsNumber() {
		f, _ := Float(v)
		dst.SetBool(f != 0)

		return nil
	}

	b, ok := parseTextBool(Text(v))
	if !ok {
		return ErrInvalidValue
	}

	dst.SetBool(b)

	return nil
}

func textOf(v any) string {
	if b, ok := boolOf(v); ok {
		return strconv.FormatBool(b)
	}

	return Text(v)
}

func boolOf(v any) (bool, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Bool {
		return false, false
	}

	return rv.Bool(), true
}

func boolNumber(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

func parseTextBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1", "y", "t":
		return true, true
	case "false", "no", "off", "0", "n", "f", "":
		return false, true
	default:
		return false, false
	}
}
