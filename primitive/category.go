package primitive

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// CategoryEnum is a set of conversion categories. A scalar is converted into
// a declared field only when the (source kind, field kind) pair belongs to
// one of the enabled categories.
type CategoryEnum int

type ConversionPair struct {
	From, To KindEnum
}

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with possible precision loss or overflow
	CategoryTextNumber                            // int, uint, float <-> string: textual number representation
	CategoryNumericBool                           // int <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time: textual date and time representation
	CategoryTimestamp                             // number(Unix seconds) <-> time.Time: Unix timestamp representation
	CategoryDuration                              // string(2h45m) <-> time.Duration: textual duration representation
	CategoryNanoseconds                           // number(nanoseconds) <-> time.Duration: numerical duration representation
	CategoryEnumString                            // string <-> named string type

	CategoryAll  CategoryEnum = (1 << iota) - 1 // all categories combined
	CategoryNone CategoryEnum = 0               // no categories selected

	// CategoryDefault keeps text such as "true" from turning into a boolean.
	CategoryDefault = CategoryAll &^ CategoryTextualBool
)

var categoryNames = map[string]CategoryEnum{
	"safe_number":   CategorySafeNumber,
	"unsafe_number": CategoryUnsafeNumber,
	"text_number":   CategoryTextNumber,
	"numeric_bool":  CategoryNumericBool,
	"textual_bool":  CategoryTextualBool,
	"datetime":      CategoryDatetime,
	"timestamp":     CategoryTimestamp,
	"duration":      CategoryDuration,
	"nanoseconds":   CategoryNanoseconds,
	"enum_string":   CategoryEnumString,
	"all":           CategoryAll,
	"default":       CategoryDefault,
}

var conversionPairs map[CategoryEnum]map[ConversionPair]struct{}

// allowed pair sets are computed once per category combination
var allowedCache sync.Map // CategoryEnum -> map[ConversionPair]struct{}

func init() {
	conversionPairs = make(map[CategoryEnum]map[ConversionPair]struct{})

	conversionPairs[CategorySafeNumber] = map[ConversionPair]struct{}{}
	conversionPairs[CategoryUnsafeNumber] = map[ConversionPair]struct{}{}
	conversionPairs[CategoryTextNumber] = map[ConversionPair]struct{}{}
	conversionPairs[CategoryNumericBool] = map[ConversionPair]struct{}{}
	conversionPairs[CategoryTimestamp] = map[ConversionPair]struct{}{}
	conversionPairs[CategoryNanoseconds] = map[ConversionPair]struct{}{}

	for from := range numberKinds() {
		for to := range numberKinds() {
			pair := ConversionPair{from, to}
			if isSafeNumber(from, to) {
				conversionPairs[CategorySafeNumber][pair] = struct{}{}
			} else {
				conversionPairs[CategoryUnsafeNumber][pair] = struct{}{}
			}
		}

		conversionPairs[CategoryTextNumber][ConversionPair{from, KindString}] = struct{}{}
		conversionPairs[CategoryTextNumber][ConversionPair{KindString, from}] = struct{}{}

		conversionPairs[CategoryNumericBool][ConversionPair{from, KindBool}] = struct{}{}
		conversionPairs[CategoryNumericBool][ConversionPair{KindBool, from}] = struct{}{}

		conversionPairs[CategoryTimestamp][ConversionPair{from, KindTime}] = struct{}{}
		conversionPairs[CategoryNanoseconds][ConversionPair{from, KindDuration}] = struct{}{}

		if from.IsInteger() {
			conversionPairs[CategoryTimestamp][ConversionPair{KindTime, from}] = struct{}{}
			conversionPairs[CategoryNanoseconds][ConversionPair{KindDuration, from}] = struct{}{}
		}
	}

	conversionPairs[CategoryTextualBool] = map[ConversionPair]struct{}{
		{KindString, KindBool}: {},
		{KindBool, KindString}: {},
	}

	conversionPairs[CategoryDatetime] = map[ConversionPair]struct{}{
		{KindString, KindTime}: {},
		{KindTime, KindString}: {},
	}

	conversionPairs[CategoryDuration] = map[ConversionPair]struct{}{
		{KindString, KindDuration}: {},
		{KindDuration, KindString}: {},
	}

	// gated separately, see Assign
	conversionPairs[CategoryEnumString] = map[ConversionPair]struct{}{}
}

func numberKinds() func(yield func(KindEnum) bool) {
	return func(yield func(KindEnum) bool) {
		for k := KindEnum(1); int(k) < KindTotal; k++ {
			if k.IsNumber() && !yield(k) {
				return
			}
		}
	}
}

// isSafeNumber reports whether every value of from fits into to exactly.
func isSafeNumber(from, to KindEnum) bool {
	switch {
	case from == to:
		return true
	case from.IsFloat():
		return to.IsFloat() && to.Bits() >= from.Bits()
	case to.IsFloat():
		// float32 carries 24 mantissa bits, float64 carries 53
		return from.Bits() <= to.Bits()/2
	case from.IsSigned() == to.IsSigned():
		return to.Bits() >= from.Bits()
	case from.IsUnsigned():
		return to.Bits() > from.Bits()
	default:
		return false
	}
}

// Has reports whether every category of other is enabled in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return c&other == other
}

// Allowed reports whether a value of kind from may be converted to kind to
// under the enabled categories. Identical kinds are always allowed.
func Allowed(from, to KindEnum, allowed CategoryEnum) bool {
	if from == to {
		return true
	}

	_, ok := allowedSet(allowed)[ConversionPair{from, to}]

	return ok
}

func allowedSet(allowed CategoryEnum) map[ConversionPair]struct{} {
	if cached, ok := allowedCache.Load(allowed); ok {
		return cached.(map[ConversionPair]struct{})
	}

	set := make(map[ConversionPair]struct{})

	for cat, pairs := range conversionPairs {
		if allowed&cat == 0 {
			continue
		}

		for pair := range pairs {
			set[pair] = struct{}{}
		}
	}

	allowedCache.Store(allowed, set)

	return set
}

// ParseCategories combines named categories, e.g. "default", "textual_bool".
func ParseCategories(names ...string) (CategoryEnum, error) {
	var out CategoryEnum

	for _, name := range names {
		cat, ok := categoryNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return CategoryNone, fmt.Errorf("unknown conversion category %q", name)
		}

		out |= cat
	}

	return out, nil
}

// CategoryNames lists the names accepted by ParseCategories.
func CategoryNames() []string {
	names := make([]string, 0, len(categoryNames))
	for name := range categoryNames {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
