package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name     string
		from, to KindEnum
		allowed  CategoryEnum
		expected bool
	}{
		{"identity always", KindString, KindString, CategoryNone, true},
		{"widening int", KindInt8, KindInt64, CategorySafeNumber, true},
		{"narrowing int is unsafe", KindInt64, KindInt8, CategorySafeNumber, false},
		{"narrowing int with unsafe", KindInt64, KindInt8, CategoryUnsafeNumber, true},
		{"uint8 into int16", KindUint8, KindInt16, CategorySafeNumber, true},
		{"int8 into uint64 is unsafe", KindInt8, KindUint64, CategorySafeNumber, false},
		{"int32 into float64", KindInt32, KindFloat64, CategorySafeNumber, true},
		{"int64 into float64 is unsafe", KindInt64, KindFloat64, CategorySafeNumber, false},
		{"text into int", KindString, KindInt, CategoryTextNumber, true},
		{"text into bool needs textual bool", KindString, KindBool, CategoryDefault, false},
		{"text into bool with textual bool", KindString, KindBool, CategoryTextualBool, true},
		{"bool into int", KindBool, KindInt, CategoryNumericBool, true},
		{"text into time", KindString, KindTime, CategoryDatetime, true},
		{"number into time", KindInt64, KindTime, CategoryTimestamp, true},
		{"float into duration", KindFloat64, KindDuration, CategoryNanoseconds, true},
		{"text into duration", KindString, KindDuration, CategoryDuration, true},
		{"nothing enabled", KindInt64, KindInt, CategoryNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Allowed(tt.from, tt.to, tt.allowed))
		})
	}
}

func TestParseCategories(t *testing.T) {
	cats, err := ParseCategories("safe_number", " Text_Number ")
	require.NoError(t, err)
	assert.Equal(t, CategorySafeNumber|CategoryTextNumber, cats)

	cats, err = ParseCategories("default", "textual_bool")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, cats)

	_, err = ParseCategories("bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")

	assert.Contains(t, CategoryNames(), "textual_bool")
}

func TestCategoryDefault(t *testing.T) {
	assert.IsType(t, CategoryEnum(0), CategoryAll)
	assert.IsType(t, CategoryEnum(0), CategoryNone)
	assert.True(t, CategoryDefault.Has(CategoryTextNumber|CategoryUnsafeNumber))
	assert.False(t, CategoryDefault.Has(CategoryTextualBool))
}
