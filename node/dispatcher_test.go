package node

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type status string

func TestDispatch(t *testing.T) {
	tests := []struct {
		name     string
		typ      reflect.Type
		expected DispatcherEnum
	}{
		{"int", reflect.TypeFor[int](), DispatcherPrimitive},
		{"string", reflect.TypeFor[string](), DispatcherPrimitive},
		{"named string", reflect.TypeFor[status](), DispatcherPrimitive},
		{"time", reflect.TypeFor[time.Time](), DispatcherPrimitive},
		{"duration", reflect.TypeFor[time.Duration](), DispatcherPrimitive},
		{"pointer to int", reflect.TypeFor[*int](), DispatcherPrimitive},
		{"any", reflect.TypeFor[any](), DispatcherGeneric},
		{"generic map", reflect.TypeFor[map[string]any](), DispatcherGeneric},
		{"typed map", reflect.TypeFor[map[string]int](), DispatcherMap},
		{"struct map", reflect.TypeFor[map[string]point](), DispatcherMap},
		{"int-keyed map", reflect.TypeFor[map[int]string](), DispatcherUnknown},
		{"slice", reflect.TypeFor[[]int](), DispatcherSlice},
		{"generic slice", reflect.TypeFor[[]any](), DispatcherSlice},
		{"array", reflect.TypeFor[[3]int](), DispatcherSlice},
		{"struct", reflect.TypeFor[point](), DispatcherStruct},
		{"struct pointer", reflect.TypeFor[*point](), DispatcherStruct},
		{"error interface", reflect.TypeFor[error](), DispatcherUnknown},
		{"func", reflect.TypeFor[func()](), DispatcherUnknown},
		{"chan", reflect.TypeFor[chan int](), DispatcherUnknown},
		{"nil", nil, DispatcherUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Dispatch(tt.typ))
		})
	}
}

func TestPtrDepthAndBase(t *testing.T) {
	depth, base := PtrDepthAndBase(reflect.TypeFor[**point]())
	assert.Equal(t, 2, depth)
	assert.Equal(t, reflect.TypeFor[point](), base)

	depth, base = PtrDepthAndBase(reflect.TypeFor[point]())
	assert.Equal(t, 0, depth)
	assert.Equal(t, reflect.TypeFor[point](), base)
}

func TestSettle(t *testing.T) {
	var target struct {
		P **int
	}

	v := Settle(reflect.ValueOf(&target).Elem().Field(0))
	v.SetInt(7)

	if assert.NotNil(t, target.P) && assert.NotNil(t, *target.P) {
		assert.Equal(t, 7, **target.P)
	}
}

func TestDispatcherString(t *testing.T) {
	assert.Equal(t, "DispatcherGeneric", DispatcherGeneric.String())
	assert.Equal(t, "KindKeyed", KindKeyed.String())
	assert.Equal(t, "DispatcherEnum(42)", DispatcherEnum(42).String())
}
