package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStructs(t *testing.T) {
	pkg, err := LoadStructs("payload-binder/store")
	require.NoError(t, err)

	assert.Equal(t, "payload-binder/store", pkg.Path)
	assert.Equal(t, "store", pkg.Name)

	names := make([]string, 0, len(pkg.Structs))
	for _, s := range pkg.Structs {
		names = append(names, s.Name)
	}

	// OrderStatus is not a struct
	assert.Equal(t, []string{"Address", "Customer", "Item", "Order"}, names)
}

func TestLoadStructs_Fields(t *testing.T) {
	pkg, err := LoadStructs("payload-binder/store")
	require.NoError(t, err)

	order, ok := pkg.Struct("Order")
	require.True(t, ok)

	fields := make(map[string]FieldInfo)
	for _, f := range order.Fields {
		fields[f.Name] = f
	}

	assert.Equal(t, TypeKindBasic, fields["ID"].Kind)
	assert.Equal(t, TypeKindBasic, fields["Status"].Kind)
	assert.Equal(t, TypeKindExternal, fields["OrderedAt"].Kind)
	assert.Equal(t, TypeKindPointer, fields["Shipping"].Kind)
	assert.Equal(t, TypeKindMap, fields["Metadata"].Kind)

	items := fields["Items"]
	assert.Equal(t, TypeKindSlice, items.Kind)
	assert.True(t, items.IsUntypedList())
	assert.Equal(t, "items", items.Key())

	customer := fields["Customer"]
	assert.Equal(t, TypeKindInterface, customer.Kind)
	assert.True(t, customer.Untyped)
	assert.False(t, customer.IsUntypedList())
	assert.Equal(t, "store.Customer", customer.BindOption("type"))
	assert.Equal(t, "customer", customer.Key())
}

func TestLoadStructs_Factories(t *testing.T) {
	pkg, err := LoadStructs("payload-binder/warehouse")
	require.NoError(t, err)

	order, ok := pkg.Struct("Order")
	require.True(t, ok)
	require.NotNil(t, order.Factory)
	assert.Equal(t, FactoryInfo{Name: "NewOrder", ReturnsPtr: true, HasErr: true}, *order.Factory)

	product, ok := pkg.Struct("Product")
	require.True(t, ok)
	assert.Nil(t, product.Factory)

	dims := product.Fields[7]
	assert.Equal(t, "Dimensions", dims.Name)
	assert.Equal(t, TypeKindArray, dims.Kind)
	assert.False(t, dims.Untyped)
}

func TestLoadStructs_Errors(t *testing.T) {
	_, err := LoadStructs("payload-binder/does/not/exist")
	assert.Error(t, err)
}

func TestFieldInfo_Key(t *testing.T) {
	tests := []struct {
		name     string
		field    FieldInfo
		expected string
	}{
		{"untagged", FieldInfo{Name: "SampleInt"}, "sampleInt"},
		{"json", FieldInfo{Name: "SampleInt", Tag: `json:"sample_int,omitempty"`}, "sample_int"},
		{"bind wins", FieldInfo{Name: "SampleInt", Tag: `json:"a" bind:"b"`}, "b"},
		{"bind options only", FieldInfo{Name: "Items", Tag: `json:"items" bind:",elem=store.Item"`}, "items"},
		{"json options only", FieldInfo{Name: "OrderID", Tag: `json:",omitempty"`}, "orderID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.field.Key())
		})
	}
}

func TestFieldInfo_Skipped(t *testing.T) {
	assert.True(t, FieldInfo{Tag: `json:"-"`}.Skipped())
	assert.True(t, FieldInfo{Tag: `bind:"-"`}.Skipped())
	assert.False(t, FieldInfo{Tag: `json:"-,"`}.Skipped())
	assert.False(t, FieldInfo{}.Skipped())
}

func TestQualifiedName(t *testing.T) {
	assert.Equal(t, "store.Order", QualifiedName("store", "Order"))
	assert.Equal(t, "acme.store.Order", QualifiedName("acme.store.", "Order"))
	assert.Equal(t, "Order", QualifiedName("", "Order"))
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "slice", TypeKindSlice.String())
	assert.Equal(t, "interface", TypeKindInterface.String())
	assert.Equal(t, "unknown", TypeKind(99).String())
}
