package binder_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payload-binder/binder"
	"payload-binder/options"
	"payload-binder/primitive"
	"payload-binder/registry"
	"payload-binder/store"
	"payload-binder/warehouse"
)

type sample struct {
	SampleInt    int
	SampleString string
	SampleFlag   bool
}

type catalog struct {
	Title string
	Items []any
}

type withDeclared struct {
	Name  string
	Owner any `bind:",type=store.Owner"`
	Count int
}

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()
	store.Register(reg)
	warehouse.Register(reg)

	return reg
}

func TestBindScalarCoercion(t *testing.T) {
	var s sample

	err := binder.New(nil).Bind(&s, map[string]any{
		"sampleInt":    "5",
		"sampleString": 123,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, s.SampleInt)
	assert.Equal(t, "123", s.SampleString)
}

func TestBindUnresolvedListKeepsRawElements(t *testing.T) {
	var c catalog

	diags, err := binder.New(registry.New(), binder.WithNamespace("store")).BindDiagnostics(&c, map[string]any{
		"title": "spring",
		"items": []any{
			map[string]any{"name": "Item1"},
			map[string]any{"name": "Item2"},
		},
	})
	require.NoError(t, err)

	require.Len(t, c.Items, 2)
	assert.Equal(t, map[string]any{"name": "Item1"}, c.Items[0])
	assert.Equal(t, map[string]any{"name": "Item2"}, c.Items[1])
	assert.Equal(t, "spring", c.Title)

	require.Len(t, diags.Infos, 1)
	assert.Equal(t, binder.CodeUnresolvedType, diags.Infos[0].Code)
	assert.Equal(t, "items", diags.Infos[0].FieldPath)
	assert.False(t, diags.HasErrors())
}

func TestBindNilSource(t *testing.T) {
	s := sample{SampleInt: 9, SampleString: "kept"}

	diags, err := binder.New(nil, binder.WithStrict()).BindDiagnostics(&s, nil)
	require.NoError(t, err)

	assert.Equal(t, sample{SampleInt: 9, SampleString: "kept"}, s)
	assert.Zero(t, diags.Len())
}

func TestBindDeclaredLookupFailure(t *testing.T) {
	source := map[string]any{
		"name":  "crate",
		"owner": map[string]any{"id": 1},
		"count": 2,
	}

	t.Run("lenient", func(t *testing.T) {
		var v withDeclared

		diags, err := binder.New(newRegistry(t)).BindDiagnostics(&v, source)
		require.NoError(t, err)

		assert.Equal(t, "crate", v.Name)
		assert.Equal(t, 2, v.Count)
		assert.Nil(t, v.Owner)

		require.Len(t, diags.Errors, 1)
		assert.Equal(t, binder.CodeDeclaredTypeLookup, diags.Errors[0].Code)
		assert.Equal(t, "owner", diags.Errors[0].FieldPath)
	})

	t.Run("strict", func(t *testing.T) {
		var v withDeclared

		err := binder.New(newRegistry(t), binder.WithStrict()).Bind(&v, source)
		require.Error(t, err)
		assert.ErrorIs(t, err, binder.ErrDeclaredTypeLookup)

		var bindErr *binder.BindError
		require.ErrorAs(t, err, &bindErr)
		assert.Len(t, bindErr.Diagnostics.Errors, 1)
		assert.Equal(t, `bind: [binder_test.withDeclared] owner: [declared_type_lookup] `+
			`declared type "store.Owner" is not registered (did you mean store.Order, warehouse.Order?)`, err.Error())

		// the other fields still bind
		assert.Equal(t, "crate", v.Name)
		assert.Equal(t, 2, v.Count)
	})
}

func TestBindTypedFieldsCoerceFirst(t *testing.T) {
	type priced struct {
		Price float64
		Code  string
		Flag  bool
		Ratio float64
	}

	var v priced

	err := binder.New(nil).Bind(&v, map[string]any{
		"price": 2.7,
		"code":  "0042",
		"flag":  true,
		"ratio": "-.5e1",
	})
	require.NoError(t, err)

	assert.Equal(t, priced{Price: 2, Code: "42", Flag: true, Ratio: -5}, v)
}

func TestBindIdentity(t *testing.T) {
	c := catalog{Title: "spring", Items: []any{"kept"}}
	order := store.Order{ID: 7, Number: "A-7", Customer: "raw"}

	b := binder.New(newRegistry(t), binder.WithNamespace("store"))

	diags, err := b.BindDiagnostics(&c, map[string]any{
		"subtitle": "ignored",
		"owner":    map[string]any{"name": "nobody", "items": []any{1}},
	})
	require.NoError(t, err)
	assert.Equal(t, catalog{Title: "spring", Items: []any{"kept"}}, c)
	assert.Zero(t, diags.Len())

	require.NoError(t, b.Bind(&order, map[string]any{
		"total": 10,
		"buyer": map[string]any{"id": 1},
	}))
	assert.Equal(t, store.Order{ID: 7, Number: "A-7", Customer: "raw"}, order)
}

func TestBindUntypedArray(t *testing.T) {
	type pair struct {
		Items [2]any
	}

	var v pair

	diags, err := binder.New(newRegistry(t), binder.WithNamespace("store")).BindDiagnostics(&v, map[string]any{
		"items": []any{map[string]any{"sku": "PEN-1"}, "5", map[string]any{"sku": "INK-2"}},
	})
	require.NoError(t, err)

	assert.Equal(t, [2]any{&store.Item{SKU: "PEN-1"}, "5"}, v.Items)
	assert.Zero(t, diags.Len())

	var short pair
	require.NoError(t, binder.New(nil).Bind(&short, map[string]any{"items": []any{true}}))
	assert.Equal(t, [2]any{true, nil}, short.Items)
}

func TestBindDoesNotShareSource(t *testing.T) {
	metadata := map[string]any{"tags": []any{"a"}, "gift": map[string]any{"wrap": true}}
	note := map[string]any{"text": "leave at door"}
	source := map[string]any{
		"metadata": metadata,
		"notes":    []any{note, []any{"x"}},
		"customer": map[string]any{"email": "ada@example.com"},
	}

	type loose struct {
		Customer any `json:"customer"`
	}

	var order store.Order
	require.NoError(t, binder.New(newRegistry(t), binder.WithNamespace("store")).Bind(&order, source))

	order.Metadata["tags"].([]any)[0] = "b"
	order.Metadata["gift"].(map[string]any)["wrap"] = false
	order.Metadata["new"] = 1
	order.Notes[0].(map[string]any)["text"] = "changed"
	order.Notes[1].([]any)[0] = "y"

	var l loose
	require.NoError(t, binder.New(nil).Bind(&l, source))
	l.Customer.(map[string]any)["email"] = "changed"

	assert.Equal(t, map[string]any{"tags": []any{"a"}, "gift": map[string]any{"wrap": true}}, metadata)
	assert.Equal(t, map[string]any{"text": "leave at door"}, note)
	assert.Equal(t, []any{"x"}, source["notes"].([]any)[1])
	assert.Equal(t, "ada@example.com", source["customer"].(map[string]any)["email"])
}

func TestBindStrictIgnoresWarnings(t *testing.T) {
	var s sample

	diags, err := binder.New(nil, binder.WithStrict()).BindDiagnostics(&s, map[string]any{
		"sampleInt":  "many",
		"sampleFlag": "true",
	})
	require.NoError(t, err)

	assert.Zero(t, s.SampleInt)
	assert.False(t, s.SampleFlag)
	assert.Len(t, diags.WithCode(binder.CodeScalarConversion), 2)
}

func TestBindInvalidTarget(t *testing.T) {
	b := binder.New(nil)

	var (
		s      sample
		n      int
		nilPtr *sample
	)

	for name, target := range map[string]any{
		"struct value":   s,
		"pointer to int": &n,
		"nil pointer":    nilPtr,
		"untyped nil":    any(nil),
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, b.Bind(target, map[string]any{}), binder.ErrInvalidTarget)
		})
	}
}

func TestBindInvalidSource(t *testing.T) {
	var s sample

	for name, source := range map[string]any{
		"text": "sampleInt=5",
		"list": []any{map[string]any{"sampleInt": 5}},
	} {
		t.Run(name, func(t *testing.T) {
			diags, err := binder.New(nil, binder.WithStrict()).BindDiagnostics(&s, source)
			require.NoError(t, err)

			require.Len(t, diags.Warnings, 1)
			assert.Equal(t, binder.CodeInvalidSource, diags.Warnings[0].Code)
			assert.Equal(t, sample{}, s)
		})
	}
}

func TestBindShapeMismatch(t *testing.T) {
	var s sample

	diags, err := binder.New(nil).BindDiagnostics(&s, map[string]any{
		"sampleInt":    []any{1, 2},
		"sampleString": "ok",
	})
	require.NoError(t, err)

	assert.Zero(t, s.SampleInt)
	assert.Equal(t, "ok", s.SampleString)
	assert.Len(t, diags.WithCode(binder.CodeShapeMismatch), 1)
}

func TestBindLooseKeys(t *testing.T) {
	source := map[string]any{"sample_int": "5", "SAMPLE_STRING": "x"}

	var exact sample
	require.NoError(t, binder.New(nil).Bind(&exact, source))
	assert.Equal(t, sample{}, exact)

	var loose sample
	require.NoError(t, binder.New(nil, binder.WithLooseKeys()).Bind(&loose, source))
	assert.Equal(t, sample{SampleInt: 5, SampleString: "x"}, loose)
}

func TestBindCategories(t *testing.T) {
	var s sample

	b := binder.New(nil, binder.WithCategories(primitive.CategoryDefault|primitive.CategoryTextualBool))
	require.NoError(t, b.Bind(&s, map[string]any{"sampleFlag": "yes"}))
	assert.True(t, s.SampleFlag)

	s = sample{}
	b = binder.New(nil, binder.WithCategories(primitive.CategorySafeNumber))
	require.NoError(t, b.Bind(&s, map[string]any{"sampleInt": "5", "sampleString": 5}))
	assert.Equal(t, sample{SampleInt: 5}, s, "numeric text is an integer before the categories apply")
}

func TestBindStoreOrder(t *testing.T) {
	reg := newRegistry(t)
	b := binder.New(reg, binder.WithNamespace("store"))

	var order store.Order

	diags, err := b.BindDiagnostics(&order, map[string]any{
		"id":          42,
		"number":      "A-42",
		"status":      "PAID",
		"total_cents": 1999,
		"customer": map[string]any{
			"id":        7,
			"email":     "ada@example.com",
			"full_name": "Ada Lovelace",
		},
		"items": []any{
			map[string]any{"sku": "PEN-1", "name": "Pen", "quantity": 2, "unit_price": 250},
			map[string]any{"sku": "INK-2", "name": "Ink", "quantity": "1", "unit_price": 1499, "weight": 2.7},
		},
		"notes":      []any{"fragile", map[string]any{"text": "leave at door"}},
		"ordered_at": "2024-05-01T10:00:00Z",
		"unknown":    true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, store.StatusPaid, order.Status)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), order.OrderedAt.UTC())

	// the declared type is built through its factory
	require.IsType(t, &store.Customer{}, order.Customer)
	customer := order.Customer.(*store.Customer)
	assert.Equal(t, "Ada Lovelace", customer.FullName)
	assert.True(t, customer.IsActive)

	// list elements resolve to store.Item by convention
	require.Len(t, order.Items, 2)
	assert.Equal(t, &store.Item{SKU: "PEN-1", Name: "Pen", Quantity: 2, UnitPrice: 250}, order.Items[0])
	assert.Equal(t, &store.Item{SKU: "INK-2", Name: "Ink", Quantity: 1, UnitPrice: 1499, Weight: 2}, order.Items[1])

	// store.Note is not registered
	assert.Equal(t, []any{"fragile", map[string]any{"text": "leave at door"}}, order.Notes)
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, "notes", diags.Infos[0].FieldPath)
	assert.Equal(t, "store.Order", diags.Infos[0].Type)
	assert.Empty(t, diags.Errors)
	assert.Empty(t, diags.Warnings)
}

func TestBindWarehouseOrderRecursion(t *testing.T) {
	reg := newRegistry(t)
	b := binder.New(reg, binder.WithNamespace("warehouse"))

	target, err := reg.New("warehouse.Order")
	require.NoError(t, err)

	err = b.BindJSON(target.Interface(), []byte(`{
		"id": 1001,
		"order_number": "WH-1001",
		"customer": {
			"id": 5,
			"first_name": "Grace",
			"addresses": [{"street": "1 Main St", "city": "Arlington", "is_default": true}]
		},
		"shipping_address": {"street": "2 Side St", "city": "Reston"},
		"order_items": [
			{
				"id": 1,
				"quantity": 3,
				"product": {
					"sku": "BOLT",
					"price": 12,
					"dimensions": [1, 2, 3, 4],
					"stock_levels": [{"bin": "A1", "quantity": 40}, {"bin": "B2", "quantity": "2"}]
				}
			}
		],
		"shipments": [{"carrier": "UPS", "tracking": "1Z", "shipped_at": "2024-05-02T08:00:00Z"}],
		"totals": {"net": 36, "tax": 3},
		"parcels": {"p1": {"weight_grams": 900, "labels": ["fragile"]}},
		"handling_time": "1h30m",
		"placed_at": "2024-05-01",
		"created_at": 1714557600
	}`))
	require.NoError(t, err)

	order := target.Interface().(*warehouse.Order)

	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, "Grace", order.Customer.FirstName)
	assert.Equal(t, []any{&warehouse.Address{Street: "1 Main St", City: "Arlington", IsDefault: true}}, order.Customer.Addresses)
	assert.Equal(t, &warehouse.Address{Street: "2 Side St", City: "Reston"}, order.ShippingAddress)

	require.Len(t, order.OrderItems, 1)
	item, ok := order.OrderItems[0].(*warehouse.OrderItem)
	require.True(t, ok)
	assert.Equal(t, 3, item.Quantity)

	product, ok := item.Product.(*warehouse.Product)
	require.True(t, ok)
	assert.Equal(t, "BOLT", product.SKU)
	assert.Equal(t, [3]float64{1, 2, 3}, product.Dimensions)
	assert.Equal(t, []any{
		&warehouse.StockLevel{Bin: "A1", Quantity: 40},
		&warehouse.StockLevel{Bin: "B2", Quantity: 2},
	}, product.StockLevels)

	require.Len(t, order.Shipments, 1)
	assert.Equal(t, "UPS", order.Shipments[0].Carrier)
	assert.Equal(t, map[string]int64{"net": 36, "tax": 3}, order.Totals)
	assert.Equal(t, map[string]*warehouse.Parcel{"p1": {WeightGrams: 900, Labels: []string{"fragile"}}}, order.Parcels)
	assert.Equal(t, 90*time.Minute, order.HandlingTime)

	require.NotNil(t, order.PlacedAt)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *order.PlacedAt)
	assert.Equal(t, int64(1714557600), order.CreatedAt.Unix())
}

func TestBindNamespaceSelectsTypes(t *testing.T) {
	reg := newRegistry(t)
	source := map[string]any{
		"order_items": []any{map[string]any{"id": 1, "quantity": 2}},
	}

	var inWarehouse warehouse.Order
	require.NoError(t, binder.New(reg, binder.WithNamespace("warehouse")).Bind(&inWarehouse, source))
	assert.Equal(t, []any{&warehouse.OrderItem{ID: 1, Quantity: 2}}, inWarehouse.OrderItems)

	var inStore warehouse.Order

	diags, err := binder.New(reg, binder.WithNamespace("store")).BindDiagnostics(&inStore, source)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": 1, "quantity": 2}}, inStore.OrderItems)

	require.Len(t, diags.Infos, 1)
	assert.Contains(t, diags.Infos[0].Message, "store.OrderItem")
	assert.Contains(t, diags.Infos[0].Suggestions, "warehouse.OrderItem")
}

func TestBindWithoutNamespace(t *testing.T) {
	var c catalog

	diags, err := binder.New(newRegistry(t)).BindDiagnostics(&c, map[string]any{
		"items": []any{map[string]any{"sku": "PEN-1"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []any{map[string]any{"sku": "PEN-1"}}, c.Items)
	require.Len(t, diags.Infos, 1)
	assert.Contains(t, diags.Infos[0].Message, "no namespace root")
}

func TestBindElemOption(t *testing.T) {
	type basket struct {
		Lines   []any `bind:",elem=store.Item"`
		Unknown []any `bind:",elem=store.Line"`
	}

	var v basket

	diags, err := binder.New(newRegistry(t)).BindDiagnostics(&v, map[string]any{
		"lines":   []any{map[string]any{"sku": "PEN-1"}, "gift"},
		"unknown": []any{map[string]any{"sku": "INK-2"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []any{&store.Item{SKU: "PEN-1"}, "gift"}, v.Lines)
	assert.Nil(t, v.Unknown)

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "unknown", diags.Errors[0].FieldPath)
}

func TestBindFactoryError(t *testing.T) {
	type widget struct {
		Name string
	}

	type holder struct {
		Widget any `bind:",type=test.Widget"`
	}

	reg := registry.New()
	reg.MustRegisterFactory("test.Widget", func() (*widget, error) {
		return nil, errors.New("out of widgets")
	})

	var h holder

	err := binder.New(reg, binder.WithStrict()).Bind(&h, map[string]any{
		"widget": map[string]any{"name": "w"},
	})
	require.ErrorIs(t, err, binder.ErrDeclaredTypeLookup)
	assert.Contains(t, err.Error(), "out of widgets")
	assert.Nil(t, h.Widget)
}

func TestBindStructSource(t *testing.T) {
	source := store.Item{SKU: "PEN-1", Name: "Pen", Quantity: 2}

	var copied store.Item
	require.NoError(t, binder.New(nil).Bind(&copied, &source))
	assert.Equal(t, source, copied)
}

func TestBindJSONAndYAML(t *testing.T) {
	b := binder.New(newRegistry(t), binder.WithNamespace("store"))

	var fromJSON store.Order
	require.NoError(t, b.BindJSON(&fromJSON, []byte(`{"id": 9007199254740993, "items": [{"sku": "PEN-1"}]}`)))
	assert.Equal(t, int64(9007199254740993), fromJSON.ID)
	assert.Equal(t, []any{&store.Item{SKU: "PEN-1"}}, fromJSON.Items)

	var fromYAML store.Order
	require.NoError(t, b.BindYAML(&fromYAML, []byte("id: 7\nitems:\n  - sku: PEN-1\n    quantity: 3\n")))
	assert.Equal(t, int64(7), fromYAML.ID)
	assert.Equal(t, []any{&store.Item{SKU: "PEN-1", Quantity: 3}}, fromYAML.Items)

	var broken store.Order
	assert.Error(t, b.BindJSON(&broken, []byte(`{"id":`)))
	assert.Error(t, b.BindYAML(&broken, []byte("id: [")))
}

func TestBindLoggerAndReporter(t *testing.T) {
	var (
		buf      bytes.Buffer
		reported []binder.Diagnostic
	)

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := binder.New(newRegistry(t),
		binder.WithLogger(logger),
		binder.WithReporter(func(d binder.Diagnostic) { reported = append(reported, d) }),
	)

	var v withDeclared
	require.NoError(t, b.Bind(&v, map[string]any{"owner": map[string]any{}}))

	require.Len(t, reported, 1)
	assert.Equal(t, binder.CodeDeclaredTypeLookup, reported[0].Code)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "code=declared_type_lookup")
	assert.Contains(t, buf.String(), "field=owner")
}

func TestFromConfig(t *testing.T) {
	reg := newRegistry(t)

	cfg := options.Default()
	cfg.Namespace = "store"
	cfg.Strict = true
	cfg.LooseKeys = true

	b, err := binder.FromConfig(reg, cfg)
	require.NoError(t, err)
	assert.Equal(t, "store", b.Namespace())
	assert.Same(t, reg, b.Registry())

	var order store.Order
	require.NoError(t, b.Bind(&order, map[string]any{"TOTAL_CENTS": "1999"}))
	assert.Equal(t, int64(1999), order.TotalCents)

	var v withDeclared
	assert.ErrorIs(t, b.Bind(&v, map[string]any{"owner": map[string]any{}}), binder.ErrDeclaredTypeLookup)

	cfg.Conversions = []string{"safe_number"}
	b, err = binder.FromConfig(reg, cfg)
	require.NoError(t, err)

	var s sample
	require.NoError(t, b.Bind(&s, map[string]any{"sampleString": 5}))
	assert.Empty(t, s.SampleString)

	cfg.Version = "2"
	_, err = binder.FromConfig(reg, cfg)
	assert.Error(t, err)
}

func TestConventionName(t *testing.T) {
	tests := []struct {
		namespace string
		key       string
		expected  string
	}{
		{"store", "items", "store.Item"},
		{"store", "lineItems", "store.LineItem"},
		{"warehouse", "order_items", "warehouse.OrderItem"},
		{"warehouse", "stock_levels", "warehouse.StockLevel"},
		{"crm", "people", "crm.Person"},
		{"", "items", ""},
		{"store", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.namespace+"/"+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, binder.ConventionName(tt.namespace, tt.key))
		})
	}
}
