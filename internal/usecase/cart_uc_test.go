package usecase

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenawear/loja/internal/domain"
)

// fakeKV es un KeyValueStore en memoria para los tests de usecases.
type fakeKV struct {
	data    map[string]string
	failSet bool
	sets    int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(key string) (string, bool) {
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeKV) Set(key, value string) error {
	f.sets++
	if f.failSet {
		return errors.New("sin espacio")
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(key string) error {
	delete(f.data, key)
	return nil
}

func productP1() domain.Product {
	return domain.Product{
		ID:     "p1",
		Name:   "Cropped X1",
		Price:  decimal.NewFromInt(100),
		Images: []string{"https://img.example/p1.jpg"},
	}
}

func productP2() domain.Product {
	return domain.Product{
		ID:         "p2",
		Name:       "Tee Acid Wash",
		Price:      decimal.NewFromInt(90),
		IsVariable: true,
		Variations: []domain.Variation{
			{ID: "red-M", Color: "Rojo", Size: "M", Price: decimal.NewFromInt(150), Stock: 3},
			{ID: "blue-M", Color: "Azul", Size: "M", Price: decimal.NewFromInt(150), Stock: 1},
		},
	}
}

func TestAddToCart_MergesSameIdentity(t *testing.T) {
	cart := NewCartUC(newFakeKV())

	cart.AddToCart(productP1(), 1, nil, false)
	cart.AddToCart(productP1(), 1, nil, false)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(200)))
}

func TestAddToCart_MergePreservesOriginalPrice(t *testing.T) {
	cart := NewCartUC(newFakeKV())
	p := productP1()

	cart.AddToCart(p, 1, nil, false)
	// el catálogo cambió de precio después del primer agregado
	p.Price = decimal.NewFromInt(999)
	cart.AddToCart(p, 1, nil, false)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(200)))
}

func TestAddToCart_DistinctVariations(t *testing.T) {
	cart := NewCartUC(newFakeKV())
	p := productP2()

	cart.AddToCart(p, 1, &p.Variations[0], false)
	cart.AddToCart(p, 1, &p.Variations[1], false)

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p2-red-M", items[0].ID)
	assert.Equal(t, "p2-blue-M", items[1].ID)
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(300)))
}

func TestLineIdentity_VariationWithoutID(t *testing.T) {
	p := productP2()
	v := &domain.Variation{Size: "M", Color: "Rojo"}
	assert.Equal(t, "p2-MRojo", domain.LineIdentity(p, v))
}

func TestAddToCart_VariationPriceAndAttributes(t *testing.T) {
	cart := NewCartUC(newFakeKV())
	p := productP2()

	cart.AddToCart(p, 1, &p.Variations[0], false)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "Rojo", items[0].Color)
	assert.Equal(t, "M", items[0].Size)
}

func TestAddToCart_ColorSizeFallbacks(t *testing.T) {
	cart := NewCartUC(newFakeKV())

	// sin variación y sin atributos de producto: placeholders
	cart.AddToCart(productP1(), 1, nil, false)
	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Única", items[0].Color)
	assert.Equal(t, "Único", items[0].Size)

	// atributos de variación vía mapa Attributes
	p := productP2()
	v := &domain.Variation{ID: "x", Attributes: map[string]string{"Color": "Verde", "Size": "G"}, Price: decimal.NewFromInt(10)}
	cart.AddToCart(p, 1, v, false)
	items = cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Verde", items[1].Color)
	assert.Equal(t, "G", items[1].Size)
}

func TestAddToCart_PlaceholderImage(t *testing.T) {
	cart := NewCartUC(newFakeKV())
	p := productP1()
	p.Images = nil

	cart.AddToCart(p, 1, nil, false)

	assert.Equal(t, domain.PlaceholderImage, cart.Items()[0].Image)
}

func TestUpdateQuantity_FloorsAtOne(t *testing.T) {
	cart := NewCartUC(newFakeKV())
	cart.AddToCart(productP1(), 2, nil, false)

	cart.UpdateQuantity("p1", -5)
	assert.Equal(t, 1, cart.Items()[0].Quantity)

	// ya en 1, volver a decrementar la deja en 1
	cart.UpdateQuantity("p1", -1)
	assert.Equal(t, 1, cart.Items()[0].Quantity)

	cart.UpdateQuantity("p1", 3)
	assert.Equal(t, 4, cart.Items()[0].Quantity)
}

func TestUpdateQuantity_UnknownIdentityIsNoop(t *testing.T) {
	cart := NewCartUC(newFakeKV())
	cart.AddToCart(productP1(), 1, nil, false)

	cart.UpdateQuantity("no-existe", 5)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveItem_IsTerminal(t *testing.T) {
	cart := NewCartUC(newFakeKV())
	p := productP2()
	cart.AddToCart(productP1(), 1, nil, false)
	cart.AddToCart(p, 1, &p.Variations[0], false)

	cart.RemoveItem("p2-red-M")

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(100)))

	// un ajuste posterior sobre la identidad removida no la resucita
	cart.UpdateQuantity("p2-red-M", 1)
	assert.Len(t, cart.Items(), 1)

	// remover algo inexistente tampoco es error
	cart.RemoveItem("p2-red-M")
	assert.Len(t, cart.Items(), 1)
}

func TestSubtotal_RecomputedOverSequence(t *testing.T) {
	cart := NewCartUC(newFakeKV())
	p2 := productP2()

	cart.AddToCart(productP1(), 1, nil, false)
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(100)))

	cart.AddToCart(productP1(), 1, nil, false)
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(200)))

	cart.AddToCart(p2, 1, &p2.Variations[0], false)
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(350)))

	cart.UpdateQuantity("p1", -5)
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(250)))

	cart.RemoveItem("p2-red-M")
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(100)))
}

func TestPersistence_RoundTrip(t *testing.T) {
	kv := newFakeKV()
	first := NewCartUC(kv)
	p2 := productP2()
	first.AddToCart(productP1(), 2, nil, false)
	first.AddToCart(p2, 1, &p2.Variations[0], false)

	// una instancia nueva sobre el mismo storage reproduce el carrito
	second := NewCartUC(kv)

	want := first.Items()
	got := second.Items()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].ProductID, got[i].ProductID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.Equal(t, want[i].Color, got[i].Color)
		assert.Equal(t, want[i].Size, got[i].Size)
		assert.True(t, want[i].Price.Equal(got[i].Price))
	}
	assert.True(t, second.Subtotal().Equal(first.Subtotal()))
	assert.Equal(t, 3, second.Count())
}

func TestHydrate_CorruptJSONStartsEmpty(t *testing.T) {
	kv := newFakeKV()
	kv.data[domain.KeyCart] = "{esto no es json"

	cart := NewCartUC(kv)

	assert.Empty(t, cart.Items())
	assert.True(t, cart.Subtotal().IsZero())
}

func TestHydrate_SchemaCheckDiscardsWholeCart(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"cantidad cero", `[{"id":"p1","productId":"p1","price":100,"quantity":0}]`},
		{"sin identidad", `[{"id":"","productId":"p1","price":100,"quantity":1}]`},
		{"sin producto", `[{"id":"p1","productId":"","price":100,"quantity":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newFakeKV()
			kv.data[domain.KeyCart] = tt.raw

			cart := NewCartUC(kv)

			assert.Empty(t, cart.Items())
		})
	}
}

func TestPersist_WriteThroughOnEveryMutation(t *testing.T) {
	kv := newFakeKV()
	cart := NewCartUC(kv)

	cart.AddToCart(productP1(), 1, nil, false)
	cart.UpdateQuantity("p1", 1)
	cart.RemoveItem("p1")

	assert.Equal(t, 3, kv.sets)

	var stored []domain.LineItem
	require.NoError(t, json.Unmarshal([]byte(kv.data[domain.KeyCart]), &stored))
	assert.Empty(t, stored)
}

func TestPersist_FailureKeepsInMemoryState(t *testing.T) {
	kv := newFakeKV()
	kv.failSet = true
	cart := NewCartUC(kv)

	cart.AddToCart(productP1(), 1, nil, false)

	// el mirror falló pero la copia en memoria sigue mandando
	require.Len(t, cart.Items(), 1)
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(100)))
	_, ok := kv.Get(domain.KeyCart)
	assert.False(t, ok)
}

func TestClear_EmptiesCartAndMirror(t *testing.T) {
	kv := newFakeKV()
	cart := NewCartUC(kv)
	cart.AddToCart(productP1(), 3, nil, false)

	cart.Clear()

	assert.Empty(t, cart.Items())
	assert.Equal(t, "[]", kv.data[domain.KeyCart])
}

func TestVisibilityFlag(t *testing.T) {
	cart := NewCartUC(newFakeKV())
	assert.False(t, cart.IsOpen())

	cart.AddToCart(productP1(), 1, nil, false)
	assert.False(t, cart.IsOpen())

	cart.AddToCart(productP1(), 1, nil, true)
	assert.True(t, cart.IsOpen())

	cart.ToggleCart()
	assert.False(t, cart.IsOpen())
	cart.ToggleCart()
	assert.True(t, cart.IsOpen())
}

func TestItems_ReturnsCopy(t *testing.T) {
	cart := NewCartUC(newFakeKV())
	cart.AddToCart(productP1(), 1, nil, false)

	items := cart.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, cart.Items()[0].Quantity)
}
