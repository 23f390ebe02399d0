package usecase

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/lorenawear/loja/internal/domain"
)

// CartUC es el dueño exclusivo del carrito de la sesión. Mantiene las líneas
// en memoria y las espeja al storage durable en cada mutación (write-through).
// Ninguna operación devuelve error: si el mirror falla se loguea y la copia
// en memoria sigue siendo la autoritativa. Todas las operaciones son
// síncronas; el único momento de lectura del mirror es la construcción.
type CartUC struct {
	kv    domain.KeyValueStore
	items []domain.LineItem
	open  bool
}

func NewCartUC(kv domain.KeyValueStore) *CartUC {
	uc := &CartUC{kv: kv}
	uc.hydrate()
	return uc
}

// hydrate levanta el carrito persistido. Cualquier cosa que no pase el
// chequeo de esquema descarta el carrito entero y arranca vacío.
func (uc *CartUC) hydrate() {
	raw, ok := uc.kv.Get(domain.KeyCart)
	if !ok || raw == "" {
		return
	}
	var items []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warn().Err(err).Msg("carrito guardado corrupto, se descarta")
		return
	}
	for _, it := range items {
		if it.ID == "" || it.ProductID == "" || it.Quantity < 1 {
			log.Warn().Str("line", it.ID).Msg("carrito guardado con línea inválida, se descarta")
			return
		}
	}
	uc.items = items
}

func (uc *CartUC) persist() {
	b, err := json.Marshal(uc.items)
	if err != nil || uc.items == nil {
		b = []byte("[]")
	}
	if err := uc.kv.Set(domain.KeyCart, string(b)); err != nil {
		log.Warn().Err(err).Msg("no se pudo persistir el carrito")
	}
}

// AddToCart agrega qty unidades de un producto, con variación opcional. Si ya
// existe una línea con la misma identidad se suma la cantidad y se conserva
// el precio congelado en el agregado original. Con openCart se marca el
// carrito como visible.
func (uc *CartUC) AddToCart(p domain.Product, qty int, v *domain.Variation, openCart bool) {
	id := domain.LineIdentity(p, v)
	found := false
	for i := range uc.items {
		if uc.items[i].ID == id {
			uc.items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		uc.items = append(uc.items, domain.NewLineItem(p, qty, v))
	}
	uc.persist()
	if openCart {
		uc.open = true
	}
}

// RemoveItem saca la línea con esa identidad. Si no existe, no pasa nada.
func (uc *CartUC) RemoveItem(identity string) {
	kept := uc.items[:0]
	for _, it := range uc.items {
		if it.ID != identity {
			kept = append(kept, it)
		}
	}
	uc.items = kept
	uc.persist()
}

// UpdateQuantity suma delta (positivo o negativo) a la cantidad de la línea,
// con piso 1. Llegar a cero sólo se puede con RemoveItem.
func (uc *CartUC) UpdateQuantity(identity string, delta int) {
	for i := range uc.items {
		if uc.items[i].ID == identity {
			q := uc.items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			uc.items[i].Quantity = q
			break
		}
	}
	uc.persist()
}

// Clear vacía el carrito. Se usa después de un checkout exitoso.
func (uc *CartUC) Clear() {
	uc.items = nil
	uc.persist()
}

func (uc *CartUC) ToggleCart() {
	uc.open = !uc.open
}

func (uc *CartUC) IsOpen() bool {
	return uc.open
}

func (uc *CartUC) Items() []domain.LineItem {
	return append([]domain.LineItem(nil), uc.items...)
}

// Count es la cantidad total de unidades, para el badge del carrito.
func (uc *CartUC) Count() int {
	n := 0
	for _, it := range uc.items {
		n += it.Quantity
	}
	return n
}

// Subtotal se recalcula en cada lectura sobre las líneas vivas; nunca se
// cachea para que no pueda divergir.
func (uc *CartUC) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range uc.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (uc *CartUC) Snapshot() domain.CartSnapshot {
	return domain.CartSnapshot{Items: uc.Items(), Subtotal: uc.Subtotal()}
}
