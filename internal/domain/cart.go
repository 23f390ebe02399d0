package domain

import "github.com/shopspring/decimal"

// PlaceholderImage se usa cuando el producto no trae ninguna imagen.
const PlaceholderImage = "https://via.placeholder.com/800x800?text=NO+IMAGE"

// LineItem es una fila del carrito. Nombre, precio e imagen quedan
// congelados al momento del agregado; no se vuelven a leer del catálogo.
// Los tags json reproducen el formato persistido bajo la clave "cart".
type LineItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Variation *Variation      `json:"variation,omitempty"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
}

// LineIdentity deriva la clave única de una línea: el id del producto solo,
// o producto + variación cuando hay una elegida. Dos agregados con la misma
// identidad colapsan en la misma línea.
func LineIdentity(p Product, v *Variation) string {
	if v == nil {
		return p.ID
	}
	if v.ID != "" {
		return p.ID + "-" + v.ID
	}
	return p.ID + "-" + v.Size + v.Color
}

// NewLineItem arma la línea con los fallbacks de presentación: color y talle
// salen de la variación, si no del atributo de variación, si no del producto,
// y como último recurso "Única"/"Único".
func NewLineItem(p Product, qty int, v *Variation) LineItem {
	li := LineItem{
		ID:        LineIdentity(p, v),
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
	}
	var color, size string
	if v != nil {
		vc := *v
		li.Variation = &vc
		li.Price = v.Price
		color = v.Color
		if color == "" {
			color = v.Attributes["Color"]
		}
		size = v.Size
		if size == "" {
			size = v.Attributes["Size"]
		}
	}
	if color == "" {
		color = p.Color
	}
	if color == "" {
		color = "Única"
	}
	if size == "" {
		size = p.Size
	}
	if size == "" {
		size = "Único"
	}
	li.Color = color
	li.Size = size
	if len(p.Images) > 0 && p.Images[0] != "" {
		li.Image = p.Images[0]
	} else {
		li.Image = PlaceholderImage
	}
	return li
}

// Subtotal de la línea: precio unitario por cantidad.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// CartSnapshot es la vista de sólo lectura que consumen listados y checkout.
// El subtotal nunca se guarda: siempre se recalcula sobre las líneas vivas.
type CartSnapshot struct {
	Items    []LineItem
	Subtotal decimal.Decimal
}
