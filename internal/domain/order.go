package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// los contratos wire llevan montos numéricos, no strings
	decimal.MarshalJSONWithoutQuotes = true
}

type Address struct {
	ID     string `json:"id,omitempty"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// OrderItem es la fila del payload de creación de orden que espera el
// backend: referencia al producto, cantidad, variación opcional y el precio
// unitario tal como quedó congelado en el carrito.
type OrderItem struct {
	ProductID   string          `json:"productId"`
	Quantity    int             `json:"quantity"`
	VariationID string          `json:"variationId,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// OrderDraft es el payload completo de POST /orders.
type OrderDraft struct {
	Items           []OrderItem     `json:"items"`
	ShippingAddress Address         `json:"shippingAddress"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// Order es la vista del historial (/orders/my-orders).
type Order struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Items     []OrderItem     `json:"items,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type Card struct {
	Number   string
	Holder   string
	ExpMonth string
	ExpYear  string
	CVV      string
}

// PaymentRequest es el payload de POST /payments/process. El backend procesa
// contra el proveedor; este cliente sólo tokeniza la tarjeta.
type PaymentRequest struct {
	OrderID         string `json:"orderId"`
	Provider        string `json:"provider"`
	Email           string `json:"email"`
	Method          string `json:"method"`
	PaymentMethodID string `json:"payment_method_id"`
	CardToken       string `json:"cardToken,omitempty"`
	Installments    int    `json:"installments"`
}

type PaymentResult struct {
	Status       string `json:"status"`
	QRCode       string `json:"qr_code,omitempty"`
	QRCodeBase64 string `json:"qr_code_base64,omitempty"`
}

// PaymentMethodForCard deduce el payment_method_id de MercadoPago a partir
// del BIN de la tarjeta. Default master.
func PaymentMethodForCard(number string) string {
	bin := strings.ReplaceAll(number, " ", "")
	switch {
	case strings.HasPrefix(bin, "4"):
		return "visa"
	case strings.HasPrefix(bin, "34"), strings.HasPrefix(bin, "37"):
		return "amex"
	case strings.HasPrefix(bin, "5"):
		return "master"
	case strings.HasPrefix(bin, "6"):
		return "elo"
	case strings.HasPrefix(bin, "30"), strings.HasPrefix(bin, "36"), strings.HasPrefix(bin, "38"):
		return "diners"
	}
	return "master"
}
