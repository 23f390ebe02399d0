package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lorenawear/loja/internal/domain"
)

const (
	PaymentCredit = "credit"
	PaymentPix    = "pix"
)

type CheckoutForm struct {
	Address       domain.Address
	PaymentMethod string
	Card          domain.Card
}

type CheckoutResult struct {
	OrderID string
	Payment *domain.PaymentResult
}

// CheckoutUC arma el payload de orden desde el snapshot del carrito, cobra
// (tarjeta tokenizada o pix) y recién ante un pago exitoso vacía el carrito.
// La validación de stock y precios es del backend: acá no se revalida nada.
type CheckoutUC struct {
	Cart   *CartUC
	Orders domain.OrderAPI
	Cards  domain.CardTokenizer
	Auth   *AuthUC
}

// ApplyCoupon valida el cupón contra el backend sobre el subtotal actual.
// Si el backend no responde queda el fallback local de prueba GARIMPO10.
func (uc *CheckoutUC) ApplyCoupon(ctx context.Context, code string) (decimal.Decimal, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return decimal.Zero, errors.New("cupón vacío")
	}
	subtotal := uc.Cart.Subtotal()
	amount, valid, err := uc.Orders.ValidateCoupon(ctx, code, subtotal)
	if err != nil {
		if strings.EqualFold(code, "GARIMPO10") {
			return subtotal.Mul(decimal.NewFromFloat(0.1)).Round(2), nil
		}
		return decimal.Zero, err
	}
	if !valid {
		return decimal.Zero, errors.New("cupón inválido")
	}
	return amount, nil
}

func (uc *CheckoutUC) Checkout(ctx context.Context, form CheckoutForm, discount decimal.Decimal) (*CheckoutResult, error) {
	if !uc.Auth.IsAuthenticated() {
		return nil, errors.New("necesitás iniciar sesión para comprar")
	}
	snap := uc.Cart.Snapshot()
	if len(snap.Items) == 0 {
		return nil, errors.New("el carrito está vacío")
	}
	if discount.IsNegative() {
		return nil, errors.New("descuento negativo")
	}

	draft := buildOrder(snap, form.Address, discount, form.PaymentMethod)
	orderID, err := uc.Orders.CreateOrder(ctx, draft)
	if err != nil {
		return nil, err
	}

	email := "test@test.com"
	if u := uc.Auth.CurrentUser(); u != nil {
		email = u.Email
	}
	pay := domain.PaymentRequest{
		OrderID:      orderID,
		Provider:     "mercadopago",
		Email:        email,
		Installments: 1,
	}
	if form.PaymentMethod == PaymentCredit {
		cardToken, err := uc.Cards.CreateCardToken(ctx, form.Card)
		if err != nil {
			return nil, err
		}
		pm := domain.PaymentMethodForCard(form.Card.Number)
		pay.Method = pm
		pay.PaymentMethodID = pm
		pay.CardToken = cardToken
	} else {
		pay.Method = PaymentPix
		pay.PaymentMethodID = PaymentPix
	}

	result, err := uc.Orders.ProcessPayment(ctx, pay)
	if err != nil {
		return nil, err
	}

	// pago aceptado: el carrito se vacía y el mirror con él
	uc.Cart.Clear()
	return &CheckoutResult{OrderID: orderID, Payment: result}, nil
}

func buildOrder(snap domain.CartSnapshot, addr domain.Address, discount decimal.Decimal, method string) domain.OrderDraft {
	items := make([]domain.OrderItem, 0, len(snap.Items))
	for _, li := range snap.Items {
		item := domain.OrderItem{
			ProductID: li.ProductID,
			Quantity:  li.Quantity,
			Price:     li.Price,
		}
		if li.Variation != nil {
			item.VariationID = li.Variation.ID
		}
		items = append(items, item)
	}
	return domain.OrderDraft{
		Items:           items,
		ShippingAddress: addr,
		Subtotal:        snap.Subtotal,
		Discount:        discount,
		Total:           snap.Subtotal.Sub(discount),
		PaymentMethod:   method,
	}
}

func (uc *CheckoutUC) MyOrders(ctx context.Context) ([]domain.Order, error) {
	return uc.Orders.MyOrders(ctx)
}
