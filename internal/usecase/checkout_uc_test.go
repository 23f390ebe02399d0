package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenawear/loja/internal/domain"
)

type fakeOrderAPI struct {
	couponAmount decimal.Decimal
	couponValid  bool
	couponErr    error

	createdDraft *domain.OrderDraft
	createErr    error

	paymentReq *domain.PaymentRequest
	paymentRes *domain.PaymentResult
	paymentErr error

	orders []domain.Order
}

func (f *fakeOrderAPI) ValidateCoupon(_ context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, bool, error) {
	return f.couponAmount, f.couponValid, f.couponErr
}

func (f *fakeOrderAPI) CreateOrder(_ context.Context, draft domain.OrderDraft) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createdDraft = &draft
	return "order-1", nil
}

func (f *fakeOrderAPI) ProcessPayment(_ context.Context, req domain.PaymentRequest) (*domain.PaymentResult, error) {
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	f.paymentReq = &req
	if f.paymentRes != nil {
		return f.paymentRes, nil
	}
	return &domain.PaymentResult{Status: "approved"}, nil
}

func (f *fakeOrderAPI) MyOrders(_ context.Context) ([]domain.Order, error) { return f.orders, nil }

func (f *fakeOrderAPI) Addresses(_ context.Context) ([]domain.Address, error) { return nil, nil }

func (f *fakeOrderAPI) DeleteAddress(_ context.Context, _ string) error { return nil }

type fakeTokenizer struct {
	token string
	err   error
	card  domain.Card
}

func (f *fakeTokenizer) CreateCardToken(_ context.Context, c domain.Card) (string, error) {
	f.card = c
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func newCheckoutFixture(t *testing.T) (*CheckoutUC, *fakeOrderAPI, *fakeTokenizer) {
	t.Helper()
	kv := newFakeKV()
	kv.data[domain.KeyToken] = "opaque-session-token"
	kv.data[domain.KeyUser] = `{"name":"Street Member","email":"street@garimpo.com"}`

	cart := NewCartUC(kv)
	p2 := productP2()
	cart.AddToCart(productP1(), 2, nil, false)
	cart.AddToCart(p2, 1, &p2.Variations[0], false)

	orders := &fakeOrderAPI{}
	cards := &fakeTokenizer{token: "card-token-1"}
	auth := &AuthUC{API: nil, KV: kv}
	return &CheckoutUC{Cart: cart, Orders: orders, Cards: cards, Auth: auth}, orders, cards
}

func TestCheckout_CardBuildsOrderAndPays(t *testing.T) {
	uc, orders, cards := newCheckoutFixture(t)
	ctx := context.Background()

	form := CheckoutForm{
		Address:       domain.Address{Street: "Rua A 123", City: "São Paulo", State: "SP", Zip: "01000-000"},
		PaymentMethod: PaymentCredit,
		Card:          domain.Card{Number: "4111 1111 1111 1111", Holder: "STREET MEMBER", ExpMonth: "11", ExpYear: "28", CVV: "123"},
	}
	res, err := uc.Checkout(ctx, form, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "order-1", res.OrderID)
	assert.Equal(t, "approved", res.Payment.Status)

	draft := orders.createdDraft
	require.NotNil(t, draft)
	require.Len(t, draft.Items, 2)
	assert.Equal(t, "p1", draft.Items[0].ProductID)
	assert.Equal(t, 2, draft.Items[0].Quantity)
	assert.Empty(t, draft.Items[0].VariationID)
	assert.Equal(t, "p2", draft.Items[1].ProductID)
	assert.Equal(t, "red-M", draft.Items[1].VariationID)
	assert.True(t, draft.Subtotal.Equal(decimal.NewFromInt(350)))
	assert.True(t, draft.Total.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, "Rua A 123", draft.ShippingAddress.Street)

	pay := orders.paymentReq
	require.NotNil(t, pay)
	assert.Equal(t, "order-1", pay.OrderID)
	assert.Equal(t, "mercadopago", pay.Provider)
	assert.Equal(t, "street@garimpo.com", pay.Email)
	assert.Equal(t, "visa", pay.Method)
	assert.Equal(t, "visa", pay.PaymentMethodID)
	assert.Equal(t, "card-token-1", pay.CardToken)
	assert.Equal(t, 1, pay.Installments)
	assert.Equal(t, "4111 1111 1111 1111", cards.card.Number)

	// pago exitoso: el carrito quedó vacío
	assert.Empty(t, uc.Cart.Items())
}

func TestCheckout_PixReturnsQR(t *testing.T) {
	uc, orders, _ := newCheckoutFixture(t)
	orders.paymentRes = &domain.PaymentResult{Status: "pending", QRCode: "pix-qr-data"}

	res, err := uc.Checkout(context.Background(), CheckoutForm{PaymentMethod: PaymentPix}, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "pix-qr-data", res.Payment.QRCode)
	assert.Equal(t, "pix", orders.paymentReq.Method)
	assert.Equal(t, "pix", orders.paymentReq.PaymentMethodID)
	assert.Empty(t, orders.paymentReq.CardToken)
	assert.Empty(t, uc.Cart.Items())
}

func TestCheckout_DiscountLowersTotal(t *testing.T) {
	uc, orders, _ := newCheckoutFixture(t)

	_, err := uc.Checkout(context.Background(), CheckoutForm{PaymentMethod: PaymentPix}, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.True(t, orders.createdDraft.Discount.Equal(decimal.NewFromInt(50)))
	assert.True(t, orders.createdDraft.Total.Equal(decimal.NewFromInt(300)))
}

func TestCheckout_PaymentFailureKeepsCart(t *testing.T) {
	uc, orders, _ := newCheckoutFixture(t)
	orders.paymentErr = errors.New("rechazado")

	_, err := uc.Checkout(context.Background(), CheckoutForm{PaymentMethod: PaymentPix}, decimal.Zero)
	require.Error(t, err)
	assert.Len(t, uc.Cart.Items(), 2)
}

func TestCheckout_OrderFailureKeepsCart(t *testing.T) {
	uc, orders, _ := newCheckoutFixture(t)
	orders.createErr = errors.New("stock insuficiente")

	_, err := uc.Checkout(context.Background(), CheckoutForm{PaymentMethod: PaymentPix}, decimal.Zero)
	require.Error(t, err)
	assert.Nil(t, orders.paymentReq)
	assert.Len(t, uc.Cart.Items(), 2)
}

func TestCheckout_TokenizationFailureAbortsPayment(t *testing.T) {
	uc, orders, cards := newCheckoutFixture(t)
	cards.err = errors.New("tarjeta inválida")

	_, err := uc.Checkout(context.Background(), CheckoutForm{PaymentMethod: PaymentCredit}, decimal.Zero)
	require.Error(t, err)
	assert.Nil(t, orders.paymentReq)
	assert.Len(t, uc.Cart.Items(), 2)
}

func TestCheckout_RequiresSession(t *testing.T) {
	uc, _, _ := newCheckoutFixture(t)
	uc.Auth.Logout()

	_, err := uc.Checkout(context.Background(), CheckoutForm{PaymentMethod: PaymentPix}, decimal.Zero)
	require.Error(t, err)
	assert.Len(t, uc.Cart.Items(), 2)
}

func TestCheckout_EmptyCart(t *testing.T) {
	uc, _, _ := newCheckoutFixture(t)
	uc.Cart.Clear()

	_, err := uc.Checkout(context.Background(), CheckoutForm{PaymentMethod: PaymentPix}, decimal.Zero)
	assert.Error(t, err)
}

func TestApplyCoupon_Valid(t *testing.T) {
	uc, orders, _ := newCheckoutFixture(t)
	orders.couponValid = true
	orders.couponAmount = decimal.NewFromInt(35)

	d, err := uc.ApplyCoupon(context.Background(), "PROMO")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(35)))
}

func TestApplyCoupon_Invalid(t *testing.T) {
	uc, orders, _ := newCheckoutFixture(t)
	orders.couponValid = false

	_, err := uc.ApplyCoupon(context.Background(), "NADA")
	assert.Error(t, err)
}

func TestApplyCoupon_LocalFallback(t *testing.T) {
	uc, orders, _ := newCheckoutFixture(t)
	orders.couponErr = errors.New("backend caído")

	// GARIMPO10 funciona offline: 10% del subtotal
	d, err := uc.ApplyCoupon(context.Background(), "garimpo10")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(35)))

	_, err = uc.ApplyCoupon(context.Background(), "OTRO")
	assert.Error(t, err)
}

func TestPaymentMethodForCard(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"4111 1111 1111 1111", "visa"},
		{"5500 0000 0000 0004", "master"},
		{"3400 000000 00009", "amex"},
		{"3700 000000 00002", "amex"},
		{"6011 0000 0000 0004", "elo"},
		{"3600 0000 0000 08", "diners"},
		{"9999", "master"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.PaymentMethodForCard(tt.number), tt.number)
	}
}
