package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Claves del mirror durable. Mismo layout que el cliente web: el carrito
// serializado, el bearer token y el snapshot del perfil.
const (
	KeyCart  = "cart"
	KeyToken = "token"
	KeyUser  = "user"
)

// KeyValueStore es el storage durable local del dispositivo. Sobrevive
// reinicios pero no se comparte entre dispositivos.
type KeyValueStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

type CatalogAPI interface {
	ListProducts(ctx context.Context, f ProductFilter) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	Categories(ctx context.Context) ([]string, error)
	Brands(ctx context.Context) ([]string, error)
	ProductFilters(ctx context.Context) (*ProductFilters, error)
	ListReviews(ctx context.Context, productID string) ([]Review, error)
	CreateReview(ctx context.Context, r Review) error
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, *Customer, error)
	Register(ctx context.Context, name, email, password string) (string, *Customer, error)
	GoogleLogin(ctx context.Context, email, name, accessToken string) (string, *Customer, error)
	Profile(ctx context.Context) (*Customer, error)
	UpdateProfile(ctx context.Context, c *Customer) error
}

type OrderAPI interface {
	ValidateCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, bool, error)
	CreateOrder(ctx context.Context, draft OrderDraft) (string, error)
	ProcessPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error)
	MyOrders(ctx context.Context) ([]Order, error)
	Addresses(ctx context.Context) ([]Address, error)
	DeleteAddress(ctx context.Context, id string) error
}

type CardTokenizer interface {
	CreateCardToken(ctx context.Context, c Card) (string, error)
}
