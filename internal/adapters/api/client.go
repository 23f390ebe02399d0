package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lorenawear/loja/internal/domain"
)

// Client habla con la API REST del backend. Adjunta el bearer token del
// storage local en cada request y, ante un 401, descarta token y perfil:
// la sesión dejó de valer.
type Client struct {
	base       string
	httpClient *http.Client
	kv         domain.KeyValueStore
}

func New(base string, kv domain.KeyValueStore) *Client {
	return &Client{
		base:       strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		kv:         kv,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok, ok := c.kv.Get(domain.KeyToken); ok && tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api %s %s: %w", method, path, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusUnauthorized {
		_ = c.kv.Delete(domain.KeyToken)
		_ = c.kv.Delete(domain.KeyUser)
	}
	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		return fmt.Errorf("api %s %s: status %d: %s", method, path, res.StatusCode, strings.TrimSpace(string(b)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// --- Catálogo ---

func (c *Client) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Brand != "" {
		q.Set("brand", f.Brand)
	}
	if f.IsAccessory {
		q.Set("is_accessory", "true")
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("limit", strconv.Itoa(f.PageSize))
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/products", q, nil, &raw); err != nil {
		return nil, err
	}
	wires, err := decodeProductList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(wires))
	for _, w := range wires {
		out = append(out, normalizeProduct(w))
	}
	return out, nil
}

// decodeProductList tolera tanto un array pelado como {"products": [...]}.
func decodeProductList(raw json.RawMessage) ([]wireProduct, error) {
	var list []wireProduct
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Products []wireProduct `json:"products"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("respuesta de productos inesperada: %w", err)
	}
	return wrapped.Products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var w wireProduct
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &w); err != nil {
		return nil, err
	}
	p := normalizeProduct(w)
	return &p, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	return c.names(ctx, "/categories")
}

func (c *Client) Brands(ctx context.Context) ([]string, error) {
	return c.names(ctx, "/brands")
}

func (c *Client) names(ctx context.Context, path string) ([]string, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	var plain []string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain, nil
	}
	var objs []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &objs); err != nil {
		return nil, fmt.Errorf("respuesta de %s inesperada: %w", path, err)
	}
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		out = append(out, o.Name)
	}
	return out, nil
}

// ProductFilters trae las facetas de talle y color del catálogo.
func (c *Client) ProductFilters(ctx context.Context) (*domain.ProductFilters, error) {
	var out domain.ProductFilters
	if err := c.do(ctx, http.MethodGet, "/products/filters", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	var out []domain.Review
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(productID)+"/reviews", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateReview(ctx context.Context, r domain.Review) error {
	return c.do(ctx, http.MethodPost, "/reviews", nil, r, nil)
}

// --- Auth ---

type authResponse struct {
	Token string           `json:"token"`
	User  *domain.Customer `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (string, *domain.Customer, error) {
	var res authResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &res); err != nil {
		return "", nil, err
	}
	return res.Token, res.User, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (string, *domain.Customer, error) {
	var res authResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, &res); err != nil {
		return "", nil, err
	}
	return res.Token, res.User, nil
}

func (c *Client) GoogleLogin(ctx context.Context, email, name, accessToken string) (string, *domain.Customer, error) {
	var res authResponse
	body := map[string]string{"email": email, "name": name, "accessToken": accessToken}
	if err := c.do(ctx, http.MethodPost, "/auth/google", nil, body, &res); err != nil {
		return "", nil, err
	}
	return res.Token, res.User, nil
}

func (c *Client) Profile(ctx context.Context) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, cu *domain.Customer) error {
	return c.do(ctx, http.MethodPut, "/users/profile", nil, cu, nil)
}

// --- Órdenes y pagos ---

func (c *Client) ValidateCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, bool, error) {
	var res struct {
		Valid          bool            `json:"valid"`
		DiscountAmount decimal.Decimal `json:"discountAmount"`
	}
	body := map[string]interface{}{"code": code, "subtotal": subtotal}
	if err := c.do(ctx, http.MethodPost, "/coupons/validate", nil, body, &res); err != nil {
		return decimal.Zero, false, err
	}
	return res.DiscountAmount, res.Valid, nil
}

func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (string, error) {
	var res struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", nil, draft, &res); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", fmt.Errorf("orden creada sin id")
	}
	return res.ID, nil
}

func (c *Client) ProcessPayment(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentResult, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/payments/process", nil, req, &raw); err != nil {
		return nil, err
	}
	// el backend a veces envuelve el resultado en {"result": {...}}
	var wrapped struct {
		Result *domain.PaymentResult `json:"result"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Result != nil {
		return wrapped.Result, nil
	}
	var direct domain.PaymentResult
	if err := json.Unmarshal(raw, &direct); err != nil {
		return nil, err
	}
	return &direct, nil
}

func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders/my-orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Addresses(ctx context.Context) ([]domain.Address, error) {
	var out []domain.Address
	if err := c.do(ctx, http.MethodGet, "/users/addresses", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/addresses/"+url.PathEscape(id), nil, nil, nil)
}
