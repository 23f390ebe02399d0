package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lorenawear/loja/internal/domain"
)

// Gateway tokeniza tarjetas contra MercadoPago con la public key del
// comercio. El pago en sí lo procesa el backend con el token resultante;
// este cliente nunca ve credenciales privadas.
type Gateway struct {
	publicKey  string
	baseURL    string
	httpClient *http.Client
}

func NewGateway(publicKey string) *Gateway {
	return &Gateway{
		publicKey:  publicKey,
		baseURL:    "https://api.mercadopago.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type cardholder struct {
	Name           string `json:"name"`
	Identification struct {
		Type   string `json:"type"`
		Number string `json:"number"`
	} `json:"identification"`
}

type cardTokenReq struct {
	CardNumber      string     `json:"card_number"`
	Cardholder      cardholder `json:"cardholder"`
	ExpirationMonth int        `json:"expiration_month"`
	ExpirationYear  int        `json:"expiration_year"`
	SecurityCode    string     `json:"security_code"`
}

type cardTokenResp struct {
	ID string `json:"id"`
}

func (g *Gateway) CreateCardToken(ctx context.Context, c domain.Card) (string, error) {
	if g.publicKey == "" {
		return "", errors.New("MP public key faltante (MP_PUBLIC_KEY)")
	}
	number := strings.ReplaceAll(c.Number, " ", "")
	if number == "" {
		return "", errors.New("número de tarjeta vacío")
	}
	month, err := strconv.Atoi(strings.TrimSpace(c.ExpMonth))
	if err != nil {
		return "", fmt.Errorf("mes de vencimiento inválido: %q", c.ExpMonth)
	}
	year, err := strconv.Atoi(strings.TrimSpace(c.ExpYear))
	if err != nil {
		return "", fmt.Errorf("año de vencimiento inválido: %q", c.ExpYear)
	}
	if year < 100 {
		year += 2000
	}

	reqBody := cardTokenReq{
		CardNumber:      number,
		ExpirationMonth: month,
		ExpirationYear:  year,
		SecurityCode:    c.CVV,
	}
	reqBody.Cardholder.Name = c.Holder
	reqBody.Cardholder.Identification.Type = "CPF"
	reqBody.Cardholder.Identification.Number = "12345678909"

	buf, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	u := g.baseURL + "/v1/card_tokens?public_key=" + g.publicKey
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	res, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("error de conexión con MercadoPago: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		var mpError struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &mpError); err == nil && mpError.Message != "" {
			return "", fmt.Errorf("error de MercadoPago (status %d): %s", res.StatusCode, mpError.Message)
		}
		return "", fmt.Errorf("mp card token status %d: %s", res.StatusCode, string(body))
	}
	var tok cardTokenResp
	if err := json.NewDecoder(res.Body).Decode(&tok); err != nil {
		return "", err
	}
	if tok.ID == "" {
		return "", errors.New("respuesta MP incompleta")
	}
	return tok.ID, nil
}
