package api

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lorenawear/loja/internal/domain"
)

// El backend (y los datos legados que arrastra) no es consistente: el precio
// puede venir como número o como string formateado ("R$ 349,90"), y las
// imágenes como lista de strings, lista de objetos {src} o un campo imgFront
// suelto. Acá se normaliza todo una sola vez; el resto del cliente ve
// únicamente domain.Product.

type wireVariation struct {
	ID         string            `json:"id"`
	Color      string            `json:"color"`
	Size       string            `json:"size"`
	Attributes map[string]string `json:"attributes"`
	Price      json.RawMessage   `json:"price"`
	Stock      int               `json:"stock"`
}

type wireProduct struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      json.RawMessage `json:"price"`
	Images     json.RawMessage `json:"images"`
	ImgFront   json.RawMessage `json:"imgFront"`
	ImgBack    json.RawMessage `json:"imgBack"`
	IsVariable bool            `json:"is_variable"`
	Stock      int             `json:"stock"`
	Category   string          `json:"category"`
	Brand      string          `json:"brand"`
	Tag        string          `json:"tag"`
	Color      string          `json:"color"`
	Size       string          `json:"size"`
	Variations []wireVariation `json:"variations"`
}

func normalizeProduct(w wireProduct) domain.Product {
	p := domain.Product{
		ID:         w.ID,
		Name:       w.Name,
		Price:      parsePrice(w.Price),
		Images:     parseImages(w.ImgFront, w.Images, w.ImgBack),
		IsVariable: w.IsVariable,
		Stock:      w.Stock,
		Category:   w.Category,
		Brand:      w.Brand,
		Tag:        w.Tag,
		Color:      w.Color,
		Size:       w.Size,
	}
	for _, v := range w.Variations {
		p.Variations = append(p.Variations, domain.Variation{
			ID:         v.ID,
			Color:      v.Color,
			Size:       v.Size,
			Attributes: v.Attributes,
			Price:      parsePrice(v.Price),
			Stock:      v.Stock,
		})
	}
	return p
}

// parsePrice acepta número JSON o string formateado. Lo que no se pueda
// interpretar vale cero: un precio roto nunca envenena la aritmética del
// carrito con NaN.
func parsePrice(raw json.RawMessage) decimal.Decimal {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero
	}
	var any interface{}
	if err := json.Unmarshal(raw, &any); err != nil {
		return decimal.Zero
	}
	switch v := any.(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		return parsePriceString(v)
	}
	return decimal.Zero
}

func parsePriceString(s string) decimal.Decimal {
	cleaned := strings.Builder{}
	for _, r := range strings.TrimSpace(s) {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			cleaned.WriteRune(r)
		}
	}
	str := cleaned.String()
	if str == "" {
		return decimal.Zero
	}
	// "1.349,90": el punto separa miles y la coma decimales
	if strings.Contains(str, ",") {
		str = strings.ReplaceAll(str, ".", "")
		str = strings.ReplaceAll(str, ",", ".")
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseImages junta las variantes de shape en una lista plana de URLs,
// respetando la preferencia imgFront → images → imgBack del cliente web.
func parseImages(fields ...json.RawMessage) []string {
	var out []string
	for _, raw := range fields {
		for _, u := range imageURLs(raw) {
			if u != "" {
				out = append(out, u)
			}
		}
	}
	return out
}

func imageURLs(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var any interface{}
	if err := json.Unmarshal(raw, &any); err != nil {
		return nil
	}
	switch v := any.(type) {
	case string:
		return []string{v}
	case map[string]interface{}:
		if src, ok := v["src"].(string); ok {
			return []string{src}
		}
	case []interface{}:
		var urls []string
		for _, e := range v {
			switch img := e.(type) {
			case string:
				urls = append(urls, img)
			case map[string]interface{}:
				if src, ok := img["src"].(string); ok {
					urls = append(urls, src)
				}
			}
		}
		return urls
	}
	return nil
}
