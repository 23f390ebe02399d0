package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product es la forma canónica que devuelve el adaptador de API después de
// normalizar el wire format del backend. Ningún otro paquete vuelve a
// adivinar shapes de precio o imagen.
type Product struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Price      decimal.Decimal   `json:"price"`
	Images     []string          `json:"images"`
	IsVariable bool              `json:"is_variable"`
	Stock      int               `json:"stock"`
	Category   string            `json:"category"`
	Brand      string            `json:"brand"`
	Tag        string            `json:"tag,omitempty"`
	Color      string            `json:"color,omitempty"`
	Size       string            `json:"size,omitempty"`
	Variations []Variation       `json:"variations,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type Variation struct {
	ID         string            `json:"id"`
	Color      string            `json:"color,omitempty"`
	Size       string            `json:"size,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Price      decimal.Decimal   `json:"price"`
	Stock      int               `json:"stock"`
}

type Review struct {
	ID        string    `json:"id,omitempty"`
	ProductID string    `json:"productId"`
	Author    string    `json:"author,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ProductFilters son las facetas disponibles para filtrar el catálogo
// (GET /products/filters). Los colores traen nombre y hex para el swatch.
type ProductFilters struct {
	Sizes  []string      `json:"sizes"`
	Colors []ColorOption `json:"colors"`
}

type ColorOption struct {
	Name string `json:"name"`
	Hex  string `json:"hex,omitempty"`
}

type ProductFilter struct {
	Query       string
	Category    string
	Brand       string
	IsAccessory bool
	Page        int
	PageSize    int
}

// FindVariation busca una variación por id exacto, o por talle/color si el id
// viene vacío. Devuelve nil si no hay match.
func (p *Product) FindVariation(id, size, color string) *Variation {
	for i := range p.Variations {
		v := &p.Variations[i]
		if id != "" {
			if v.ID == id {
				return v
			}
			continue
		}
		if size != "" && !strings.EqualFold(variationSize(v), size) {
			continue
		}
		if color != "" && !strings.EqualFold(variationColor(v), color) {
			continue
		}
		if size == "" && color == "" {
			continue
		}
		return v
	}
	return nil
}

func variationColor(v *Variation) string {
	if v.Color != "" {
		return v.Color
	}
	return v.Attributes["Color"]
}

func variationSize(v *Variation) string {
	if v.Size != "" {
		return v.Size
	}
	return v.Attributes["Size"]
}

