package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/lorenawear/loja/internal/app"
	"github.com/lorenawear/loja/internal/domain"
)

var application *app.App

var rootCmd = &cobra.Command{
	Use:           "loja",
	Short:         "Cliente de la tienda Lorena: catálogo, carrito y checkout desde la terminal",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.NewApp()
		if err != nil {
			return err
		}
		application = a
		return nil
	},
}

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

func printCart() {
	items := application.Cart.Items()
	if len(items) == 0 {
		fmt.Println("El carrito está vacío.")
		return
	}
	for _, it := range items {
		fmt.Printf("%-40s  %s · %s  x%d  %s  (%s)\n",
			it.Name, it.Color, it.Size, it.Quantity, money(it.Subtotal()), it.ID)
	}
	fmt.Printf("\nSubtotal: %s (%d ítems)\n", money(application.Cart.Subtotal()), application.Cart.Count())
}

func printProduct(p *domain.Product) {
	fmt.Printf("%s  %s\n", p.ID, p.Name)
	fmt.Printf("  %s", money(p.Price))
	if p.Category != "" {
		fmt.Printf("  · %s", p.Category)
	}
	if p.Tag != "" {
		fmt.Printf("  [%s]", p.Tag)
	}
	fmt.Println()
	for _, v := range p.Variations {
		label := v.ID
		if v.Size != "" || v.Color != "" {
			label = fmt.Sprintf("%s (%s %s)", v.ID, v.Size, v.Color)
		}
		fmt.Printf("    var %-24s %s  stock %d\n", label, money(v.Price), v.Stock)
	}
}
