package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lorenawear/loja/internal/domain"
)

var (
	addQty       int
	addVariation string
	addSize      string
	addColor     string
	addShow      bool
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Ver y modificar el carrito",
	RunE: func(cmd *cobra.Command, args []string) error {
		printCart()
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <productID>",
	Short: "Agregar un producto al carrito",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := application.Catalog.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		var variation *domain.Variation
		if addVariation != "" || addSize != "" || addColor != "" {
			variation = p.FindVariation(addVariation, addSize, addColor)
			if variation == nil {
				return fmt.Errorf("el producto no tiene esa variación")
			}
		}
		qty := addQty
		if qty < 1 {
			qty = 1
		}
		application.Cart.AddToCart(*p, qty, variation, addShow)
		fmt.Printf("Agregado: %s x%d\n", p.Name, qty)
		if application.Cart.IsOpen() {
			fmt.Println()
			printCart()
		}
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <identity>",
	Short: "Sacar una línea del carrito",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application.Cart.RemoveItem(args[0])
		printCart()
		return nil
	},
}

var cartQtyCmd = &cobra.Command{
	Use:   "qty <identity> <delta>",
	Short: "Ajustar la cantidad de una línea (la cantidad nunca baja de 1)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("delta inválido: %q", args[1])
		}
		application.Cart.UpdateQuantity(args[0], delta)
		printCart()
		return nil
	},
}

func init() {
	cartAddCmd.Flags().IntVar(&addQty, "qty", 1, "cantidad")
	cartAddCmd.Flags().StringVar(&addVariation, "variation", "", "id de variación")
	cartAddCmd.Flags().StringVar(&addSize, "size", "", "talle de la variación")
	cartAddCmd.Flags().StringVar(&addColor, "color", "", "color de la variación")
	cartAddCmd.Flags().BoolVar(&addShow, "show", true, "mostrar el carrito después de agregar")

	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd, cartQtyCmd)
	rootCmd.AddCommand(cartCmd)
}
