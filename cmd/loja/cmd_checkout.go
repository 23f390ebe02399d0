package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/lorenawear/loja/internal/domain"
	"github.com/lorenawear/loja/internal/usecase"
)

var (
	coStreet  string
	coCity    string
	coState   string
	coZip     string
	coPix     bool
	coCoupon  string
	coCardNum string
	coHolder  string
	coExp     string
	coCVV     string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Crear la orden con el carrito actual y pagar (tarjeta o pix)",
	RunE: func(cmd *cobra.Command, args []string) error {
		discount := decimal.Zero
		if coCoupon != "" {
			d, err := application.Checkout.ApplyCoupon(cmd.Context(), coCoupon)
			if err != nil {
				return err
			}
			discount = d
			fmt.Printf("Cupón aplicado: -%s\n", money(discount))
		}

		form := usecase.CheckoutForm{
			Address:       domain.Address{Street: coStreet, City: coCity, State: coState, Zip: coZip},
			PaymentMethod: usecase.PaymentCredit,
		}
		if coPix {
			form.PaymentMethod = usecase.PaymentPix
		} else {
			month, year := splitExpiration(coExp)
			form.Card = domain.Card{
				Number:   coCardNum,
				Holder:   coHolder,
				ExpMonth: month,
				ExpYear:  year,
				CVV:      coCVV,
			}
		}

		res, err := application.Checkout.Checkout(cmd.Context(), form, discount)
		if err != nil {
			return err
		}
		fmt.Printf("Orden %s creada, pago %s\n", res.OrderID, res.Payment.Status)
		if res.Payment.QRCode != "" {
			fmt.Println("\nPagá escaneando este código Pix:")
			fmt.Println(res.Payment.QRCode)
		}
		return nil
	},
}

// splitExpiration parte "MM/AA" en mes y año; tolera "MM/AAAA".
func splitExpiration(exp string) (string, string) {
	for i := 0; i < len(exp); i++ {
		if exp[i] == '/' {
			return exp[:i], exp[i+1:]
		}
	}
	return exp, ""
}

func init() {
	checkoutCmd.Flags().StringVar(&coStreet, "street", "", "calle y número")
	checkoutCmd.Flags().StringVar(&coCity, "city", "", "ciudad")
	checkoutCmd.Flags().StringVar(&coState, "state", "", "provincia/estado")
	checkoutCmd.Flags().StringVar(&coZip, "zip", "", "código postal")
	checkoutCmd.Flags().BoolVar(&coPix, "pix", false, "pagar con pix en vez de tarjeta")
	checkoutCmd.Flags().StringVar(&coCoupon, "coupon", "", "código de cupón")
	checkoutCmd.Flags().StringVar(&coCardNum, "card-number", "", "número de tarjeta")
	checkoutCmd.Flags().StringVar(&coHolder, "card-holder", "", "titular")
	checkoutCmd.Flags().StringVar(&coExp, "card-exp", "", "vencimiento MM/AA")
	checkoutCmd.Flags().StringVar(&coCVV, "card-cvv", "", "código de seguridad")

	rootCmd.AddCommand(checkoutCmd)
}
