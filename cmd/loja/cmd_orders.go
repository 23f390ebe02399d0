package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lorenawear/loja/internal/adapters/reports"
)

var exportOut string

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Historial de pedidos de la cuenta",
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := application.Checkout.MyOrders(cmd.Context())
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("Todavía no hay pedidos.")
			return nil
		}
		for _, o := range orders {
			fmt.Printf("%s  %s  %-16s %s\n",
				o.ID, o.CreatedAt.Format("2006-01-02"), o.Status, money(o.Total))
		}
		return nil
	},
}

var ordersExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exportar el historial de pedidos a un .xlsx",
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := application.Checkout.MyOrders(cmd.Context())
		if err != nil {
			return err
		}
		if err := reports.WriteOrders(exportOut, orders); err != nil {
			return err
		}
		fmt.Printf("Exportados %d pedidos a %s\n", len(orders), exportOut)
		return nil
	},
}

func init() {
	ordersExportCmd.Flags().StringVar(&exportOut, "out", "pedidos.xlsx", "archivo de salida")
	ordersCmd.AddCommand(ordersExportCmd)
	rootCmd.AddCommand(ordersCmd)
}
