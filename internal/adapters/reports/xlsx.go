package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lorenawear/loja/internal/domain"
)

const ordersSheet = "Pedidos"

// WriteOrders vuelca el historial de pedidos a un .xlsx, una fila por orden.
func WriteOrders(path string, orders []domain.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return err
	}
	headers := []string{"ID", "Fecha", "Estado", "Items", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ordersSheet, cell, h); err != nil {
			return err
		}
	}
	for row, o := range orders {
		n := 0
		for _, it := range o.Items {
			n += it.Quantity
		}
		values := []interface{}{
			o.ID,
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.Status,
			n,
			o.Total.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(ordersSheet, cell, v); err != nil {
				return err
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("no se pudo escribir %s: %w", path, err)
	}
	return nil
}
