package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse resumen del dashboard. TotalInventoryValue se
// redondea a 2 decimales solo al construir la respuesta.
type DashboardStatsResponse struct {
	TotalProducts       int             `json:"total_products"`
	LowStockCount       int             `json:"low_stock_count"`
	OutOfStockCount     int             `json:"out_of_stock_count"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
}
