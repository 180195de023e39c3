// Package reports genera el reporte de valorización de inventario. El armado
// del PDF queda detrás de un puerto para no acoplar la aplicación a Maroto.
package reports

import (
	"context"
	"time"

	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
	domainviews "github.com/stockpilot/stockpilot-api/internal/domain/views"
)

// InventoryReport datos listos para renderizar: el join producto-inventario
// más los agregados, congelados al momento de la consulta.
type InventoryReport struct {
	Items       []domainviews.ProductWithInventory
	Stats       domainviews.DashboardStats
	GeneratedAt time.Time
}

// InventoryPDFGenerator puerto de salida para el render del reporte.
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, report *InventoryReport) ([]byte, error)
}

// InventoryReportUseCase genera el PDF de valorización del inventario actual.
type InventoryReportUseCase struct {
	products    repository.ProductRepository
	inventories repository.InventoryRepository
	generator   InventoryPDFGenerator
}

// NewInventoryReportUseCase construye el caso de uso.
func NewInventoryReportUseCase(
	products repository.ProductRepository,
	inventories repository.InventoryRepository,
	generator InventoryPDFGenerator,
) *InventoryReportUseCase {
	return &InventoryReportUseCase{products: products, inventories: inventories, generator: generator}
}

// Generate arma el snapshot del inventario del usuario y lo renderiza a PDF.
func (uc *InventoryReportUseCase) Generate(ctx context.Context, userID string) ([]byte, error) {
	products, err := uc.products.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	inventories, err := uc.inventories.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := domainviews.Join(products, inventories)
	report := &InventoryReport{
		Items:       items,
		Stats:       domainviews.Stats(items),
		GeneratedAt: time.Now(),
	}
	return uc.generator.GenerateInventoryPDF(ctx, report)
}
