package dto

import (
	"time"

	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name       string `json:"name"`
	SKU        string `json:"sku,omitempty"`
	Category   string `json:"category,omitempty"`
	Quantity   int    `json:"quantity"`
	StockAlert int    `json:"stock_alert"`
	Unit       string `json:"unit"`
	SupplierID string `json:"supplier_id,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se tocan.
// La cantidad no es editable por esta vía: solo la mutan recepciones y
// transferencias completadas.
type UpdateProductRequest struct {
	Name       *string `json:"name,omitempty"`
	SKU        *string `json:"sku,omitempty"`
	Category   *string `json:"category,omitempty"`
	StockAlert *int    `json:"stock_alert,omitempty"`
	Unit       *string `json:"unit,omitempty"`
	SupplierID *string `json:"supplier_id,omitempty"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SKU        string    `json:"sku,omitempty"`
	Category   string    `json:"category,omitempty"`
	Quantity   int       `json:"quantity"`
	StockAlert int       `json:"stock_alert"`
	Unit       string    `json:"unit"`
	SupplierID string    `json:"supplier_id,omitempty"`
	LowStock   bool      `json:"low_stock"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewProductResponse convierte la entidad a su representación HTTP.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		SKU:        p.SKU,
		Category:   p.Category,
		Quantity:   p.Quantity,
		StockAlert: p.StockAlert,
		Unit:       p.Unit,
		SupplierID: p.SupplierID,
		LowStock:   p.IsLowStock(),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// NewProductListResponse mapea un slice de entidades.
func NewProductListResponse(list []entity.Product) []ProductResponse {
	items := make([]ProductResponse, 0, len(list))
	for i := range list {
		items = append(items, NewProductResponse(&list[i]))
	}
	return items
}
