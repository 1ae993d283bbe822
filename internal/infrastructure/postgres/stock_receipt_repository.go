package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
	"github.com/tu-usuario/bodega-pro/internal/domain/repository"
)

var _ repository.StockReceiptRepository = (*StockReceiptRepo)(nil)

// StockReceiptRepo implementación append-only sobre PostgreSQL (usable con pool o tx).
type StockReceiptRepo struct {
	q Querier
}

// NewStockReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockReceiptRepository(q Querier) *StockReceiptRepo {
	return &StockReceiptRepo{q: q}
}

const receiptColumns = `id, supplier_id, supplier_name, product_id, product_name, quantity, date, notes, received_by, created_at, updated_at`

// Create persiste una recepción de stock.
func (r *StockReceiptRepo) Create(ctx context.Context, receipt *entity.StockReceipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		receipt.ID, nullIfEmpty(receipt.SupplierID), receipt.SupplierName,
		receipt.ProductID, receipt.ProductName, receipt.Quantity, receipt.Date,
		nullIfEmpty(receipt.Notes), nullIfEmpty(receipt.ReceivedBy),
		receipt.CreatedAt, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock receipt: %w", err)
	}
	return nil
}

// List lista todas las recepciones, las más recientes primero.
func (r *StockReceiptRepo) List(ctx context.Context) ([]*entity.StockReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM stock_receipts ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockReceipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock receipt: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanReceipt(row pgx.Row) (*entity.StockReceipt, error) {
	var rec entity.StockReceipt
	var supplierID, notes, receivedBy *string
	err := row.Scan(&rec.ID, &supplierID, &rec.SupplierName, &rec.ProductID, &rec.ProductName,
		&rec.Quantity, &rec.Date, &notes, &receivedBy, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if supplierID != nil {
		rec.SupplierID = *supplierID
	}
	if notes != nil {
		rec.Notes = *notes
	}
	if receivedBy != nil {
		rec.ReceivedBy = *receivedBy
	}
	return &rec, nil
}
