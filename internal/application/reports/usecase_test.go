package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/bodega-pro/internal/application/dto"
	"github.com/tu-usuario/bodega-pro/internal/application/store"
	"github.com/tu-usuario/bodega-pro/internal/domain"
	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
	"github.com/tu-usuario/bodega-pro/internal/domain/repository"
	"github.com/tu-usuario/bodega-pro/pkg/logger"
)

// Repos de solo lectura: los reportes solo necesitan List.

type listProducts []*entity.Product

func (l listProducts) Create(context.Context, *entity.Product) error { return nil }
func (l listProducts) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, nil
}
func (l listProducts) Update(context.Context, *entity.Product) error { return nil }
func (l listProducts) AdjustQuantity(context.Context, string, int) (int, error) {
	return 0, nil
}
func (l listProducts) List(context.Context) ([]*entity.Product, error) { return l, nil }
func (l listProducts) Delete(context.Context, string) error            { return nil }

type listSuppliers []*entity.Supplier

func (l listSuppliers) Create(context.Context, *entity.Supplier) error { return nil }
func (l listSuppliers) GetByID(context.Context, string) (*entity.Supplier, error) {
	return nil, nil
}
func (l listSuppliers) Update(context.Context, *entity.Supplier) error   { return nil }
func (l listSuppliers) List(context.Context) ([]*entity.Supplier, error) { return l, nil }
func (l listSuppliers) Delete(context.Context, string) error             { return nil }

type listReceipts []*entity.StockReceipt

func (l listReceipts) Create(context.Context, *entity.StockReceipt) error { return nil }
func (l listReceipts) List(context.Context) ([]*entity.StockReceipt, error) {
	return l, nil
}

type listTransfers []*entity.StockTransfer

func (l listTransfers) Create(context.Context, *entity.StockTransfer) error { return nil }
func (l listTransfers) GetByID(context.Context, string) (*entity.StockTransfer, error) {
	return nil, nil
}
func (l listTransfers) UpdateStatus(context.Context, string, string) error { return nil }
func (l listTransfers) List(context.Context) ([]*entity.StockTransfer, error) {
	return l, nil
}

type listProfiles []*entity.Profile

func (l listProfiles) Create(context.Context, *entity.Profile) error { return nil }
func (l listProfiles) GetByID(context.Context, string) (*entity.Profile, error) {
	return nil, nil
}
func (l listProfiles) GetByUserID(context.Context, string) (*entity.Profile, error) {
	return nil, nil
}
func (l listProfiles) Update(context.Context, *entity.Profile) error { return nil }
func (l listProfiles) SetMustSetPassword(context.Context, string, bool) error {
	return nil
}
func (l listProfiles) TouchLastLogin(context.Context, string, time.Time) error {
	return nil
}
func (l listProfiles) List(context.Context) ([]*entity.Profile, error) { return l, nil }
func (l listProfiles) Delete(context.Context, string) error            { return nil }

type noTx struct{}

func (noTx) Run(_ context.Context, fn func(
	repository.ProductRepository,
	repository.StockReceiptRepository,
	repository.StockTransferRepository,
) error) error {
	return fn(listProducts{}, listReceipts{}, listTransfers{})
}

type fakeGenerator struct {
	got   *dto.ReportData
	bytes []byte
}

func (f *fakeGenerator) Generate(data *dto.ReportData) ([]byte, error) {
	f.got = data
	return f.bytes, nil
}

func newReportStore(t *testing.T) *store.Store {
	t.Helper()
	now := time.Now()
	old := now.AddDate(0, -2, 0) // fuera del periodo mensual

	st := store.New(store.Gateway{
		Products: listProducts{
			{ID: "p1", Name: "Aceite", Category: "fluidos", Quantity: 2, StockAlert: 5, Unit: "bottles"},
			{ID: "p2", Name: "Filtro", Category: "repuestos", Quantity: 40, StockAlert: 10, Unit: "pieces"},
		},
		Suppliers: listSuppliers{
			{ID: "s1", Name: "Lubricantes del Norte"},
		},
		Receipts: listReceipts{
			{ID: "r1", ProductID: "p1", ProductName: "Aceite", SupplierName: "Lubricantes del Norte", Quantity: 10, Date: now.AddDate(0, 0, -2)},
			{ID: "r2", ProductID: "p2", ProductName: "Filtro", SupplierName: "Autopartes SA", Quantity: 7, Date: now.AddDate(0, 0, -3)},
			{ID: "r3", ProductID: "p1", ProductName: "Aceite", SupplierName: "Lubricantes del Norte", Quantity: 99, Date: old},
		},
		Transfers: listTransfers{
			{ID: "t1", ProductID: "p1", ProductName: "Aceite", ReceiverName: "Taller", Quantity: 4, Status: entity.TransferCompleted, Date: now.AddDate(0, 0, -1)},
			{ID: "t2", ProductID: "p1", ProductName: "Aceite", ReceiverName: "Sucursal", Quantity: 3, Status: entity.TransferPending, Date: now.AddDate(0, 0, -1)},
			{ID: "t3", ProductID: "p2", ProductName: "Filtro", ReceiverName: "Taller", Quantity: 50, Status: entity.TransferCompleted, Date: old},
		},
		Profiles: listProfiles{},
		Tx:       noTx{},
	}, store.NewNotificationCenter(5), logger.Nop())
	require.NoError(t, st.Refresh(context.Background()))
	return st
}

func TestBuild_PeriodoInvalido(t *testing.T) {
	uc := NewUsecase(newReportStore(t), &fakeGenerator{}, &fakeGenerator{})
	_, err := uc.Build("quarterly", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuild_FiltraPorPeriodo(t *testing.T) {
	uc := NewUsecase(newReportStore(t), &fakeGenerator{}, &fakeGenerator{})

	data, err := uc.Build(PeriodMonthly, "")
	require.NoError(t, err)

	assert.Len(t, data.Receipts, 2) // r3 queda fuera
	assert.Len(t, data.Transfers, 2)
	assert.Equal(t, 17, data.Summary.TotalReceived)
	assert.Equal(t, 4, data.Summary.TotalTransferred) // solo completadas del periodo
	assert.Equal(t, 2, data.Summary.TotalProducts)
	assert.Equal(t, 1, data.Summary.LowStockItems)
	assert.Equal(t, 2, data.Summary.ActiveSuppliers)
}

func TestBuild_FiltraPorCategoria(t *testing.T) {
	uc := NewUsecase(newReportStore(t), &fakeGenerator{}, &fakeGenerator{})

	data, err := uc.Build(PeriodMonthly, "fluidos")
	require.NoError(t, err)

	assert.Equal(t, "fluidos", data.Category)
	assert.Equal(t, 1, data.Summary.TotalProducts)
	assert.Len(t, data.Receipts, 1)
	assert.Equal(t, 10, data.Summary.TotalReceived)
	assert.Len(t, data.Transfers, 2)
	assert.Equal(t, 4, data.Summary.TotalTransferred)
	require.Len(t, data.LowStockProducts, 1)
	assert.Equal(t, "Aceite", data.LowStockProducts[0].Name)
}

func TestBuildPDF_DelegaEnElGenerador(t *testing.T) {
	pdf := &fakeGenerator{bytes: []byte("pdf")}
	xlsx := &fakeGenerator{bytes: []byte("xlsx")}
	uc := NewUsecase(newReportStore(t), pdf, xlsx)

	out, err := uc.BuildPDF(PeriodWeekly, "")
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), out)
	require.NotNil(t, pdf.got)
	assert.Equal(t, PeriodWeekly, pdf.got.Period)

	out, err = uc.BuildXLSX(PeriodDaily, "fluidos")
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), out)
	require.NotNil(t, xlsx.got)
	assert.Equal(t, "fluidos", xlsx.got.Category)

	_, err = uc.BuildPDF("bad", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
