package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/bodega-pro/internal/application/dto"
	"github.com/tu-usuario/bodega-pro/internal/domain"
	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
	"github.com/tu-usuario/bodega-pro/internal/domain/repository"
	"github.com/tu-usuario/bodega-pro/pkg/logger"
)

// ── Fakes en memoria del gateway ─────────────────────────────────────────────

type fakeProductRepo struct {
	items       []*entity.Product
	createCalls int
	adjustCalls int
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.createCalls++
	cp := *p
	f.items = append([]*entity.Product{&cp}, f.items...)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range f.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	for _, it := range f.items {
		if it.ID == p.ID {
			qty := it.Quantity
			*it = *p
			it.Quantity = qty
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeProductRepo) AdjustQuantity(_ context.Context, id string, delta int) (int, error) {
	f.adjustCalls++
	for _, p := range f.items {
		if p.ID == id {
			if p.Quantity+delta < 0 {
				return 0, domain.ErrInsufficientStock
			}
			p.Quantity += delta
			return p.Quantity, nil
		}
	}
	return 0, domain.ErrNotFound
}

func (f *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.items))
	for _, p := range f.items {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeReceiptRepo struct {
	items       []*entity.StockReceipt
	createCalls int
}

func (f *fakeReceiptRepo) Create(_ context.Context, r *entity.StockReceipt) error {
	f.createCalls++
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	cp := *r
	f.items = append([]*entity.StockReceipt{&cp}, f.items...)
	return nil
}

func (f *fakeReceiptRepo) List(_ context.Context) ([]*entity.StockReceipt, error) {
	out := make([]*entity.StockReceipt, 0, len(f.items))
	for _, r := range f.items {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

type fakeTransferRepo struct {
	items        []*entity.StockTransfer
	createCalls  int
	statusCalls  int
	failOnCreate error
}

func (f *fakeTransferRepo) Create(_ context.Context, t *entity.StockTransfer) error {
	f.createCalls++
	if f.failOnCreate != nil {
		return f.failOnCreate
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	cp := *t
	f.items = append([]*entity.StockTransfer{&cp}, f.items...)
	return nil
}

func (f *fakeTransferRepo) GetByID(_ context.Context, id string) (*entity.StockTransfer, error) {
	for _, t := range f.items {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTransferRepo) UpdateStatus(_ context.Context, id, status string) error {
	f.statusCalls++
	for _, t := range f.items {
		if t.ID == id {
			t.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeTransferRepo) List(_ context.Context) ([]*entity.StockTransfer, error) {
	out := make([]*entity.StockTransfer, 0, len(f.items))
	for _, t := range f.items {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

type fakeSupplierRepo struct {
	items []*entity.Supplier
}

func (f *fakeSupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	cp := *s
	f.items = append([]*entity.Supplier{&cp}, f.items...)
	return nil
}

func (f *fakeSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	for _, s := range f.items {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	for _, it := range f.items {
		if it.ID == s.ID {
			*it = *s
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeSupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0, len(f.items))
	for _, s := range f.items {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSupplierRepo) Delete(_ context.Context, id string) error {
	for i, s := range f.items {
		if s.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeProfileRepo struct {
	items []*entity.Profile
}

func (f *fakeProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	cp := *p
	f.items = append([]*entity.Profile{&cp}, f.items...)
	return nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	for _, p := range f.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	for _, p := range f.items {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	for _, it := range f.items {
		if it.ID == p.ID {
			*it = *p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeProfileRepo) SetMustSetPassword(_ context.Context, userID string, must bool) error {
	for _, p := range f.items {
		if p.UserID == userID {
			p.MustSetPassword = must
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeProfileRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	for _, p := range f.items {
		if p.ID == id {
			t := at
			p.LastLogin = &t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeProfileRepo) List(_ context.Context) ([]*entity.Profile, error) {
	out := make([]*entity.Profile, 0, len(f.items))
	for _, p := range f.items {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, id string) error {
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeTx imita la atomicidad de la transacción: si fn falla, revierte las
// cantidades de productos y los registros agregados durante la llamada.
type fakeTx struct {
	products  *fakeProductRepo
	receipts  *fakeReceiptRepo
	transfers *fakeTransferRepo
	runs      int
}

func (f *fakeTx) Run(_ context.Context, fn func(
	products repository.ProductRepository,
	receipts repository.StockReceiptRepository,
	transfers repository.StockTransferRepository,
) error) error {
	f.runs++
	qtyBefore := make(map[string]int, len(f.products.items))
	for _, p := range f.products.items {
		qtyBefore[p.ID] = p.Quantity
	}
	receiptsBefore := len(f.receipts.items)
	transfersBefore := len(f.transfers.items)

	if err := fn(f.products, f.receipts, f.transfers); err != nil {
		for _, p := range f.products.items {
			if q, ok := qtyBefore[p.ID]; ok {
				p.Quantity = q
			}
		}
		f.receipts.items = f.receipts.items[len(f.receipts.items)-receiptsBefore:]
		f.transfers.items = f.transfers.items[len(f.transfers.items)-transfersBefore:]
		return err
	}
	return nil
}

type testEnv struct {
	store     *Store
	products  *fakeProductRepo
	suppliers *fakeSupplierRepo
	receipts  *fakeReceiptRepo
	transfers *fakeTransferRepo
	profiles  *fakeProfileRepo
	tx        *fakeTx
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	now := time.Now()
	products := &fakeProductRepo{items: []*entity.Product{
		{ID: "prod-1", Name: "Aceite de motor", Quantity: 25, StockAlert: 5, Unit: "bottles", SupplierID: "sup-1", CreatedAt: now, UpdatedAt: now},
		{ID: "prod-2", Name: "Filtro de aire", Quantity: 12, StockAlert: 10, Unit: "pieces", CreatedAt: now, UpdatedAt: now},
	}}
	suppliers := &fakeSupplierRepo{items: []*entity.Supplier{
		{ID: "sup-1", Name: "Lubricantes del Norte", CreatedAt: now, UpdatedAt: now},
	}}
	receipts := &fakeReceiptRepo{}
	transfers := &fakeTransferRepo{}
	profiles := &fakeProfileRepo{items: []*entity.Profile{
		{ID: "prof-1", UserID: "acc-1", Username: "ana", Email: "ana@bodega.test", Role: entity.RoleAdmin,
			Permissions: []string{"all"}, MustSetPassword: true, CreatedAt: now, UpdatedAt: now},
	}}
	tx := &fakeTx{products: products, receipts: receipts, transfers: transfers}

	st := New(Gateway{
		Products:  products,
		Suppliers: suppliers,
		Receipts:  receipts,
		Transfers: transfers,
		Profiles:  profiles,
		Tx:        tx,
	}, NewNotificationCenter(20), logger.Nop())
	require.NoError(t, st.Refresh(context.Background()))

	return &testEnv{store: st, products: products, suppliers: suppliers,
		receipts: receipts, transfers: transfers, profiles: profiles, tx: tx}
}

func lastNotification(t *testing.T, st *Store) Notification {
	t.Helper()
	recent := st.Notifier().Recent()
	require.NotEmpty(t, recent)
	return recent[0]
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRefresh_PueblaSnapshotAtomicamente(t *testing.T) {
	env := newTestEnv(t)

	assert.Len(t, env.store.Products(), 2)
	assert.Len(t, env.store.Suppliers(), 1)
	assert.Len(t, env.store.Profiles(), 1)
	assert.Equal(t, uint64(1), env.store.Version())

	var events []ChangeEvent
	cancel := env.store.Subscribe(func(ev ChangeEvent) { events = append(events, ev) })
	defer cancel()

	require.NoError(t, env.store.Refresh(context.Background()))
	require.Len(t, events, 1)
	assert.Equal(t, ChangeEvent{Entity: "all", Action: "refresh"}, events[0])
	assert.Equal(t, uint64(2), env.store.Version())
}

func TestAddStockReceipt_IncrementaProductoExactamenteUnaVez(t *testing.T) {
	env := newTestEnv(t)

	rec, err := env.store.AddStockReceipt(context.Background(), dto.CreateStockReceiptRequest{
		SupplierID: "sup-1",
		ProductID:  "prod-1",
		Quantity:   10,
		Date:       "2026-03-15",
	}, "ana")
	require.NoError(t, err)

	// 25 + 10 = 35, en el snapshot y en el backend
	p, ok := env.store.ProductByID("prod-1")
	require.True(t, ok)
	assert.Equal(t, 35, p.Quantity)
	assert.Equal(t, 35, env.products.items[findIdx(env.products.items, "prod-1")].Quantity)
	assert.Equal(t, 1, env.products.adjustCalls)
	assert.Equal(t, 1, env.tx.runs)

	// el libro guarda los nombres denormalizados y el actor
	assert.Equal(t, "Lubricantes del Norte", rec.SupplierName)
	assert.Equal(t, "Aceite de motor", rec.ProductName)
	assert.Equal(t, "ana", rec.ReceivedBy)
	require.Len(t, env.store.Receipts(), 1)

	n := lastNotification(t, env.store)
	assert.Equal(t, "Stock recibido", n.Title)
	assert.Equal(t, VariantSuccess, n.Variant)
}

func TestAddStockReceipt_ProductoInexistenteNoEscribe(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.store.AddStockReceipt(context.Background(), dto.CreateStockReceiptRequest{
		SupplierName: "Alguien",
		ProductID:    "prod-nope",
		Quantity:     5,
	}, "ana")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, env.tx.runs)
	assert.Zero(t, env.receipts.createCalls)
}

func TestAddStockReceipt_CantidadNoPositivaRechazada(t *testing.T) {
	env := newTestEnv(t)

	for _, q := range []int{0, -3} {
		_, err := env.store.AddStockReceipt(context.Background(), dto.CreateStockReceiptRequest{
			SupplierID: "sup-1", ProductID: "prod-1", Quantity: q,
		}, "ana")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Zero(t, env.tx.runs)
}

func TestAddStockTransfer_SobreStockRechazadaSinEscrituras(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.store.AddStockTransfer(context.Background(), dto.CreateStockTransferRequest{
		ReceiverName: "Sucursal Centro",
		ProductID:    "prod-1",
		Quantity:     26, // hay 25
		Status:       entity.TransferCompleted,
	}, "ana")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// cero escrituras remotas y snapshot intacto
	assert.Zero(t, env.tx.runs)
	assert.Zero(t, env.transfers.createCalls)
	p, _ := env.store.ProductByID("prod-1")
	assert.Equal(t, 25, p.Quantity)
	assert.Empty(t, env.store.Transfers())

	n := lastNotification(t, env.store)
	assert.Equal(t, VariantDestructive, n.Variant)
}

func TestAddStockTransfer_CanceladaSobreStockRechazada(t *testing.T) {
	env := newTestEnv(t)

	// la guarda de stock aplica a todo estado inicial, cancelled incluido
	_, err := env.store.AddStockTransfer(context.Background(), dto.CreateStockTransferRequest{
		ReceiverName: "Sucursal Centro",
		ProductID:    "prod-1",
		Quantity:     40, // hay 25
		Status:       entity.TransferCancelled,
	}, "ana")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Zero(t, env.transfers.createCalls)
	assert.Zero(t, env.tx.runs)
	assert.Empty(t, env.store.Transfers())

	n := lastNotification(t, env.store)
	assert.Equal(t, VariantDestructive, n.Variant)
}

func TestAddStockTransfer_CompletadaDescuentaAlCrear(t *testing.T) {
	env := newTestEnv(t)

	tr, err := env.store.AddStockTransfer(context.Background(), dto.CreateStockTransferRequest{
		ReceiverName: "Sucursal Centro",
		ProductID:    "prod-1",
		Quantity:     10,
		Status:       entity.TransferCompleted,
	}, "ana")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCompleted, tr.Status)
	assert.Equal(t, "Aceite de motor", tr.ProductName)

	p, _ := env.store.ProductByID("prod-1")
	assert.Equal(t, 15, p.Quantity)
	assert.Equal(t, 1, env.tx.runs)
	assert.Equal(t, 1, env.products.adjustCalls)
}

func TestAddStockTransfer_PendienteNoDescuenta(t *testing.T) {
	env := newTestEnv(t)

	tr, err := env.store.AddStockTransfer(context.Background(), dto.CreateStockTransferRequest{
		ReceiverName: "Sucursal Centro",
		ProductID:    "prod-1",
		Quantity:     10,
	}, "ana")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferPending, tr.Status)

	p, _ := env.store.ProductByID("prod-1")
	assert.Equal(t, 25, p.Quantity)
	assert.Zero(t, env.tx.runs)
	assert.Zero(t, env.products.adjustCalls)
}

func TestUpdateTransferStatus_DescuentaExactamenteUnaVez(t *testing.T) {
	env := newTestEnv(t)

	tr, err := env.store.AddStockTransfer(context.Background(), dto.CreateStockTransferRequest{
		ReceiverName: "Sucursal Centro", ProductID: "prod-1", Quantity: 10,
	}, "ana")
	require.NoError(t, err)

	// pending -> completed descuenta
	got, err := env.store.UpdateTransferStatus(context.Background(), tr.ID, entity.TransferCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCompleted, got.Status)
	p, _ := env.store.ProductByID("prod-1")
	assert.Equal(t, 15, p.Quantity)
	assert.Equal(t, 1, env.products.adjustCalls)

	// repetir "completed" es un no-op
	got, err = env.store.UpdateTransferStatus(context.Background(), tr.ID, entity.TransferCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCompleted, got.Status)
	p, _ = env.store.ProductByID("prod-1")
	assert.Equal(t, 15, p.Quantity)
	assert.Equal(t, 1, env.products.adjustCalls)

	// una transferencia completada es final
	_, err = env.store.UpdateTransferStatus(context.Background(), tr.ID, entity.TransferPending)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateTransferStatus_CanceladaPuedeCompletarse(t *testing.T) {
	env := newTestEnv(t)

	tr, err := env.store.AddStockTransfer(context.Background(), dto.CreateStockTransferRequest{
		ReceiverName: "Sucursal Centro", ProductID: "prod-1", Quantity: 5,
	}, "ana")
	require.NoError(t, err)

	// pending -> cancelled no toca el stock
	got, err := env.store.UpdateTransferStatus(context.Background(), tr.ID, entity.TransferCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCancelled, got.Status)
	p, _ := env.store.ProductByID("prod-1")
	assert.Equal(t, 25, p.Quantity)
	assert.Zero(t, env.products.adjustCalls)

	// cancelled -> completed descuenta, con re-chequeo de stock y en transacción
	got, err = env.store.UpdateTransferStatus(context.Background(), tr.ID, entity.TransferCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCompleted, got.Status)
	p, _ = env.store.ProductByID("prod-1")
	assert.Equal(t, 20, p.Quantity)
	assert.Equal(t, 1, env.products.adjustCalls)
	assert.Equal(t, 1, env.tx.runs)
}

func TestUpdateTransferStatus_CompletarSinStockRechazada(t *testing.T) {
	env := newTestEnv(t)

	// la transferencia cabía al crearla; el stock bajó después
	tr, err := env.store.AddStockTransfer(context.Background(), dto.CreateStockTransferRequest{
		ReceiverName: "Sucursal Centro", ProductID: "prod-1", Quantity: 20,
	}, "ana")
	require.NoError(t, err)

	_, err = env.store.AddStockTransfer(context.Background(), dto.CreateStockTransferRequest{
		ReceiverName: "Sucursal Sur", ProductID: "prod-1", Quantity: 10, Status: entity.TransferCompleted,
	}, "ana")
	require.NoError(t, err) // quedan 15

	_, err = env.store.UpdateTransferStatus(context.Background(), tr.ID, entity.TransferCompleted)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	p, _ := env.store.ProductByID("prod-1")
	assert.Equal(t, 15, p.Quantity)
}

func TestLowStockProducts_SeRecalculaTrasCadaMutacion(t *testing.T) {
	env := newTestEnv(t)

	// prod-2: 12 unidades, umbral 10 -> todavía no está bajo
	low := env.store.LowStockProducts()
	require.Empty(t, low)

	_, err := env.store.AddStockTransfer(context.Background(), dto.CreateStockTransferRequest{
		ReceiverName: "Taller", ProductID: "prod-2", Quantity: 3, Status: entity.TransferCompleted,
	}, "ana")
	require.NoError(t, err)

	low = env.store.LowStockProducts()
	require.Len(t, low, 1)
	assert.Equal(t, "prod-2", low[0].ID)
	assert.Equal(t, 9, low[0].Quantity)
}

func TestAddProduct_ValidaYAntepone(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.store.AddProduct(context.Background(), dto.CreateProductRequest{Name: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.store.AddProduct(context.Background(), dto.CreateProductRequest{
		Name: "Bujías", Quantity: 4, SupplierID: "sup-nope",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := env.store.AddProduct(context.Background(), dto.CreateProductRequest{
		Name: "Bujías", Quantity: 4, StockAlert: 2, SupplierID: "sup-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "pieces", p.Unit)

	list := env.store.Products()
	require.Len(t, list, 3)
	assert.Equal(t, p.ID, list[0].ID) // el más reciente primero
}

func TestUpdateProduct_NoTocaLaCantidad(t *testing.T) {
	env := newTestEnv(t)

	name := "Aceite sintético"
	alert := 8
	p, err := env.store.UpdateProduct(context.Background(), "prod-1", dto.UpdateProductRequest{
		Name: &name, StockAlert: &alert,
	})
	require.NoError(t, err)
	assert.Equal(t, "Aceite sintético", p.Name)
	assert.Equal(t, 8, p.StockAlert)
	assert.Equal(t, 25, p.Quantity)
}

func TestDeleteProduct_Inexistente(t *testing.T) {
	env := newTestEnv(t)
	err := env.store.DeleteProduct(context.Background(), "prod-nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateSupplier_RenombrarNoAlteraHistorial(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.store.AddStockReceipt(context.Background(), dto.CreateStockReceiptRequest{
		SupplierID: "sup-1", ProductID: "prod-1", Quantity: 5,
	}, "ana")
	require.NoError(t, err)

	name := "Lubricantes SA"
	_, err = env.store.UpdateSupplier(context.Background(), "sup-1", dto.UpdateSupplierRequest{Name: &name})
	require.NoError(t, err)

	recs := env.store.Receipts()
	require.Len(t, recs, 1)
	assert.Equal(t, "Lubricantes del Norte", recs[0].SupplierName)
}

func TestClearMustSetPassword_ApagaLaBandera(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.store.ClearMustSetPassword(context.Background(), "acc-1"))

	p, ok := env.store.ProfileByUserID("acc-1")
	require.True(t, ok)
	assert.False(t, p.MustSetPassword)
	assert.False(t, env.profiles.items[0].MustSetPassword)
}

func TestClearMustSetPassword_UsuarioInexistente(t *testing.T) {
	env := newTestEnv(t)
	before := env.store.Version()

	err := env.store.ClearMustSetPassword(context.Background(), "acc-fantasma")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)

	// sin perfil no hay escritura, ni versión nueva, ni notificación de éxito
	assert.Equal(t, before, env.store.Version())
	n := lastNotification(t, env.store)
	assert.Equal(t, VariantDestructive, n.Variant)
}

func TestUpdateUserProfile_CambioDeRolReiniciaPermisos(t *testing.T) {
	env := newTestEnv(t)

	role := entity.RoleStaff
	p, err := env.store.UpdateUserProfile(context.Background(), "prof-1", dto.UpdateProfileRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, p.Role)
	assert.Equal(t, []string{"stock_receive", "stock_transfer"}, p.Permissions)

	bad := "superuser"
	_, err = env.store.UpdateUserProfile(context.Background(), "prof-1", dto.UpdateProfileRequest{Role: &bad})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubscribe_CancelarDetieneEventos(t *testing.T) {
	env := newTestEnv(t)

	var got []ChangeEvent
	cancel := env.store.Subscribe(func(ev ChangeEvent) { got = append(got, ev) })

	_, err := env.store.AddSupplier(context.Background(), dto.CreateSupplierRequest{Name: "Nuevo"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "supplier", got[0].Entity)
	assert.Equal(t, "create", got[0].Action)

	cancel()
	_, err = env.store.AddSupplier(context.Background(), dto.CreateSupplierRequest{Name: "Otro"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func findIdx(items []*entity.Product, id string) int {
	for i, p := range items {
		if p.ID == id {
			return i
		}
	}
	return -1
}
