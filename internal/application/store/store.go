// Package store implementa el Store de dominio: la única fuente de verdad
// en sesión para productos, proveedores, recepciones, transferencias y
// perfiles, y el único componente autorizado a aplicar invariantes que cruzan
// entidades (stock nunca negativo, descuento único al completar una
// transferencia).
//
// El Store mantiene un espejo en memoria de las tablas remotas. Toda mutación
// sigue el mismo orden: validar contra el snapshot, escribir en el backend y,
// solo si la escritura remota tuvo éxito, aplicar el cambio al espejo. Un
// fallo remoto deja el snapshot intacto. Las mutaciones se serializan con un
// mutex propio para que la validación y la escritura de una operación no se
// intercalen con otra.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
	"github.com/tu-usuario/bodega-pro/pkg/logger"
	"github.com/tu-usuario/bodega-pro/pkg/metrics"
)

// ChangeEvent describe un cambio aplicado al snapshot, para suscriptores.
// Un refresco completo se emite como {Entity: "all", Action: "refresh"}.
type ChangeEvent struct {
	Entity string
	Action string
	ID     string
}

// Store es el estado de dominio compartido. Ver el comentario del paquete.
type Store struct {
	gw       Gateway
	notifier *NotificationCenter
	log      *logger.Logger

	// writeMu serializa mutaciones completas (validación + remoto + aplicación).
	writeMu sync.Mutex

	// mu protege el snapshot; las lecturas toman RLock.
	mu        sync.RWMutex
	products  []*entity.Product
	suppliers []*entity.Supplier
	receipts  []*entity.StockReceipt
	transfers []*entity.StockTransfer
	profiles  []*entity.Profile
	version   uint64

	subMu   sync.Mutex
	subs    map[int]func(ChangeEvent)
	nextSub int
}

// New construye el Store vacío. Llamar a Refresh para poblarlo.
func New(gw Gateway, notifier *NotificationCenter, log *logger.Logger) *Store {
	return &Store{
		gw:       gw,
		notifier: notifier,
		log:      log,
		subs:     make(map[int]func(ChangeEvent)),
	}
}

// Notifier devuelve el centro de notificaciones del Store.
func (s *Store) Notifier() *NotificationCenter {
	return s.notifier
}

// Subscribe registra un suscriptor de cambios y devuelve su cancelación.
// Los suscriptores se invocan de forma síncrona tras aplicar cada mutación,
// fuera de los locks del snapshot.
func (s *Store) Subscribe(fn func(ChangeEvent)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Version devuelve el contador monótono de cambios del snapshot.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Refresh recarga las cinco colecciones del backend y reemplaza el snapshot
// completo de forma atómica: los suscriptores ven un único cambio, nunca un
// estado intermedio con colecciones de cargas distintas.
func (s *Store) Refresh(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	products, err := s.gw.Products.List(ctx)
	if err != nil {
		return s.reject("store", "refresh", "Error al cargar datos", err)
	}
	suppliers, err := s.gw.Suppliers.List(ctx)
	if err != nil {
		return s.reject("store", "refresh", "Error al cargar datos", err)
	}
	receipts, err := s.gw.Receipts.List(ctx)
	if err != nil {
		return s.reject("store", "refresh", "Error al cargar datos", err)
	}
	transfers, err := s.gw.Transfers.List(ctx)
	if err != nil {
		return s.reject("store", "refresh", "Error al cargar datos", err)
	}
	profiles, err := s.gw.Profiles.List(ctx)
	if err != nil {
		return s.reject("store", "refresh", "Error al cargar datos", err)
	}

	s.mu.Lock()
	s.products = products
	s.suppliers = suppliers
	s.receipts = receipts
	s.transfers = transfers
	s.profiles = profiles
	s.version++
	s.mu.Unlock()

	metrics.StoreMutation("store", "refresh", "ok")
	metrics.SnapshotRefreshed(time.Now())
	s.log.Info().
		Int("products", len(products)).
		Int("suppliers", len(suppliers)).
		Int("receipts", len(receipts)).
		Int("transfers", len(transfers)).
		Int("profiles", len(profiles)).
		Msg("snapshot refrescado")
	s.emit(ChangeEvent{Entity: "all", Action: "refresh"})
	return nil
}

// ── Lecturas ──────────────────────────────────────────────────────────────────
// Devuelven copias por valor: el snapshot interno nunca sale por referencia.

// Products devuelve todos los productos, los más recientes primero.
func (s *Store) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out
}

// LowStockProducts devuelve los productos en o por debajo de su umbral.
// Se recalcula en cada llamada sobre el snapshot vigente, nunca se cachea.
func (s *Store) LowStockProducts() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Product
	for _, p := range s.products {
		if p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out
}

// ProductByID busca un producto en el snapshot.
func (s *Store) ProductByID(id string) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.findProduct(id); p != nil {
		return *p, true
	}
	return entity.Product{}, false
}

// Suppliers devuelve todos los proveedores.
func (s *Store) Suppliers() []entity.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Supplier, 0, len(s.suppliers))
	for _, sp := range s.suppliers {
		out = append(out, *sp)
	}
	return out
}

// SupplierByID busca un proveedor en el snapshot.
func (s *Store) SupplierByID(id string) (entity.Supplier, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sp := s.findSupplier(id); sp != nil {
		return *sp, true
	}
	return entity.Supplier{}, false
}

// Receipts devuelve el libro de recepciones, las más recientes primero.
func (s *Store) Receipts() []entity.StockReceipt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.StockReceipt, 0, len(s.receipts))
	for _, r := range s.receipts {
		out = append(out, *r)
	}
	return out
}

// Transfers devuelve las transferencias, las más recientes primero.
func (s *Store) Transfers() []entity.StockTransfer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.StockTransfer, 0, len(s.transfers))
	for _, t := range s.transfers {
		out = append(out, *t)
	}
	return out
}

// TransferByID busca una transferencia en el snapshot.
func (s *Store) TransferByID(id string) (entity.StockTransfer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t := s.findTransfer(id); t != nil {
		return *t, true
	}
	return entity.StockTransfer{}, false
}

// Profiles devuelve todos los perfiles.
func (s *Store) Profiles() []entity.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, copyProfile(p))
	}
	return out
}

// ProfileByID busca un perfil por su ID.
func (s *Store) ProfileByID(id string) (entity.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.findProfile(id); p != nil {
		return copyProfile(p), true
	}
	return entity.Profile{}, false
}

// ProfileByUserID resuelve el perfil asociado a una identidad autenticada.
// Es la consulta que usa el puente de sesión: identidad sin perfil ⇒ no es
// un usuario válido de la aplicación.
func (s *Store) ProfileByUserID(userID string) (entity.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.UserID == userID {
			return copyProfile(p), true
		}
	}
	return entity.Profile{}, false
}

// ── Helpers internos ──────────────────────────────────────────────────────────

// findProduct busca sin lock; el caller debe sostener mu.
func (s *Store) findProduct(id string) *entity.Product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Store) findSupplier(id string) *entity.Supplier {
	for _, sp := range s.suppliers {
		if sp.ID == id {
			return sp
		}
	}
	return nil
}

func (s *Store) findTransfer(id string) *entity.StockTransfer {
	for _, t := range s.transfers {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Store) findProfile(id string) *entity.Profile {
	for _, p := range s.profiles {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func copyProfile(p *entity.Profile) entity.Profile {
	out := *p
	out.Permissions = append([]string(nil), p.Permissions...)
	return out
}

// reject publica la notificación de fallo y devuelve el error sin tocar el snapshot.
func (s *Store) reject(entity, action, title string, err error) error {
	s.notifier.Publish(title, err.Error(), VariantDestructive)
	metrics.StoreMutation(entity, action, "error")
	s.log.Warn().Err(err).Str("entity", entity).Str("action", action).Msg("mutación rechazada")
	return err
}

// committed publica la notificación de éxito y emite el evento de cambio.
// Llamar después de aplicar la mutación al snapshot.
func (s *Store) committed(entity, action, id, title, msg string) {
	s.notifier.Publish(title, msg, VariantSuccess)
	metrics.StoreMutation(entity, action, "ok")
	s.emit(ChangeEvent{Entity: entity, Action: action, ID: id})
}

// emit entrega el evento a los suscriptores fuera de los locks del snapshot.
func (s *Store) emit(ev ChangeEvent) {
	s.subMu.Lock()
	fns := make([]func(ChangeEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// parseDate interpreta fechas "2006-01-02" de los formularios; vacío es hoy.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return t, nil
}
