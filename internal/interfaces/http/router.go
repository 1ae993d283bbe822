package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bodega-pro/internal/application/analytics"
	"github.com/tu-usuario/bodega-pro/internal/application/auth"
	"github.com/tu-usuario/bodega-pro/internal/application/reports"
	"github.com/tu-usuario/bodega-pro/internal/application/store"
	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store       *store.Store
	AuthUC      *auth.Usecase
	DashboardUC *analytics.DashboardUsecase
	ReportUC    *reports.Usecase
	JWTSecret   string
}

// Router registra las rutas de la API.
//
// Política de acceso: login es público; set-password solo requiere token;
// todo lo demás exige además contraseña definitiva establecida. La gestión
// de productos, proveedores y usuarios es de admin; recepciones y
// transferencias las puede registrar también staff.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", MetricsMiddleware())

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Autenticado pero posiblemente con contraseña pendiente
	authed := api.Group("", AuthMiddleware(deps.JWTSecret))
	authed.Post("/auth/password", authHandler.SetPassword)

	// Rutas activas (token + contraseña definitiva)
	active := authed.Group("", RequirePasswordSet(deps.Store))

	anyRole := RequireRole(entity.RoleAdmin, entity.RoleStaff)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products
	products := active.Group("/products", anyRole)
	productHandler := NewProductHandler(deps.Store)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Suppliers
	suppliers := active.Group("/suppliers", anyRole)
	supplierHandler := NewSupplierHandler(deps.Store)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Inventory (recepciones y transferencias, también para staff)
	inventoryHandler := NewInventoryHandler(deps.Store)
	active.Get("/receipts", anyRole, inventoryHandler.ListReceipts)
	active.Post("/receipts", anyRole, inventoryHandler.CreateReceipt)
	active.Get("/transfers", anyRole, inventoryHandler.ListTransfers)
	active.Post("/transfers", anyRole, inventoryHandler.CreateTransfer)
	active.Put("/transfers/:id/status", anyRole, inventoryHandler.UpdateTransferStatus)

	// Users (gestión solo admin; /me es del propio usuario)
	profileHandler := NewProfileHandler(deps.Store)
	active.Get("/users/me", anyRole, profileHandler.Me)
	active.Get("/users", adminOnly, profileHandler.List)
	active.Post("/auth/users", adminOnly, authHandler.Invite)
	active.Put("/users/:id", adminOnly, profileHandler.Update)
	active.Delete("/users/:id", adminOnly, authHandler.DeleteUser)

	// Dashboard y reportes
	active.Get("/dashboard", anyRole, NewDashboardHandler(deps.DashboardUC).Summary)
	active.Get("/reports", anyRole, NewReportHandler(deps.ReportUC).Get)

	// Notificaciones + versión del snapshot
	active.Get("/notifications", anyRole, NewNotificationHandler(deps.Store).List)

	// Recarga manual del snapshot
	active.Post("/refresh", adminOnly, NewRefreshHandler(deps.Store).Refresh)
}
