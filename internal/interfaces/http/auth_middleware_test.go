package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/bodega-pro/internal/application/store"
	"github.com/tu-usuario/bodega-pro/internal/domain/entity"
	"github.com/tu-usuario/bodega-pro/internal/domain/repository"
	apphttp "github.com/tu-usuario/bodega-pro/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/bodega-pro/pkg/jwt"
	"github.com/tu-usuario/bodega-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUsername  = "ana"
	testIssuer    = "bodega-pro-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: JWT + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "/protected", tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, "admin", body["role"], "el role debe ser admin")
}

// Caso 1b: El usuario tiene uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_StaffAccedeRutaAdminOStaff(t *testing.T) {
	app := buildTestApp("admin", "staff")
	resp := doRequest(t, app, "/protected", tokenForRole(t, "staff"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"staff debe poder acceder a ruta que permite admin o staff")
}

// Caso 2: El usuario tiene un rol diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_StaffBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "/protected", tokenForRole(t, "staff"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"staff no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 3: Token sin claim de rol (emulado con rol vacío) → HTTP 401.
func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token sin rol debe retornar 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE",
		"la respuesta debe indicar el código MISSING_ROLE")
}

// Caso 4: Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "/protected", "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePasswordSet
// ──────────────────────────────────────────────────────────────────────────────

// profilesOnly es el único repo con datos: RequirePasswordSet solo lee perfiles.
type profilesOnly []*entity.Profile

func (l profilesOnly) Create(context.Context, *entity.Profile) error { return nil }
func (l profilesOnly) GetByID(context.Context, string) (*entity.Profile, error) {
	return nil, nil
}
func (l profilesOnly) GetByUserID(context.Context, string) (*entity.Profile, error) {
	return nil, nil
}
func (l profilesOnly) Update(context.Context, *entity.Profile) error { return nil }
func (l profilesOnly) SetMustSetPassword(context.Context, string, bool) error {
	return nil
}
func (l profilesOnly) TouchLastLogin(context.Context, string, time.Time) error {
	return nil
}
func (l profilesOnly) List(context.Context) ([]*entity.Profile, error) { return l, nil }
func (l profilesOnly) Delete(context.Context, string) error            { return nil }

type emptyProducts struct{}

func (emptyProducts) Create(context.Context, *entity.Product) error { return nil }
func (emptyProducts) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, nil
}
func (emptyProducts) Update(context.Context, *entity.Product) error { return nil }
func (emptyProducts) AdjustQuantity(context.Context, string, int) (int, error) {
	return 0, nil
}
func (emptyProducts) List(context.Context) ([]*entity.Product, error) { return nil, nil }
func (emptyProducts) Delete(context.Context, string) error            { return nil }

type emptySuppliers struct{}

func (emptySuppliers) Create(context.Context, *entity.Supplier) error { return nil }
func (emptySuppliers) GetByID(context.Context, string) (*entity.Supplier, error) {
	return nil, nil
}
func (emptySuppliers) Update(context.Context, *entity.Supplier) error { return nil }
func (emptySuppliers) List(context.Context) ([]*entity.Supplier, error) {
	return nil, nil
}
func (emptySuppliers) Delete(context.Context, string) error { return nil }

type emptyReceipts struct{}

func (emptyReceipts) Create(context.Context, *entity.StockReceipt) error { return nil }
func (emptyReceipts) List(context.Context) ([]*entity.StockReceipt, error) {
	return nil, nil
}

type emptyTransfers struct{}

func (emptyTransfers) Create(context.Context, *entity.StockTransfer) error { return nil }
func (emptyTransfers) GetByID(context.Context, string) (*entity.StockTransfer, error) {
	return nil, nil
}
func (emptyTransfers) UpdateStatus(context.Context, string, string) error { return nil }
func (emptyTransfers) List(context.Context) ([]*entity.StockTransfer, error) {
	return nil, nil
}

type emptyTx struct{}

func (emptyTx) Run(_ context.Context, fn func(
	repository.ProductRepository,
	repository.StockReceiptRepository,
	repository.StockTransferRepository,
) error) error {
	return fn(emptyProducts{}, emptyReceipts{}, emptyTransfers{})
}

func storeWithProfile(t *testing.T, mustSet bool) *store.Store {
	t.Helper()
	st := store.New(store.Gateway{
		Products:  emptyProducts{},
		Suppliers: emptySuppliers{},
		Receipts:  emptyReceipts{},
		Transfers: emptyTransfers{},
		Profiles: profilesOnly{
			{ID: "prof-1", UserID: testUserID, Username: testUsername,
				Role: entity.RoleAdmin, MustSetPassword: mustSet},
		},
		Tx: emptyTx{},
	}, store.NewNotificationCenter(5), logger.Nop())
	require.NoError(t, st.Refresh(context.Background()))
	return st
}

func buildPasswordApp(st *store.Store) *fiber.App {
	app := fiber.New()
	app.Get("/inventario",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePasswordSet(st),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestRequirePasswordSet_ContrasenaPendiente_Retorna403(t *testing.T) {
	app := buildPasswordApp(storeWithProfile(t, true))
	resp := doRequest(t, app, "/inventario", tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MUST_SET_PASSWORD",
		"invitado con contraseña pendiente solo puede usar set-password")
}

func TestRequirePasswordSet_ContrasenaEstablecida_Pasa(t *testing.T) {
	app := buildPasswordApp(storeWithProfile(t, false))
	resp := doRequest(t, app, "/inventario", tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePasswordSet_SinPerfil_Retorna401(t *testing.T) {
	// El token es válido pero su identidad no tiene perfil aprovisionado.
	st := store.New(store.Gateway{
		Products:  emptyProducts{},
		Suppliers: emptySuppliers{},
		Receipts:  emptyReceipts{},
		Transfers: emptyTransfers{},
		Profiles:  profilesOnly{},
		Tx:        emptyTx{},
	}, store.NewNotificationCenter(5), logger.Nop())
	require.NoError(t, st.Refresh(context.Background()))

	app := buildPasswordApp(st)
	resp := doRequest(t, app, "/inventario", tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "PROFILE_NOT_FOUND")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
			"role":     apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUsername, body["username"])
	assert.Equal(t, "admin", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse con role
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, "staff", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, username, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testUsername, username)
	assert.Equal(t, "staff", role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
