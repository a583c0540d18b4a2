//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/config"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/infra"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/middleware"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/router"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const testSecret = "test-secret-key"

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func mintToken(t *testing.T, rol string, proveedorID *string) string {
	t.Helper()
	claims := middleware.JWTClaims{
		UserID:      "e2e-user",
		Email:       "e2e@test.local",
		Rol:         rol,
		ProveedorID: proveedorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// ── Suite setup ──────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	admin  string // administrador JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("nomos_test"),
		tcPostgres.WithUsername("nomos"),
		tcPostgres.WithPassword("nomos"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:           8000,
		Env:            "test",
		WorkerPoolSize: 1,
		DatabaseURL:    pgURL,
		RedisURL:       rdURL,
		JWTSecret:      testSecret,
		AuthServiceURL: "http://localhost:9999", // never reached: tokens carry proveedor_id
		PDFStoragePath: t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	r := router.New(cfg, db, rdb, worker.NewDispatcher(rdb))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, admin: mintToken(t, "administrador", nil)}
}

type idResp struct {
	ID string `json:"id"`
}

func (env *testEnv) crearBasicos(t *testing.T) (productoID, proveedorID, almacenID string) {
	t.Helper()
	var prod, prov, alm idResp

	resp := do(t, env.server, "POST", "/v1/productos", jsonBody(t, map[string]any{
		"sku": "SKU-E2E-1", "nombre": "Yerba mate 1kg", "precio": "3500.00", "stock_minimo": 20,
	}), env.admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &prod)

	resp = do(t, env.server, "POST", "/v1/proveedores", jsonBody(t, map[string]any{
		"razon_social": "Yerbatera Litoral SA", "tax_id": "30-55555555-5", "email": "ventas@litoral.test",
	}), env.admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &prov)

	resp = do(t, env.server, "POST", "/v1/almacenes", jsonBody(t, map[string]any{
		"nombre": "Depósito Central", "principal": true,
	}), env.admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &alm)

	return prod.ID, prov.ID, alm.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Ledger cycle: lot with initial stock, a withdrawal, and a rejected
// withdrawal that must leave balance and history untouched.
func TestE2E_LedgerCycle(t *testing.T) {
	env := setupTestEnv(t)
	productoID, _, almacenID := env.crearBasicos(t)

	resp := do(t, env.server, "POST", "/v1/inventario/lotes", jsonBody(t, map[string]any{
		"producto_id": productoID, "almacen_id": almacenID,
		"numero_lote": "L-E2E-1", "cantidad": 100, "costo_unidad": "2800.00",
	}), env.admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var lote idResp
	decodeJSON(t, resp, &lote)

	resp = do(t, env.server, "POST", "/v1/inventario/movimientos", jsonBody(t, map[string]any{
		"lote_id": lote.ID, "cantidad": -30, "tipo": "SALIDA_VENTA", "motivo": "Venta mostrador",
	}), env.admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var mov struct {
		SaldoPosterior int `json:"saldo_posterior"`
	}
	decodeJSON(t, resp, &mov)
	assert.Equal(t, 70, mov.SaldoPosterior)

	// 70 disponibles: -80 se rechaza con 400 y el saldo no cambia.
	resp = do(t, env.server, "POST", "/v1/inventario/movimientos", jsonBody(t, map[string]any{
		"lote_id": lote.ID, "cantidad": -80, "tipo": "SALIDA_VENTA", "motivo": "Venta mostrador",
	}), env.admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "GET", "/v1/inventario/productos/"+productoID+"/stock", nil, env.admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var total struct {
		Total int `json:"total"`
	}
	decodeJSON(t, resp, &total)
	assert.Equal(t, 70, total.Total)

	resp = do(t, env.server, "GET", "/v1/inventario/productos/"+productoID+"/historial", nil, env.admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var historial []struct {
		Cantidad       int `json:"cantidad"`
		SaldoPosterior int `json:"saldo_posterior"`
	}
	decodeJSON(t, resp, &historial)
	require.Len(t, historial, 2)
	assert.Equal(t, 70, historial[0].SaldoPosterior)
	assert.Equal(t, 100, historial[1].SaldoPosterior)
}

// Quotation to received stock: create, send, respond as the supplier,
// approve, convert, walk the order to COMPLETO and verify the receipt lot.
func TestE2E_CotizacionHastaRecepcion(t *testing.T) {
	env := setupTestEnv(t)
	productoID, proveedorID, _ := env.crearBasicos(t)
	supplier := mintToken(t, "proveedor", &proveedorID)

	resp := do(t, env.server, "POST", "/v1/cotizaciones", jsonBody(t, map[string]any{
		"proveedor_id": proveedorID,
		"detalles": []map[string]any{
			{"producto_id": productoID, "cantidad": 40, "precio_cotizado": "2750.00"},
		},
	}), env.admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cot idResp
	decodeJSON(t, resp, &cot)

	// El proveedor no ve el borrador.
	resp = do(t, env.server, "GET", "/v1/cotizaciones/"+cot.ID, nil, supplier)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	for _, paso := range []struct {
		estado string
		token  string
	}{
		{"ENVIADO", env.admin},
		{"RESPONDIDO", supplier},
		{"APROBADO", env.admin},
	} {
		resp = do(t, env.server, "PATCH", "/v1/cotizaciones/"+cot.ID+"/estado",
			jsonBody(t, map[string]string{"estado": paso.estado}), paso.token)
		require.Equal(t, http.StatusOK, resp.StatusCode, "transición a %s", paso.estado)
		resp.Body.Close()
	}

	resp = do(t, env.server, "POST", "/v1/cotizaciones/"+cot.ID+"/convertir", nil, env.admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var orden struct {
		ID     string `json:"id"`
		Estado string `json:"estado"`
	}
	decodeJSON(t, resp, &orden)
	assert.Equal(t, "BORRADOR", orden.Estado)

	// Reconvertir es ilegal.
	resp = do(t, env.server, "POST", "/v1/cotizaciones/"+cot.ID+"/convertir", nil, env.admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// BORRADOR → PENDIENTE (staff), CONFIRMADO (proveedor), COMPLETO (staff).
	resp = do(t, env.server, "PATCH", "/v1/ordenes/"+orden.ID+"/estado",
		jsonBody(t, map[string]string{"estado": "PENDIENTE"}), env.admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Un proveedor no puede completar su propia orden.
	resp = do(t, env.server, "PATCH", "/v1/ordenes/"+orden.ID+"/estado",
		jsonBody(t, map[string]string{"estado": "COMPLETO"}), supplier)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "PATCH", "/v1/ordenes/"+orden.ID+"/estado",
		jsonBody(t, map[string]string{"estado": "CONFIRMADO"}), supplier)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "PATCH", "/v1/ordenes/"+orden.ID+"/estado",
		jsonBody(t, map[string]string{"estado": "COMPLETO"}), env.admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// La recepción dejó el stock de la orden disponible.
	resp = do(t, env.server, "GET", "/v1/inventario/productos/"+productoID+"/stock", nil, env.admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var total struct {
		Total int `json:"total"`
	}
	decodeJSON(t, resp, &total)
	assert.Equal(t, 40, total.Total)

	// Completada: cancelar se rechaza.
	resp = do(t, env.server, "PATCH", "/v1/ordenes/"+orden.ID+"/estado",
		jsonBody(t, map[string]string{"estado": "CANCELADO"}), env.admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// Role gating: supplier routes and admin-only delete.
func TestE2E_Roles(t *testing.T) {
	env := setupTestEnv(t)
	_, proveedorID, _ := env.crearBasicos(t)
	supplier := mintToken(t, "proveedor", &proveedorID)
	compras := mintToken(t, "compras", nil)

	// Proveedor no accede al catálogo interno.
	resp := do(t, env.server, "GET", "/v1/productos", nil, supplier)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Sin token no hay acceso.
	resp = do(t, env.server, "GET", "/v1/ordenes", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Compras crea una orden pero no puede eliminarla.
	prodResp := do(t, env.server, "POST", "/v1/productos", jsonBody(t, map[string]any{
		"sku": "SKU-E2E-2", "nombre": "Té negro", "precio": "1900.00",
	}), compras)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod idResp
	decodeJSON(t, prodResp, &prod)

	resp = do(t, env.server, "POST", "/v1/ordenes", jsonBody(t, map[string]any{
		"proveedor_id":  proveedorID,
		"fecha_entrega": time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		"total":         "1900.00",
		"detalles": []map[string]any{
			{"producto_id": prod.ID, "cantidad": 1, "costo_unidad": "1900.00"},
		},
	}), compras)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var orden idResp
	decodeJSON(t, resp, &orden)

	resp = do(t, env.server, "DELETE", "/v1/ordenes/"+orden.ID, nil, compras)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "DELETE", "/v1/ordenes/"+orden.ID, nil, env.admin)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// El proveedor no ve la orden BORRADOR de otro flujo en su listado.
	resp = do(t, env.server, "GET", "/v1/ordenes", nil, supplier)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ordenes []idResp
	decodeJSON(t, resp, &ordenes)
	assert.Empty(t, ordenes)
}
