package service_test

import (
	"context"
	"testing"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/apierror"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/dto"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recorderReceiver captures the order lines handed over on completion.
type recorderReceiver struct {
	recibidos []model.OrdenCompraDetalle
	fallar    error
}

func (r *recorderReceiver) RecibirDetalleTx(_ context.Context, _ *gorm.DB, _ uuid.UUID, detalle model.OrdenCompraDetalle) error {
	if r.fallar != nil {
		return r.fallar
	}
	r.recibidos = append(r.recibidos, detalle)
	return nil
}

type ordenFixture struct {
	svc       service.OrdenService
	ordenes   *stubOrdenRepo
	receiver  *recorderReceiver
	producto  *model.Producto
	proveedor *model.Proveedor
	staff     service.Caller
}

func newOrdenFixture(t *testing.T) *ordenFixture {
	t.Helper()
	productos := newStubProductoRepo()
	proveedores := newStubProveedorRepo()
	f := &ordenFixture{
		ordenes:  newStubOrdenRepo(),
		receiver: &recorderReceiver{},
		staff:    service.Caller{Rol: model.RolAdmin},
	}
	f.producto = &model.Producto{SKU: "SKU-030", Nombre: "Café tostado", Precio: decimal.NewFromInt(9800), Activo: true}
	require.NoError(t, productos.Create(context.Background(), f.producto))
	f.proveedor = &model.Proveedor{RazonSocial: "Tostadero Andino SA", TaxID: "30-44444444-4", Activo: true}
	require.NoError(t, proveedores.Create(context.Background(), f.proveedor))

	f.svc = service.NewOrdenService(f.ordenes, proveedores, productos, f.receiver, nil)
	return f
}

func (f *ordenFixture) callerProveedor() service.Caller {
	id := f.proveedor.ID
	return service.Caller{Rol: model.RolProveedor, ProveedorID: &id}
}

func (f *ordenFixture) crear(t *testing.T, estado model.EstadoOrden) *dto.OrdenResponse {
	t.Helper()
	resp, err := f.svc.Crear(context.Background(), dto.CrearOrdenRequest{
		ProveedorID:  f.proveedor.ID.String(),
		FechaEntrega: "2026-09-15",
		Total:        decimal.NewFromInt(49000),
		Detalles: []dto.DetalleOrdenInput{
			{ProductoID: f.producto.ID.String(), Cantidad: 5, CostoUnidad: decimal.NewFromInt(9800)},
		},
	})
	require.NoError(t, err)
	if estado != model.OrdenBorrador {
		f.ordenes.ordenes[uuid.MustParse(resp.ID)].Estado = estado
	}
	return resp
}

func (f *ordenFixture) estado(t *testing.T, id string) model.EstadoOrden {
	t.Helper()
	o, err := f.ordenes.FindByID(context.Background(), uuid.MustParse(id))
	require.NoError(t, err)
	return o.Estado
}

func TestCrearOrdenValidaProductoYCosto(t *testing.T) {
	f := newOrdenFixture(t)

	_, err := f.svc.Crear(context.Background(), dto.CrearOrdenRequest{
		ProveedorID:  f.proveedor.ID.String(),
		FechaEntrega: "2026-09-15",
		Detalles: []dto.DetalleOrdenInput{
			{ProductoID: uuid.NewString(), Cantidad: 1, CostoUnidad: decimal.NewFromInt(10)},
		},
	})
	assertCode(t, err, apierror.CodeNotFound)

	_, err = f.svc.Crear(context.Background(), dto.CrearOrdenRequest{
		ProveedorID:  f.proveedor.ID.String(),
		FechaEntrega: "2026-09-15",
		Detalles: []dto.DetalleOrdenInput{
			{ProductoID: f.producto.ID.String(), Cantidad: 1},
		},
	})
	assertCode(t, err, apierror.CodeValidation)
}

func TestOrdenCicloCompleto(t *testing.T) {
	f := newOrdenFixture(t)
	resp := f.crear(t, model.OrdenBorrador)

	_, err := f.svc.CambiarEstado(context.Background(), f.staff, resp.ID, string(model.OrdenPendiente))
	require.NoError(t, err)

	prov := f.callerProveedor()
	_, err = f.svc.CambiarEstado(context.Background(), prov, resp.ID, string(model.OrdenConfirmado))
	require.NoError(t, err)

	_, err = f.svc.CambiarEstado(context.Background(), f.staff, resp.ID, string(model.OrdenCompleto))
	require.NoError(t, err)
	assert.Equal(t, model.OrdenCompleto, f.estado(t, resp.ID))

	// Cada línea se recibió en stock dentro de la misma transacción.
	require.Len(t, f.receiver.recibidos, 1)
	assert.Equal(t, 5, f.receiver.recibidos[0].Cantidad)
}

func TestProveedorSoloDecideSobrePendientes(t *testing.T) {
	f := newOrdenFixture(t)
	prov := f.callerProveedor()

	resp := f.crear(t, model.OrdenPendiente)
	_, err := f.svc.CambiarEstado(context.Background(), prov, resp.ID, string(model.OrdenCompleto))
	assertCode(t, err, apierror.CodeForbidden)

	res, err := f.svc.CambiarEstado(context.Background(), prov, resp.ID, string(model.OrdenRechazado))
	require.NoError(t, err)
	assert.Equal(t, string(model.OrdenRechazado), res.Estado)

	confirmada := f.crear(t, model.OrdenConfirmado)
	_, err = f.svc.CambiarEstado(context.Background(), prov, confirmada.ID, string(model.OrdenConfirmado))
	assertCode(t, err, apierror.CodeForbidden)
}

func TestProveedorNoDecideOrdenesAjenas(t *testing.T) {
	f := newOrdenFixture(t)
	resp := f.crear(t, model.OrdenPendiente)

	otro := uuid.New()
	caller := service.Caller{Rol: model.RolProveedor, ProveedorID: &otro}
	_, err := f.svc.CambiarEstado(context.Background(), caller, resp.ID, string(model.OrdenConfirmado))
	assertCode(t, err, apierror.CodeNotFound)
}

func TestCompletoSoloDesdeConfirmado(t *testing.T) {
	f := newOrdenFixture(t)
	resp := f.crear(t, model.OrdenPendiente)

	_, err := f.svc.CambiarEstado(context.Background(), f.staff, resp.ID, string(model.OrdenCompleto))
	assertCode(t, err, apierror.CodeInvalidState)
	assert.Empty(t, f.receiver.recibidos)
}

func TestCompletoFallaSiLaRecepcionFalla(t *testing.T) {
	f := newOrdenFixture(t)
	resp := f.crear(t, model.OrdenConfirmado)
	f.receiver.fallar = apierror.InvalidState("no hay almacén principal activo para recibir mercadería")

	_, err := f.svc.CambiarEstado(context.Background(), f.staff, resp.ID, string(model.OrdenCompleto))
	assertCode(t, err, apierror.CodeInvalidState)
}

func TestNoCancelarOrdenCompletada(t *testing.T) {
	f := newOrdenFixture(t)

	completa := f.crear(t, model.OrdenCompleto)
	_, err := f.svc.CambiarEstado(context.Background(), f.staff, completa.ID, string(model.OrdenCancelado))
	assertCode(t, err, apierror.CodeInvalidState)

	// Cualquier otro estado sí se cancela.
	for _, estado := range []model.EstadoOrden{model.OrdenBorrador, model.OrdenPendiente, model.OrdenConfirmado, model.OrdenRechazado} {
		resp := f.crear(t, estado)
		_, err := f.svc.CambiarEstado(context.Background(), f.staff, resp.ID, string(model.OrdenCancelado))
		require.NoError(t, err, "cancelando desde %s", estado)
		assert.Equal(t, model.OrdenCancelado, f.estado(t, resp.ID))
	}
}

func TestActualizarOrdenFinalizada(t *testing.T) {
	f := newOrdenFixture(t)
	resp := f.crear(t, model.OrdenCompleto)

	nuevoTotal := decimal.NewFromInt(1)
	_, err := f.svc.Actualizar(context.Background(), resp.ID, dto.ActualizarOrdenRequest{Total: &nuevoTotal})
	assertCode(t, err, apierror.CodeInvalidState)
}

func TestProveedorNoVeBorradores(t *testing.T) {
	f := newOrdenFixture(t)
	borrador := f.crear(t, model.OrdenBorrador)
	pendiente := f.crear(t, model.OrdenPendiente)

	prov := f.callerProveedor()
	_, err := f.svc.Obtener(context.Background(), prov, borrador.ID)
	assertCode(t, err, apierror.CodeNotFound)

	lista, err := f.svc.Listar(context.Background(), prov, "")
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, pendiente.ID, lista[0].ID)
}

func TestEliminarEsOverrideAdministrativo(t *testing.T) {
	f := newOrdenFixture(t)
	resp := f.crear(t, model.OrdenCompleto)

	require.NoError(t, f.svc.Eliminar(context.Background(), resp.ID))
	_, err := f.ordenes.FindByID(context.Background(), uuid.MustParse(resp.ID))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = f.svc.Eliminar(context.Background(), resp.ID)
	assertCode(t, err, apierror.CodeNotFound)
}
