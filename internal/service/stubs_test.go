package service_test

import (
	"context"
	"time"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/dto"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository stubs. Their DB() returns nil, so runTx executes the
// transactional closures directly against these maps.

// ── ProductoRepository ───────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindBySKU(_ context.Context, sku string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

// ── ProveedorRepository ──────────────────────────────────────────────────────

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.proveedores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

// ── AlmacenRepository ────────────────────────────────────────────────────────

type stubAlmacenRepo struct {
	almacenes map[uuid.UUID]*model.Almacen
}

func newStubAlmacenRepo() *stubAlmacenRepo {
	return &stubAlmacenRepo{almacenes: make(map[uuid.UUID]*model.Almacen)}
}

func (r *stubAlmacenRepo) Create(_ context.Context, a *model.Almacen) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.almacenes[a.ID] = a
	return nil
}

func (r *stubAlmacenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Almacen, error) {
	a, ok := r.almacenes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAlmacenRepo) FindPrincipal(_ context.Context) (*model.Almacen, error) {
	for _, a := range r.almacenes {
		if a.Principal && a.Activo {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAlmacenRepo) List(_ context.Context) ([]model.Almacen, error) {
	var out []model.Almacen
	for _, a := range r.almacenes {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAlmacenRepo) Update(_ context.Context, a *model.Almacen) error {
	r.almacenes[a.ID] = a
	return nil
}

func (r *stubAlmacenRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	a, ok := r.almacenes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Activo = false
	return nil
}

// ── LoteRepository ───────────────────────────────────────────────────────────

type stubLoteRepo struct {
	lotes map[uuid.UUID]*model.Lote
}

func newStubLoteRepo() *stubLoteRepo {
	return &stubLoteRepo{lotes: make(map[uuid.UUID]*model.Lote)}
}

func (r *stubLoteRepo) Create(_ context.Context, l *model.Lote) error { return r.CreateTx(nil, l) }

func (r *stubLoteRepo) CreateTx(_ *gorm.DB, l *model.Lote) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.lotes[l.ID] = l
	return nil
}

func (r *stubLoteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Lote, error) {
	l, ok := r.lotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *stubLoteRepo) FindByClave(_ context.Context, productoID, almacenID uuid.UUID, numeroLote string) (*model.Lote, error) {
	for _, l := range r.lotes {
		if l.ProductoID == productoID && l.AlmacenID == almacenID && l.NumeroLote == numeroLote {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLoteRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Lote, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubLoteRepo) FindByClaveForUpdateTx(_ *gorm.DB, productoID, almacenID uuid.UUID, numeroLote string) (*model.Lote, error) {
	return r.FindByClave(context.Background(), productoID, almacenID, numeroLote)
}

func (r *stubLoteRepo) UpdateCantidadTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	l, ok := r.lotes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.Cantidad = cantidad
	return nil
}

func (r *stubLoteRepo) ListByProducto(_ context.Context, productoID uuid.UUID) ([]model.Lote, error) {
	var out []model.Lote
	for _, l := range r.lotes {
		if l.ProductoID == productoID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLoteRepo) TotalStock(_ context.Context, productoID uuid.UUID) (int, error) {
	total := 0
	for _, l := range r.lotes {
		if l.ProductoID == productoID {
			total += l.Cantidad
		}
	}
	return total, nil
}

func (r *stubLoteRepo) DB() *gorm.DB { return nil }

// ── MovimientoRepository ─────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []model.MovimientoInventario
	nextID      int64
}

func newStubMovimientoRepo() *stubMovimientoRepo { return &stubMovimientoRepo{} }

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoInventario) error {
	r.nextID++
	m.ID = r.nextID
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, filter dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	var out []model.MovimientoInventario
	for _, m := range r.movimientos {
		if filter.ProductoID != "" && m.ProductoID.String() != filter.ProductoID {
			continue
		}
		if filter.Tipo != "" && string(m.Tipo) != filter.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMovimientoRepo) HistorialPorProducto(_ context.Context, productoID uuid.UUID) ([]model.MovimientoInventario, error) {
	// Newest first, ties resolved by insertion order.
	var out []model.MovimientoInventario
	for i := len(r.movimientos) - 1; i >= 0; i-- {
		if r.movimientos[i].ProductoID == productoID {
			out = append(out, r.movimientos[i])
		}
	}
	return out, nil
}

// ── ProductoProveedorRepository ──────────────────────────────────────────────

type linkKey struct {
	producto  uuid.UUID
	proveedor uuid.UUID
}

type stubLinkRepo struct {
	links map[linkKey]*model.ProductoProveedor
}

func newStubLinkRepo() *stubLinkRepo {
	return &stubLinkRepo{links: make(map[linkKey]*model.ProductoProveedor)}
}

func (r *stubLinkRepo) Find(_ context.Context, productoID, proveedorID uuid.UUID) (*model.ProductoProveedor, error) {
	l, ok := r.links[linkKey{productoID, proveedorID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *stubLinkRepo) ListPorProducto(_ context.Context, productoID uuid.UUID) ([]model.ProductoProveedor, error) {
	var out []model.ProductoProveedor
	for k, l := range r.links {
		if k.producto == productoID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLinkRepo) Preferido(_ context.Context, productoID uuid.UUID) (*model.ProductoProveedor, error) {
	for k, l := range r.links {
		if k.producto == productoID && l.EsPreferido {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLinkRepo) UpsertTx(_ *gorm.DB, link *model.ProductoProveedor) error {
	cp := *link
	r.links[linkKey{link.ProductoID, link.ProveedorID}] = &cp
	return nil
}

func (r *stubLinkRepo) DemoteOtrosTx(_ *gorm.DB, productoID, exceptProveedorID uuid.UUID) error {
	for k, l := range r.links {
		if k.producto == productoID && k.proveedor != exceptProveedorID {
			l.EsPreferido = false
		}
	}
	return nil
}

func (r *stubLinkRepo) Delete(_ context.Context, productoID, proveedorID uuid.UUID) error {
	delete(r.links, linkKey{productoID, proveedorID})
	return nil
}

func (r *stubLinkRepo) DB() *gorm.DB { return nil }

// ── CotizacionRepository ─────────────────────────────────────────────────────

type stubCotizacionRepo struct {
	cotizaciones map[uuid.UUID]*model.Cotizacion
}

func newStubCotizacionRepo() *stubCotizacionRepo {
	return &stubCotizacionRepo{cotizaciones: make(map[uuid.UUID]*model.Cotizacion)}
}

func (r *stubCotizacionRepo) Create(_ context.Context, c *model.Cotizacion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Detalles {
		if c.Detalles[i].ID == uuid.Nil {
			c.Detalles[i].ID = uuid.New()
		}
		c.Detalles[i].CotizacionID = c.ID
	}
	r.cotizaciones[c.ID] = c
	return nil
}

func (r *stubCotizacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	c, ok := r.cotizaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCotizacionRepo) List(_ context.Context, filter repository.CotizacionFilter) ([]model.Cotizacion, error) {
	var out []model.Cotizacion
	for _, c := range r.cotizaciones {
		if filter.ProveedorID != nil && c.ProveedorID != *filter.ProveedorID {
			continue
		}
		if !filter.IncluirBorradores && c.Estado == model.CotBorrador {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCotizacionRepo) UpdateTx(_ *gorm.DB, c *model.Cotizacion) error {
	r.cotizaciones[c.ID] = c
	return nil
}

func (r *stubCotizacionRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado model.EstadoCotizacion) error {
	c, ok := r.cotizaciones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Estado = estado
	return nil
}

func (r *stubCotizacionRepo) ReplaceDetallesTx(_ *gorm.DB, cotizacionID uuid.UUID, detalles []model.CotizacionDetalle) error {
	c, ok := r.cotizaciones[cotizacionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range detalles {
		if detalles[i].ID == uuid.Nil {
			detalles[i].ID = uuid.New()
		}
		detalles[i].CotizacionID = cotizacionID
	}
	c.Detalles = detalles
	return nil
}

func (r *stubCotizacionRepo) UpdateDetalleTx(_ *gorm.DB, d *model.CotizacionDetalle) error {
	c, ok := r.cotizaciones[d.CotizacionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range c.Detalles {
		if c.Detalles[i].ID == d.ID {
			c.Detalles[i] = *d
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubCotizacionRepo) ListVencidas(_ context.Context, hoy time.Time, limit int) ([]model.Cotizacion, error) {
	var out []model.Cotizacion
	for _, c := range r.cotizaciones {
		if c.Estado != model.CotEnviado || c.FechaVence == nil {
			continue
		}
		if c.FechaVence.Before(hoy) {
			out = append(out, *c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubCotizacionRepo) DB() *gorm.DB { return nil }

// ── OrdenRepository ──────────────────────────────────────────────────────────

type stubOrdenRepo struct {
	ordenes map[uuid.UUID]*model.OrdenCompra
}

func newStubOrdenRepo() *stubOrdenRepo {
	return &stubOrdenRepo{ordenes: make(map[uuid.UUID]*model.OrdenCompra)}
}

func (r *stubOrdenRepo) Create(_ context.Context, o *model.OrdenCompra) error {
	return r.CreateTx(nil, o)
}

func (r *stubOrdenRepo) CreateTx(_ *gorm.DB, o *model.OrdenCompra) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Detalles {
		if o.Detalles[i].ID == uuid.Nil {
			o.Detalles[i].ID = uuid.New()
		}
		o.Detalles[i].OrdenCompraID = o.ID
	}
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubOrdenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.OrdenCompra, error) {
	o, ok := r.ordenes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrdenRepo) List(_ context.Context, filter repository.OrdenFilter) ([]model.OrdenCompra, error) {
	var out []model.OrdenCompra
	for _, o := range r.ordenes {
		if filter.ProveedorID != nil && o.ProveedorID != *filter.ProveedorID {
			continue
		}
		if filter.Estado != nil && o.Estado != *filter.Estado {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrdenRepo) UpdateTx(_ *gorm.DB, o *model.OrdenCompra) error {
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubOrdenRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado model.EstadoOrden) error {
	o, ok := r.ordenes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Estado = estado
	return nil
}

func (r *stubOrdenRepo) ReplaceDetallesTx(_ *gorm.DB, ordenID uuid.UUID, detalles []model.OrdenCompraDetalle) error {
	o, ok := r.ordenes[ordenID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range detalles {
		if detalles[i].ID == uuid.Nil {
			detalles[i].ID = uuid.New()
		}
		detalles[i].OrdenCompraID = ordenID
	}
	o.Detalles = detalles
	return nil
}

func (r *stubOrdenRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.ordenes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.ordenes, id)
	return nil
}

func (r *stubOrdenRepo) DB() *gorm.DB { return nil }
