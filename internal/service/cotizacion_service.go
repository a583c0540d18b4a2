package service

import (
	"context"
	"errors"
	"time"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/apierror"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/dto"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CotizacionService drives the quotation lifecycle from draft to conversion
// into a draft purchase order.
type CotizacionService interface {
	Crear(ctx context.Context, caller Caller, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error)
	Obtener(ctx context.Context, caller Caller, id string) (*dto.CotizacionResponse, error)
	Listar(ctx context.Context, caller Caller) ([]dto.CotizacionResponse, error)
	// Actualizar replaces header fields and the full detail list. Drafts only.
	Actualizar(ctx context.Context, caller Caller, id string, req dto.ActualizarCotizacionRequest) (*dto.CotizacionResponse, error)
	// VincularProducto attaches a catalog product to a free-text detail line.
	VincularProducto(ctx context.Context, id, detalleID, productoID string) (*dto.CotizacionResponse, error)
	CambiarEstado(ctx context.Context, caller Caller, id string, estado string) (*dto.CotizacionResponse, error)
	// ConvertirAOrden turns an unconverted, fully linked quotation into a
	// draft purchase order; order creation and the CONVERTIDO stamp commit
	// together.
	ConvertirAOrden(ctx context.Context, id string) (*dto.OrdenResponse, error)
	// CancelarVencidas sweeps ENVIADO quotations whose expiration passed.
	CancelarVencidas(ctx context.Context) (int, error)
}

// transicionesCotizacion lists the legal estado moves. CONVERTIDO never
// appears as a target: it is reachable only through ConvertirAOrden.
var transicionesCotizacion = map[model.EstadoCotizacion][]model.EstadoCotizacion{
	model.CotBorrador:   {model.CotEnviado, model.CotCancelado},
	model.CotEnviado:    {model.CotRespondido, model.CotCancelado},
	model.CotRespondido: {model.CotAprobado, model.CotRechazado, model.CotCancelado},
	model.CotAprobado:   {model.CotCancelado},
}

type cotizacionService struct {
	repo          repository.CotizacionRepository
	ordenRepo     repository.OrdenRepository
	productoRepo  repository.ProductoRepository
	proveedorRepo repository.ProveedorRepository
}

func NewCotizacionService(
	repo repository.CotizacionRepository,
	ordenRepo repository.OrdenRepository,
	productoRepo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
) CotizacionService {
	return &cotizacionService{
		repo:          repo,
		ordenRepo:     ordenRepo,
		productoRepo:  productoRepo,
		proveedorRepo: proveedorRepo,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *cotizacionService) Crear(ctx context.Context, caller Caller, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, apierror.Validation("proveedor_id inválido")
	}
	if caller.EsProveedor() && !caller.PuedeVer(proveedorID) {
		return nil, apierror.Forbidden("un proveedor solo puede crear cotizaciones propias")
	}
	if _, err := s.proveedorRepo.FindByID(ctx, proveedorID); err != nil {
		return nil, apierror.NotFound("proveedor %s no encontrado", req.ProveedorID)
	}

	fechaSolicitud := time.Now()
	if req.FechaSolicitud != nil && *req.FechaSolicitud != "" {
		f, err := parseFecha(*req.FechaSolicitud)
		if err != nil {
			return nil, apierror.Validation("fecha_solicitud inválida: se espera YYYY-MM-DD")
		}
		fechaSolicitud = f
	}
	var fechaVence *time.Time
	if req.FechaVence != nil && *req.FechaVence != "" {
		f, err := parseFecha(*req.FechaVence)
		if err != nil {
			return nil, apierror.Validation("fecha_vence inválida: se espera YYYY-MM-DD")
		}
		fechaVence = &f
	}

	detalles, err := s.resolverDetalles(ctx, req.Detalles)
	if err != nil {
		return nil, err
	}

	cotizacion := model.Cotizacion{
		ProveedorID:    proveedorID,
		FechaSolicitud: fechaSolicitud,
		FechaVence:     fechaVence,
		Estado:         model.CotBorrador,
		TotalEstimado:  req.TotalEstimado,
		Notas:          req.Notas,
		Detalles:       detalles,
	}
	if err := s.repo.Create(ctx, &cotizacion); err != nil {
		return nil, err
	}
	return cotizacionToResponse(&cotizacion), nil
}

// resolverDetalles validates each incoming line: a catalog reference must
// resolve and freezes the catalog name onto the line; a free-text line must
// carry a supplier-provided name.
func (s *cotizacionService) resolverDetalles(ctx context.Context, inputs []dto.DetalleCotizacionInput) ([]model.CotizacionDetalle, error) {
	detalles := make([]model.CotizacionDetalle, 0, len(inputs))
	for i, in := range inputs {
		var d model.CotizacionDetalle
		d.Cantidad = in.Cantidad
		d.PrecioCotizado = in.PrecioCotizado
		d.SKUSugerido = in.SKUSugerido

		switch {
		case in.ProductoID != nil && *in.ProductoID != "":
			pid, err := uuid.Parse(*in.ProductoID)
			if err != nil {
				return nil, apierror.Validation("detalle %d: producto_id inválido", i+1)
			}
			producto, err := s.productoRepo.FindByID(ctx, pid)
			if err != nil {
				return nil, apierror.NotFound("detalle %d: producto %s no encontrado", i+1, *in.ProductoID)
			}
			d.ProductoID = &pid
			d.NombreProducto = producto.Nombre
		case in.NombreProducto != nil && *in.NombreProducto != "":
			d.NombreProducto = *in.NombreProducto
		default:
			return nil, apierror.Validation("detalle %d: se requiere producto_id o nombre_producto", i+1)
		}
		detalles = append(detalles, d)
	}
	return detalles, nil
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *cotizacionService) Obtener(ctx context.Context, caller Caller, id string) (*dto.CotizacionResponse, error) {
	cotizacion, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	// Drafts are internal: a supplier never sees a quotation before it was
	// sent, nor anyone else's.
	if caller.EsProveedor() && (!caller.PuedeVer(cotizacion.ProveedorID) || cotizacion.Estado == model.CotBorrador) {
		return nil, apierror.NotFound("cotización %s no encontrada", id)
	}
	return cotizacionToResponse(cotizacion), nil
}

func (s *cotizacionService) Listar(ctx context.Context, caller Caller) ([]dto.CotizacionResponse, error) {
	filter := repository.CotizacionFilter{IncluirBorradores: caller.Rol.Staff()}
	if caller.EsProveedor() {
		if caller.ProveedorID == nil {
			return []dto.CotizacionResponse{}, nil
		}
		filter.ProveedorID = caller.ProveedorID
	}
	cotizaciones, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CotizacionResponse, 0, len(cotizaciones))
	for i := range cotizaciones {
		out = append(out, *cotizacionToResponse(&cotizaciones[i]))
	}
	return out, nil
}

// ── Actualizar ────────────────────────────────────────────────────────────────
// Header fields update in place; the detail list is replaced wholesale
// (clear-then-rebuild), so removed lines disappear instead of lingering.

func (s *cotizacionService) Actualizar(ctx context.Context, caller Caller, id string, req dto.ActualizarCotizacionRequest) (*dto.CotizacionResponse, error) {
	cotizacion, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.EsProveedor() {
		return nil, apierror.Forbidden("un proveedor no puede editar cotizaciones")
	}
	if cotizacion.Estado != model.CotBorrador {
		return nil, apierror.InvalidState("solo se puede editar una cotización en estado BORRADOR, actual %s", cotizacion.Estado)
	}

	if req.FechaVence != nil {
		if *req.FechaVence == "" {
			cotizacion.FechaVence = nil
		} else {
			f, err := parseFecha(*req.FechaVence)
			if err != nil {
				return nil, apierror.Validation("fecha_vence inválida: se espera YYYY-MM-DD")
			}
			cotizacion.FechaVence = &f
		}
	}
	if req.TotalEstimado != nil {
		cotizacion.TotalEstimado = req.TotalEstimado
	}
	if req.Notas != nil {
		cotizacion.Notas = req.Notas
	}

	detalles, err := s.resolverDetalles(ctx, req.Detalles)
	if err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, cotizacion); err != nil {
			return err
		}
		return s.repo.ReplaceDetallesTx(tx, cotizacion.ID, detalles)
	})
	if txErr != nil {
		return nil, txErr
	}
	cotizacion.Detalles = detalles
	return cotizacionToResponse(cotizacion), nil
}

// ── VincularProducto ──────────────────────────────────────────────────────────

func (s *cotizacionService) VincularProducto(ctx context.Context, id, detalleID, productoID string) (*dto.CotizacionResponse, error) {
	cotizacion, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if cotizacion.Estado == model.CotConvertido || cotizacion.Estado == model.CotCancelado {
		return nil, apierror.InvalidState("no se puede vincular productos en estado %s", cotizacion.Estado)
	}

	did, err := uuid.Parse(detalleID)
	if err != nil {
		return nil, apierror.Validation("id de detalle inválido")
	}
	pid, err := uuid.Parse(productoID)
	if err != nil {
		return nil, apierror.Validation("producto_id inválido")
	}

	var detalle *model.CotizacionDetalle
	for i := range cotizacion.Detalles {
		if cotizacion.Detalles[i].ID == did {
			detalle = &cotizacion.Detalles[i]
			break
		}
	}
	if detalle == nil {
		return nil, apierror.NotFound("detalle %s no pertenece a la cotización", detalleID)
	}
	if detalle.ProductoID != nil {
		return nil, apierror.Conflict("el detalle ya está vinculado a un producto")
	}

	producto, err := s.productoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, apierror.NotFound("producto %s no encontrado", productoID)
	}

	detalle.ProductoID = &pid
	detalle.NombreProducto = producto.Nombre

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateDetalleTx(tx, detalle)
	})
	if txErr != nil {
		return nil, txErr
	}
	return cotizacionToResponse(cotizacion), nil
}

// ── CambiarEstado ─────────────────────────────────────────────────────────────

func (s *cotizacionService) CambiarEstado(ctx context.Context, caller Caller, id string, estado string) (*dto.CotizacionResponse, error) {
	nuevo := model.EstadoCotizacion(estado)
	if !nuevo.Valido() {
		return nil, apierror.Validation("estado desconocido: %s", estado)
	}
	cotizacion, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.EsProveedor() {
		if !caller.PuedeVer(cotizacion.ProveedorID) {
			return nil, apierror.NotFound("cotización %s no encontrada", id)
		}
		// A supplier only marks a sent quotation as answered.
		if cotizacion.Estado != model.CotEnviado || nuevo != model.CotRespondido {
			return nil, apierror.Forbidden(
				"un proveedor no puede pasar una cotización de %s a %s", cotizacion.Estado, nuevo,
			)
		}
	}

	if !transicionCotizacionLegal(cotizacion.Estado, nuevo) {
		return nil, apierror.InvalidState("transición ilegal de cotización: %s → %s", cotizacion.Estado, nuevo)
	}

	// Sending to the supplier stamps the request date.
	if cotizacion.Estado == model.CotBorrador && nuevo == model.CotEnviado {
		cotizacion.FechaSolicitud = time.Now()
	}
	cotizacion.Estado = nuevo

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateTx(tx, cotizacion)
	})
	if txErr != nil {
		return nil, txErr
	}
	return cotizacionToResponse(cotizacion), nil
}

func transicionCotizacionLegal(desde, hacia model.EstadoCotizacion) bool {
	for _, t := range transicionesCotizacion[desde] {
		if t == hacia {
			return true
		}
	}
	return false
}

// ── ConvertirAOrden ───────────────────────────────────────────────────────────

func (s *cotizacionService) ConvertirAOrden(ctx context.Context, id string) (*dto.OrdenResponse, error) {
	cotizacion, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if cotizacion.Estado == model.CotConvertido {
		return nil, apierror.InvalidState("la cotización %s ya fue convertida", id)
	}
	if cotizacion.Estado == model.CotCancelado || cotizacion.Estado == model.CotRechazado {
		return nil, apierror.InvalidState("no se puede convertir una cotización en estado %s", cotizacion.Estado)
	}
	for _, d := range cotizacion.Detalles {
		if d.ProductoID == nil {
			return nil, apierror.Validation(
				"la cotización tiene líneas sin vincular a un producto del catálogo (ej. %q)", d.NombreProducto,
			)
		}
	}

	hoy := time.Now()
	total := decimal.Zero
	if cotizacion.TotalEstimado != nil {
		total = *cotizacion.TotalEstimado
	}
	orden := model.OrdenCompra{
		ProveedorID:  cotizacion.ProveedorID,
		FechaOrden:   hoy,
		FechaEntrega: hoy.AddDate(0, 0, 7),
		Total:        total,
		Estado:       model.OrdenBorrador,
	}
	for _, d := range cotizacion.Detalles {
		costo := decimal.Zero
		if d.PrecioCotizado != nil {
			costo = *d.PrecioCotizado
		}
		orden.Detalles = append(orden.Detalles, model.OrdenCompraDetalle{
			ProductoID:  *d.ProductoID,
			Cantidad:    d.Cantidad,
			CostoUnidad: costo,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.ordenRepo.CreateTx(tx, &orden); err != nil {
			return err
		}
		return s.repo.UpdateEstadoTx(tx, cotizacion.ID, model.CotConvertido)
	})
	if txErr != nil {
		return nil, txErr
	}
	return ordenToResponse(&orden), nil
}

// ── CancelarVencidas ──────────────────────────────────────────────────────────

const vencidasLote = 200

func (s *cotizacionService) CancelarVencidas(ctx context.Context) (int, error) {
	vencidas, err := s.repo.ListVencidas(ctx, time.Now(), vencidasLote)
	if err != nil {
		return 0, err
	}
	canceladas := 0
	for i := range vencidas {
		c := &vencidas[i]
		txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			return s.repo.UpdateEstadoTx(tx, c.ID, model.CotCancelado)
		})
		if txErr != nil {
			return canceladas, txErr
		}
		canceladas++
	}
	return canceladas, nil
}

// ── Auxiliares ────────────────────────────────────────────────────────────────

func (s *cotizacionService) buscar(ctx context.Context, id string) (*model.Cotizacion, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, apierror.Validation("id de cotización inválido")
	}
	cotizacion, err := s.repo.FindByID(ctx, cid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("cotización %s no encontrada", id)
		}
		return nil, err
	}
	return cotizacion, nil
}

func cotizacionToResponse(c *model.Cotizacion) *dto.CotizacionResponse {
	detalles := make([]dto.DetalleCotizacionResponse, 0, len(c.Detalles))
	for _, d := range c.Detalles {
		var pid *string
		if d.ProductoID != nil {
			v := d.ProductoID.String()
			pid = &v
		}
		detalles = append(detalles, dto.DetalleCotizacionResponse{
			ID:             d.ID.String(),
			ProductoID:     pid,
			NombreProducto: d.NombreProducto,
			Cantidad:       d.Cantidad,
			PrecioCotizado: d.PrecioCotizado,
			SKUSugerido:    d.SKUSugerido,
		})
	}
	var vence *string
	if c.FechaVence != nil {
		v := fechaString(*c.FechaVence)
		vence = &v
	}
	return &dto.CotizacionResponse{
		ID:             c.ID.String(),
		ProveedorID:    c.ProveedorID.String(),
		FechaSolicitud: fechaString(c.FechaSolicitud),
		FechaVence:     vence,
		Estado:         string(c.Estado),
		TotalEstimado:  c.TotalEstimado,
		Notas:          c.Notas,
		Detalles:       detalles,
	}
}
