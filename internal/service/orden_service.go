package service

import (
	"context"
	"errors"
	"time"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/apierror"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/dto"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/repository"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StockReceiver books a completed order line into stock inside the caller's
// transaction. Kept as a narrow interface so the order state machine stays
// decoupled from lot selection policy.
type StockReceiver interface {
	RecibirDetalleTx(ctx context.Context, tx *gorm.DB, ordenID uuid.UUID, detalle model.OrdenCompraDetalle) error
}

// OrdenService owns the purchase-order lifecycle and its role-gated
// transitions.
type OrdenService interface {
	Crear(ctx context.Context, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error)
	Obtener(ctx context.Context, caller Caller, id string) (*dto.OrdenResponse, error)
	Listar(ctx context.Context, caller Caller, estado string) ([]dto.OrdenResponse, error)
	Actualizar(ctx context.Context, id string, req dto.ActualizarOrdenRequest) (*dto.OrdenResponse, error)
	CambiarEstado(ctx context.Context, caller Caller, id string, estado string) (*dto.OrdenResponse, error)
	// Eliminar is the administrative override: it removes the order and its
	// details regardless of lifecycle state.
	Eliminar(ctx context.Context, id string) error
}

type ordenService struct {
	repo          repository.OrdenRepository
	proveedorRepo repository.ProveedorRepository
	productoRepo  repository.ProductoRepository
	receiver      StockReceiver
	dispatcher    *worker.Dispatcher
}

func NewOrdenService(
	repo repository.OrdenRepository,
	proveedorRepo repository.ProveedorRepository,
	productoRepo repository.ProductoRepository,
	receiver StockReceiver,
	dispatcher *worker.Dispatcher,
) OrdenService {
	return &ordenService{
		repo:          repo,
		proveedorRepo: proveedorRepo,
		productoRepo:  productoRepo,
		receiver:      receiver,
		dispatcher:    dispatcher,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *ordenService) Crear(ctx context.Context, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, apierror.Validation("proveedor_id inválido")
	}
	if _, err := s.proveedorRepo.FindByID(ctx, proveedorID); err != nil {
		return nil, apierror.NotFound("proveedor %s no encontrado", req.ProveedorID)
	}

	fechaOrden := time.Now()
	if req.FechaOrden != nil && *req.FechaOrden != "" {
		f, err := parseFecha(*req.FechaOrden)
		if err != nil {
			return nil, apierror.Validation("fecha_orden inválida: se espera YYYY-MM-DD")
		}
		if f.After(time.Now()) {
			return nil, apierror.Validation("fecha_orden no puede estar en el futuro")
		}
		fechaOrden = f
	}
	fechaEntrega, err := parseFecha(req.FechaEntrega)
	if err != nil {
		return nil, apierror.Validation("fecha_entrega inválida: se espera YYYY-MM-DD")
	}

	detalles, err := s.resolverDetalles(ctx, req.Detalles)
	if err != nil {
		return nil, err
	}

	orden := model.OrdenCompra{
		ProveedorID:  proveedorID,
		FechaOrden:   fechaOrden,
		FechaEntrega: fechaEntrega,
		Total:        req.Total,
		Estado:       model.OrdenBorrador,
		Detalles:     detalles,
	}
	if err := s.repo.Create(ctx, &orden); err != nil {
		return nil, err
	}
	return ordenToResponse(&orden), nil
}

func (s *ordenService) resolverDetalles(ctx context.Context, inputs []dto.DetalleOrdenInput) ([]model.OrdenCompraDetalle, error) {
	detalles := make([]model.OrdenCompraDetalle, 0, len(inputs))
	for i, in := range inputs {
		pid, err := uuid.Parse(in.ProductoID)
		if err != nil {
			return nil, apierror.Validation("detalle %d: producto_id inválido", i+1)
		}
		if _, err := s.productoRepo.FindByID(ctx, pid); err != nil {
			return nil, apierror.NotFound("detalle %d: producto %s no encontrado", i+1, in.ProductoID)
		}
		if in.CostoUnidad.IsNegative() || in.CostoUnidad.IsZero() {
			return nil, apierror.Validation("detalle %d: costo_unidad debe ser mayor a cero", i+1)
		}
		detalles = append(detalles, model.OrdenCompraDetalle{
			ProductoID:  pid,
			Cantidad:    in.Cantidad,
			CostoUnidad: in.CostoUnidad,
		})
	}
	return detalles, nil
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *ordenService) Obtener(ctx context.Context, caller Caller, id string) (*dto.OrdenResponse, error) {
	orden, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	// Suppliers never see drafts that were not sent to them yet.
	if caller.EsProveedor() && (!caller.PuedeVer(orden.ProveedorID) || orden.Estado == model.OrdenBorrador) {
		return nil, apierror.NotFound("orden %s no encontrada", id)
	}
	return ordenToResponse(orden), nil
}

func (s *ordenService) Listar(ctx context.Context, caller Caller, estado string) ([]dto.OrdenResponse, error) {
	filter := repository.OrdenFilter{}
	if estado != "" {
		e := model.EstadoOrden(estado)
		if !e.Valido() {
			return nil, apierror.Validation("estado desconocido: %s", estado)
		}
		filter.Estado = &e
	}
	if caller.EsProveedor() {
		if caller.ProveedorID == nil {
			return []dto.OrdenResponse{}, nil
		}
		filter.ProveedorID = caller.ProveedorID
	}
	ordenes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrdenResponse, 0, len(ordenes))
	for i := range ordenes {
		o := &ordenes[i]
		if caller.EsProveedor() && o.Estado == model.OrdenBorrador {
			continue
		}
		out = append(out, *ordenToResponse(o))
	}
	return out, nil
}

// ── Actualizar ────────────────────────────────────────────────────────────────

func (s *ordenService) Actualizar(ctx context.Context, id string, req dto.ActualizarOrdenRequest) (*dto.OrdenResponse, error) {
	orden, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if orden.Estado.Finalizada() {
		return nil, apierror.InvalidState("la orden está finalizada en estado %s y no admite cambios", orden.Estado)
	}

	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, apierror.Validation("proveedor_id inválido")
		}
		if _, err := s.proveedorRepo.FindByID(ctx, pid); err != nil {
			return nil, apierror.NotFound("proveedor %s no encontrado", *req.ProveedorID)
		}
		orden.ProveedorID = pid
	}
	if req.FechaOrden != nil {
		f, err := parseFecha(*req.FechaOrden)
		if err != nil {
			return nil, apierror.Validation("fecha_orden inválida: se espera YYYY-MM-DD")
		}
		orden.FechaOrden = f
	}
	if req.FechaEntrega != nil {
		f, err := parseFecha(*req.FechaEntrega)
		if err != nil {
			return nil, apierror.Validation("fecha_entrega inválida: se espera YYYY-MM-DD")
		}
		orden.FechaEntrega = f
	}
	if req.Total != nil {
		orden.Total = *req.Total
	}

	var detalles []model.OrdenCompraDetalle
	if req.Detalles != nil {
		detalles, err = s.resolverDetalles(ctx, req.Detalles)
		if err != nil {
			return nil, err
		}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, orden); err != nil {
			return err
		}
		if req.Detalles == nil {
			return nil
		}
		return s.repo.ReplaceDetallesTx(tx, orden.ID, detalles)
	})
	if txErr != nil {
		return nil, txErr
	}
	if req.Detalles != nil {
		orden.Detalles = detalles
	}
	return ordenToResponse(orden), nil
}

// ── CambiarEstado ─────────────────────────────────────────────────────────────

func (s *ordenService) CambiarEstado(ctx context.Context, caller Caller, id string, estado string) (*dto.OrdenResponse, error) {
	nuevo := model.EstadoOrden(estado)
	if !nuevo.Valido() {
		return nil, apierror.Validation("estado desconocido: %s", estado)
	}
	orden, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.EsProveedor() {
		if !caller.PuedeVer(orden.ProveedorID) {
			return nil, apierror.NotFound("orden %s no encontrada", id)
		}
		if orden.Estado != model.OrdenPendiente || (nuevo != model.OrdenConfirmado && nuevo != model.OrdenRechazado) {
			return nil, apierror.Forbidden(
				"el rol proveedor no puede pasar una orden de %s a %s", orden.Estado, nuevo,
			)
		}
	} else {
		switch nuevo {
		case model.OrdenPendiente:
			if orden.Estado != model.OrdenBorrador {
				return nil, apierror.InvalidState("solo una orden BORRADOR puede enviarse al proveedor, actual %s", orden.Estado)
			}
		case model.OrdenCancelado:
			if orden.Estado == model.OrdenCompleto {
				return nil, apierror.InvalidState("no se puede cancelar una orden completada")
			}
		case model.OrdenCompleto:
			if orden.Estado != model.OrdenConfirmado {
				return nil, apierror.InvalidState("solo una orden CONFIRMADO puede marcarse COMPLETO, actual %s", orden.Estado)
			}
		default:
			return nil, apierror.Forbidden(
				"el rol %s no puede pasar una orden de %s a %s", caller.Rol, orden.Estado, nuevo,
			)
		}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateEstadoTx(tx, orden.ID, nuevo); err != nil {
			return err
		}
		if nuevo != model.OrdenCompleto {
			return nil
		}
		// Completing the order books every line into stock in this same
		// transaction: a failed receipt rolls the transition back.
		for _, d := range orden.Detalles {
			if err := s.receiver.RecibirDetalleTx(ctx, tx, orden.ID, d); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	orden.Estado = nuevo

	if nuevo == model.OrdenPendiente {
		s.notificarProveedor(ctx, orden)
	}
	return ordenToResponse(orden), nil
}

// notificarProveedor enqueues the order-sent notification. Best-effort: the
// transition already committed.
func (s *ordenService) notificarProveedor(ctx context.Context, orden *model.OrdenCompra) {
	if s.dispatcher == nil {
		return
	}
	payload := worker.NotificacionJobPayload{OrdenID: orden.ID.String()}
	if err := s.dispatcher.EnqueueNotificacion(ctx, payload); err != nil {
		log.Warn().Err(err).Str("orden_id", orden.ID.String()).Msg("orden: no se pudo encolar la notificación al proveedor")
	}
}

// ── Eliminar ──────────────────────────────────────────────────────────────────

func (s *ordenService) Eliminar(ctx context.Context, id string) error {
	orden, err := s.buscar(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, orden.ID)
}

// ── Auxiliares ────────────────────────────────────────────────────────────────

func (s *ordenService) buscar(ctx context.Context, id string) (*model.OrdenCompra, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, apierror.Validation("id de orden inválido")
	}
	orden, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("orden %s no encontrada", id)
		}
		return nil, err
	}
	return orden, nil
}

func ordenToResponse(o *model.OrdenCompra) *dto.OrdenResponse {
	detalles := make([]dto.DetalleOrdenResponse, 0, len(o.Detalles))
	for _, d := range o.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		detalles = append(detalles, dto.DetalleOrdenResponse{
			ID:          d.ID.String(),
			ProductoID:  d.ProductoID.String(),
			Producto:    nombre,
			Cantidad:    d.Cantidad,
			CostoUnidad: d.CostoUnidad,
		})
	}
	proveedor := ""
	if o.Proveedor != nil {
		proveedor = o.Proveedor.RazonSocial
	}
	return &dto.OrdenResponse{
		ID:           o.ID.String(),
		ProveedorID:  o.ProveedorID.String(),
		Proveedor:    proveedor,
		FechaOrden:   fechaString(o.FechaOrden),
		FechaEntrega: fechaString(o.FechaEntrega),
		Total:        o.Total,
		Estado:       string(o.Estado),
		Detalles:     detalles,
	}
}
