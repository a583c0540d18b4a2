package service

import (
	"context"
	"errors"
	"fmt"
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

// InventarioService is the stock ledger: every quantity change on a lot goes
// through RegistrarMovimiento, which serializes writers on the lot row,
// rejects balances below zero before any write, and appends the movement with
// its balance snapshot in the same transaction as the quantity update.
type InventarioService interface {
	CrearLote(ctx context.Context, req dto.CrearLoteRequest) (*dto.LoteResponse, error)
	ObtenerLote(ctx context.Context, id string) (*dto.LoteResponse, error)
	ListarLotes(ctx context.Context, productoID string) ([]dto.LoteResponse, error)
	RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error)
	TotalStock(ctx context.Context, productoID string) (*dto.TotalStockResponse, error)
	// Historial returns the full movement log for a product, newest first.
	Historial(ctx context.Context, productoID string) ([]dto.MovimientoResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
	// RecibirDetalleTx books one received order line into stock: the lot at
	// the principal warehouse keyed by the order id is created or topped up,
	// and an ENTRADA movement referencing the order is appended. Runs inside
	// the caller's transaction.
	RecibirDetalleTx(ctx context.Context, tx *gorm.DB, ordenID uuid.UUID, detalle model.OrdenCompraDetalle) error
}

type inventarioService struct {
	loteRepo       repository.LoteRepository
	movimientoRepo repository.MovimientoRepository
	productoRepo   repository.ProductoRepository
	almacenRepo    repository.AlmacenRepository
	dispatcher     *worker.Dispatcher
}

func NewInventarioService(
	loteRepo repository.LoteRepository,
	movimientoRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	almacenRepo repository.AlmacenRepository,
	dispatcher *worker.Dispatcher,
) InventarioService {
	return &inventarioService{
		loteRepo:       loteRepo,
		movimientoRepo: movimientoRepo,
		productoRepo:   productoRepo,
		almacenRepo:    almacenRepo,
		dispatcher:     dispatcher,
	}
}

// ── CrearLote ─────────────────────────────────────────────────────────────────

func (s *inventarioService) CrearLote(ctx context.Context, req dto.CrearLoteRequest) (*dto.LoteResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apierror.Validation("producto_id inválido")
	}
	almacenID, err := uuid.Parse(req.AlmacenID)
	if err != nil {
		return nil, apierror.Validation("almacen_id inválido")
	}

	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		return nil, apierror.NotFound("producto %s no encontrado", req.ProductoID)
	}
	if _, err := s.almacenRepo.FindByID(ctx, almacenID); err != nil {
		return nil, apierror.NotFound("almacén %s no encontrado", req.AlmacenID)
	}
	if _, err := s.loteRepo.FindByClave(ctx, productoID, almacenID, req.NumeroLote); err == nil {
		return nil, apierror.Conflict("ya existe el lote %s para el producto en ese almacén", req.NumeroLote)
	}

	var vencimiento *time.Time
	if req.Vencimiento != nil && *req.Vencimiento != "" {
		v, err := parseFecha(*req.Vencimiento)
		if err != nil {
			return nil, apierror.Validation("vencimiento inválido: se espera YYYY-MM-DD")
		}
		vencimiento = &v
	}

	lote := model.Lote{
		ProductoID:  productoID,
		AlmacenID:   almacenID,
		NumeroLote:  req.NumeroLote,
		Cantidad:    req.Cantidad,
		CostoUnidad: req.CostoUnidad,
		Vencimiento: vencimiento,
		Ubicacion:   req.Ubicacion,
	}

	txErr := runTx(ctx, s.loteRepo.DB(), func(tx *gorm.DB) error {
		if err := s.loteRepo.CreateTx(tx, &lote); err != nil {
			return err
		}
		if req.Cantidad == 0 {
			return nil
		}
		// Initial stock enters the ledger as its own fact.
		loteID := lote.ID
		mov := model.MovimientoInventario{
			LoteID:         &loteID,
			ProductoID:     productoID,
			AlmacenID:      &almacenID,
			Cantidad:       req.Cantidad,
			SaldoPosterior: req.Cantidad,
			Tipo:           model.MovEntrada,
			Motivo:         fmt.Sprintf("Registro inicial del lote %s", req.NumeroLote),
			Fecha:          time.Now(),
		}
		return s.movimientoRepo.CreateTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	return loteToResponse(&lote), nil
}

func (s *inventarioService) ObtenerLote(ctx context.Context, id string) (*dto.LoteResponse, error) {
	loteID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierror.Validation("id de lote inválido")
	}
	lote, err := s.loteRepo.FindByID(ctx, loteID)
	if err != nil {
		return nil, apierror.NotFound("lote %s no encontrado", id)
	}
	return loteToResponse(lote), nil
}

func (s *inventarioService) ListarLotes(ctx context.Context, productoID string) ([]dto.LoteResponse, error) {
	pid, err := uuid.Parse(productoID)
	if err != nil {
		return nil, apierror.Validation("producto_id inválido")
	}
	lotes, err := s.loteRepo.ListByProducto(ctx, pid)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LoteResponse, 0, len(lotes))
	for i := range lotes {
		out = append(out, *loteToResponse(&lotes[i]))
	}
	return out, nil
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────
// The read-modify-write on the lot runs under SELECT ... FOR UPDATE so that
// two concurrent movements against the same lot serialize: the second writer
// waits, re-reads the committed quantity and computes its balance from that.

func (s *inventarioService) RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	loteID, err := uuid.Parse(req.LoteID)
	if err != nil {
		return nil, apierror.Validation("lote_id inválido")
	}
	tipo := model.TipoMovimiento(req.Tipo)
	if !tipo.Valido() {
		return nil, apierror.Validation("tipo de movimiento desconocido: %s", req.Tipo)
	}
	if req.Cantidad == 0 {
		return nil, apierror.Validation("cantidad no puede ser cero")
	}

	fecha := time.Now()
	if req.Fecha != nil && *req.Fecha != "" {
		f, err := time.Parse(time.RFC3339, *req.Fecha)
		if err != nil {
			return nil, apierror.Validation("fecha inválida: se espera RFC 3339")
		}
		if f.After(time.Now()) {
			return nil, apierror.Validation("fecha no puede estar en el futuro")
		}
		fecha = f
	}

	var referenciaID *uuid.UUID
	if req.ReferenciaID != nil && *req.ReferenciaID != "" {
		rid, err := uuid.Parse(*req.ReferenciaID)
		if err != nil {
			return nil, apierror.Validation("referencia_id inválido")
		}
		referenciaID = &rid
	}

	var mov model.MovimientoInventario
	txErr := runTx(ctx, s.loteRepo.DB(), func(tx *gorm.DB) error {
		lote, err := s.loteRepo.FindByIDForUpdateTx(tx, loteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("lote %s no encontrado", req.LoteID)
			}
			return err
		}

		nuevo := lote.Cantidad + req.Cantidad
		if nuevo < 0 {
			return apierror.InsufficientStock(
				"stock insuficiente en lote %s: disponible %d, solicitado %d",
				lote.NumeroLote, lote.Cantidad, -req.Cantidad,
			)
		}

		if err := s.loteRepo.UpdateCantidadTx(tx, loteID, nuevo); err != nil {
			return err
		}

		almacenID := lote.AlmacenID
		mov = model.MovimientoInventario{
			LoteID:         &loteID,
			ProductoID:     lote.ProductoID,
			AlmacenID:      &almacenID,
			Cantidad:       req.Cantidad,
			SaldoPosterior: nuevo,
			Tipo:           tipo,
			Motivo:         req.Motivo,
			Fecha:          fecha,
			ReferenciaID:   referenciaID,
			ReferenciaSrv:  req.ReferenciaSrv,
		}
		return s.movimientoRepo.CreateTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	if tipo.Saliente() {
		s.alertarStockBajo(ctx, mov.ProductoID)
	}
	return movimientoToResponse(&mov), nil
}

// alertarStockBajo enqueues a low-stock alert when the product's committed
// total fell to or below its configured minimum. Best-effort: a queue failure
// never fails the movement that already committed.
func (s *inventarioService) alertarStockBajo(ctx context.Context, productoID uuid.UUID) {
	if s.dispatcher == nil {
		return
	}
	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil || producto.StockMinimo <= 0 {
		return
	}
	total, err := s.loteRepo.TotalStock(ctx, productoID)
	if err != nil || total > producto.StockMinimo {
		return
	}
	payload := worker.AlertaStockJobPayload{
		ProductoID:  productoID.String(),
		Nombre:      producto.Nombre,
		SKU:         producto.SKU,
		StockActual: total,
		StockMinimo: producto.StockMinimo,
	}
	if err := s.dispatcher.EnqueueAlertaStock(ctx, payload); err != nil {
		log.Warn().Err(err).Str("producto_id", productoID.String()).Msg("inventario: no se pudo encolar alerta de stock")
	}
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *inventarioService) TotalStock(ctx context.Context, productoID string) (*dto.TotalStockResponse, error) {
	pid, err := uuid.Parse(productoID)
	if err != nil {
		return nil, apierror.Validation("producto_id inválido")
	}
	if _, err := s.productoRepo.FindByID(ctx, pid); err != nil {
		return nil, apierror.NotFound("producto %s no encontrado", productoID)
	}
	total, err := s.loteRepo.TotalStock(ctx, pid)
	if err != nil {
		return nil, err
	}
	return &dto.TotalStockResponse{ProductoID: productoID, Total: total}, nil
}

func (s *inventarioService) Historial(ctx context.Context, productoID string) ([]dto.MovimientoResponse, error) {
	pid, err := uuid.Parse(productoID)
	if err != nil {
		return nil, apierror.Validation("producto_id inválido")
	}
	movimientos, err := s.movimientoRepo.HistorialPorProducto(ctx, pid)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoResponse, 0, len(movimientos))
	for i := range movimientos {
		out = append(out, *movimientoToResponse(&movimientos[i]))
	}
	return out, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movimientos, total, err := s.movimientoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoResponse, 0, len(movimientos))
	for i := range movimientos {
		data = append(data, *movimientoToResponse(&movimientos[i]))
	}
	return &dto.MovimientoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Recepción de órdenes ──────────────────────────────────────────────────────

func (s *inventarioService) RecibirDetalleTx(ctx context.Context, tx *gorm.DB, ordenID uuid.UUID, detalle model.OrdenCompraDetalle) error {
	almacen, err := s.almacenRepo.FindPrincipal(ctx)
	if err != nil {
		return apierror.InvalidState("no hay almacén principal activo para recibir mercadería")
	}

	// One lot per order at the principal warehouse; receiving a second detail
	// of the same product/order tops up the same lot.
	numeroLote := "OC-" + ordenID.String()[:8]

	ordenRef := ordenID
	srv := "orden_compra"
	lote, err := s.loteRepo.FindByClaveForUpdateTx(tx, detalle.ProductoID, almacen.ID, numeroLote)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		nuevo := model.Lote{
			ProductoID:  detalle.ProductoID,
			AlmacenID:   almacen.ID,
			NumeroLote:  numeroLote,
			Cantidad:    detalle.Cantidad,
			CostoUnidad: detalle.CostoUnidad,
		}
		if err := s.loteRepo.CreateTx(tx, &nuevo); err != nil {
			return err
		}
		loteID := nuevo.ID
		almacenID := almacen.ID
		mov := model.MovimientoInventario{
			LoteID:         &loteID,
			ProductoID:     detalle.ProductoID,
			AlmacenID:      &almacenID,
			Cantidad:       detalle.Cantidad,
			SaldoPosterior: detalle.Cantidad,
			Tipo:           model.MovEntrada,
			Motivo:         fmt.Sprintf("Recepción orden de compra %s", ordenID),
			Fecha:          time.Now(),
			ReferenciaID:   &ordenRef,
			ReferenciaSrv:  &srv,
		}
		return s.movimientoRepo.CreateTx(tx, &mov)
	}

	saldo := lote.Cantidad + detalle.Cantidad
	if err := s.loteRepo.UpdateCantidadTx(tx, lote.ID, saldo); err != nil {
		return err
	}
	loteID := lote.ID
	almacenID := almacen.ID
	mov := model.MovimientoInventario{
		LoteID:         &loteID,
		ProductoID:     detalle.ProductoID,
		AlmacenID:      &almacenID,
		Cantidad:       detalle.Cantidad,
		SaldoPosterior: saldo,
		Tipo:           model.MovEntrada,
		Motivo:         fmt.Sprintf("Recepción orden de compra %s", ordenID),
		Fecha:          time.Now(),
		ReferenciaID:   &ordenRef,
		ReferenciaSrv:  &srv,
	}
	return s.movimientoRepo.CreateTx(tx, &mov)
}

// ── Mapeos ────────────────────────────────────────────────────────────────────

func loteToResponse(l *model.Lote) *dto.LoteResponse {
	var vencimiento *string
	if l.Vencimiento != nil {
		v := fechaString(*l.Vencimiento)
		vencimiento = &v
	}
	return &dto.LoteResponse{
		ID:          l.ID.String(),
		ProductoID:  l.ProductoID.String(),
		AlmacenID:   l.AlmacenID.String(),
		NumeroLote:  l.NumeroLote,
		Cantidad:    l.Cantidad,
		CostoUnidad: l.CostoUnidad,
		Vencimiento: vencimiento,
		Ubicacion:   l.Ubicacion,
	}
}

func movimientoToResponse(m *model.MovimientoInventario) *dto.MovimientoResponse {
	var loteID *string
	if m.LoteID != nil {
		v := m.LoteID.String()
		loteID = &v
	}
	var referenciaID *string
	if m.ReferenciaID != nil {
		v := m.ReferenciaID.String()
		referenciaID = &v
	}
	return &dto.MovimientoResponse{
		ID:             m.ID,
		LoteID:         loteID,
		ProductoID:     m.ProductoID.String(),
		Cantidad:       m.Cantidad,
		SaldoPosterior: m.SaldoPosterior,
		Tipo:           string(m.Tipo),
		Motivo:         m.Motivo,
		Fecha:          m.Fecha.UTC().Format(time.RFC3339),
		ReferenciaID:   referenciaID,
		ReferenciaSrv:  m.ReferenciaSrv,
	}
}
