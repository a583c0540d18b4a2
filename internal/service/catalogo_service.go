package service

import (
	"context"
	"errors"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/apierror"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/dto"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogoService maintains the product↔supplier links and the at-most-one
// preferred supplier per product invariant: promotion always demotes every
// other preferred link of the product in the same transaction.
type CatalogoService interface {
	Vincular(ctx context.Context, req dto.VincularProveedorRequest) (*dto.VinculoResponse, error)
	SetPreferido(ctx context.Context, productoID, proveedorID string) (*dto.VinculoResponse, error)
	ListarPorProducto(ctx context.Context, productoID string) ([]dto.VinculoResponse, error)
	Preferido(ctx context.Context, productoID string) (*dto.VinculoResponse, error)
	Desvincular(ctx context.Context, productoID, proveedorID string) error
}

type catalogoService struct {
	linkRepo      repository.ProductoProveedorRepository
	productoRepo  repository.ProductoRepository
	proveedorRepo repository.ProveedorRepository
}

func NewCatalogoService(
	linkRepo repository.ProductoProveedorRepository,
	productoRepo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
) CatalogoService {
	return &catalogoService{
		linkRepo:      linkRepo,
		productoRepo:  productoRepo,
		proveedorRepo: proveedorRepo,
	}
}

func (s *catalogoService) Vincular(ctx context.Context, req dto.VincularProveedorRequest) (*dto.VinculoResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apierror.Validation("producto_id inválido")
	}
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, apierror.Validation("proveedor_id inválido")
	}
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		return nil, apierror.NotFound("producto %s no encontrado", req.ProductoID)
	}
	if _, err := s.proveedorRepo.FindByID(ctx, proveedorID); err != nil {
		return nil, apierror.NotFound("proveedor %s no encontrado", req.ProveedorID)
	}

	activo := true
	if req.Activo != nil {
		activo = *req.Activo
	}
	link := model.ProductoProveedor{
		ProductoID:      productoID,
		ProveedorID:     proveedorID,
		CodigoProveedor: req.CodigoProveedor,
		CostoUnidad:     req.CostoUnidad,
		DiasEntrega:     req.DiasEntrega,
		EsPreferido:     req.EsPreferido,
		Activo:          activo,
	}

	txErr := runTx(ctx, s.linkRepo.DB(), func(tx *gorm.DB) error {
		if req.EsPreferido {
			if err := s.linkRepo.DemoteOtrosTx(tx, productoID, proveedorID); err != nil {
				return err
			}
		}
		return s.linkRepo.UpsertTx(tx, &link)
	})
	if txErr != nil {
		return nil, txErr
	}
	return vinculoToResponse(&link), nil
}

// SetPreferido promotes the link to preferred, creating it with defaults when
// it doesn't exist yet. Demotion of every other preferred link for the
// product and the promotion commit together.
func (s *catalogoService) SetPreferido(ctx context.Context, productoID, proveedorID string) (*dto.VinculoResponse, error) {
	pid, err := uuid.Parse(productoID)
	if err != nil {
		return nil, apierror.Validation("producto_id inválido")
	}
	sid, err := uuid.Parse(proveedorID)
	if err != nil {
		return nil, apierror.Validation("proveedor_id inválido")
	}
	if _, err := s.productoRepo.FindByID(ctx, pid); err != nil {
		return nil, apierror.NotFound("producto %s no encontrado", productoID)
	}
	if _, err := s.proveedorRepo.FindByID(ctx, sid); err != nil {
		return nil, apierror.NotFound("proveedor %s no encontrado", proveedorID)
	}

	link, err := s.linkRepo.Find(ctx, pid, sid)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		link = &model.ProductoProveedor{
			ProductoID:  pid,
			ProveedorID: sid,
			CostoUnidad: decimal.Zero,
			Activo:      true,
		}
	}
	link.EsPreferido = true

	txErr := runTx(ctx, s.linkRepo.DB(), func(tx *gorm.DB) error {
		if err := s.linkRepo.DemoteOtrosTx(tx, pid, sid); err != nil {
			return err
		}
		return s.linkRepo.UpsertTx(tx, link)
	})
	if txErr != nil {
		return nil, txErr
	}
	return vinculoToResponse(link), nil
}

func (s *catalogoService) ListarPorProducto(ctx context.Context, productoID string) ([]dto.VinculoResponse, error) {
	pid, err := uuid.Parse(productoID)
	if err != nil {
		return nil, apierror.Validation("producto_id inválido")
	}
	links, err := s.linkRepo.ListPorProducto(ctx, pid)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VinculoResponse, 0, len(links))
	for i := range links {
		out = append(out, *vinculoToResponse(&links[i]))
	}
	return out, nil
}

func (s *catalogoService) Preferido(ctx context.Context, productoID string) (*dto.VinculoResponse, error) {
	pid, err := uuid.Parse(productoID)
	if err != nil {
		return nil, apierror.Validation("producto_id inválido")
	}
	link, err := s.linkRepo.Preferido(ctx, pid)
	if err != nil {
		return nil, apierror.NotFound("el producto %s no tiene proveedor preferido", productoID)
	}
	return vinculoToResponse(link), nil
}

func (s *catalogoService) Desvincular(ctx context.Context, productoID, proveedorID string) error {
	pid, err := uuid.Parse(productoID)
	if err != nil {
		return apierror.Validation("producto_id inválido")
	}
	sid, err := uuid.Parse(proveedorID)
	if err != nil {
		return apierror.Validation("proveedor_id inválido")
	}
	if _, err := s.linkRepo.Find(ctx, pid, sid); err != nil {
		return apierror.NotFound("no existe vínculo entre producto %s y proveedor %s", productoID, proveedorID)
	}
	return s.linkRepo.Delete(ctx, pid, sid)
}

func vinculoToResponse(l *model.ProductoProveedor) *dto.VinculoResponse {
	return &dto.VinculoResponse{
		ProductoID:      l.ProductoID.String(),
		ProveedorID:     l.ProveedorID.String(),
		CodigoProveedor: l.CodigoProveedor,
		CostoUnidad:     l.CostoUnidad,
		DiasEntrega:     l.DiasEntrega,
		EsPreferido:     l.EsPreferido,
		Activo:          l.Activo,
	}
}
