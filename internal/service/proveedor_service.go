package service

import (
	"context"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/apierror"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/dto"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/repository"

	"github.com/google/uuid"
)

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Obtener(ctx context.Context, id string) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id string, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Desactivar(ctx context.Context, id string) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor := model.Proveedor{
		RazonSocial: req.RazonSocial,
		TaxID:       req.TaxID,
		Email:       req.Email,
		Telefono:    req.Telefono,
		Direccion:   req.Direccion,
		Contacto:    req.Contacto,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, &proveedor); err != nil {
		return nil, apierror.Conflict("no se pudo crear el proveedor: tax_id %s ya registrado", req.TaxID)
	}
	return proveedorToResponse(&proveedor), nil
}

func (s *proveedorService) Obtener(ctx context.Context, id string) (*dto.ProveedorResponse, error) {
	proveedor, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	return proveedorToResponse(proveedor), nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		out = append(out, *proveedorToResponse(&proveedores[i]))
	}
	return out, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id string, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	proveedor.RazonSocial = req.RazonSocial
	proveedor.TaxID = req.TaxID
	proveedor.Email = req.Email
	proveedor.Telefono = req.Telefono
	proveedor.Direccion = req.Direccion
	proveedor.Contacto = req.Contacto
	if err := s.repo.Update(ctx, proveedor); err != nil {
		return nil, err
	}
	return proveedorToResponse(proveedor), nil
}

func (s *proveedorService) Desactivar(ctx context.Context, id string) error {
	proveedor, err := s.buscar(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, proveedor.ID)
}

func (s *proveedorService) buscar(ctx context.Context, id string) (*model.Proveedor, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, apierror.Validation("id de proveedor inválido")
	}
	proveedor, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return nil, apierror.NotFound("proveedor %s no encontrado", id)
	}
	return proveedor, nil
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:          p.ID.String(),
		RazonSocial: p.RazonSocial,
		TaxID:       p.TaxID,
		Email:       p.Email,
		Telefono:    p.Telefono,
		Direccion:   p.Direccion,
		Contacto:    p.Contacto,
		Activo:      p.Activo,
	}
}
