package service

import (
	"context"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/apierror"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/dto"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/repository"

	"github.com/google/uuid"
)

type AlmacenService interface {
	Crear(ctx context.Context, req dto.CrearAlmacenRequest) (*dto.AlmacenResponse, error)
	Obtener(ctx context.Context, id string) (*dto.AlmacenResponse, error)
	Listar(ctx context.Context) ([]dto.AlmacenResponse, error)
	Actualizar(ctx context.Context, id string, req dto.CrearAlmacenRequest) (*dto.AlmacenResponse, error)
	Desactivar(ctx context.Context, id string) error
}

type almacenService struct {
	repo repository.AlmacenRepository
}

func NewAlmacenService(repo repository.AlmacenRepository) AlmacenService {
	return &almacenService{repo: repo}
}

func (s *almacenService) Crear(ctx context.Context, req dto.CrearAlmacenRequest) (*dto.AlmacenResponse, error) {
	almacen := model.Almacen{
		Nombre:    req.Nombre,
		Ubicacion: req.Ubicacion,
		Principal: req.Principal,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, &almacen); err != nil {
		return nil, apierror.Conflict("ya existe un almacén llamado %s", req.Nombre)
	}
	return almacenToResponse(&almacen), nil
}

func (s *almacenService) Obtener(ctx context.Context, id string) (*dto.AlmacenResponse, error) {
	almacen, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	return almacenToResponse(almacen), nil
}

func (s *almacenService) Listar(ctx context.Context) ([]dto.AlmacenResponse, error) {
	almacenes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlmacenResponse, 0, len(almacenes))
	for i := range almacenes {
		out = append(out, *almacenToResponse(&almacenes[i]))
	}
	return out, nil
}

func (s *almacenService) Actualizar(ctx context.Context, id string, req dto.CrearAlmacenRequest) (*dto.AlmacenResponse, error) {
	almacen, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	almacen.Nombre = req.Nombre
	almacen.Ubicacion = req.Ubicacion
	almacen.Principal = req.Principal
	if err := s.repo.Update(ctx, almacen); err != nil {
		return nil, err
	}
	return almacenToResponse(almacen), nil
}

func (s *almacenService) Desactivar(ctx context.Context, id string) error {
	almacen, err := s.buscar(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, almacen.ID)
}

func (s *almacenService) buscar(ctx context.Context, id string) (*model.Almacen, error) {
	aid, err := uuid.Parse(id)
	if err != nil {
		return nil, apierror.Validation("id de almacén inválido")
	}
	almacen, err := s.repo.FindByID(ctx, aid)
	if err != nil {
		return nil, apierror.NotFound("almacén %s no encontrado", id)
	}
	return almacen, nil
}

func almacenToResponse(a *model.Almacen) *dto.AlmacenResponse {
	return &dto.AlmacenResponse{
		ID:        a.ID.String(),
		Nombre:    a.Nombre,
		Ubicacion: a.Ubicacion,
		Principal: a.Principal,
		Activo:    a.Activo,
	}
}
