package service

import (
	"context"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/apierror"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/dto"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/repository"

	"github.com/google/uuid"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id string) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id string, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id string) error
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, apierror.Conflict("ya existe un producto con SKU %s", req.SKU)
	}
	producto := model.Producto{
		SKU:         req.SKU,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		StockMinimo: req.StockMinimo,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, &producto); err != nil {
		return nil, err
	}
	return productoToResponse(&producto), nil
}

func (s *productoService) Obtener(ctx context.Context, id string) (*dto.ProductoResponse, error) {
	producto, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id string, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.SKU != producto.SKU {
		if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
			return nil, apierror.Conflict("ya existe un producto con SKU %s", req.SKU)
		}
	}
	producto.SKU = req.SKU
	producto.Nombre = req.Nombre
	producto.Descripcion = req.Descripcion
	producto.Precio = req.Precio
	producto.StockMinimo = req.StockMinimo
	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Desactivar(ctx context.Context, id string) error {
	producto, err := s.buscar(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, producto.ID)
}

func (s *productoService) buscar(ctx context.Context, id string) (*model.Producto, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, apierror.Validation("id de producto inválido")
	}
	producto, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return nil, apierror.NotFound("producto %s no encontrado", id)
	}
	return producto, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		StockMinimo: p.StockMinimo,
		Activo:      p.Activo,
	}
}
