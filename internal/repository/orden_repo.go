package repository

import (
	"context"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrdenFilter scopes purchase-order listings. A nil ProveedorID means the
// caller may see every order.
type OrdenFilter struct {
	ProveedorID *uuid.UUID
	Estado      *model.EstadoOrden
}

type OrdenRepository interface {
	Create(ctx context.Context, o *model.OrdenCompra) error
	CreateTx(tx *gorm.DB, o *model.OrdenCompra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error)
	List(ctx context.Context, filter OrdenFilter) ([]model.OrdenCompra, error)
	UpdateTx(tx *gorm.DB, o *model.OrdenCompra) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoOrden) error
	ReplaceDetallesTx(tx *gorm.DB, ordenID uuid.UUID, detalles []model.OrdenCompraDetalle) error
	Delete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) Create(ctx context.Context, o *model.OrdenCompra) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *ordenRepo) CreateTx(tx *gorm.DB, o *model.OrdenCompra) error {
	return tx.Create(o).Error
}

func (r *ordenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error) {
	var o model.OrdenCompra
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Preload("Proveedor").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenRepo) List(ctx context.Context, filter OrdenFilter) ([]model.OrdenCompra, error) {
	q := r.db.WithContext(ctx).Preload("Detalles").Order("fecha_orden DESC, created_at DESC")
	if filter.ProveedorID != nil {
		q = q.Where("proveedor_id = ?", *filter.ProveedorID)
	}
	if filter.Estado != nil {
		q = q.Where("estado = ?", *filter.Estado)
	}
	var ordenes []model.OrdenCompra
	err := q.Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) UpdateTx(tx *gorm.DB, o *model.OrdenCompra) error {
	return tx.Omit("Detalles", "Proveedor").Save(o).Error
}

func (r *ordenRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoOrden) error {
	return tx.Model(&model.OrdenCompra{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ordenRepo) ReplaceDetallesTx(tx *gorm.DB, ordenID uuid.UUID, detalles []model.OrdenCompraDetalle) error {
	if err := tx.Where("orden_compra_id = ?", ordenID).Delete(&model.OrdenCompraDetalle{}).Error; err != nil {
		return err
	}
	if len(detalles) == 0 {
		return nil
	}
	for i := range detalles {
		detalles[i].OrdenCompraID = ordenID
	}
	return tx.Create(&detalles).Error
}

func (r *ordenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Detalles").Delete(&model.OrdenCompra{ID: id}).Error
}

func (r *ordenRepo) DB() *gorm.DB { return r.db }
