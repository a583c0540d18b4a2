package repository

import (
	"context"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlmacenRepository interface {
	Create(ctx context.Context, a *model.Almacen) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Almacen, error)
	// FindPrincipal returns the receiving warehouse for completed orders.
	FindPrincipal(ctx context.Context) (*model.Almacen, error)
	List(ctx context.Context) ([]model.Almacen, error)
	Update(ctx context.Context, a *model.Almacen) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type almacenRepo struct{ db *gorm.DB }

func NewAlmacenRepository(db *gorm.DB) AlmacenRepository { return &almacenRepo{db: db} }

func (r *almacenRepo) Create(ctx context.Context, a *model.Almacen) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *almacenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Almacen, error) {
	var a model.Almacen
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *almacenRepo) FindPrincipal(ctx context.Context) (*model.Almacen, error) {
	var a model.Almacen
	err := r.db.WithContext(ctx).Where("principal = true AND activo = true").First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *almacenRepo) List(ctx context.Context) ([]model.Almacen, error) {
	var almacenes []model.Almacen
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&almacenes).Error
	return almacenes, err
}

func (r *almacenRepo) Update(ctx context.Context, a *model.Almacen) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *almacenRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Almacen{}).Where("id = ?", id).Update("activo", false).Error
}
