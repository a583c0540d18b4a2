package repository

import (
	"context"
	"time"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CotizacionFilter scopes quotation listings.
type CotizacionFilter struct {
	ProveedorID *uuid.UUID
	// IncluirBorradores: by default drafts are hidden from general listings.
	IncluirBorradores bool
}

type CotizacionRepository interface {
	Create(ctx context.Context, c *model.Cotizacion) error
	// FindByID preloads the detail list.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error)
	List(ctx context.Context, filter CotizacionFilter) ([]model.Cotizacion, error)
	UpdateTx(tx *gorm.DB, c *model.Cotizacion) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoCotizacion) error
	// ReplaceDetallesTx deletes every detail of the quotation and inserts the
	// new list — clear-then-rebuild, orphans never survive.
	ReplaceDetallesTx(tx *gorm.DB, cotizacionID uuid.UUID, detalles []model.CotizacionDetalle) error
	UpdateDetalleTx(tx *gorm.DB, d *model.CotizacionDetalle) error
	// ListVencidas returns ENVIADO quotations whose expiration date passed.
	ListVencidas(ctx context.Context, hoy time.Time, limit int) ([]model.Cotizacion, error)
	DB() *gorm.DB
}

type cotizacionRepo struct{ db *gorm.DB }

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository { return &cotizacionRepo{db: db} }

func (r *cotizacionRepo) Create(ctx context.Context, c *model.Cotizacion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cotizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := r.db.WithContext(ctx).Preload("Detalles").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cotizacionRepo) List(ctx context.Context, filter CotizacionFilter) ([]model.Cotizacion, error) {
	q := r.db.WithContext(ctx).Preload("Detalles").Order("created_at DESC")
	if filter.ProveedorID != nil {
		q = q.Where("proveedor_id = ?", *filter.ProveedorID)
	}
	if !filter.IncluirBorradores {
		q = q.Where("estado <> ?", model.CotBorrador)
	}
	var cotizaciones []model.Cotizacion
	err := q.Find(&cotizaciones).Error
	return cotizaciones, err
}

func (r *cotizacionRepo) UpdateTx(tx *gorm.DB, c *model.Cotizacion) error {
	return tx.Omit("Detalles").Save(c).Error
}

func (r *cotizacionRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoCotizacion) error {
	return tx.Model(&model.Cotizacion{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *cotizacionRepo) ReplaceDetallesTx(tx *gorm.DB, cotizacionID uuid.UUID, detalles []model.CotizacionDetalle) error {
	if err := tx.Where("cotizacion_id = ?", cotizacionID).Delete(&model.CotizacionDetalle{}).Error; err != nil {
		return err
	}
	if len(detalles) == 0 {
		return nil
	}
	for i := range detalles {
		detalles[i].CotizacionID = cotizacionID
	}
	return tx.Create(&detalles).Error
}

func (r *cotizacionRepo) UpdateDetalleTx(tx *gorm.DB, d *model.CotizacionDetalle) error {
	return tx.Save(d).Error
}

func (r *cotizacionRepo) ListVencidas(ctx context.Context, hoy time.Time, limit int) ([]model.Cotizacion, error) {
	var cotizaciones []model.Cotizacion
	err := r.db.WithContext(ctx).
		Where("estado = ? AND fecha_vence IS NOT NULL AND fecha_vence < ?", model.CotEnviado, hoy).
		Limit(limit).
		Find(&cotizaciones).Error
	return cotizaciones, err
}

func (r *cotizacionRepo) DB() *gorm.DB { return r.db }
