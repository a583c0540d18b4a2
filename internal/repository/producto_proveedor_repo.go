package repository

import (
	"context"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoProveedorRepository manages the product↔supplier catalog links.
// Promotion and demotion of the preferred flag always happen inside one
// transaction driven by the catalog service.
type ProductoProveedorRepository interface {
	Find(ctx context.Context, productoID, proveedorID uuid.UUID) (*model.ProductoProveedor, error)
	ListPorProducto(ctx context.Context, productoID uuid.UUID) ([]model.ProductoProveedor, error)
	// Preferido returns the preferred link for a product, or gorm.ErrRecordNotFound.
	Preferido(ctx context.Context, productoID uuid.UUID) (*model.ProductoProveedor, error)
	UpsertTx(tx *gorm.DB, link *model.ProductoProveedor) error
	// DemoteOtrosTx clears es_preferido on every link for the product except
	// the given supplier's.
	DemoteOtrosTx(tx *gorm.DB, productoID, exceptProveedorID uuid.UUID) error
	Delete(ctx context.Context, productoID, proveedorID uuid.UUID) error
	DB() *gorm.DB
}

type productoProveedorRepo struct{ db *gorm.DB }

func NewProductoProveedorRepository(db *gorm.DB) ProductoProveedorRepository {
	return &productoProveedorRepo{db: db}
}

func (r *productoProveedorRepo) Find(ctx context.Context, productoID, proveedorID uuid.UUID) (*model.ProductoProveedor, error) {
	var link model.ProductoProveedor
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND proveedor_id = ?", productoID, proveedorID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *productoProveedorRepo) ListPorProducto(ctx context.Context, productoID uuid.UUID) ([]model.ProductoProveedor, error) {
	var links []model.ProductoProveedor
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("proveedor_id ASC").
		Find(&links).Error
	return links, err
}

func (r *productoProveedorRepo) Preferido(ctx context.Context, productoID uuid.UUID) (*model.ProductoProveedor, error) {
	var link model.ProductoProveedor
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND es_preferido = true", productoID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *productoProveedorRepo) UpsertTx(tx *gorm.DB, link *model.ProductoProveedor) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "producto_id"}, {Name: "proveedor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"codigo_proveedor", "costo_unidad", "dias_entrega", "es_preferido", "activo", "updated_at",
		}),
	}).Create(link).Error
}

func (r *productoProveedorRepo) DemoteOtrosTx(tx *gorm.DB, productoID, exceptProveedorID uuid.UUID) error {
	return tx.Model(&model.ProductoProveedor{}).
		Where("producto_id = ? AND proveedor_id <> ? AND es_preferido = true", productoID, exceptProveedorID).
		Update("es_preferido", false).Error
}

func (r *productoProveedorRepo) Delete(ctx context.Context, productoID, proveedorID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("producto_id = ? AND proveedor_id = ?", productoID, proveedorID).
		Delete(&model.ProductoProveedor{}).Error
}

func (r *productoProveedorRepo) DB() *gorm.DB { return r.db }
