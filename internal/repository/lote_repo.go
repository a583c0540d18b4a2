package repository

import (
	"context"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoteRepository is the data access contract for inventory lots. The ...Tx
// variants run against a live transaction; the ledger's read-modify-write on
// a lot must go through FindByIDForUpdateTx so concurrent writers serialize
// on the row lock.
type LoteRepository interface {
	Create(ctx context.Context, l *model.Lote) error
	CreateTx(tx *gorm.DB, l *model.Lote) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error)
	FindByClave(ctx context.Context, productoID, almacenID uuid.UUID, numeroLote string) (*model.Lote, error)
	// FindByIDForUpdateTx reads the lot under SELECT ... FOR UPDATE.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Lote, error)
	FindByClaveForUpdateTx(tx *gorm.DB, productoID, almacenID uuid.UUID, numeroLote string) (*model.Lote, error)
	UpdateCantidadTx(tx *gorm.DB, id uuid.UUID, cantidad int) error
	ListByProducto(ctx context.Context, productoID uuid.UUID) ([]model.Lote, error)
	// TotalStock sums cantidad over all lots of a product.
	TotalStock(ctx context.Context, productoID uuid.UUID) (int, error)
	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type loteRepo struct{ db *gorm.DB }

func NewLoteRepository(db *gorm.DB) LoteRepository { return &loteRepo{db: db} }

func (r *loteRepo) Create(ctx context.Context, l *model.Lote) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *loteRepo) CreateTx(tx *gorm.DB, l *model.Lote) error {
	return tx.Create(l).Error
}

func (r *loteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error) {
	var l model.Lote
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *loteRepo) FindByClave(ctx context.Context, productoID, almacenID uuid.UUID, numeroLote string) (*model.Lote, error) {
	var l model.Lote
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND almacen_id = ? AND numero_lote = ?", productoID, almacenID, numeroLote).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *loteRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Lote, error) {
	var l model.Lote
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *loteRepo) FindByClaveForUpdateTx(tx *gorm.DB, productoID, almacenID uuid.UUID, numeroLote string) (*model.Lote, error) {
	var l model.Lote
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("producto_id = ? AND almacen_id = ? AND numero_lote = ?", productoID, almacenID, numeroLote).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *loteRepo) UpdateCantidadTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	return tx.Model(&model.Lote{}).Where("id = ?", id).Update("cantidad", cantidad).Error
}

func (r *loteRepo) ListByProducto(ctx context.Context, productoID uuid.UUID) ([]model.Lote, error) {
	var lotes []model.Lote
	err := r.db.WithContext(ctx).Where("producto_id = ?", productoID).Order("created_at ASC").Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) TotalStock(ctx context.Context, productoID uuid.UUID) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).Model(&model.Lote{}).
		Select("SUM(cantidad)").
		Where("producto_id = ?", productoID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *loteRepo) DB() *gorm.DB { return r.db }
