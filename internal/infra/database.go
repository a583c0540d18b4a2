package infra

import (
	"fmt"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and brings the
// schema up to date via AutoMigrate plus a few idempotent SQL patches that
// GORM cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates all tables. Also used by integration tests
// against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on PostgreSQL < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Producto{},
		&model.Proveedor{},
		&model.Almacen{},
		&model.Lote{},
		&model.MovimientoInventario{},
		&model.ProductoProveedor{},
		&model.Cotizacion{},
		&model.CotizacionDetalle{},
		&model.OrdenCompra{},
		&model.OrdenCompraDetalle{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate does not cover.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Storage-level backstop for the at-most-one-preferred invariant.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_producto_preferido') THEN
		    CREATE UNIQUE INDEX uq_producto_preferido
		        ON producto_proveedores (producto_id)
		        WHERE es_preferido = true;
		  END IF;
		END $$`,
		// The expiration sweep only scans sent quotations with a deadline.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_cotizaciones_vencimiento') THEN
		    CREATE INDEX idx_cotizaciones_vencimiento
		        ON cotizaciones (fecha_vence)
		        WHERE estado = 'ENVIADO' AND fecha_vence IS NOT NULL;
		  END IF;
		END $$`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
