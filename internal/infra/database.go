package infra

import (
	"fmt"

	"github.com/Henry-56/ferreteria/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, enables
// gen_random_uuid() and runs AutoMigrate for the full schema.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
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

// RunMigrations creates or updates all tables. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Rubro{},
		&model.Proveedor{},
		&model.Cliente{},
		&model.Usuario{},
		&model.Producto{},
		&model.MovInventario{},
		&model.Venta{},
		&model.DetalleVenta{},
		&model.Compra{},
		&model.DetalleCompra{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	// Stock can never go negative, even if a future code path bypasses the
	// application-level check.
	if err := db.Exec(`DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_productos_stock_no_negativo') THEN
    ALTER TABLE productos ADD CONSTRAINT chk_productos_stock_no_negativo CHECK (stock >= 0);
  END IF;
END $$`).Error; err != nil {
		return fmt.Errorf("stock check constraint: %w", err)
	}

	return nil
}
