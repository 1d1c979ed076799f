package repository

import (
	"context"
	"time"

	"github.com/Henry-56/ferreteria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovInventarioFilter defines filters for listing ledger entries.
type MovInventarioFilter struct {
	ProductoID     *uuid.UUID
	TipoMovimiento string
	Referencia     string
	Desde          *time.Time
	Hasta          *time.Time
	Page           int
	Limit          int
}

// MovInventarioRepository is the access contract for the append-only stock
// ledger. There is deliberately no Update or Delete.
type MovInventarioRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovInventario) error
	List(ctx context.Context, filter MovInventarioFilter) ([]model.MovInventario, int64, error)
	// UltimoPorProducto returns the most recent entry for one product.
	UltimoPorProducto(ctx context.Context, productoID uuid.UUID) (*model.MovInventario, error)
}

type movInventarioRepo struct{ db *gorm.DB }

func NewMovInventarioRepository(db *gorm.DB) MovInventarioRepository {
	return &movInventarioRepo{db: db}
}

func (r *movInventarioRepo) CreateTx(tx *gorm.DB, m *model.MovInventario) error {
	return tx.Create(m).Error
}

func (r *movInventarioRepo) List(ctx context.Context, filter MovInventarioFilter) ([]model.MovInventario, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MovInventario{})
	if filter.ProductoID != nil {
		q = q.Where("producto_id = ?", *filter.ProductoID)
	}
	if filter.TipoMovimiento != "" {
		q = q.Where("tipo_movimiento = ?", filter.TipoMovimiento)
	}
	if filter.Referencia != "" {
		q = q.Where("referencia = ?", filter.Referencia)
	}
	if filter.Desde != nil && filter.Hasta != nil {
		q = q.Where("fecha BETWEEN ? AND ?", *filter.Desde, *filter.Hasta)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	offset := (page - 1) * limit

	var movimientos []model.MovInventario
	err := q.Preload("Producto").Preload("Usuario").
		Order("fecha DESC").Offset(offset).Limit(limit).
		Find(&movimientos).Error
	return movimientos, total, err
}

func (r *movInventarioRepo) UltimoPorProducto(ctx context.Context, productoID uuid.UUID) (*model.MovInventario, error) {
	var m model.MovInventario
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("fecha DESC, created_at DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}
