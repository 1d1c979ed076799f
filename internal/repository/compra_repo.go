package repository

import (
	"context"

	"github.com/Henry-56/ferreteria/internal/dto"
	"github.com/Henry-56/ferreteria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompraRepository interface {
	CreateTx(tx *gorm.DB, c *model.Compra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error)
	List(ctx context.Context, filter dto.CompraFilter) ([]model.Compra, int64, error)
	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) DB() *gorm.DB { return r.db }

func (r *compraRepo) CreateTx(tx *gorm.DB, c *model.Compra) error {
	return tx.Create(c).Error
}

func (r *compraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error) {
	var c model.Compra
	err := r.db.WithContext(ctx).
		Preload("Detalles.Producto").Preload("Proveedor").Preload("Usuario").
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *compraRepo) List(ctx context.Context, filter dto.CompraFilter) ([]model.Compra, int64, error) {
	var compras []model.Compra
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Compra{})
	if filter.ProveedorID != "" {
		q = q.Where("proveedor_id = ?", filter.ProveedorID)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(fecha) = ?", filter.Fecha)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Detalles.Producto").Preload("Proveedor").
		Order("fecha DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&compras).Error
	return compras, total, err
}
