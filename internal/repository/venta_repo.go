package repository

import (
	"context"
	"errors"

	"github.com/Henry-56/ferreteria/internal/dto"
	"github.com/Henry-56/ferreteria/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	// FindByIDForUpdateTx locks the sale header, serializing concurrent
	// anulación attempts on the same sale.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error)
	UpdateEstadoNotasTx(tx *gorm.DB, id uuid.UUID, estado string, notas *string) error
	// BloquearNumeracionTx takes the per-tipo advisory lock that serializes
	// comprobante numbering; held until the transaction ends.
	BloquearNumeracionTx(tx *gorm.DB, tipoComprobante string) error
	// UltimoNumeroComprobanteTx returns the highest assigned number for the
	// tipo, or "" when none exists. Call after BloquearNumeracionTx.
	UltimoNumeroComprobanteTx(tx *gorm.DB, tipoComprobante string) (string, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	TotalPorPeriodo(ctx context.Context, desde, hasta string) (decimal.Decimal, int64, error)
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Detalles.Producto").Preload("Cliente").Preload("Usuario").
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	// Detalles are loaded separately: FOR UPDATE cannot be combined with the
	// outer-joined preload.
	if err := tx.Where("venta_id = ?", id).Find(&v.Detalles).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) UpdateEstadoNotasTx(tx *gorm.DB, id uuid.UUID, estado string, notas *string) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Updates(map[string]interface{}{
		"estado": estado,
		"notas":  notas,
	}).Error
}

func (r *ventaRepo) BloquearNumeracionTx(tx *gorm.DB, tipoComprobante string) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "comprobante_"+tipoComprobante).Error
}

func (r *ventaRepo) UltimoNumeroComprobanteTx(tx *gorm.DB, tipoComprobante string) (string, error) {
	var numero string
	err := tx.Model(&model.Venta{}).
		Where("tipo_comprobante = ?", tipoComprobante).
		Order("numero_comprobante DESC").
		Limit(1).
		Pluck("numero_comprobante", &numero).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return numero, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(fecha) = ?", filter.Fecha)
	}
	if filter.TipoComprobante != "" {
		q = q.Where("tipo_comprobante = ?", filter.TipoComprobante)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Detalles.Producto").Preload("Cliente").
		Order("fecha DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) TotalPorPeriodo(ctx context.Context, desde, hasta string) (decimal.Decimal, int64, error) {
	var row struct {
		Total    decimal.Decimal
		Cantidad int64
	}
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS cantidad").
		Where("estado = ? AND DATE(fecha) BETWEEN ? AND ?", model.EstadoCompletada, desde, hasta).
		Scan(&row).Error
	return row.Total, row.Cantidad, err
}
