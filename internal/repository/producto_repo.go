package repository

import (
	"context"

	"github.com/Henry-56/ferreteria/internal/dto"
	"github.com/Henry-56/ferreteria/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	// CreateTx inserts inside a caller-provided transaction, so the initial
	// stock movement can land atomically with the product row.
	CreateTx(tx *gorm.DB, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// FindByIDForUpdateTx loads the product under SELECT ... FOR UPDATE,
	// serializing concurrent stock movements on the same row. Must run inside
	// the transaction that will write the stock change.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	// UpdateStockTx sets the absolute stock value. Only the inventario service
	// calls this, while holding the row lock.
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, stock int) error
	// UpdateCostosTx refreshes precio_compra and costo_promedio after a compra.
	UpdateCostosTx(tx *gorm.DB, id uuid.UUID, precioCompra, costoPromedio decimal.Decimal) error

	// Stock reporting
	BajoStock(ctx context.Context) ([]model.Producto, error)
	Agotados(ctx context.Context) ([]model.Producto, error)
	// ValorInventario sums stock × cost (average cost, purchase price as
	// fallback) over active products.
	ValorInventario(ctx context.Context) (decimal.Decimal, int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) CreateTx(tx *gorm.DB, p *model.Producto) error {
	return tx.Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Rubro").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("codigo_barras = ? AND activo = true", barcode).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	// Activo filter: "false" = inactivos, "all" = todos, anything else = activos (default)
	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.Barcode != "" {
		q = q.Where("codigo_barras = ?", filter.Barcode)
	}
	if filter.RubroID != "" {
		q = q.Where("rubro_id = ?", filter.RubroID)
	}
	if filter.ProveedorID != "" {
		q = q.Where("proveedor_id = ?", filter.ProveedorID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Rubro").Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *productoRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, stock int) error {
	return tx.Model(&model.Producto{}).Where("id = ?", id).Update("stock", stock).Error
}

func (r *productoRepo) UpdateCostosTx(tx *gorm.DB, id uuid.UUID, precioCompra, costoPromedio decimal.Decimal) error {
	return tx.Model(&model.Producto{}).Where("id = ?", id).Updates(map[string]interface{}{
		"precio_compra":  precioCompra,
		"costo_promedio": costoPromedio,
	}).Error
}

func (r *productoRepo) BajoStock(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("activo = true AND stock <= stock_minimo").
		Preload("Rubro").
		Order("stock ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Agotados(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("activo = true AND stock = 0").
		Preload("Rubro").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) ValorInventario(ctx context.Context) (decimal.Decimal, int64, error) {
	var row struct {
		Valor decimal.Decimal
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Select("COALESCE(SUM(stock * (CASE WHEN costo_promedio > 0 THEN costo_promedio ELSE precio_compra END)), 0) AS valor, COUNT(*) AS total").
		Where("activo = true").
		Scan(&row).Error
	return row.Valor, row.Total, err
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
