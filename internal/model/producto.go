package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto represents a catalog item. Stock is NEVER written directly by
// handlers or other services — every change goes through the inventario
// service so that mov_inventarios stays a complete audit trail.
type Producto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"index;not null"`
	Descripcion  *string
	RubroID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU          *string         `gorm:"column:sku;uniqueIndex"`
	CodigoBarras *string         `gorm:"uniqueIndex"`
	PrecioCompra decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// CostoPromedio is the weighted average cost, recomputed on every compra.
	CostoPromedio decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Stock         int             `gorm:"not null;default:0"`
	StockMinimo   int             `gorm:"not null;default:5"`
	Unidad        string          `gorm:"not null;default:'unidad'"`
	ProveedorID   *uuid.UUID      `gorm:"type:uuid;index"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Rubro     *Rubro     `gorm:"foreignKey:RubroID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (Producto) TableName() string { return "productos" }

// CostoUnitario is the cost snapshot recorded on each sale line:
// average cost when available, purchase price as fallback.
func (p *Producto) CostoUnitario() decimal.Decimal {
	if !p.CostoPromedio.IsZero() {
		return p.CostoPromedio
	}
	return p.PrecioCompra
}
