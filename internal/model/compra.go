package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compra is a purchase header (stock intake from a proveedor). Created in one
// transaction with its detalles and the per-line entrada movements.
type Compra struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha          time.Time       `gorm:"not null;index"`
	UsuarioID      uuid.UUID       `gorm:"type:uuid;not null"`
	ProveedorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	NumeroFactura  *string         `gorm:"type:varchar(50)"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Impuesto       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado         string          `gorm:"type:varchar(20);not null;default:'completada'"`
	Notas          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Detalles  []DetalleCompra `gorm:"foreignKey:CompraID"`
	Proveedor *Proveedor      `gorm:"foreignKey:ProveedorID"`
	Usuario   *Usuario        `gorm:"foreignKey:UsuarioID"`
}

func (Compra) TableName() string { return "compras" }

// DetalleCompra is one purchase line. Immutable after creation.
type DetalleCompra struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetalleCompra) TableName() string { return "detalle_compras" }
