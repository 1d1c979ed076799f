package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Comprobante types. The numbering prefix is B/F/T respectively.
const (
	ComprobanteBoleta  = "boleta"
	ComprobanteFactura = "factura"
	ComprobanteTicket  = "ticket"
)

// Operation states shared by ventas and compras.
const (
	EstadoCompletada = "completada"
	EstadoCancelada  = "cancelada"
	EstadoPendiente  = "pendiente"
)

// Venta is a sale header. Created with estado=completada in one transaction
// together with its detalles and the per-line stock movements; the only
// mutation afterwards is the anulación (estado→cancelada, notas appended).
type Venta struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha     time.Time  `gorm:"not null;index"`
	UsuarioID uuid.UUID  `gorm:"type:uuid;not null"`
	ClienteID *uuid.UUID `gorm:"type:uuid;index"`
	// TipoComprobante: boleta | factura | ticket.
	TipoComprobante string `gorm:"type:varchar(20);not null;default:'ticket';uniqueIndex:uni_ventas_comprobante"`
	// NumeroComprobante is sequential per tipo: {B|F|T}-{YYYYMM}-{000001}.
	NumeroComprobante string          `gorm:"type:varchar(50);not null;uniqueIndex:uni_ventas_comprobante"`
	MetodoPago        string          `gorm:"type:varchar(20);not null;default:'efectivo'"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Impuesto          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado            string          `gorm:"type:varchar(20);not null;default:'completada'"`
	Notas             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Detalles []DetalleVenta `gorm:"foreignKey:VentaID"`
	Usuario  *Usuario       `gorm:"foreignKey:UsuarioID"`
	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
}

func (Venta) TableName() string { return "ventas" }

// DetalleVenta is one sale line. Immutable after creation — corrections happen
// via full anulación plus a new sale, never line edits.
type DetalleVenta struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad          int             `gorm:"not null"`
	PrecioUnitario    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DescuentoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// CostoUnitario snapshots the product cost at sale time.
	CostoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Utilidad      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt     time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetalleVenta) TableName() string { return "detalle_ventas" }
