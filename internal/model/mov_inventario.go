package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement kinds. Entrada and salida carry the magnitude of the change;
// ajuste carries |stock_nuevo - stock_anterior| with the target set directly.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
	MovimientoAjuste  = "ajuste"
)

// Reference kinds — what triggered the movement.
const (
	ReferenciaVenta          = "venta"
	ReferenciaCompra         = "compra"
	ReferenciaAjusteManual   = "ajuste_manual"
	ReferenciaAnulacionVenta = "anulacion_venta"
)

// MovInventario is one entry in the append-only stock ledger. Rows are created
// exactly once per stock-affecting event and never updated or deleted.
// Invariant: StockNuevo - StockAnterior equals the signed quantity implied by
// TipoMovimiento, and StockNuevo equals productos.stock at commit time.
type MovInventario struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UsuarioID      uuid.UUID `gorm:"type:uuid;not null"`
	TipoMovimiento string    `gorm:"type:varchar(20);not null"`
	Cantidad       int       `gorm:"not null"`
	StockAnterior  int       `gorm:"not null"`
	StockNuevo     int       `gorm:"not null"`
	Referencia     string    `gorm:"type:varchar(30);not null"`
	// ReferenciaID links to the originating venta or compra when applicable.
	ReferenciaID *uuid.UUID `gorm:"type:uuid;index"`
	Motivo       string
	Fecha        time.Time `gorm:"not null;index"`
	CreatedAt    time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
	Usuario  *Usuario  `gorm:"foreignKey:UsuarioID"`
}

func (MovInventario) TableName() string { return "mov_inventarios" }
