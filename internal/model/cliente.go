package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente stores an optional sale counterparty.
// TipoCliente: "minorista" | "mayorista" | "corporativo"
type Cliente struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre            string    `gorm:"index;not null"`
	RucDni            *string   `gorm:"column:ruc_dni;uniqueIndex"`
	Direccion         *string
	Telefono          *string
	Email             *string
	TipoCliente       string          `gorm:"type:varchar(20);not null;default:'minorista'"`
	CreditoDisponible decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Activo            bool            `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Cliente) TableName() string { return "clientes" }
