package model

import (
	"time"

	"github.com/google/uuid"
)

// Rubro is a product category (ferretería, pinturas, electricidad, ...).
type Rubro struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Rubro) TableName() string { return "rubros" }
