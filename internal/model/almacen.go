package model

import (
	"time"

	"github.com/google/uuid"
)

// Almacen is a physical warehouse. Exactly one warehouse should be marked
// Principal: it is the receiving destination for completed purchase orders.
type Almacen struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Ubicacion *string
	Principal bool `gorm:"not null;default:false"`
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Almacen) TableName() string { return "almacenes" }
