package models

import "time"

// CitaCliente vincula participantes a una cita múltiple,
// cada uno con su propio precio y seña.
type CitaCliente struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	CitaID uint `gorm:"index;not null" json:"cita_id"`

	ClienteID uint    `json:"cliente_id"`
	Cliente   Cliente `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"cliente"`

	Precio float64 `json:"precio"`
	Sena   float64 `json:"sena"`

	CreatedAt time.Time `json:"created_at"`
}
