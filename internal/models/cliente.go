package models

import "time"

// Cliente simple, sin login, identificado por DNI
type Cliente struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DNI            string `gorm:"size:20;uniqueIndex;not null" json:"dni"`
	NombreCompleto string `gorm:"size:100;not null" json:"nombre_completo"`
	Telefono       string `gorm:"size:20" json:"telefono"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
