package models

import "time"

type Tratamiento struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Nombre      string `gorm:"size:100;uniqueIndex;not null" json:"nombre"`
	Descripcion string `gorm:"size:255" json:"descripcion"`
	FotoURL     string `gorm:"size:255" json:"foto_url"`

	Subtratamientos []Subtratamiento `gorm:"constraint:OnDelete:CASCADE;" json:"subtratamientos"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
