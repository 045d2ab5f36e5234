package models

import "time"

type Subtratamiento struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	TratamientoID uint `gorm:"uniqueIndex:idx_subtratamiento_nombre;not null" json:"tratamiento_id"`

	Nombre      string  `gorm:"size:100;uniqueIndex:idx_subtratamiento_nombre;not null" json:"nombre"`
	DuracionMin int     `gorm:"default:30" json:"duracion_min"`
	Precio      float64 `json:"precio"`
	Activo      bool    `gorm:"default:true" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
