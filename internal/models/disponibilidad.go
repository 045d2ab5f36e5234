package models

import (
	"strconv"
	"strings"
	"time"
)

// Disponibilidad define una ventana en la que un tratamiento se ofrece:
// rango de fechas, rango horario, boxes habilitados y cupo simultáneo.
type Disponibilidad struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	TratamientoID uint `gorm:"index;not null" json:"tratamiento_id"`

	FechaDesde time.Time `gorm:"type:date" json:"fecha_desde"`
	FechaHasta time.Time `gorm:"type:date" json:"fecha_hasta"`

	HoraDesde string `gorm:"size:5" json:"hora_desde"` // HH:MM
	HoraHasta string `gorm:"size:5" json:"hora_hasta"` // HH:MM

	// Lista de boxes habilitados, ej. "1,2,5"
	Boxes string `gorm:"size:50" json:"boxes"`

	CupoSimultaneo int  `gorm:"default:1" json:"cupo_simultaneo"`
	Activo         bool `gorm:"default:true" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Disponibilidad) BoxesList() []int {
	var boxes []int
	for _, part := range strings.Split(d.Boxes, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			boxes = append(boxes, n)
		}
	}
	return boxes
}

func (d *Disponibilidad) IncluyeBox(box int) bool {
	boxes := d.BoxesList()
	if len(boxes) == 0 {
		return true
	}
	for _, b := range boxes {
		if b == box {
			return true
		}
	}
	return false
}
