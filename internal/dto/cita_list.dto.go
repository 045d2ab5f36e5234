package dto

import (
	"time"

	"github.com/VitalSpaAR/spa-agenda/internal/models"
)

type CitaListDTO struct {
	ID             uint      `json:"id"`
	HoraInicio     time.Time `json:"hora_inicio"`
	HoraFin        time.Time `json:"hora_fin"`
	Box            int       `json:"box"`
	Color          string    `json:"color"`
	Estado         string    `json:"estado"`
	NombreCliente  string    `json:"nombre_cliente"`
	Tratamiento    string    `json:"tratamiento"`
	Subtratamiento string    `json:"subtratamiento"`
	EsMultiple     bool      `json:"es_multiple"`
	Sena           float64   `json:"sena"`
	Precio         float64   `json:"precio"`
}

func FromCita(cp *models.Cita) CitaListDTO {
	return CitaListDTO{
		ID:             cp.ID,
		HoraInicio:     cp.HoraInicio,
		HoraFin:        cp.HoraFin,
		Box:            cp.Box,
		Color:          cp.Color,
		Estado:         cp.Estado,
		NombreCliente:  cp.NombreCompleto,
		Tratamiento:    cp.Tratamiento.Nombre,
		Subtratamiento: cp.Subtratamiento.Nombre,
		EsMultiple:     cp.EsMultiple,
		Sena:           cp.Sena,
		Precio:         cp.Precio,
	}
}
