package models

import (
	"time"

	"github.com/google/uuid"
)

type Cita struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	Codigo uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"codigo"`

	ClienteID uint    `json:"cliente_id"`
	Cliente   Cliente `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"cliente"`

	// Snapshot del cliente al momento de reservar
	NombreCompleto string `gorm:"size:100" json:"nombre_completo"`
	DNI            string `gorm:"size:20" json:"dni"`
	Telefono       string `gorm:"size:20" json:"telefono"`

	TratamientoID uint        `json:"tratamiento_id"`
	Tratamiento   Tratamiento `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"tratamiento"`

	SubtratamientoID uint           `json:"subtratamiento_id"`
	Subtratamiento   Subtratamiento `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"subtratamiento"`

	Fecha      time.Time `gorm:"type:date" json:"fecha"`
	HoraInicio time.Time `json:"hora_inicio"`
	HoraFin    time.Time `json:"hora_fin"`

	Box   int    `gorm:"not null" json:"box"`
	Color string `gorm:"size:10" json:"color"`

	Precio float64 `json:"precio"`
	Sena   float64 `json:"sena"`
	Notas  string  `gorm:"size:255" json:"notas"`

	Estado string `gorm:"size:20;default:'reservado'" json:"estado"`

	EsMultiple    bool          `gorm:"default:false" json:"es_multiple"`
	Participantes []CitaCliente `gorm:"constraint:OnDelete:CASCADE;" json:"participantes,omitempty"`

	ConfirmadaAt *time.Time `json:"confirmada_at"`
	CompletadaAt *time.Time `json:"completada_at"`
	CanceladaAt  *time.Time `json:"cancelada_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
