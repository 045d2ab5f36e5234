package cita

import "time"

// Duración por defecto cuando el subtratamiento no define una
const DuracionDefaultMin = 30

type DisponibilidadInput struct {
	TratamientoID uint // 0 = no chequear ventanas
	Box           int
	Inicio        time.Time
	Fin           time.Time
	ExcluirCitaID *uint
}

type Slot struct {
	Box    int    `json:"box"`
	Inicio string `json:"inicio"`
	Fin    string `json:"fin"`
}
