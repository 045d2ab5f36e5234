package cita

import (
	"time"

	"github.com/VitalSpaAR/spa-agenda/internal/models"
)

// Solapan aplica el test de intervalos semiabiertos [inicio, fin):
// dos rangos chocan sii inicio1 < fin2 && inicio2 < fin1.
// Una cita que termina 11:00 no choca con otra que empieza 11:00.
func Solapan(inicio1, fin1, inicio2, fin2 time.Time) bool {
	return inicio1.Before(fin2) && inicio2.Before(fin1)
}

// VentanaCubre indica si una ventana de disponibilidad habilita
// el slot pedido: fecha dentro del rango, horario dentro del rango
// y box incluido en la lista de boxes de la ventana.
func VentanaCubre(v *models.Disponibilidad, inicio, fin time.Time, box int) bool {
	if !v.Activo {
		return false
	}

	fecha := time.Date(inicio.Year(), inicio.Month(), inicio.Day(), 0, 0, 0, 0, inicio.Location())
	desde := time.Date(v.FechaDesde.Year(), v.FechaDesde.Month(), v.FechaDesde.Day(), 0, 0, 0, 0, inicio.Location())
	hasta := time.Date(v.FechaHasta.Year(), v.FechaHasta.Month(), v.FechaHasta.Day(), 0, 0, 0, 0, inicio.Location())

	if fecha.Before(desde) || fecha.After(hasta) {
		return false
	}

	// HH:MM con cero a la izquierda compara bien como string
	if v.HoraDesde != "" && inicio.Format("15:04") < v.HoraDesde {
		return false
	}
	if v.HoraHasta != "" && fin.Format("15:04") > v.HoraHasta {
		return false
	}

	return v.IncluyeBox(box)
}
