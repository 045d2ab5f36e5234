package cita

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/VitalSpaAR/spa-agenda/internal/models"
)

func hhmm(t *testing.T, dia string, hora string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", dia+" "+hora)
	if err != nil {
		t.Fatalf("hora inválida %q: %v", hora, err)
	}
	return ts
}

func TestSolapan(t *testing.T) {
	dia := "2025-03-10"

	tests := []struct {
		name          string
		inicio1, fin1 string
		inicio2, fin2 string
		want          bool
	}{
		{"mismo rango", "10:00", "11:00", "10:00", "11:00", true},
		{"solapamiento parcial", "10:00", "11:00", "10:30", "11:30", true},
		{"uno contenido en el otro", "10:00", "12:00", "10:30", "11:00", true},
		{"contenedor contra contenido", "10:30", "11:00", "10:00", "12:00", true},
		{"espalda con espalda", "10:00", "11:00", "11:00", "12:00", false},
		{"espalda con espalda invertido", "11:00", "12:00", "10:00", "11:00", false},
		{"disjuntos", "09:00", "10:00", "14:00", "15:00", false},
		{"toque de un minuto", "10:00", "11:00", "10:59", "11:30", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Solapan(
				hhmm(t, dia, tc.inicio1), hhmm(t, dia, tc.fin1),
				hhmm(t, dia, tc.inicio2), hhmm(t, dia, tc.fin2),
			)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSolapanEsSimetrico(t *testing.T) {
	dia := "2025-03-10"
	a1, a2 := hhmm(t, dia, "10:00"), hhmm(t, dia, "11:00")
	b1, b2 := hhmm(t, dia, "10:30"), hhmm(t, dia, "11:30")

	assert.Equal(t, Solapan(a1, a2, b1, b2), Solapan(b1, b2, a1, a2))
}

func TestVentanaCubre(t *testing.T) {
	fecha := func(s string) time.Time {
		ts, _ := time.Parse("2006-01-02", s)
		return ts
	}

	ventana := models.Disponibilidad{
		TratamientoID:  1,
		FechaDesde:     fecha("2025-03-01"),
		FechaHasta:     fecha("2025-03-31"),
		HoraDesde:      "10:00",
		HoraHasta:      "18:00",
		Boxes:          "1,2,5",
		CupoSimultaneo: 2,
		Activo:         true,
	}

	t.Run("slot dentro de la ventana", func(t *testing.T) {
		assert.True(t, VentanaCubre(&ventana, hhmm(t, "2025-03-10", "10:00"), hhmm(t, "2025-03-10", "11:00"), 2))
	})

	t.Run("hora fin se pasa del cierre", func(t *testing.T) {
		assert.False(t, VentanaCubre(&ventana, hhmm(t, "2025-03-10", "17:30"), hhmm(t, "2025-03-10", "18:30"), 2))
	})

	t.Run("empieza antes de la apertura", func(t *testing.T) {
		assert.False(t, VentanaCubre(&ventana, hhmm(t, "2025-03-10", "09:00"), hhmm(t, "2025-03-10", "10:00"), 2))
	})

	t.Run("fecha fuera del rango", func(t *testing.T) {
		assert.False(t, VentanaCubre(&ventana, hhmm(t, "2025-04-01", "10:00"), hhmm(t, "2025-04-01", "11:00"), 2))
	})

	t.Run("box no habilitado", func(t *testing.T) {
		assert.False(t, VentanaCubre(&ventana, hhmm(t, "2025-03-10", "10:00"), hhmm(t, "2025-03-10", "11:00"), 3))
	})

	t.Run("ventana inactiva no cubre nada", func(t *testing.T) {
		inactiva := ventana
		inactiva.Activo = false
		assert.False(t, VentanaCubre(&inactiva, hhmm(t, "2025-03-10", "10:00"), hhmm(t, "2025-03-10", "11:00"), 2))
	})

	t.Run("sin boxes declarados habilita cualquiera", func(t *testing.T) {
		abierta := ventana
		abierta.Boxes = ""
		assert.True(t, VentanaCubre(&abierta, hhmm(t, "2025-03-10", "10:00"), hhmm(t, "2025-03-10", "11:00"), 8))
	})
}
