package cita

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
)

func TestTransicionesDeEstado(t *testing.T) {
	tests := []struct {
		name    string
		check   func(Estado) error
		desde   Estado
		permite bool
	}{
		{"confirmar desde reservado", CanConfirmar, EstadoReservado, true},
		{"confirmar desde confirmado", CanConfirmar, EstadoConfirmado, false},
		{"confirmar desde completado", CanConfirmar, EstadoCompletado, false},
		{"confirmar desde cancelado", CanConfirmar, EstadoCancelado, false},

		{"completar desde confirmado", CanCompletar, EstadoConfirmado, true},
		{"completar desde reservado", CanCompletar, EstadoReservado, false},
		{"completar desde cancelado", CanCompletar, EstadoCancelado, false},

		{"cancelar desde reservado", CanCancelar, EstadoReservado, true},
		{"cancelar desde confirmado", CanCancelar, EstadoConfirmado, true},
		{"cancelar desde completado", CanCancelar, EstadoCompletado, false},
		{"cancelar dos veces", CanCancelar, EstadoCancelado, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.check(tc.desde)
			if tc.permite {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			code, ok := httperr.IsAnyBusiness(err)
			require.True(t, ok)
			assert.Equal(t, "invalid_state", code)
		})
	}
}

func TestAccionesDeDominio(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("ciclo completo reservado-confirmado-completado", func(t *testing.T) {
		cp := &models.Cita{Estado: string(EstadoReservado)}

		require.NoError(t, Confirmar(cp, now))
		assert.Equal(t, string(EstadoConfirmado), cp.Estado)
		require.NotNil(t, cp.ConfirmadaAt)
		assert.Equal(t, now, *cp.ConfirmadaAt)

		require.NoError(t, Completar(cp, now))
		assert.Equal(t, string(EstadoCompletado), cp.Estado)
		require.NotNil(t, cp.CompletadaAt)
	})

	t.Run("cancelar una reservada", func(t *testing.T) {
		cp := &models.Cita{Estado: string(EstadoReservado)}

		require.NoError(t, Cancelar(cp, now))
		assert.Equal(t, string(EstadoCancelado), cp.Estado)
		require.NotNil(t, cp.CanceladaAt)
	})

	t.Run("completar sin confirmar falla y no muta", func(t *testing.T) {
		cp := &models.Cita{Estado: string(EstadoReservado)}

		err := Completar(cp, now)
		require.Error(t, err)
		assert.Equal(t, string(EstadoReservado), cp.Estado)
		assert.Nil(t, cp.CompletadaAt)
	})
}

func TestEstadoInicialYValidez(t *testing.T) {
	assert.Equal(t, EstadoReservado, EstadoInicial())

	assert.True(t, EstadoValido(EstadoReservado))
	assert.True(t, EstadoValido(EstadoCancelado))
	assert.False(t, EstadoValido(Estado("pendiente")))
	assert.False(t, EstadoValido(Estado("")))
}

func TestBoxValido(t *testing.T) {
	assert.True(t, BoxValido(1))
	assert.True(t, BoxValido(8))
	assert.False(t, BoxValido(0))
	assert.False(t, BoxValido(9))
	assert.False(t, BoxValido(-1))
}

func TestColorParaTratamiento(t *testing.T) {
	// determinista e insensible a mayúsculas y espacios
	assert.Equal(t, ColorParaTratamiento("Masajes"), ColorParaTratamiento("  masajes "))

	color := ColorParaTratamiento("Limpieza facial")
	assert.Contains(t, paleta, color)
}
