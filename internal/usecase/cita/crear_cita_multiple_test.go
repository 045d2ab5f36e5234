package cita

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
)

func TestCrearCitaMultiple(t *testing.T) {
	ctx := context.Background()

	nuevaUC := func(repo *fakeRepo) *CrearCitaMultiple {
		disp := NewVerificarDisponibilidad(repo)
		return NewCrearCitaMultiple(repo, disp, nil, testTZ)
	}

	base := func() CrearCitaMultipleInput {
		return CrearCitaMultipleInput{
			TratamientoID:    1,
			SubtratamientoID: 10,
			Fecha:            "2025-03-10",
			Hora:             "10:00",
			Box:              4,
			Participantes: []ParticipanteInput{
				{DNI: "12345678", NombreCompleto: "Ana Pérez", Precio: 40000, Sena: 10000},
				{DNI: "87654321", NombreCompleto: "Beto Gómez", Precio: 40000, Sena: 5000},
			},
			UserID: 1,
		}
	}

	t.Run("un slot compartido con totales sumados", func(t *testing.T) {
		repo := repoConCatalogo()
		cp, err := nuevaUC(repo).Execute(ctx, base())
		require.NoError(t, err)

		assert.True(t, cp.EsMultiple)
		assert.Len(t, cp.Participantes, 2)
		assert.Equal(t, float64(80000), cp.Precio)
		assert.Equal(t, float64(15000), cp.Sena)

		// el titular es el primer participante
		assert.Equal(t, "Ana Pérez", cp.NombreCompleto)
		assert.Equal(t, "12345678", cp.DNI)

		// ambos clientes quedaron registrados
		assert.Len(t, repo.clientes, 2)
	})

	t.Run("el slot compartido bloquea el box como una cita normal", func(t *testing.T) {
		repo := repoConCatalogo()
		_, err := nuevaUC(repo).Execute(ctx, base())
		require.NoError(t, err)

		in := inputBase()
		in.Box = 4
		in.Hora = "10:30"

		_, err = nuevoCrearCita(repo).Execute(ctx, in)
		requireBusinessCode(t, err, "box_ocupado")
	})

	t.Run("un dni inválido rechaza todo antes de escribir", func(t *testing.T) {
		repo := repoConCatalogo()

		in := base()
		in.Participantes[1].DNI = "XX"

		_, err := nuevaUC(repo).Execute(ctx, in)
		requireBusinessCode(t, err, "dni_invalido")

		assert.Empty(t, repo.citas)
		assert.Empty(t, repo.clientes)
	})

	t.Run("perder el slot en la escritura revierte las altas de clientes", func(t *testing.T) {
		repo := repoConCatalogo()

		_, err := nuevoCrearCita(repo).Execute(ctx, inputBase())
		require.NoError(t, err)
		require.Len(t, repo.clientes, 1)

		// el chequeo de lectura ve libre, el re-chequeo en la tx no
		repo.carreraAlEscribir = true

		in := base()
		in.Box = 2
		in.Participantes[0].DNI = "20111222"
		in.Participantes[1].DNI = "20333444"

		_, err = nuevaUC(repo).Execute(ctx, in)
		requireBusinessCode(t, err, "box_ocupado")

		assert.Len(t, repo.clientes, 1, "los participantes no deben quedar registrados")
		assert.Len(t, repo.citas, 1)
	})

	t.Run("la seña de cada participante respeta su precio", func(t *testing.T) {
		in := base()
		in.Participantes[0].Sena = 50000

		_, err := nuevaUC(repoConCatalogo()).Execute(ctx, in)
		requireBusinessCode(t, err, "sena_excede_precio")
	})

	t.Run("sin participantes", func(t *testing.T) {
		in := base()
		in.Participantes = nil

		_, err := nuevaUC(repoConCatalogo()).Execute(ctx, in)

		require.Error(t, err)
		code, ok := httperr.IsAnyBusiness(err)
		require.True(t, ok)
		assert.Equal(t, "sin_participantes", code)
	})
}
