package cita

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitalSpaAR/spa-agenda/internal/models"
	"github.com/VitalSpaAR/spa-agenda/internal/timezone"
)

func nuevoReprogramar(repo *fakeRepo) *ReprogramarCita {
	disp := NewVerificarDisponibilidad(repo)
	return NewReprogramarCita(repo, disp, nil, testTZ)
}

func strPtr(s string) *string   { return &s }
func intPtr(n int) *int         { return &n }
func f64Ptr(v float64) *float64 { return &v }

func TestReprogramarCita(t *testing.T) {
	ctx := context.Background()
	loc := timezone.Location(testTZ)

	crear := func(t *testing.T, repo *fakeRepo, in CrearCitaInput) *models.Cita {
		t.Helper()
		cp, err := nuevoCrearCita(repo).Execute(ctx, in)
		require.NoError(t, err)
		return cp
	}

	t.Run("re-guardar la cita en su mismo horario no choca consigo misma", func(t *testing.T) {
		repo := repoConCatalogo()
		cp := crear(t, repo, inputBase())

		uc := nuevoReprogramar(repo)
		out, err := uc.Execute(ctx, ReprogramarCitaInput{
			CitaID: cp.ID,
			Notas:  strPtr("viene con su hermana"),
			UserID: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, "viene con su hermana", out.Notas)
		assert.Equal(t, cp.HoraInicio, out.HoraInicio)
	})

	t.Run("mover a un horario libre", func(t *testing.T) {
		repo := repoConCatalogo()
		cp := crear(t, repo, inputBase())

		uc := nuevoReprogramar(repo)
		out, err := uc.Execute(ctx, ReprogramarCitaInput{
			CitaID: cp.ID,
			Hora:   strPtr("15:00"),
			UserID: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 10, 15, 0, 0, 0, loc), out.HoraInicio)
		assert.Equal(t, time.Date(2025, 3, 10, 16, 0, 0, 0, loc), out.HoraFin)
	})

	t.Run("mover sobre otra cita del mismo box se rechaza", func(t *testing.T) {
		repo := repoConCatalogo()
		crear(t, repo, inputBase()) // 10:00-11:00 box 2

		otra := inputBase()
		otra.DNI = "87654321"
		otra.Hora = "15:00"
		cp := crear(t, repo, otra)

		uc := nuevoReprogramar(repo)
		_, err := uc.Execute(ctx, ReprogramarCitaInput{
			CitaID: cp.ID,
			Hora:   strPtr("10:30"),
			UserID: 1,
		})
		requireBusinessCode(t, err, "box_ocupado")
	})

	t.Run("cambiar de box al mismo horario", func(t *testing.T) {
		repo := repoConCatalogo()
		cp := crear(t, repo, inputBase())

		uc := nuevoReprogramar(repo)
		out, err := uc.Execute(ctx, ReprogramarCitaInput{
			CitaID: cp.ID,
			Box:    intPtr(5),
			UserID: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, 5, out.Box)
	})

	t.Run("una cita completada no se edita", func(t *testing.T) {
		repo := repoConCatalogo()
		cp := crear(t, repo, inputBase())

		_, err := NewConfirmarCita(repo, nil, testTZ).Execute(ctx, 1, cp.ID)
		require.NoError(t, err)
		_, err = NewCompletarCita(repo, nil, testTZ).Execute(ctx, 1, cp.ID)
		require.NoError(t, err)

		uc := nuevoReprogramar(repo)
		_, err = uc.Execute(ctx, ReprogramarCitaInput{
			CitaID: cp.ID,
			Hora:   strPtr("15:00"),
			UserID: 1,
		})
		requireBusinessCode(t, err, "invalid_state")
	})

	t.Run("la seña nueva no puede superar el precio", func(t *testing.T) {
		repo := repoConCatalogo()
		cp := crear(t, repo, inputBase())

		uc := nuevoReprogramar(repo)
		_, err := uc.Execute(ctx, ReprogramarCitaInput{
			CitaID: cp.ID,
			Sena:   f64Ptr(99999999),
			UserID: 1,
		})
		requireBusinessCode(t, err, "sena_excede_precio")
	})

	t.Run("cita inexistente", func(t *testing.T) {
		uc := nuevoReprogramar(repoConCatalogo())

		_, err := uc.Execute(ctx, ReprogramarCitaInput{CitaID: 99, UserID: 1})
		requireBusinessCode(t, err, "cita_no_encontrada")
	})
}
