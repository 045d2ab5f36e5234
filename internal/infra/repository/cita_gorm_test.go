package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/VitalSpaAR/spa-agenda/internal/domain/cita"
)

func setupRepo(t *testing.T) (*CitaGormRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewCitaGormRepository(gdb), mock
}

// El listado por box tiene que usar el mismo predicado semiabierto
// que el chequeo de conflicto: una cita que arranca ANTES de la
// ventana pedida pero se mete adentro (08:30–09:30 contra la grilla
// de 09:00) también ocupa slots y debe volver en el resultado.
func TestListCitasDeBoxUsaPredicadoDeSolapamiento(t *testing.T) {
	repo, mock := setupRepo(t)

	loc := time.UTC
	inicio := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	fin := time.Date(2025, 3, 10, 20, 0, 0, 0, loc)

	temprana := time.Date(2025, 3, 10, 8, 30, 0, 0, loc)
	tempranaFin := time.Date(2025, 3, 10, 9, 30, 0, 0, loc)

	mock.ExpectQuery(`SELECT .* FROM "citas" WHERE box = \$1 AND estado <> \$2 AND hora_inicio < \$3 AND hora_fin > \$4`).
		WithArgs(2, "cancelado", fin, inicio).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "box", "hora_inicio", "hora_fin"}).
				AddRow(7, 2, temprana, tempranaFin),
		)

	citas, err := repo.ListCitasDeBox(context.Background(), 2, inicio, fin)
	require.NoError(t, err)

	require.Len(t, citas, 1)
	assert.Equal(t, uint(7), citas[0].ID)
	assert.True(t, citas[0].HoraInicio.Before(inicio), "la cita que empieza antes de la grilla tiene que entrar igual")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveCliente(t *testing.T) {
	ctx := context.Background()

	selectCliente := `SELECT \* FROM "clientes" WHERE dni = \$1`

	filaCliente := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "dni", "nombre_completo", "telefono"}).
			AddRow(3, "12345678", "Ana Pérez", "1155550000")
	}

	t.Run("sin cambios no emite update", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectQuery(selectCliente).
			WithArgs("12345678", 1).
			WillReturnRows(filaCliente())

		cliente, err := repo.ResolveCliente(ctx, "12345678", "Ana Pérez", "1155550000")
		require.NoError(t, err)

		assert.Equal(t, uint(3), cliente.ID)

		// si se hubiera emitido un UPDATE, el mock lo habría
		// rechazado como query inesperada
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("con teléfono distinto actualiza el snapshot", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectQuery(selectCliente).
			WithArgs("12345678", 1).
			WillReturnRows(filaCliente())
		mock.ExpectExec(`UPDATE "clientes" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		cliente, err := repo.ResolveCliente(ctx, "12345678", "Ana Pérez", "1199998888")
		require.NoError(t, err)

		assert.Equal(t, "1199998888", cliente.Telefono)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInTxRevierteCuandoFnFalla(t *testing.T) {
	repo, mock := setupRepo(t)

	errSlot := errors.New("slot perdido")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.InTx(context.Background(), func(domain.Repository) error {
		return errSlot
	})

	require.ErrorIs(t, err, errSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}
