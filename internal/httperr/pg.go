package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de postgres que clasificamos como conflicto (409)
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// IsUniqueViolation detecta violación de índice único
// (ej. tratamiento con nombre duplicado, cliente con DNI repetido).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// IsExclusionConflict detecta la exclusion constraint de solapamiento
// de citas por box (backstop de la verificación en transacción).
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation
	}
	return false
}

// IsConflict agrupa ambas clasificaciones 409.
func IsConflict(err error) bool {
	return IsUniqueViolation(err) || IsExclusionConflict(err)
}
