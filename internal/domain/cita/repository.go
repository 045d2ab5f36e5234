package cita

import (
	"context"
	"time"

	"github.com/VitalSpaAR/spa-agenda/internal/models"
)

type Repository interface {
	// -------- Transacción --------
	// InTx corre fn con un Repository ligado a una transacción:
	// todo lo escrito dentro se revierte si fn devuelve error.
	InTx(
		ctx context.Context,
		fn func(Repository) error,
	) error

	// -------- Tratamiento / Subtratamiento --------
	GetTratamiento(
		ctx context.Context,
		id uint,
	) (*models.Tratamiento, error)

	GetSubtratamiento(
		ctx context.Context,
		tratamientoID uint,
		id uint,
	) (*models.Subtratamiento, error)

	// -------- Cliente --------
	ResolveCliente(
		ctx context.Context,
		dni string,
		nombreCompleto string,
		telefono string,
	) (*models.Cliente, error)

	// -------- Disponibilidad (ventanas) --------
	VentanasParaTratamiento(
		ctx context.Context,
		tratamientoID uint,
	) ([]models.Disponibilidad, error)

	CountCitasDeTratamiento(
		ctx context.Context,
		tratamientoID uint,
		inicio time.Time,
		fin time.Time,
		excluirCitaID *uint,
	) (int64, error)

	// -------- Conflicto de box --------
	HasConflictoBox(
		ctx context.Context,
		box int,
		inicio time.Time,
		fin time.Time,
		excluirCitaID *uint,
	) (bool, error)

	// -------- Cita (escritura atómica: lock + chequeo + insert) --------
	CrearCitaConChequeo(
		ctx context.Context,
		cp *models.Cita,
	) error

	ActualizarCitaConChequeo(
		ctx context.Context,
		cp *models.Cita,
	) error

	// -------- Cita (lectura / cambio de estado) --------
	GetCita(
		ctx context.Context,
		id uint,
	) (*models.Cita, error)

	UpdateCita(
		ctx context.Context,
		cp *models.Cita,
	) error

	ListCitasPorRango(
		ctx context.Context,
		inicio time.Time,
		fin time.Time,
	) ([]models.Cita, error)

	ListCitasDeBox(
		ctx context.Context,
		box int,
		inicio time.Time,
		fin time.Time,
	) ([]models.Cita, error)
}
