package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/VitalSpaAR/spa-agenda/internal/domain/cita"
	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
)

type CitaGormRepository struct {
	db *gorm.DB
}

func NewCitaGormRepository(db *gorm.DB) *CitaGormRepository {
	return &CitaGormRepository{db: db}
}

// --------------------------------------------------
// Transacción
// --------------------------------------------------

// InTx corre fn con un Repository montado sobre una transacción de
// gorm, de modo que resolver el cliente y escribir la cita compartan
// la misma unidad atómica: si la cita no entra, el alta o la
// actualización del cliente también se revierte.
func (r *CitaGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CitaGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Tratamiento / Subtratamiento
// --------------------------------------------------

func (r *CitaGormRepository) GetTratamiento(
	ctx context.Context,
	id uint,
) (*models.Tratamiento, error) {

	var t models.Tratamiento
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *CitaGormRepository) GetSubtratamiento(
	ctx context.Context,
	tratamientoID uint,
	id uint,
) (*models.Subtratamiento, error) {

	var st models.Subtratamiento
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tratamiento_id = ?", id, tratamientoID).
		First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// --------------------------------------------------
// Cliente
// --------------------------------------------------

// ResolveCliente busca por DNI; crea si no existe y actualiza
// nombre/teléfono sólo cuando difieren del snapshot guardado.
// El índice único sobre dni respalda la carrera de doble alta.
func (r *CitaGormRepository) ResolveCliente(
	ctx context.Context,
	dni string,
	nombreCompleto string,
	telefono string,
) (*models.Cliente, error) {

	var cliente models.Cliente
	err := r.db.WithContext(ctx).
		Where("dni = ?", dni).
		First(&cliente).Error

	if err == nil {
		if cliente.NombreCompleto != nombreCompleto || cliente.Telefono != telefono {
			cliente.NombreCompleto = nombreCompleto
			cliente.Telefono = telefono
			if err := r.db.WithContext(ctx).Save(&cliente).Error; err != nil {
				return nil, err
			}
		}
		return &cliente, nil
	}

	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	cliente = models.Cliente{
		DNI:            dni,
		NombreCompleto: nombreCompleto,
		Telefono:       telefono,
	}

	if err := r.db.WithContext(ctx).Create(&cliente).Error; err != nil {
		return nil, err
	}

	return &cliente, nil
}

// --------------------------------------------------
// Disponibilidad (ventanas)
// --------------------------------------------------

func (r *CitaGormRepository) VentanasParaTratamiento(
	ctx context.Context,
	tratamientoID uint,
) ([]models.Disponibilidad, error) {

	var ventanas []models.Disponibilidad
	if err := r.db.WithContext(ctx).
		Where("tratamiento_id = ?", tratamientoID).
		Find(&ventanas).Error; err != nil {
		return nil, err
	}
	return ventanas, nil
}

func (r *CitaGormRepository) CountCitasDeTratamiento(
	ctx context.Context,
	tratamientoID uint,
	inicio time.Time,
	fin time.Time,
	excluirCitaID *uint,
) (int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Cita{}).
		Where(
			"tratamiento_id = ? AND estado <> ? AND hora_inicio < ? AND hora_fin > ?",
			tratamientoID, string(domain.EstadoCancelado), fin, inicio,
		)

	if excluirCitaID != nil {
		q = q.Where("id <> ?", *excluirCitaID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Conflicto de box (sólo lectura)
// --------------------------------------------------

func (r *CitaGormRepository) HasConflictoBox(
	ctx context.Context,
	box int,
	inicio time.Time,
	fin time.Time,
	excluirCitaID *uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Cita{}).
		Where(
			"box = ? AND estado <> ? AND hora_inicio < ? AND hora_fin > ?",
			box, string(domain.EstadoCancelado), fin, inicio,
		)

	if excluirCitaID != nil {
		q = q.Where("id <> ?", *excluirCitaID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Cita (escritura atómica)
// --------------------------------------------------

// CrearCitaConChequeo corre chequeo + insert en UNA transacción:
// lockea las filas solapadas con FOR UPDATE antes de insertar.
// La exclusion constraint por (box, rango) es el respaldo a nivel storage.
func (r *CitaGormRepository) CrearCitaConChequeo(
	ctx context.Context,
	cp *models.Cita,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflictos []models.Cita
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"box = ? AND estado <> ? AND hora_inicio < ? AND hora_fin > ?",
				cp.Box, string(domain.EstadoCancelado), cp.HoraFin, cp.HoraInicio,
			).
			Find(&conflictos).Error; err != nil {
			return err
		}

		if len(conflictos) > 0 {
			return httperr.ErrBusiness("box_ocupado")
		}

		return tx.Create(cp).Error
	})
}

func (r *CitaGormRepository) ActualizarCitaConChequeo(
	ctx context.Context,
	cp *models.Cita,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflictos []models.Cita
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"box = ? AND estado <> ? AND hora_inicio < ? AND hora_fin > ? AND id <> ?",
				cp.Box, string(domain.EstadoCancelado), cp.HoraFin, cp.HoraInicio, cp.ID,
			).
			Find(&conflictos).Error; err != nil {
			return err
		}

		if len(conflictos) > 0 {
			return httperr.ErrBusiness("box_ocupado")
		}

		return tx.Omit(clause.Associations).Save(cp).Error
	})
}

// --------------------------------------------------
// Cita (lectura / estado)
// --------------------------------------------------

func (r *CitaGormRepository) GetCita(
	ctx context.Context,
	id uint,
) (*models.Cita, error) {

	var cp models.Cita
	if err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Tratamiento").
		Preload("Subtratamiento").
		Preload("Participantes.Cliente").
		First(&cp, id).Error; err != nil {
		return nil, err
	}

	return &cp, nil
}

func (r *CitaGormRepository) UpdateCita(
	ctx context.Context,
	cp *models.Cita,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(cp).Error
}

func (r *CitaGormRepository) ListCitasPorRango(
	ctx context.Context,
	inicio time.Time,
	fin time.Time,
) ([]models.Cita, error) {

	var citas []models.Cita
	if err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Tratamiento").
		Preload("Subtratamiento").
		Where(
			"hora_inicio >= ? AND hora_inicio < ?",
			inicio, fin,
		).
		Order("hora_inicio ASC").
		Find(&citas).Error; err != nil {
		return nil, err
	}

	return citas, nil
}

func (r *CitaGormRepository) ListCitasDeBox(
	ctx context.Context,
	box int,
	inicio time.Time,
	fin time.Time,
) ([]models.Cita, error) {

	var citas []models.Cita
	if err := r.db.WithContext(ctx).
		Select("id", "box", "hora_inicio", "hora_fin").
		Where(
			"box = ? AND estado <> ? AND hora_inicio < ? AND hora_fin > ?",
			box, string(domain.EstadoCancelado), fin, inicio,
		).
		Order("hora_inicio ASC").
		Find(&citas).Error; err != nil {
		return nil, err
	}

	return citas, nil
}

// Compile-time check
var _ domain.Repository = (*CitaGormRepository)(nil)
