package cita

import (
	"time"

	"github.com/VitalSpaAR/spa-agenda/internal/models"
)

// ===============================
// Acciones de dominio
// ===============================

func Confirmar(cp *models.Cita, now time.Time) error {
	if err := CanConfirmar(Estado(cp.Estado)); err != nil {
		return err
	}

	cp.Estado = string(EstadoConfirmado)
	cp.ConfirmadaAt = &now
	return nil
}

func Completar(cp *models.Cita, now time.Time) error {
	if err := CanCompletar(Estado(cp.Estado)); err != nil {
		return err
	}

	cp.Estado = string(EstadoCompletado)
	cp.CompletadaAt = &now
	return nil
}

func Cancelar(cp *models.Cita, now time.Time) error {
	if err := CanCancelar(Estado(cp.Estado)); err != nil {
		return err
	}

	cp.Estado = string(EstadoCancelado)
	cp.CanceladaAt = &now
	return nil
}
