package cita

import "github.com/VitalSpaAR/spa-agenda/internal/httperr"

// ===============================
// Estado de la Cita
// ===============================

type Estado string

const (
	EstadoReservado  Estado = "reservado"
	EstadoConfirmado Estado = "confirmado"
	EstadoCompletado Estado = "completado"
	EstadoCancelado  Estado = "cancelado"
)

// ===============================
// Validaciones de transición
// ===============================

// CanConfirmar: sólo una cita reservada se confirma
func CanConfirmar(current Estado) error {
	if current != EstadoReservado {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCompletar: sólo una cita confirmada se completa
func CanCompletar(current Estado) error {
	if current != EstadoConfirmado {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancelar: se cancela desde reservado o confirmado
func CanCancelar(current Estado) error {
	if current != EstadoReservado && current != EstadoConfirmado {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func EstadoInicial() Estado {
	return EstadoReservado
}

func EstadoValido(e Estado) bool {
	switch e {
	case EstadoReservado, EstadoConfirmado, EstadoCompletado, EstadoCancelado:
		return true
	}
	return false
}
