package cita

import (
	"context"

	domain "github.com/VitalSpaAR/spa-agenda/internal/domain/cita"
	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
)

// ======================================================
// USE CASE — chequeo de disponibilidad de un slot
// ======================================================
//
// Execute devuelve nil cuando el slot está libre. Un BusinessError
// ("box_ocupado", "fuera_de_ventana", "cupo_completo") significa
// no disponible; cualquier otro error es falla del backend y se
// propaga tal cual: un error NUNCA se interpreta como slot libre.

type VerificarDisponibilidad struct {
	repo domain.Repository
}

func NewVerificarDisponibilidad(repo domain.Repository) *VerificarDisponibilidad {
	return &VerificarDisponibilidad{repo: repo}
}

func (uc *VerificarDisponibilidad) Execute(
	ctx context.Context,
	in domain.DisponibilidadInput,
) error {

	if !domain.BoxValido(in.Box) {
		return httperr.ErrBusiness("box_invalido")
	}

	// 1) Ventanas del tratamiento (si se pidió chequearlas)
	if in.TratamientoID != 0 {
		if err := uc.chequearVentanas(ctx, in); err != nil {
			return err
		}
	}

	// 2) Solapamiento en el box
	ocupado, err := uc.repo.HasConflictoBox(
		ctx,
		in.Box,
		in.Inicio,
		in.Fin,
		in.ExcluirCitaID,
	)
	if err != nil {
		return err
	}
	if ocupado {
		return httperr.ErrBusiness("box_ocupado")
	}

	return nil
}

// chequearVentanas: si el tratamiento tiene ventanas cargadas, el slot
// tiene que caer dentro de alguna y respetar su cupo simultáneo.
// Sin ventanas cargadas el tratamiento se ofrece sin restricción.
func (uc *VerificarDisponibilidad) chequearVentanas(
	ctx context.Context,
	in domain.DisponibilidadInput,
) error {

	ventanas, err := uc.repo.VentanasParaTratamiento(ctx, in.TratamientoID)
	if err != nil {
		return err
	}

	if len(ventanas) == 0 {
		return nil
	}

	for i := range ventanas {
		v := &ventanas[i]
		if !domain.VentanaCubre(v, in.Inicio, in.Fin, in.Box) {
			continue
		}

		ocupadas, err := uc.repo.CountCitasDeTratamiento(
			ctx,
			in.TratamientoID,
			in.Inicio,
			in.Fin,
			in.ExcluirCitaID,
		)
		if err != nil {
			return err
		}

		if v.CupoSimultaneo > 0 && ocupadas >= int64(v.CupoSimultaneo) {
			return httperr.ErrBusiness("cupo_completo")
		}

		return nil
	}

	return httperr.ErrBusiness("fuera_de_ventana")
}
