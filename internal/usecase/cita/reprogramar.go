package cita

import (
	"context"
	"time"

	"github.com/VitalSpaAR/spa-agenda/internal/audit"
	domain "github.com/VitalSpaAR/spa-agenda/internal/domain/cita"
	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
	"github.com/VitalSpaAR/spa-agenda/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ReprogramarCitaInput struct {
	CitaID uint

	Fecha *string // YYYY-MM-DD
	Hora  *string // HH:mm
	Box   *int

	SubtratamientoID *uint
	Precio           *float64
	Sena             *float64
	Notas            *string

	UserID uint
}

// ======================================================
// USE CASE
// ======================================================

// Edición de una cita existente: el chequeo de slot se repite
// excluyendo la propia fila, así re-guardar la cita en su mismo
// horario nunca choca consigo misma.
type ReprogramarCita struct {
	repo  domain.Repository
	disp  *VerificarDisponibilidad
	audit *audit.Dispatcher
	tz    string
}

func NewReprogramarCita(
	repo domain.Repository,
	disp *VerificarDisponibilidad,
	audit *audit.Dispatcher,
	tz string,
) *ReprogramarCita {
	return &ReprogramarCita{
		repo:  repo,
		disp:  disp,
		audit: audit,
		tz:    tz,
	}
}

func (uc *ReprogramarCita) Execute(
	ctx context.Context,
	in ReprogramarCitaInput,
) (*models.Cita, error) {

	cp, err := uc.repo.GetCita(ctx, in.CitaID)
	if err != nil {
		return nil, httperr.ErrBusiness("cita_no_encontrada")
	}

	estado := domain.Estado(cp.Estado)
	if estado == domain.EstadoCompletado || estado == domain.EstadoCancelado {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	loc := timezone.Location(uc.tz)

	fecha := cp.Fecha.In(loc).Format("2006-01-02")
	if in.Fecha != nil {
		fecha = *in.Fecha
	}

	hora := cp.HoraInicio.In(loc).Format("15:04")
	if in.Hora != nil {
		hora = *in.Hora
	}

	if in.Box != nil {
		if !domain.BoxValido(*in.Box) {
			return nil, httperr.ErrBusiness("box_invalido")
		}
		cp.Box = *in.Box
	}

	if in.SubtratamientoID != nil {
		cp.SubtratamientoID = *in.SubtratamientoID
	}
	if in.Precio != nil {
		cp.Precio = *in.Precio
	}
	if in.Sena != nil {
		cp.Sena = *in.Sena
	}
	if in.Notas != nil {
		cp.Notas = *in.Notas
	}

	if cp.Sena > cp.Precio {
		return nil, httperr.ErrBusiness("sena_excede_precio")
	}

	inicio, err := time.ParseInLocation("2006-01-02 15:04", fecha+" "+hora, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("fecha_u_hora_invalida")
	}

	duracion := domain.DuracionDefaultMin
	if cp.SubtratamientoID != 0 {
		st, err := uc.repo.GetSubtratamiento(ctx, cp.TratamientoID, cp.SubtratamientoID)
		if err != nil {
			return nil, httperr.ErrBusiness("subtratamiento_no_encontrado")
		}
		if st.DuracionMin > 0 {
			duracion = st.DuracionMin
		}
	}

	cp.Fecha = time.Date(inicio.Year(), inicio.Month(), inicio.Day(), 0, 0, 0, 0, loc)
	cp.HoraInicio = inicio
	cp.HoraFin = inicio.Add(time.Duration(duracion) * time.Minute)

	excluir := cp.ID
	if err := uc.disp.Execute(ctx, domain.DisponibilidadInput{
		TratamientoID: cp.TratamientoID,
		Box:           cp.Box,
		Inicio:        cp.HoraInicio,
		Fin:           cp.HoraFin,
		ExcluirCitaID: &excluir,
	}); err != nil {
		return nil, err
	}

	if err := uc.repo.ActualizarCitaConChequeo(ctx, cp); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "cita_reprogramada",
		Entity:   "cita",
		EntityID: &cp.ID,
	})

	return cp, nil
}
