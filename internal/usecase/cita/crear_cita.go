package cita

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/VitalSpaAR/spa-agenda/internal/audit"
	domain "github.com/VitalSpaAR/spa-agenda/internal/domain/cita"
	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
	"github.com/VitalSpaAR/spa-agenda/internal/timezone"
	"github.com/VitalSpaAR/spa-agenda/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CrearCitaInput struct {
	DNI            string
	NombreCompleto string
	Telefono       string

	TratamientoID    uint
	SubtratamientoID uint

	Fecha string // YYYY-MM-DD
	Hora  string // HH:mm
	Box   int

	Precio float64
	Sena   float64
	Notas  string

	UserID uint
}

// ======================================================
// USE CASE
// ======================================================

type CrearCita struct {
	repo  domain.Repository
	disp  *VerificarDisponibilidad
	audit *audit.Dispatcher
	tz    string
}

func NewCrearCita(
	repo domain.Repository,
	disp *VerificarDisponibilidad,
	audit *audit.Dispatcher,
	tz string,
) *CrearCita {
	return &CrearCita{
		repo:  repo,
		disp:  disp,
		audit: audit,
		tz:    tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CrearCita) Execute(
	ctx context.Context,
	in CrearCitaInput,
) (*models.Cita, error) {

	// --------------------------------------------------
	// 1) Validaciones locales (antes de tocar la red)
	// --------------------------------------------------
	dni := validators.NormalizeDNI(in.DNI)
	if !validators.IsValidDNI(dni) {
		return nil, httperr.ErrBusiness("dni_invalido")
	}

	if !domain.BoxValido(in.Box) {
		return nil, httperr.ErrBusiness("box_invalido")
	}

	if in.Sena > in.Precio {
		return nil, httperr.ErrBusiness("sena_excede_precio")
	}

	inicio, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Fecha+" "+in.Hora,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("fecha_u_hora_invalida")
	}

	// --------------------------------------------------
	// 2) Tratamiento / subtratamiento → duración
	// --------------------------------------------------
	trat, err := uc.repo.GetTratamiento(ctx, in.TratamientoID)
	if err != nil {
		return nil, httperr.ErrBusiness("tratamiento_no_encontrado")
	}

	duracion := domain.DuracionDefaultMin
	if in.SubtratamientoID != 0 {
		st, err := uc.repo.GetSubtratamiento(ctx, in.TratamientoID, in.SubtratamientoID)
		if err != nil {
			return nil, httperr.ErrBusiness("subtratamiento_no_encontrado")
		}
		if st.DuracionMin > 0 {
			duracion = st.DuracionMin
		}
	}

	fin := inicio.Add(time.Duration(duracion) * time.Minute)

	// --------------------------------------------------
	// 3) Disponibilidad (ventanas + solapamiento)
	// --------------------------------------------------
	if err := uc.disp.Execute(ctx, domain.DisponibilidadInput{
		TratamientoID: in.TratamientoID,
		Box:           in.Box,
		Inicio:        inicio,
		Fin:           fin,
	}); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4) Cliente + cita en UNA transacción: lock de filas
	//    solapadas → re-chequeo → insert; si la cita no
	//    entra, el alta/actualización del cliente se revierte
	// --------------------------------------------------
	var cp *models.Cita
	err = uc.repo.InTx(ctx, func(repo domain.Repository) error {
		cliente, err := repo.ResolveCliente(ctx, dni, in.NombreCompleto, in.Telefono)
		if err != nil {
			return err
		}

		cp = &models.Cita{
			Codigo:           uuid.New(),
			ClienteID:        cliente.ID,
			NombreCompleto:   cliente.NombreCompleto,
			DNI:              cliente.DNI,
			Telefono:         cliente.Telefono,
			TratamientoID:    trat.ID,
			SubtratamientoID: in.SubtratamientoID,
			Fecha:            time.Date(inicio.Year(), inicio.Month(), inicio.Day(), 0, 0, 0, 0, inicio.Location()),
			HoraInicio:       inicio,
			HoraFin:          fin,
			Box:              in.Box,
			Color:            domain.ColorParaTratamiento(trat.Nombre),
			Precio:           in.Precio,
			Sena:             in.Sena,
			Notas:            in.Notas,
			Estado:           string(domain.EstadoInicial()),
		}

		return repo.CrearCitaConChequeo(ctx, cp)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5) Auditoría
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "cita_creada",
		Entity:   "cita",
		EntityID: &cp.ID,
	})

	return cp, nil
}
