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

type ParticipanteInput struct {
	DNI            string
	NombreCompleto string
	Telefono       string
	Precio         float64
	Sena           float64
}

type CrearCitaMultipleInput struct {
	TratamientoID    uint
	SubtratamientoID uint

	Fecha string // YYYY-MM-DD
	Hora  string // HH:mm
	Box   int

	Notas         string
	Participantes []ParticipanteInput

	UserID uint
}

// ======================================================
// USE CASE
// ======================================================

// Una cita múltiple ocupa UN slot (box + horario) compartido por
// varios participantes, cada uno con su precio y seña propios.
type CrearCitaMultiple struct {
	repo  domain.Repository
	disp  *VerificarDisponibilidad
	audit *audit.Dispatcher
	tz    string
}

func NewCrearCitaMultiple(
	repo domain.Repository,
	disp *VerificarDisponibilidad,
	audit *audit.Dispatcher,
	tz string,
) *CrearCitaMultiple {
	return &CrearCitaMultiple{
		repo:  repo,
		disp:  disp,
		audit: audit,
		tz:    tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CrearCitaMultiple) Execute(
	ctx context.Context,
	in CrearCitaMultipleInput,
) (*models.Cita, error) {

	if len(in.Participantes) == 0 {
		return nil, httperr.ErrBusiness("sin_participantes")
	}

	if !domain.BoxValido(in.Box) {
		return nil, httperr.ErrBusiness("box_invalido")
	}

	// Validar TODOS los participantes antes de escribir nada
	for _, p := range in.Participantes {
		if !validators.IsValidDNI(validators.NormalizeDNI(p.DNI)) {
			return nil, httperr.ErrBusiness("dni_invalido")
		}
		if p.Sena > p.Precio {
			return nil, httperr.ErrBusiness("sena_excede_precio")
		}
	}

	inicio, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Fecha+" "+in.Hora,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("fecha_u_hora_invalida")
	}

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

	if err := uc.disp.Execute(ctx, domain.DisponibilidadInput{
		TratamientoID: in.TratamientoID,
		Box:           in.Box,
		Inicio:        inicio,
		Fin:           fin,
	}); err != nil {
		return nil, err
	}

	// Resolver participantes + insertar la cita en UNA transacción:
	// si el slot se pierde en el re-chequeo, las altas de clientes
	// hechas para esta reserva se revierten con ella.
	var cp *models.Cita
	err = uc.repo.InTx(ctx, func(repo domain.Repository) error {
		var (
			participantes []models.CitaCliente
			precioTotal   float64
			senaTotal     float64
			titular       *models.Cliente
		)

		for _, p := range in.Participantes {
			cliente, err := repo.ResolveCliente(
				ctx,
				validators.NormalizeDNI(p.DNI),
				p.NombreCompleto,
				p.Telefono,
			)
			if err != nil {
				return err
			}

			if titular == nil {
				titular = cliente
			}

			participantes = append(participantes, models.CitaCliente{
				ClienteID: cliente.ID,
				Precio:    p.Precio,
				Sena:      p.Sena,
			})

			precioTotal += p.Precio
			senaTotal += p.Sena
		}

		cp = &models.Cita{
			Codigo:           uuid.New(),
			ClienteID:        titular.ID,
			NombreCompleto:   titular.NombreCompleto,
			DNI:              titular.DNI,
			Telefono:         titular.Telefono,
			TratamientoID:    trat.ID,
			SubtratamientoID: in.SubtratamientoID,
			Fecha:            time.Date(inicio.Year(), inicio.Month(), inicio.Day(), 0, 0, 0, 0, inicio.Location()),
			HoraInicio:       inicio,
			HoraFin:          fin,
			Box:              in.Box,
			Color:            domain.ColorParaTratamiento(trat.Nombre),
			Precio:           precioTotal,
			Sena:             senaTotal,
			Notas:            in.Notas,
			Estado:           string(domain.EstadoInicial()),
			EsMultiple:       true,
			Participantes:    participantes,
		}

		// gorm inserta cita + participantes dentro de la misma tx
		return repo.CrearCitaConChequeo(ctx, cp)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "cita_multiple_creada",
		Entity:   "cita",
		EntityID: &cp.ID,
		Metadata: map[string]any{"participantes": len(cp.Participantes)},
	})

	return cp, nil
}
