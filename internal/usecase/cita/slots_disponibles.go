package cita

import (
	"context"
	"time"

	domain "github.com/VitalSpaAR/spa-agenda/internal/domain/cita"
	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
	"github.com/VitalSpaAR/spa-agenda/internal/timezone"
)

// Horario base del centro cuando el tratamiento no tiene ventanas
const (
	aperturaDefault = "09:00"
	cierreDefault   = "20:00"
)

// ======================================================
// USE CASE — grilla de slots libres por box para un día
// ======================================================

type SlotsDisponibles struct {
	repo domain.Repository
	tz   string
}

func NewSlotsDisponibles(repo domain.Repository, tz string) *SlotsDisponibles {
	return &SlotsDisponibles{repo: repo, tz: tz}
}

type SlotsDisponiblesInput struct {
	Fecha            string // YYYY-MM-DD
	TratamientoID    uint
	SubtratamientoID uint
}

func (uc *SlotsDisponibles) Execute(
	ctx context.Context,
	in SlotsDisponiblesInput,
) ([]domain.Slot, error) {

	loc := timezone.Location(uc.tz)

	dia, err := time.ParseInLocation("2006-01-02", in.Fecha, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("fecha_invalida")
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
	paso := time.Duration(duracion) * time.Minute

	ventanas, err := uc.repo.VentanasParaTratamiento(ctx, in.TratamientoID)
	if err != nil {
		return nil, err
	}

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(dia.Year(), dia.Month(), dia.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	}

	var slots []domain.Slot

	for box := domain.MinBox; box <= domain.MaxBox; box++ {

		desde, hasta, habilitado := rangoDelBox(ventanas, dia, box)
		if !habilitado {
			continue
		}
		if desde == "" {
			desde = aperturaDefault
		}
		if hasta == "" {
			hasta = cierreDefault
		}

		diaInicio := parseHM(desde)
		diaFin := parseHM(hasta)

		citas, err := uc.repo.ListCitasDeBox(ctx, box, diaInicio, diaFin)
		if err != nil {
			return nil, err
		}

		for cur := diaInicio; !cur.Add(paso).After(diaFin); cur = cur.Add(paso) {

			slotInicio := cur
			slotFin := cur.Add(paso)

			ocupado := false
			for _, cp := range citas {
				if domain.Solapan(slotInicio, slotFin, cp.HoraInicio, cp.HoraFin) {
					ocupado = true
					break
				}
			}

			if !ocupado {
				slots = append(slots, domain.Slot{
					Box:    box,
					Inicio: slotInicio.Format("15:04"),
					Fin:    slotFin.Format("15:04"),
				})
			}
		}
	}

	return slots, nil
}

// rangoDelBox resuelve el horario habilitado de un box para el día:
// sin ventanas cargadas todo box queda habilitado con el horario base;
// con ventanas, sólo los boxes incluidos en alguna que cubra la fecha.
func rangoDelBox(ventanas []models.Disponibilidad, dia time.Time, box int) (string, string, bool) {
	if len(ventanas) == 0 {
		return "", "", true
	}

	for i := range ventanas {
		v := &ventanas[i]
		if !v.Activo || !v.IncluyeBox(box) {
			continue
		}

		desde := time.Date(v.FechaDesde.Year(), v.FechaDesde.Month(), v.FechaDesde.Day(), 0, 0, 0, 0, dia.Location())
		hasta := time.Date(v.FechaHasta.Year(), v.FechaHasta.Month(), v.FechaHasta.Day(), 0, 0, 0, 0, dia.Location())
		if dia.Before(desde) || dia.After(hasta) {
			continue
		}

		return v.HoraDesde, v.HoraHasta, true
	}

	return "", "", false
}
