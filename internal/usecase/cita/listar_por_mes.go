package cita

import (
	"context"
	"time"

	domain "github.com/VitalSpaAR/spa-agenda/internal/domain/cita"
	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
	"github.com/VitalSpaAR/spa-agenda/internal/timezone"
)

type ListarCitasPorMes struct {
	repo domain.Repository
	tz   string
}

func NewListarCitasPorMes(repo domain.Repository, tz string) *ListarCitasPorMes {
	return &ListarCitasPorMes{repo: repo, tz: tz}
}

func (uc *ListarCitasPorMes) Execute(
	ctx context.Context,
	year int,
	month int,
) ([]models.Cita, error) {

	if year < 2000 || year > 2100 {
		return nil, httperr.ErrBusiness("anio_invalido")
	}
	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("mes_invalido")
	}

	loc := timezone.Location(uc.tz)
	inicio := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	fin := inicio.AddDate(0, 1, 0)

	return uc.repo.ListCitasPorRango(ctx, inicio, fin)
}
