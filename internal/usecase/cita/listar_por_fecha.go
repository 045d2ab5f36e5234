package cita

import (
	"context"
	"time"

	domain "github.com/VitalSpaAR/spa-agenda/internal/domain/cita"
	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
	"github.com/VitalSpaAR/spa-agenda/internal/timezone"
)

type ListarCitasPorFecha struct {
	repo domain.Repository
	tz   string
}

func NewListarCitasPorFecha(repo domain.Repository, tz string) *ListarCitasPorFecha {
	return &ListarCitasPorFecha{repo: repo, tz: tz}
}

func (uc *ListarCitasPorFecha) Execute(
	ctx context.Context,
	fecha string,
) ([]models.Cita, error) {

	loc := timezone.Location(uc.tz)

	dia, err := time.ParseInLocation("2006-01-02", fecha, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("fecha_invalida")
	}

	inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, loc)
	fin := inicio.Add(24 * time.Hour)

	return uc.repo.ListCitasPorRango(ctx, inicio, fin)
}
