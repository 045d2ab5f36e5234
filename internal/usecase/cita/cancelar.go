package cita

import (
	"context"

	"github.com/VitalSpaAR/spa-agenda/internal/audit"
	domain "github.com/VitalSpaAR/spa-agenda/internal/domain/cita"
	"github.com/VitalSpaAR/spa-agenda/internal/httperr"
	"github.com/VitalSpaAR/spa-agenda/internal/models"
	"github.com/VitalSpaAR/spa-agenda/internal/timezone"
)

type CancelarCita struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCancelarCita(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CancelarCita {
	return &CancelarCita{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *CancelarCita) Execute(
	ctx context.Context,
	userID uint,
	citaID uint,
) (*models.Cita, error) {

	cp, err := uc.repo.GetCita(ctx, citaID)
	if err != nil {
		return nil, httperr.ErrBusiness("cita_no_encontrada")
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Cancelar(cp, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateCita(ctx, cp); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "cita_cancelada",
		Entity:   "cita",
		EntityID: &cp.ID,
	})

	return cp, nil
}
