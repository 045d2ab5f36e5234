package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/VitalSpaAR/spa-agenda/internal/models"
)

// SenaLinker genera links de pago de Mercado Pago para cobrar la
// seña de una cita. Sin access token configurado queda deshabilitado.
type SenaLinker struct {
	prefs preference.Client
}

func NewSenaLinker(accessToken string) (*SenaLinker, error) {
	if accessToken == "" {
		return &SenaLinker{}, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("payments: mercadopago config: %w", err)
	}

	return &SenaLinker{prefs: preference.NewClient(cfg)}, nil
}

func (l *SenaLinker) Enabled() bool {
	return l != nil && l.prefs != nil
}

// CrearLink arma una preferencia de pago por el monto de la seña
// y devuelve la URL de checkout.
func (l *SenaLinker) CrearLink(ctx context.Context, cp *models.Cita) (string, error) {
	if !l.Enabled() {
		return "", fmt.Errorf("payments: mercadopago not configured")
	}

	if cp.Sena <= 0 {
		return "", fmt.Errorf("payments: cita %d has no seña to charge", cp.ID)
	}

	titulo := fmt.Sprintf("Seña %s (%s)", cp.Tratamiento.Nombre, cp.Fecha.Format("2006-01-02"))

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      titulo,
				Quantity:   1,
				UnitPrice:  cp.Sena,
				CurrencyID: "ARS",
			},
		},
		ExternalReference: cp.Codigo.String(),
	}

	resp, err := l.prefs.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("payments: create preference: %w", err)
	}

	return resp.InitPoint, nil
}
