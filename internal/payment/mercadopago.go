package payment

import (
	"context"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"

	"github.com/adviseline/advisory-scheduler/internal/models"
)

// Collector is the external payment collaborator: invoked exactly once
// when a paid appointment is created. Capture, webhooks and refunds
// happen on the provider's side.
type Collector interface {
	CreateCharge(ctx context.Context, ap *models.Appointment, amount float64) (checkoutURL string, err error)
}

// MercadoPagoCollector builds a checkout preference per appointment.
type MercadoPagoCollector struct {
	prefs preference.Client
	log   *zap.Logger
}

func NewMercadoPagoCollector(accessToken string, log *zap.Logger) (*MercadoPagoCollector, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPagoCollector{
		prefs: preference.NewClient(cfg),
		log:   log,
	}, nil
}

func (c *MercadoPagoCollector) CreateCharge(
	ctx context.Context,
	ap *models.Appointment,
	amount float64,
) (string, error) {

	quantity := 1
	req := preference.Request{
		ExternalReference: ap.ID.String(),
		Items: []preference.ItemRequest{
			{
				ID:        ap.ID.String(),
				Title:     ap.Title,
				Quantity:  quantity,
				UnitPrice: amount,
			},
		},
	}

	resource, err := c.prefs.Create(ctx, req)
	if err != nil {
		c.log.Error("payment preference creation failed",
			zap.String("appointment_id", ap.ID.String()),
			zap.Error(err),
		)
		return "", err
	}

	return resource.InitPoint, nil
}

// NoopCollector is used when no payment provider is configured; paid
// appointments then get no checkout URL and wait on the webhook.
type NoopCollector struct{}

func (NoopCollector) CreateCharge(context.Context, *models.Appointment, float64) (string, error) {
	return "", nil
}
