package transferController

import (
	"context"

	"meeplelog/internal/events"
	"meeplelog/internal/logger"
	"meeplelog/internal/services"
)

type TransferControllerInterface interface {
	Export() services.Document
	Import(ctx context.Context, data []byte) error
}

type TransferController struct {
	transfer *services.TransferService
	eventBus *events.EventBus
	log      logger.Logger
}

func New(svc services.Service, eventBus *events.EventBus) TransferControllerInterface {
	return &TransferController{
		transfer: svc.Transfer,
		eventBus: eventBus,
		log:      logger.New("transferController"),
	}
}

func (c *TransferController) Export() services.Document {
	return c.transfer.Export()
}

func (c *TransferController) Import(ctx context.Context, data []byte) error {
	if err := c.transfer.Import(ctx, data); err != nil {
		return err
	}

	c.eventBus.Publish(events.DataImported, "")
	return nil
}
