package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/models"
	"github.com/orderdesk/orderdesk-api/internal/repository"
)

// recordingPublisher captures published events for assertions
type recordingPublisher struct {
	events []*models.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e *models.OrderEvent) {
	p.events = append(p.events, e)
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) typesSeen() []string {
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType)
	}
	return types
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func snapshot(total, collected int64) *repository.PaymentSnapshot {
	return &repository.PaymentSnapshot{
		TotalPrice:       dec(total),
		PaymentCollected: dec(collected),
	}
}

func validOrderInput() models.NewOrderInput {
	return models.NewOrderInput{
		OrderCode:        "A1",
		CustomerName:     "Jane",
		ContactNumber:    "555",
		PlanType:         "Basic",
		TotalPrice:       dec(100),
		PaymentCollected: decimal.Zero,
		EmployeeID:       1,
	}
}
