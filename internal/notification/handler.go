package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/grocer-pickup/internal/domain/order"
	"github.com/example/grocer-pickup/internal/email"
	"github.com/example/grocer-pickup/internal/infrastructure/kafka"
	"github.com/example/grocer-pickup/internal/infrastructure/store"
)

// EmailSender is the slice of the email service the notifier needs.
type EmailSender interface {
	SendPickupConfirmation(to, referenceCode string, total int64, items []email.OrderItem) error
}

// Handler turns order events into customer emails.
type Handler struct {
	emailService EmailSender
	customers    store.CustomerStore
}

func NewHandler(emailService EmailSender, customers store.CustomerStore) *Handler {
	return &Handler{
		emailService: emailService,
		customers:    customers,
	}
}

// HandleEvent processes one message from the order event topic. Events other
// than order.placed are acknowledged without action.
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var envelope kafka.Envelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		log.Printf("[Notifier] failed to unmarshal envelope: %v", err)
		return err
	}

	if envelope.EventType != order.EventOrderPlaced {
		return nil
	}
	return h.handleOrderPlaced(ctx, envelope)
}

func (h *Handler) handleOrderPlaced(ctx context.Context, envelope kafka.Envelope) error {
	var e order.Placed
	if err := json.Unmarshal(envelope.Payload, &e); err != nil {
		log.Printf("[Notifier] failed to unmarshal order.placed payload: %v", err)
		return err
	}

	log.Printf("[Notifier] processing order.placed for order %d (%s)", e.OrderID, e.ReferenceCode)

	c, err := h.customers.GetCustomerByID(ctx, e.CustomerID)
	if err != nil {
		log.Printf("[Notifier] error loading customer %d: %v", e.CustomerID, err)
		return nil
	}
	if c == nil {
		log.Printf("[Notifier] customer not found: %d", e.CustomerID)
		return nil
	}

	emailItems := make([]email.OrderItem, len(e.Items))
	for i, item := range e.Items {
		emailItems[i] = email.OrderItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	if err := h.emailService.SendPickupConfirmation(c.Email, e.ReferenceCode, e.TotalPrice, emailItems); err != nil {
		log.Printf("[Notifier] failed to send email to %s: %v", c.Email, err)
		return err
	}

	log.Printf("[Notifier] pickup confirmation sent to %s for order %d", c.Email, e.OrderID)
	return nil
}
