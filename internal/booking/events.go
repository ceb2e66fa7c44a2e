package booking

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/notifier"
	"github.com/mauv0809/pitchside/internal/pubsub"
	"github.com/mauv0809/pitchside/internal/reservation"
)

// HandledTopics are the events that lead to a notification.
var HandledTopics = []pubsub.EventType{
	pubsub.EventReservationStatusChanged,
	pubsub.EventSlotOpened,
	pubsub.EventShowGameDetails,
}

// NewEventHandler creates a handler notifying through n. decoder decodes the
// payloads and must match the publisher's encoding.
func NewEventHandler(service *Service, n notifier.Notifier, decoder pubsub.PubSubClient, dryRun bool) *EventHandler {
	return &EventHandler{
		service:  service,
		notifier: n,
		decoder:  decoder,
		dryRun:   dryRun,
	}
}

// Handle decodes one event payload and dispatches it. Topics without a
// notification are ignored.
func (h *EventHandler) Handle(topic pubsub.EventType, payload []byte) error {
	return h.HandleDryRun(topic, payload, false)
}

// HandleDryRun is Handle with a per-delivery dry run. The configured dry run
// still applies when dryRun is false.
func (h *EventHandler) HandleDryRun(topic pubsub.EventType, payload []byte, dryRun bool) error {
	dryRun = dryRun || h.dryRun
	switch topic {
	case pubsub.EventReservationStatusChanged:
		var event pubsub.StatusChangedEvent
		if err := h.decoder.ProcessMessage(payload, &event); err != nil {
			return fmt.Errorf("failed to decode %s: %w", topic, err)
		}
		log.Info("Handling status change", "reservationID", event.ReservationID, "from", event.From, "to", event.To)
		return h.notifier.SendStatusChange(event, dryRun)

	case pubsub.EventSlotOpened:
		var event pubsub.SlotOpenedEvent
		if err := h.decoder.ProcessMessage(payload, &event); err != nil {
			return fmt.Errorf("failed to decode %s: %w", topic, err)
		}
		log.Info("Handling slot opened", "reservationID", event.ReservationID, "waiting", len(event.WaitList))
		return h.notifier.SendSlotOpened(event, dryRun)

	case pubsub.EventShowGameDetails:
		var event pubsub.GameDetailsEvent
		if err := h.decoder.ProcessMessage(payload, &event); err != nil {
			return fmt.Errorf("failed to decode %s: %w", topic, err)
		}
		r, ok := h.service.GetReservation(event.ReservationID)
		if !ok {
			return fmt.Errorf("%w: %d", reservation.ErrNotFound, event.ReservationID)
		}
		return h.notifier.SendGameDetails(r, dryRun)
	}
	log.Debug("Ignoring event without handler", "topic", topic)
	return nil
}

// Consume subscribes to the handled topics and dispatches until ctx is done.
// Messages are acked even when handling fails; a bad payload is never
// redelivered. When a subscription fails, the ones already open are closed
// and drained before the error is returned.
func (h *EventHandler) Consume(ctx context.Context, subscriber message.Subscriber) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, topic := range HandledTopics {
		messages, err := subscriber.Subscribe(ctx, string(topic))
		if err != nil {
			cancel()
			wg.Wait()
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
		wg.Add(1)
		go func(topic pubsub.EventType, messages <-chan *message.Message) {
			defer wg.Done()
			for msg := range messages {
				if err := h.Handle(topic, msg.Payload); err != nil {
					log.Error("Failed to handle event", "topic", topic, "uuid", msg.UUID, "error", err)
				}
				msg.Ack()
			}
			log.Debug("Subscription closed", "topic", topic)
		}(topic, messages)
	}
	log.Info("Consuming events", "topics", len(HandledTopics))
	<-ctx.Done()
	wg.Wait()
	return nil
}
