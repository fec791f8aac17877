package notify

import (
	"context"
	"encoding/json"
	"time"

	"villamare/internal/app/policies"
	domainbooking "villamare/internal/domain/booking"
)

// Publisher is the broker capability the notifier needs; satisfied by
// kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}

const (
	EventBookingRequested = "booking.requested"
	EventStatusChanged    = "booking.status_changed"
)

type bookingEvent struct {
	Event          string    `json:"event"`
	RequestID      string    `json:"request_id"`
	CheckIn        time.Time `json:"check_in"`
	CheckOut       time.Time `json:"check_out"`
	Guests         int       `json:"guests"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	At             time.Time `json:"at"`
}

// BrokerNotifier publishes booking lifecycle events keyed by request id, so
// a consumer sees one request's events in order.
type BrokerNotifier struct {
	Producer Publisher
	Topic    string
}

func (n *BrokerNotifier) BookingRequested(ctx context.Context, request *domainbooking.BookingRequest) error {
	return n.publish(ctx, bookingEvent{
		Event:     EventBookingRequested,
		RequestID: string(request.ID),
		CheckIn:   request.Range.CheckIn,
		CheckOut:  request.Range.CheckOut,
		Guests:    request.Guests.Total(),
		Status:    string(request.Status),
		At:        request.CreatedAt,
	})
}

func (n *BrokerNotifier) BookingStatusChanged(ctx context.Context, request *domainbooking.BookingRequest, previous domainbooking.Status) error {
	return n.publish(ctx, bookingEvent{
		Event:          EventStatusChanged,
		RequestID:      string(request.ID),
		CheckIn:        request.Range.CheckIn,
		CheckOut:       request.Range.CheckOut,
		Guests:         request.Guests.Total(),
		Status:         string(request.Status),
		PreviousStatus: string(previous),
		At:             request.UpdatedAt,
	})
}

func (n *BrokerNotifier) publish(ctx context.Context, event bookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.Producer.Publish(ctx, n.Topic, event.RequestID, payload)
}

var _ policies.Notifier = (*BrokerNotifier)(nil)
