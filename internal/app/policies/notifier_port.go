package policies

import (
	"context"

	domainbooking "villamare/internal/domain/booking"
)

// Notifier publishes booking lifecycle changes to interested parties
// (message broker, mail, ...). Delivery failures must not fail the booking
// path; callers log and move on.
type Notifier interface {
	BookingRequested(ctx context.Context, request *domainbooking.BookingRequest) error
	BookingStatusChanged(ctx context.Context, request *domainbooking.BookingRequest, previous domainbooking.Status) error
}

// NoopNotifier is used when no broker is configured.
type NoopNotifier struct{}

func (NoopNotifier) BookingRequested(ctx context.Context, request *domainbooking.BookingRequest) error {
	return nil
}

func (NoopNotifier) BookingStatusChanged(ctx context.Context, request *domainbooking.BookingRequest, previous domainbooking.Status) error {
	return nil
}

var _ Notifier = NoopNotifier{}
