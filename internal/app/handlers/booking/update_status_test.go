package booking

import (
	"context"
	"errors"
	"testing"

	domainbooking "villamare/internal/domain/booking"
	"villamare/internal/infra/storage/memory"
)

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewBookingRepository()
	notifier := &recordingNotifier{}
	request := &RequestBookingHandler{Bookings: repo, Notifier: notifier}
	update := &UpdateStatusHandler{Bookings: repo, Notifier: notifier}

	if _, err := request.Handle(ctx, validCommand("req-1")); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	result, err := update.Handle(ctx, UpdateStatusCommand{RequestID: "req-1", Status: "confirmed"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.Status != "confirmed" {
		t.Errorf("status = %q", result.Status)
	}
	if len(notifier.changed) != 1 {
		t.Errorf("status change not notified: %v", notifier.changed)
	}
}

func TestUpdateStatusConflictOnConfirm(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewBookingRepository()
	request := &RequestBookingHandler{Bookings: repo}
	update := &UpdateStatusHandler{Bookings: repo}

	// Two pending requests for overlapping dates; only one may be confirmed.
	if _, err := request.Handle(ctx, validCommand("req-1")); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	overlapping := validCommand("req-2")
	overlapping.CheckIn = date(2025, 12, 11)
	overlapping.CheckOut = date(2025, 12, 14)
	if _, err := request.Handle(ctx, overlapping); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if _, err := update.Handle(ctx, UpdateStatusCommand{RequestID: "req-1", Status: "confirmed"}); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	_, err := update.Handle(ctx, UpdateStatusCommand{RequestID: "req-2", Status: "confirmed"})
	if !errors.Is(err, domainbooking.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Cancelling the first frees the dates for the second.
	if _, err := update.Handle(ctx, UpdateStatusCommand{RequestID: "req-1", Status: "cancelled"}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := update.Handle(ctx, UpdateStatusCommand{RequestID: "req-2", Status: "confirmed"}); err != nil {
		t.Fatalf("confirm after cancel: %v", err)
	}
}

func TestUpdateStatusErrors(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewBookingRepository()
	update := &UpdateStatusHandler{Bookings: repo}

	if _, err := update.Handle(ctx, UpdateStatusCommand{RequestID: "nope", Status: "confirmed"}); !errors.Is(err, domainbooking.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := update.Handle(ctx, UpdateStatusCommand{RequestID: "req-1", Status: "archived"}); !errors.Is(err, domainbooking.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}
