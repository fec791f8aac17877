package booking

import (
	"context"
	"log/slog"

	"villamare/internal/app/commands"
	"villamare/internal/app/dto"
	"villamare/internal/app/policies"
	domainbooking "villamare/internal/domain/booking"
)

const updateStatusKey = "booking.update_status"

type UpdateStatusCommand struct {
	RequestID string
	Status    string
}

func (c UpdateStatusCommand) Key() string { return updateStatusKey }

// UpdateStatusHandler moves a request between lifecycle statuses. Any status
// is reachable from any other, but a transition into confirmed re-checks the
// ledger first: the set of confirmed stays must never contain an overlapping
// pair.
type UpdateStatusHandler struct {
	Bookings domainbooking.Repository
	Notifier policies.Notifier
	Logger   *slog.Logger
}

func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (dto.BookingRequestSummary, error) {
	status := domainbooking.Status(cmd.Status)
	if !status.Valid() {
		return dto.BookingRequestSummary{}, domainbooking.ErrInvalidStatus
	}

	request, err := h.Bookings.ByID(ctx, domainbooking.RequestID(cmd.RequestID))
	if err != nil {
		return dto.BookingRequestSummary{}, err
	}

	if status == domainbooking.StatusConfirmed && request.Status != domainbooking.StatusConfirmed {
		confirmed, err := h.Bookings.ListConfirmed(ctx)
		if err != nil {
			return dto.BookingRequestSummary{}, err
		}
		if domainbooking.Conflicts(confirmed, request.Range) {
			return dto.BookingRequestSummary{}, domainbooking.ErrConflict
		}
	}

	previous := request.Status
	updated, err := h.Bookings.UpdateStatus(ctx, request.ID, status)
	if err != nil {
		return dto.BookingRequestSummary{}, err
	}

	if h.Notifier != nil && previous != updated.Status {
		if err := h.Notifier.BookingStatusChanged(ctx, updated, previous); err != nil && h.Logger != nil {
			h.Logger.Warn("status notification failed", "request_id", updated.ID, "error", err)
		}
	}

	return dto.MapBookingRequest(updated), nil
}

var _ commands.Handler[UpdateStatusCommand, dto.BookingRequestSummary] = (*UpdateStatusHandler)(nil)
