package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"villamare/internal/app/commands"
	"villamare/internal/app/policies"
	domainbooking "villamare/internal/domain/booking"
	domainrange "villamare/internal/domain/shared/daterange"
)

const requestBookingKey = "booking.request"

// ValidationError lists the required fields a submission is missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking: missing fields: %s", strings.Join(e.Fields, ", "))
}

type RequestBookingCommand struct {
	CommandID string
	CheckIn   time.Time
	CheckOut  time.Time
	Adults    int
	Children  int
	Pet       bool
	Name      string
	Email     string
	Phone     string
	Message   string
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

type RequestBookingResult struct {
	RequestID string `json:"request_id"`
}

// RequestBookingHandler is the submission workflow: validate required
// fields, ask the ledger for a conflict against confirmed stays, persist a
// pending request. Pricing is not consulted here; the quote endpoint serves
// display only, and the owner prices the stay when reviewing the request.
type RequestBookingHandler struct {
	Bookings domainbooking.Repository
	Notifier policies.Notifier
	Logger   *slog.Logger
	Now      func() time.Time
}

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (*RequestBookingResult, error) {
	if err := validate(cmd); err != nil {
		return nil, err
	}

	dr, err := domainrange.New(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, err
	}

	conflict, err := h.Bookings.HasConflict(ctx, dr)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, domainbooking.ErrConflict
	}

	id := cmd.CommandID
	if id == "" {
		id = uuid.NewString()
	}

	request, err := domainbooking.New(domainbooking.CreateParams{
		ID:     domainbooking.RequestID(id),
		Range:  dr,
		Guests: domainbooking.Guests{Adults: cmd.Adults, Children: cmd.Children},
		Contact: domainbooking.Contact{
			Name:    cmd.Name,
			Email:   cmd.Email,
			Phone:   cmd.Phone,
			Message: cmd.Message,
		},
		Pet: cmd.Pet,
	}, h.now())
	if err != nil {
		return nil, err
	}

	if err := h.Bookings.Create(ctx, request); err != nil {
		return nil, err
	}

	if h.Notifier != nil {
		if err := h.Notifier.BookingRequested(ctx, request); err != nil && h.Logger != nil {
			h.Logger.Warn("booking notification failed", "request_id", request.ID, "error", err)
		}
	}

	return &RequestBookingResult{RequestID: string(request.ID)}, nil
}

func (h *RequestBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

func validate(cmd RequestBookingCommand) error {
	var missing []string
	if cmd.CheckIn.IsZero() {
		missing = append(missing, "check_in")
	}
	if cmd.CheckOut.IsZero() {
		missing = append(missing, "check_out")
	}
	if cmd.Adults < 1 {
		missing = append(missing, "adults")
	}
	if strings.TrimSpace(cmd.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(cmd.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

var _ commands.Handler[RequestBookingCommand, *RequestBookingResult] = (*RequestBookingHandler)(nil)
