package booking

import (
	"context"
	"errors"
	"time"

	"villamare/internal/domain/shared/daterange"
)

var (
	ErrNotFound       = errors.New("booking: request not found")
	ErrInvalidStatus  = errors.New("booking: invalid status")
	ErrInvalidGuests  = errors.New("booking: at least one adult required")
	ErrContactMissing = errors.New("booking: contact name and email required")
	// ErrConflict means the requested range overlaps a confirmed stay.
	ErrConflict = errors.New("booking: dates already booked")
)

type RequestID string

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type Guests struct {
	Adults   int
	Children int
}

func (g Guests) Total() int { return g.Adults + g.Children }

type Contact struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// BookingRequest is a guest's stay proposal and its lifecycle. Requests are
// never deleted; an admin moves them between statuses instead.
type BookingRequest struct {
	ID        RequestID
	Range     daterange.DateRange
	Guests    Guests
	Contact   Contact
	Pet       bool
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateParams struct {
	ID      RequestID
	Range   daterange.DateRange
	Guests  Guests
	Contact Contact
	Pet     bool
}

// New builds a pending request with both timestamps set to now. It does not
// check for conflicts; the workflow consults the ledger before calling New.
func New(params CreateParams, now time.Time) (*BookingRequest, error) {
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if params.Guests.Adults < 1 || params.Guests.Children < 0 {
		return nil, ErrInvalidGuests
	}
	if params.Contact.Name == "" || params.Contact.Email == "" {
		return nil, ErrContactMissing
	}
	now = now.UTC()
	return &BookingRequest{
		ID:        params.ID,
		Range:     params.Range,
		Guests:    params.Guests,
		Contact:   params.Contact,
		Pet:       params.Pet,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Repository is the ledger port. The in-memory implementation scans linearly;
// a transactional backend can make HasConflict-then-Create atomic.
type Repository interface {
	Create(ctx context.Context, request *BookingRequest) error
	List(ctx context.Context) ([]*BookingRequest, error)
	ByID(ctx context.Context, id RequestID) (*BookingRequest, error)
	UpdateStatus(ctx context.Context, id RequestID, status Status) (*BookingRequest, error)
	ListConfirmed(ctx context.Context) ([]*BookingRequest, error)
	HasConflict(ctx context.Context, dr daterange.DateRange) (bool, error)
}

// Conflicts reports whether dr overlaps any confirmed request in the list.
// Pending and cancelled requests never block a candidate range.
func Conflicts(requests []*BookingRequest, dr daterange.DateRange) bool {
	for _, r := range requests {
		if r.Status != StatusConfirmed {
			continue
		}
		if r.Range.Overlaps(dr) {
			return true
		}
	}
	return false
}
