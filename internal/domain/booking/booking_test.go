package booking

import (
	"errors"
	"testing"
	"time"

	"villamare/internal/domain/shared/daterange"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, checkIn, checkOut time.Time) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(checkIn, checkOut)
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	return dr
}

func validParams(t *testing.T) CreateParams {
	return CreateParams{
		ID:     "req-1",
		Range:  mustRange(t, date(2025, 12, 10), date(2025, 12, 13)),
		Guests: Guests{Adults: 2},
		Contact: Contact{
			Name:  "Anna Rossi",
			Email: "anna@example.com",
		},
	}
}

func TestNew(t *testing.T) {
	now := time.Date(2025, 11, 1, 9, 30, 0, 0, time.UTC)
	req, err := New(validParams(t), now)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if req.Status != StatusPending {
		t.Errorf("status = %q, want pending", req.Status)
	}
	if !req.CreatedAt.Equal(now) || !req.UpdatedAt.Equal(now) {
		t.Errorf("timestamps not set to now: %v / %v", req.CreatedAt, req.UpdatedAt)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	now := time.Now()

	t.Run("no adults", func(t *testing.T) {
		params := validParams(t)
		params.Guests = Guests{Adults: 0, Children: 2}
		if _, err := New(params, now); !errors.Is(err, ErrInvalidGuests) {
			t.Errorf("expected ErrInvalidGuests, got %v", err)
		}
	})

	t.Run("negative children", func(t *testing.T) {
		params := validParams(t)
		params.Guests = Guests{Adults: 1, Children: -1}
		if _, err := New(params, now); !errors.Is(err, ErrInvalidGuests) {
			t.Errorf("expected ErrInvalidGuests, got %v", err)
		}
	})

	t.Run("missing email", func(t *testing.T) {
		params := validParams(t)
		params.Contact.Email = ""
		if _, err := New(params, now); !errors.Is(err, ErrContactMissing) {
			t.Errorf("expected ErrContactMissing, got %v", err)
		}
	})

	t.Run("invalid range", func(t *testing.T) {
		params := validParams(t)
		params.Range = daterange.DateRange{}
		if _, err := New(params, now); !errors.Is(err, daterange.ErrInvalidRange) {
			t.Errorf("expected ErrInvalidRange, got %v", err)
		}
	})
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Status("archived").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestConflicts(t *testing.T) {
	confirmed := &BookingRequest{
		ID:     "confirmed-1",
		Range:  mustRange(t, date(2025, 12, 15), date(2025, 12, 20)),
		Status: StatusConfirmed,
	}
	pending := &BookingRequest{
		ID:     "pending-1",
		Range:  mustRange(t, date(2025, 12, 22), date(2025, 12, 28)),
		Status: StatusPending,
	}
	requests := []*BookingRequest{confirmed, pending}

	t.Run("overlap with confirmed", func(t *testing.T) {
		if !Conflicts(requests, mustRange(t, date(2025, 12, 18), date(2025, 12, 22))) {
			t.Error("expected conflict")
		}
	})

	t.Run("same-day turnover allowed", func(t *testing.T) {
		if Conflicts(requests, mustRange(t, date(2025, 12, 20), date(2025, 12, 25))) {
			t.Error("checkout day should be free for the next guest")
		}
	})

	t.Run("pending never blocks", func(t *testing.T) {
		if Conflicts(requests, mustRange(t, date(2025, 12, 23), date(2025, 12, 26))) {
			t.Error("pending request should not block")
		}
	})
}
