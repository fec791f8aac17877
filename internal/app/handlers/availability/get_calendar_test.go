package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	domainavailability "villamare/internal/domain/availability"
	domainbooking "villamare/internal/domain/booking"
	domainrange "villamare/internal/domain/shared/daterange"
	"villamare/internal/infra/storage/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type stubProvider struct {
	records []domainavailability.Record
	err     error
}

func (p stubProvider) Fetch(ctx context.Context, from, to time.Time) ([]domainavailability.Record, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.records, nil
}

func confirmedRequest(t *testing.T, repo *memory.BookingRepository, id string, checkIn, checkOut time.Time) {
	t.Helper()
	ctx := context.Background()
	dr, err := domainrange.New(checkIn, checkOut)
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	request, err := domainbooking.New(domainbooking.CreateParams{
		ID:      domainbooking.RequestID(id),
		Range:   dr,
		Guests:  domainbooking.Guests{Adults: 2},
		Contact: domainbooking.Contact{Name: "Anna Rossi", Email: "anna@example.com"},
	}, time.Now())
	if err != nil {
		t.Fatalf("booking.New: %v", err)
	}
	if err := repo.Create(ctx, request); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, request.ID, domainbooking.StatusConfirmed); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
}

func TestGetCalendarMergesLedgerAndChannel(t *testing.T) {
	repo := memory.NewBookingRepository()
	confirmedRequest(t, repo, "req-1", date(2025, 12, 15), date(2025, 12, 17))

	handler := &GetCalendarHandler{
		Bookings: repo,
		Channel: stubProvider{records: []domainavailability.Record{
			{Date: date(2025, 12, 18), Available: false, Source: "booking.com"},
			{Date: date(2025, 12, 15), Available: true, Source: "booking.com"},
		}},
	}

	calendar, err := handler.Handle(context.Background(), GetCalendarQuery{
		From: date(2025, 12, 14),
		To:   date(2025, 12, 20),
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	byDate := make(map[string]struct {
		available bool
		source    string
	})
	for _, day := range calendar.Days {
		byDate[day.Date] = struct {
			available bool
			source    string
		}{day.Available, day.Source}
	}

	if day := byDate["2025-12-15"]; day.available || day.source != domainavailability.SourceInternal {
		t.Errorf("2025-12-15 = %+v, want blocked by internal", day)
	}
	if day := byDate["2025-12-16"]; day.available {
		t.Errorf("2025-12-16 should be blocked by the confirmed stay")
	}
	if day := byDate["2025-12-18"]; day.available || day.source != "booking.com" {
		t.Errorf("2025-12-18 = %+v, want blocked by booking.com", day)
	}
	if _, present := byDate["2025-12-17"]; present {
		// Checkout day of the confirmed stay and unreported by the channel:
		// no record means available by default.
		t.Error("2025-12-17 should have no blocking record")
	}
}

func TestGetCalendarSurfacesChannelFailure(t *testing.T) {
	repo := memory.NewBookingRepository()
	wantErr := &domainavailability.IntegrationError{Source: "booking.com", Err: errors.New("timeout")}
	handler := &GetCalendarHandler{Bookings: repo, Channel: stubProvider{err: wantErr}}

	_, err := handler.Handle(context.Background(), GetCalendarQuery{
		From: date(2025, 12, 14),
		To:   date(2025, 12, 20),
	})
	var integrationErr *domainavailability.IntegrationError
	if !errors.As(err, &integrationErr) {
		t.Fatalf("channel failure must surface, got %v", err)
	}
}

func TestCheckAvailability(t *testing.T) {
	repo := memory.NewBookingRepository()
	confirmedRequest(t, repo, "req-1", date(2025, 12, 15), date(2025, 12, 17))
	calendar := &GetCalendarHandler{Bookings: repo, Channel: stubProvider{}}
	handler := &CheckAvailabilityHandler{Calendar: calendar}

	t.Run("blocked by confirmed stay", func(t *testing.T) {
		result, err := handler.Handle(context.Background(), CheckAvailabilityQuery{
			CheckIn:  date(2025, 12, 16),
			CheckOut: date(2025, 12, 19),
		})
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if result.Available {
			t.Error("overlap with confirmed stay should be unavailable")
		}
	})

	t.Run("same-day turnover is free", func(t *testing.T) {
		result, err := handler.Handle(context.Background(), CheckAvailabilityQuery{
			CheckIn:  date(2025, 12, 17),
			CheckOut: date(2025, 12, 20),
		})
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if !result.Available {
			t.Error("stay starting on the checkout day should be available")
		}
	})
}
