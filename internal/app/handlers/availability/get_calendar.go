package availability

import (
	"context"
	"time"

	"villamare/internal/app/dto"
	"villamare/internal/app/queries"
	domainavailability "villamare/internal/domain/availability"
	domainbooking "villamare/internal/domain/booking"
	domainrange "villamare/internal/domain/shared/daterange"
)

const (
	getCalendarKey       = "availability.calendar"
	checkAvailabilityKey = "availability.check"
)

type GetCalendarQuery struct {
	From time.Time
	To   time.Time
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

// GetCalendarHandler merges the ledger's confirmed stays with the external
// channel feed into one calendar. A failing channel surfaces as an
// IntegrationError; it is never downgraded to "fully available".
type GetCalendarHandler struct {
	Bookings domainbooking.Repository
	Channel  domainavailability.Provider
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	from := domainrange.Day(q.From)
	to := domainrange.Day(q.To)

	local, err := h.localRecords(ctx, from, to)
	if err != nil {
		return dto.Calendar{}, err
	}

	external, err := h.Channel.Fetch(ctx, from, to)
	if err != nil {
		return dto.Calendar{}, err
	}

	merged := domainavailability.Merge(local, external)
	return dto.MapCalendar(from, to, merged), nil
}

// localRecords blocks every night of every confirmed stay that touches the
// queried window, labelled with the internal source.
func (h *GetCalendarHandler) localRecords(ctx context.Context, from, to time.Time) ([]domainavailability.Record, error) {
	confirmed, err := h.Bookings.ListConfirmed(ctx)
	if err != nil {
		return nil, err
	}
	window := domainrange.DateRange{CheckIn: from, CheckOut: to.AddDate(0, 0, 1)}
	var records []domainavailability.Record
	for _, request := range confirmed {
		if !request.Range.Overlaps(window) {
			continue
		}
		request.Range.EachDay(func(day time.Time) {
			if day.Before(from) || day.After(to) {
				return
			}
			records = append(records, domainavailability.Record{
				Date:      day,
				Available: false,
				Source:    domainavailability.SourceInternal,
			})
		})
	}
	return records, nil
}

type CheckAvailabilityQuery struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (q CheckAvailabilityQuery) Key() string { return checkAvailabilityKey }

type CheckAvailabilityResult struct {
	Available bool `json:"available"`
}

// CheckAvailabilityHandler answers "is this stay free" across all sources.
type CheckAvailabilityHandler struct {
	Calendar *GetCalendarHandler
}

func (h *CheckAvailabilityHandler) Handle(ctx context.Context, q CheckAvailabilityQuery) (CheckAvailabilityResult, error) {
	dr, err := domainrange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return CheckAvailabilityResult{}, err
	}

	local, err := h.Calendar.localRecords(ctx, dr.CheckIn, dr.CheckOut)
	if err != nil {
		return CheckAvailabilityResult{}, err
	}
	external, err := h.Calendar.Channel.Fetch(ctx, dr.CheckIn, dr.CheckOut)
	if err != nil {
		return CheckAvailabilityResult{}, err
	}

	merged := domainavailability.Merge(local, external)
	return CheckAvailabilityResult{Available: domainavailability.RangeAvailable(dr, merged)}, nil
}

var (
	_ queries.Handler[GetCalendarQuery, dto.Calendar]                  = (*GetCalendarHandler)(nil)
	_ queries.Handler[CheckAvailabilityQuery, CheckAvailabilityResult] = (*CheckAvailabilityHandler)(nil)
)
