package booking

import (
	"context"

	"villamare/internal/app/dto"
	"villamare/internal/app/queries"
	domainbooking "villamare/internal/domain/booking"
)

const (
	listRequestsKey = "booking.list"
	getRequestKey   = "booking.get"
)

type ListRequestsQuery struct{}

func (q ListRequestsQuery) Key() string { return listRequestsKey }

// ListRequestsHandler returns every request in insertion order for the
// admin dashboard.
type ListRequestsHandler struct {
	Bookings domainbooking.Repository
}

func (h *ListRequestsHandler) Handle(ctx context.Context, _ ListRequestsQuery) (dto.BookingRequestCollection, error) {
	requests, err := h.Bookings.List(ctx)
	if err != nil {
		return dto.BookingRequestCollection{}, err
	}
	return dto.MapBookingRequests(requests), nil
}

type GetRequestQuery struct {
	RequestID string
}

func (q GetRequestQuery) Key() string { return getRequestKey }

type GetRequestHandler struct {
	Bookings domainbooking.Repository
}

func (h *GetRequestHandler) Handle(ctx context.Context, q GetRequestQuery) (dto.BookingRequestSummary, error) {
	request, err := h.Bookings.ByID(ctx, domainbooking.RequestID(q.RequestID))
	if err != nil {
		return dto.BookingRequestSummary{}, err
	}
	return dto.MapBookingRequest(request), nil
}

var (
	_ queries.Handler[ListRequestsQuery, dto.BookingRequestCollection] = (*ListRequestsHandler)(nil)
	_ queries.Handler[GetRequestQuery, dto.BookingRequestSummary]      = (*GetRequestHandler)(nil)
)
