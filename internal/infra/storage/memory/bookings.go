package memory

import (
	"context"
	"sync"
	"time"

	domainbooking "villamare/internal/domain/booking"
	domainrange "villamare/internal/domain/shared/daterange"
)

// BookingRepository keeps the ledger in process memory. It is the reference
// store: HasConflict followed by Create is not atomic across concurrent
// writers, so a multi-writer deployment should swap in the mongo store and
// rely on its server-side conflict query.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.RequestID]*domainbooking.BookingRequest
	order []domainbooking.RequestID
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		items: make(map[domainbooking.RequestID]*domainbooking.BookingRequest),
	}
}

func (r *BookingRepository) Create(ctx context.Context, request *domainbooking.BookingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *request
	r.items[request.ID] = &clone
	r.order = append(r.order, request.ID)
	return nil
}

// List returns requests in insertion order.
func (r *BookingRepository) List(ctx context.Context) ([]*domainbooking.BookingRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainbooking.BookingRequest, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.items[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.RequestID) (*domainbooking.BookingRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	request, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	clone := *request
	return &clone, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id domainbooking.RequestID, status domainbooking.Status) (*domainbooking.BookingRequest, error) {
	if !status.Valid() {
		return nil, domainbooking.ErrInvalidStatus
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	request.Status = status
	request.UpdatedAt = time.Now().UTC()
	clone := *request
	return &clone, nil
}

func (r *BookingRepository) ListConfirmed(ctx context.Context) ([]*domainbooking.BookingRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.BookingRequest
	for _, id := range r.order {
		if r.items[id].Status != domainbooking.StatusConfirmed {
			continue
		}
		clone := *r.items[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *BookingRepository) HasConflict(ctx context.Context, dr domainrange.DateRange) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, request := range r.items {
		if request.Status != domainbooking.StatusConfirmed {
			continue
		}
		if request.Range.Overlaps(dr) {
			return true, nil
		}
	}
	return false, nil
}

var _ domainbooking.Repository = (*BookingRepository)(nil)
