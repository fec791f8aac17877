package pricing

import (
	"context"
	"time"

	"villamare/internal/app/dto"
	"villamare/internal/app/queries"
	domainpricing "villamare/internal/domain/pricing"
	domainrange "villamare/internal/domain/shared/daterange"
)

const quoteKey = "pricing.quote"

type QuoteQuery struct {
	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
	Children int
	Pet      bool
}

func (q QuoteQuery) Key() string { return quoteKey }

// QuoteHandler computes the itemized breakdown shown to the guest before
// submitting. It does not gate booking creation.
type QuoteHandler struct {
	Engine *domainpricing.Engine
}

func (h *QuoteHandler) Handle(ctx context.Context, q QuoteQuery) (dto.PriceBreakdown, error) {
	dr, err := domainrange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return dto.PriceBreakdown{}, err
	}
	breakdown, err := h.Engine.Quote(domainpricing.Stay{
		Range:    dr,
		Adults:   q.Adults,
		Children: q.Children,
		Pet:      q.Pet,
	})
	if err != nil {
		return dto.PriceBreakdown{}, err
	}
	return dto.MapBreakdown(breakdown), nil
}

var _ queries.Handler[QuoteQuery, dto.PriceBreakdown] = (*QuoteHandler)(nil)
