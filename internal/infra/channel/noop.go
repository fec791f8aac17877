package channel

import (
	"context"
	"time"

	domainavailability "villamare/internal/domain/availability"
	domainrange "villamare/internal/domain/shared/daterange"
)

// NoopProvider stands in when no channel manager is configured. Every day in
// the requested range is reported available, so the merged calendar is
// driven by the local ledger alone.
type NoopProvider struct{}

func (NoopProvider) Fetch(ctx context.Context, from, to time.Time) ([]domainavailability.Record, error) {
	from = domainrange.Day(from)
	to = domainrange.Day(to)
	var records []domainavailability.Record
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		records = append(records, domainavailability.Record{
			Date:      d,
			Available: true,
			Source:    "none",
		})
	}
	return records, nil
}

var _ domainavailability.Provider = NoopProvider{}
