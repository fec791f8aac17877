package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"villamare/internal/domain/shared/daterange"
)

// SourceInternal labels availability derived from the property's own ledger
// of confirmed bookings, as opposed to an external sales channel.
const SourceInternal = "internal"

// Record is a per-calendar-day availability assertion. Dates carry no time
// component; a merged result holds exactly one record per distinct date.
type Record struct {
	Date      time.Time `json:"date"`
	Available bool      `json:"available"`
	Source    string    `json:"source"`
}

// Provider queries one external sales channel for per-day availability
// covering every day in [from, to] inclusive. Days the channel has no
// opinion on default to available. A failing provider must return an
// IntegrationError, never a silently empty "fully available" result.
type Provider interface {
	Fetch(ctx context.Context, from, to time.Time) ([]Record, error)
}

// IntegrationError wraps a channel failure so callers can tell "the channel
// said available" apart from "the channel could not be reached". Treating
// the latter as available would invite overbooking.
type IntegrationError struct {
	Source string
	Err    error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("availability: channel %q failed: %v", e.Source, e.Err)
}

func (e *IntegrationError) Unwrap() error { return e.Err }

// Merge combines the local calendar with externally reported records into a
// single authoritative view. For a date present in both inputs availability
// is the logical AND; any source asserting unavailable wins. When the merged
// result is blocked, the recorded source is the first external source that
// reported the block, falling back to the local source only when no channel
// did. Dates present in one input pass through unchanged. The result is
// sorted by date ascending.
func Merge(local, external []Record) []Record {
	type key = time.Time
	merged := make(map[key]Record)
	for _, rec := range local {
		rec.Date = daterange.Day(rec.Date)
		merged[rec.Date] = rec
	}
	for _, rec := range external {
		rec.Date = daterange.Day(rec.Date)
		existing, ok := merged[rec.Date]
		if !ok {
			merged[rec.Date] = rec
			continue
		}
		combined := Record{
			Date:      rec.Date,
			Available: existing.Available && rec.Available,
			Source:    existing.Source,
		}
		alreadyBlockedByChannel := !existing.Available && existing.Source != SourceInternal
		if !rec.Available && rec.Source != SourceInternal && !alreadyBlockedByChannel {
			combined.Source = rec.Source
		}
		merged[rec.Date] = combined
	}

	out := make([]Record, 0, len(merged))
	for _, rec := range merged {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// RangeAvailable reports whether every night of the stay is free in the
// merged record set. The checkout day is excluded; dates absent from the set
// are treated as available by default.
func RangeAvailable(dr daterange.DateRange, records []Record) bool {
	blocked := make(map[time.Time]bool, len(records))
	for _, rec := range records {
		if !rec.Available {
			blocked[daterange.Day(rec.Date)] = true
		}
	}
	free := true
	dr.EachDay(func(day time.Time) {
		if blocked[day] {
			free = false
		}
	})
	return free
}
