package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	domainavailability "villamare/internal/domain/availability"
	domainrange "villamare/internal/domain/shared/daterange"
)

const dateLayout = "2006-01-02"

// HTTPProvider queries a channel manager over a JSON endpoint:
//
//	GET {endpoint}?from=2026-07-01&to=2026-07-10
//	-> [{"date":"2026-07-03","available":false}, ...]
//
// Days the channel omits default to available. Any transport, status or
// decoding failure is wrapped in an IntegrationError so the caller can tell
// "channel says free" apart from "channel unreachable".
type HTTPProvider struct {
	Client   *http.Client
	Endpoint string
	Source   string
}

func NewHTTPProvider(endpoint, source string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		Client:   &http.Client{Timeout: timeout},
		Endpoint: endpoint,
		Source:   source,
	}
}

type channelDay struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

func (p *HTTPProvider) Fetch(ctx context.Context, from, to time.Time) ([]domainavailability.Record, error) {
	from = domainrange.Day(from)
	to = domainrange.Day(to)

	endpoint, err := url.Parse(p.Endpoint)
	if err != nil {
		return nil, p.fail(err)
	}
	query := endpoint.Query()
	query.Set("from", from.Format(dateLayout))
	query.Set("to", to.Format(dateLayout))
	endpoint.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, p.fail(err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := p.Client.Do(request)
	if err != nil {
		return nil, p.fail(err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, p.fail(fmt.Errorf("unexpected status %d", response.StatusCode))
	}

	var days []channelDay
	if err := json.NewDecoder(response.Body).Decode(&days); err != nil {
		return nil, p.fail(fmt.Errorf("decode response: %w", err))
	}

	reported := make(map[time.Time]bool, len(days))
	for _, day := range days {
		parsed, err := time.ParseInLocation(dateLayout, day.Date, time.UTC)
		if err != nil {
			return nil, p.fail(fmt.Errorf("bad date %q: %w", day.Date, err))
		}
		reported[parsed] = day.Available
	}

	// Cover every day of the requested range; unreported days are available.
	var records []domainavailability.Record
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		available, ok := reported[d]
		if !ok {
			available = true
		}
		records = append(records, domainavailability.Record{
			Date:      d,
			Available: available,
			Source:    p.Source,
		})
	}
	return records, nil
}

func (p *HTTPProvider) fail(err error) error {
	return &domainavailability.IntegrationError{Source: p.Source, Err: err}
}

var _ domainavailability.Provider = (*HTTPProvider)(nil)
