package dto

import (
	"time"

	domainavailability "villamare/internal/domain/availability"
)

type CalendarDay struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
	Source    string `json:"source"`
}

type Calendar struct {
	From time.Time     `json:"from"`
	To   time.Time     `json:"to"`
	Days []CalendarDay `json:"days"`
}

func MapCalendar(from, to time.Time, records []domainavailability.Record) Calendar {
	days := make([]CalendarDay, 0, len(records))
	for _, rec := range records {
		days = append(days, CalendarDay{
			Date:      rec.Date.Format("2006-01-02"),
			Available: rec.Available,
			Source:    rec.Source,
		})
	}
	return Calendar{From: from, To: to, Days: days}
}
