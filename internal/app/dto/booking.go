package dto

import (
	"time"

	domainbooking "villamare/internal/domain/booking"
)

type BookingRequestSummary struct {
	ID        string    `json:"id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Adults    int       `json:"adults"`
	Children  int       `json:"children"`
	Guests    int       `json:"guests"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	Pet       bool      `json:"pet"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookingRequestCollection struct {
	Items []BookingRequestSummary `json:"items"`
}

func MapBookingRequest(request *domainbooking.BookingRequest) BookingRequestSummary {
	return BookingRequestSummary{
		ID:        string(request.ID),
		CheckIn:   request.Range.CheckIn,
		CheckOut:  request.Range.CheckOut,
		Adults:    request.Guests.Adults,
		Children:  request.Guests.Children,
		Guests:    request.Guests.Total(),
		Name:      request.Contact.Name,
		Email:     request.Contact.Email,
		Phone:     request.Contact.Phone,
		Message:   request.Contact.Message,
		Pet:       request.Pet,
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt,
		UpdatedAt: request.UpdatedAt,
	}
}

func MapBookingRequests(requests []*domainbooking.BookingRequest) BookingRequestCollection {
	items := make([]BookingRequestSummary, 0, len(requests))
	for _, request := range requests {
		items = append(items, MapBookingRequest(request))
	}
	return BookingRequestCollection{Items: items}
}
