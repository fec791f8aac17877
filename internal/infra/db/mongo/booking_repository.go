package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "villamare/internal/domain/booking"
	domainrange "villamare/internal/domain/shared/daterange"
)

// BookingRepository is the durable ledger. The conflict scan runs as a
// server-side count over confirmed documents, which narrows the race window
// the in-memory store leaves open.
type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("booking_requests")}
}

func (r *BookingRepository) Create(ctx context.Context, request *domainbooking.BookingRequest) error {
	_, err := r.col.InsertOne(ctx, newRequestDocument(request))
	return err
}

func (r *BookingRepository) List(ctx context.Context) ([]*domainbooking.BookingRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeRequests(ctx, cursor)
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.RequestID) (*domainbooking.BookingRequest, error) {
	var doc requestDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toRequest(), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id domainbooking.RequestID, status domainbooking.Status) (*domainbooking.BookingRequest, error) {
	if !status.Valid() {
		return nil, domainbooking.ErrInvalidStatus
	}
	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC().UnixMilli(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc requestDocument
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": string(id)}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toRequest(), nil
}

func (r *BookingRepository) ListConfirmed(ctx context.Context) ([]*domainbooking.BookingRequest, error) {
	filter := bson.M{"status": string(domainbooking.StatusConfirmed)}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return decodeRequests(ctx, cursor)
}

func (r *BookingRepository) HasConflict(ctx context.Context, dr domainrange.DateRange) (bool, error) {
	filter := bson.M{
		"status":    string(domainbooking.StatusConfirmed),
		"check_in":  bson.M{"$lt": dr.CheckOut.UnixMilli()},
		"check_out": bson.M{"$gt": dr.CheckIn.UnixMilli()},
	}
	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func decodeRequests(ctx context.Context, cursor *mongo.Cursor) ([]*domainbooking.BookingRequest, error) {
	defer cursor.Close(ctx)
	var out []*domainbooking.BookingRequest
	for cursor.Next(ctx) {
		var doc requestDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toRequest())
	}
	return out, cursor.Err()
}

type requestDocument struct {
	ID        string `bson:"_id"`
	CheckIn   int64  `bson:"check_in"`
	CheckOut  int64  `bson:"check_out"`
	Adults    int    `bson:"adults"`
	Children  int    `bson:"children"`
	Name      string `bson:"name"`
	Email     string `bson:"email"`
	Phone     string `bson:"phone,omitempty"`
	Message   string `bson:"message,omitempty"`
	Pet       bool   `bson:"pet"`
	Status    string `bson:"status"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func newRequestDocument(request *domainbooking.BookingRequest) requestDocument {
	return requestDocument{
		ID:        string(request.ID),
		CheckIn:   request.Range.CheckIn.UnixMilli(),
		CheckOut:  request.Range.CheckOut.UnixMilli(),
		Adults:    request.Guests.Adults,
		Children:  request.Guests.Children,
		Name:      request.Contact.Name,
		Email:     request.Contact.Email,
		Phone:     request.Contact.Phone,
		Message:   request.Contact.Message,
		Pet:       request.Pet,
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt.UnixMilli(),
		UpdatedAt: request.UpdatedAt.UnixMilli(),
	}
}

func (d requestDocument) toRequest() *domainbooking.BookingRequest {
	return &domainbooking.BookingRequest{
		ID: domainbooking.RequestID(d.ID),
		Range: domainrange.DateRange{
			CheckIn:  timestampToTime(d.CheckIn),
			CheckOut: timestampToTime(d.CheckOut),
		},
		Guests: domainbooking.Guests{Adults: d.Adults, Children: d.Children},
		Contact: domainbooking.Contact{
			Name:    d.Name,
			Email:   d.Email,
			Phone:   d.Phone,
			Message: d.Message,
		},
		Pet:       d.Pet,
		Status:    domainbooking.Status(d.Status),
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ domainbooking.Repository = (*BookingRepository)(nil)
