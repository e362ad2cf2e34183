package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainapartments "staybook/internal/domain/apartments"
	domainbooking "staybook/internal/domain/booking"
	domainpricing "staybook/internal/domain/pricing"
	domainrange "staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("agg_booking")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"guest_id": guestID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type bookingDocument struct {
	ID          string            `bson:"_id"`
	ApartmentID string            `bson:"apartment_id"`
	GuestID     string            `bson:"guest_id"`
	Range       rangeDocument     `bson:"range"`
	Guests      []guestDocument   `bson:"guests"`
	Nights      int               `bson:"nights"`
	TotalCents  int64             `bson:"total_cents"`
	Currency    string            `bson:"currency"`
	Breakdown   breakdownDocument `bson:"breakdown"`
	State       string            `bson:"state"`
	CreatedAt   int64             `bson:"created_at"`
	UpdatedAt   int64             `bson:"updated_at"`
	Version     int64             `bson:"version"`
}

type rangeDocument struct {
	CheckIn  int64 `bson:"check_in"`
	CheckOut int64 `bson:"check_out"`
}

type guestDocument struct {
	FullName string `bson:"full_name"`
	Age      int    `bson:"age"`
}

// breakdownDocument snapshots the quote the guest accepted; the applied offer
// is denormalized so the snapshot survives later offer edits.
type breakdownDocument struct {
	Nights              int     `bson:"nights"`
	NightlyRate         float64 `bson:"nightly_rate"`
	OriginalNightlyRate float64 `bson:"original_nightly_rate"`
	BasePrice           float64 `bson:"base_price"`
	CleaningFee         float64 `bson:"cleaning_fee"`
	Total               float64 `bson:"total"`
	DiscountAmount      float64 `bson:"discount_amount"`
	HasDiscount         bool    `bson:"has_discount"`
	AppliedOfferID      string  `bson:"applied_offer_id"`
	AppliedOfferTitle   string  `bson:"applied_offer_title"`
	AppliedDiscount     float64 `bson:"applied_discount"`
	Currency            string  `bson:"currency"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	guests := make([]guestDocument, 0, len(b.Guests))
	for _, g := range b.Guests {
		guests = append(guests, guestDocument{FullName: g.FullName, Age: g.Age})
	}
	breakdown := breakdownDocument{
		Nights:              b.Breakdown.Nights,
		NightlyRate:         b.Breakdown.NightlyRate,
		OriginalNightlyRate: b.Breakdown.OriginalNightlyRate,
		BasePrice:           b.Breakdown.BasePrice,
		CleaningFee:         b.Breakdown.CleaningFee,
		Total:               b.Breakdown.Total,
		DiscountAmount:      b.Breakdown.DiscountAmount,
		HasDiscount:         b.Breakdown.HasDiscount,
		Currency:            b.Breakdown.Currency,
	}
	if b.Breakdown.AppliedOffer != nil {
		breakdown.AppliedOfferID = string(b.Breakdown.AppliedOffer.ID)
		breakdown.AppliedOfferTitle = b.Breakdown.AppliedOffer.Title
		breakdown.AppliedDiscount = b.Breakdown.AppliedOffer.DiscountPercentage
	}
	return bookingDocument{
		ID:          string(b.ID),
		ApartmentID: string(b.ApartmentID),
		GuestID:     b.GuestID,
		Range:       rangeDocument{CheckIn: b.Range.CheckIn.UnixMilli(), CheckOut: b.Range.CheckOut.UnixMilli()},
		Guests:      guests,
		Nights:      b.Nights,
		TotalCents:  b.Total.Amount,
		Currency:    b.Total.Currency,
		Breakdown:   breakdown,
		State:       string(b.State),
		CreatedAt:   b.CreatedAt.UnixMilli(),
		UpdatedAt:   b.UpdatedAt.UnixMilli(),
		Version:     b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	guests := make([]domainbooking.Guest, 0, len(d.Guests))
	for _, g := range d.Guests {
		guests = append(guests, domainbooking.Guest{FullName: g.FullName, Age: g.Age})
	}
	breakdown := domainpricing.Breakdown{
		Nights:              d.Breakdown.Nights,
		NightlyRate:         d.Breakdown.NightlyRate,
		OriginalNightlyRate: d.Breakdown.OriginalNightlyRate,
		BasePrice:           d.Breakdown.BasePrice,
		CleaningFee:         d.Breakdown.CleaningFee,
		Total:               d.Breakdown.Total,
		DiscountAmount:      d.Breakdown.DiscountAmount,
		HasDiscount:         d.Breakdown.HasDiscount,
		Currency:            d.Breakdown.Currency,
	}
	return &domainbooking.Booking{
		ID:          domainbooking.BookingID(d.ID),
		ApartmentID: domainapartments.ApartmentID(d.ApartmentID),
		GuestID:     d.GuestID,
		Range:       domainrange.DateRange{CheckIn: timestampToTime(d.Range.CheckIn), CheckOut: timestampToTime(d.Range.CheckOut)},
		Guests:      guests,
		Nights:      d.Nights,
		Total:       money.Money{Amount: d.TotalCents, Currency: d.Currency},
		Breakdown:   breakdown,
		State:       domainbooking.BookingState(d.State),
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
		Version:     d.Version,
	}
}
