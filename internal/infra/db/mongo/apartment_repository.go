package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainapartments "staybook/internal/domain/apartments"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type ApartmentRepository struct {
	col *mongo.Collection
}

func NewApartmentRepository(db *mongo.Database) *ApartmentRepository {
	return &ApartmentRepository{col: db.Collection("agg_apartment")}
}

func (r *ApartmentRepository) ByID(ctx context.Context, id domainapartments.ApartmentID) (*domainapartments.Apartment, error) {
	var doc apartmentDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainapartments.ErrApartmentNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ApartmentRepository) Save(ctx context.Context, a *domainapartments.Apartment) error {
	doc := newApartmentDocument(a)
	filter := bson.M{"_id": doc.ID, "version": a.Version}
	doc.Version = a.Version + 1
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
	a.Version = doc.Version
	return nil
}

func (r *ApartmentRepository) ListActive(ctx context.Context) ([]*domainapartments.Apartment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"state": string(domainapartments.ApartmentActive)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainapartments.Apartment
	for cursor.Next(ctx) {
		var doc apartmentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type apartmentDocument struct {
	ID          string          `bson:"_id"`
	Owner       string          `bson:"owner_id"`
	Title       string          `bson:"title"`
	Description string          `bson:"description"`
	Address     addressDocument `bson:"address"`
	Amenities   []string        `bson:"amenities"`
	GuestsLimit int             `bson:"guests_limit"`
	NightlyRate float64         `bson:"nightly_rate"`
	CleaningFee float64         `bson:"cleaning_fee"`
	Currency    string          `bson:"currency"`
	State       string          `bson:"state"`
	CreatedAt   int64           `bson:"created_at"`
	UpdatedAt   int64           `bson:"updated_at"`
	Version     int64           `bson:"version"`
}

type addressDocument struct {
	Line1   string `bson:"line1"`
	Line2   string `bson:"line2"`
	City    string `bson:"city"`
	Country string `bson:"country"`
}

func newApartmentDocument(a *domainapartments.Apartment) apartmentDocument {
	return apartmentDocument{
		ID:          string(a.ID),
		Owner:       string(a.Owner),
		Title:       a.Title,
		Description: a.Description,
		Address: addressDocument{
			Line1:   a.Address.Line1,
			Line2:   a.Address.Line2,
			City:    a.Address.City,
			Country: a.Address.Country,
		},
		Amenities:   a.Amenities,
		GuestsLimit: a.GuestsLimit,
		NightlyRate: a.NightlyRate,
		CleaningFee: a.CleaningFee,
		Currency:    a.Currency,
		State:       string(a.State),
		CreatedAt:   a.CreatedAt.UnixMilli(),
		UpdatedAt:   a.UpdatedAt.UnixMilli(),
		Version:     a.Version,
	}
}

func (d apartmentDocument) toAggregate() *domainapartments.Apartment {
	return &domainapartments.Apartment{
		ID:          domainapartments.ApartmentID(d.ID),
		Owner:       domainapartments.OwnerID(d.Owner),
		Title:       d.Title,
		Description: d.Description,
		Address: domainapartments.Address{
			Line1:   d.Address.Line1,
			Line2:   d.Address.Line2,
			City:    d.Address.City,
			Country: d.Address.Country,
		},
		Amenities:   d.Amenities,
		GuestsLimit: d.GuestsLimit,
		NightlyRate: d.NightlyRate,
		CleaningFee: d.CleaningFee,
		Currency:    d.Currency,
		State:       domainapartments.ApartmentState(d.State),
		CreatedAt:   time.UnixMilli(d.CreatedAt).UTC(),
		UpdatedAt:   time.UnixMilli(d.UpdatedAt).UTC(),
		Version:     d.Version,
	}
}
