package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainapartments "staybook/internal/domain/apartments"
	domainoffers "staybook/internal/domain/offers"
)

type OfferRepository struct {
	col *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{col: db.Collection("agg_offer")}
}

func (r *OfferRepository) ByID(ctx context.Context, id domainoffers.OfferID) (*domainoffers.Offer, error) {
	var doc offerDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainoffers.ErrOfferNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *OfferRepository) Save(ctx context.Context, o *domainoffers.Offer) error {
	doc := newOfferDocument(o)
	filter := bson.M{"_id": doc.ID, "version": o.Version}
	doc.Version = o.Version + 1
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
	o.Version = doc.Version
	return nil
}

func (r *OfferRepository) Delete(ctx context.Context, id domainoffers.OfferID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainoffers.ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepository) List(ctx context.Context) ([]*domainoffers.Offer, error) {
	return r.find(ctx, bson.M{})
}

// ListForApartment returns offers whose stored scope is global or contains
// the apartment. Legacy string-encoded scopes cannot be matched inside the
// query, so the filter stays broad and the decoded scope does the final word.
func (r *OfferRepository) ListForApartment(ctx context.Context, apartmentID domainapartments.ApartmentID) ([]*domainoffers.Offer, error) {
	all, err := r.find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]*domainoffers.Offer, 0, len(all))
	for _, o := range all {
		if o.Scope.Includes(apartmentID) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *OfferRepository) find(ctx context.Context, filter bson.M) ([]*domainoffers.Offer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainoffers.Offer
	for cursor.Next(ctx) {
		var doc offerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type offerDocument struct {
	ID                 string  `bson:"_id"`
	Title              string  `bson:"title"`
	Description        string  `bson:"description"`
	DiscountPercentage float64 `bson:"discount_percentage"`
	ApartmentIDs       any     `bson:"apartment_ids"`
	ValidFrom          int64   `bson:"valid_from"`
	ValidUntil         int64   `bson:"valid_until"`
	CreatedAt          int64   `bson:"created_at"`
	UpdatedAt          int64   `bson:"updated_at"`
	Version            int64   `bson:"version"`
}

func newOfferDocument(o *domainoffers.Offer) offerDocument {
	var rawScope any
	if !o.Scope.IsAll() {
		ids := o.Scope.ApartmentIDs()
		strIDs := make([]string, 0, len(ids))
		for _, id := range ids {
			strIDs = append(strIDs, string(id))
		}
		rawScope = strIDs
	}
	return offerDocument{
		ID:                 string(o.ID),
		Title:              o.Title,
		Description:        o.Description,
		DiscountPercentage: o.DiscountPercentage,
		ApartmentIDs:       rawScope,
		ValidFrom:          o.ValidFrom.UnixMilli(),
		ValidUntil:         o.ValidUntil.UnixMilli(),
		CreatedAt:          o.CreatedAt.UnixMilli(),
		UpdatedAt:          o.UpdatedAt.UnixMilli(),
		Version:            o.Version,
	}
}

func (d offerDocument) toAggregate() *domainoffers.Offer {
	// Upstream rows have carried the scope as null, an id list, or a
	// JSON-encoded string. Normalize once here; a corrupt value yields
	// the empty scope, so the offer simply never matches.
	scope, err := domainoffers.NormalizeScope(normalizeBSON(d.ApartmentIDs))
	if err != nil {
		scope = domainoffers.NoApartments()
	}
	return &domainoffers.Offer{
		ID:                 domainoffers.OfferID(d.ID),
		Title:              d.Title,
		Description:        d.Description,
		DiscountPercentage: d.DiscountPercentage,
		Scope:              scope,
		ValidFrom:          timestampToTime(d.ValidFrom),
		ValidUntil:         timestampToTime(d.ValidUntil),
		CreatedAt:          timestampToTime(d.CreatedAt),
		UpdatedAt:          timestampToTime(d.UpdatedAt),
		Version:            d.Version,
	}
}

// normalizeBSON flattens driver-specific list/document types into plain Go
// values before scope normalization.
func normalizeBSON(raw any) any {
	switch v := raw.(type) {
	case bson.A:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, normalizeBSON(item))
		}
		return out
	case bson.M:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = normalizeBSON(item)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(v))
		for _, elem := range v {
			out[elem.Key] = normalizeBSON(elem.Value)
		}
		return out
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return raw
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
