package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproperty "stayable/internal/domain/property"
	"stayable/internal/domain/shared/money"
)

type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection("properties")}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperty.PropertyID) (*domainproperty.Property, error) {
	var doc propertyDocument
	err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domainproperty.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	doc := propertyDocument{
		ID:            string(p.ID),
		HostID:        string(p.Host),
		Title:         p.Title,
		MaxGuests:     p.MaxGuests,
		BaseRateCents: p.BaseRate.Amount,
		Currency:      p.BaseRate.Currency,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

type propertyDocument struct {
	ID            string    `bson:"_id"`
	HostID        string    `bson:"host_id"`
	Title         string    `bson:"title"`
	MaxGuests     int       `bson:"max_guests"`
	BaseRateCents int64     `bson:"base_rate_cents"`
	Currency      string    `bson:"currency"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func (d propertyDocument) toAggregate() *domainproperty.Property {
	return &domainproperty.Property{
		ID:        domainproperty.PropertyID(d.ID),
		Host:      domainproperty.HostID(d.HostID),
		Title:     d.Title,
		MaxGuests: d.MaxGuests,
		BaseRate:  money.Money{Amount: d.BaseRateCents, Currency: d.Currency},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
