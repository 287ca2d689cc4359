package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "stayable/internal/domain/availability"
	domainproperty "stayable/internal/domain/property"
	"stayable/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

// RuleSetRepository persists a property's rule set as a single document
// so the declaration order, which doubles as lookup priority, survives
// round-trips intact. Saves use optimistic versioning: one mutation in
// flight per property wins.
type RuleSetRepository struct {
	col *mongo.Collection
}

func NewRuleSetRepository(db *mongo.Database) *RuleSetRepository {
	return &RuleSetRepository{col: db.Collection("availability_rules")}
}

func (r *RuleSetRepository) RuleSet(ctx context.Context, id domainproperty.PropertyID) (*domainavailability.RuleSet, error) {
	var doc ruleSetDocument
	err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domainavailability.NewRuleSet(id), nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RuleSetRepository) Save(ctx context.Context, rs *domainavailability.RuleSet) error {
	doc := newRuleSetDocument(rs)
	filter := bson.M{"_id": doc.ID, "version": rs.Version}
	doc.Version = rs.Version + 1
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
	rs.Version = doc.Version
	return nil
}

type ruleSetDocument struct {
	ID      string         `bson:"_id"`
	Rules   []ruleDocument `bson:"rules"`
	Version int64          `bson:"version"`
}

type ruleDocument struct {
	ID            string    `bson:"id"`
	StartDate     time.Time `bson:"start_date"`
	EndDate       time.Time `bson:"end_date"`
	Available     bool      `bson:"available"`
	MinStay       int       `bson:"min_stay,omitempty"`
	MaxStay       int       `bson:"max_stay,omitempty"`
	OverrideCents int64     `bson:"override_cents,omitempty"`
	Currency      string    `bson:"currency,omitempty"`
	Reason        string    `bson:"reason,omitempty"`
}

func newRuleSetDocument(rs *domainavailability.RuleSet) ruleSetDocument {
	doc := ruleSetDocument{ID: string(rs.PropertyID), Rules: make([]ruleDocument, 0, len(rs.Rules))}
	for _, rule := range rs.Rules {
		rd := ruleDocument{
			ID:        string(rule.ID),
			StartDate: rule.StartDate,
			EndDate:   rule.EndDate,
			Available: rule.Available,
			MinStay:   rule.MinStay,
			MaxStay:   rule.MaxStay,
			Reason:    rule.Reason,
		}
		if !rule.PriceOverride.IsZero() {
			rd.OverrideCents = rule.PriceOverride.Amount
			rd.Currency = rule.PriceOverride.Currency
		}
		doc.Rules = append(doc.Rules, rd)
	}
	return doc
}

func (d ruleSetDocument) toAggregate() *domainavailability.RuleSet {
	rs := domainavailability.NewRuleSet(domainproperty.PropertyID(d.ID))
	rs.Version = d.Version
	rs.Rules = make([]domainavailability.DateRule, 0, len(d.Rules))
	for _, rd := range d.Rules {
		rule := domainavailability.DateRule{
			ID:        domainavailability.RuleID(rd.ID),
			StartDate: rd.StartDate.UTC(),
			EndDate:   rd.EndDate.UTC(),
			Available: rd.Available,
			MinStay:   rd.MinStay,
			MaxStay:   rd.MaxStay,
			Reason:    rd.Reason,
		}
		if rd.OverrideCents != 0 {
			rule.PriceOverride = money.Money{Amount: rd.OverrideCents, Currency: rd.Currency}
		}
		rs.Rules = append(rs.Rules, rule)
	}
	return rs
}
