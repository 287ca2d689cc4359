package memory

import (
	"context"
	"sync"

	domainavailability "stayable/internal/domain/availability"
	domainproperty "stayable/internal/domain/property"
)

// PropertyRepository is an in-memory implementation for tests and demos.
type PropertyRepository struct {
	mu    sync.RWMutex
	items map[domainproperty.PropertyID]*domainproperty.Property
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{items: make(map[domainproperty.PropertyID]*domainproperty.Property)}
}

// ByID returns a property or property.ErrNotFound.
func (r *PropertyRepository) ByID(ctx context.Context, id domainproperty.PropertyID) (*domainproperty.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domainproperty.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

// Save stores or updates a property entry.
func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.items[p.ID] = &clone
	return nil
}

// RuleSetRepository keeps per-property rule sets in memory, lazily
// creating an empty set on first access.
type RuleSetRepository struct {
	mu    sync.RWMutex
	items map[domainproperty.PropertyID][]domainavailability.DateRule
}

func NewRuleSetRepository() *RuleSetRepository {
	return &RuleSetRepository{items: make(map[domainproperty.PropertyID][]domainavailability.DateRule)}
}

func (r *RuleSetRepository) RuleSet(ctx context.Context, id domainproperty.PropertyID) (*domainavailability.RuleSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rs := domainavailability.NewRuleSet(id)
	stored := r.items[id]
	rs.Rules = make([]domainavailability.DateRule, len(stored))
	copy(rs.Rules, stored)
	return rs, nil
}

func (r *RuleSetRepository) Save(ctx context.Context, rs *domainavailability.RuleSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]domainavailability.DateRule, len(rs.Rules))
	copy(stored, rs.Rules)
	r.items[rs.PropertyID] = stored
	return nil
}

// BookedDatesRepository holds the already-booked dates per property, as
// supplied by the external bookings collaborator.
type BookedDatesRepository struct {
	mu    sync.RWMutex
	items map[domainproperty.PropertyID]domainavailability.DateSet
}

func NewBookedDatesRepository() *BookedDatesRepository {
	return &BookedDatesRepository{items: make(map[domainproperty.PropertyID]domainavailability.DateSet)}
}

func (r *BookedDatesRepository) UnavailableDates(ctx context.Context, id domainproperty.PropertyID) (domainavailability.DateSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := domainavailability.NewDateSet()
	for d := range r.items[id] {
		out.Add(d)
	}
	return out, nil
}

// MarkBooked records dates as taken; called when the bookings
// collaborator reports a confirmed stay.
func (r *BookedDatesRepository) MarkBooked(ctx context.Context, id domainproperty.PropertyID, dates domainavailability.DateSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.items[id]
	if !ok {
		set = domainavailability.NewDateSet()
		r.items[id] = set
	}
	for d := range dates {
		set.Add(d)
	}
	return nil
}
