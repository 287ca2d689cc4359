package property

import (
	"context"
	"errors"
	"strings"
	"time"

	"stayable/internal/domain/shared/money"
)

var (
	ErrTitleRequired = errors.New("property: title is required")
	ErrGuestsLimit   = errors.New("property: max guests must be at least 1")
	ErrBaseRate      = errors.New("property: base nightly rate must be positive")
	ErrNotFound      = errors.New("property: not found")
)

type PropertyID string
type HostID string

// Property is the slim projection of a listing this engine needs: the
// capacity cap for guest validation and the base nightly rate the
// pricing resolver falls back to when no rule overrides a night.
type Property struct {
	ID        PropertyID
	Host      HostID
	Title     string
	MaxGuests int
	BaseRate  money.Money
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	ByID(ctx context.Context, id PropertyID) (*Property, error)
	Save(ctx context.Context, p *Property) error
}

type CreateParams struct {
	ID        PropertyID
	Host      HostID
	Title     string
	MaxGuests int
	BaseRate  money.Money
	Now       time.Time
}

func New(params CreateParams) (*Property, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.MaxGuests < 1 {
		return nil, ErrGuestsLimit
	}
	if !params.BaseRate.IsPositive() {
		return nil, ErrBaseRate
	}
	now := params.Now.UTC()
	return &Property{
		ID:        params.ID,
		Host:      params.Host,
		Title:     params.Title,
		MaxGuests: params.MaxGuests,
		BaseRate:  params.BaseRate,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
