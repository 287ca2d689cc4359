package availability

import (
	"context"
	"time"

	"stayable/internal/app/bus"
	"stayable/internal/app/dto"
	"stayable/internal/app/policies"
	domainavailability "stayable/internal/domain/availability"
)

const clickSelectionKey = "availability.selection.click"

// ClickSelectionQuery advances a guest's selection session by one
// calendar click. The session state travels with the request: the
// transition itself is pure, so thin clients can keep no logic at all.
type ClickSelectionQuery struct {
	PropertyID string
	Selection  domainavailability.SelectionSession
	Date       time.Time
}

func (q ClickSelectionQuery) Key() string { return clickSelectionKey }

type ClickSelectionHandler struct {
	Rules       domainavailability.Repository
	BookedDates policies.BookedDates
	Defaults    domainavailability.StayBounds
	Now         func() time.Time
}

func (h *ClickSelectionHandler) Handle(ctx context.Context, q ClickSelectionQuery) (dto.Selection, error) {
	cc, err := calendarContext(ctx, q.PropertyID, h.Rules, h.BookedDates, h.Defaults, h.Now)
	if err != nil {
		return dto.Selection{}, err
	}
	next := q.Selection.Click(q.Date, cc)
	return dto.MapSelection(next), nil
}

var _ bus.Handler[ClickSelectionQuery, dto.Selection] = (*ClickSelectionHandler)(nil)
