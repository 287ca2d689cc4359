package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainavailability "stayable/internal/domain/availability"
	"stayable/internal/domain/shared/events"
	"stayable/internal/infra/storage/memory"
)

type captureNotifier struct {
	published []events.DomainEvent
}

func (c *captureNotifier) Publish(ctx context.Context, evts []events.DomainEvent) error {
	c.published = append(c.published, evts...)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
}

func newRulesHandler(notifier *captureNotifier) *RulesHandler {
	return &RulesHandler{
		Rules:    memory.NewRuleSetRepository(),
		Notifier: notifier,
		Now:      fixedNow,
	}
}

func TestRulesHandler_CreateListRoundTrip(t *testing.T) {
	notifier := &captureNotifier{}
	h := newRulesHandler(notifier)
	ctx := context.Background()

	created, err := h.HandleCreate(ctx, CreateRuleCommand{
		PropertyID: "prop-1",
		Dates: []time.Time{
			time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		},
		Payload: RulePayload{Available: false, Reason: "deep clean"},
	})
	require.NoError(t, err)
	require.Len(t, created.Rules, 1)
	assert.Equal(t, "2024-06-03", created.Rules[0].StartDate)
	assert.Equal(t, "2024-06-12", created.Rules[0].EndDate)
	assert.NotEmpty(t, created.Rules[0].ID)

	listed, err := h.HandleList(ctx, ListRulesQuery{PropertyID: "prop-1"})
	require.NoError(t, err)
	assert.Equal(t, created.Rules, listed.Rules)

	require.Len(t, notifier.published, 1)
	assert.Equal(t, "availability.rule_created", notifier.published[0].EventName())
}

func TestRulesHandler_UpdateAndDelete(t *testing.T) {
	notifier := &captureNotifier{}
	h := newRulesHandler(notifier)
	ctx := context.Background()

	created, err := h.HandleCreate(ctx, CreateRuleCommand{
		PropertyID: "prop-1",
		Dates:      []time.Time{time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		Payload:    RulePayload{Available: true, MinStay: 2},
	})
	require.NoError(t, err)
	ruleID := created.Rules[0].ID

	updated, err := h.HandleUpdate(ctx, UpdateRuleCommand{
		PropertyID: "prop-1",
		RuleID:     ruleID,
		Payload:    RulePayload{Available: true, MinStay: 3, PriceOverride: 15000, Currency: "USD"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Rules, 1)
	assert.Equal(t, 3, updated.Rules[0].MinStay)
	assert.Equal(t, int64(15000), updated.Rules[0].PriceOverride)
	// The span never changes on update.
	assert.Equal(t, created.Rules[0].StartDate, updated.Rules[0].StartDate)
	assert.Equal(t, created.Rules[0].EndDate, updated.Rules[0].EndDate)

	deleted, err := h.HandleDelete(ctx, DeleteRuleCommand{PropertyID: "prop-1", RuleID: ruleID})
	require.NoError(t, err)
	assert.Empty(t, deleted.Rules)

	_, err = h.HandleDelete(ctx, DeleteRuleCommand{PropertyID: "prop-1", RuleID: ruleID})
	assert.ErrorIs(t, err, domainavailability.ErrRuleNotFound)

	assert.Len(t, notifier.published, 3)
}

func TestRulesHandler_CreateRequiresDates(t *testing.T) {
	h := newRulesHandler(&captureNotifier{})
	_, err := h.HandleCreate(context.Background(), CreateRuleCommand{PropertyID: "prop-1"})
	assert.ErrorIs(t, err, domainavailability.ErrEmptySelection)
}

func TestGetMonthHandler_ClassifiesDays(t *testing.T) {
	rules := memory.NewRuleSetRepository()
	booked := memory.NewBookedDatesRepository()
	h := &GetMonthHandler{
		Rules:       rules,
		BookedDates: booked,
		Defaults:    domainavailability.StayBounds{MinStay: 1, MaxStay: 28},
		Now:         fixedNow,
	}
	rulesHandler := &RulesHandler{Rules: rules, Now: fixedNow}
	ctx := context.Background()

	_, err := rulesHandler.HandleCreate(ctx, CreateRuleCommand{
		PropertyID: "prop-1",
		Dates: []time.Time{
			time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		Payload: RulePayload{Available: false, Reason: "off-season"},
	})
	require.NoError(t, err)

	view, err := h.Handle(ctx, GetMonthQuery{PropertyID: "prop-1", Year: 2024, Month: time.June})
	require.NoError(t, err)
	require.Len(t, view.Days, 30)

	byDate := map[string]int{}
	for i, d := range view.Days {
		byDate[d.Date] = i
	}
	blocked := view.Days[byDate["2024-06-12"]]
	assert.False(t, blocked.Available)
	assert.Equal(t, "off-season", blocked.Reason)

	open := view.Days[byDate["2024-06-20"]]
	assert.True(t, open.Available)
}

func TestClickSelectionHandler(t *testing.T) {
	h := &ClickSelectionHandler{
		Rules:       memory.NewRuleSetRepository(),
		BookedDates: memory.NewBookedDatesRepository(),
		Defaults:    domainavailability.StayBounds{MinStay: 1, MaxStay: 28},
		Now:         fixedNow,
	}
	ctx := context.Background()

	first, err := h.Handle(ctx, ClickSelectionQuery{
		PropertyID: "prop-1",
		Date:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", first.CheckIn)
	assert.True(t, first.SelectingCheckout)

	second, err := h.Handle(ctx, ClickSelectionQuery{
		PropertyID: "prop-1",
		Selection: domainavailability.SelectionSession{
			CheckIn:           time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			SelectingCheckout: true,
		},
		Date: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", second.CheckIn)
	assert.Equal(t, "2024-06-04", second.CheckOut)
	assert.False(t, second.SelectingCheckout)
}
