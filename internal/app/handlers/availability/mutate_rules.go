package availability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"stayable/internal/app/bus"
	"stayable/internal/app/dto"
	"stayable/internal/app/policies"
	domainavailability "stayable/internal/domain/availability"
	domainproperty "stayable/internal/domain/property"
	"stayable/internal/domain/shared/money"
)

const (
	createRuleKey = "availability.rules.create"
	updateRuleKey = "availability.rules.update"
	deleteRuleKey = "availability.rules.delete"
	listRulesKey  = "availability.rules.list"
)

// RulePayload is the host's rule form as received by the app layer.
type RulePayload struct {
	Available     bool
	MinStay       int
	MaxStay       int
	PriceOverride int64
	Currency      string
	Reason        string
}

func (p RulePayload) form() domainavailability.RuleForm {
	form := domainavailability.RuleForm{
		Available: p.Available,
		MinStay:   p.MinStay,
		MaxStay:   p.MaxStay,
		Reason:    p.Reason,
	}
	if p.PriceOverride != 0 {
		currency := p.Currency
		if currency == "" {
			currency = "USD"
		}
		form.PriceOverride = money.Money{Amount: p.PriceOverride, Currency: currency}
	}
	return form
}

type CreateRuleCommand struct {
	PropertyID string
	Dates      []time.Time
	Payload    RulePayload
}

func (c CreateRuleCommand) Key() string { return createRuleKey }

type UpdateRuleCommand struct {
	PropertyID string
	RuleID     string
	Payload    RulePayload
}

func (c UpdateRuleCommand) Key() string { return updateRuleKey }

type DeleteRuleCommand struct {
	PropertyID string
	RuleID     string
}

func (c DeleteRuleCommand) Key() string { return deleteRuleKey }

type ListRulesQuery struct {
	PropertyID string
}

func (q ListRulesQuery) Key() string { return listRulesKey }

// RulesHandler serves the host-facing rule CRUD. Mutations load the
// property's rule set, apply the aggregate operation, persist, then
// publish the recorded events. Concurrent mutations against one
// property are serialized by the repository's versioning.
type RulesHandler struct {
	Rules    domainavailability.Repository
	Notifier policies.Notifier
	Logger   *slog.Logger
	Now      func() time.Time
}

func (h *RulesHandler) HandleCreate(ctx context.Context, cmd CreateRuleCommand) (dto.RuleList, error) {
	rs, err := h.Rules.RuleSet(ctx, domainproperty.PropertyID(cmd.PropertyID))
	if err != nil {
		return dto.RuleList{}, err
	}
	selected := domainavailability.NewDateSet(cmd.Dates...)
	rules, err := rs.CreateRule(domainavailability.RuleID(uuid.NewString()), selected, cmd.Payload.form(), h.Now())
	if err != nil {
		return dto.RuleList{}, err
	}
	if err := h.save(ctx, rs); err != nil {
		return dto.RuleList{}, err
	}
	return dto.MapRuleList(cmd.PropertyID, rules), nil
}

func (h *RulesHandler) HandleUpdate(ctx context.Context, cmd UpdateRuleCommand) (dto.RuleList, error) {
	rs, err := h.Rules.RuleSet(ctx, domainproperty.PropertyID(cmd.PropertyID))
	if err != nil {
		return dto.RuleList{}, err
	}
	rules, err := rs.UpdateRule(domainavailability.RuleID(cmd.RuleID), cmd.Payload.form(), h.Now())
	if err != nil {
		return dto.RuleList{}, err
	}
	if err := h.save(ctx, rs); err != nil {
		return dto.RuleList{}, err
	}
	return dto.MapRuleList(cmd.PropertyID, rules), nil
}

func (h *RulesHandler) HandleDelete(ctx context.Context, cmd DeleteRuleCommand) (dto.RuleList, error) {
	rs, err := h.Rules.RuleSet(ctx, domainproperty.PropertyID(cmd.PropertyID))
	if err != nil {
		return dto.RuleList{}, err
	}
	rules, err := rs.DeleteRule(domainavailability.RuleID(cmd.RuleID), h.Now())
	if err != nil {
		return dto.RuleList{}, err
	}
	if err := h.save(ctx, rs); err != nil {
		return dto.RuleList{}, err
	}
	return dto.MapRuleList(cmd.PropertyID, rules), nil
}

func (h *RulesHandler) HandleList(ctx context.Context, q ListRulesQuery) (dto.RuleList, error) {
	rs, err := h.Rules.RuleSet(ctx, domainproperty.PropertyID(q.PropertyID))
	if err != nil {
		return dto.RuleList{}, err
	}
	return dto.MapRuleList(q.PropertyID, rs.Rules), nil
}

func (h *RulesHandler) save(ctx context.Context, rs *domainavailability.RuleSet) error {
	if err := h.Rules.Save(ctx, rs); err != nil {
		return err
	}
	pending := rs.Pending()
	rs.Clear()
	if h.Notifier == nil || len(pending) == 0 {
		return nil
	}
	if err := h.Notifier.Publish(ctx, pending); err != nil {
		// Durability of the rules themselves is already settled; event
		// delivery is best-effort at this layer.
		if h.Logger != nil {
			h.Logger.Warn("rule event publish failed", "property_id", rs.PropertyID, "error", err)
		}
	}
	return nil
}

// Register wires all rule operations into the bus.
func (h *RulesHandler) Register(b *bus.InMemory) {
	bus.Register[CreateRuleCommand, dto.RuleList](b, createRuleKey, bus.HandlerFunc[CreateRuleCommand, dto.RuleList](h.HandleCreate))
	bus.Register[UpdateRuleCommand, dto.RuleList](b, updateRuleKey, bus.HandlerFunc[UpdateRuleCommand, dto.RuleList](h.HandleUpdate))
	bus.Register[DeleteRuleCommand, dto.RuleList](b, deleteRuleKey, bus.HandlerFunc[DeleteRuleCommand, dto.RuleList](h.HandleDelete))
	bus.Register[ListRulesQuery, dto.RuleList](b, listRulesKey, bus.HandlerFunc[ListRulesQuery, dto.RuleList](h.HandleList))
}
