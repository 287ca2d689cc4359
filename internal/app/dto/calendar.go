package dto

import (
	"sort"
	"time"

	"stayable/internal/domain/availability"
	"stayable/internal/domain/shared/daterange"
)

// CalendarDay is one grid cell of the month view with its render class.
type CalendarDay struct {
	Date      string `json:"date"`
	Past      bool   `json:"past"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
	InRange   bool   `json:"in_range"`
	Reason    string `json:"reason,omitempty"`
}

// MonthView is a navigable month of classified days. Month navigation
// is a pure view offset: the selection passed in is echoed untouched.
type MonthView struct {
	PropertyID string        `json:"property_id"`
	Year       int           `json:"year"`
	Month      int           `json:"month"`
	Days       []CalendarDay `json:"days"`
	Selection  Selection     `json:"selection"`
}

// BookedDates acknowledges an ingest of confirmed-stay dates.
type BookedDates struct {
	PropertyID string   `json:"property_id"`
	Dates      []string `json:"dates"`
}

// MapBookedDates renders the recorded set in calendar order.
func MapBookedDates(propertyID string, dates availability.DateSet) BookedDates {
	out := BookedDates{PropertyID: propertyID, Dates: make([]string, 0, dates.Len())}
	for d := range dates {
		out.Dates = append(out.Dates, FormatDay(d))
	}
	sort.Strings(out.Dates)
	return out
}

// Selection is the wire form of a guest's selection session.
type Selection struct {
	CheckIn           string `json:"check_in,omitempty"`
	CheckOut          string `json:"check_out,omitempty"`
	SelectingCheckout bool   `json:"selecting_checkout"`
}

const dayFormat = "2006-01-02"

func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dayFormat)
}

func ParseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return daterange.Day(t), nil
}

func MapSelection(s availability.SelectionSession) Selection {
	return Selection{
		CheckIn:           FormatDay(s.CheckIn),
		CheckOut:          FormatDay(s.CheckOut),
		SelectingCheckout: s.SelectingCheckout,
	}
}

// MapMonth classifies every day of the month for the given session.
func MapMonth(propertyID string, year int, month time.Month, s availability.SelectionSession, cc availability.CalendarContext) MonthView {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	view := MonthView{
		PropertyID: propertyID,
		Year:       year,
		Month:      int(month),
		Selection:  MapSelection(s),
	}
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		cls := s.Classify(d, cc)
		cd := CalendarDay{
			Date:      FormatDay(d),
			Past:      cls.Past,
			Available: cls.Available,
			Selected:  cls.Selected,
			InRange:   cls.InRange,
		}
		if r := cc.Rules.RuleFor(d); r != nil && r.Blocks() {
			cd.Reason = r.Reason
		}
		view.Days = append(view.Days, cd)
	}
	return view
}
