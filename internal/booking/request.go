// internal/booking/request.go
package booking

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/inteligenciarte/luxurystudio/internal/catalog"
)

// Request is the booking form's data. Values are treated as immutable:
// Reduce always returns a fresh Request and never shares slices with its
// input.
type Request struct {
	Name     string
	IsClient bool

	// SelectedCategories only filters which procedures the form shows.
	SelectedCategories []string
	SelectedProcedures []string

	WantsSpecificDate bool
	SpecificDate      string // YYYY-MM-DD
	PreferredPeriods  []string
	PreferredWeekDays []string
}

func (r Request) clone() Request {
	r.SelectedCategories = slices.Clone(r.SelectedCategories)
	r.SelectedProcedures = slices.Clone(r.SelectedProcedures)
	r.PreferredPeriods = slices.Clone(r.PreferredPeriods)
	r.PreferredWeekDays = slices.Clone(r.PreferredWeekDays)
	return r
}

func (r Request) HasCategory(category string) bool {
	return slices.Contains(r.SelectedCategories, category)
}

func (r Request) HasProcedure(procedure string) bool {
	return slices.Contains(r.SelectedProcedures, procedure)
}

func (r Request) HasPeriod(period string) bool {
	return slices.Contains(r.PreferredPeriods, period)
}

func (r Request) HasWeekDay(day string) bool {
	return slices.Contains(r.PreferredWeekDays, day)
}

type ActionKind string

const (
	ActionSetName              ActionKind = "set_name"
	ActionSetClient            ActionKind = "set_client"
	ActionToggleCategory       ActionKind = "toggle_category"
	ActionToggleProcedure      ActionKind = "toggle_procedure"
	ActionTogglePeriod         ActionKind = "toggle_period"
	ActionToggleWeekDay        ActionKind = "toggle_week_day"
	ActionSetWantsSpecificDate ActionKind = "set_wants_specific_date"
	ActionSetSpecificDate      ActionKind = "set_specific_date"
)

var ErrUnknownAction = errors.New("unknown action")

// ParseAction decodes an action from its wire form. Flag actions take a
// boolean value; the rest carry value verbatim.
func ParseAction(kind, value string) (Action, error) {
	switch k := ActionKind(kind); k {
	case ActionSetClient, ActionSetWantsSpecificDate:
		flag, err := strconv.ParseBool(value)
		if err != nil {
			return Action{}, fmt.Errorf("%s: invalid flag %q: %w", k, value, err)
		}
		return Action{Kind: k, Flag: flag}, nil
	case ActionSetName, ActionToggleCategory, ActionToggleProcedure,
		ActionTogglePeriod, ActionToggleWeekDay, ActionSetSpecificDate:
		return Action{Kind: k, Value: value}, nil
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
}

// Action is a single user edit of the form.
type Action struct {
	Kind  ActionKind
	Value string
	Flag  bool
}

func SetName(name string) Action          { return Action{Kind: ActionSetName, Value: name} }
func SetClient(isClient bool) Action      { return Action{Kind: ActionSetClient, Flag: isClient} }
func ToggleCategory(name string) Action   { return Action{Kind: ActionToggleCategory, Value: name} }
func ToggleProcedure(name string) Action  { return Action{Kind: ActionToggleProcedure, Value: name} }
func TogglePeriod(period string) Action   { return Action{Kind: ActionTogglePeriod, Value: period} }
func ToggleWeekDay(day string) Action     { return Action{Kind: ActionToggleWeekDay, Value: day} }
func SetSpecificDate(date string) Action  { return Action{Kind: ActionSetSpecificDate, Value: date} }
func SetWantsSpecificDate(on bool) Action { return Action{Kind: ActionSetWantsSpecificDate, Flag: on} }

// Reduce applies action to r and returns the resulting request.
// Actions that the form would not allow are no-ops: unknown labels,
// coming-soon procedures, and period or weekday toggles while a specific
// date is requested.
func Reduce(cat *catalog.Catalog, r Request, action Action) Request {
	next := r.clone()

	switch action.Kind {
	case ActionSetName:
		next.Name = action.Value

	case ActionSetClient:
		next.IsClient = action.Flag

	case ActionToggleCategory:
		if !cat.HasCategory(action.Value) {
			return next
		}
		if next.HasCategory(action.Value) {
			next.SelectedCategories = without(next.SelectedCategories, action.Value)
			owned := cat.ProcedureNames(action.Value)
			next.SelectedProcedures = slices.DeleteFunc(next.SelectedProcedures, func(p string) bool {
				return slices.Contains(owned, p)
			})
		} else {
			next.SelectedCategories = append(next.SelectedCategories, action.Value)
		}

	case ActionToggleProcedure:
		if cat.IsComingSoon(action.Value) {
			return next
		}
		if _, ok := cat.Procedure(action.Value); !ok {
			return next
		}
		next.SelectedProcedures = toggle(next.SelectedProcedures, action.Value)

	case ActionTogglePeriod:
		if next.WantsSpecificDate || !cat.HasPeriod(action.Value) {
			return next
		}
		next.PreferredPeriods = toggle(next.PreferredPeriods, action.Value)

	case ActionToggleWeekDay:
		if next.WantsSpecificDate || !cat.HasWeekDay(action.Value) {
			return next
		}
		next.PreferredWeekDays = toggle(next.PreferredWeekDays, action.Value)

	case ActionSetWantsSpecificDate:
		next.WantsSpecificDate = action.Flag
		if action.Flag {
			next.PreferredPeriods = nil
			next.PreferredWeekDays = nil
		}

	case ActionSetSpecificDate:
		next.SpecificDate = action.Value
	}

	return next
}

func toggle(values []string, value string) []string {
	if slices.Contains(values, value) {
		return without(values, value)
	}
	return append(values, value)
}

func without(values []string, value string) []string {
	return slices.DeleteFunc(values, func(v string) bool { return v == value })
}
