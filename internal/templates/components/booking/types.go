package booking

import (
	"github.com/inteligenciarte/luxurystudio/internal/booking"
	"github.com/inteligenciarte/luxurystudio/internal/catalog"
)

const DialogID = "booking-dialog"

// Option is one checkbox in the form.
type Option struct {
	Label    string
	Selected bool
	Disabled bool
}

type ProcedureGroup struct {
	Category string
	Options  []Option
}

// FormView is everything the dialog needs to render one request.
type FormView struct {
	Open       bool
	Request    booking.Request
	Sections   booking.Sections
	Categories []Option
	Procedures []ProcedureGroup
	Periods    []Option
	WeekDays   []Option
	Notice     string
}

func NewFormView(cat *catalog.Catalog, state booking.State, r booking.Request) FormView {
	view := FormView{
		Open:     state == booking.StateEditing,
		Request:  r,
		Sections: booking.Visibility(r),
	}
	if !view.Open {
		return view
	}

	for _, category := range cat.Categories {
		view.Categories = append(view.Categories, Option{
			Label:    category.Name,
			Selected: r.HasCategory(category.Name),
			Disabled: category.ComingSoon,
		})
		if !r.HasCategory(category.Name) {
			continue
		}
		group := ProcedureGroup{Category: category.Name}
		for _, procedure := range category.Procedures {
			group.Options = append(group.Options, Option{
				Label:    procedure.Name,
				Selected: r.HasProcedure(procedure.Name),
				Disabled: !procedure.Available(),
			})
		}
		view.Procedures = append(view.Procedures, group)
	}

	for _, period := range cat.Periods {
		view.Periods = append(view.Periods, Option{
			Label:    period,
			Selected: r.HasPeriod(period),
			Disabled: r.WantsSpecificDate,
		})
	}
	for _, day := range cat.WeekDays {
		view.WeekDays = append(view.WeekDays, Option{
			Label:    day,
			Selected: r.HasWeekDay(day),
			Disabled: r.WantsSpecificDate,
		})
	}
	return view
}
