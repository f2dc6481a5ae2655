// internal/booking/validity.go
package booking

import "strings"

// Valid reports whether r can be submitted. Outside the specific-date mode
// both a period and a weekday are required.
func Valid(r Request) bool {
	return strings.TrimSpace(r.Name) != "" &&
		len(r.SelectedProcedures) > 0 &&
		TimePreferenceResolved(r)
}

func TimePreferenceResolved(r Request) bool {
	if r.WantsSpecificDate {
		return strings.TrimSpace(r.SpecificDate) != ""
	}
	return len(r.PreferredPeriods) > 0 && len(r.PreferredWeekDays) > 0
}

// Sections is the cosmetic projection of a request onto the form: which
// steps are rendered and which hints are shown. It has no say in validity.
type Sections struct {
	ShowProcedures     bool
	ShowProcedureList  bool
	ShowTimePreference bool
	ShowDateInput      bool
	ProcedureHint      bool
	TimeHint           bool
	CanSubmit          bool
}

func Visibility(r Request) Sections {
	showProcedures := strings.TrimSpace(r.Name) != ""
	showList := showProcedures && len(r.SelectedCategories) > 0
	showTime := showProcedures && len(r.SelectedProcedures) > 0
	timeResolved := TimePreferenceResolved(r)

	partialTime := len(r.PreferredPeriods) > 0 ||
		len(r.PreferredWeekDays) > 0 ||
		(r.WantsSpecificDate && r.SpecificDate == "")

	return Sections{
		ShowProcedures:     showProcedures,
		ShowProcedureList:  showList,
		ShowTimePreference: showTime,
		ShowDateInput:      showTime && r.WantsSpecificDate,
		ProcedureHint:      showList && len(r.SelectedProcedures) == 0,
		TimeHint:           showTime && !timeResolved && partialTime,
		CanSubmit:          Valid(r),
	}
}
