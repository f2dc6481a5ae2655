// internal/templates/components/booking/dialog.go
package booking

import (
	"encoding/json"
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/inteligenciarte/luxurystudio/internal/booking"
)

const (
	formPath   = "/booking/form"
	openPath   = "/booking/open"
	closePath  = "/booking/close"
	submitPath = "/booking/submit"
	bodyID     = "booking-body"
)

// Dialog renders the booking modal, or an empty placeholder when closed.
func Dialog(view FormView) g.Node {
	if !view.Open {
		return h.Div(h.ID(DialogID))
	}

	return h.Div(
		h.ID(DialogID),
		h.Class("dialog-backdrop"),
		h.Div(
			h.Class("dialog"),
			g.Attr("role", "dialog"),
			g.Attr("aria-modal", "true"),
			g.Attr("aria-labelledby", "booking-title"),
			g.El("form",
				h.Class("dialog-close-form"),
				h.Method("post"),
				h.Action(closePath),
				swapDialog(closePath),
				h.Button(
					h.Type("submit"),
					h.Class("dialog-close"),
					g.Attr("aria-label", "Fechar"),
					g.Text("×"),
				),
			),
			h.H2(h.ID("booking-title"), g.Text("Agendamento via WhatsApp")),
			h.P(h.Class("dialog-subtitle"), g.Text("Preencha os dados para iniciar a conversa.")),
			g.El("form",
				h.ID("booking-form"),
				h.Method("post"),
				h.Action(submitPath),
				swapDialog(submitPath),
				nameField(view.Request.Name),
				Body(view),
			),
		),
	)
}

// OpenButton is the link-list entry that opens the dialog.
func OpenButton(label string) g.Node {
	return g.El("form",
		h.Method("post"),
		h.Action(openPath),
		swapDialog(openPath),
		h.Button(h.Type("submit"), h.Class("link-button"), g.Text(label)),
	)
}

// Body renders everything below the name field. Name edits swap only this
// part so the text input keeps focus.
func Body(view FormView) g.Node {
	s := view.Sections
	return h.Div(
		h.ID(bodyID),
		checkbox("isClient", "Já sou cliente", view.Request.IsClient, false,
			action(booking.ActionSetClient, strconv.FormatBool(!view.Request.IsClient))),
		g.If(s.ShowProcedures, categoriesField(view.Categories)),
		g.If(s.ShowProcedureList, proceduresField(view.Procedures, s.ProcedureHint)),
		g.If(s.ShowTimePreference, timeField(view)),
		g.If(view.Notice != "", h.P(h.Class("form-notice"), g.Attr("role", "alert"), g.Text(view.Notice))),
		h.Button(
			h.Type("submit"),
			h.Class("submit-button"),
			g.If(!s.CanSubmit, h.Disabled()),
			g.Text("Enviar via WhatsApp"),
		),
	)
}

func nameField(name string) g.Node {
	return h.Div(
		h.Class("field"),
		g.El("label", h.For("name"), g.Text("Seu Nome")),
		h.Input(
			h.Type("text"),
			h.ID("name"),
			h.Name("name"),
			h.Value(name),
			h.Placeholder("Ex: Maria da Silva"),
			g.Attr("autocomplete", "name"),
			g.Attr("required"),
			g.Attr("hx-post", formPath),
			g.Attr("hx-trigger", "input changed delay:300ms"),
			g.Attr("hx-vals", vals(booking.ActionSetName, "")),
			g.Attr("hx-target", "#"+bodyID),
			g.Attr("hx-select", "#"+bodyID),
			g.Attr("hx-swap", "outerHTML"),
		),
	)
}

func categoriesField(options []Option) g.Node {
	return g.El("fieldset",
		h.Class("field"),
		g.El("legend", g.Text("Qual serviço?")),
		h.Div(
			h.Class("option-grid"),
			g.Map(options, func(o Option) g.Node {
				return checkbox("", o.Label, o.Selected, o.Disabled, action(booking.ActionToggleCategory, o.Label))
			}),
		),
	)
}

func proceduresField(groups []ProcedureGroup, hint bool) g.Node {
	return g.El("fieldset",
		h.Class("field"),
		g.El("legend", g.Text("Qual procedimento?")),
		g.Map(groups, func(group ProcedureGroup) g.Node {
			return h.Div(
				h.Class("procedure-group"),
				h.P(h.Class("procedure-category"), g.Text(group.Category)),
				g.Map(group.Options, func(o Option) g.Node {
					return checkbox("", o.Label, o.Selected, o.Disabled, action(booking.ActionToggleProcedure, o.Label))
				}),
			)
		}),
		g.If(hint, h.P(h.Class("hint"), g.Text("Por favor, selecione ao menos um procedimento."))),
	)
}

func timeField(view FormView) g.Node {
	r := view.Request
	return g.El("fieldset",
		h.Class("field"),
		h.Div(
			h.Class("option-group"),
			h.P(h.Class("option-title"), g.Text("Período de Preferência")),
			g.Map(view.Periods, func(o Option) g.Node {
				return checkbox("", o.Label, o.Selected, o.Disabled, action(booking.ActionTogglePeriod, o.Label))
			}),
		),
		h.Div(
			h.Class("option-group"),
			h.P(h.Class("option-title"), g.Text("Dia da Semana")),
			g.Map(view.WeekDays, func(o Option) g.Node {
				return checkbox("", o.Label, o.Selected, o.Disabled, action(booking.ActionToggleWeekDay, o.Label))
			}),
		),
		h.Div(h.Class("divider"), g.El("span", g.Text("OU"))),
		checkbox("wantsSpecificDate", "Reservar um dia específico", r.WantsSpecificDate, false,
			action(booking.ActionSetWantsSpecificDate, strconv.FormatBool(!r.WantsSpecificDate))),
		g.If(view.Sections.ShowDateInput, h.Div(
			g.El("label", h.For("specificDate"), h.Class("sr-only"), g.Text("Data específica")),
			h.Input(
				h.Type("date"),
				h.ID("specificDate"),
				h.Name("specificDate"),
				h.Value(r.SpecificDate),
				g.Attr("required"),
				g.Attr("hx-post", formPath),
				g.Attr("hx-trigger", "change"),
				g.Attr("hx-vals", vals(booking.ActionSetSpecificDate, "")),
				g.Attr("hx-target", "#"+bodyID),
				g.Attr("hx-select", "#"+bodyID),
				g.Attr("hx-swap", "outerHTML"),
			),
		)),
		g.If(view.Sections.TimeHint, h.P(h.Class("hint"), g.Text("Por favor, complete sua preferência de horário ou selecione uma data."))),
	)
}

type formAction struct {
	kind  booking.ActionKind
	value string
}

func action(kind booking.ActionKind, value string) formAction {
	return formAction{kind: kind, value: value}
}

func checkbox(id, label string, checked, disabled bool, a formAction) g.Node {
	class := "check"
	if disabled {
		class += " disabled"
	}
	return g.El("label",
		h.Class(class),
		h.Input(
			h.Type("checkbox"),
			g.If(id != "", h.ID(id)),
			g.If(checked, h.Checked()),
			g.If(disabled, h.Disabled()),
			g.If(!disabled, g.Group([]g.Node{
				g.Attr("hx-post", formPath),
				g.Attr("hx-trigger", "change"),
				g.Attr("hx-vals", vals(a.kind, a.value)),
				g.Attr("hx-target", "#"+bodyID),
				g.Attr("hx-select", "#"+bodyID),
				g.Attr("hx-swap", "outerHTML"),
			})),
		),
		g.El("span", g.Text(label)),
	)
}

func swapDialog(path string) g.Node {
	return g.Group([]g.Node{
		g.Attr("hx-post", path),
		g.Attr("hx-target", "#"+DialogID),
		g.Attr("hx-swap", "outerHTML"),
	})
}

// vals encodes the hx-vals payload. An empty value is left out so the
// input's own field carries it.
func vals(kind booking.ActionKind, value string) string {
	payload := map[string]string{"action": string(kind)}
	if value != "" {
		payload["value"] = value
	}
	encoded, _ := json.Marshal(payload)
	return string(encoded)
}
