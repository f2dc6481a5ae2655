// internal/booking/message.go
package booking

import (
	"fmt"
	"strings"
)

const (
	greetingLine        = "Olá! Gostaria de agendar um horário."
	returningClientLine = "Já sou cliente."
	newClientLine       = "Sou um(a) novo(a) cliente."
	timeHeaderLine      = "Preferências de Horário:"
	noTimePreference    = "Nenhuma preferência de horário informada."
	closingLine         = "Aguardo contato, obrigado!"
)

// FormatDate turns a date picker value (YYYY-MM-DD) into DD/MM/YYYY.
// Values of any other shape are returned unchanged.
func FormatDate(isoDate string) string {
	parts := strings.Split(strings.TrimSpace(isoDate), "-")
	if len(parts) != 3 {
		return isoDate
	}
	year, month, day := parts[0], parts[1], parts[2]
	return fmt.Sprintf("%s/%s/%s", day, month, year)
}

// ClientStatusLine is the message line describing whether the sender is
// already a client of the studio.
func ClientStatusLine(isClient bool) string {
	if isClient {
		return returningClientLine
	}
	return newClientLine
}

// TimePreferenceLines returns the lines of the message's time block.
func TimePreferenceLines(r Request) []string {
	var lines []string
	if r.WantsSpecificDate && strings.TrimSpace(r.SpecificDate) != "" {
		lines = append(lines, fmt.Sprintf("Data específica: %s", FormatDate(r.SpecificDate)))
	} else {
		if len(r.PreferredPeriods) > 0 {
			lines = append(lines, fmt.Sprintf("Período(s): %s", strings.Join(r.PreferredPeriods, ", ")))
		}
		if len(r.PreferredWeekDays) > 0 {
			lines = append(lines, fmt.Sprintf("Dia(s) da semana: %s", strings.Join(r.PreferredWeekDays, ", ")))
		}
	}

	if len(lines) == 0 {
		return []string{noTimePreference}
	}
	return lines
}

// BuildMessage composes the WhatsApp text for r.
func BuildMessage(r Request) string {
	lines := []string{
		greetingLine,
		"",
		fmt.Sprintf("Nome: %s", r.Name),
		ClientStatusLine(r.IsClient),
		"",
		fmt.Sprintf("Procedimento(s): %s", strings.Join(r.SelectedProcedures, ", ")),
		"",
		timeHeaderLine,
	}
	lines = append(lines, TimePreferenceLines(r)...)
	lines = append(lines, "", closingLine)

	return strings.Join(lines, "\n")
}
