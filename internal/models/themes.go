// internal/models/themes.go
package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Accent and muted colors back headings and borders, so they use the AA large-text threshold.
const wcagAALargeContrastRatio = 3.0
const wcagAABodyContrastRatio = 4.5
const defaultThemeBackground = "#000000"
const defaultThemeAccent = "#fcd34d"
const defaultThemeText = "#f5f5f4"
const defaultThemeMuted = "#a8a29e"

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// Theme is the studio's brand palette rendered into CSS custom properties.
type Theme struct {
	Background string `json:"background"`
	Accent     string `json:"accent"`
	Text       string `json:"text"`
	Muted      string `json:"muted"`
}

func DefaultTheme() Theme {
	return Theme{
		Background: defaultThemeBackground,
		Accent:     defaultThemeAccent,
		Text:       defaultThemeText,
		Muted:      defaultThemeMuted,
	}
}

// WithDefaults fills empty or malformed colors from the default palette.
func (t Theme) WithDefaults() Theme {
	defaults := DefaultTheme()
	return Theme{
		Background: colorOrDefault(t.Background, defaults.Background),
		Accent:     colorOrDefault(t.Accent, defaults.Accent),
		Text:       colorOrDefault(t.Text, defaults.Text),
		Muted:      colorOrDefault(t.Muted, defaults.Muted),
	}
}

func (t Theme) Validate() error {
	colorFields := []struct {
		name  string
		value string
	}{
		{"background", t.Background},
		{"accent", t.Accent},
		{"text", t.Text},
		{"muted", t.Muted},
	}
	for _, field := range colorFields {
		if !hexColorRegex.MatchString(field.value) {
			return fmt.Errorf("%s must be a 6-digit hex color like #AABBCC", field.name)
		}
	}

	if err := validateContrast("text", t.Text, t.Background, wcagAABodyContrastRatio); err != nil {
		return err
	}
	if err := validateContrast("accent", t.Accent, t.Background, wcagAALargeContrastRatio); err != nil {
		return err
	}
	return validateContrast("muted", t.Muted, t.Background, wcagAALargeContrastRatio)
}

func colorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || !IsHexColor(trimmed) {
		return fallback
	}
	return trimmed
}

func validateContrast(colorName, foreground, background string, minimum float64) error {
	ratio, err := contrastRatio(foreground, background)
	if err != nil {
		return err
	}
	if ratio < minimum {
		return fmt.Errorf(
			"%s must have contrast ratio >= %.1f against background %s; got %.2f",
			colorName,
			minimum,
			background,
			ratio,
		)
	}
	return nil
}

func contrastRatio(foreground, background string) (float64, error) {
	fgL, err := relativeLuminance(foreground)
	if err != nil {
		return 0, err
	}
	bgL, err := relativeLuminance(background)
	if err != nil {
		return 0, err
	}
	lightest := math.Max(fgL, bgL)
	darkest := math.Min(fgL, bgL)
	return (lightest + 0.05) / (darkest + 0.05), nil
}

func relativeLuminance(hexColor string) (float64, error) {
	r, g, b, err := parseHexColor(hexColor)
	if err != nil {
		return 0, err
	}

	rl := srgbToLinear(r)
	gl := srgbToLinear(g)
	bl := srgbToLinear(b)

	return 0.2126*rl + 0.7152*gl + 0.0722*bl, nil
}

func parseHexColor(hexColor string) (float64, float64, float64, error) {
	if !hexColorRegex.MatchString(hexColor) {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	hex := strings.TrimPrefix(hexColor, "#")
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	r := float64((value >> 16) & 0xFF)
	g := float64((value >> 8) & 0xFF)
	b := float64(value & 0xFF)

	return r / 255, g / 255, b / 255, nil
}

func srgbToLinear(value float64) float64 {
	if value <= 0.03928 {
		return value / 12.92
	}
	return math.Pow((value+0.055)/1.055, 2.4)
}
