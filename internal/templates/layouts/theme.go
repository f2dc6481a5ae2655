package layouts

import (
	"fmt"

	"github.com/inteligenciarte/luxurystudio/internal/models"
)

func getThemeCssVars(theme *models.Theme) string {
	palette := models.DefaultTheme()
	if theme != nil {
		palette = theme.WithDefaults()
	}

	return fmt.Sprintf(
		":root{--theme-background:%s;--theme-accent:%s;--theme-text:%s;--theme-muted:%s;}",
		palette.Background,
		palette.Accent,
		palette.Text,
		palette.Muted,
	)
}
