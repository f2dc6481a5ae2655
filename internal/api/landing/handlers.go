// internal/api/landing/handlers.go
package landing

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/inteligenciarte/luxurystudio/internal/api/apiutil"
	"github.com/inteligenciarte/luxurystudio/internal/catalog"
	"github.com/inteligenciarte/luxurystudio/internal/config"
	"github.com/inteligenciarte/luxurystudio/internal/session"
	bookingview "github.com/inteligenciarte/luxurystudio/internal/templates/components/booking"
	landingview "github.com/inteligenciarte/luxurystudio/internal/templates/components/landing"
	"github.com/inteligenciarte/luxurystudio/internal/templates/layouts"
	"github.com/inteligenciarte/luxurystudio/internal/whatsapp"
)

const (
	instagramLabel = "Luxury no Instagram"
	coursesLabel   = "Cursos de Lash"
	bookingLabel   = "Agendamentos via WhatsApp"
	catalogLabel   = "Nosso Catálogo (em breve)"
)

type Dependencies struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Sessions *session.Store
}

var (
	depsMu sync.RWMutex
	deps   *Dependencies
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(d Dependencies) {
	if d.Config == nil {
		log.Warn().Msg("landing.InitHandlers called with nil config")
		return
	}
	if d.Catalog == nil {
		d.Catalog = catalog.Default()
	}
	depsMu.Lock()
	deps = &d
	depsMu.Unlock()
}

func loadDeps() *Dependencies {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}

// GET /
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	d := loadDeps()
	if d == nil {
		log.Ctx(r.Context()).Error().Msg("Landing handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view := bookingview.FormView{}
	if id, ok := session.IDFromRequest(r); ok && d.Sessions != nil {
		state, request, found := d.Sessions.Peek(id)
		if found {
			view = bookingview.NewFormView(d.Catalog, state, request)
		}
	}

	theme := d.Config.BrandTheme()
	page := layouts.Base(layouts.Page{
		Title:       d.Config.Studio.Name + " | " + d.Config.Studio.Owner,
		Description: bookingLabel,
		Theme:       &theme,
		Body:        landingview.Page(pageProps(d.Config, view)),
	})

	apiutil.RenderHTMLComponent(r.Context(), w, layouts.Component(page), nil, "Failed to render landing page", "Failed to render page")
}

func pageProps(cfg *config.Config, view bookingview.FormView) landingview.Props {
	props := landingview.Props{
		StudioName: cfg.Studio.Name,
		Owner:      cfg.Studio.Owner,
		LogoPath:   cfg.Studio.LogoPath,
		Links: []landingview.Link{
			{Label: instagramLabel, URL: cfg.Studio.InstagramURL},
			{Label: coursesLabel, URL: cfg.Studio.CoursesURL},
		},
		BookingLabel:       bookingLabel,
		Trailing:           []landingview.Link{{Label: catalogLabel, Disabled: true}},
		Dialog:             bookingview.Dialog(view),
		DeveloperHandle:    cfg.Developer.Handle,
		DeveloperInstagram: cfg.Developer.InstagramURL,
	}
	if cfg.Developer.Phone != "" {
		props.DeveloperURL = whatsapp.Link(cfg.Developer.Phone, cfg.Developer.Message)
	}
	return props
}
