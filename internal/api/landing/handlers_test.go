package landing

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inteligenciarte/luxurystudio/internal/booking"
	"github.com/inteligenciarte/luxurystudio/internal/catalog"
	"github.com/inteligenciarte/luxurystudio/internal/config"
	"github.com/inteligenciarte/luxurystudio/internal/session"
)

func setup(t *testing.T) *session.Store {
	t.Helper()
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	store := session.NewStore(session.Config{
		NewController: func() *booking.Controller {
			return booking.NewController(catalog.Default(), cfg.Studio.Phone)
		},
	})
	InitHandlers(Dependencies{Config: cfg, Catalog: catalog.Default(), Sessions: store})
	return store
}

func TestHandleIndex(t *testing.T) {
	setup(t)

	recorder := httptest.NewRecorder()
	HandleIndex(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}

	body := recorder.Body.String()
	for _, want := range []string{
		"<title>Luxury Studio | Joyci Almeida</title>",
		"Luxury no Instagram",
		"https://www.instagram.com/luxury.joycialmeida",
		"Cursos de Lash",
		"http://luxacademy.vercel.app",
		"Agendamentos via WhatsApp",
		"Nosso Catálogo (em breve)",
		`<div id="booking-dialog"></div>`,
		"https://wa.me/41988710303?text=Ol%C3%A1!%20Gostaria",
		"@inteligenciarte.ia",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in landing page", want)
		}
	}

	// No logo ships under static/, so the default header has none.
	if strings.Contains(body, "<img") {
		t.Fatalf("default config rendered a logo image")
	}
}

func TestHandleIndexRendersOpenDialog(t *testing.T) {
	store := setup(t)
	id := session.NewID()
	if err := store.With(id, func(c *booking.Controller) {
		c.Open()
		c.Dispatch(booking.SetName("Ana"))
	}); err != nil {
		t.Fatalf("with: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: id})
	recorder := httptest.NewRecorder()
	HandleIndex(recorder, r)

	body := recorder.Body.String()
	if !strings.Contains(body, "Agendamento via WhatsApp") || !strings.Contains(body, `value="Ana"`) {
		t.Fatalf("expected open dialog with the draft name")
	}
}

func TestHandleIndexUnknownPath(t *testing.T) {
	setup(t)
	recorder := httptest.NewRecorder()
	HandleIndex(recorder, httptest.NewRequest(http.MethodGet, "/wp-admin", nil))
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
}
