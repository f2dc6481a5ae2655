// internal/api/booking/handlers.go
package booking

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inteligenciarte/luxurystudio/internal/api/apiutil"
	"github.com/inteligenciarte/luxurystudio/internal/api/htmx"
	domain "github.com/inteligenciarte/luxurystudio/internal/booking"
	"github.com/inteligenciarte/luxurystudio/internal/catalog"
	appdb "github.com/inteligenciarte/luxurystudio/internal/db"
	"github.com/inteligenciarte/luxurystudio/internal/ratelimit"
	"github.com/inteligenciarte/luxurystudio/internal/session"
	bookingview "github.com/inteligenciarte/luxurystudio/internal/templates/components/booking"
	"github.com/inteligenciarte/luxurystudio/internal/templates/layouts"
)

const (
	leadInsertTimeout = 5 * time.Second
	maxFormBytes      = 16 << 10
	rateLimitedNotice = "Muitas tentativas seguidas. Aguarde alguns instantes e tente novamente."
)

// LeadRecorder stores submitted booking requests.
type LeadRecorder interface {
	InsertLead(ctx context.Context, lead appdb.Lead) (int64, error)
}

// LeadNotifier tells the studio about a submitted booking request.
type LeadNotifier interface {
	NotifyLead(submission domain.Submission, logger *zerolog.Logger) <-chan struct{}
}

// Dependencies of the booking handlers. Leads and Notifier are optional.
type Dependencies struct {
	Catalog      *catalog.Catalog
	Sessions     *session.Store
	Limiter      *ratelimit.Limiter
	Leads        LeadRecorder
	Notifier     LeadNotifier
	TrustProxy   bool
	SecureCookie bool
}

var (
	depsMu sync.RWMutex
	deps   *Dependencies
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(d Dependencies) {
	if d.Sessions == nil {
		log.Warn().Msg("booking.InitHandlers called with nil session store")
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

// POST /booking/open
func HandleOpen(w http.ResponseWriter, r *http.Request) {
	d, ok := requireDeps(w, r)
	if !ok {
		return
	}

	id := session.Ensure(w, r, d.Sessions.TTL(), d.SecureCookie)
	view, err := withController(d, id, func(c *domain.Controller) {
		c.Open()
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	log.Ctx(r.Context()).Debug().Msg("Booking dialog opened")
	respond(w, r, view, http.StatusOK, nil)
}

// POST /booking/close
func HandleClose(w http.ResponseWriter, r *http.Request) {
	d, ok := requireDeps(w, r)
	if !ok {
		return
	}

	if id, found := session.IDFromRequest(r); found {
		d.Sessions.Discard(id)
	}
	respond(w, r, bookingview.FormView{}, http.StatusOK, nil)
}

// POST /booking/form
func HandleFormAction(w http.ResponseWriter, r *http.Request) {
	d, ok := requireDeps(w, r)
	if !ok {
		return
	}
	logger := log.Ctx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid form", Err: err})
		return
	}

	kind := r.PostForm.Get("action")
	action, err := domain.ParseAction(kind, actionValue(r, domain.ActionKind(kind)))
	if err != nil {
		logger.Debug().Err(err).Str("action", kind).Msg("Rejected booking form action")
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid form action", Err: err})
		return
	}

	id, found := session.IDFromRequest(r)
	if !found {
		respondExpired(w, r)
		return
	}

	applied := false
	view, found, err := withExistingController(d, id, func(c *domain.Controller) {
		applied = c.Dispatch(action)
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if !found {
		respondExpired(w, r)
		return
	}
	session.Refresh(w, id, d.Sessions.TTL(), d.SecureCookie)
	if !applied {
		respondExpired(w, r)
		return
	}
	respond(w, r, view, http.StatusOK, nil)
}

// POST /booking/submit
func HandleSubmit(w http.ResponseWriter, r *http.Request) {
	d, ok := requireDeps(w, r)
	if !ok {
		return
	}
	logger := log.Ctx(r.Context())

	id, found := session.IDFromRequest(r)
	if !found {
		respondExpired(w, r)
		return
	}

	ip := ratelimit.GetClientIP(r, d.TrustProxy)
	if result := d.Limiter.CheckSubmit(ip); !result.Allowed {
		ratelimit.LogRateLimitExceeded(ip, result)
		view, found, err := withExistingController(d, id, func(*domain.Controller) {})
		if err != nil {
			apiutil.WriteError(w, r, err)
			return
		}
		if !found {
			respondExpired(w, r)
			return
		}
		session.Refresh(w, id, d.Sessions.TTL(), d.SecureCookie)
		view.Notice = rateLimitedNotice
		respond(w, r, view, http.StatusTooManyRequests, map[string]string{"Retry-After": retryAfterSeconds(result.RetryAfter)})
		return
	}

	var (
		submission domain.Submission
		submitted  bool
	)
	view, found, err := withExistingController(d, id, func(c *domain.Controller) {
		submission, submitted = c.Submit()
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if !found {
		respondExpired(w, r)
		return
	}
	session.Refresh(w, id, d.Sessions.TTL(), d.SecureCookie)
	if !submitted {
		if !view.Open {
			respondExpired(w, r)
			return
		}
		respond(w, r, view, http.StatusUnprocessableEntity, nil)
		return
	}

	d.Limiter.RecordSubmit(ip)
	logger.Info().
		Strs("procedures", submission.Request.SelectedProcedures).
		Bool("is_client", submission.Request.IsClient).
		Bool("specific_date", submission.Request.WantsSpecificDate).
		Msg("Booking submitted")

	if d.Leads != nil {
		recordLead(r.Context(), d.Leads, submission, logger)
	}
	if d.Notifier != nil {
		d.Notifier.NotifyLead(submission, logger)
	}

	if !htmx.IsRequest(r) {
		http.Redirect(w, r, submission.URL, http.StatusSeeOther)
		return
	}
	if err := htmx.Trigger(w, "openLink", map[string]string{"url": submission.URL}); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to encode link", Err: err})
		return
	}
	respond(w, r, view, http.StatusOK, nil)
}

func requireDeps(w http.ResponseWriter, r *http.Request) (*Dependencies, bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	d := loadDeps()
	if d == nil {
		log.Ctx(r.Context()).Error().Msg("Booking handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return d, true
}

// withController runs fn on the session's controller and snapshots the
// resulting form.
func withController(d *Dependencies, id string, fn func(*domain.Controller)) (bookingview.FormView, error) {
	var view bookingview.FormView
	err := d.Sessions.With(id, func(c *domain.Controller) {
		fn(c)
		view = bookingview.NewFormView(d.Catalog, c.State(), c.Request())
	})
	return view, sessionError(err)
}

// withExistingController is withController for sessions opened earlier. It
// reports found false instead of creating a session.
func withExistingController(d *Dependencies, id string, fn func(*domain.Controller)) (bookingview.FormView, bool, error) {
	var view bookingview.FormView
	found, err := d.Sessions.WithExisting(id, func(c *domain.Controller) {
		fn(c)
		view = bookingview.NewFormView(d.Catalog, c.State(), c.Request())
	})
	return view, found, sessionError(err)
}

func sessionError(err error) error {
	if errors.Is(err, session.ErrInvalidID) {
		return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid session", Err: err}
	}
	return err
}

// retryAfterSeconds rounds up so a remaining cooldown never reads as 0.
func retryAfterSeconds(d time.Duration) string {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}

// actionValue reads the action's value. Text inputs post under their own
// field name instead of "value".
func actionValue(r *http.Request, kind domain.ActionKind) string {
	if r.PostForm.Has("value") {
		return r.PostForm.Get("value")
	}
	switch kind {
	case domain.ActionSetName:
		return r.PostForm.Get("name")
	case domain.ActionSetSpecificDate:
		return r.PostForm.Get("specificDate")
	}
	return ""
}

// recordLead stores the lead in the background, like the email notification,
// so a slow database never holds back the WhatsApp link. The returned
// channel is closed once the insert finished.
func recordLead(ctx context.Context, leads LeadRecorder, submission domain.Submission, logger *zerolog.Logger) <-chan struct{} {
	done := make(chan struct{})
	lead := appdb.NewLead(submission, time.Now())
	base := context.WithoutCancel(ctx)

	go func() {
		defer close(done)
		insertCtx, cancel := context.WithTimeout(base, leadInsertTimeout)
		defer cancel()

		leadID, err := leads.InsertLead(insertCtx, lead)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to record lead")
			return
		}
		logger.Debug().Int64("lead_id", leadID).Msg("Lead recorded")
	}()
	return done
}

// respond renders the dialog for htmx requests. Successful plain form posts
// go back to the landing page, which renders the same state.
func respond(w http.ResponseWriter, r *http.Request, view bookingview.FormView, status int, headers map[string]string) {
	if !htmx.IsRequest(r) && status < http.StatusBadRequest {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	apiutil.RenderHTMLComponentStatus(r.Context(), w, status, layouts.Component(bookingview.Dialog(view)), headers, "Failed to render booking dialog", "Failed to render booking dialog")
}

// respondExpired replaces the whole dialog with the closed placeholder; the
// visitor has to open it again.
func respondExpired(w http.ResponseWriter, r *http.Request) {
	headers := map[string]string{
		"HX-Retarget": "#" + bookingview.DialogID,
		"HX-Reselect": "#" + bookingview.DialogID,
		"HX-Reswap":   "outerHTML",
	}
	respond(w, r, bookingview.FormView{}, http.StatusOK, headers)
}
