// internal/booking/controller.go

// Package booking implements the booking dialog: the form's state and its
// transitions, the submit predicate, and the WhatsApp message built from a
// completed request.
package booking

import (
	"github.com/inteligenciarte/luxurystudio/internal/catalog"
	"github.com/inteligenciarte/luxurystudio/internal/whatsapp"
)

type State int

const (
	StateClosed State = iota
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	default:
		return "closed"
	}
}

// Submission is what a successful submit hands to the launcher.
type Submission struct {
	Request Request
	Message string
	URL     string
}

// Controller owns one booking dialog. It is not safe for concurrent use;
// callers serialize access per dialog.
type Controller struct {
	catalog     *catalog.Catalog
	studioPhone string

	state   State
	request Request
}

func NewController(cat *catalog.Catalog, studioPhone string) *Controller {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Controller{catalog: cat, studioPhone: studioPhone}
}

func (c *Controller) State() State     { return c.state }
func (c *Controller) Request() Request { return c.request.clone() }

// Open starts a fresh request. Opening an already open dialog keeps its data.
func (c *Controller) Open() {
	if c.state == StateEditing {
		return
	}
	c.state = StateEditing
	c.request = Request{}
}

// Close discards the request.
func (c *Controller) Close() {
	c.state = StateClosed
	c.request = Request{}
}

// Dispatch applies action to the open request. It reports false, and does
// nothing, when the dialog is closed.
func (c *Controller) Dispatch(action Action) bool {
	if c.state != StateEditing {
		return false
	}
	c.request = Reduce(c.catalog, c.request, action)
	return true
}

// Submit builds the message and deep link for a valid request, then closes
// the dialog. An invalid request, or a closed dialog, leaves everything as
// it was and reports false.
func (c *Controller) Submit() (Submission, bool) {
	if c.state != StateEditing {
		return Submission{}, false
	}
	if len(c.request.SelectedProcedures) == 0 || !Valid(c.request) {
		return Submission{}, false
	}

	message := BuildMessage(c.request)
	submission := Submission{
		Request: c.request.clone(),
		Message: message,
		URL:     whatsapp.Link(c.studioPhone, message),
	}
	c.Close()
	return submission, true
}
