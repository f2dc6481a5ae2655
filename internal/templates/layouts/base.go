// internal/templates/layouts/base.go
package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/inteligenciarte/luxurystudio/internal/models"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

type Page struct {
	Title       string
	Description string
	Theme       *models.Theme
	Body        g.Node
}

// Base wraps a page body in the shared document shell.
func Base(page Page) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("pt-BR"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				g.If(page.Description != "", h.Meta(h.Name("description"), h.Content(page.Description))),
				g.El("title", g.Text(page.Title)),
				g.El("style", g.Raw(getThemeCssVars(page.Theme))),
				h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
				h.Script(h.Src(htmxSrc), g.Attr("defer")),
				h.Script(h.Src("/static/app.js"), g.Attr("defer")),
			),
			h.Body(page.Body),
		),
	)
}

// Component adapts a node to the templ interface the handlers render.
func Component(node g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return node.Render(w)
	})
}
