// internal/templates/components/landing/page.go
package landing

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	bookingview "github.com/inteligenciarte/luxurystudio/internal/templates/components/booking"
)

func Page(props Props) g.Node {
	return h.Main(
		h.Class("page"),
		header(props),
		h.Nav(
			h.Class("links"),
			g.Map(props.Links, linkButton),
			g.If(props.BookingLabel != "", bookingview.OpenButton(props.BookingLabel)),
			g.Map(props.Trailing, linkButton),
		),
		props.Dialog,
		footer(props),
	)
}

func header(props Props) g.Node {
	return h.Header(
		h.Class("profile"),
		g.If(props.LogoPath != "", h.Img(h.Src(props.LogoPath), h.Alt(props.StudioName), h.Class("logo"))),
		h.H1(g.Text(props.StudioName)),
		g.If(props.Owner != "", h.P(h.Class("owner"), g.Text(props.Owner))),
	)
}

func linkButton(link Link) g.Node {
	if link.Disabled || link.URL == "" {
		return g.El("span", h.Class("link-button disabled"), g.Attr("aria-disabled", "true"), g.Text(link.Label))
	}
	return h.A(
		h.Href(link.URL),
		h.Target("_blank"),
		h.Rel("noopener noreferrer"),
		h.Class("link-button"),
		g.Text(link.Label),
	)
}

func footer(props Props) g.Node {
	return h.Footer(
		h.Class("footer"),
		g.If(props.DeveloperURL != "", h.A(
			h.Href(props.DeveloperURL),
			h.Target("_blank"),
			h.Rel("noopener noreferrer"),
			g.Text("Quer um site como este para você? Fale conosco!"),
		)),
		g.If(props.DeveloperHandle != "", h.P(
			g.Text("Desenvolvido por "),
			g.If(props.DeveloperInstagram != "", h.A(
				h.Href(props.DeveloperInstagram),
				h.Target("_blank"),
				h.Rel("noopener noreferrer"),
				g.Text(props.DeveloperHandle),
			)),
			g.If(props.DeveloperInstagram == "", g.Text(props.DeveloperHandle)),
		)),
	)
}
