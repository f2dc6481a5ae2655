package landing

import g "maragu.dev/gomponents"

// Link is one entry of the link list. A link without a URL renders as a
// disabled placeholder.
type Link struct {
	Label    string
	URL      string
	Disabled bool
}

// Props of the landing page. BookingLabel, when set, adds the entry that
// opens the booking dialog between Links and Trailing.
type Props struct {
	StudioName string
	Owner      string
	LogoPath   string

	Links        []Link
	BookingLabel string
	Trailing     []Link
	Dialog       g.Node

	DeveloperHandle    string
	DeveloperURL       string
	DeveloperInstagram string
}
