package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Outline is a short structural summary of a page.
type Outline struct {
	URL      string
	Title    string
	Headings []string
	Forms    int
	Links    int
}

func (d *Document) Outline(url string) Outline {
	o := Outline{
		URL:   url,
		Title: normalizeSpace(d.doc.Find("title").First().Text()),
		Forms: d.doc.Find("form").Length(),
		Links: d.doc.Find("a[href]").Length(),
	}
	d.doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		if text := normalizeSpace(s.Text()); text != "" {
			o.Headings = append(o.Headings, goquery.NodeName(s)+": "+text)
		}
	})
	return o
}

func (o Outline) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "URL: %s\n", o.URL)
	fmt.Fprintf(&b, "Title: %q\n", o.Title)
	fmt.Fprintf(&b, "Forms: %d, links: %d\n", o.Forms, o.Links)
	if len(o.Headings) == 0 {
		b.WriteString("Headings: none\n")
	} else {
		b.WriteString("Headings:\n")
		for _, h := range o.Headings {
			fmt.Fprintf(&b, "  %s\n", h)
		}
	}
	return b.String()
}
