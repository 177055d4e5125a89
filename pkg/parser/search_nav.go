package parser

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var (
	navPrevPattern = regexp.MustCompile(`prev=([\d-]+)`)
	navNextPattern = regexp.MustCompile(`next=([\d-]+)`)
	navJumpPattern = regexp.MustCompile(`jump=(\w+)`)
	navSeekPattern = regexp.MustCompile(`seek=([\w-]+)`)
)

// SearchNav holds the cursors of a listing page's pager. An empty field
// means the pager does not offer that move.
type SearchNav struct {
	Prev string `json:"prev,omitempty" yaml:"prev,omitempty"`
	Next string `json:"next,omitempty" yaml:"next,omitempty"`
	Jump string `json:"jump,omitempty" yaml:"jump,omitempty"`
	Seek string `json:"seek,omitempty" yaml:"seek,omitempty"`
}

// ParseSearchNav decodes the #uprev/#unext links and the layout select.
func ParseSearchNav(body string) (SearchNav, error) {
	doc, err := newDocument(body)
	if err != nil {
		return SearchNav{}, err
	}

	var nav SearchNav
	if nav.Prev, err = navCursor(doc.Find("#uprev").First(), navPrevPattern); err != nil {
		return SearchNav{}, err
	}
	if nav.Next, err = navCursor(doc.Find("#unext").First(), navNextPattern); err != nil {
		return SearchNav{}, err
	}

	sel, err := findOne(doc.Selection, "select[onchange]")
	if err != nil {
		return SearchNav{}, err
	}
	onchange, _ := sel.Attr("onchange")
	if m := navJumpPattern.FindStringSubmatch(onchange); m != nil {
		nav.Jump = m[1]
	}
	if m := navSeekPattern.FindStringSubmatch(onchange); m != nil {
		nav.Seek = m[1]
	}
	return nav, nil
}

// navCursor returns "" for a disabled link (a <span> without href) and fails
// for a link whose href carries no cursor.
func navCursor(a *goquery.Selection, pattern *regexp.Regexp) (string, error) {
	href, ok := a.Attr("href")
	if !ok {
		return "", nil
	}
	m := pattern.FindStringSubmatch(href)
	if m == nil {
		return "", ErrPatternMatchFailed
	}
	return m[1], nil
}
