package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Layout is the presentation of a gallery listing page.
type Layout int

const (
	LayoutNone Layout = iota // no listing on the page, e.g. "No hits found"
	LayoutMinimal
	LayoutMinimalPlus
	LayoutCompact
	LayoutExtended
	LayoutThumbnail
)

var layoutNames = [...]string{"none", "minimal", "minimal+", "compact", "extended", "thumbnail"}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return fmt.Sprintf("layout(%d)", int(l))
	}
	return layoutNames[l]
}

func (l Layout) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// HasUploader reports whether listing rows of this layout show the uploader.
func (l Layout) HasUploader() bool {
	return l >= LayoutMinimal && l <= LayoutExtended
}

// HasSimpleTags reports whether listing rows of this layout show inline tags.
func (l Layout) HasSimpleTags() bool {
	return l == LayoutCompact || l == LayoutExtended
}

const layoutSelectorOption = ".searchnav select[onchange*=inline_set] > option[selected]"

// DetectLayout inspects the marker class of the .itg listing container.
func DetectLayout(body string) (Layout, error) {
	doc, err := newDocument(body)
	if err != nil {
		return LayoutNone, err
	}
	return layoutFrom(doc.Selection)
}

func layoutFrom(s *goquery.Selection) (Layout, error) {
	itg, err := findOne(s, ".itg")
	if err != nil {
		return LayoutNone, err
	}
	switch {
	case itg.HasClass("gltm"):
		return minimalVariant(s)
	case itg.HasClass("gltc"):
		return LayoutCompact, nil
	case itg.HasClass("glte"):
		return LayoutExtended, nil
	case itg.HasClass("gld"):
		return LayoutThumbnail, nil
	}
	class, _ := itg.Attr("class")
	return LayoutNone, fmt.Errorf("listing class %q: %w", class, ErrOutOfRange)
}

// minimalVariant tells Minimal from Minimal+, which share markup, by the
// layout selector's current option. The page renders the selector twice.
func minimalVariant(s *goquery.Selection) (Layout, error) {
	opt := s.Find(layoutSelectorOption).Last()
	if opt.Length() == 0 {
		return LayoutNone, elemNotFound(layoutSelectorOption)
	}
	switch strings.TrimSpace(opt.Text()) {
	case "Minimal":
		return LayoutMinimal, nil
	case "Minimal+":
		return LayoutMinimalPlus, nil
	}
	return LayoutNone, fmt.Errorf("layout option %q: %w", opt.Text(), ErrOutOfRange)
}
