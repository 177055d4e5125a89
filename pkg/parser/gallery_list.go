package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var listPagesPattern = regexp.MustCompile(`([\d,]+) pages?`)

// GalleryInfo is one listing entry. Layout decides which optional fields are
// set: Uploader for every layout but Thumbnail, SimpleTags for Compact and
// Extended only.
type GalleryInfo struct {
	GalleryIdentity `yaml:",inline"`

	Layout       Layout   `json:"layout" yaml:"layout"`
	Title        string   `json:"title" yaml:"title"`
	Thumb        Thumb    `json:"thumb" yaml:"thumb"`
	Category     Category `json:"category" yaml:"category"`
	Posted       string   `json:"posted" yaml:"posted"`
	Rating       float32  `json:"rating" yaml:"rating"`
	Pages        int      `json:"pages" yaml:"pages"`
	Favorited    bool     `json:"favorited" yaml:"favorited"`
	FavoriteSlot *int     `json:"favorite_slot,omitempty" yaml:"favorite_slot,omitempty"`
	FavoriteName *string  `json:"favorite_name,omitempty" yaml:"favorite_name,omitempty"`
	Uploader     *string  `json:"uploader,omitempty" yaml:"uploader,omitempty"`
	SimpleTags   []string `json:"simple_tags,omitempty" yaml:"simple_tags,omitempty"`
	Language     Language `json:"language,omitempty" yaml:"language,omitempty"`
}

// GalleryList is a decoded listing page.
type GalleryList struct {
	Layout    Layout        `json:"layout" yaml:"layout"`
	Galleries []GalleryInfo `json:"galleries" yaml:"galleries"`
}

// ParseGalleryList decodes every entry of a listing page (front page,
// search, watched, popular, favourites). A page reporting no hits decodes
// to an empty list with LayoutNone. Any failing entry fails the page.
func (p *Parser) ParseGalleryList(body string) (*GalleryList, error) {
	if err := checkNotices(body); err != nil {
		return nil, err
	}
	doc, err := newDocument(body)
	if err != nil {
		return nil, err
	}
	if doc.Find(".itg").Length() == 0 && strings.Contains(body, "No hits found") {
		return &GalleryList{Layout: LayoutNone, Galleries: []GalleryInfo{}}, nil
	}

	layout, err := layoutFrom(doc.Selection)
	if err != nil {
		return nil, fmt.Errorf("detect layout: %w", err)
	}
	items := listItems(doc.Find(".itg").First(), layout)

	list := &GalleryList{Layout: layout, Galleries: make([]GalleryInfo, 0, items.Length())}
	for i := range items.Nodes {
		info, err := p.galleryInfo(items.Eq(i), layout)
		if err != nil {
			return nil, fmt.Errorf("parse gallery %d: %w", i, err)
		}
		list.Galleries = append(list.Galleries, info)
	}
	return list, nil
}

// listItems enumerates entries. Minimal and Compact tables open with a
// header row; Extended has none.
func listItems(itg *goquery.Selection, layout Layout) *goquery.Selection {
	switch layout {
	case LayoutThumbnail:
		return itg.Find(".gl1t")
	case LayoutExtended:
		return tableRows(itg)
	default:
		rows := tableRows(itg)
		if rows.Length() == 0 {
			return rows
		}
		return rows.Slice(1, goquery.ToEnd)
	}
}

func tableRows(table *goquery.Selection) *goquery.Selection {
	rows := table.ChildrenFiltered("tbody").ChildrenFiltered("tr")
	if rows.Length() == 0 {
		rows = table.ChildrenFiltered("tr")
	}
	return rows
}

func (p *Parser) galleryInfo(item *goquery.Selection, layout Layout) (GalleryInfo, error) {
	info := GalleryInfo{Layout: layout}

	href, err := galleryHref(item)
	if err != nil {
		return info, err
	}
	if info.GalleryIdentity, err = p.ParseDetailURL(href, true); err != nil {
		return info, fmt.Errorf("parse url: %w", err)
	}

	title, err := findOne(item, ".glink")
	if err != nil {
		return info, err
	}
	info.Title = trimmedText(title)

	imgSel := "img"
	if layout <= LayoutCompact {
		imgSel = ".glthumb img"
	}
	img, err := findOne(item, imgSel)
	if err != nil {
		return info, err
	}
	if info.Thumb, err = ParseThumb(img); err != nil {
		return info, fmt.Errorf("parse thumb: %w", err)
	}

	catSel := ".cs"
	if layout == LayoutCompact || layout == LayoutExtended {
		catSel = ".cn"
	}
	info.Category = ParseCategory(item.Find(catSel).First().Text())

	if err := listRating(item, layout, &info); err != nil {
		return info, err
	}
	if err := listPosted(item, &info); err != nil {
		return info, err
	}

	if layout.HasUploader() {
		uploader := trimmedText(item.Find(`a[href*="/uploader/"]`).First())
		info.Uploader = &uploader
	}

	if layout.HasSimpleTags() {
		tags := []string{}
		var failed error
		item.Find(".glname .gt, .glname .gtl").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			t, err := requireAttr(s, "title")
			if err != nil {
				failed = err
				return false
			}
			tags = append(tags, t)
			return true
		})
		if failed != nil {
			return info, fmt.Errorf("parse simple tags: %w", failed)
		}
		info.SimpleTags = tags
		info.Language, _ = LanguageFromTags(tags)
	} else {
		info.Language, _ = LanguageFromTitle(info.Title)
	}
	return info, nil
}

// galleryHref finds the detail link: nested inside .glname in most layouts,
// wrapping it in Extended and Thumbnail.
func galleryHref(item *goquery.Selection) (string, error) {
	a := item.Find(".glname a[href]").First()
	if a.Length() == 0 {
		a = item.Find(".glname").First().Closest("a[href]")
	}
	if a.Length() == 0 {
		return "", elemNotFound(".glname a")
	}
	return requireAttr(a, "href")
}

func listRating(item *goquery.Selection, layout Layout, info *GalleryInfo) error {
	irSel := ".ir"
	if layout <= LayoutCompact {
		irSel = ".glthumb .ir"
	}
	ir, err := findOne(item, irSel)
	if err != nil {
		return err
	}
	style, err := requireAttr(ir, "style")
	if err != nil {
		return err
	}
	if info.Rating, err = ParseRating(style); err != nil {
		return fmt.Errorf("parse rating: %w", err)
	}

	var pagesText string
	ir.Siblings().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if listPagesPattern.MatchString(s.Text()) {
			pagesText = s.Text()
			return false
		}
		return true
	})
	m := listPagesPattern.FindStringSubmatch(pagesText)
	if m == nil {
		return fmt.Errorf("parse pages: %w", ErrPatternMatchFailed)
	}
	info.Pages, err = atoi("pages", m[1])
	return err
}

// listPosted reads the posted cell, which doubles as the favourite marker:
// its inline border colour names the slot and its title the slot name.
func listPosted(item *goquery.Selection, info *GalleryInfo) error {
	posted, err := findOne(item, "[id^=posted_]")
	if err != nil {
		return err
	}
	info.Posted = trimmedText(posted)

	style, ok := posted.Attr("style")
	if !ok {
		return nil
	}
	slot, err := ParseFavoriteSlot(style)
	if err != nil {
		return fmt.Errorf("parse favorite slot: %w", err)
	}
	info.Favorited = true
	info.FavoriteSlot = &slot
	if name, ok := posted.Attr("title"); ok {
		info.FavoriteName = &name
	}
	return nil
}
