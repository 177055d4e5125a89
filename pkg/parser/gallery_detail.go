package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	offensiveText = "<p>(And if you choose to ignore this warning, you lose all rights to complain about it in the future.)</p>"
	piningText    = "<p>This gallery is pining for the fjords.</p>"
)

var (
	detailErrorPattern   = regexp.MustCompile(`<div class="d">\s*<p>([^<]+)</p>`)
	detailScriptPattern  = regexp.MustCompile(`var gid = (\d+);\s*var token = "([a-f0-9]+)";\s*var apiuid = (-?\d+);\s*var apikey = "([a-f0-9]+)";`)
	detailTorrentPattern = regexp.MustCompile(`<a[^<>]*onclick="return popUp\('([^']+)'[^)]+\)">Torrent Download \((\d+)\)</a`)
	detailArchivePattern = regexp.MustCompile(`<a[^<>]*onclick="return popUp\('([^']+)'[^)]+\)">Archive Download</a>`)
	detailCoverPattern   = regexp.MustCompile(`width:(\d+)px; height:(\d+)px.+?url\((.+?)\)`)
	detailRatingPattern  = regexp.MustCompile(`[+-]?([0-9]*[.]?[0-9]+)`)
	newerDatePattern     = regexp.MustCompile(`, added (.+?)<br\s*/?>`)
)

// GalleryDetail is a decoded gallery page (/g/<gid>/<token>/).
type GalleryDetail struct {
	GalleryIdentity `yaml:",inline"`

	APIUID int64  `json:"api_uid" yaml:"api_uid"`
	APIKey string `json:"api_key" yaml:"api_key"`

	TorrentCount int    `json:"torrent_count" yaml:"torrent_count"`
	TorrentURL   string `json:"torrent_url" yaml:"torrent_url"`
	ArchiveURL   string `json:"archive_url" yaml:"archive_url"`

	Cover    Thumb       `json:"cover" yaml:"cover"`
	Title    string      `json:"title" yaml:"title"`
	TitleJpn string      `json:"title_jpn" yaml:"title_jpn"`
	Category Category    `json:"category" yaml:"category"`
	Uploader string      `json:"uploader" yaml:"uploader"`
	Detail   DetailTable `json:"detail" yaml:"detail"`

	RatingCount int      `json:"rating_count" yaml:"rating_count"`
	Rating      *float32 `json:"rating,omitempty" yaml:"rating,omitempty"`

	Favorited    bool    `json:"favorited" yaml:"favorited"`
	FavoriteSlot *int    `json:"favorite_slot,omitempty" yaml:"favorite_slot,omitempty"`
	FavoriteName *string `json:"favorite_name,omitempty" yaml:"favorite_name,omitempty"`

	// NewerVersions maps the "added" date text to the newer gallery.
	NewerVersions map[string]GalleryIdentity `json:"newer_versions" yaml:"newer_versions"`

	TagGroups []TagGroup  `json:"tag_groups" yaml:"tag_groups"`
	Comments  CommentList `json:"comments" yaml:"comments"`

	PreviewPages int        `json:"preview_pages" yaml:"preview_pages"`
	PreviewPage  int        `json:"preview_page" yaml:"preview_page"`
	Previews     PreviewSet `json:"previews" yaml:"previews"`
}

// ParseGalleryDetail decodes a gallery page. Content warnings, removed
// galleries and other server messages fail with a *ServerError.
func (p *Parser) ParseGalleryDetail(body string) (*GalleryDetail, error) {
	if err := checkNotices(body); err != nil {
		return nil, err
	}
	if err := detailSoftError(body); err != nil {
		return nil, err
	}

	d := &GalleryDetail{}
	steps := []struct {
		name string
		fn   func(string) error
	}{
		{"script", d.parseScript},
		{"torrent", d.parseTorrent},
		{"archive", d.parseArchive},
	}
	for _, step := range steps {
		if err := step.fn(body); err != nil {
			return nil, fmt.Errorf("parse %s: %w", step.name, err)
		}
	}

	doc, err := newDocument(body)
	if err != nil {
		return nil, err
	}
	gm := doc.Find(".gm").Not("#cdiv")

	domSteps := []struct {
		name string
		fn   func(*goquery.Selection) error
	}{
		{"cover", d.parseCover},
		{"titles", d.parseTitles},
		{"category", d.parseCategory},
		{"uploader", d.parseUploader},
		{"detail table", func(s *goquery.Selection) error { return d.parseTable(p, s) }},
		{"rating", d.parseRating},
		{"favorite", d.parseFavorite},
	}
	for _, step := range domSteps {
		if err := step.fn(gm); err != nil {
			return nil, fmt.Errorf("parse %s: %w", step.name, err)
		}
	}

	if d.NewerVersions, err = p.newerVersions(doc.Selection, body); err != nil {
		return nil, fmt.Errorf("parse newer versions: %w", err)
	}
	if d.TagGroups, err = tagGroupsFrom(doc.Selection); err != nil {
		return nil, fmt.Errorf("parse tag groups: %w", err)
	}
	if d.Comments, err = commentsFrom(doc.Selection); err != nil {
		return nil, fmt.Errorf("parse comments: %w", err)
	}
	if d.PreviewPages, d.PreviewPage, err = previewPagesFrom(doc.Selection); err != nil {
		return nil, fmt.Errorf("parse preview pages: %w", err)
	}
	if d.Previews, err = previewSetFrom(doc.Selection); err != nil {
		return nil, fmt.Errorf("parse previews: %w", err)
	}
	return d, nil
}

// detailSoftError recognises pages served instead of a gallery.
func detailSoftError(body string) error {
	switch {
	case strings.Contains(body, offensiveText):
		return fromServer("(And if you choose to ignore this warning, you lose all rights to complain about it in the future.)")
	case strings.Contains(body, piningText):
		return fromServer("This gallery is pining for the fjords.")
	}
	if m := detailErrorPattern.FindStringSubmatch(body); m != nil {
		return fromServer(strings.TrimSpace(m[1]))
	}
	return nil
}

func (d *GalleryDetail) parseScript(body string) error {
	m := detailScriptPattern.FindStringSubmatch(body)
	if m == nil {
		return ErrPatternMatchFailed
	}
	gid, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return malformed("gid", err)
	}
	uid, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return malformed("apiuid", err)
	}
	d.GalleryIdentity = GalleryIdentity{Gid: gid, Token: m[2]}
	d.APIUID = uid
	d.APIKey = m[4]
	return nil
}

func (d *GalleryDetail) parseTorrent(body string) error {
	m := detailTorrentPattern.FindStringSubmatch(body)
	if m == nil {
		return ErrPatternMatchFailed
	}
	n, err := atoi("torrent count", m[2])
	if err != nil {
		return err
	}
	d.TorrentURL = Unescape(m[1])
	d.TorrentCount = n
	return nil
}

func (d *GalleryDetail) parseArchive(body string) error {
	m := detailArchivePattern.FindStringSubmatch(body)
	if m == nil {
		return ErrPatternMatchFailed
	}
	d.ArchiveURL = Unescape(m[1])
	return nil
}

func (d *GalleryDetail) parseCover(gm *goquery.Selection) error {
	cover, err := findOne(gm, "#gd1 > div")
	if err != nil {
		return err
	}
	style, err := requireAttr(cover, "style")
	if err != nil {
		return err
	}
	m := detailCoverPattern.FindStringSubmatch(style)
	if m == nil {
		return ErrPatternMatchFailed
	}
	w, err := atoi("cover width", m[1])
	if err != nil {
		return err
	}
	h, err := atoi("cover height", m[2])
	if err != nil {
		return err
	}
	d.Cover = Thumb{URL: m[3], Width: w, Height: h}
	return nil
}

func (d *GalleryDetail) parseTitles(gm *goquery.Selection) error {
	gn, err := findOne(gm, "#gn")
	if err != nil {
		return err
	}
	gj, err := findOne(gm, "#gj")
	if err != nil {
		return err
	}
	d.Title = trimmedText(gn)
	d.TitleJpn = trimmedText(gj)
	return nil
}

// parseCategory never fails on a missing label; it decodes to Unknown like
// an unrecognised one.
func (d *GalleryDetail) parseCategory(gm *goquery.Selection) error {
	d.Category = ParseCategory(gm.Find("#gdc .cs").First().Text())
	return nil
}

func (d *GalleryDetail) parseUploader(gm *goquery.Selection) error {
	gdn, err := findOne(gm, "#gdn")
	if err != nil {
		return err
	}
	d.Uploader = trimmedText(gdn)
	return nil
}

func (d *GalleryDetail) parseTable(p *Parser, gm *goquery.Selection) error {
	gdd, err := findOne(gm, "#gdd")
	if err != nil {
		return err
	}
	d.Detail, err = p.detailTableFrom(gdd)
	return err
}

func (d *GalleryDetail) parseRating(gm *goquery.Selection) error {
	count, err := findOne(gm, "#rating_count")
	if err != nil {
		return err
	}
	if d.RatingCount, err = atoi("rating count", count.Text()); err != nil {
		return err
	}

	label, err := findOne(gm, "#rating_label")
	if err != nil {
		return err
	}
	text := trimmedText(label)
	if text == "Not Yet Rated" {
		return nil
	}
	m := detailRatingPattern.FindStringSubmatch(text)
	if m == nil {
		return ErrPatternMatchFailed
	}
	r, err := strconv.ParseFloat(m[1], 32)
	if err != nil {
		return malformed("rating", err)
	}
	rating := float32(r)
	d.Rating = &rating
	return nil
}

// parseFavorite treats any favourite link text other than "Add to
// Favorites" as the name of the slot the gallery is filed under.
func (d *GalleryDetail) parseFavorite(gm *goquery.Selection) error {
	link, err := findOne(gm, "#gdf #favoritelink")
	if err != nil {
		return err
	}
	text := trimmedText(link)
	if strings.Contains(text, "Add to Favorites") {
		return nil
	}

	icon, err := findOne(gm, "#gdf .i")
	if err != nil {
		return err
	}
	style, err := requireAttr(icon, "style")
	if err != nil {
		return err
	}
	slot, err := ParseFavoriteSlot(style)
	if err != nil {
		return err
	}
	d.Favorited = true
	d.FavoriteSlot = &slot
	d.FavoriteName = &text
	return nil
}

// newerVersions pairs the links under #gnd with their "added" dates by
// position. No #gnd means no newer versions.
func (p *Parser) newerVersions(s *goquery.Selection, body string) (map[string]GalleryIdentity, error) {
	out := map[string]GalleryIdentity{}
	gnd := s.Find("#gnd")
	if gnd.Length() == 0 {
		return out, nil
	}

	dates := newerDatePattern.FindAllStringSubmatch(body, -1)
	links := gnd.Find("a[href]")
	if len(dates) != links.Length() {
		return nil, ErrPatternMatchFailed
	}
	for i := range links.Nodes {
		href, _ := links.Eq(i).Attr("href")
		id, err := p.ParseDetailURL(href, true)
		if err != nil {
			return nil, err
		}
		out[strings.TrimSpace(dates[i][1])] = id
	}
	return out, nil
}

// previewPagesFrom reads the .ptt pager: the largest page number shown and
// the 0-based index of the highlighted one.
func previewPagesFrom(s *goquery.Selection) (pages, current int, err error) {
	ptt, err := findOne(s, ".ptt")
	if err != nil {
		return 0, 0, err
	}
	ptt.Find("td").Each(func(_ int, td *goquery.Selection) {
		if n, convErr := strconv.Atoi(strings.ReplaceAll(trimmedText(td), ",", "")); convErr == nil && n > pages {
			pages = n
		}
	})
	if pages == 0 {
		return 0, 0, ErrPatternMatchFailed
	}
	cur, err := findOne(ptt, "td.ptds")
	if err != nil {
		return 0, 0, err
	}
	n, err := atoi("preview page", cur.Text())
	if err != nil {
		return 0, 0, err
	}
	return pages, n - 1, nil
}
