package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	torrentLocationPattern = regexp.MustCompile(`document\.location='([^']+)'`)
	torrentHashPattern     = regexp.MustCompile(`([0-9a-f]{40})\.torrent`)
	torrentFieldPattern    = regexp.MustCompile(`^(Posted|Size|Seeds|Peers|Downloads|Uploader):\s*(.*)$`)
)

// Torrent is one live torrent of gallerytorrents.php. Expunged torrents
// carry no download link and are skipped.
type Torrent struct {
	ID        int    `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string `json:"name" yaml:"name"`
	URL       string `json:"url" yaml:"url"`
	Hash      string `json:"hash" yaml:"hash"`
	Posted    string `json:"posted" yaml:"posted"`
	Size      string `json:"size" yaml:"size"`
	Seeds     int    `json:"seeds" yaml:"seeds"`
	Peers     int    `json:"peers" yaml:"peers"`
	Downloads int    `json:"downloads" yaml:"downloads"`
	Uploader  string `json:"uploader" yaml:"uploader"`
}

// ParseTorrentList decodes a gallerytorrents.php page.
func ParseTorrentList(body string) ([]Torrent, error) {
	if err := checkNotices(body); err != nil {
		return nil, err
	}
	doc, err := newDocument(body)
	if err != nil {
		return nil, err
	}

	torrents := []Torrent{}
	var failed error
	doc.Find(`td[colspan="5"] a[onclick]`).EachWithBreak(func(i int, a *goquery.Selection) bool {
		t, err := torrentFrom(a)
		if err != nil {
			failed = fmt.Errorf("torrent %d: %w", i, err)
			return false
		}
		torrents = append(torrents, t)
		return true
	})
	if failed != nil {
		return nil, failed
	}
	return torrents, nil
}

func torrentFrom(a *goquery.Selection) (Torrent, error) {
	onclick, _ := a.Attr("onclick")
	m := torrentLocationPattern.FindStringSubmatch(onclick)
	if m == nil {
		return Torrent{}, ErrPatternMatchFailed
	}
	href, err := requireAttr(a, "href")
	if err != nil {
		return Torrent{}, err
	}
	hm := torrentHashPattern.FindStringSubmatch(href)
	if hm == nil {
		return Torrent{}, ErrPatternMatchFailed
	}
	t := Torrent{
		Name: trimmedText(a),
		URL:  Unescape(m[1]),
		Hash: hm[1],
	}

	table := a.Closest("table")
	var failed error
	table.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
		fm := torrentFieldPattern.FindStringSubmatch(collapseSpace(td.Text()))
		if fm == nil {
			return true
		}
		var dst *int
		switch fm[1] {
		case "Posted":
			t.Posted = fm[2]
		case "Size":
			t.Size = fm[2]
		case "Uploader":
			t.Uploader = fm[2]
		case "Seeds":
			dst = &t.Seeds
		case "Peers":
			dst = &t.Peers
		case "Downloads":
			dst = &t.Downloads
		}
		if dst != nil {
			*dst, failed = atoi(strings.ToLower(fm[1]), fm[2])
		}
		return failed == nil
	})
	if failed != nil {
		return Torrent{}, failed
	}
	if t.Posted == "" {
		return Torrent{}, elemNotFound("Posted:")
	}

	if v, ok := table.Closest("form").Find(`input[name="gtid"]`).Attr("value"); ok {
		id, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Torrent{}, malformed("gtid", err)
		}
		t.ID = id
	}
	return t, nil
}
