package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

var (
	tablePagesPattern    = regexp.MustCompile(`([\d,]+) pages?`)
	tableFavCountPattern = regexp.MustCompile(`([\d,]+) times`)
	requiredDetailLabels = []string{"Posted", "Visible", "Language", "File Size", "Length", "Favorited"}
)

// DetailTable is the #gdd metadata table of a gallery page.
type DetailTable struct {
	Posted        string           `json:"posted" yaml:"posted"`
	Parent        *GalleryIdentity `json:"parent,omitempty" yaml:"parent,omitempty"`
	Visible       string           `json:"visible" yaml:"visible"`
	Language      string           `json:"language" yaml:"language"`
	FileSize      string           `json:"file_size" yaml:"file_size"`
	Pages         int              `json:"pages" yaml:"pages"`
	FavoriteCount int              `json:"favorite_count" yaml:"favorite_count"`
}

// ParseDetailTable decodes the rows of #gdd given as a fragment of <tr>s.
func ParseDetailTable(fragment string) (DetailTable, error) {
	root, err := parseFragment(fragment, atom.Tbody)
	if err != nil {
		return DetailTable{}, err
	}
	return std.detailTableFrom(root)
}

func (p *Parser) detailTableFrom(gdd *goquery.Selection) (DetailTable, error) {
	cells := map[string]*goquery.Selection{}
	gdd.Find(".gdt1").Each(func(_ int, label *goquery.Selection) {
		key := strings.TrimSuffix(trimmedText(label), ":")
		cells[key] = label.Next()
	})
	for _, key := range requiredDetailLabels {
		if c, ok := cells[key]; !ok || c.Length() == 0 {
			return DetailTable{}, elemNotFound(fmt.Sprintf(".gdt1 %q", key+":"))
		}
	}

	t := DetailTable{
		Posted:   trimmedText(cells["Posted"]),
		Visible:  trimmedText(cells["Visible"]),
		Language: trimmedText(cells["Language"]),
		FileSize: trimmedText(cells["File Size"]),
	}

	if parent, ok := cells["Parent"]; ok {
		if a := parent.Find("a[href]"); a.Length() > 0 {
			href, _ := a.First().Attr("href")
			id, err := p.ParseDetailURL(href, false)
			if err != nil {
				return DetailTable{}, fmt.Errorf("parent: %w", err)
			}
			t.Parent = &id
		}
	}

	m := tablePagesPattern.FindStringSubmatch(cells["Length"].Text())
	if m == nil {
		return DetailTable{}, fmt.Errorf("length: %w", ErrPatternMatchFailed)
	}
	var err error
	if t.Pages, err = atoi("length", m[1]); err != nil {
		return DetailTable{}, err
	}

	if t.FavoriteCount, err = favoriteCount(trimmedText(cells["Favorited"])); err != nil {
		return DetailTable{}, fmt.Errorf("favorited: %w", err)
	}
	return t, nil
}

func favoriteCount(text string) (int, error) {
	switch text {
	case "Never":
		return 0, nil
	case "Once":
		return 1, nil
	}
	m := tableFavCountPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, ErrPatternMatchFailed
	}
	return atoi("favorite count", m[1])
}
