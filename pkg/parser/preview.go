package parser

import (
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

type PreviewKind string

const (
	PreviewLargeKind  PreviewKind = "large"
	PreviewMediumKind PreviewKind = "medium"
)

var (
	previewTitlePattern  = regexp.MustCompile(`^Page \d+:\s*(.+)$`)
	previewSpritePattern = regexp.MustCompile(`width:\s*(\d+)px;\s*height:\s*(\d+)px;[^(]*url\((.+?)\)\s*-(\d+)px`)
)

// PreviewLarge is one full-size page thumbnail.
type PreviewLarge struct {
	Position int    `json:"position" yaml:"position"`
	Filename string `json:"filename" yaml:"filename"`
	PageURL  string `json:"page_url" yaml:"page_url"`
	ImageURL string `json:"image_url" yaml:"image_url"`
}

// PreviewMedium is one cell of a sprite: ImageURL is shared by up to 20
// cells, each clipped at (OffsetX, OffsetY). Sprites are a single row so
// OffsetY is always 0.
type PreviewMedium struct {
	Position   int    `json:"position" yaml:"position"`
	Filename   string `json:"filename" yaml:"filename"`
	PageURL    string `json:"page_url" yaml:"page_url"`
	ImageURL   string `json:"image_url" yaml:"image_url"`
	OffsetX    int    `json:"offset_x" yaml:"offset_x"`
	OffsetY    int    `json:"offset_y" yaml:"offset_y"`
	ClipWidth  int    `json:"clip_width" yaml:"clip_width"`
	ClipHeight int    `json:"clip_height" yaml:"clip_height"`
}

// PreviewSet holds exactly one of Large or Medium, as named by Kind.
type PreviewSet struct {
	Kind   PreviewKind     `json:"kind" yaml:"kind"`
	Large  []PreviewLarge  `json:"large,omitempty" yaml:"large,omitempty"`
	Medium []PreviewMedium `json:"medium,omitempty" yaml:"medium,omitempty"`
}

// Len is the number of previews on this page.
func (p PreviewSet) Len() int {
	if p.Kind == PreviewLargeKind {
		return len(p.Large)
	}
	return len(p.Medium)
}

// ParsePreviewSet decodes the #gdt preview grid of a detail page.
func ParsePreviewSet(body string) (PreviewSet, error) {
	doc, err := newDocument(body)
	if err != nil {
		return PreviewSet{}, err
	}
	return previewSetFrom(doc.Selection)
}

func previewSetFrom(s *goquery.Selection) (PreviewSet, error) {
	gdt, err := findOne(s, "#gdt")
	if err != nil {
		return PreviewSet{}, err
	}
	first := gdt.Children().First()
	if first.Length() == 0 {
		return PreviewSet{}, elemNotFound("#gdt > div")
	}

	switch {
	case first.HasClass("gdtl"):
		large, err := largePreviews(gdt.Children().Filter(".gdtl"))
		if err != nil {
			return PreviewSet{}, err
		}
		return PreviewSet{Kind: PreviewLargeKind, Large: large}, nil
	case first.HasClass("gdtm"):
		medium, err := mediumPreviews(gdt.Children().Filter(".gdtm"))
		if err != nil {
			return PreviewSet{}, err
		}
		return PreviewSet{Kind: PreviewMediumKind, Medium: medium}, nil
	default:
		class, _ := first.Attr("class")
		return PreviewSet{}, fmt.Errorf("preview class %q: %w", class, ErrOutOfRange)
	}
}

func largePreviews(cells *goquery.Selection) ([]PreviewLarge, error) {
	out := make([]PreviewLarge, 0, cells.Length())
	for i := range cells.Nodes {
		cell := cells.Eq(i)
		a, err := findOne(cell, "a")
		if err != nil {
			return nil, err
		}
		img, err := findOne(cell, "img")
		if err != nil {
			return nil, err
		}
		href, err := requireAttr(a, "href")
		if err != nil {
			return nil, err
		}
		src, err := requireAttr(img, "src")
		if err != nil {
			return nil, err
		}
		alt, err := requireAttr(img, "alt")
		if err != nil {
			return nil, err
		}
		title, err := requireAttr(img, "title")
		if err != nil {
			return nil, err
		}
		pos, err := atoi("preview position", alt)
		if err != nil {
			return nil, err
		}
		m := previewTitlePattern.FindStringSubmatch(title)
		if m == nil {
			return nil, ErrPatternMatchFailed
		}
		out = append(out, PreviewLarge{
			Position: pos - 1,
			Filename: m[1],
			PageURL:  href,
			ImageURL: src,
		})
	}
	return out, nil
}

func mediumPreviews(cells *goquery.Selection) ([]PreviewMedium, error) {
	out := make([]PreviewMedium, 0, cells.Length())
	for i := range cells.Nodes {
		cell := cells.Eq(i)
		sprite, err := findOne(cell, "div[style]")
		if err != nil {
			return nil, err
		}
		style, err := requireAttr(sprite, "style")
		if err != nil {
			return nil, err
		}
		m := previewSpritePattern.FindStringSubmatch(style)
		if m == nil {
			return nil, ErrPatternMatchFailed
		}
		var nums [3]int
		for j, idx := range []int{1, 2, 4} {
			if nums[j], err = atoi("preview medium", m[idx]); err != nil {
				return nil, err
			}
		}

		// Page link and names come from attributes, which are already unescaped.
		a, err := findOne(sprite, "a")
		if err != nil {
			return nil, err
		}
		img, err := findOne(a, "img")
		if err != nil {
			return nil, err
		}
		href, err := requireAttr(a, "href")
		if err != nil {
			return nil, err
		}
		alt, err := requireAttr(img, "alt")
		if err != nil {
			return nil, err
		}
		title, err := requireAttr(img, "title")
		if err != nil {
			return nil, err
		}
		pos, err := atoi("preview position", alt)
		if err != nil {
			return nil, err
		}
		tm := previewTitlePattern.FindStringSubmatch(title)
		if tm == nil {
			return nil, ErrPatternMatchFailed
		}

		out = append(out, PreviewMedium{
			Position:   pos - 1,
			Filename:   tm[1],
			PageURL:    href,
			ImageURL:   m[3],
			OffsetX:    nums[2],
			OffsetY:    0,
			ClipWidth:  nums[0],
			ClipHeight: nums[1],
		})
	}
	return out, nil
}
