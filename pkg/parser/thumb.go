package parser

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var thumbSizePattern = regexp.MustCompile(`height:(\d+)px;width:(\d+)px`)

// Thumb is a listing thumbnail or detail cover.
type Thumb struct {
	URL    string `json:"url" yaml:"url"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// ParseThumb reads an <img> element whose inline style carries its box as
// "height:Hpx;width:Wpx".
func ParseThumb(img *goquery.Selection) (Thumb, error) {
	style, err := requireAttr(img, "style")
	if err != nil {
		return Thumb{}, err
	}
	src, err := requireAttr(img, "src")
	if err != nil {
		return Thumb{}, err
	}
	m := thumbSizePattern.FindStringSubmatch(style)
	if m == nil {
		return Thumb{}, ErrPatternMatchFailed
	}
	h, err := atoi("thumb height", m[1])
	if err != nil {
		return Thumb{}, err
	}
	w, err := atoi("thumb width", m[2])
	if err != nil {
		return Thumb{}, err
	}
	return Thumb{URL: src, Width: w, Height: h}, nil
}
