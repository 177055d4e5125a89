package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	lenientDetailPattern = regexp.MustCompile(`(\d+)/([0-9a-f]{10})(?:[^0-9a-f]|$)`)
	lenientPagePattern   = regexp.MustCompile(`([0-9a-f]{10})/(\d+)-(\d+)`)
)

// GalleryIdentity is the (gid, token) pair naming a gallery.
type GalleryIdentity struct {
	Gid   uint64 `json:"gid" yaml:"gid"`
	Token string `json:"token" yaml:"token"`
}

// PageIdentity names one page of a gallery. Page is 0-based.
type PageIdentity struct {
	Gid    uint64 `json:"gid" yaml:"gid"`
	PToken string `json:"p_token" yaml:"p_token"`
	Page   int    `json:"page" yaml:"page"`
}

// ParseDetailURL decodes /g/<gid>/<token>/ and /mpv/<gid>/<token>/ links.
// In strict mode the URL must be absolute and on a configured host.
func (p *Parser) ParseDetailURL(href string, strict bool) (GalleryIdentity, error) {
	href = strings.TrimSpace(href)
	var m []string
	if strict {
		m = p.strictDetail.FindStringSubmatch(href)
	} else {
		m = lenientDetailPattern.FindStringSubmatch(href)
	}
	if m == nil {
		return GalleryIdentity{}, ErrPatternMatchFailed
	}
	gid, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return GalleryIdentity{}, malformed("gid", err)
	}
	if gid == 0 {
		return GalleryIdentity{}, ErrOutOfRange
	}
	return GalleryIdentity{Gid: gid, Token: m[2]}, nil
}

// ParsePageURL decodes /s/<ptoken>/<gid>-<page> links, converting the
// site's 1-based page number to 0-based.
func (p *Parser) ParsePageURL(href string, strict bool) (PageIdentity, error) {
	href = strings.TrimSpace(href)
	var m []string
	if strict {
		m = p.strictPage.FindStringSubmatch(href)
	} else {
		m = lenientPagePattern.FindStringSubmatch(href)
	}
	if m == nil {
		return PageIdentity{}, ErrPatternMatchFailed
	}
	gid, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return PageIdentity{}, malformed("gid", err)
	}
	page, err := strconv.Atoi(m[3])
	if err != nil {
		return PageIdentity{}, malformed("page", err)
	}
	if gid == 0 || page < 1 {
		return PageIdentity{}, ErrOutOfRange
	}
	return PageIdentity{Gid: gid, PToken: m[1], Page: page - 1}, nil
}
