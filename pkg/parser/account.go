package parser

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	signInNamePattern  = regexp.MustCompile(`<p>You are now logged in as: (.+?)<`)
	signInErrorPattern = regexp.MustCompile(`(?s)(?:<h4>The error returned was:</h4>\s*<p>(.+?)</p>)|(?:<span class="postcolor">(.+?)</span>)`)
)

// ParseSignIn returns the account name from a forum login response. A
// rejected login fails with the forum's message as a *ServerError.
func ParseSignIn(body string) (string, error) {
	if m := signInNamePattern.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1]), nil
	}
	if m := signInErrorPattern.FindStringSubmatch(body); m != nil {
		msg := m[1]
		if msg == "" {
			msg = m[2]
		}
		return "", fromServer(strings.TrimSpace(msg))
	}
	return "", ErrPatternMatchFailed
}

// ParseGalleryNotAvailable returns the explanation shown for a removed or
// restricted gallery.
func ParseGalleryNotAvailable(body string) (string, error) {
	doc, err := newDocument(body)
	if err != nil {
		return "", err
	}
	p, err := findOne(doc.Selection, ".d p:first-child")
	if err != nil {
		return "", err
	}
	return trimmedText(p), nil
}

// FavoriteCategory is one of the favourite slots in the favourites.php header.
type FavoriteCategory struct {
	Slot  int    `json:"slot" yaml:"slot"`
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Favorites is a decoded favourites.php page.
type Favorites struct {
	Categories []FavoriteCategory `json:"categories" yaml:"categories"`
	List       *GalleryList       `json:"list" yaml:"list"`
}

// ParseFavorites decodes the slot header and the listing below it.
func (p *Parser) ParseFavorites(body string) (*Favorites, error) {
	if err := checkNotices(body); err != nil {
		return nil, err
	}
	doc, err := newDocument(body)
	if err != nil {
		return nil, err
	}

	fps := doc.Find(".ido .fp")
	if fps.Length() < FavoriteSlotCount {
		return nil, elemNotFound(".ido .fp")
	}
	fav := &Favorites{Categories: make([]FavoriteCategory, 0, FavoriteSlotCount)}
	for i := 0; i < FavoriteSlotCount; i++ {
		cells := fps.Eq(i).Children()
		if cells.Length() < 3 {
			return nil, fmt.Errorf("favorite slot %d: %w", i, elemNotFound(".fp > div"))
		}
		count, err := atoi("favorite count", cells.Eq(0).Text())
		if err != nil {
			return nil, fmt.Errorf("favorite slot %d: %w", i, err)
		}
		fav.Categories = append(fav.Categories, FavoriteCategory{
			Slot:  i,
			Name:  trimmedText(cells.Eq(2)),
			Count: count,
		})
	}

	if fav.List, err = p.ParseGalleryList(body); err != nil {
		return nil, fmt.Errorf("parse favorites list: %w", err)
	}
	return fav, nil
}

func ParseFavorites(body string) (*Favorites, error) {
	return std.ParseFavorites(body)
}
