package spool

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/slinet/ehparse/pkg/parser"
)

// Kind names a document type the spool knows how to decode.
type Kind string

const (
	KindList      Kind = "list"
	KindNav       Kind = "nav"
	KindDetail    Kind = "detail"
	KindTorrents  Kind = "torrents"
	KindArchive   Kind = "archive"
	KindPage      Kind = "page"
	KindFavorites Kind = "favorites"
	KindSignIn    Kind = "signin"
)

var kinds = []Kind{KindList, KindNav, KindDetail, KindTorrents, KindArchive, KindPage, KindFavorites, KindSignIn}

// Kinds returns every supported kind.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown document kind %q", s)
}

// KindOf derives the kind from a spool file name: the part before the
// first "_" or "-", as in "detail_2455981.html".
func KindOf(name string) (Kind, bool) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if i := strings.IndexAny(base, "_-"); i > 0 {
		base = base[:i]
	}
	k, err := ParseKind(strings.ToLower(base))
	return k, err == nil
}

// Decode runs the decoder for kind.
func Decode(p *parser.Parser, kind Kind, body string) (any, error) {
	switch kind {
	case KindList:
		return p.ParseGalleryList(body)
	case KindNav:
		return parser.ParseSearchNav(body)
	case KindDetail:
		return p.ParseGalleryDetail(body)
	case KindTorrents:
		return parser.ParseTorrentList(body)
	case KindArchive:
		return parser.ParseArchive(body)
	case KindPage:
		return parser.ParseGalleryPage(body)
	case KindFavorites:
		return p.ParseFavorites(body)
	case KindSignIn:
		name, err := parser.ParseSignIn(body)
		if err != nil {
			return nil, err
		}
		return map[string]string{"username": name}, nil
	}
	return nil, fmt.Errorf("unknown document kind %q", kind)
}
