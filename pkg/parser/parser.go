// Package parser decodes E-Hentai HTML documents into typed records.
//
// Every function is a pure function of its input document: nothing is
// fetched, cached or logged, and a Parser may be shared by any number of
// goroutines. A document that does not decode fails with an error from the
// Err* taxonomy; records are never returned partially filled.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Default host aliases accepted by strict URL decoding.
const (
	HostEx   = "exhentai.org"
	HostE    = "e-hentai.org"
	HostLofi = "lofi.e-hentai.org"
)

// Options is the immutable configuration of a Parser.
type Options struct {
	// Hosts accepted by strict detail and page URL decoding.
	Hosts []string
}

// DefaultOptions returns the site's three host aliases.
func DefaultOptions() Options {
	return Options{Hosts: []string{HostEx, HostE, HostLofi}}
}

// Parser holds the host-dependent patterns built from Options.
type Parser struct {
	hosts        []string
	strictDetail *regexp.Regexp
	strictPage   *regexp.Regexp
}

// New builds a Parser. At least one host is required.
func New(opts Options) (*Parser, error) {
	if len(opts.Hosts) == 0 {
		return nil, errors.New("parser: no hosts configured")
	}
	quoted := make([]string, 0, len(opts.Hosts))
	for _, h := range opts.Hosts {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, errors.New("parser: empty host")
		}
		quoted = append(quoted, regexp.QuoteMeta(h))
	}
	hosts := strings.Join(quoted, "|")

	detail, err := regexp.Compile(`^https?://(?:` + hosts + `)/(?:g|mpv)/(\d+)/([0-9a-f]{10})`)
	if err != nil {
		return nil, fmt.Errorf("compile detail url pattern: %w", err)
	}
	page, err := regexp.Compile(`^https?://(?:` + hosts + `)/s/([0-9a-f]{10})/(\d+)-(\d+)`)
	if err != nil {
		return nil, fmt.Errorf("compile page url pattern: %w", err)
	}
	return &Parser{
		hosts:        append([]string(nil), opts.Hosts...),
		strictDetail: detail,
		strictPage:   page,
	}, nil
}

// MustNew is New that panics on error, for package-level defaults.
func MustNew(opts Options) *Parser {
	p, err := New(opts)
	if err != nil {
		panic(err)
	}
	return p
}

// Hosts returns a copy of the configured host aliases.
func (p *Parser) Hosts() []string {
	return append([]string(nil), p.hosts...)
}

var std = MustNew(DefaultOptions())

// Default returns the Parser used by the package-level functions.
func Default() *Parser { return std }

func ParseDetailURL(href string, strict bool) (GalleryIdentity, error) {
	return std.ParseDetailURL(href, strict)
}

func ParsePageURL(href string, strict bool) (PageIdentity, error) {
	return std.ParsePageURL(href, strict)
}

func ParseGalleryList(body string) (*GalleryList, error) {
	return std.ParseGalleryList(body)
}

func ParseGalleryDetail(body string) (*GalleryDetail, error) {
	return std.ParseGalleryDetail(body)
}
