package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	signInRequiredText = "This page requires you to log on."
	banNoticeText      = "Your IP address has been temporarily banned"
)

var (
	banPattern     = regexp.MustCompile(`ban expires in ([^.<)]+)`)
	banHourPattern = regexp.MustCompile(`(\d+)\s+hour`)
	banMinPattern  = regexp.MustCompile(`(\d+)\s+minute`)
	banSecPattern  = regexp.MustCompile(`(\d+)\s+second`)
)

// contentMarkers only appear on pages that carry gallery content, never on
// the log-on wall or the ban page.
var contentMarkers = []string{`id="gdt"`, `id="cdiv"`, `id="taglist"`, `class="itg`}

// checkNotices rejects pages that are answered for every URL: the log-on
// wall and the temporary IP ban. User text quoting either phrase inside a
// real page does not count.
func checkNotices(body string) error {
	if hasContent(body) {
		return nil
	}
	// The wall ends the phrase with a closing tag, which escaped user text cannot.
	if strings.Contains(body, signInRequiredText+"</p>") {
		return ErrSignInRequired
	}
	if text, ok := banNotice(body); ok {
		return fromServer(text)
	}
	return nil
}

func hasContent(body string) bool {
	for _, m := range contentMarkers {
		if strings.Contains(body, m) {
			return true
		}
	}
	return false
}

// banNotice reports whether body is the bare ban page, whose text starts with
// the notice, and returns that text.
func banNotice(body string) (string, bool) {
	text := strings.TrimSpace(stripTags(body))
	if !strings.HasPrefix(text, banNoticeText) {
		return "", false
	}
	return text, true
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripTags(s string) string {
	return collapseSpace(tagPattern.ReplaceAllString(s, " "))
}

// BanDuration extracts the remaining time from a temporary ban notice such
// as "The ban expires in 2 hours and 13 minutes".
func BanDuration(body string) (time.Duration, bool) {
	text, ok := banNotice(body)
	if !ok || hasContent(body) {
		return 0, false
	}
	m := banPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	var total time.Duration
	for _, u := range []struct {
		pattern *regexp.Regexp
		unit    time.Duration
	}{
		{banHourPattern, time.Hour},
		{banMinPattern, time.Minute},
		{banSecPattern, time.Second},
	} {
		if um := u.pattern.FindStringSubmatch(m[1]); um != nil {
			n, err := strconv.Atoi(um[1])
			if err == nil {
				total += time.Duration(n) * u.unit
			}
		}
	}
	if total <= 0 {
		return 0, false
	}
	return total, true
}
