package filter

import (
	"regexp"
	"strings"

	"github.com/slinet/ehparse/pkg/parser"
)

// Match reports whether a listing entry satisfies q. Tag terms look at the
// entry's simple tags, which only Compact and Extended listings carry; for
// other layouts a tag term never matches.
func (q *Query) Match(info parser.GalleryInfo) bool {
	title := strings.ToLower(info.Title)
	for _, t := range q.Must {
		if !t.matches(title, info.SimpleTags) {
			return false
		}
	}
	for _, t := range q.Not {
		if t.matches(title, info.SimpleTags) {
			return false
		}
	}
	if len(q.Any) == 0 {
		return true
	}
	for _, t := range q.Any {
		if t.matches(title, info.SimpleTags) {
			return true
		}
	}
	return false
}

func (t Term) matches(title string, tags []string) bool {
	switch t.Kind {
	case Keyword, Phrase:
		return strings.Contains(title, strings.ToLower(t.Value))
	case Wildcard:
		return globPattern(t.Value).MatchString(title)
	case Tag:
		for _, tag := range tags {
			if NormalizeTag(tag) == t.Value {
				return true
			}
		}
	case TagPrefix:
		for _, tag := range tags {
			if strings.HasPrefix(NormalizeTag(tag), t.Value) {
				return true
			}
		}
	}
	return false
}

// globPattern turns a %-wildcard term into an unanchored, case-insensitive
// title pattern.
func globPattern(value string) *regexp.Regexp {
	parts := strings.Split(strings.ToLower(value), "%")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(strings.Join(parts, ".*"))
}

// ByCategoryMask reports whether info survives a site-style f_cats mask,
// in which a set bit hides that category.
func ByCategoryMask(info parser.GalleryInfo, mask uint32) bool {
	return mask&info.Category.Flag == 0
}

// Apply returns the entries of list matching q and mask, preserving order.
// A nil q matches everything.
func Apply(list []parser.GalleryInfo, q *Query, mask uint32) []parser.GalleryInfo {
	out := make([]parser.GalleryInfo, 0, len(list))
	for _, info := range list {
		if !ByCategoryMask(info, mask) {
			continue
		}
		if q != nil && !q.Match(info) {
			continue
		}
		out = append(out, info)
	}
	return out
}
