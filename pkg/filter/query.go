// Package filter narrows decoded listing pages with the site's search
// syntax and category mask, for collaborators that post-process results.
package filter

import (
	"regexp"
	"strings"
)

// Kind classifies a search term.
type Kind int

const (
	Keyword   Kind = iota // bare word, matched against the title
	Phrase                // "quoted words", matched against the title
	Tag                   // namespace:value$, exact simple tag
	TagPrefix             // namespace:value, simple tag prefix
	Wildcard              // word with * or %, glob against the title
)

// Term is one parsed search term. Tag values are normalized.
type Term struct {
	Kind  Kind
	Value string
}

// Query is a parsed search string. Every Must term has to match, no Not
// term may match, and at least one Any term has to match when Any is set.
type Query struct {
	Must []Term
	Not  []Term
	Any  []Term
}

// Empty reports whether the query has no terms.
func (q *Query) Empty() bool {
	return len(q.Must) == 0 && len(q.Not) == 0 && len(q.Any) == 0
}

// tokenPattern splits a search string into prefix + one of:
// namespace:"quoted value", "quoted phrase" or a bare token.
var tokenPattern = regexp.MustCompile(`([-~]?)(?:(\w+):"([^"]+)"|"([^"]+)"|(\S+))`)

// Parse parses a search keyword string:
//
//	word "a phrase" f:glasses language:chinese$ -ai ~english,~chinese artist:"some name"
//
// "-" excludes a term, "~" makes it an alternative and a trailing "$" asks
// for an exact tag. All "~" terms form a single alternative group.
func Parse(keyword string) *Query {
	q := &Query{}
	for _, m := range tokenPattern.FindAllStringSubmatch(keyword, -1) {
		prefix := m[1]
		var terms []Term
		switch {
		case m[2] != "":
			if t, ok := tagTerm(m[2] + ":" + strings.TrimSpace(m[3])); ok {
				terms = append(terms, t)
			}
		case m[4] != "":
			if p := strings.TrimSpace(m[4]); p != "" {
				terms = append(terms, Term{Kind: Phrase, Value: p})
			}
		default:
			tok := m[5]
			if prefix == "~" {
				for _, part := range strings.Split(tok, ",") {
					if t, ok := bareTerm(strings.TrimPrefix(strings.TrimSpace(part), "~")); ok {
						terms = append(terms, t)
					}
				}
			} else if t, ok := bareTerm(tok); ok {
				terms = append(terms, t)
			}
		}

		switch prefix {
		case "-":
			q.Not = append(q.Not, terms...)
		case "~":
			q.Any = append(q.Any, terms...)
		default:
			q.Must = append(q.Must, terms...)
		}
	}
	return q
}

func bareTerm(tok string) (Term, bool) {
	if tok == "" {
		return Term{}, false
	}
	if strings.Contains(tok, ":") {
		return tagTerm(tok)
	}
	if strings.ContainsAny(tok, "*%") {
		return Term{Kind: Wildcard, Value: strings.ReplaceAll(tok, "*", "%")}, true
	}
	return Term{Kind: Keyword, Value: tok}, true
}

func tagTerm(tok string) (Term, bool) {
	kind := TagPrefix
	if strings.HasSuffix(tok, "$") {
		kind = Tag
		tok = strings.TrimSuffix(tok, "$")
	}
	tag := NormalizeTag(tok)
	if !validTag(tag) {
		return Term{}, false
	}
	return Term{Kind: kind, Value: tag}, true
}
