package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

const tagSelector = ".gt, .gtl, .gtw"

// TagGroup is one namespace row of a gallery's tag table.
type TagGroup struct {
	Name string   `json:"name" yaml:"name"`
	Tags []string `json:"tags" yaml:"tags"`
}

// Qualified returns the tags as "namespace:tag".
func (g TagGroup) Qualified() []string {
	out := make([]string, len(g.Tags))
	for i, t := range g.Tags {
		out[i] = g.Name + ":" + t
	}
	return out
}

// ParseTagGroup decodes a single row such as
//
//	<tr><td class="tc">parody:</td><td><div class="gtl">senran kagura</div></td></tr>
func ParseTagGroup(fragment string) (TagGroup, error) {
	root, err := parseFragment(fragment, atom.Tbody)
	if err != nil {
		return TagGroup{}, err
	}
	return tagGroupFrom(root)
}

func tagGroupFrom(row *goquery.Selection) (TagGroup, error) {
	name := strings.TrimSuffix(trimmedText(row.Find(".tc").First()), ":")
	if name == "" {
		return TagGroup{}, elemNotFound(".tc")
	}

	var tags []string
	row.Find(tagSelector).Each(func(_ int, s *goquery.Selection) {
		if t := collapseSpace(s.Text()); t != "" {
			tags = append(tags, t)
		}
	})
	if len(tags) == 0 {
		return TagGroup{}, elemNotFound(tagSelector)
	}
	return TagGroup{Name: name, Tags: tags}, nil
}

// ParseTagGroupList decodes every row under #taglist. A gallery without
// tags has a #taglist with no rows and yields an empty list.
func ParseTagGroupList(body string) ([]TagGroup, error) {
	doc, err := newDocument(body)
	if err != nil {
		return nil, err
	}
	return tagGroupsFrom(doc.Selection)
}

func tagGroupsFrom(s *goquery.Selection) ([]TagGroup, error) {
	list, err := findOne(s, "#taglist")
	if err != nil {
		return nil, err
	}
	groups := []TagGroup{}
	var failed error
	list.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		g, err := tagGroupFrom(row)
		if err != nil {
			failed = fmt.Errorf("tag group %d: %w", i, err)
			return false
		}
		groups = append(groups, g)
		return true
	})
	if failed != nil {
		return nil, failed
	}
	return groups, nil
}
