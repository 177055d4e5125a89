package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func newDocument(body string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// parseFragment parses markup as if it appeared inside a ctx element, so that
// bare <tr> rows survive when ctx is atom.Tbody.
func parseFragment(fragment string, ctx atom.Atom) (*goquery.Selection, error) {
	parent := &html.Node{Type: html.ElementNode, Data: ctx.String(), DataAtom: ctx}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return goquery.NewDocumentFromNode(parent).Selection, nil
}

func findOne(s *goquery.Selection, selector string) (*goquery.Selection, error) {
	found := s.Find(selector)
	if found.Length() == 0 {
		return nil, elemNotFound(selector)
	}
	return found.First(), nil
}

func requireAttr(s *goquery.Selection, name string) (string, error) {
	v, ok := s.Attr(name)
	if !ok {
		return "", attrNotFound(name)
	}
	return v, nil
}

func trimmedText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// collapseSpace joins whitespace runs, including newlines inside tag anchors.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// atoi accepts thousands separators as rendered by the site ("1,024").
func atoi(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return 0, malformed(field, err)
	}
	return n, nil
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#039;", "'",
	"&times;", "×",
	"&nbsp;", " ",
)

// Unescape decodes the handful of entities the site emits inside script
// arguments and raw attribute captures.
func Unescape(s string) string {
	return entityReplacer.Replace(s)
}
