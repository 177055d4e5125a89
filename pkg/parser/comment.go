package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

const commentTimeLayout = "2 January 2006, 15:04"

var (
	commentAnchorPattern = regexp.MustCompile(`^c(\d+)$`)
	commentPostedPattern = regexp.MustCompile(`Posted\s*on\s*(.+?)\s*by`)
	commentEditedPattern = regexp.MustCompile(`(\d{1,2} [A-Za-z]+ \d{4}, \d{1,2}:\d{2})`)
)

// Comment is one entry of a gallery's comment section. ID 0 is the
// uploader's comment, which carries no score and cannot be voted on.
type Comment struct {
	ID         int64  `json:"id" yaml:"id"`
	User       string `json:"user" yaml:"user"`
	Posted     int64  `json:"posted" yaml:"posted"`
	LastEdited *int64 `json:"last_edited,omitempty" yaml:"last_edited,omitempty"`
	Body       string `json:"body" yaml:"body"`
	Uploader   bool   `json:"uploader" yaml:"uploader"`

	Score        *int   `json:"score,omitempty" yaml:"score,omitempty"`
	Editable     bool   `json:"editable" yaml:"editable"`
	VoteUpAble   bool   `json:"vote_up_able" yaml:"vote_up_able"`
	VoteUpEd     bool   `json:"vote_up_ed" yaml:"vote_up_ed"`
	VoteDownAble bool   `json:"vote_down_able" yaml:"vote_down_able"`
	VoteDownEd   bool   `json:"vote_down_ed" yaml:"vote_down_ed"`
	VoteState    string `json:"vote_state,omitempty" yaml:"vote_state,omitempty"`
}

// CommentList is the comment section of a detail page.
type CommentList struct {
	Comments []Comment `json:"comments" yaml:"comments"`
	HasMore  bool      `json:"has_more" yaml:"has_more"`
}

// ParseComment decodes an anchor/content pair:
//
//	<a name="c3922745"></a><div class="c1">...</div>
func ParseComment(fragment string) (Comment, error) {
	root, err := parseFragment(fragment, atom.Div)
	if err != nil {
		return Comment{}, err
	}
	anchor, err := findOne(root, "a[name]")
	if err != nil {
		return Comment{}, err
	}
	block, err := findOne(root, ".c1")
	if err != nil {
		return Comment{}, err
	}
	return commentFrom(root, anchor, block)
}

// ParseCommentList decodes the #cdiv section of a detail page.
func ParseCommentList(body string) (CommentList, error) {
	doc, err := newDocument(body)
	if err != nil {
		return CommentList{}, err
	}
	return commentsFrom(doc.Selection)
}

func commentsFrom(s *goquery.Selection) (CommentList, error) {
	cdiv, err := findOne(s, "#cdiv")
	if err != nil {
		return CommentList{}, err
	}

	list := CommentList{Comments: []Comment{}}
	var failed error
	cdiv.Find("a[name]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		name, _ := a.Attr("name")
		if !commentAnchorPattern.MatchString(name) {
			return true
		}
		block := a.Next()
		if !block.HasClass("c1") {
			failed = fmt.Errorf("comment %s: %w", name, elemNotFound(".c1"))
			return false
		}
		c, err := commentFrom(cdiv, a, block)
		if err != nil {
			failed = fmt.Errorf("comment %s: %w", name, err)
			return false
		}
		list.Comments = append(list.Comments, c)
		return true
	})
	if failed != nil {
		return CommentList{}, failed
	}

	list.HasMore = cdiv.Find("#chd [rel=nofollow]").Length() > 0
	return list, nil
}

// commentFrom reads one comment. Vote controls and the score are looked up
// by id under scope, not inside block.
func commentFrom(scope, anchor, block *goquery.Selection) (Comment, error) {
	name, _ := anchor.Attr("name")
	m := commentAnchorPattern.FindStringSubmatch(name)
	if m == nil {
		return Comment{}, ErrPatternMatchFailed
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Comment{}, malformed("comment id", err)
	}

	c3, err := findOne(block, ".c3")
	if err != nil {
		return Comment{}, err
	}
	pm := commentPostedPattern.FindStringSubmatch(c3.Text())
	if pm == nil {
		return Comment{}, ErrPatternMatchFailed
	}
	posted, err := parseCommentTime(pm[1])
	if err != nil {
		return Comment{}, err
	}
	user, err := findOne(c3, "a")
	if err != nil {
		return Comment{}, err
	}
	c6, err := findOne(block, ".c6")
	if err != nil {
		return Comment{}, err
	}
	body, err := c6.Html()
	if err != nil {
		return Comment{}, fmt.Errorf("render comment body: %w", err)
	}

	c := Comment{
		ID:       id,
		User:     trimmedText(user),
		Posted:   posted,
		Body:     strings.TrimSpace(body),
		Uploader: id == 0 || trimmedText(block.Find(".c4").First()) == "Uploader Comment",
	}

	if c8 := block.Find(".c8"); c8.Length() > 0 {
		em := commentEditedPattern.FindStringSubmatch(c8.Text())
		if em == nil {
			return Comment{}, ErrPatternMatchFailed
		}
		edited, err := parseCommentTime(em[1])
		if err != nil {
			return Comment{}, err
		}
		c.LastEdited = &edited
	}

	if c.Uploader {
		return c, nil
	}

	idStr := m[1]
	c.VoteUpAble, c.VoteUpEd = voteState(scope.Find("#comment_vote_up_" + idStr))
	c.VoteDownAble, c.VoteDownEd = voteState(scope.Find("#comment_vote_down_" + idStr))
	block.Find(".c4 a").Each(func(_ int, a *goquery.Selection) {
		if trimmedText(a) == "Edit" {
			c.Editable = true
		}
	})

	scoreEl, err := findOne(scope, "#comment_score_"+idStr)
	if err != nil {
		return Comment{}, err
	}
	score, err := strconv.Atoi(trimmedText(scoreEl))
	if err != nil {
		return Comment{}, malformed("comment score", err)
	}
	c.Score = &score
	c.VoteState = collapseSpace(block.Find(".c7").First().Text())
	return c, nil
}

// voteState reports whether a vote anchor is usable and whether it has
// already been used (non-empty inline style).
func voteState(a *goquery.Selection) (able, ed bool) {
	if a.Length() == 0 {
		return false, false
	}
	style, ok := a.Attr("style")
	if !ok {
		return false, false
	}
	return true, strings.TrimSpace(style) != ""
}

func parseCommentTime(s string) (int64, error) {
	t, err := time.ParseInLocation(commentTimeLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return 0, malformed("comment time", err)
	}
	return t.Unix(), nil
}
