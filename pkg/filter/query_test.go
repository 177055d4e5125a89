package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slinet/ehparse/pkg/filter"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		keyword string
		want    *filter.Query
	}{
		{
			name:    "empty keyword",
			keyword: "",
			want:    &filter.Query{},
		},
		{
			name:    "keywords",
			keyword: "ai generated",
			want: &filter.Query{Must: []filter.Term{
				{Kind: filter.Keyword, Value: "ai"},
				{Kind: filter.Keyword, Value: "generated"},
			}},
		},
		{
			name:    "phrase",
			keyword: `"ai generated"`,
			want:    &filter.Query{Must: []filter.Term{{Kind: filter.Phrase, Value: "ai generated"}}},
		},
		{
			name:    "tag shortcut prefix",
			keyword: "f:glasses",
			want:    &filter.Query{Must: []filter.Term{{Kind: filter.TagPrefix, Value: "female:glasses"}}},
		},
		{
			name:    "exact tag",
			keyword: "language:chinese$",
			want:    &filter.Query{Must: []filter.Term{{Kind: filter.Tag, Value: "language:chinese"}}},
		},
		{
			name:    "quoted tag value",
			keyword: `a:"Some  Name"`,
			want:    &filter.Query{Must: []filter.Term{{Kind: filter.TagPrefix, Value: "artist:some name"}}},
		},
		{
			name:    "exclusion",
			keyword: "-ai -f:futanari",
			want: &filter.Query{Not: []filter.Term{
				{Kind: filter.Keyword, Value: "ai"},
				{Kind: filter.TagPrefix, Value: "female:futanari"},
			}},
		},
		{
			name:    "alternatives",
			keyword: "~english,~l:chinese ~korean",
			want: &filter.Query{Any: []filter.Term{
				{Kind: filter.Keyword, Value: "english"},
				{Kind: filter.TagPrefix, Value: "language:chinese"},
				{Kind: filter.Keyword, Value: "korean"},
			}},
		},
		{
			name:    "wildcard",
			keyword: "tit*e",
			want:    &filter.Query{Must: []filter.Term{{Kind: filter.Wildcard, Value: "tit%e"}}},
		},
		{
			name:    "invalid tag dropped",
			keyword: "female: :x",
			want:    &filter.Query{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, filter.Parse(tt.keyword))
		})
	}
}

func TestQueryEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, filter.Parse("  ").Empty())
	assert.False(t, filter.Parse("x").Empty())
}

func TestNormalizeTag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "female:big breasts", filter.NormalizeTag("F:Big   Breasts"))
	assert.Equal(t, "parody:touhou project", filter.NormalizeTag("series:touhou project"))
	assert.Equal(t, "unknownns:x", filter.NormalizeTag("unknownns:x"))
	assert.Equal(t, "plain", filter.NormalizeTag("Plain"))
}
