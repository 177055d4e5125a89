package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slinet/ehparse/pkg/parser"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  string
		flag  uint32
	}{
		{"Doujinshi", "Doujinshi", parser.FlagDoujinshi},
		{"doujinshi", "Doujinshi", parser.FlagDoujinshi},
		{"MANGA", "Manga", parser.FlagManga},
		{"Artist CG Sets", "Artist CG", parser.FlagArtistCG},
		{"artistcg", "Artist CG", parser.FlagArtistCG},
		{"Game CG", "Game CG", parser.FlagGameCG},
		{"Image Set", "Image Set", parser.FlagImageSet},
		{"Asian Porn", "Asian Porn", parser.FlagAsianPorn},
		{"Non-H", "Non-H", parser.FlagNonH},
		{" Western ", "Western", parser.FlagWestern},
		{"Misc", "Misc", parser.FlagMisc},
		{"Cosplay", "Cosplay", parser.FlagCosplay},
		{"Private", "Unknown", parser.FlagUnknown},
		{"", "Unknown", parser.FlagUnknown},
	}
	for _, tt := range tests {
		got := parser.ParseCategory(tt.label)
		assert.Equal(t, tt.want, got.Name, tt.label)
		assert.Equal(t, tt.flag, got.Flag, tt.label)
	}
}

func TestCategoryTable(t *testing.T) {
	t.Parallel()

	cats := parser.Categories()
	assert.Len(t, cats, 10)

	var all uint32
	for _, c := range cats {
		assert.Zero(t, all&c.Flag, "flags must not overlap")
		all |= c.Flag
		assert.Equal(t, c, parser.CategoryFromFlag(c.Flag))
		assert.Equal(t, c, parser.ParseCategory(c.Name))
		assert.False(t, c.IsUnknown())
	}
	assert.Equal(t, parser.AllCategories, all)

	assert.True(t, parser.CategoryFromFlag(0x3).IsUnknown())
	assert.True(t, parser.Unknown.IsUnknown())
	assert.Equal(t, uint32(0), parser.Unknown.Color)
}

func TestCategoriesFromBits(t *testing.T) {
	t.Parallel()

	assert.Len(t, parser.CategoriesFromBits(0), 10)
	assert.Empty(t, parser.CategoriesFromBits(parser.AllCategories))
	assert.Equal(t,
		[]string{"Doujinshi", "Manga"},
		parser.CategoriesFromBits(parser.AllCategories&^(parser.FlagDoujinshi|parser.FlagManga)))
}
