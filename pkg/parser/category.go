package parser

import (
	"sort"
	"strings"
)

// Category flag values match the site's f_cats search bits.
const (
	FlagMisc      uint32 = 0x1
	FlagDoujinshi uint32 = 0x2
	FlagManga     uint32 = 0x4
	FlagArtistCG  uint32 = 0x8
	FlagGameCG    uint32 = 0x10
	FlagImageSet  uint32 = 0x20
	FlagCosplay   uint32 = 0x40
	FlagAsianPorn uint32 = 0x80
	FlagNonH      uint32 = 0x100
	FlagWestern   uint32 = 0x200
	FlagUnknown   uint32 = 0x400

	AllCategories uint32 = 0x3ff
)

// Category is a decoded gallery category. Color is ARGB.
type Category struct {
	Name  string `json:"name" yaml:"name"`
	Color uint32 `json:"color" yaml:"color"`
	Flag  uint32 `json:"flag" yaml:"flag"`
}

type categoryEntry struct {
	aliases []string
	Category
}

var categoryTable = []categoryEntry{
	{[]string{"misc"}, Category{"Misc", 0xfff06292, FlagMisc}},
	{[]string{"doujinshi"}, Category{"Doujinshi", 0xfff44336, FlagDoujinshi}},
	{[]string{"manga"}, Category{"Manga", 0xffff9800, FlagManga}},
	{[]string{"artistcg", "Artist CG Sets", "Artist CG"}, Category{"Artist CG", 0xfffbc02d, FlagArtistCG}},
	{[]string{"gamecg", "Game CG Sets", "Game CG"}, Category{"Game CG", 0xff4caf50, FlagGameCG}},
	{[]string{"imageset", "Image Sets", "Image Set"}, Category{"Image Set", 0xff3f51b5, FlagImageSet}},
	{[]string{"cosplay"}, Category{"Cosplay", 0xff9c27b0, FlagCosplay}},
	{[]string{"asianporn", "Asian Porn"}, Category{"Asian Porn", 0xff9575cd, FlagAsianPorn}},
	{[]string{"non-h"}, Category{"Non-H", 0xff2196f3, FlagNonH}},
	{[]string{"western"}, Category{"Western", 0xff8bc34a, FlagWestern}},
}

// Unknown is returned for labels outside the alias table and for missing labels alike.
var Unknown = Category{Name: "Unknown", Color: 0x00000000, Flag: FlagUnknown}

// ParseCategory matches a label case-insensitively against the alias table.
// It never fails: unrecognised input yields Unknown.
func ParseCategory(label string) Category {
	label = strings.TrimSpace(label)
	for _, e := range categoryTable {
		for _, alias := range e.aliases {
			if strings.EqualFold(alias, label) {
				return e.Category
			}
		}
	}
	return Unknown
}

// CategoryFromFlag returns the category owning exactly one flag bit.
func CategoryFromFlag(flag uint32) Category {
	for _, e := range categoryTable {
		if e.Flag == flag {
			return e.Category
		}
	}
	return Unknown
}

// IsUnknown reports whether c is the fallback category.
func (c Category) IsUnknown() bool { return c.Flag == FlagUnknown }

// CategoriesFromBits lists the category names enabled by a search mask.
// As on the site, a set bit excludes its category.
func CategoriesFromBits(mask uint32) []string {
	var names []string
	for _, e := range categoryTable {
		if mask&e.Flag == 0 {
			names = append(names, e.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Categories returns the ten named categories in flag order.
func Categories() []Category {
	out := make([]Category, len(categoryTable))
	for i, e := range categoryTable {
		out[i] = e.Category
	}
	return out
}
