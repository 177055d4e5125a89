package parser

import "regexp"

var rgbaPattern = regexp.MustCompile(`rgba\((\d+),(\d+),(\d+),`)

type rgb struct{ r, g, b string }

// Slot order is significant: index is the slot number.
var favoriteSlotColors = [10]rgb{
	{"0", "0", "0"},
	{"240", "0", "0"},
	{"240", "160", "0"},
	{"208", "208", "0"},
	{"0", "128", "0"},
	{"144", "240", "64"},
	{"64", "176", "240"},
	{"0", "0", "240"},
	{"80", "0", "128"},
	{"224", "128", "224"},
}

// FavoriteSlotCount is the number of user favourite categories.
const FavoriteSlotCount = len(favoriteSlotColors)

// ParseFavoriteSlot maps the rgba border colour of a favourite marker to its
// slot. The triplet is compared textually; anything not in the table,
// including a style without an rgba() colour, is ErrOutOfRange. Callers
// decide "not favourited" from the attribute being absent, never from here.
func ParseFavoriteSlot(style string) (int, error) {
	m := rgbaPattern.FindStringSubmatch(style)
	if m == nil {
		return 0, ErrOutOfRange
	}
	c := rgb{m[1], m[2], m[3]}
	for i, slot := range favoriteSlotColors {
		if slot == c {
			return i, nil
		}
	}
	return 0, ErrOutOfRange
}
