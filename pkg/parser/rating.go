package parser

import (
	"regexp"
	"strconv"
)

var pxPattern = regexp.MustCompile(`(\d+)px`)

// ParseRating decodes the star sprite offsets of an inline style such as
// "background-position:-16px -21px;opacity:1". Each star row is 16px; a
// second offset of 21 selects the half-star row. Signs are not captured.
func ParseRating(style string) (float32, error) {
	m := pxPattern.FindAllStringSubmatch(style, 2)
	if len(m) < 2 {
		return 0, ErrPatternMatchFailed
	}
	x, err := strconv.Atoi(m[0][1])
	if err != nil {
		return 0, malformed("rating", err)
	}
	y, err := strconv.Atoi(m[1][1])
	if err != nil {
		return 0, malformed("rating", err)
	}

	r := float32(5 - x/16)
	if y == 21 {
		r -= 0.5
	}
	if r < 0 || r > 5 {
		return 0, ErrOutOfRange
	}
	return r, nil
}
