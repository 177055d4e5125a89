package filter

import "strings"

// shortMap maps tag namespace shortcuts to full names (matching E-Hentai convention)
var shortMap = map[string]string{
	"a":      "artist",
	"c":      "character",
	"char":   "character",
	"cos":    "cosplayer",
	"f":      "female",
	"g":      "group",
	"circle": "group",
	"l":      "language",
	"lang":   "language",
	"loc":    "location",
	"m":      "male",
	"x":      "mixed",
	"o":      "other",
	"p":      "parody",
	"series": "parody",
	"r":      "reclass",
}

// NormalizeTag lowercases a tag, collapses inner spaces and expands a
// namespace shortcut ("f:glasses" -> "female:glasses").
func NormalizeTag(tag string) string {
	tag = strings.Join(strings.Fields(strings.ToLower(tag)), " ")
	ns, value, ok := strings.Cut(tag, ":")
	if !ok {
		return tag
	}
	if full, found := shortMap[ns]; found {
		return full + ":" + value
	}
	return tag
}

// validTag reports whether tag has both a namespace and a value.
func validTag(tag string) bool {
	ns, value, ok := strings.Cut(tag, ":")
	return ok && ns != "" && value != ""
}
