package parser

import (
	"regexp"
	"strings"
)

var (
	archiveFormPattern = regexp.MustCompile(`<form id="hathdl_form" action="[^"]*?or=([^="]*?)" method="post">`)
	archiveItemPattern = regexp.MustCompile(`<a href="[^"]*" onclick="return do_hathdl\('([0-9]+|org)'\)">([^<]+)</a>`)
)

// Archive is the archiver.php popup: the download key and the H@H
// resolutions on offer.
type Archive struct {
	Or    string        `json:"or" yaml:"or"`
	Items []ArchiveItem `json:"items" yaml:"items"`
}

type ArchiveItem struct {
	Res  string `json:"res" yaml:"res"`
	Name string `json:"name" yaml:"name"`
}

func ParseArchive(body string) (Archive, error) {
	if err := checkNotices(body); err != nil {
		return Archive{}, err
	}
	m := archiveFormPattern.FindStringSubmatch(body)
	if m == nil {
		return Archive{}, ErrPatternMatchFailed
	}
	a := Archive{Or: m[1], Items: []ArchiveItem{}}
	for _, im := range archiveItemPattern.FindAllStringSubmatch(body, -1) {
		a.Items = append(a.Items, ArchiveItem{Res: im[1], Name: strings.TrimSpace(im[2])})
	}
	return a, nil
}
