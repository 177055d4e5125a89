package parser

import "regexp"

var (
	pageImagePattern    = regexp.MustCompile(`<img[^>]*src="([^"]+)" style`)
	pageSkipHathPattern = regexp.MustCompile(`onclick="return nl\('([^)]+)'\)"`)
	pageOriginPattern   = regexp.MustCompile(`<a href="([^"]+)fullimg\.php([^"]+)">`)
	pageShowKeyPattern  = regexp.MustCompile(`var showkey="([0-9a-z]+)";`)
)

// GalleryPage is the single-image reader page (/s/<ptoken>/<gid>-<page>).
// OriginImageURL is empty when the original file is not offered.
type GalleryPage struct {
	ImageURL       string `json:"image_url" yaml:"image_url"`
	SkipHathKey    string `json:"skip_hath_key" yaml:"skip_hath_key"`
	OriginImageURL string `json:"origin_image_url,omitempty" yaml:"origin_image_url,omitempty"`
	ShowKey        string `json:"show_key" yaml:"show_key"`
}

func ParseGalleryPage(body string) (GalleryPage, error) {
	if err := checkNotices(body); err != nil {
		return GalleryPage{}, err
	}
	var p GalleryPage
	for _, f := range []struct {
		pattern *regexp.Regexp
		dst     *string
	}{
		{pageImagePattern, &p.ImageURL},
		{pageSkipHathPattern, &p.SkipHathKey},
		{pageShowKeyPattern, &p.ShowKey},
	} {
		m := f.pattern.FindStringSubmatch(body)
		if m == nil {
			return GalleryPage{}, ErrPatternMatchFailed
		}
		*f.dst = Unescape(m[1])
	}
	if m := pageOriginPattern.FindStringSubmatch(body); m != nil {
		p.OriginImageURL = m[1] + "fullimg.php" + Unescape(m[2])
	}
	return p, nil
}
