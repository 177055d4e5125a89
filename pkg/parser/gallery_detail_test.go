package parser_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slinet/ehparse/pkg/parser"
)

const detailHTML = `<html><head><script type="text/javascript">
var base_url = "https://e-hentai.org/";
var gid = 2455981;
var token = "4bfdf1d4e4";
var apiuid = 1234567;
var apikey = "0123456789abcdef0123";
</script></head><body>
<div class="gm">
<div id="gleft"><div id="gd1"><div style="width:250px; height:354px; background:transparent url(https://ehgt.org/c/cover_250.jpg) no-repeat"></div></div></div>
<div id="gd2"><h1 id="gn">[Artist] Title [English]</h1><h1 id="gj">[アーティスト] タイトル [英訳]</h1></div>
<div id="gright"><div id="gd5">
<p class="g2 gsp"><a href="#" onclick="return popUp('https://e-hentai.org/archiver.php?gid=2455981&amp;token=4bfdf1d4e4&amp;or=abc123',480,320)">Archive Download</a></p>
<p class="g2"><a href="#" onclick="return popUp('https://e-hentai.org/gallerytorrents.php?gid=2455981&amp;t=4bfdf1d4e4',610,590)">Torrent Download (12)</a></p>
</div></div>
<div id="gmid">
<div id="gd3">
<div id="gdc"><div class="cs ct2">Doujinshi</div></div>
<div id="gdn"><a href="https://e-hentai.org/uploader/someone">someone</a></div>
<div id="gdd"><table>
<tr><td class="gdt1">Posted:</td><td class="gdt2">2023-02-17 10:51</td></tr>
<tr><td class="gdt1">Parent:</td><td class="gdt2"><a href="https://e-hentai.org/g/2455000/aaaaaaaaaa/">2455000</a></td></tr>
<tr><td class="gdt1">Visible:</td><td class="gdt2">Yes</td></tr>
<tr><td class="gdt1">Language:</td><td class="gdt2">English</td></tr>
<tr><td class="gdt1">File Size:</td><td class="gdt2">52.73 MiB</td></tr>
<tr><td class="gdt1">Length:</td><td class="gdt2">24 pages</td></tr>
<tr><td class="gdt1">Favorited:</td><td class="gdt2" id="favcount">1,205 times</td></tr>
</table></div>
<div id="gdr"><table><tr><td id="grt1">Rating:</td><td id="grt3"><span id="rating_count">512</span></td></tr>
<tr><td id="rating_label" colspan="3">Average: 4.62</td></tr></table></div>
<div id="gdf"><div class="i" style="border-color:#f00;background-color:rgba(240,0,0,0.1);margin-left:12px"></div>
<a id="favoritelink" href="#" onclick="return popUp()">Favorites 1</a></div>
</div>
<div id="gd4"><div id="taglist"><table>
<tr><td class="tc">language:</td><td><div class="gt">english</div><div class="gt">translated</div></td></tr>
<tr><td class="tc">female:</td><td><div class="gtl">glasses</div></td></tr>
</table></div></div>
</div>
<div class="c"></div>
</div>
<div id="gnd">There are newer versions of this gallery available:<br /><br /><a href="https://e-hentai.org/g/2460000/bbbbbbbbbb/">Title v2</a>, added 2023-02-20 11:00<br /><a href="https://e-hentai.org/g/2470000/cccccccccc/">Title v3</a>, added 2023-03-01 09:00<br /></div>
<div class="gtb"><p class="gpc">Showing 1 - 2 of 24 images</p>
<table class="ptt"><tr><td class="ptdd">&lt;</td><td class="ptds"><a href="#">1</a></td><td><a href="#">2</a></td><td><a href="#">&gt;</a></td></tr></table></div>
` + largePreviewHTML + `
<div id="cdiv" class="gm">
<a name="c0"></a>
<div class="c1"><div class="c2"><div class="c3">Posted on 17 February 2023, 10:52 by: &nbsp; <a href="#">someone</a></div><div class="c4">Uploader Comment</div></div><div class="c6">hello</div></div>
</div>
</body></html>`

func TestParseGalleryDetail(t *testing.T) {
	t.Parallel()

	d, err := parser.ParseGalleryDetail(detailHTML)
	require.NoError(t, err)

	assert.Equal(t, parser.GalleryIdentity{Gid: 2455981, Token: "4bfdf1d4e4"}, d.GalleryIdentity)
	assert.Equal(t, int64(1234567), d.APIUID)
	assert.Equal(t, "0123456789abcdef0123", d.APIKey)
	assert.Equal(t, 12, d.TorrentCount)
	assert.Equal(t, "https://e-hentai.org/gallerytorrents.php?gid=2455981&t=4bfdf1d4e4", d.TorrentURL)
	assert.Equal(t, "https://e-hentai.org/archiver.php?gid=2455981&token=4bfdf1d4e4&or=abc123", d.ArchiveURL)
	assert.Equal(t, parser.Thumb{URL: "https://ehgt.org/c/cover_250.jpg", Width: 250, Height: 354}, d.Cover)
	assert.Equal(t, "[Artist] Title [English]", d.Title)
	assert.Equal(t, "[アーティスト] タイトル [英訳]", d.TitleJpn)
	assert.Equal(t, "Doujinshi", d.Category.Name)
	assert.Equal(t, "someone", d.Uploader)

	assert.Equal(t, parser.DetailTable{
		Posted:        "2023-02-17 10:51",
		Parent:        &parser.GalleryIdentity{Gid: 2455000, Token: "aaaaaaaaaa"},
		Visible:       "Yes",
		Language:      "English",
		FileSize:      "52.73 MiB",
		Pages:         24,
		FavoriteCount: 1205,
	}, d.Detail)

	assert.Equal(t, 512, d.RatingCount)
	require.NotNil(t, d.Rating)
	assert.InDelta(t, 4.62, *d.Rating, 0.0001)

	assert.True(t, d.Favorited)
	require.NotNil(t, d.FavoriteSlot)
	assert.Equal(t, 1, *d.FavoriteSlot)
	assert.Equal(t, "Favorites 1", *d.FavoriteName)

	assert.Equal(t, map[string]parser.GalleryIdentity{
		"2023-02-20 11:00": {Gid: 2460000, Token: "bbbbbbbbbb"},
		"2023-03-01 09:00": {Gid: 2470000, Token: "cccccccccc"},
	}, d.NewerVersions)

	assert.Equal(t, []parser.TagGroup{
		{Name: "language", Tags: []string{"english", "translated"}},
		{Name: "female", Tags: []string{"glasses"}},
	}, d.TagGroups)

	require.Len(t, d.Comments.Comments, 1)
	assert.True(t, d.Comments.Comments[0].Uploader)

	assert.Equal(t, 2, d.PreviewPages)
	assert.Equal(t, 0, d.PreviewPage)
	assert.Equal(t, parser.PreviewLargeKind, d.Previews.Kind)
	assert.Equal(t, 2, d.Previews.Len())
}

func TestParseGalleryDetail_Idempotent(t *testing.T) {
	t.Parallel()

	first, err := parser.ParseGalleryDetail(detailHTML)
	require.NoError(t, err)
	second, err := parser.ParseGalleryDetail(detailHTML)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second decode differs (-first +second):\n%s", diff)
	}
}

func TestParseGalleryDetail_Variants(t *testing.T) {
	t.Parallel()

	notRated := strings.Replace(detailHTML, "Average: 4.62", "Not Yet Rated", 1)
	notRated = strings.Replace(notRated, `<span id="rating_count">512</span>`, `<span id="rating_count">0</span>`, 1)
	notFav := strings.Replace(notRated, ">Favorites 1</a>", `><img src="x.png"> Add to Favorites</a>`, 1)
	noNewer := strings.Replace(notFav, `<div id="gnd">`, `<div id="gnd-removed">`, 1)

	d, err := parser.ParseGalleryDetail(noNewer)
	require.NoError(t, err)
	assert.Equal(t, 0, d.RatingCount)
	assert.Nil(t, d.Rating)
	assert.False(t, d.Favorited)
	assert.Nil(t, d.FavoriteSlot)
	assert.Nil(t, d.FavoriteName)
	assert.NotNil(t, d.NewerVersions)
	assert.Empty(t, d.NewerVersions)

	noCategory := strings.Replace(detailHTML, `<div class="cs ct2">Doujinshi</div>`, "", 1)
	d, err = parser.ParseGalleryDetail(noCategory)
	require.NoError(t, err)
	assert.True(t, d.Category.IsUnknown())
}

func TestParseGalleryDetail_ServerMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{
			name: "offensive warning",
			body: `<div><h1>Content Warning</h1><p>(And if you choose to ignore this warning, you lose all rights to complain about it in the future.)</p></div>`,
			msg:  "(And if you choose to ignore this warning, you lose all rights to complain about it in the future.)",
		},
		{
			name: "pining",
			body: `<div class="d"><p>This gallery is pining for the fjords.</p></div>`,
			msg:  "This gallery is pining for the fjords.",
		},
		{
			name: "removed",
			body: `<div class="d">
<p>This gallery has been removed or is unavailable.</p></div>`,
			msg: "This gallery has been removed or is unavailable.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parser.ParseGalleryDetail(tt.body)
			var server *parser.ServerError
			require.ErrorAs(t, err, &server)
			assert.Equal(t, tt.msg, server.Message)
		})
	}
}

func TestParseGalleryDetail_Malformed(t *testing.T) {
	t.Parallel()

	noScript := strings.Replace(detailHTML, "var apikey", "var key", 1)
	_, err := parser.ParseGalleryDetail(noScript)
	assert.ErrorIs(t, err, parser.ErrPatternMatchFailed)

	noTitle := strings.Replace(detailHTML, `id="gj"`, `id="gx"`, 1)
	_, err = parser.ParseGalleryDetail(noTitle)
	assert.ErrorIs(t, err, parser.ErrElementNotFound)

	mismatched := strings.Replace(detailHTML, ", added 2023-03-01 09:00<br />", "<br />", 1)
	_, err = parser.ParseGalleryDetail(mismatched)
	assert.ErrorIs(t, err, parser.ErrPatternMatchFailed)
}

func TestParseDetailTable(t *testing.T) {
	t.Parallel()

	table, err := parser.ParseDetailTable(`<tr><td class="gdt1">Posted:</td><td class="gdt2">2020-01-01 00:00</td></tr>
<tr><td class="gdt1">Parent:</td><td class="gdt2">None</td></tr>
<tr><td class="gdt1">Visible:</td><td class="gdt2">No (Replaced)</td></tr>
<tr><td class="gdt1">Language:</td><td class="gdt2">Japanese</td></tr>
<tr><td class="gdt1">File Size:</td><td class="gdt2">1.2 GiB</td></tr>
<tr><td class="gdt1">Length:</td><td class="gdt2">1 page</td></tr>
<tr><td class="gdt1">Favorited:</td><td class="gdt2">Once</td></tr>`)
	require.NoError(t, err)
	assert.Nil(t, table.Parent)
	assert.Equal(t, "No (Replaced)", table.Visible)
	assert.Equal(t, 1, table.Pages)
	assert.Equal(t, 1, table.FavoriteCount)

	_, err = parser.ParseDetailTable(`<tr><td class="gdt1">Posted:</td><td class="gdt2">x</td></tr>`)
	assert.ErrorIs(t, err, parser.ErrElementNotFound)
}

func TestParseConcurrently(t *testing.T) {
	t.Parallel()

	want, err := parser.ParseGalleryDetail(detailHTML)
	require.NoError(t, err)

	p := parser.MustNew(parser.DefaultOptions())
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.ParseGalleryDetail(detailHTML)
			if err != nil {
				errs <- err
				return
			}
			if !cmp.Equal(want, got) {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
