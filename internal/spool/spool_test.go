package spool_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/slinet/ehparse/internal/config"
	"github.com/slinet/ehparse/internal/spool"
	"github.com/slinet/ehparse/pkg/parser"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := map[string]spool.Kind{
		"detail_2455981.html": spool.KindDetail,
		"list-front.htm":      spool.KindList,
		"Torrents_1.HTML":     spool.KindTorrents,
		"favorites.html":      spool.KindFavorites,
		"/in/signin_x.html":   spool.KindSignIn,
	}
	for name, want := range tests {
		got, ok := spool.KindOf(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := spool.KindOf("misc_1.html")
	assert.False(t, ok)

	_, err := spool.ParseKind("nope")
	assert.Error(t, err)
	assert.Len(t, spool.Kinds(), 8)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	v, err := spool.Decode(parser.Default(), spool.KindSignIn, `<p>You are now logged in as: Tester<br />`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"username": "Tester"}, v)

	_, err = spool.Decode(parser.Default(), spool.KindDetail, `<p>This page requires you to log on.</p>`)
	assert.ErrorIs(t, err, parser.ErrSignInRequired)

	_, err = spool.Decode(parser.Default(), spool.Kind("bogus"), "x")
	assert.Error(t, err)
}

func write(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestRun(t *testing.T) {
	t.Parallel()

	inbox, outbox := t.TempDir(), filepath.Join(t.TempDir(), "out")
	write(t, inbox, "signin_1.html", `<p>You are now logged in as: Tester<br />`)
	write(t, inbox, "list_empty.html", `<div class="ido"><p>No hits found</p></div>`)
	write(t, inbox, "page_bad.html", `<p>not a page</p>`)
	write(t, inbox, "misc_1.html", `<p>unknown kind</p>`)
	write(t, inbox, "notes.txt", `ignored`)
	require.NoError(t, os.Mkdir(filepath.Join(inbox, "detail_dir.html"), 0o755))

	cfg := config.SpoolConfig{Inbox: inbox, Outbox: outbox, Workers: 2}
	s := spool.New(cfg, parser.Default(), zaptest.NewLogger(t))

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, spool.Result{Converted: 2, Failed: 1, Skipped: 1}, res)

	data, err := os.ReadFile(filepath.Join(outbox, "signin_1.html.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"Tester"}`, string(data))

	data, err = os.ReadFile(filepath.Join(outbox, "list_empty.html.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"layout":"none","galleries":[]}`, string(data))

	data, err = os.ReadFile(filepath.Join(outbox, "page_bad.html.error.json"))
	require.NoError(t, err)
	var failure map[string]string
	require.NoError(t, json.Unmarshal(data, &failure))
	assert.Equal(t, "page", failure["kind"])
	assert.Contains(t, failure["error"], "regular expression matching failed")

	// Everything is done now, so a second run converts nothing.
	res, err = s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, spool.Result{Skipped: 4}, res)

	entries, err := os.ReadDir(outbox)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temp files may remain")
}

func TestRun_MissingInbox(t *testing.T) {
	t.Parallel()

	cfg := config.SpoolConfig{Inbox: filepath.Join(t.TempDir(), "nope"), Outbox: t.TempDir(), Workers: 1}
	_, err := spool.New(cfg, parser.Default(), zaptest.NewLogger(t)).Run(context.Background())
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	inbox := t.TempDir()
	write(t, inbox, "signin_1.html", `<p>You are now logged in as: Tester<br />`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.SpoolConfig{Inbox: inbox, Outbox: t.TempDir(), Workers: 1}
	res, err := spool.New(cfg, parser.Default(), zaptest.NewLogger(t)).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Converted)
}
