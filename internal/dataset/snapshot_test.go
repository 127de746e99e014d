package dataset_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Design-for-Changes/visualization/internal/dataset"
	"github.com/stretchr/testify/require"
)

func TestCacheRefreshAndDirectory(t *testing.T) {
	srv := newOrigin(t, map[string]string{
		"/data/diet_members_socials_enriched.json": rosterJSON,
		"/data/member_speeches_index.json":         `{"index":{"yamadataro":{"speeches":7,"written_questions":1}}}`,
	})

	cache := dataset.NewCache(dataset.New(srv.URL, nil), nil)
	require.Nil(t, cache.Current())

	require.NoError(t, cache.Refresh(context.Background()))
	snap := cache.Current()
	require.NotNil(t, snap)

	dir := snap.Directory()
	require.Len(t, dir, 2)
	// kana order: さとうはなこ before やまだたろう
	require.Equal(t, "satohanako", dir[0].Slug)
	require.Equal(t, "yamadataro", dir[1].Slug)
	require.Equal(t, 7, dir[1].Speeches)
	require.Equal(t, 0, dir[0].Speeches, "members without index entry show zero")
}

func TestCacheRefreshIndexBestEffort(t *testing.T) {
	srv := newOrigin(t, map[string]string{
		"/data/diet_members_socials_enriched.json": rosterJSON,
	})

	cache := dataset.NewCache(dataset.New(srv.URL, nil), nil)
	require.NoError(t, cache.Refresh(context.Background()))
	dir := cache.Current().Directory()
	require.Len(t, dir, 2)
	require.Equal(t, 0, dir[0].Speeches)
}

func TestCacheRefreshRosterMandatory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	cache := dataset.NewCache(dataset.New(srv.URL, nil), nil)
	require.Error(t, cache.Refresh(context.Background()))
	require.Nil(t, cache.Current())
}
