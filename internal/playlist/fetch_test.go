package playlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = "#EXTM3U\n#EXTINF:-1,Channel A\nhttp://x/a.m3u8\n"

func TestFetchParsesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	got, err := NewFetcher(srv.Client()).Fetch(context.Background(), srv.URL, TV)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "channel-a", got[0].Slug)
}

func TestFetchNonSuccessStatusNamesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.Client()).Fetch(context.Background(), srv.URL, Radio)
	require.Error(t, err)

	var feedErr *FeedError
	require.ErrorAs(t, err, &feedErr)
	assert.Equal(t, Radio, feedErr.Category)
	assert.Contains(t, err.Error(), "RADIO")
}

func TestFetchAllFailsAsAUnit(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer bad.Close()

	tv, radio, err := NewFetcher(nil).FetchAll(context.Background(), good.URL, bad.URL)
	require.Error(t, err)
	assert.Nil(t, tv)
	assert.Nil(t, radio)

	var feedErr *FeedError
	require.ErrorAs(t, err, &feedErr)
	assert.Equal(t, Radio, feedErr.Category)
}

func TestFetchAllReturnsBothFeeds(t *testing.T) {
	tvSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("#EXTINF:-1,TV One\nhttp://x/tv.m3u8\n"))
	}))
	defer tvSrv.Close()
	radioSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("#EXTINF:-1,Radio One\nhttp://x/radio.m3u8\n"))
	}))
	defer radioSrv.Close()

	tv, radio, err := NewFetcher(nil).FetchAll(context.Background(), tvSrv.URL, radioSrv.URL)
	require.NoError(t, err)
	require.Len(t, tv, 1)
	require.Len(t, radio, 1)
	assert.Equal(t, TV, tv[0].Category)
	assert.Equal(t, Radio, radio[0].Category)
}
