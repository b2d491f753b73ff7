package playlist

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWellFormedPairs(t *testing.T) {
	raw := "#EXTINF:-1,Channel A\nhttp://x/a.m3u8\n#EXTINF:-1,Channel B\nhttp://x/b.m3u8"

	got := Parse(raw, TV)
	require.Len(t, got, 2)

	assert.Equal(t, "Channel A", got[0].Name)
	assert.Equal(t, "http://x/a.m3u8", got[0].URL)
	assert.Equal(t, "channel-a", got[0].Slug)
	assert.Equal(t, TV, got[0].Category)

	assert.Equal(t, "Channel B", got[1].Name)
	assert.Equal(t, "channel-b", got[1].Slug)
}

func TestParseDropsBlockWithoutAddress(t *testing.T) {
	// The first block's "address" is another metadata line: the block is
	// skipped and the neighbor parses normally.
	raw := "#EXTINF:-1,Broken\n#EXTINF:-1,Fine\nhttp://x/fine.m3u8"

	got := Parse(raw, Radio)
	require.Len(t, got, 1)
	assert.Equal(t, "Fine", got[0].Name)
}

func TestParseDropsTrailingMetadata(t *testing.T) {
	got := Parse("#EXTM3U\n#EXTINF:-1,Dangling", TV)
	assert.Empty(t, got)
}

func TestParseSkipsBlankLinesBeforeAddress(t *testing.T) {
	raw := "#EXTINF:-1,Spaced Out\n\n\nhttp://x/s.m3u8"

	got := Parse(raw, TV)
	require.Len(t, got, 1)
	assert.Equal(t, "Spaced Out", got[0].Name)
	assert.Equal(t, "http://x/s.m3u8", got[0].URL)
}

func TestParseNamelessEntryGetsPlaceholder(t *testing.T) {
	for _, raw := range []string{
		"#EXTINF:-1,\nhttp://x/1.m3u8",
		"#EXTINF:-1\nhttp://x/1.m3u8",
	} {
		got := Parse(raw, TV)
		require.Len(t, got, 1, "input %q", raw)
		assert.Equal(t, "Unknown", got[0].Name)
		assert.Equal(t, "unknown", got[0].Slug)
	}
}

func TestParseKeepsSourceOrderAndDuplicates(t *testing.T) {
	raw := "#EXTINF:-1,Same\nhttp://x/1\n#EXTINF:-1,Same\nhttp://x/2"

	got := Parse(raw, TV)
	require.Len(t, got, 2)
	assert.Equal(t, got[0].Slug, got[1].Slug)
	assert.Equal(t, "http://x/1", got[0].URL)
	assert.Equal(t, "http://x/2", got[1].URL)
}

func TestParseCRLFInput(t *testing.T) {
	raw := "#EXTINF:-1,Windows Feed\r\nhttp://x/w.m3u8\r\n"

	got := Parse(raw, TV)
	require.Len(t, got, 1)
	assert.Equal(t, "Windows Feed", got[0].Name)
	assert.Equal(t, "http://x/w.m3u8", got[0].URL)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Channel A":        "channel-a",
		"  TRT  1  ":       "trt-1",
		"Güneş TV":         "gne-tv",
		"a---b":            "a-b",
		"--trimmed--":      "trimmed",
		"ALL CAPS & MORE!": "all-caps-more",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugifyIdempotentAndSafe(t *testing.T) {
	safe := regexp.MustCompile(`^[a-z0-9-]*$`)
	for _, in := range []string{"Channel A", "  x  Y z ", "Çok Güzel 9", "...", "-a-"} {
		slug := Slugify(in)
		assert.True(t, safe.MatchString(slug), "slug %q has stray characters", slug)
		assert.Equal(t, slug, Slugify(slug), "not idempotent for %q", in)
		if slug != "" {
			assert.NotEqual(t, byte('-'), slug[0])
			assert.NotEqual(t, byte('-'), slug[len(slug)-1])
		}
	}
}
