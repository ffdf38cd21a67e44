package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func usableBody() string {
	return "<h1>Topic</h1><p>" + strings.Repeat("sentence about the topic ", 15) + "</p>"
}

func TestParseAppliesFallbacksForMissingLabels(t *testing.T) {
	raw := "CONTENT:\n" + usableBody()

	draft, err := ParseGeneratedArticle(raw, "Mars Rover")
	assert.NoError(t, err)

	assert.Equal(t, "Complete Guide to Mars Rover", draft.Title)
	assert.Equal(t, "Learn everything about Mars Rover in this comprehensive guide.", draft.MetaDescription)
	assert.Equal(t, []string{"Mars Rover", "guide", "information", "tips", "latest"}, draft.Keywords)
	assert.Equal(t, []string{"#MarsRover", "#trending", "#guide"}, draft.Hashtags)
}

func TestParseMissingHashtagsStillYieldsHashtags(t *testing.T) {
	raw := strings.Join([]string{
		"TITLE: Mars Rover Update",
		"META_DESCRIPTION: The rover found something interesting on the surface.",
		"KEYWORDS: mars, rover",
		"CONTENT:",
		usableBody(),
	}, "\n")

	draft, err := ParseGeneratedArticle(raw, "Mars Rover")
	assert.NoError(t, err)
	assert.NotEmpty(t, draft.Hashtags)
	assert.Equal(t, "#MarsRover", draft.Hashtags[0])
}

func TestParseRejectsUnusableContent(t *testing.T) {
	_, err := ParseGeneratedArticle("TITLE: Something\nCONTENT:\ntoo short", "topic")
	assert.ErrorIs(t, err, ErrContentUnusable)

	_, err = ParseGeneratedArticle("no labels at all", "topic")
	assert.ErrorIs(t, err, ErrContentUnusable)
}

func TestParseContentStopsAtMediaLabel(t *testing.T) {
	raw := strings.Join([]string{
		"CONTENT:",
		usableBody(),
		"MEDIA:",
		"IMAGES:",
		"- [https://example.org/pic.jpg] | [A picture]",
	}, "\n")

	draft, err := ParseGeneratedArticle(raw, "topic")
	assert.NoError(t, err)
	assert.NotContains(t, draft.HTMLContent, "MEDIA:")
	assert.NotContains(t, draft.HTMLContent, "pic.jpg")
	assert.Len(t, draft.RawImages, 1)
	assert.Equal(t, "https://example.org/pic.jpg", draft.RawImages[0].URL)
	assert.Equal(t, "A picture", draft.RawImages[0].Alt)
}

func TestParseSingleBracketImageLineGetsDefaultAlt(t *testing.T) {
	raw := strings.Join([]string{
		"CONTENT:",
		usableBody(),
		"MEDIA:",
		"IMAGES:",
		"- [https://example.org/solo.jpg]",
	}, "\n")

	draft, err := ParseGeneratedArticle(raw, "topic")
	assert.NoError(t, err)
	assert.Len(t, draft.RawImages, 1)
	assert.Equal(t, "Article image", draft.RawImages[0].Alt)
}

func TestParseScansHTMLWhenMediaListsEmpty(t *testing.T) {
	body := `<h1>Topic</h1>` +
		`<p>` + strings.Repeat("long enough body text ", 10) + `</p>` +
		`<img src="https://example.org/inline.jpg" alt="Inline"/>` +
		`<iframe src="https://www.youtube.com/embed/dQw4w9WgXcQ" title="Clip"></iframe>` +
		`<blockquote class="twitter-tweet"><a href="https://twitter.com/x/status/42">tweet</a></blockquote>`

	draft, err := ParseGeneratedArticle("CONTENT:\n"+body, "topic")
	assert.NoError(t, err)

	assert.Len(t, draft.RawImages, 1)
	assert.Equal(t, "https://example.org/inline.jpg", draft.RawImages[0].URL)
	assert.Equal(t, "Inline", draft.RawImages[0].Alt)

	assert.Len(t, draft.RawVideos, 1)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", draft.RawVideos[0].URL)

	assert.Len(t, draft.RawTweets, 1)
	assert.Equal(t, "https://twitter.com/x/status/42", draft.RawTweets[0].URL)
}

func TestParseTruncatesOverlongMetaDescription(t *testing.T) {
	longDesc := strings.Repeat("d", 350)
	raw := "META_DESCRIPTION: " + longDesc + "\nCONTENT:\n" + usableBody()

	draft, err := ParseGeneratedArticle(raw, "topic")
	assert.NoError(t, err)
	assert.Len(t, draft.MetaDescription, 300)
	assert.True(t, strings.HasSuffix(draft.MetaDescription, "..."))
}
