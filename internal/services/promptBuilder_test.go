package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"trendwise/internal/models"
)

func TestBuildArticlePromptCarriesAllLabels(t *testing.T) {
	prompt := BuildArticlePrompt("Quantum Computing", nil)

	for _, label := range recognizedLabels {
		assert.Contains(t, prompt, label)
	}
	assert.Contains(t, prompt, "800-1200 words")
	assert.Contains(t, prompt, `"Quantum Computing"`)
}

func TestBuildArticlePromptAppendsRelatedContext(t *testing.T) {
	related := []models.RelatedContentItem{
		{Title: "Big Quantum News", Snippet: "A lab announced a result."},
		{Title: "Headline Only"},
	}

	prompt := BuildArticlePrompt("Quantum Computing", related)
	assert.Contains(t, prompt, "- Big Quantum News: A lab announced a result.")
	assert.Contains(t, prompt, "- Headline Only")

	bare := BuildArticlePrompt("Quantum Computing", nil)
	assert.NotContains(t, bare, "news context")
}

// Builder and parser share a label protocol: everything the prompt asks the
// model to emit must be something the parser recognizes.
func TestEmittedLabelsAreParsable(t *testing.T) {
	prompt := BuildArticlePrompt("any topic", nil)

	raw := strings.Join([]string{
		"TITLE: A Parsable Title",
		"META_DESCRIPTION: A parsable description that is long enough to count.",
		"KEYWORDS: a, b, c",
		"HASHTAGS: #a, #b",
		"CONTENT:",
		"<h1>A Parsable Title</h1><p>" + strings.Repeat("body text ", 20) + "</p>",
		"MEDIA:",
		"IMAGES:",
		"- [https://example.org/a.jpg] | [An image]",
		"VIDEOS:",
		"- [https://www.youtube.com/embed/dQw4w9WgXcQ] | [A video]",
		"TWEETS:",
		"- [https://twitter.com/x/status/1]",
	}, "\n")

	for _, label := range recognizedLabels {
		assert.Contains(t, prompt, label, "builder stopped emitting %s", label)
		assert.Contains(t, raw, label)
	}

	draft, err := ParseGeneratedArticle(raw, "any topic")
	assert.NoError(t, err)
	assert.Equal(t, "A Parsable Title", draft.Title)
	assert.Equal(t, []string{"a", "b", "c"}, draft.Keywords)
	assert.Len(t, draft.RawImages, 1)
	assert.Len(t, draft.RawVideos, 1)
	assert.Len(t, draft.RawTweets, 1)
}
