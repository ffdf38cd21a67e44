package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"trendwise/internal/models"
)

func TestGenerateArticleFromTrendEndToEnd(t *testing.T) {
	raw := strings.Join([]string{
		"TITLE: Quantum Computing Hits a Major Milestone This Year",
		"META_DESCRIPTION: Researchers demonstrated a new error-corrected qubit design that could change the field.",
		"KEYWORDS: quantum, computing, qubits",
		"HASHTAGS: #quantum, #computing",
		"CONTENT:",
		"<h1>Quantum Computing Hits a Major Milestone</h1>",
		"<h2>What happened</h2><p>quantum computing qubits " + strings.Repeat("progress ", 120) + "</p>",
		"<h2>Why it matters</h2><p>" + strings.Repeat("impact ", 100) + "</p>",
		"MEDIA:",
		"IMAGES:",
		"- [https://cdn.example.org/chip.jpg] | [A quantum chip]",
		"VIDEOS:",
		"- [https://www.youtube.com/embed/dQw4w9WgXcQ] | [Explainer]",
		"TWEETS:",
	}, "\n")

	llm := &fakeLLM{response: raw}
	trending := NewTrendingService(&fakeTrendSource{
		related: []models.RelatedContentItem{{Title: "News", Snippet: "Context"}},
	})
	sanitizer := NewMediaSanitizer(nil)
	svc := NewContentService(llm, trending, sanitizer)

	article, err := svc.GenerateArticleFromTrend(context.Background(), "Quantum Computing")
	assert.NoError(t, err)

	assert.Equal(t, "Quantum Computing Hits a Major Milestone This Year", article.Title)
	assert.Equal(t, "quantum-computing-hits-a-major-milestone-this-year", article.Slug)
	assert.Equal(t, models.ArticleSourceAI, article.Source)
	assert.Equal(t, models.ArticleStatusPublished, article.Status)
	assert.Equal(t, "Quantum Computing", article.TrendingTopic)
	assert.NotEmpty(t, article.Media.Images)
	assert.Len(t, article.Media.Videos, 1)
	assert.GreaterOrEqual(t, article.SEOScore, 0)
	assert.LessOrEqual(t, article.SEOScore, 100)
	assert.GreaterOrEqual(t, article.ReadTime, 1)
	assert.True(t, strings.HasSuffix(article.OGTags.URL, "/article/"+article.Slug))
	assert.False(t, article.PublishedAt.IsZero())
}

func TestGenerateArticlePropagatesQuotaError(t *testing.T) {
	llm := &fakeLLM{err: ErrQuotaExceeded}
	svc := NewContentService(llm, NewTrendingService(&fakeTrendSource{}), NewMediaSanitizer(nil))

	_, err := svc.GenerateArticleFromTrend(context.Background(), "topic")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestGenerateArticlePropagatesUnusableContent(t *testing.T) {
	llm := &fakeLLM{response: "TITLE: Something\nCONTENT:\nshort"}
	svc := NewContentService(llm, NewTrendingService(&fakeTrendSource{}), NewMediaSanitizer(nil))

	_, err := svc.GenerateArticleFromTrend(context.Background(), "topic")
	assert.ErrorIs(t, err, ErrContentUnusable)
}

func TestAssembleArticleTruncations(t *testing.T) {
	svc := NewContentService(nil, nil, nil)

	longTitle := strings.Repeat("T", 80)
	draft := &models.GeneratedArticleDraft{
		Title:           longTitle,
		MetaDescription: "desc",
		Keywords:        []string{"k"},
		HTMLContent:     "<h1>h</h1><p>" + strings.Repeat("word ", 450) + "</p>",
	}

	article := svc.AssembleArticle(draft, "topic", "https://cdn.example.org/cover.jpg", 77)

	assert.Len(t, article.Meta.Title, 60)
	assert.True(t, strings.HasSuffix(article.Meta.Title, "..."))
	assert.LessOrEqual(t, len(article.Excerpt), 300)
	assert.NotContains(t, article.Excerpt, "<p>", "excerpt must be plain text")
	assert.Equal(t, 77, article.SEOScore)
	assert.Equal(t, "https://cdn.example.org/cover.jpg", article.OGTags.Image)

	// 451 words at 200 wpm reads in 3 minutes.
	assert.Equal(t, 3, article.ReadTime)
}
