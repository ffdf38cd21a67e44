package services

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"trendwise/internal/models"
	"trendwise/internal/utils"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// ContentService runs the full trend-to-article pipeline: gather context,
// build the prompt, call the model, parse, sanitize media, score and
// assemble the persisted article.
type ContentService struct {
	llm       GenerationClient
	trending  *TrendingService
	sanitizer *MediaSanitizer
	siteURL   string
}

func NewContentService(llm GenerationClient, trending *TrendingService, sanitizer *MediaSanitizer) *ContentService {
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:8080"
	}
	return &ContentService{
		llm:       llm,
		trending:  trending,
		sanitizer: sanitizer,
		siteURL:   strings.TrimRight(siteURL, "/"),
	}
}

// GenerateArticleFromTrend produces a ready-to-persist article for one
// trending topic. Quota errors and unusable-content errors surface as their
// sentinels so the scheduler can tell cycle-terminating from trend-skippable.
func (s *ContentService) GenerateArticleFromTrend(ctx context.Context, topic string) (*models.Article, error) {
	related := s.trending.SearchRelatedContent(topic)
	prompt := BuildArticlePrompt(topic, related)

	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generation failed for %q: %w", topic, err)
	}

	draft, err := ParseGeneratedArticle(raw, topic)
	if err != nil {
		return nil, err
	}

	coverURL := s.sanitizer.Sanitize(draft, topic)
	score := CalculateSEOScore(draft.Title, draft.MetaDescription, draft.Keywords, draft.HTMLContent)

	article := s.AssembleArticle(draft, topic, coverURL, score)
	log.Info().
		Str("topic", topic).
		Str("slug", article.Slug).
		Int("seoScore", score).
		Int("readTime", article.ReadTime).
		Msg("Article assembled")
	return article, nil
}

// AssembleArticle maps a sanitized draft into the persisted article shape.
func (s *ContentService) AssembleArticle(draft *models.GeneratedArticleDraft, topic, coverURL string, score int) *models.Article {
	slug := utils.Slugify(draft.Title)

	metaTitle := draft.Title
	if len(metaTitle) > 60 {
		metaTitle = metaTitle[:57] + "..."
	}

	plain := strings.TrimSpace(htmlTagRe.ReplaceAllString(draft.HTMLContent, " "))
	plain = strings.Join(strings.Fields(plain), " ")
	excerpt := plain
	if len(excerpt) > 300 {
		excerpt = excerpt[:297] + "..."
	}

	words := utils.WordCount(plain)
	readTime := (words + 199) / 200
	if readTime < 1 {
		readTime = 1
	}

	now := time.Now()
	return &models.Article{
		Title:   draft.Title,
		Slug:    slug,
		Excerpt: excerpt,
		Content: draft.HTMLContent,
		Meta: models.ArticleMeta{
			Title:       metaTitle,
			Description: draft.MetaDescription,
			Keywords:    draft.Keywords,
		},
		OGTags: models.OGTags{
			Title:       metaTitle,
			Description: draft.MetaDescription,
			Image:       coverURL,
			URL:         s.siteURL + "/article/" + slug,
		},
		Media: models.ArticleMedia{
			Images: draft.RawImages,
			Videos: draft.RawVideos,
			Tweets: draft.RawTweets,
		},
		Hashtags:      draft.Hashtags,
		TrendingTopic: topic,
		Source:        models.ArticleSourceAI,
		Status:        models.ArticleStatusPublished,
		SEOScore:      score,
		ReadTime:      readTime,
		PublishedAt:   now,
		UpdatedAt:     now,
	}
}
