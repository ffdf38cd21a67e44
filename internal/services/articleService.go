package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"trendwise/internal/models"
	"trendwise/internal/repositories"
	"trendwise/internal/utils"
)

type ArticleService interface {
	GetArticles(ctx context.Context, search string, limit, page int64) ([]models.Article, int64, error)
	GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error)
	CreateArticle(ctx context.Context, payload *models.CreateArticleRequestBody) (*models.Article, error)
	UpdateArticle(ctx context.Context, id primitive.ObjectID, payload *models.UpdateArticleRequestBody) (*models.Article, error)
	DeleteArticle(ctx context.Context, id primitive.ObjectID) error
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	validate    *validator.Validate
}

func NewArticleService(articleRepo repositories.ArticleRepository) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		validate:    validator.New(),
	}
}

// GetArticles lists published articles newest first, optionally filtered by
// a search term matched against title, excerpt, trending topic and keywords.
func (s *articleService) GetArticles(ctx context.Context, search string, limit, page int64) ([]models.Article, int64, error) {
	filter := bson.M{"status": models.ArticleStatusPublished}
	if search != "" {
		filter = bson.M{
			"status": models.ArticleStatusPublished,
			"$or": []bson.M{
				{"title": bson.M{"$regex": search, "$options": "i"}},
				{"excerpt": bson.M{"$regex": search, "$options": "i"}},
				{"trending_topic": bson.M{"$regex": search, "$options": "i"}},
				{"meta.keywords": bson.M{"$in": []string{search}}},
			},
		}
	}

	articles, err := s.articleRepo.Find(ctx, filter, limit, page)
	if err != nil {
		log.Error().Err(err).Str("search", search).Msg("Failed to list articles")
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}

	total, err := s.articleRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to count articles")
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return articles, total, nil
}

// GetArticleBySlug returns one article and increments its view count.
func (s *articleService) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articleRepo.FindOne(ctx, bson.M{"slug": slug})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("article not found")
		}
		log.Error().Err(err).Str("slug", slug).Msg("Failed to fetch article")
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}

	if _, err := s.articleRepo.UpdateOne(ctx, bson.M{"_id": article.ID}, bson.M{"$inc": bson.M{"view_count": 1}}); err != nil {
		// A failed counter bump should not hide the article.
		log.Error().Err(err).Str("slug", slug).Msg("Failed to increment view count")
	} else {
		article.ViewCount++
	}
	return article, nil
}

func (s *articleService) CreateArticle(ctx context.Context, payload *models.CreateArticleRequestBody) (*models.Article, error) {
	if err := s.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("invalid article payload: %w", err)
	}

	status := payload.Status
	if status == "" {
		status = models.ArticleStatusDraft
	}

	now := time.Now()
	article := &models.Article{
		Title:   payload.Title,
		Slug:    utils.Slugify(payload.Title),
		Excerpt: payload.Excerpt,
		Content: payload.Content,
		Meta: models.ArticleMeta{
			Title:       payload.Title,
			Description: payload.Excerpt,
			Keywords:    payload.Keywords,
		},
		Hashtags:      payload.Hashtags,
		TrendingTopic: payload.TrendingTopic,
		Source:        models.ArticleSourceManual,
		Status:        status,
		ReadTime:      (utils.WordCount(payload.Content) + 199) / 200,
		PublishedAt:   now,
		UpdatedAt:     now,
	}

	created, err := s.articleRepo.Create(ctx, article)
	if err != nil {
		log.Error().Err(err).Str("title", payload.Title).Msg("Failed to create article")
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	log.Info().Str("slug", created.Slug).Msg("Article created")
	return created, nil
}

func (s *articleService) UpdateArticle(ctx context.Context, id primitive.ObjectID, payload *models.UpdateArticleRequestBody) (*models.Article, error) {
	if err := s.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("invalid article payload: %w", err)
	}

	updateFields := bson.M{}
	if payload.Title != nil {
		updateFields["title"] = *payload.Title
		updateFields["slug"] = utils.Slugify(*payload.Title)
	}
	if payload.Excerpt != nil {
		updateFields["excerpt"] = *payload.Excerpt
	}
	if payload.Content != nil {
		updateFields["content"] = *payload.Content
		updateFields["read_time"] = (utils.WordCount(*payload.Content) + 199) / 200
	}
	if payload.Keywords != nil {
		updateFields["meta.keywords"] = *payload.Keywords
	}
	if payload.Hashtags != nil {
		updateFields["hashtags"] = *payload.Hashtags
	}
	if payload.Status != nil {
		updateFields["status"] = *payload.Status
	}
	if len(updateFields) == 0 {
		return nil, fmt.Errorf("no valid fields provided for update")
	}
	updateFields["updated_at"] = time.Now()

	result, err := s.articleRepo.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateFields})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("article not found")
	}

	updated, err := s.articleRepo.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Error().Err(err).Str("id", id.Hex()).Msg("Error fetching updated article")
		return nil, fmt.Errorf("failed to retrieve updated article")
	}
	return updated, nil
}

func (s *articleService) DeleteArticle(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.articleRepo.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("article not found")
	}
	log.Info().Str("id", id.Hex()).Msg("Article deleted")
	return nil
}
