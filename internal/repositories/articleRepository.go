package repositories

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trendwise/internal/database"
	"trendwise/internal/models"
	"trendwise/internal/utils"
)

// ArticleRepository is the only store surface the generation pipeline touches:
// FindOne by trending topic and Create. The remaining operations serve the
// HTTP layer.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) (*models.Article, error)
	Find(ctx context.Context, filter bson.M, limit, page int64) ([]models.Article, error)
	FindOne(ctx context.Context, filter bson.M) (*models.Article, error)
	UpdateOne(ctx context.Context, filter bson.M, update bson.M) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter bson.M) (*mongo.DeleteResult, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}

type articleRepository struct {
	db database.Service
}

func NewArticleRepository(db database.Service) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) collection() *mongo.Collection {
	return r.db.Client().Database("trendwise").Collection("articles")
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	queryType := "create"
	repository := "article"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	result, err := r.collection().InsertOne(ctx, article)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to insert article: %w", err)
	}
	article.ID = result.InsertedID.(primitive.ObjectID)
	return article, nil
}

func (r *articleRepository) Find(ctx context.Context, filter bson.M, limit, page int64) ([]models.Article, error) {
	queryType := "find"
	repository := "article"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	opts := options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}}).
		SetLimit(limit).
		SetSkip((page - 1) * limit)

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to retrieve articles: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []models.Article
	if err := cursor.All(ctx, &articles); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("error decoding articles: %w", err)
	}
	return articles, nil
}

func (r *articleRepository) FindOne(ctx context.Context, filter bson.M) (*models.Article, error) {
	queryType := "findOne"
	repository := "article"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var article models.Article
	err := r.collection().FindOne(ctx, filter).Decode(&article)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) UpdateOne(ctx context.Context, filter bson.M, update bson.M) (*mongo.UpdateResult, error) {
	queryType := "updateOne"
	repository := "article"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	result, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	return result, nil
}

func (r *articleRepository) DeleteOne(ctx context.Context, filter bson.M) (*mongo.DeleteResult, error) {
	queryType := "deleteOne"
	repository := "article"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	deleteResult, err := r.collection().DeleteOne(ctx, filter)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to delete article: %w", err)
	}
	return deleteResult, nil
}

func (r *articleRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	queryType := "count"
	repository := "article"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	count, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}
