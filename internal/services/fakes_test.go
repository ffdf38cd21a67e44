package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"trendwise/internal/models"
)

type fakeTrendSource struct {
	mu         sync.Mutex
	fetchCalls int
	trends     [][]models.Trend
	related    []models.RelatedContentItem
}

// FetchTrends returns the next scripted batch, repeating the last one when
// the script runs out.
func (f *fakeTrendSource) FetchTrends() []models.Trend {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Trend
	if len(f.trends) > 0 {
		idx := f.fetchCalls
		if idx >= len(f.trends) {
			idx = len(f.trends) - 1
		}
		out = f.trends[idx]
	}
	f.fetchCalls++
	return out
}

func (f *fakeTrendSource) SearchRelatedContent(topic string) []models.RelatedContentItem {
	return f.related
}

func (f *fakeTrendSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls
}

type fakeGenerator struct {
	generate func(topic string) (*models.Article, error)
	attempts []string
}

func (f *fakeGenerator) GenerateArticleFromTrend(ctx context.Context, topic string) (*models.Article, error) {
	f.attempts = append(f.attempts, topic)
	return f.generate(topic)
}

type fakeArticleRepo struct {
	existing map[string]*models.Article
	inserted []*models.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{existing: make(map[string]*models.Article)}
}

func (f *fakeArticleRepo) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	f.inserted = append(f.inserted, article)
	f.existing[article.TrendingTopic] = article
	return article, nil
}

func (f *fakeArticleRepo) Find(ctx context.Context, filter bson.M, limit, page int64) ([]models.Article, error) {
	return nil, nil
}

func (f *fakeArticleRepo) FindOne(ctx context.Context, filter bson.M) (*models.Article, error) {
	if topic, ok := filter["trending_topic"].(string); ok {
		if article, ok := f.existing[topic]; ok {
			return article, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeArticleRepo) UpdateOne(ctx context.Context, filter bson.M, update bson.M) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (f *fakeArticleRepo) DeleteOne(ctx context.Context, filter bson.M) (*mongo.DeleteResult, error) {
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func (f *fakeArticleRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(f.inserted)), nil
}

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}
