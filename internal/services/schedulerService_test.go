package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"trendwise/internal/models"
)

func schedulerWith(trends []models.Trend, gen *fakeGenerator, repo *fakeArticleRepo) *SchedulerService {
	source := &fakeTrendSource{trends: [][]models.Trend{trends}}
	return NewSchedulerService(NewTrendingService(source), gen, repo, nil)
}

func publishedArticle(topic string) *models.Article {
	return &models.Article{
		Title:         "Article about " + topic,
		Slug:          "article-about-" + topic,
		TrendingTopic: topic,
		Source:        models.ArticleSourceAI,
		Status:        models.ArticleStatusPublished,
	}
}

func TestOneArticlePerCycle(t *testing.T) {
	gen := &fakeGenerator{generate: func(topic string) (*models.Article, error) {
		return publishedArticle(topic), nil
	}}
	repo := newFakeArticleRepo()
	s := schedulerWith(trendsNamed("a", "b", "c", "d", "e"), gen, repo)

	s.RunCycle(context.Background())

	assert.Len(t, repo.inserted, 1)
	assert.Equal(t, []string{"a"}, gen.attempts)
}

func TestQuotaErrorAbortsCycle(t *testing.T) {
	gen := &fakeGenerator{generate: func(topic string) (*models.Article, error) {
		if topic == "b" {
			return nil, fmt.Errorf("call failed: %w", ErrQuotaExceeded)
		}
		if topic == "a" {
			return nil, errors.New("transient model error")
		}
		return publishedArticle(topic), nil
	}}
	repo := newFakeArticleRepo()
	s := schedulerWith(trendsNamed("a", "b", "c", "d", "e"), gen, repo)

	s.RunCycle(context.Background())

	assert.Empty(t, repo.inserted, "quota abort must not publish")
	assert.Equal(t, []string{"a", "b"}, gen.attempts, "trends after the quota error must not be attempted")
}

func TestContentUnusableAdvancesToNextTrend(t *testing.T) {
	gen := &fakeGenerator{generate: func(topic string) (*models.Article, error) {
		if topic == "a" {
			return nil, fmt.Errorf("parse: %w", ErrContentUnusable)
		}
		return publishedArticle(topic), nil
	}}
	repo := newFakeArticleRepo()
	s := schedulerWith(trendsNamed("a", "b"), gen, repo)

	s.RunCycle(context.Background())

	assert.Len(t, repo.inserted, 1)
	assert.Equal(t, "b", repo.inserted[0].TrendingTopic)
}

func TestSkipExistingTopics(t *testing.T) {
	gen := &fakeGenerator{generate: func(topic string) (*models.Article, error) {
		return publishedArticle(topic), nil
	}}
	repo := newFakeArticleRepo()
	repo.existing["a"] = publishedArticle("a")
	s := schedulerWith(trendsNamed("a", "b"), gen, repo)

	s.RunCycle(context.Background())

	assert.Equal(t, []string{"b"}, gen.attempts, "existing topic must not be re-generated")
	assert.Len(t, repo.inserted, 1)
}

func TestExhaustedCycleIsNotAnError(t *testing.T) {
	gen := &fakeGenerator{generate: func(topic string) (*models.Article, error) {
		return nil, errors.New("always failing")
	}}
	repo := newFakeArticleRepo()
	s := schedulerWith(trendsNamed("a", "b", "c"), gen, repo)

	s.RunCycle(context.Background())

	assert.Empty(t, repo.inserted)
	assert.Equal(t, []string{"a", "b", "c"}, gen.attempts)
}

func TestOverlappingCycleIsDropped(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gen := &fakeGenerator{generate: func(topic string) (*models.Article, error) {
		close(started)
		<-release
		return publishedArticle(topic), nil
	}}
	repo := newFakeArticleRepo()
	s := schedulerWith(trendsNamed("a"), gen, repo)

	go s.RunCycle(context.Background())
	<-started

	// Second trigger while the first cycle holds the guard.
	s.RunCycle(context.Background())
	close(release)

	// Wait for the first cycle to finish.
	s.cycleMu.Lock()
	s.cycleMu.Unlock()

	assert.Len(t, repo.inserted, 1, "overlapping trigger must not double-publish")
}
