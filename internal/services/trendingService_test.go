package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trendwise/internal/models"
)

func trendsNamed(titles ...string) []models.Trend {
	now := time.Now()
	out := make([]models.Trend, 0, len(titles))
	for _, title := range titles {
		out = append(out, models.Trend{
			Title:     title,
			Traffic:   "Unknown",
			Source:    models.TrendSourceScrape,
			Timestamp: now,
		})
	}
	return out
}

func TestTrendCacheTTL(t *testing.T) {
	source := &fakeTrendSource{trends: [][]models.Trend{trendsNamed("AI", "Space")}}
	svc := NewTrendingService(source)

	first := svc.GetAllTrends(false)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, source.calls())

	second := svc.GetAllTrends(false)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.calls(), "cached call must not hit the adapter")
}

func TestTrendCacheForceRefresh(t *testing.T) {
	source := &fakeTrendSource{trends: [][]models.Trend{
		trendsNamed("AI"),
		trendsNamed("Space", "Elections"),
	}}
	svc := NewTrendingService(source)

	assert.Len(t, svc.GetAllTrends(false), 1)
	refreshed := svc.GetAllTrends(true)
	assert.Len(t, refreshed, 2)
	assert.Equal(t, 2, source.calls())
}

func TestTrendCacheNonCorruption(t *testing.T) {
	source := &fakeTrendSource{trends: [][]models.Trend{
		trendsNamed("AI", "Space"),
		nil,
	}}
	svc := NewTrendingService(source)

	assert.Len(t, svc.GetAllTrends(false), 2)

	// A failed refresh returns empty but must not clobber the cached list.
	assert.Empty(t, svc.GetAllTrends(true))
	assert.Len(t, svc.GetAllTrends(false), 2)
}

func TestTrendDeduplication(t *testing.T) {
	source := &fakeTrendSource{trends: [][]models.Trend{trendsNamed("AI", "ai", "Space")}}
	svc := NewTrendingService(source)

	trends := svc.GetAllTrends(false)
	assert.Len(t, trends, 2)
	assert.Equal(t, "AI", trends[0].Title, "first-seen casing wins")
	assert.Equal(t, "Space", trends[1].Title)
}

func TestTrendStatus(t *testing.T) {
	source := &fakeTrendSource{trends: [][]models.Trend{trendsNamed("AI")}}
	svc := NewTrendingService(source)

	empty := svc.Status()
	assert.False(t, empty.HasCachedData)
	assert.Nil(t, empty.LastFetchTime)
	assert.Equal(t, int64(1800), empty.CacheDurationSeconds)

	svc.GetAllTrends(false)

	filled := svc.Status()
	assert.True(t, filled.HasCachedData)
	assert.Equal(t, 1, filled.CachedTrendsCount)
	assert.NotNil(t, filled.LastFetchTime)
	assert.NotNil(t, filled.CacheAgeSeconds)
}
