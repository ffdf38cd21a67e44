package models

import "time"

const (
	TrendSourceScrape = "trend_source"
	TrendSourceManual = "manual"
)

// Trend is a topic scraped from the trends page. Trends are ephemeral: they
// live only in the in-process cache and are never persisted.
type Trend struct {
	Title     string    `json:"title"`
	Traffic   string    `json:"traffic"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// RelatedContentItem is a news-search snippet used as generation context for a
// single attempt, then discarded.
type RelatedContentItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
	Source  string `json:"source"`
}

// GeneratedArticleDraft is the structured but unsanitized output of parsing
// raw model text. It is owned by the generation pipeline for the duration of
// one call.
type GeneratedArticleDraft struct {
	Title           string
	MetaDescription string
	Keywords        []string
	Hashtags        []string
	HTMLContent     string
	RawImages       []MediaImage
	RawVideos       []MediaVideo
	RawTweets       []MediaTweet
}

// TrendCacheStatus is the operator-facing readout of the trend cache.
type TrendCacheStatus struct {
	LastFetchTime        *time.Time `json:"lastFetchTime"`
	CacheAgeSeconds      *int64     `json:"cacheAgeSeconds"`
	CacheDurationSeconds int64      `json:"cacheDurationSeconds"`
	HasCachedData        bool       `json:"hasCachedData"`
	CachedTrendsCount    int        `json:"cachedTrendsCount"`
}
