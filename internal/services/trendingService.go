package services

import (
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"

	"trendwise/internal/browser"
	"trendwise/internal/models"
	"trendwise/internal/utils"
)

const (
	trendCacheDuration  = 30 * time.Minute
	navigationTimeoutMs = 30000
	selectorTimeoutMs   = 15000
	maxRelatedContent   = 5
)

// TrendSource fetches trending topics and related news context. Both calls
// degrade to empty results on failure and never return an error; an empty
// list means "try again next cycle".
type TrendSource interface {
	FetchTrends() []models.Trend
	SearchRelatedContent(topic string) []models.RelatedContentItem
}

// browserTrendSource scrapes the trends page and news results through a
// shared headless-browser session.
type browserTrendSource struct {
	session   *browser.Session
	trendsURL string
	newsURL   string
}

func NewBrowserTrendSource(session *browser.Session) TrendSource {
	return &browserTrendSource{
		session:   session,
		trendsURL: "https://trends.google.com/trends/trendingsearches/daily?geo=IN",
		newsURL:   "https://www.google.com/search?tbm=nws&q=",
	}
}

// Selector families tried in order; the first family yielding at least one
// element wins. The flat selectors carry the title directly, the container
// selectors require a nested title lookup.
var (
	trendContentMarkers   = ".mZ3RIc, [data-testid=\"trending-searches\"], .trending-searches"
	trendPrimarySelector  = ".mZ3RIc"
	trendFallbackFamilies = []string{
		".feed-list-wrapper .feed-item",
		"[data-testid=\"trending-searches\"] .trend-item",
		".trending-searches .trend-item",
		".trending-searches-item",
	}
	trendTitleSelectors   = []string{".title", ".trend-title", "h3", ".trending-title", "[data-testid=\"trend-title\"]"}
	trendTrafficSelectors = []string{".search-count-title", ".traffic-count", ".trend-traffic", "[data-testid=\"traffic-count\"]"}
)

func (s *browserTrendSource) FetchTrends() []models.Trend {
	page, err := s.session.NewPage()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open page for trend fetch")
		return nil
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing trend page")
		}
	}()

	if _, err := page.Goto(s.trendsURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(navigationTimeoutMs),
	}); err != nil {
		log.Error().Err(err).Str("url", s.trendsURL).Msg("Trend page navigation failed")
		return nil
	}

	if _, err := page.WaitForSelector(trendContentMarkers, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(selectorTimeoutMs),
	}); err != nil {
		log.Error().Err(err).Msg("No trend content markers appeared")
		return nil
	}

	now := time.Now()

	// Primary selector: flat list of title elements.
	if elements, err := page.QuerySelectorAll(trendPrimarySelector); err == nil && len(elements) > 0 {
		var trends []models.Trend
		for _, el := range elements {
			text, err := el.TextContent()
			if err != nil {
				continue
			}
			title := strings.TrimSpace(text)
			if title == "" {
				continue
			}
			trends = append(trends, models.Trend{
				Title:     title,
				Traffic:   "Unknown",
				Source:    models.TrendSourceScrape,
				Timestamp: now,
			})
		}
		if len(trends) > 0 {
			log.Info().Int("count", len(trends)).Msg("Trends fetched via primary selector")
			return trends
		}
	}

	// Fallback families: trend cards with nested title/traffic nodes.
	for _, family := range trendFallbackFamilies {
		elements, err := page.QuerySelectorAll(family)
		if err != nil || len(elements) == 0 {
			continue
		}

		var trends []models.Trend
		for _, el := range elements {
			title := firstMatchText(el, trendTitleSelectors)
			if title == "" {
				continue
			}
			traffic := firstMatchText(el, trendTrafficSelectors)
			if traffic == "" {
				traffic = "Unknown"
			}
			trends = append(trends, models.Trend{
				Title:     title,
				Traffic:   traffic,
				Source:    models.TrendSourceScrape,
				Timestamp: now,
			})
		}
		if len(trends) > 0 {
			log.Info().Int("count", len(trends)).Str("selector", family).Msg("Trends fetched via fallback selector")
			return trends
		}
	}

	log.Warn().Msg("Trend page loaded but no topics extracted")
	return nil
}

func firstMatchText(el playwright.ElementHandle, selectors []string) string {
	for _, sel := range selectors {
		child, err := el.QuerySelector(sel)
		if err != nil || child == nil {
			continue
		}
		text, err := child.TextContent()
		if err != nil {
			continue
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func (s *browserTrendSource) SearchRelatedContent(topic string) []models.RelatedContentItem {
	page, err := s.session.NewPage()
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to open page for related-content search")
		return nil
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing related-content page")
		}
	}()

	searchURL := s.newsURL + strings.ReplaceAll(topic, " ", "+")
	if _, err := page.Goto(searchURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(navigationTimeoutMs),
	}); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("News search navigation failed")
		return nil
	}

	blocks, err := page.QuerySelectorAll(".SoaBEf")
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("News result extraction failed")
		return nil
	}

	var items []models.RelatedContentItem
	for _, block := range blocks {
		if len(items) >= maxRelatedContent {
			break
		}
		title := firstMatchText(block, []string{".n0jPhd"})
		if title == "" {
			continue
		}
		snippet := firstMatchText(block, []string{".GI74Re"})

		var href string
		if link, err := block.QuerySelector("a"); err == nil && link != nil {
			if attr, err := link.GetAttribute("href"); err == nil {
				href = attr
			}
		}

		items = append(items, models.RelatedContentItem{
			Title:   title,
			Snippet: snippet,
			URL:     href,
			Source:  "news_search",
		})
	}

	log.Debug().Str("topic", topic).Int("count", len(items)).Msg("Related content fetched")
	return items
}

// TrendingService caches the trend list for a TTL window and deduplicates
// titles case-insensitively, first occurrence winning. An empty fetch never
// overwrites a previously cached list.
type TrendingService struct {
	source        TrendSource
	cacheDuration time.Duration

	refreshMu sync.Mutex

	mu            sync.RWMutex
	cachedTrends  []models.Trend
	lastFetchTime time.Time
}

func NewTrendingService(source TrendSource) *TrendingService {
	return &TrendingService{
		source:        source,
		cacheDuration: trendCacheDuration,
	}
}

func (s *TrendingService) cached() ([]models.Trend, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cachedTrends == nil || s.lastFetchTime.IsZero() {
		return nil, false
	}
	if time.Since(s.lastFetchTime) >= s.cacheDuration {
		return nil, false
	}
	out := make([]models.Trend, len(s.cachedTrends))
	copy(out, s.cachedTrends)
	return out, true
}

// GetAllTrends returns the cached list when it is still fresh and
// forceRefresh is false. Refreshes are single-flight: concurrent callers
// serialize on the refresh lock and the loser re-checks the cache.
func (s *TrendingService) GetAllTrends(forceRefresh bool) []models.Trend {
	if !forceRefresh {
		if trends, ok := s.cached(); ok {
			log.Debug().Int("count", len(trends)).Msg("Serving trends from cache")
			utils.TrendFetchesTotal.WithLabelValues("cache_hit").Inc()
			return trends
		}
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if !forceRefresh {
		if trends, ok := s.cached(); ok {
			utils.TrendFetchesTotal.WithLabelValues("cache_hit").Inc()
			return trends
		}
	}

	log.Info().Msg("Fetching fresh trending topics")
	fetched := s.source.FetchTrends()
	unique := dedupeTrends(fetched)

	if len(unique) == 0 {
		// Never cache an empty result as if it were a successful fetch.
		log.Warn().Msg("No trending topics found")
		utils.TrendFetchesTotal.WithLabelValues("empty").Inc()
		return []models.Trend{}
	}

	s.mu.Lock()
	s.cachedTrends = unique
	s.lastFetchTime = time.Now()
	s.mu.Unlock()

	log.Info().Int("count", len(unique)).Msg("Trend cache refreshed")
	utils.TrendFetchesTotal.WithLabelValues("fetched").Inc()

	out := make([]models.Trend, len(unique))
	copy(out, unique)
	return out
}

func (s *TrendingService) SearchRelatedContent(topic string) []models.RelatedContentItem {
	return s.source.SearchRelatedContent(topic)
}

// Status is the operator readout of cache freshness.
func (s *TrendingService) Status() models.TrendCacheStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := models.TrendCacheStatus{
		CacheDurationSeconds: int64(s.cacheDuration.Seconds()),
		HasCachedData:        s.cachedTrends != nil,
		CachedTrendsCount:    len(s.cachedTrends),
	}
	if !s.lastFetchTime.IsZero() {
		t := s.lastFetchTime
		age := int64(time.Since(t).Seconds())
		status.LastFetchTime = &t
		status.CacheAgeSeconds = &age
	}
	return status
}

func dedupeTrends(trends []models.Trend) []models.Trend {
	seen := make(map[string]struct{}, len(trends))
	var unique []models.Trend
	for _, trend := range trends {
		key := strings.ToLower(trend.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, trend)
	}
	return unique
}
