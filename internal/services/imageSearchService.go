package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// ImageSearcher resolves a keyword into real image URLs, used to replace
// placeholder-generator links in generated articles.
type ImageSearcher interface {
	SearchImages(keyword string, count int) ([]string, error)
}

type unsplashSearcher struct {
	client    *resty.Client
	accessKey string
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// NewUnsplashSearcher returns nil (no searcher) when UNSPLASH_ACCESS_KEY is
// unset; the sanitizer then falls back to its deterministic placeholder.
func NewUnsplashSearcher() ImageSearcher {
	accessKey := os.Getenv("UNSPLASH_ACCESS_KEY")
	if accessKey == "" {
		log.Warn().Msg("UNSPLASH_ACCESS_KEY not set, image search disabled")
		return nil
	}
	client := resty.New().
		SetBaseURL("https://api.unsplash.com").
		SetTimeout(10 * time.Second)
	return &unsplashSearcher{client: client, accessKey: accessKey}
}

func (s *unsplashSearcher) SearchImages(keyword string, count int) ([]string, error) {
	if count < 1 {
		count = 1
	}

	var body unsplashSearchResponse
	resp, err := s.client.R().
		SetHeader("Authorization", "Client-ID "+s.accessKey).
		SetQueryParams(map[string]string{
			"query":    keyword,
			"per_page": fmt.Sprintf("%d", count),
		}).
		SetResult(&body).
		Get("/search/photos")
	if err != nil {
		return nil, fmt.Errorf("image search request failed: %w", err)
	}
	if resp.IsError() {
		return nil, errors.New("image search returned " + resp.Status())
	}

	urls := make([]string, 0, len(body.Results))
	for _, result := range body.Results {
		if result.URLs.Regular != "" {
			urls = append(urls, result.URLs.Regular)
		}
	}
	return urls, nil
}
