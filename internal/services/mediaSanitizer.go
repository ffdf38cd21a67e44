package services

import (
	"fmt"
	"math/rand"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"trendwise/internal/models"
	"trendwise/internal/utils"
)

// Only the canonical single-video embed shape is accepted. Playlist and
// watch-page links are dropped rather than rewritten.
var youtubeEmbedRe = regexp.MustCompile(`^https://www\.youtube\.com/embed/[A-Za-z0-9_-]{11}(\?.*)?$`)

var placeholderHostRe = regexp.MustCompile(`(?i)(via\.placeholder\.com|placeholder\.com|placehold\.co)`)

var defaultExcludedImageDomains = []string{
	"upload.wikimedia.org",
	"commons.wikimedia.org",
	"wikimedia.org",
	"unsplash.com",
	"pexels.com",
	"example.com",
}

var (
	imgTagRe    = regexp.MustCompile(`(?is)<img[^>]*\bsrc\s*=\s*["']([^"']+)["'][^>]*/?>`)
	iframeTagRe = regexp.MustCompile(`(?is)<iframe[^>]*\bsrc\s*=\s*["']([^"']+)["'][^>]*>(?:\s*</iframe>)?`)
)

// MediaSanitizer repairs the media lists and the HTML body of a parsed
// draft: invalid videos and excluded-domain images are removed, placeholder
// images are swapped for real search hits, and the image set is guaranteed
// non-empty.
type MediaSanitizer struct {
	excludedDomains []string
	imageSearch     ImageSearcher
}

// NewMediaSanitizer reads the exclusion policy from EXCLUDED_IMAGE_DOMAINS
// (comma separated). Setting the variable to an empty string allows all
// domains; leaving it unset keeps the default policy.
func NewMediaSanitizer(imageSearch ImageSearcher) *MediaSanitizer {
	excluded := defaultExcludedImageDomains
	if raw, ok := os.LookupEnv("EXCLUDED_IMAGE_DOMAINS"); ok {
		excluded = nil
		for _, d := range strings.Split(raw, ",") {
			if v := strings.TrimSpace(d); v != "" {
				excluded = append(excluded, v)
			}
		}
	}
	return &MediaSanitizer{excludedDomains: excluded, imageSearch: imageSearch}
}

// Sanitize applies the repair rules in order and mutates the draft in place:
// video validation, image domain exclusion, placeholder replacement, then
// the non-empty image guarantee. It returns the cover image URL, taken from
// the first image tag in the sanitized HTML.
func (s *MediaSanitizer) Sanitize(draft *models.GeneratedArticleDraft, topic string) string {
	draft.RawVideos = s.filterVideos(draft)
	draft.RawImages = s.filterExcludedImages(draft)
	draft.RawImages = s.replacePlaceholders(draft, topic)
	s.ensureImage(draft, topic)
	return coverImage(draft.HTMLContent)
}

func (s *MediaSanitizer) filterVideos(draft *models.GeneratedArticleDraft) []models.MediaVideo {
	var kept []models.MediaVideo
	for _, video := range draft.RawVideos {
		if youtubeEmbedRe.MatchString(video.URL) {
			kept = append(kept, video)
			continue
		}
		log.Debug().Str("url", video.URL).Msg("Dropping non-embed video URL")
		draft.HTMLContent = removeIframesFor(draft.HTMLContent, video.URL)
	}
	// Embeds that appear only in the body still have to pass the same check.
	draft.HTMLContent = iframeTagRe.ReplaceAllStringFunc(draft.HTMLContent, func(tag string) string {
		src := iframeTagRe.FindStringSubmatch(tag)[1]
		if youtubeEmbedRe.MatchString(src) {
			return tag
		}
		return ""
	})
	return kept
}

func removeIframesFor(html, url string) string {
	return iframeTagRe.ReplaceAllStringFunc(html, func(tag string) string {
		if strings.Contains(tag, url) {
			return ""
		}
		return tag
	})
}

func (s *MediaSanitizer) isExcluded(url string) bool {
	for _, domain := range s.excludedDomains {
		if strings.Contains(url, domain) {
			return true
		}
	}
	return false
}

func (s *MediaSanitizer) filterExcludedImages(draft *models.GeneratedArticleDraft) []models.MediaImage {
	var kept []models.MediaImage
	for _, img := range draft.RawImages {
		if s.isExcluded(img.URL) {
			log.Debug().Str("url", img.URL).Msg("Dropping image from excluded domain")
			continue
		}
		kept = append(kept, img)
	}
	draft.HTMLContent = imgTagRe.ReplaceAllStringFunc(draft.HTMLContent, func(tag string) string {
		src := imgTagRe.FindStringSubmatch(tag)[1]
		if s.isExcluded(src) {
			return ""
		}
		return tag
	})
	return kept
}

func (s *MediaSanitizer) replacePlaceholders(draft *models.GeneratedArticleDraft, topic string) []models.MediaImage {
	keyword := utils.PrimaryKeyword(topic)
	out := make([]models.MediaImage, 0, len(draft.RawImages))
	for _, img := range draft.RawImages {
		if !placeholderHostRe.MatchString(img.URL) {
			out = append(out, img)
			continue
		}
		replacement := s.searchReplacement(keyword)
		if replacement == "" {
			replacement = fallbackImageURL(keyword)
		}
		log.Debug().Str("placeholder", img.URL).Str("replacement", replacement).Msg("Replacing placeholder image")
		draft.HTMLContent = strings.ReplaceAll(draft.HTMLContent, img.URL, replacement)
		img.URL = replacement
		out = append(out, img)
	}
	return out
}

func (s *MediaSanitizer) searchReplacement(keyword string) string {
	if s.imageSearch == nil {
		return ""
	}
	urls, err := s.imageSearch.SearchImages(keyword, 1)
	if err != nil {
		log.Warn().Err(err).Str("keyword", keyword).Msg("Image search fallback failed")
		return ""
	}
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

// ensureImage guarantees at least one image survives sanitization.
func (s *MediaSanitizer) ensureImage(draft *models.GeneratedArticleDraft, topic string) {
	if len(draft.RawImages) > 0 {
		return
	}
	keyword := utils.PrimaryKeyword(topic)
	url := s.searchReplacement(keyword)
	if url == "" {
		url = fallbackImageURL(keyword)
	}
	img := models.MediaImage{URL: url, Alt: topic}
	draft.RawImages = []models.MediaImage{img}
	draft.HTMLContent = fmt.Sprintf("<img src=%q alt=%q/>\n", url, topic) + draft.HTMLContent
	log.Debug().Str("url", url).Msg("Synthesized fallback image")
}

func fallbackImageURL(keyword string) string {
	return fmt.Sprintf("https://picsum.photos/800/600?random=%d&keyword=%s", rand.Intn(1000), keyword)
}

func coverImage(html string) string {
	if m := imgTagRe.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}
