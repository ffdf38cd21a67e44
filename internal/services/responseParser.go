package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"trendwise/internal/models"
)

// ErrContentUnusable means the model response carried no usable article body.
// Missing optional fields get defaults; a missing body aborts the attempt.
var ErrContentUnusable = errors.New("generated content unusable")

const minContentLength = 100

// Label matchers are tolerant: leading whitespace, optional colon, rest of
// line. CONTENT spans everything between its label and MEDIA (or end).
var (
	titleRe    = regexp.MustCompile(`(?im)^\s*TITLE:?\s*(.+)$`)
	metaDescRe = regexp.MustCompile(`(?im)^\s*META_DESCRIPTION:?\s*(.+)$`)
	keywordsRe = regexp.MustCompile(`(?im)^\s*KEYWORDS:?\s*(.+)$`)
	hashtagsRe = regexp.MustCompile(`(?im)^\s*HASHTAGS:?\s*(.+)$`)
	contentRe  = regexp.MustCompile(`(?is)CONTENT:?\s*(.*?)(?:\n\s*MEDIA:|\z)`)

	mediaSectionRe = regexp.MustCompile(`(?is)MEDIA:?\s*(.*)\z`)
	imagesRe       = regexp.MustCompile(`(?is)IMAGES:?\s*(.*?)(?:\n\s*VIDEOS:|\n\s*TWEETS:|\z)`)
	videosRe       = regexp.MustCompile(`(?is)VIDEOS:?\s*(.*?)(?:\n\s*TWEETS:|\z)`)
	tweetsRe       = regexp.MustCompile(`(?is)TWEETS:?\s*(.*)\z`)

	// "- [url] | [alt]" with the bracketed pair optional on the second part.
	mediaPairLineRe   = regexp.MustCompile(`-\s*\[(.+?)\]\s*\|\s*\[(.+?)\]`)
	mediaSingleLineRe = regexp.MustCompile(`-\s*\[(.+?)\]`)
)

// recognizedLabels lists every footer label the prompt builder emits. Kept
// next to the matchers so the round-trip test can assert coverage.
var recognizedLabels = []string{
	labelTitle, labelMetaDescription, labelKeywords, labelHashtags,
	labelContent, labelMedia, labelImages, labelVideos, labelTweets,
}

// ParseGeneratedArticle extracts the structured draft from raw model output.
// Every field except the article body degrades to a deterministic default
// derived from the topic.
func ParseGeneratedArticle(rawText, topic string) (*models.GeneratedArticleDraft, error) {
	draft := &models.GeneratedArticleDraft{
		Title:           extractLine(titleRe, rawText, fmt.Sprintf("Complete Guide to %s", topic)),
		MetaDescription: extractMetaDescription(rawText, topic),
		Keywords:        extractList(keywordsRe, rawText, defaultKeywords(topic)),
		Hashtags:        extractList(hashtagsRe, rawText, defaultHashtags(topic)),
	}

	content := ""
	if m := contentRe.FindStringSubmatch(rawText); m != nil {
		content = strings.TrimSpace(m[1])
	}
	if len(content) < minContentLength {
		log.Warn().Str("topic", topic).Int("length", len(content)).Msg("Model response carried no usable content")
		return nil, fmt.Errorf("%w: content length %d below floor", ErrContentUnusable, len(content))
	}
	draft.HTMLContent = content

	mediaSection := ""
	if m := mediaSectionRe.FindStringSubmatch(rawText); m != nil {
		mediaSection = m[1]
	}
	draft.RawImages = parseImageLines(section(imagesRe, mediaSection))
	draft.RawVideos = parseVideoLines(section(videosRe, mediaSection))
	draft.RawTweets = parseTweetLines(section(tweetsRe, mediaSection))

	// When a footer sub-list is empty, mine the HTML body itself.
	if len(draft.RawImages) == 0 || len(draft.RawVideos) == 0 || len(draft.RawTweets) == 0 {
		scanContentForMedia(draft)
	}

	return draft, nil
}

func extractLine(re *regexp.Regexp, text, fallback string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			return v
		}
	}
	return fallback
}

func extractMetaDescription(text, topic string) string {
	desc := extractLine(metaDescRe, text,
		fmt.Sprintf("Learn everything about %s in this comprehensive guide.", topic))
	if len(desc) > 300 {
		desc = desc[:297] + "..."
	}
	return desc
}

func extractList(re *regexp.Regexp, text string, fallback []string) []string {
	if m := re.FindStringSubmatch(text); m != nil {
		var out []string
		for _, part := range strings.Split(m[1], ",") {
			if v := strings.TrimSpace(part); v != "" {
				out = append(out, v)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}

func defaultKeywords(topic string) []string {
	return []string{topic, "guide", "information", "tips", "latest"}
}

func defaultHashtags(topic string) []string {
	return []string{
		"#" + strings.ReplaceAll(topic, " ", ""),
		"#trending",
		"#guide",
	}
}

func section(re *regexp.Regexp, mediaSection string) string {
	if m := re.FindStringSubmatch(mediaSection); m != nil {
		return m[1]
	}
	return ""
}

func parseImageLines(block string) []models.MediaImage {
	var images []models.MediaImage
	for _, line := range strings.Split(block, "\n") {
		if m := mediaPairLineRe.FindStringSubmatch(line); m != nil {
			images = append(images, models.MediaImage{
				URL: strings.TrimSpace(m[1]),
				Alt: strings.TrimSpace(m[2]),
			})
		} else if m := mediaSingleLineRe.FindStringSubmatch(line); m != nil {
			images = append(images, models.MediaImage{
				URL: strings.TrimSpace(m[1]),
				Alt: "Article image",
			})
		}
	}
	return images
}

func parseVideoLines(block string) []models.MediaVideo {
	var videos []models.MediaVideo
	for _, line := range strings.Split(block, "\n") {
		if m := mediaPairLineRe.FindStringSubmatch(line); m != nil {
			videos = append(videos, models.MediaVideo{
				URL:      strings.TrimSpace(m[1]),
				Title:    strings.TrimSpace(m[2]),
				Platform: "youtube",
			})
		} else if m := mediaSingleLineRe.FindStringSubmatch(line); m != nil {
			videos = append(videos, models.MediaVideo{
				URL:      strings.TrimSpace(m[1]),
				Title:    "Related video",
				Platform: "youtube",
			})
		}
	}
	return videos
}

func parseTweetLines(block string) []models.MediaTweet {
	var tweets []models.MediaTweet
	for _, line := range strings.Split(block, "\n") {
		if m := mediaSingleLineRe.FindStringSubmatch(line); m != nil {
			tweets = append(tweets, models.MediaTweet{
				URL: strings.TrimSpace(m[1]),
			})
		}
	}
	return tweets
}

// scanContentForMedia fills empty media lists from tags embedded in the
// article body itself.
func scanContentForMedia(draft *models.GeneratedArticleDraft) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(draft.HTMLContent))
	if err != nil {
		log.Debug().Err(err).Msg("Content media scan skipped, body not parseable")
		return
	}

	if len(draft.RawImages) == 0 {
		doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
			src, ok := sel.Attr("src")
			if !ok || strings.TrimSpace(src) == "" {
				return
			}
			alt := sel.AttrOr("alt", "Article image")
			draft.RawImages = append(draft.RawImages, models.MediaImage{URL: src, Alt: alt})
		})
	}

	if len(draft.RawVideos) == 0 {
		doc.Find("iframe").Each(func(_ int, sel *goquery.Selection) {
			src, ok := sel.Attr("src")
			if !ok || !strings.Contains(src, "youtube.com/embed/") {
				return
			}
			title := sel.AttrOr("title", "Related video")
			draft.RawVideos = append(draft.RawVideos, models.MediaVideo{
				URL:      src,
				Title:    title,
				Platform: "youtube",
			})
		})
	}

	if len(draft.RawTweets) == 0 {
		doc.Find("blockquote.twitter-tweet a").Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			if !ok || strings.TrimSpace(href) == "" {
				return
			}
			draft.RawTweets = append(draft.RawTweets, models.MediaTweet{URL: href})
		})
	}
}
