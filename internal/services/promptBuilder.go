package services

import (
	"fmt"
	"strings"

	"trendwise/internal/models"
)

// Structured footer labels the model is instructed to emit. The parser keys
// on these exact strings, so builder and parser share them.
const (
	labelTitle           = "TITLE:"
	labelMetaDescription = "META_DESCRIPTION:"
	labelKeywords        = "KEYWORDS:"
	labelHashtags        = "HASHTAGS:"
	labelContent         = "CONTENT:"
	labelMedia           = "MEDIA:"
	labelImages          = "IMAGES:"
	labelVideos          = "VIDEOS:"
	labelTweets          = "TWEETS:"
)

// BuildArticlePrompt renders the generation instruction for a trending
// topic, appending any related news items as grounding context.
func BuildArticlePrompt(topic string, related []models.RelatedContentItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Write a comprehensive, SEO-optimized news article about the trending topic: "%s".

Requirements:
- Length: 800-1200 words.
- Format the article body as semantic HTML using only these tags: <h1>, <h2>, <h3>, <p>, <ul>, <ol>, <li>, <strong>, <em>, <blockquote>.
- Exactly one <h1> containing the article title, followed by multiple <h2> sections, with <h3> subsections where useful.
- Do NOT include <html>, <head>, <body>, <script>, <style>, or inline styles.
- Do NOT include markdown syntax, code fences, or explanatory notes outside the requested format.
- Write in an engaging journalistic tone for a general audience.

Structure the article as a narrative covering:
1. An introduction explaining what is happening right now.
2. Why this topic is trending at this moment.
3. Background and context readers need.
4. The impact and implications.
5. Notable reactions or perspectives.
6. What to expect next.

After the article body, append this exact footer format:

%s [article title, max 60 characters]
%s [compelling meta description, max 160 characters]
%s [5-8 comma-separated keywords]
%s [3-5 comma-separated hashtags starting with #]
%s
[the full HTML article body]
%s
%s
- [image URL] | [image alt text]
%s
- [YouTube embed URL in the form https://www.youtube.com/embed/VIDEO_ID]
%s
- [tweet URL]

If you have no media suggestions for a section, leave that section empty but keep its label.`,
		topic,
		labelTitle, labelMetaDescription, labelKeywords, labelHashtags,
		labelContent, labelMedia, labelImages, labelVideos, labelTweets)

	if len(related) > 0 {
		b.WriteString("\n\nUse the following recent news context to ground the article in current events:\n")
		for _, item := range related {
			if item.Snippet != "" {
				fmt.Fprintf(&b, "- %s: %s\n", item.Title, item.Snippet)
			} else {
				fmt.Fprintf(&b, "- %s\n", item.Title)
			}
		}
	}

	return b.String()
}
