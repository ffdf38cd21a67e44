package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ArticleSourceTrend  = "trend_source"
	ArticleSourceManual = "manual_entry"
	ArticleSourceAI     = "ai_generated"

	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
	ArticleStatusArchived  = "archived"
)

// MediaImage, MediaVideo and MediaTweet are value types owned by the article;
// they have no identity of their own.
type MediaImage struct {
	URL     string `json:"url" bson:"url"`
	Alt     string `json:"alt" bson:"alt"`
	Caption string `json:"caption" bson:"caption"`
}

type MediaVideo struct {
	URL      string `json:"url" bson:"url"`
	Title    string `json:"title" bson:"title"`
	Platform string `json:"platform" bson:"platform"`
}

type MediaTweet struct {
	URL     string `json:"url" bson:"url"`
	Content string `json:"content" bson:"content"`
	Author  string `json:"author" bson:"author"`
}

type ArticleMedia struct {
	Images []MediaImage `json:"images" bson:"images"`
	Videos []MediaVideo `json:"videos" bson:"videos"`
	Tweets []MediaTweet `json:"tweets" bson:"tweets"`
}

type ArticleMeta struct {
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Keywords    []string `json:"keywords" bson:"keywords"`
}

type OGTags struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Image       string `json:"image" bson:"image"`
	URL         string `json:"url" bson:"url"`
}

// Article is the persisted shape produced by the generation pipeline and read
// as-is by the HTTP layer. Slug is a deterministic slugification of the title
// at creation time and is globally unique.
type Article struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Slug          string             `json:"slug" bson:"slug"`
	Excerpt       string             `json:"excerpt" bson:"excerpt"`
	Content       string             `json:"content" bson:"content"`
	Meta          ArticleMeta        `json:"meta" bson:"meta"`
	OGTags        OGTags             `json:"ogTags" bson:"og_tags"`
	Media         ArticleMedia       `json:"media" bson:"media"`
	Hashtags      []string           `json:"hashtags" bson:"hashtags"`
	TrendingTopic string             `json:"trendingTopic" bson:"trending_topic"`
	Source        string             `json:"source" bson:"source"`
	Status        string             `json:"status" bson:"status"`
	SEOScore      int                `json:"seoScore" bson:"seo_score"`
	ReadTime      int                `json:"readTime" bson:"read_time"`
	ViewCount     int64              `json:"viewCount" bson:"view_count"`
	PublishedAt   time.Time          `json:"publishedAt" bson:"published_at"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updated_at"`
}

// CreateArticleRequestBody is the admin payload for manually entered articles.
type CreateArticleRequestBody struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Excerpt       string   `json:"excerpt" validate:"required,max=300"`
	Content       string   `json:"content" validate:"required"`
	TrendingTopic string   `json:"trendingTopic" validate:"required"`
	Keywords      []string `json:"keywords" validate:"omitempty,dive,max=60"`
	Hashtags      []string `json:"hashtags"`
	Status        string   `json:"status" validate:"omitempty,oneof=draft published archived"`
}

type UpdateArticleRequestBody struct {
	Title    *string   `json:"title,omitempty" validate:"omitempty,max=200"`
	Excerpt  *string   `json:"excerpt,omitempty" validate:"omitempty,max=300"`
	Content  *string   `json:"content,omitempty"`
	Keywords *[]string `json:"keywords,omitempty"`
	Hashtags *[]string `json:"hashtags,omitempty"`
	Status   *string   `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
}
