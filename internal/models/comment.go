package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ArticleID  primitive.ObjectID `json:"articleId" bson:"article_id"`
	UserID     primitive.ObjectID `json:"userId" bson:"user_id"`
	UserName   string             `json:"userName" bson:"user_name"`
	UserAvatar string             `json:"userAvatar,omitempty" bson:"user_avatar,omitempty"`
	Content    string             `json:"content" bson:"content"`
	Likes      int64              `json:"likes" bson:"likes"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
}

type AddCommentRequestBody struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}
