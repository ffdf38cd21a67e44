package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"trendwise/internal/models"
	"trendwise/internal/repositories"
)

type CommentService interface {
	GetArticleComments(ctx context.Context, articleID primitive.ObjectID, limit, page int64) ([]models.Comment, error)
	AddComment(ctx context.Context, articleID, userID primitive.ObjectID, payload *models.AddCommentRequestBody) (*models.Comment, error)
	GetUserComments(ctx context.Context, userID primitive.ObjectID, limit, page int64) ([]models.Comment, error)
}

type commentService struct {
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
}

func NewCommentService(commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) CommentService {
	return &commentService{commentRepo: commentRepo, userRepo: userRepo}
}

func (s *commentService) GetArticleComments(ctx context.Context, articleID primitive.ObjectID, limit, page int64) ([]models.Comment, error) {
	comments, err := s.commentRepo.Find(ctx, bson.M{"article_id": articleID}, limit, page)
	if err != nil {
		log.Error().Err(err).Str("article_id", articleID.Hex()).Msg("Failed to list comments")
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// AddComment denormalizes the author's name and avatar onto the comment so
// reads never need a user join.
func (s *commentService) AddComment(ctx context.Context, articleID, userID primitive.ObjectID, payload *models.AddCommentRequestBody) (*models.Comment, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to resolve comment author")
		return nil, fmt.Errorf("failed to resolve comment author: %w", err)
	}

	comment := &models.Comment{
		ArticleID:  articleID,
		UserID:     userID,
		UserName:   user.Username,
		UserAvatar: user.AvatarURL,
		Content:    payload.Content,
		CreatedAt:  time.Now(),
	}

	created, err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		log.Error().Err(err).Str("article_id", articleID.Hex()).Msg("Failed to add comment")
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	log.Info().Str("comment_id", created.ID.Hex()).Str("article_id", articleID.Hex()).Msg("Comment added")
	return created, nil
}

func (s *commentService) GetUserComments(ctx context.Context, userID primitive.ObjectID, limit, page int64) ([]models.Comment, error) {
	comments, err := s.commentRepo.Find(ctx, bson.M{"user_id": userID}, limit, page)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to list user comments")
		return nil, fmt.Errorf("failed to list user comments: %w", err)
	}
	return comments, nil
}
