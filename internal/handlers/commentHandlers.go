package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"trendwise/internal/models"
	"trendwise/internal/services"
	"trendwise/internal/utils"
)

type CommentHandler struct {
	commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) GetArticleComments(w http.ResponseWriter, r *http.Request) {
	articleID, err := utils.GetObjectIDFromVars(w, r, "articleId")
	if err != nil {
		return
	}

	limit, page := paginationParams(r)
	comments, err := h.commentService.GetArticleComments(r.Context(), articleID, limit, page)
	if err != nil {
		log.Error().Err(err).Str("article_id", articleID.Hex()).Msg("Error listing comments from service")
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	utils.RespondWithJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	articleID, err := utils.GetObjectIDFromVars(w, r, "articleId")
	if err != nil {
		return
	}

	var reqBody models.AddCommentRequestBody
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		log.Error().Err(err).Msg("Error decoding request body for AddComment")
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(reqBody.Content) == "" {
		utils.SendJSONError(w, "Comment content is required", http.StatusBadRequest)
		return
	}

	comment, err := h.commentService.AddComment(r.Context(), articleID, userID, &reqBody)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "user not found") {
			statusCode = http.StatusNotFound
		}
		utils.SendJSONError(w, err.Error(), statusCode)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) GetMyComments(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	limit, page := paginationParams(r)
	comments, err := h.commentService.GetUserComments(r.Context(), userID, limit, page)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error listing user comments from service")
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	utils.RespondWithJSON(w, http.StatusOK, comments)
}
