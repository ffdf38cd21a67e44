package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"trendwise/internal/models"
	"trendwise/internal/services"
	"trendwise/internal/utils"
)

type ArticleHandler struct {
	articleService services.ArticleService
}

func NewArticleHandler(articleService services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

func paginationParams(r *http.Request) (limit, page int64) {
	limit, page = 10, 1
	if l, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	if p, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64); err == nil && p > 0 {
		page = p
	}
	return limit, page
}

func (h *ArticleHandler) GetArticles(w http.ResponseWriter, r *http.Request) {
	limit, page := paginationParams(r)
	search := r.URL.Query().Get("search")

	articles, total, err := h.articleService.GetArticles(r.Context(), search, limit, page)
	if err != nil {
		log.Error().Err(err).Msg("Error listing articles from service")
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"articles": articles,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *ArticleHandler) GetArticleBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if slug == "" {
		utils.SendJSONError(w, "Missing slug parameter", http.StatusBadRequest)
		return
	}

	article, err := h.articleService.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		} else {
			log.Error().Err(err).Str("slug", slug).Msg("Error getting article by slug from service")
			utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var reqBody models.CreateArticleRequestBody
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		log.Error().Err(err).Msg("Error decoding request body for CreateArticle")
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	article, err := h.articleService.CreateArticle(r.Context(), &reqBody)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid article payload") {
			statusCode = http.StatusBadRequest
		}
		utils.SendJSONError(w, err.Error(), statusCode)
		return
	}

	log.Info().Str("article_id", article.ID.Hex()).Msg("Successfully created article")
	utils.RespondWithJSON(w, http.StatusCreated, article)
}

func (h *ArticleHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var reqBody models.UpdateArticleRequestBody
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		log.Error().Err(err).Msg("Error decoding request body for UpdateArticle")
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	article, err := h.articleService.UpdateArticle(r.Context(), articleID, &reqBody)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			statusCode = http.StatusNotFound
		} else if strings.Contains(err.Error(), "invalid article payload") || strings.Contains(err.Error(), "no valid fields") {
			statusCode = http.StatusBadRequest
		}
		utils.SendJSONError(w, err.Error(), statusCode)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if err := h.articleService.DeleteArticle(r.Context(), articleID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		} else {
			log.Error().Err(err).Str("article_id", articleID.Hex()).Msg("Error deleting article via service")
			utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
