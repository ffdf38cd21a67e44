package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"trendwise/internal/models"
	"trendwise/internal/services"
	"trendwise/internal/utils"
)

type TrendHandler struct {
	trendingService *services.TrendingService
	scheduler       *services.SchedulerService
}

func NewTrendHandler(trendingService *services.TrendingService, scheduler *services.SchedulerService) *TrendHandler {
	return &TrendHandler{trendingService: trendingService, scheduler: scheduler}
}

func (h *TrendHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	trends := h.trendingService.GetAllTrends(forceRefresh)
	if trends == nil {
		trends = []models.Trend{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trends": trends,
		"count":  len(trends),
	})
}

func (h *TrendHandler) RefreshTrends(w http.ResponseWriter, r *http.Request) {
	trends := h.trendingService.GetAllTrends(true)
	if trends == nil {
		trends = []models.Trend{}
	}

	log.Info().Int("count", len(trends)).Msg("Trend refresh requested via API")
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trends": trends,
		"count":  len(trends),
	})
}

func (h *TrendHandler) GetTrendStatus(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.trendingService.Status())
}

// TriggerGeneration kicks off a generation cycle in the background. The
// cycle guard drops the trigger if one is already running.
func (h *TrendHandler) TriggerGeneration(w http.ResponseWriter, r *http.Request) {
	if h.scheduler == nil {
		utils.SendJSONError(w, "Generation is not configured", http.StatusServiceUnavailable)
		return
	}

	log.Info().Msg("Manual generation cycle triggered via API")
	go h.scheduler.RunCycle(context.Background())

	utils.RespondWithJSON(w, http.StatusAccepted, map[string]string{
		"message": "Generation cycle triggered",
	})
}
