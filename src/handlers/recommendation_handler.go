package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/username/fundadvisor/backend/src/logger"
	"github.com/username/fundadvisor/backend/src/models"
	"github.com/username/fundadvisor/backend/src/services"
	"github.com/username/fundadvisor/backend/src/utils"
)

type RecommendationHandler struct {
	recommendService services.RecommendService
}

func NewRecommendationHandler(service services.RecommendService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendService: service,
	}
}

// HandleGetRecommendation computes the allocation vector for a company under
// a risk profile, from the latest persisted snapshot.
func (h *RecommendationHandler) HandleGetRecommendation(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company")
	if companyID == "" {
		utils.SendJSONError(w, "Missing 'company' query parameter.", http.StatusBadRequest)
		return
	}

	risk, err := models.ParseRiskProfile(r.URL.Query().Get("risk"))
	if err != nil {
		utils.SendJSONError(w, "Invalid 'risk' query parameter: must be conservative, balanced or aggressive.", http.StatusBadRequest)
		return
	}

	vector, err := h.recommendService.Recommend(companyID, risk)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCompany) {
			utils.SendJSONError(w, fmt.Sprintf("Unknown company identifier: %s", companyID), http.StatusNotFound)
		} else if errors.Is(err, services.ErrNoData) {
			utils.SendJSONError(w, fmt.Sprintf("No performance data ingested yet for company %s.", companyID), http.StatusNotFound)
		} else if errors.Is(err, services.ErrNoRecommendation) {
			logger.L.Info("No recommendation available", "company", companyID, "risk", risk)
			utils.SendJSONError(w, "No recommendation available: no fund with non-negative performance.", http.StatusUnprocessableEntity)
		} else {
			logger.L.Error("Error computing recommendation", "company", companyID, "risk", risk, "error", err)
			utils.SendJSONError(w, "Error computing recommendation.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"company":      companyID,
		"risk_profile": risk,
		"allocation":   vector,
	}); err != nil {
		logger.L.Error("Error encoding JSON response for recommendation", "company", companyID, "error", err)
	}
}
