package handlers

import (
	"net/http"

	"transformer-load/internal/analysis"
	"transformer-load/internal/api/models"
	"transformer-load/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RankHandler handles fleet ranking requests
type RankHandler struct {
	diagnosis *DiagnosisHandler
}

// NewRankHandler creates a rank handler sharing preset resolution with d
func NewRankHandler(d *DiagnosisHandler) *RankHandler {
	return &RankHandler{diagnosis: d}
}

// RankFleet handles POST /api/v1/fleet/rank
func (h *RankHandler) RankFleet(c *gin.Context) {
	var req models.FleetRankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	fleet := make([]model.Transformer, 0, len(req.Transformers))
	for i, tr := range req.Transformers {
		tx, err := h.diagnosis.buildTransformer(tr)
		if err != nil {
			h.diagnosis.writeBuildError(c, err, map[string]interface{}{"index": i})
			return
		}
		fleet = append(fleet, tx)
	}

	c.JSON(http.StatusOK, models.FleetRankResponse{
		ID:       uuid.NewString(),
		Rankings: analysis.RankBySeverity(fleet),
	})
}
