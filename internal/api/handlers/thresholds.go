package handlers

import (
	"net/http"

	"transformer-load/internal/api/models"
	"transformer-load/internal/diagnostics"
	"transformer-load/internal/model"

	"github.com/gin-gonic/gin"
)

// ThresholdHandler describes the fixed engine constants
type ThresholdHandler struct{}

// NewThresholdHandler creates a new threshold handler
func NewThresholdHandler() *ThresholdHandler {
	return &ThresholdHandler{}
}

// ListThresholds handles GET /api/v1/thresholds
func (h *ThresholdHandler) ListThresholds(c *gin.Context) {
	thresholds := []models.ThresholdInfo{
		{
			Name:        "kva_to_rated_current",
			Value:       model.KVAToRatedCurrent,
			Unit:        "A/kVA",
			Description: "Multiplier from nameplate kVA to per-phase rated current",
		},
		{
			Name:        "overload_factor",
			Value:       diagnostics.OverloadFactor,
			Unit:        "ratio",
			Description: "A phase is overloaded above this share of rated current",
		},
		{
			Name:        "neutral_rated_fraction",
			Value:       diagnostics.NeutralRatedFraction,
			Unit:        "ratio",
			Description: "Tolerated neutral current as a share of rated current; twice this is critical",
		},
		{
			Name:        "imbalance_warning",
			Value:       diagnostics.ImbalanceWarningPercent,
			Unit:        "%",
			Description: "Transformer imbalance above this is a warning",
		},
		{
			Name:        "imbalance_critical",
			Value:       diagnostics.ImbalanceCriticalPercent,
			Unit:        "%",
			Description: "Transformer imbalance above this is critical",
		},
		{
			Name:        "leg_imbalance",
			Value:       diagnostics.LegImbalancePercent,
			Unit:        "%",
			Description: "Feeder legs at or above this imbalance get a rebalancing plan",
		},
		{
			Name:        "leg_critical_imbalance",
			Value:       diagnostics.LegCriticalImbalancePercent,
			Unit:        "%",
			Description: "Feeder legs at or above this imbalance need immediate action",
		},
		{
			Name:        "min_transfer",
			Value:       diagnostics.MinTransferAmps,
			Unit:        "A",
			Description: "Smallest excess over the phase mean worth moving",
		},
		{
			Name:        "max_feeder_legs",
			Value:       model.MaxFeederLegs,
			Unit:        "legs",
			Description: "Most feeder legs accepted per transformer",
		},
	}

	c.JSON(http.StatusOK, gin.H{"thresholds": thresholds})
}
