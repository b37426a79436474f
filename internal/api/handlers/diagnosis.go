package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"transformer-load/internal/api/models"
	"transformer-load/internal/config"
	"transformer-load/internal/diagnostics"
	"transformer-load/internal/logger"
	"transformer-load/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DiagnosisHandler serves the assessment and diagnosis endpoints
type DiagnosisHandler struct {
	engine         *diagnostics.Engine
	transformerDir string
	log            *logger.Entry
}

// NewDiagnosisHandler creates a handler that resolves presets from transformerDir
func NewDiagnosisHandler(transformerDir string) *DiagnosisHandler {
	return &DiagnosisHandler{
		engine:         diagnostics.New(),
		transformerDir: transformerDir,
		log:            logger.GetLogger().WithComponent("diagnosis_handler"),
	}
}

// Assess handles POST /api/v1/assessment
func (h *DiagnosisHandler) Assess(c *gin.Context) {
	tx, ok := h.bindTransformer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.AssessmentResponse{
		Name:       tx.Name,
		Assessment: diagnostics.ComputeAssessment(tx.Rating, tx.Legs),
	})
}

// Diagnose handles POST /api/v1/diagnosis
func (h *DiagnosisHandler) Diagnose(c *gin.Context) {
	tx, ok := h.bindTransformer(c)
	if !ok {
		return
	}
	res := h.engine.Run(tx)
	id := uuid.NewString()

	h.log.WithFields(logger.Fields{
		"id":          id,
		"transformer": tx.Name,
		"legs":        len(tx.Legs),
		"issues":      res.Report.Issues(),
	}).Debug("diagnosis completed")

	c.JSON(http.StatusOK, models.DiagnosisResponse{
		ID:         id,
		Status:     "completed",
		Name:       res.Name,
		Assessment: res.Assessment,
		Findings:   res.Report,
		Lines:      res.Report.Lines(),
	})
}

func (h *DiagnosisHandler) bindTransformer(c *gin.Context) (model.Transformer, bool) {
	var req models.TransformerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return model.Transformer{}, false
	}
	tx, err := h.buildTransformer(req)
	if err != nil {
		h.writeBuildError(c, err, nil)
		return model.Transformer{}, false
	}
	return tx, true
}

func (h *DiagnosisHandler) writeBuildError(c *gin.Context, err error, details map[string]interface{}) {
	if errors.Is(err, errPresetNotFound) {
		respondError(c, http.StatusNotFound, "TRANSFORMER_NOT_FOUND", err.Error(), details)
		return
	}
	respondError(c, http.StatusBadRequest, "INVALID_TRANSFORMER", err.Error(), details)
}

// buildTransformer merges the request onto its preset, if any. Ratings and
// currents are not validated here; the engine degrades on incomplete input.
func (h *DiagnosisHandler) buildTransformer(req models.TransformerRequest) (model.Transformer, error) {
	cfg := config.TransformerConfig{
		Name:       req.Transformer.Name,
		RatingKVA:  req.Transformer.RatingKVA,
		FeederLegs: req.Transformer.FeederLegs,
	}

	if req.TransformerFile != "" {
		// Presets are always looked up by name inside the preset directory.
		id := strings.TrimSuffix(filepath.Base(req.TransformerFile), ".yaml")
		path := filepath.Join(h.transformerDir, id+".yaml")
		loaded, err := config.LoadTransformerFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return model.Transformer{}, fmt.Errorf("%w: %s", errPresetNotFound, id)
			}
			h.log.WithError(err).WithFields(logger.Fields{"path": path}).Warn("failed to load transformer preset")
			return model.Transformer{}, fmt.Errorf("transformer preset %s: %w", id, err)
		}
		cfg = config.MergeTransformer(loaded, cfg)
		if cfg.Name == "" {
			cfg.Name = id
		}
	}

	if len(cfg.FeederLegs) > model.MaxFeederLegs {
		return model.Transformer{}, fmt.Errorf("at most %d feeder legs are allowed, got %d", model.MaxFeederLegs, len(cfg.FeederLegs))
	}
	return cfg.ToModel(), nil
}
