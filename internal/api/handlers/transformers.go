package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"transformer-load/internal/api/models"
	"transformer-load/internal/config"
	"transformer-load/internal/logger"

	"github.com/gin-gonic/gin"
)

// TransformerHandler lists transformer presets
type TransformerHandler struct {
	transformerDir string
	log            *logger.Entry
}

// NewTransformerHandler creates a handler reading presets from dir
func NewTransformerHandler(dir string) *TransformerHandler {
	log := logger.GetLogger().WithComponent("transformer_handler")
	log.WithFields(logger.Fields{"dir": dir}).Info("using transformer preset directory")
	return &TransformerHandler{transformerDir: dir, log: log}
}

// Dir returns the preset directory path
func (h *TransformerHandler) Dir() string {
	return h.transformerDir
}

// ListTransformers handles GET /api/v1/transformers
func (h *TransformerHandler) ListTransformers(c *gin.Context) {
	transformers := []models.TransformerInfo{}

	entries, err := os.ReadDir(h.transformerDir)
	if err != nil {
		h.log.WithError(err).Warn("failed to read transformer directory")
		c.JSON(http.StatusOK, gin.H{"transformers": transformers})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(h.transformerDir, entry.Name())
		info, err := loadTransformerInfo(path, entry.Name())
		if err != nil {
			h.log.WithError(err).WithFields(logger.Fields{"path": path}).Warn("skipping invalid transformer preset")
			continue
		}
		transformers = append(transformers, *info)
	}

	h.log.WithFields(logger.Fields{"count": len(transformers)}).Debug("listed transformer presets")
	c.JSON(http.StatusOK, gin.H{"transformers": transformers})
}

func loadTransformerInfo(path, filename string) (*models.TransformerInfo, error) {
	tc, err := config.LoadTransformerFile(path)
	if err != nil {
		return nil, err
	}

	// "tx_07_market_road.yaml" -> "tx_07_market_road"
	id := strings.TrimSuffix(filename, ".yaml")
	name := tc.Name
	if name == "" {
		name = id
	}
	tx := tc.ToModel()

	return &models.TransformerInfo{
		ID:   id,
		Name: name,
		File: path,
		Specs: models.TransformerSpecs{
			RatingKVA: tx.Rating.KVA(),
			RatedLoad: tx.Rating.RatedLoad(),
			LegCount:  len(tx.Legs),
		},
	}, nil
}
