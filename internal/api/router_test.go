package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transformer-load/internal/api/models"
	"transformer-load/internal/config"
	"transformer-load/internal/diagnostics"
	"transformer-load/internal/model"
)

const presetYAML = `
transformer:
  name: TX-07 Market Road
  rating_kva: 200
  feeder_legs:
    - red_phase_current: 250
      yellow_phase_current: 50
      blue_phase_current: 50
      neutral_current: 0
`

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tx_07.yaml"), []byte(presetYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("transformer: ["), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignored"), 0o644))

	router := NewRouter(config.ServerConfig{
		TransformerDir: dir,
		StaticDir:      filepath.Join(dir, "no-static"),
	})
	return router, dir
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAssessmentAcceptsStringCurrents(t *testing.T) {
	router, _ := newTestRouter(t)
	body := `{"transformer": {"name": "T1", "rating_kva": "200", "feeder_legs": [
		{"red_phase_current": "100", "yellow_phase_current": 100, "blue_phase_current": "100", "neutral_current": ""}
	]}}`
	w := do(t, router, http.MethodPost, "/api/v1/assessment", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.AssessmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "T1", resp.Name)
	assert.InDelta(t, 266.8, resp.Assessment.RatedLoad, 1e-9)
	assert.InDelta(t, 100, resp.Assessment.AverageCurrent, 1e-9)
	assert.Equal(t, model.LevelNormal, resp.Assessment.NeutralWarningLevel)
}

func TestAssessmentWithoutRatingIsEmpty(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(t, router, http.MethodPost, "/api/v1/assessment", `{"transformer": {"feeder_legs": [{"red_phase_current": 5}]}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AssessmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.EmptyAssessment(), resp.Assessment)
}

func TestDiagnosisFromPreset(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(t, router, http.MethodPost, "/api/v1/diagnosis", `{"transformer_file": "tx_07"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.DiagnosisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "TX-07 Market Road", resp.Name)
	require.Len(t, resp.Lines, len(resp.Findings))
	assert.Equal(t, diagnostics.KindOverload, resp.Findings[0].Kind)
	assert.Equal(t, "🔴 OVERLOAD: Red phase on Leg 1 is at 93.7% of rated load (250.0A)", resp.Lines[0])
	assert.Equal(t, model.LevelCritical, resp.Assessment.ImbalanceWarningLevel)
}

func TestDiagnosisOverridesPreset(t *testing.T) {
	router, _ := newTestRouter(t)
	body := `{"transformer_file": "tx_07.yaml", "transformer": {"feeder_legs": [
		{"red_phase_current": 100, "yellow_phase_current": 100, "blue_phase_current": 100}
	]}}`
	w := do(t, router, http.MethodPost, "/api/v1/diagnosis", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DiagnosisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Findings, 1)
	assert.Equal(t, diagnostics.KindInfo, resp.Findings[0].Kind)
}

func TestDiagnosisNoLegs(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(t, router, http.MethodPost, "/api/v1/diagnosis", `{"transformer": {"rating_kva": 100}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DiagnosisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, diagnostics.Diagnose(model.TransformerRating{RatingKVA: 100}, nil).Lines(), resp.Lines)
}

func TestDiagnosisErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/diagnosis", `{"transformer": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")

	w = do(t, router, http.MethodPost, "/api/v1/diagnosis", `{"transformer_file": "../../etc/passwd"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "TRANSFORMER_NOT_FOUND")

	w = do(t, router, http.MethodPost, "/api/v1/diagnosis", `{"transformer_file": "broken"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TRANSFORMER")

	legs := make([]model.FeederLeg, model.MaxFeederLegs+1)
	raw, err := json.Marshal(map[string]any{"transformer": map[string]any{"rating_kva": 100, "feeder_legs": legs}})
	require.NoError(t, err)
	w = do(t, router, http.MethodPost, "/api/v1/diagnosis", string(raw))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at most 8 feeder legs")
}

func TestListTransformers(t *testing.T) {
	router, dir := newTestRouter(t)
	w := do(t, router, http.MethodGet, "/api/v1/transformers", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Transformers []models.TransformerInfo `json:"transformers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Transformers, 1)
	info := resp.Transformers[0]
	assert.Equal(t, "tx_07", info.ID)
	assert.Equal(t, "TX-07 Market Road", info.Name)
	assert.Equal(t, filepath.Join(dir, "tx_07.yaml"), info.File)
	assert.Equal(t, 200.0, info.Specs.RatingKVA)
	assert.Equal(t, 1, info.Specs.LegCount)
}

func TestListThresholds(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(t, router, http.MethodGet, "/api/v1/thresholds", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kva_to_rated_current"`)
	assert.Contains(t, w.Body.String(), `1.334`)
}

func TestRankFleet(t *testing.T) {
	router, _ := newTestRouter(t)
	body := `{"transformers": [
		{"transformer": {"name": "calm", "rating_kva": 200, "feeder_legs": [{"red_phase_current": 50, "yellow_phase_current": 50, "blue_phase_current": 50}]}},
		{"transformer_file": "tx_07"}
	]}`
	w := do(t, router, http.MethodPost, "/api/v1/fleet/rank", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.FleetRankResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rankings, 2)
	assert.Equal(t, "TX-07 Market Road", resp.Rankings[0].Name)
	assert.Equal(t, 1, resp.Rankings[0].Rank)
	assert.Equal(t, "calm", resp.Rankings[1].Name)

	w = do(t, router, http.MethodPost, "/api/v1/fleet/rank", `{"transformers": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/fleet/rank", `{"transformers": [{"transformer_file": "missing"}]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"index":0`)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(config.ServerConfig{
		TransformerDir: t.TempDir(),
		AllowedOrigins: []string{"https://ops.example"},
	})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/diagnosis", nil)
	req.Header.Set("Origin", "https://ops.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://ops.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStaticFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<html>app</html>"), 0o644))
	router := NewRouter(config.ServerConfig{TransformerDir: t.TempDir(), StaticDir: static})

	w := do(t, router, http.MethodGet, "/surveys/42", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "app")

	w = do(t, router, http.MethodGet, "/api/v1/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
