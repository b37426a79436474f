package data

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func writeSurvey(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSurveyJSONDefaultsName(t *testing.T) {
	dir := t.TempDir()
	path := writeSurvey(t, dir, "tx-09.json", `{"rating_kva": 100, "feeder_legs": [{"red_phase_current": "12"}]}`)

	s, err := LoadSurveyJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "tx-09", s.Name)
	assert.Equal(t, 100.0, s.RatingKVA.Float())
	assert.Equal(t, 12.0, s.FeederLegs[0].RedPhaseCurrent.Float())
}

func TestLoadSurveyJSONBadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSurvey(t, dir, "broken.json", `{"feeder_legs": [`)
	_, err := LoadSurveyJSON(path)
	assert.ErrorContains(t, err, "parse survey")
}

func TestLoadSurveysFromDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeSurvey(t, dir, "b.json", `{"name": "B", "rating_kva": 200}`)
	writeSurvey(t, dir, "a.json", `{"name": "A", "rating_kva": 100}`)
	writeSurvey(t, dir, "notes.txt", `ignored`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	extra := writeSurvey(t, t.TempDir(), "c.json", `{"name": "C"}`)

	surveys, err := LoadSurveys(context.Background(), []string{dir, extra})
	require.NoError(t, err)
	require.Len(t, surveys, 3)
	names := []string{surveys[0].Name, surveys[1].Name, surveys[2].Name}
	assert.ElementsMatch(t, []string{"A", "B", "C"}, names)
}

func TestLoadSurveysStopsOnError(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeSurvey(t, dir, "good.json", `{"name": "ok"}`)
	writeSurvey(t, dir, "bad.json", `not json`)

	_, err := LoadSurveys(context.Background(), []string{dir})
	assert.Error(t, err)

	_, err = LoadSurveys(context.Background(), []string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "fleet.json")
	require.NoError(t, SaveJSON(map[string]int{"transformers": 2}, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]int
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 2, got["transformers"])
}
