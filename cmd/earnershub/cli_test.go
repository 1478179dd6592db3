package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"earnershub/internal/config"
	"earnershub/internal/models"
	"earnershub/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const seedCSV = "Date,Review,Sentiment\n2024-01-01,great app,positive\n2024-01-02,scam stole money,negative\n"

// useTestConfig points the command globals at files under a temp dir
func useTestConfig(t *testing.T, seed string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	c := &config.Config{}
	c.Server.Mode = "test"
	c.Data.ReviewsPath = filepath.Join(dir, "raw", "review_data.csv")
	c.Data.SourcesPath = filepath.Join(dir, "raw", "earning_sources.csv")
	c.PredictionLog.Driver = "sqlite"
	c.PredictionLog.DSN = filepath.Join(dir, "db", "predictions.db")

	if seed != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(c.Data.ReviewsPath), 0755))
		require.NoError(t, os.WriteFile(c.Data.ReviewsPath, []byte(seed), 0644))
	}

	cfg, logger = c, zap.NewNop()
	t.Cleanup(func() { cfg, logger = nil, nil })
	return c
}

func run(t *testing.T, fn func(*cobra.Command, []string) error, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	err := fn(cmd, args)
	return out.String(), err
}

func TestSubmitAndListReviews(t *testing.T) {
	useTestConfig(t, seedCSV)

	out, err := run(t, runSubmit, "great", "app")
	require.NoError(t, err)
	assert.Contains(t, out, "Sentiment: POSITIVE")
	assert.Contains(t, out, "Credibility: RISKY App")

	out, err = run(t, runReviews)
	require.NoError(t, err)
	assert.Contains(t, out, "scam stole money")
	assert.Contains(t, out, "Total: 3 reviews")

	out, err = run(t, runCredibility)
	require.NoError(t, err)
	assert.Contains(t, out, "Positive: 2  Negative: 1")
}

func TestSubmitWithoutData(t *testing.T) {
	useTestConfig(t, "")

	_, err := run(t, runSubmit, "hello")
	assert.True(t, errors.Is(err, models.ErrInsufficientData))

	out, err := run(t, runReviews)
	require.NoError(t, err)
	assert.Contains(t, out, "No reviews yet.")

	out, err = run(t, runCredibility)
	require.NoError(t, err)
	assert.Contains(t, out, "Not enough reviews yet")
}

func TestClassifyCommand(t *testing.T) {
	c := useTestConfig(t, seedCSV)

	out, err := run(t, runClassify, "scam")
	require.NoError(t, err)
	assert.Equal(t, "Sentiment: NEGATIVE\n", out)

	data, err := os.ReadFile(c.Data.ReviewsPath)
	require.NoError(t, err)
	assert.Equal(t, seedCSV, string(data))
}

func TestSourcesCommands(t *testing.T) {
	useTestConfig(t, "")
	t.Cleanup(func() {
		sourceType = models.SourceTypeAll
		sourceInput = models.SourceRequest{}
	})

	sourceInput = models.SourceRequest{
		Name:        "Tube Cash",
		Type:        "youtube channel",
		Link:        "https://yt.example",
		SubmittedBy: "dee",
		TrustStatus: "risky",
	}
	out, err := run(t, runSourcesAdd)
	require.NoError(t, err)
	assert.Equal(t, "Added Tube Cash (YouTube Channel, Risky)\n", out)

	sourceInput.Name = ""
	_, err = run(t, runSourcesAdd)
	assert.True(t, errors.Is(err, models.ErrValidation))

	sourceType = "Website"
	out, err = run(t, runSourcesList)
	require.NoError(t, err)
	assert.Equal(t, "No sources listed for Website yet.\n", out)

	sourceType = "YouTube Channel"
	out, err = run(t, runSourcesList)
	require.NoError(t, err)
	assert.Contains(t, out, "Tube Cash")
	assert.Contains(t, out, "Total: 1 sources (YouTube Channel)")
}

func TestMigrateCommand(t *testing.T) {
	c := useTestConfig(t, "")

	out, err := run(t, runMigrate)
	require.NoError(t, err)
	assert.Equal(t, "Prediction log schema is up to date (sqlite)\n", out)

	_, err = os.Stat(c.PredictionLog.DSN)
	assert.NoError(t, err)
}

func TestRouterWithPredictionLog(t *testing.T) {
	c := useTestConfig(t, seedCSV)
	c.PredictionLog.Enabled = true
	gin.SetMode(gin.TestMode)

	a, err := newApp(c, logger)
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.predictions)

	router := newRouter(a, logger)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", strings.NewReader(`{"text":"great app"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "cli-test")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "cli-test", w.Header().Get("X-Request-ID"))

	records, err := a.predictions.Latest(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "cli-test", records[0].RequestID)
	assert.Equal(t, "positive", records[0].Label)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/predictions?limit=1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotifierDisabledByDefault(t *testing.T) {
	c := useTestConfig(t, "")
	assert.IsType(t, notify.Nop{}, newNotifier(c, logger))
}
