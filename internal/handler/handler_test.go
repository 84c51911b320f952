package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Becker23/projeto-cd-ia/internal/artifact"
	"github.com/Becker23/projeto-cd-ia/internal/models"
	"github.com/Becker23/projeto-cd-ia/internal/predictor"
	"github.com/Becker23/projeto-cd-ia/internal/quiz"
	"github.com/Becker23/projeto-cd-ia/internal/repository"
	"github.com/Becker23/projeto-cd-ia/internal/trainer"
)

type stubDatasetRepo struct {
	stats *repository.DatasetStats
	err   error
}

func (s *stubDatasetRepo) SaveRun(string, []models.TextSample) error { return nil }
func (s *stubDatasetRepo) Stats() (*repository.DatasetStats, error) { return s.stats, s.err }

func fixtureDataset() *models.Dataset {
	ds := &models.Dataset{}
	for i := 0; i < 8; i++ {
		topic := fmt.Sprintf("topic%02d", i)
		ds.Samples = append(ds.Samples,
			models.TextSample{
				TopicKey:    topic,
				Label:       models.LabelHuman,
				CleanedText: fmt.Sprintf("scribbled messy notes margin doodle coffee stain draft%d", i),
			},
			models.TextSample{
				TopicKey:    topic,
				Label:       models.LabelAI,
				CleanedText: fmt.Sprintf("furthermore delve tapestry moreover comprehensive overview section%d", i),
			},
		)
	}
	return ds
}

func setupRouter(t *testing.T, datasetRepo repository.DatasetRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	ds := fixtureDataset()
	result, err := trainer.New(logger).Train(ds, trainer.Config{SplitRatio: 0.7, Seed: 42})
	require.NoError(t, err)
	bundle := artifact.NewBundle(result.Space, result.Model, result.Metrics, ds)

	engine, err := quiz.NewEngine(ds, 30, time.Hour, logger)
	require.NoError(t, err)

	predictH := NewPredictHandler(predictor.New(bundle), logger)
	quizH := NewQuizHandler(engine, logger)
	datasetH := NewDatasetHandler(datasetRepo, logger)

	r := gin.New()
	api := r.Group("/api/v1")
	{
		api.POST("/predict", predictH.Predict)
		api.GET("/model/metrics", predictH.GetModelMetrics)
		api.GET("/dataset/stats", datasetH.GetStats)
		api.POST("/quiz/round", quizH.StartRound)
		api.POST("/quiz/guess", quizH.SubmitGuess)
		api.POST("/quiz/reset", quizH.Reset)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPredictEndpoint(t *testing.T) {
	r := setupRouter(t, &stubDatasetRepo{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/predict",
		models.PredictRequest{Text: "Furthermore, a comprehensive overview delving into the tapestry"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.LabelAI, resp.Label)
	assert.GreaterOrEqual(t, resp.Confidence, 0.5)
	assert.Less(t, resp.Confidence, 1.0)
}

func TestPredictEndpointRejectsEmptyText(t *testing.T) {
	r := setupRouter(t, &stubDatasetRepo{})

	// Missing field fails binding.
	w := doJSON(t, r, http.MethodPost, "/api/v1/predict", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Whitespace passes binding but cleans down to nothing.
	w = doJSON(t, r, http.MethodPost, "/api/v1/predict", models.PredictRequest{Text: "   \n\t "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestModelMetricsEndpoint(t *testing.T) {
	r := setupRouter(t, &stubDatasetRepo{})

	w := doJSON(t, r, http.MethodGet, "/api/v1/model/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RunID   string         `json:"run_id"`
		Metrics models.Metrics `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, resp.Metrics.NTest, resp.Metrics.ConfusionMatrix.Sum())
}

func TestDatasetStatsEndpoint(t *testing.T) {
	r := setupRouter(t, &stubDatasetRepo{stats: &repository.DatasetStats{
		RunID: "run-1", Total: 16, Humans: 8, AIs: 8, Topics: 8,
	}})

	w := doJSON(t, r, http.MethodGet, "/api/v1/dataset/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "run-1")
}

func TestDatasetStatsEndpointFailure(t *testing.T) {
	r := setupRouter(t, &stubDatasetRepo{err: errors.New("no rows")})
	w := doJSON(t, r, http.MethodGet, "/api/v1/dataset/stats", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestQuizFlow(t *testing.T) {
	r := setupRouter(t, &stubDatasetRepo{})

	// Starting without a body creates a fresh session.
	w := doJSON(t, r, http.MethodPost, "/api/v1/quiz/round", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var round models.QuizRoundResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &round))
	require.NotEmpty(t, round.SessionID)
	require.NotEmpty(t, round.RoundID)
	require.NotEmpty(t, round.Text)
	assert.Zero(t, round.Score)

	// The excerpt alone must not leak the answer, so guess both ways and
	// read the revealed label from the response.
	w = doJSON(t, r, http.MethodPost, "/api/v1/quiz/guess", models.QuizGuessRequest{
		SessionID: round.SessionID,
		RoundID:   round.RoundID,
		Guess:     models.LabelHuman,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var guess models.QuizGuessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &guess))
	assert.True(t, guess.Answer.Valid())
	if guess.Correct {
		assert.Equal(t, 1, guess.Score)
	} else {
		assert.Zero(t, guess.Score)
	}

	// Guessing the same round again conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/v1/quiz/guess", models.QuizGuessRequest{
		SessionID: round.SessionID,
		RoundID:   round.RoundID,
		Guess:     models.LabelAI,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Reset brings the score back to zero.
	w = doJSON(t, r, http.MethodPost, "/api/v1/quiz/reset", models.QuizResetRequest{
		SessionID: round.SessionID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"score": 0}`, w.Body.String())
}

func TestQuizGuessUnknownSession(t *testing.T) {
	r := setupRouter(t, &stubDatasetRepo{})
	w := doJSON(t, r, http.MethodPost, "/api/v1/quiz/guess", models.QuizGuessRequest{
		SessionID: "missing",
		RoundID:   "missing",
		Guess:     models.LabelAI,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuizGuessInvalidLabel(t *testing.T) {
	r := setupRouter(t, &stubDatasetRepo{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/quiz/round", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var round models.QuizRoundResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &round))

	w = doJSON(t, r, http.MethodPost, "/api/v1/quiz/guess", gin.H{
		"session_id": round.SessionID,
		"round_id":   round.RoundID,
		"guess":      "robot",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuizResetUnknownSession(t *testing.T) {
	r := setupRouter(t, &stubDatasetRepo{})
	w := doJSON(t, r, http.MethodPost, "/api/v1/quiz/reset", models.QuizResetRequest{SessionID: "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
