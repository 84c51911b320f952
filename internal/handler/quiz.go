package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Becker23/projeto-cd-ia/internal/models"
	"github.com/Becker23/projeto-cd-ia/internal/quiz"
)

type QuizHandler interface {
	StartRound(c *gin.Context)
	SubmitGuess(c *gin.Context)
	Reset(c *gin.Context)
}

type quizHandler struct {
	engine *quiz.Engine
	logger *zap.Logger
}

func NewQuizHandler(engine *quiz.Engine, logger *zap.Logger) QuizHandler {
	return &quizHandler{engine: engine, logger: logger}
}

// StartRound handles POST /api/v1/quiz/round
func (h *quizHandler) StartRound(c *gin.Context) {
	// The body is optional: no session id means a new session.
	var req models.QuizRoundRequest
	_ = c.ShouldBindJSON(&req)

	sessionID, round, score, err := h.engine.StartRound(req.SessionID)
	if err != nil {
		h.logger.Error("Failed to start quiz round", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start round"})
		return
	}

	c.JSON(http.StatusOK, models.QuizRoundResponse{
		SessionID: sessionID,
		RoundID:   round.ID,
		Text:      round.Excerpt,
		Score:     score,
	})
}

// SubmitGuess handles POST /api/v1/quiz/guess
func (h *quizHandler) SubmitGuess(c *gin.Context) {
	var req models.QuizGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	correct, answer, score, err := h.engine.SubmitGuess(req.SessionID, req.RoundID, req.Guess)
	if err != nil {
		switch {
		case errors.Is(err, quiz.ErrInvalidGuess):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, quiz.ErrUnknownSession), errors.Is(err, quiz.ErrUnknownRound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, quiz.ErrRoundClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "round already answered"})
		default:
			h.logger.Error("Failed to submit guess", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit guess"})
		}
		return
	}

	c.JSON(http.StatusOK, models.QuizGuessResponse{
		Correct: correct,
		Answer:  answer,
		Score:   score,
	})
}

// Reset handles POST /api/v1/quiz/reset
func (h *quizHandler) Reset(c *gin.Context) {
	var req models.QuizResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.engine.Reset(req.SessionID); err != nil {
		if errors.Is(err, quiz.ErrUnknownSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to reset quiz session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"score": 0})
}
