package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Becker23/projeto-cd-ia/internal/handler"
	"github.com/Becker23/projeto-cd-ia/internal/predictor"
	"github.com/Becker23/projeto-cd-ia/internal/quiz"
	"github.com/Becker23/projeto-cd-ia/internal/repository"
)

// Server exposes the prediction and quiz API over HTTP. The predictor's
// artifact bundle is loaded once before the server starts and treated as
// immutable for the process lifetime.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer wires handlers and routes.
func NewServer(p *predictor.Predictor, engine *quiz.Engine, db *sqlx.DB, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	s := &Server{
		router: router,
		logger: logger,
	}
	s.setupRoutes(p, engine, db)
	return s
}

func (s *Server) setupRoutes(p *predictor.Predictor, engine *quiz.Engine, db *sqlx.DB) {
	predictHandler := handler.NewPredictHandler(p, s.logger)
	quizHandler := handler.NewQuizHandler(engine, s.logger)
	datasetHandler := handler.NewDatasetHandler(repository.NewDatasetRepository(db, s.logger), s.logger)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"model_loaded": true,
			"run_id":       p.RunID(),
		})
	})

	api := s.router.Group("/api/v1")
	{
		api.POST("/predict", predictHandler.Predict)
		api.GET("/model/metrics", predictHandler.GetModelMetrics)
		api.GET("/dataset/stats", datasetHandler.GetStats)

		api.POST("/quiz/round", quizHandler.StartRound)
		api.POST("/quiz/guess", quizHandler.SubmitGuess)
		api.POST("/quiz/reset", quizHandler.Reset)
	}
}

// Run starts the HTTP server on the given port. It blocks until the
// listener fails.
func (s *Server) Run(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	s.logger.Info("Server starting", zap.String("port", port))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
