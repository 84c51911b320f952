package models

// PredictRequest is the body of POST /api/v1/predict.
type PredictRequest struct {
	Text string `json:"text" binding:"required"`
}

// PredictResponse carries the predicted class and a bounded confidence
// score. Confidence is a logistic squash of the classifier margin, a
// relative separation proxy in [0,1], not a calibrated probability.
type PredictResponse struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
}

// QuizRoundRequest starts a new round. SessionID is optional; when empty
// a new session is created and its ID returned.
type QuizRoundRequest struct {
	SessionID string `json:"session_id"`
}

// QuizRoundResponse carries the sampled excerpt with the label withheld.
type QuizRoundResponse struct {
	SessionID string `json:"session_id"`
	RoundID   string `json:"round_id"`
	Text      string `json:"text"`
	Score     int    `json:"score"`
}

// QuizGuessRequest submits a guess for an open round.
type QuizGuessRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	RoundID   string `json:"round_id" binding:"required"`
	Guess     Label  `json:"guess" binding:"required"`
}

// QuizGuessResponse reveals the true label and the updated session score.
type QuizGuessResponse struct {
	Correct bool  `json:"correct"`
	Answer  Label `json:"answer"`
	Score   int   `json:"score"`
}

// QuizResetRequest clears a session's score and history.
type QuizResetRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}
