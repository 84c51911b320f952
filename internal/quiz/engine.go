// Package quiz implements the guess-the-origin game. Rounds sample the
// cleaned dataset carried by the artifact bundle; per-session score is
// in-process state with TTL expiry.
package quiz

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/Becker23/projeto-cd-ia/internal/models"
)

var (
	// ErrEmptyPool means the dataset snapshot had no usable samples.
	ErrEmptyPool = errors.New("quiz: sample pool is empty")
	// ErrUnknownSession is returned for expired or never-created sessions.
	ErrUnknownSession = errors.New("quiz: unknown session")
	// ErrUnknownRound is returned when the round id does not belong to
	// the session.
	ErrUnknownRound = errors.New("quiz: unknown round")
	// ErrRoundClosed rejects a second guess against an answered round.
	ErrRoundClosed = errors.New("quiz: round already answered")
	// ErrInvalidGuess rejects guesses outside the {human, ai} label set.
	ErrInvalidGuess = errors.New("quiz: guess must be \"human\" or \"ai\"")
)

// Round is one sampled excerpt presented to the player. Once answered it
// becomes immutable history.
type Round struct {
	ID       string
	Excerpt  string
	Answer   models.Label
	Guess    models.Label
	Answered bool
	Correct  bool
}

// session carries the mutable per-player state. Its mutex serializes
// concurrent guesses so a round transitions to answered exactly once.
type session struct {
	mu     sync.Mutex
	score  int
	rounds map[string]*Round
}

type poolItem struct {
	excerpt string
	answer  models.Label
}

// Engine draws quiz rounds and tracks session scores.
type Engine struct {
	pool     []poolItem
	sessions *cache.Cache
	createMu sync.Mutex
	logger   *zap.Logger
}

// NewEngine builds the sample pool from the bundle's dataset snapshot.
// Each sample is reduced to its first excerptWords words so the player
// sees a short excerpt rather than the full article. Sessions expire
// after sessionTTL of inactivity.
func NewEngine(ds *models.Dataset, excerptWords int, sessionTTL time.Duration, logger *zap.Logger) (*Engine, error) {
	pool := make([]poolItem, 0, ds.Len())
	for _, s := range ds.Samples {
		if s.CleanedText == "" {
			continue
		}
		pool = append(pool, poolItem{
			excerpt: excerpt(s.CleanedText, excerptWords),
			answer:  s.Label,
		})
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	logger.Info("Quiz pool ready", zap.Int("samples", len(pool)))
	return &Engine{
		pool:     pool,
		sessions: cache.New(sessionTTL, 10*time.Minute),
		logger:   logger,
	}, nil
}

// StartRound draws one sample uniformly at random and opens a round for
// the session. An empty sessionID creates a new session.
func (e *Engine) StartRound(sessionID string) (string, *Round, int, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	sess := e.getOrCreate(sessionID)

	item := e.pool[rand.Intn(len(e.pool))]
	round := &Round{
		ID:      uuid.NewString(),
		Excerpt: item.excerpt,
		Answer:  item.answer,
	}

	sess.mu.Lock()
	sess.rounds[round.ID] = round
	score := sess.score
	sess.mu.Unlock()

	e.touch(sessionID, sess)
	return sessionID, round, score, nil
}

// SubmitGuess resolves a round. The session score changes exactly once
// per round; a repeated submission is rejected with ErrRoundClosed and
// leaves the score untouched.
func (e *Engine) SubmitGuess(sessionID, roundID string, guess models.Label) (bool, models.Label, int, error) {
	if !guess.Valid() {
		return false, "", 0, ErrInvalidGuess
	}
	sess, ok := e.get(sessionID)
	if !ok {
		return false, "", 0, ErrUnknownSession
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	round, ok := sess.rounds[roundID]
	if !ok {
		return false, "", sess.score, ErrUnknownRound
	}
	if round.Answered {
		return false, "", sess.score, ErrRoundClosed
	}

	round.Answered = true
	round.Guess = guess
	round.Correct = guess == round.Answer
	if round.Correct {
		sess.score++
	}

	e.touch(sessionID, sess)
	return round.Correct, round.Answer, sess.score, nil
}

// Reset clears the session's score and round history.
func (e *Engine) Reset(sessionID string) error {
	sess, ok := e.get(sessionID)
	if !ok {
		return ErrUnknownSession
	}
	sess.mu.Lock()
	sess.score = 0
	sess.rounds = make(map[string]*Round)
	sess.mu.Unlock()
	e.touch(sessionID, sess)
	return nil
}

// PoolSize reports how many samples rounds are drawn from.
func (e *Engine) PoolSize() int { return len(e.pool) }

func (e *Engine) get(sessionID string) (*session, bool) {
	if v, ok := e.sessions.Get(sessionID); ok {
		return v.(*session), true
	}
	return nil, false
}

func (e *Engine) getOrCreate(sessionID string) *session {
	if sess, ok := e.get(sessionID); ok {
		return sess
	}
	e.createMu.Lock()
	defer e.createMu.Unlock()
	if sess, ok := e.get(sessionID); ok {
		return sess
	}
	sess := &session{rounds: make(map[string]*Round)}
	e.sessions.Set(sessionID, sess, cache.DefaultExpiration)
	return sess
}

// touch refreshes the session TTL after activity.
func (e *Engine) touch(sessionID string, sess *session) {
	e.sessions.Set(sessionID, sess, cache.DefaultExpiration)
}

// excerpt keeps the first n words of text, appending an ellipsis when
// the text was longer.
func excerpt(text string, n int) string {
	words := strings.Fields(text)
	if n <= 0 || len(words) <= n {
		return text
	}
	return strings.Join(words[:n], " ") + "..."
}
