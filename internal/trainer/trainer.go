// Package trainer runs the practice loop: play a reference, capture the
// keyed attempt, score it, and hand the result back to the caller's event
// loop.
package trainer

import (
	"sync"

	"go.uber.org/zap"

	"github.com/verte-zerg/morsekey/internal/audio"
	"github.com/verte-zerg/morsekey/internal/keying"
	"github.com/verte-zerg/morsekey/internal/morse"
	"github.com/verte-zerg/morsekey/internal/score"
)

// Kind tells the caller what a Result describes.
type Kind int

const (
	// Attempt is a scored practice attempt.
	Attempt Kind = iota
	// Listen is playback with no capture.
	Listen
	// WordGap is the seven-unit pause between words.
	WordGap
)

// Result carries one finished task back to the caller.
type Result struct {
	Kind   Kind
	Char   rune
	Pass   bool
	Report score.Report
}

// Session coordinates playback, capture, and scoring. Work runs on a
// worker of size one; at most one task is in flight, enforced by the busy
// gate, and results come back through a single-slot channel so the
// caller's loop never blocks on the decoder.
type Session struct {
	recorder *keying.Recorder
	player   *audio.Player
	scorer   *score.Scorer
	logger   *zap.SugaredLogger

	results chan Result

	mu   sync.Mutex
	busy bool
}

// NewSession wires a session from its collaborators. logger may be nil.
func NewSession(recorder *keying.Recorder, player *audio.Player, scorer *score.Scorer, logger *zap.SugaredLogger) *Session {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Session{
		recorder: recorder,
		player:   player,
		scorer:   scorer,
		logger:   logger,
		results:  make(chan Result, 1),
	}
}

// Results returns the channel the worker hands results on. Each dispatched
// task produces exactly one Result.
func (s *Session) Results() <-chan Result {
	return s.results
}

// Busy reports whether a task is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Session) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *Session) releaseGate() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// Begin plays the reference for ch, captures one attempt, and scores it.
// It returns false when a task is already in flight or ch has no code.
func (s *Session) Begin(ch rune) bool {
	code, ok := morse.Lookup(ch)
	if !ok {
		return false
	}
	if !s.acquire() {
		return false
	}
	go func() {
		s.player.PlaySequence(code)
		decoded, durations := s.recorder.RecordAttempt()
		pass, report := s.scorer.Score(code, decoded, durations)
		s.logger.Debugw("attempt scored", "char", string(ch), "expected", string(code), "decoded", string(decoded), "pass", pass)
		s.results <- Result{Kind: Attempt, Char: ch, Pass: pass, Report: report}
	}()
	return true
}

// Play sounds the reference for ch without capturing. It returns false
// when a task is already in flight or ch has no code.
func (s *Session) Play(ch rune) bool {
	code, ok := morse.Lookup(ch)
	if !ok {
		return false
	}
	if !s.acquire() {
		return false
	}
	go func() {
		s.player.PlaySequence(code)
		s.results <- Result{Kind: Listen, Char: ch}
	}()
	return true
}

// Gap waits out the inter-word silence. It returns false when a task is
// already in flight.
func (s *Session) Gap() bool {
	if !s.acquire() {
		return false
	}
	go func() {
		s.player.WordGap()
		s.results <- Result{Kind: WordGap}
	}()
	return true
}

// Finish plays the verdict tone for an attempt and releases the busy
// gate. Call it for every Result received.
func (s *Session) Finish(r Result) {
	if r.Kind == Attempt {
		if r.Pass {
			s.player.FeedbackOK()
		} else {
			s.player.FeedbackBad()
		}
	}
	s.releaseGate()
}
