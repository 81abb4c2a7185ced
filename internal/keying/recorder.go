// Package keying captures keyed input and classifies it into symbols.
package keying

import (
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/morsekey/internal/morse"
)

// Recorder drives edge waits to capture one keyed attempt at a time. It is
// synchronous and single-threaded; callers that need a responsive event
// loop dispatch RecordAttempt to a worker.
type Recorder struct {
	watcher  *EdgeWatcher
	out      Output
	params   Params
	sidetone bool
	logger   *zap.SugaredLogger
}

// NewRecorder returns a recorder reading in. While sidetone is enabled the
// raw key state is mirrored to out during capture. out may be nil when no
// indicator is attached, logger may be nil to discard press diagnostics.
func NewRecorder(in Input, out Output, clock Clock, params Params, sidetone bool, logger *zap.SugaredLogger) *Recorder {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Recorder{
		watcher:  NewEdgeWatcher(in, clock, params.PollInterval),
		out:      out,
		params:   params,
		sidetone: sidetone,
		logger:   logger,
	}
}

// RecordAttempt captures one attempt. It waits for the first press within
// the start timeout, then alternates release and press waits until either a
// press outlives the release timeout (stuck key) or the idle gap passes
// with no new press. Presses shorter than MinPress are dropped as contact
// noise. The decoded sequence and raw press durations come back in keying
// order; an attempt with no presses returns an empty sequence, not an
// error.
func (r *Recorder) RecordAttempt() (morse.Sequence, []time.Duration) {
	guard := acquireSidetone(r.out, r.sidetone)
	defer guard.release()

	pressAt, ok := r.watcher.WaitForEdge(Press, r.params.StartTimeout)
	if !ok {
		return "", nil
	}
	guard.keyDown()

	var symbols []byte
	var durations []time.Duration
	for {
		releaseAt, ok := r.watcher.WaitForEdge(Release, r.params.ReleaseTimeout)
		if !ok {
			// Stuck key. Keep what was accumulated.
			break
		}
		guard.keyUp()

		dur := releaseAt.Sub(pressAt)
		if dur < r.params.MinPress {
			r.logger.Debugw("ignored press", "ms", durationMs(dur))
		} else {
			sym := r.params.Classify(dur)
			symbols = append(symbols, byte(sym))
			durations = append(durations, dur)
			r.logger.Debugw("press", "ms", durationMs(dur), "units", r.params.UnitsOf(dur), "symbol", sym.String())
		}

		pressAt, ok = r.watcher.WaitForEdge(Press, r.params.EndIdle())
		if !ok {
			break
		}
		guard.keyDown()
	}

	return morse.Sequence(symbols), durations
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// sidetoneGuard owns the indicator for the duration of one capture and
// forces it off on every exit path.
type sidetoneGuard struct {
	out     Output
	enabled bool
}

func acquireSidetone(out Output, enabled bool) *sidetoneGuard {
	if out != nil {
		out.Off()
	}
	return &sidetoneGuard{out: out, enabled: enabled}
}

func (g *sidetoneGuard) keyDown() {
	if g.enabled && g.out != nil {
		g.out.On()
	}
}

func (g *sidetoneGuard) keyUp() {
	if g.enabled && g.out != nil {
		g.out.Off()
	}
}

func (g *sidetoneGuard) release() {
	if g.out != nil {
		g.out.Off()
	}
}
