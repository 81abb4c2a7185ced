package audio

import (
	"time"

	"github.com/verte-zerg/morsekey/internal/keying"
	"github.com/verte-zerg/morsekey/internal/morse"
)

const (
	blipLen = 60 * time.Millisecond
	buzzLen = 250 * time.Millisecond
)

// Player sounds reference sequences and feedback patterns on an indicator.
// It works against any output, speaker or GPIO buzzer alike, by holding
// the indicator on for timed spans.
type Player struct {
	out   keying.Output
	clock keying.Clock
	unit  time.Duration
}

// NewPlayer returns a player sounding on out with the given dot unit.
func NewPlayer(out keying.Output, clock keying.Clock, unit time.Duration) *Player {
	return &Player{out: out, clock: clock, unit: unit}
}

func (p *Player) buzz(d time.Duration) {
	p.out.On()
	p.clock.Sleep(d)
	p.out.Off()
}

// PlaySymbol sounds one symbol followed by the intra-letter gap.
func (p *Player) PlaySymbol(s morse.Symbol) {
	p.buzz(time.Duration(s.Units()) * p.unit)
	p.clock.Sleep(p.unit)
}

// PlaySequence sounds a full sequence. The trailing silence completes the
// three-unit letter gap.
func (p *Player) PlaySequence(q morse.Sequence) {
	for i := 0; i < q.Len(); i++ {
		p.PlaySymbol(q.At(i))
	}
	p.clock.Sleep(2 * p.unit)
}

// PlayText sounds every coded character of text. Spaces become word gaps;
// characters without a code are skipped.
func (p *Player) PlayText(text string) {
	for _, r := range text {
		if r == ' ' {
			// The letter gap already covers three of the seven units.
			p.clock.Sleep(4 * p.unit)
			continue
		}
		q, ok := morse.Lookup(r)
		if !ok {
			continue
		}
		p.PlaySequence(q)
	}
}

// FeedbackOK sounds the two-blip pass pattern.
func (p *Player) FeedbackOK() {
	p.buzz(blipLen)
	p.clock.Sleep(blipLen)
	p.buzz(blipLen)
}

// FeedbackBad sounds the single fail buzz.
func (p *Player) FeedbackBad() {
	p.buzz(buzzLen)
}

// WordGap pauses for the seven-unit inter-word silence.
func (p *Player) WordGap() {
	p.clock.Sleep(7 * p.unit)
}
