// Package audio sounds the key sidetone, reference playback, and feedback
// patterns through the system speaker.
package audio

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// A short buffer keeps the sidetone close behind the key.
const bufferLen = time.Second / 20

// Speaker gates a continuous sine tone on and off, standing in for a
// hardware buzzer. On and Off are cheap; the streamer stays mounted for
// the life of the process.
type Speaker struct {
	ctrl *beep.Ctrl
}

// OpenSpeaker initializes the audio device and mounts a muted tone at the
// given frequency. volumeDB adjusts loudness in decibels, 0 for unchanged.
func OpenSpeaker(freq int, volumeDB float64) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(bufferLen)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	tone, err := generators.SinTone(sampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("tone generator: %w", err)
	}
	vol := &effects.Volume{
		Streamer: tone,
		Base:     2,
		Volume:   volumeDB,
		Silent:   false,
	}
	ctrl := &beep.Ctrl{Streamer: vol, Paused: true}
	speaker.Play(ctrl)
	return &Speaker{ctrl: ctrl}, nil
}

// On unmutes the tone.
func (s *Speaker) On() {
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
}

// Off mutes the tone.
func (s *Speaker) Off() {
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

// Close silences and unmounts the tone.
func (s *Speaker) Close() {
	speaker.Clear()
}
