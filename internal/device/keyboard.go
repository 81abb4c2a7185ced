package device

import (
	"sync"
	"time"
)

// KeyboardKey approximates a straight key with the terminal keyboard. A
// terminal reports key repeats rather than releases, so the key counts as
// held while taps keep arriving within the hold window and as released
// once they stop. Hold must exceed the OS autorepeat interval. Tap and
// Pressed are called from different goroutines.
type KeyboardKey struct {
	mu   sync.Mutex
	last time.Time
	hold time.Duration
}

// NewKeyboardKey returns a key that stays pressed for hold after each tap.
func NewKeyboardKey(hold time.Duration) *KeyboardKey {
	return &KeyboardKey{hold: hold}
}

// Tap registers one keystroke, extending the current press.
func (k *KeyboardKey) Tap() {
	k.mu.Lock()
	k.last = time.Now()
	k.mu.Unlock()
}

// Pressed reports whether a tap arrived within the hold window.
func (k *KeyboardKey) Pressed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.last.IsZero() {
		return false
	}
	return time.Since(k.last) < k.hold
}
