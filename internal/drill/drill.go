// Package drill picks practice characters, weighted toward recent misses.
package drill

import (
	"math/rand"
	"time"
)

// Generator produces the next character to practice.
type Generator struct {
	rnd   *rand.Rand
	chars []rune
	last  rune
}

// New returns a Generator over chars seeded with the current time. chars
// must not be empty.
func New(chars []rune) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano())), chars: chars}
}

// Next picks the next practice character. Characters missed more often
// come up more, scaled by factor, and the previous pick never repeats back
// to back when another choice exists.
func (g *Generator) Next(misses map[rune]int, factor float64) rune {
	weights := make([]float64, len(g.chars))
	total := 0.0
	for i, ch := range g.chars {
		if ch == g.last && len(g.chars) > 1 {
			continue
		}
		w := 1.0 + float64(misses[ch])*factor
		weights[i] = w
		total += w
	}

	r := g.rnd.Float64() * total
	pick := g.chars[len(g.chars)-1]
	acc := 0.0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		acc += w
		if r <= acc {
			pick = g.chars[i]
			break
		}
	}
	g.last = pick
	return pick
}
