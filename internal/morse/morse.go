// Package morse defines keying symbols, sequences, and the character table.
package morse

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Symbol is a single keyed element.
type Symbol byte

const (
	Dot  Symbol = '.'
	Dash Symbol = '-'
)

// Units returns the nominal sounding length of the symbol in dot units.
func (s Symbol) Units() int {
	if s == Dash {
		return 3
	}
	return 1
}

func (s Symbol) String() string {
	return string(s)
}

// Pretty returns the symbol as a display glyph.
func (s Symbol) Pretty() string {
	if s == Dash {
		return "−"
	}
	return "·"
}

// Word returns the symbol spelled out for beginners.
func (s Symbol) Word() string {
	if s == Dash {
		return "DASH"
	}
	return "DOT"
}

// Sequence is an ordered run of symbols, stored in ".-" form.
type Sequence string

// Len returns the number of symbols.
func (q Sequence) Len() int {
	return len(q)
}

// At returns the i-th symbol.
func (q Sequence) At(i int) Symbol {
	return Symbol(q[i])
}

// Pretty returns the sequence using display glyphs.
func (q Sequence) Pretty() string {
	var b strings.Builder
	for i := 0; i < len(q); i++ {
		b.WriteString(q.At(i).Pretty())
	}
	return b.String()
}

// Words returns the sequence spelled out, one word per symbol.
func (q Sequence) Words() string {
	words := make([]string, 0, len(q))
	for i := 0; i < len(q); i++ {
		words = append(words, q.At(i).Word())
	}
	return strings.Join(words, " ")
}

// ParseSequence validates a ".-" string and returns it as a Sequence.
func ParseSequence(s string) (Sequence, error) {
	for i := 0; i < len(s); i++ {
		if b := Symbol(s[i]); b != Dot && b != Dash {
			return "", fmt.Errorf("sequence %q: invalid symbol %q at position %d", s, s[i], i+1)
		}
	}
	return Sequence(s), nil
}

var codes = map[rune]Sequence{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
	'.': ".-.-.-", ',': "--..--", '?': "..--..", '/': "-..-.",
	'-': "-....-", '(': "-.--.", ')': "-.--.-",
}

// Lookup returns the reference sequence for a character. Lowercase letters
// fold to uppercase. The second return is false for characters with no code.
func Lookup(r rune) (Sequence, bool) {
	q, ok := codes[unicode.ToUpper(r)]
	return q, ok
}

// Characters returns every character the table knows, sorted.
func Characters() []rune {
	chars := make([]rune, 0, len(codes))
	for r := range codes {
		chars = append(chars, r)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	return chars
}

// Charset names understood by Charset.
const (
	CharsetLetters     = "letters"
	CharsetDigits      = "digits"
	CharsetPunctuation = "punctuation"
	CharsetAll         = "all"
)

// Charset returns the sorted characters of a named practice set. Any other
// name is treated as an explicit list of characters, each of which must be
// in the table.
func Charset(name string) ([]rune, error) {
	switch name {
	case CharsetLetters:
		return charRange('A', 'Z'), nil
	case CharsetDigits:
		return charRange('0', '9'), nil
	case CharsetPunctuation:
		return []rune{'(', ')', ',', '-', '.', '/', '?'}, nil
	case CharsetAll:
		return Characters(), nil
	}

	seen := make(map[rune]struct{})
	chars := make([]rune, 0, len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		r = unicode.ToUpper(r)
		if _, ok := codes[r]; !ok {
			return nil, fmt.Errorf("charset %q: no code for character %q", name, r)
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		chars = append(chars, r)
	}
	if len(chars) == 0 {
		return nil, fmt.Errorf("charset %q: no characters", name)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	return chars, nil
}

func charRange(lo, hi rune) []rune {
	chars := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		chars = append(chars, r)
	}
	return chars
}
