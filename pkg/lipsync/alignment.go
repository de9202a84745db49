package lipsync

import (
	"strings"
	"unicode"
)

// Alignment is per character timing reported by a synthesis provider.
// Starts and Ends are seconds from the start of the clip.
type Alignment struct {
	Chars  []string
	Starts []float64
	Ends   []float64
}

// Len is the number of usable characters, tolerating ragged slices.
func (a Alignment) Len() int {
	return min(len(a.Chars), len(a.Starts), len(a.Ends))
}

// CuesFromAlignment maps character timing onto mouth shapes. Cues start at 0,
// never overlap and leave no gaps up to the end of the last character: silence
// before the first character becomes a closed cue and every character holds
// its shape until the next one begins.
func CuesFromAlignment(a Alignment) []Cue {
	n := a.Len()
	cues := make([]Cue, 0, n)
	cursor := 0.0
	for i := 0; i < n; i++ {
		start := max(a.Starts[i], cursor)
		end := a.Ends[i]
		if i+1 < n {
			end = a.Starts[i+1]
		}
		end = max(end, start)

		if start > cursor {
			cues = appendCue(cues, Cue{Start: cursor, End: start, Shape: ShapeClosed})
		}
		cues = appendCue(cues, Cue{Start: start, End: end, Shape: ShapeForChar(a.Chars[i])})
		cursor = max(cursor, end)
	}
	return cues
}

// ShapeForChar approximates the viseme for a single written character.
func ShapeForChar(ch string) Shape {
	ch = strings.ToLower(strings.TrimSpace(ch))
	if ch == "" {
		return ShapeClosed
	}
	r := []rune(ch)[0]
	switch {
	case strings.ContainsRune("mbp", r):
		return ShapeClosed
	case strings.ContainsRune("fv", r):
		return ShapeTeethOnLip
	case strings.ContainsRune("ouwq", r):
		return ShapeRounded
	case r == 'a':
		return ShapeWideOpen
	case strings.ContainsRune("eiyh", r):
		return ShapeOpen
	case unicode.IsLetter(r), unicode.IsDigit(r):
		return ShapeSlightlyOpen
	default:
		return ShapeClosed
	}
}
