package lipsync

import (
	"time"
	"unicode/utf8"
)

const (
	// CueInterval is the cadence of estimated cues.
	CueInterval = 100 * time.Millisecond
	// PerCharDuration is the crude speaking rate used when no timing is known.
	PerCharDuration = 80 * time.Millisecond
)

var talkPattern = []Shape{
	ShapeSlightlyOpen,
	ShapeOpen,
	ShapeWideOpen,
	ShapeOpen,
	ShapeRounded,
	ShapeSlightlyOpen,
}

// EstimateDuration guesses how long text takes to speak. Best effort only.
func EstimateDuration(text string) time.Duration {
	return time.Duration(utf8.RuneCountInString(text)) * PerCharDuration
}

// CuesFromDuration produces a fixed talking pattern at CueInterval spanning d.
// The final cue is always closed so the mouth rests when audio ends.
func CuesFromDuration(d time.Duration) []Cue {
	totalMs := d.Milliseconds()
	if totalMs <= 0 {
		return []Cue{}
	}
	step := CueInterval.Milliseconds()
	cues := make([]Cue, 0, totalMs/step+1)
	for i, startMs := 0, int64(0); startMs < totalMs; i, startMs = i+1, startMs+step {
		endMs := min(startMs+step, totalMs)
		cues = append(cues, Cue{
			Start: msToSec(startMs),
			End:   msToSec(endMs),
			Shape: talkPattern[i%len(talkPattern)],
		})
	}
	cues[len(cues)-1].Shape = ShapeClosed
	return cues
}

func msToSec(ms int64) float64 {
	return float64(ms) / 1000
}
