package lipsync

import "math"

// Energy thresholds relative to the loudest window in the clip.
const (
	silenceLevel = 0.08
	lowLevel     = 0.3
	midLevel     = 0.6
)

// CuesFromAmplitude estimates cues from waveform energy, one window per
// CueInterval. Loudness picks how far the mouth opens; sustained mid energy
// alternates with a rounded shape so long vowels do not look frozen. The final
// cue is always closed.
func CuesFromAmplitude(pcm *PCM) []Cue {
	if pcm == nil || pcm.SampleRate <= 0 || len(pcm.Samples) == 0 {
		return []Cue{}
	}
	window := max(pcm.SampleRate*int(CueInterval.Milliseconds())/1000, 1)

	levels := make([]float64, 0, len(pcm.Samples)/window+1)
	peak := 0.0
	for at := 0; at < len(pcm.Samples); at += window {
		rms := rootMeanSquare(pcm.Samples[at:min(at+window, len(pcm.Samples))])
		levels = append(levels, rms)
		peak = max(peak, rms)
	}

	shapes := make([]Shape, len(levels))
	for i, rms := range levels {
		level := 0.0
		if peak > 0 {
			level = rms / peak
		}
		shapes[i] = shapeForLevel(level)
		if shapes[i] == ShapeOpen && i > 0 && shapes[i-1] == ShapeOpen {
			shapes[i] = ShapeRounded
		}
	}
	shapes[len(shapes)-1] = ShapeClosed

	rate := float64(pcm.SampleRate)
	cues := make([]Cue, 0, len(shapes))
	for i, shape := range shapes {
		start := float64(i*window) / rate
		end := float64(min((i+1)*window, len(pcm.Samples))) / rate
		cues = appendCue(cues, Cue{Start: start, End: end, Shape: shape})
	}
	return cues
}

func shapeForLevel(level float64) Shape {
	switch {
	case level < silenceLevel:
		return ShapeClosed
	case level < lowLevel:
		return ShapeSlightlyOpen
	case level < midLevel:
		return ShapeOpen
	default:
		return ShapeWideOpen
	}
}

func rootMeanSquare(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// EstimateCues derives cues from the audio itself when it can be decoded and
// falls back to a duration guess based on the spoken text otherwise.
func EstimateCues(audio []byte, text string) []Cue {
	if pcm, err := DecodeAudio(audio); err == nil && len(pcm.Samples) > 0 {
		return CuesFromAmplitude(pcm)
	}
	return CuesFromDuration(EstimateDuration(text))
}
