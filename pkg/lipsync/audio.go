package lipsync

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

var ErrUnsupportedAudio = errors.New("lipsync: unsupported audio format")

// PCM is mono audio normalised to [-1, 1].
type PCM struct {
	Samples    []float64
	SampleRate int
}

// Duration in seconds.
func (p *PCM) Duration() float64 {
	if p == nil || p.SampleRate <= 0 {
		return 0
	}
	return float64(len(p.Samples)) / float64(p.SampleRate)
}

// DecodeAudio reads a 16-bit PCM WAV or an MP3 clip into mono samples.
func DecodeAudio(data []byte) (*PCM, error) {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return decodeWAV(data)
	case isMP3(data):
		return decodeMP3(data)
	default:
		return nil, ErrUnsupportedAudio
	}
}

func isMP3(data []byte) bool {
	if len(data) >= 3 && string(data[0:3]) == "ID3" {
		return true
	}
	return len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}

func decodeWAV(data []byte) (*PCM, error) {
	var (
		channels      int
		sampleRate    int
		bitsPerSample int
		haveFmt       bool
	)
	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8

		switch id {
		case "fmt ":
			if body+16 > len(data) {
				return nil, fmt.Errorf("wav: truncated fmt chunk: %w", ErrUnsupportedAudio)
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != 1 {
				return nil, fmt.Errorf("wav: audio format %d: %w", format, ErrUnsupportedAudio)
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("wav: data before fmt: %w", ErrUnsupportedAudio)
			}
			if bitsPerSample != 16 || channels <= 0 || sampleRate <= 0 {
				return nil, fmt.Errorf("wav: %d-bit %d channel: %w", bitsPerSample, channels, ErrUnsupportedAudio)
			}
			end := body + size
			// streamed WAVs carry placeholder sizes
			if size == 0 || end > len(data) {
				end = len(data)
			}
			return &PCM{
				Samples:    s16leToMono(data[body:end], channels),
				SampleRate: sampleRate,
			}, nil
		}
		offset = body + size + size%2
	}
	return nil, fmt.Errorf("wav: no data chunk: %w", ErrUnsupportedAudio)
}

func decodeMP3(data []byte) (*PCM, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	// go-mp3 always yields 16-bit little endian stereo
	return &PCM{
		Samples:    s16leToMono(raw, 2),
		SampleRate: dec.SampleRate(),
	}, nil
}

func s16leToMono(raw []byte, channels int) []float64 {
	frameSize := 2 * channels
	frames := len(raw) / frameSize
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			at := i*frameSize + c*2
			sum += float64(int16(binary.LittleEndian.Uint16(raw[at:at+2]))) / 32768
		}
		out[i] = sum / float64(channels)
	}
	return out
}
