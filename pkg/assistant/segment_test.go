package assistant

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pushAll(b *SentenceBuffer, deltas ...string) []string {
	var out []string
	for _, d := range deltas {
		out = append(out, b.Push(d)...)
	}
	if rest := b.Flush(); rest != "" {
		out = append(out, rest)
	}
	return out
}

func TestSentenceBufferSplitsAcrossDeltas(t *testing.T) {
	b := NewSentenceBuffer(0)
	got := pushAll(b, "Hel", "lo there", "! How are", " you? I'm fine.")
	assert.Equal(t, []string{"Hello there!", "How are you?", "I'm fine."}, got)
}

func TestSentenceBufferHoldsTrailingTerminator(t *testing.T) {
	b := NewSentenceBuffer(0)
	assert.Empty(t, b.Push("It costs 3."))
	assert.Empty(t, b.Push("50 dollars"))
	assert.Equal(t, []string{"It costs 3.50 dollars."}, b.Push(". Cheap"))
	assert.Equal(t, "Cheap", b.Flush())
}

func TestSentenceBufferAbbreviations(t *testing.T) {
	b := NewSentenceBuffer(0)
	got := pushAll(b, "Dr. Smith met J. Doe at 5 p.m. today. Nice!")
	assert.Equal(t, []string{"Dr. Smith met J. Doe at 5 p.m. today.", "Nice!"}, got)
}

func TestSentenceBufferQuotesAndNewlines(t *testing.T) {
	b := NewSentenceBuffer(0)
	got := pushAll(b, "She said \"wow!\" and left\n\nThen silence")
	assert.Equal(t, []string{"She said \"wow!\"", "and left", "Then silence"}, got)
}

func TestSentenceBufferMaxChars(t *testing.T) {
	b := NewSentenceBuffer(20)
	got := b.Push(strings.Repeat("word ", 10))
	for _, s := range got {
		assert.LessOrEqual(t, len(s), 20)
	}
	assert.NotEmpty(t, got)
	assert.Equal(t, strings.Repeat("word ", 10), strings.Join(got, " ")+" "+b.Flush()+" ")
}

func TestSentenceBufferOverflowKeepsRunesWhole(t *testing.T) {
	input := "a" + strings.Repeat("日本語", 100)
	b := NewSentenceBuffer(0)
	got := b.Push(input)
	rest := b.Flush()

	require.NotEmpty(t, got)
	for i, s := range got {
		assert.True(t, utf8.ValidString(s), "sentence %d", i)
		assert.LessOrEqual(t, len(s), DefaultMaxSentenceChars)
	}
	assert.True(t, utf8.ValidString(rest))
	assert.Equal(t, input, strings.Join(got, "")+rest)

	// a limit narrower than one rune still advances rune by rune
	tiny := NewSentenceBuffer(2)
	assert.Equal(t, []string{"日", "本"}, tiny.Push("日本"))
	assert.Equal(t, "", tiny.Flush())
}
