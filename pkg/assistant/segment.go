package assistant

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxSentenceChars bounds a sentence when the model never emits a
// terminator.
const DefaultMaxSentenceChars = 240

var abbreviations = []string{
	"dr.", "mr.", "mrs.", "ms.", "jr.", "sr.", "st.",
	"prof.", "rev.", "gen.", "col.", "lt.", "sgt.",
	"inc.", "ltd.", "corp.", "co.", "vs.", "etc.",
	"i.e.", "e.g.", "a.m.", "p.m.", "u.s.", "u.k.",
}

// SentenceBuffer accumulates streamed text and cuts it into sentences.
type SentenceBuffer struct {
	buf      strings.Builder
	maxChars int
}

func NewSentenceBuffer(maxChars int) *SentenceBuffer {
	if maxChars <= 0 {
		maxChars = DefaultMaxSentenceChars
	}
	return &SentenceBuffer{maxChars: maxChars}
}

// Push adds a delta and returns every sentence it completed, trimmed and
// non-blank. A terminator at the very end of the buffer is held back until
// the next delta shows what follows it.
func (b *SentenceBuffer) Push(delta string) []string {
	if delta == "" {
		return nil
	}
	b.buf.WriteString(delta)
	content := b.buf.String()

	var out []string
	last := 0
	for i := 0; i < len(content); i++ {
		end, ok := boundary(content, i)
		if !ok {
			continue
		}
		if s := strings.TrimSpace(content[last:end]); s != "" {
			out = append(out, s)
		}
		last = end
		i = end - 1
	}

	rest := content[last:]
	for len(rest) > b.maxChars {
		cut := strings.LastIndexByte(rest[:b.maxChars], ' ')
		if cut <= 0 {
			cut = b.maxChars
			for cut > 0 && !utf8.RuneStart(rest[cut]) {
				cut--
			}
			if cut == 0 {
				_, cut = utf8.DecodeRuneInString(rest)
			}
		}
		if s := strings.TrimSpace(rest[:cut]); s != "" {
			out = append(out, s)
		}
		rest = rest[cut:]
	}

	b.buf.Reset()
	b.buf.WriteString(rest)
	return out
}

// Flush returns whatever is left and empties the buffer.
func (b *SentenceBuffer) Flush() string {
	s := strings.TrimSpace(b.buf.String())
	b.buf.Reset()
	return s
}

// boundary reports whether a sentence ends at s[i] and, if so, the offset just
// past it (closing quotes and brackets included).
func boundary(s string, i int) (int, bool) {
	c := s[i]
	if c == '\n' {
		return i + 1, true
	}
	if c != '.' && c != '!' && c != '?' {
		return 0, false
	}
	j := i + 1
	for j < len(s) && strings.IndexByte(`"')]`, s[j]) >= 0 {
		j++
	}
	if j >= len(s) || !isSpace(s[j]) {
		return 0, false
	}
	if c == '.' && isAbbreviation(s, i) {
		return 0, false
	}
	return j, true
}

func isAbbreviation(s string, i int) bool {
	start := i
	for start > 0 && !isSpace(s[start-1]) {
		start--
	}
	word := strings.ToLower(s[start : i+1])
	for _, abbr := range abbreviations {
		if word == abbr {
			return true
		}
	}
	// initials like "J. Smith"
	return i-start == 1 && s[start] >= 'A' && s[start] <= 'Z'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}
