package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/xpanvictor/xarvis-voice/pkg/assistant"
	"github.com/xpanvictor/xarvis-voice/pkg/io/tts"
	"github.com/xpanvictor/xarvis-voice/pkg/lipsync"
)

// produce runs the whole turn for one session: transcribe, generate sentence
// by sentence, voice and lip-sync each sentence, remember the exchange.
// Whatever happens the session ends up complete.
func (m *Manager) produce(ctx context.Context, s *Session, audio []byte, opts Options) {
	defer m.producers.Done()
	defer close(s.task.done)
	defer s.task.cancel()
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf("session %s: producer panic: %v", s.ID, r)
			s.fail(fmt.Sprintf("internal error: %v", r))
		}
	}()

	started := time.Now()

	userText, err := m.deps.Transcriber.Transcribe(ctx, audio, opts.Filename)
	transcribeMs := time.Since(started).Milliseconds()
	if err != nil {
		m.logger.Errorf("session %s: transcription failed: %v", s.ID, err)
		s.fail(fmt.Sprintf("transcription failed: %v", err))
		return
	}
	userText = strings.TrimSpace(userText)
	if userText == "" {
		s.fail(MsgNoTranscription)
		return
	}
	s.setTranscript(Transcript{UserText: userText, TranscribeTimeMs: transcribeMs})

	var history []assistant.Message
	if m.deps.History != nil && opts.ParticipantID != "" {
		if history, err = m.deps.History.History(ctx, opts.ParticipantID); err != nil {
			m.logger.Warnf("session %s: history unavailable: %v", s.ID, err)
			history = nil
		}
	}
	subjectContext, err := m.deps.Profiles.ContextFor(ctx, opts.SubjectID)
	if err != nil {
		m.logger.Warnf("session %s: profile context unavailable: %v", s.ID, err)
		subjectContext = ""
	}

	var (
		response     strings.Builder
		index        int
		firstAudioMs int64
	)
	req := assistant.Request{UserText: userText, History: history, Context: subjectContext}
	for sentence, err := range m.deps.Generator.StreamSentences(ctx, req) {
		if err != nil {
			m.logger.Errorf("session %s: generation failed after %d sentences: %v", s.ID, index, err)
			s.fail(fmt.Sprintf("response generation failed: %v", err))
			return
		}
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if response.Len() > 0 {
			response.WriteByte(' ')
		}
		response.WriteString(sentence)

		s.pushText(TextChunk{Text: sentence, SentenceIndex: index})

		if chunk, ok := m.voice(ctx, s.ID, sentence, index, opts); ok {
			if firstAudioMs == 0 {
				firstAudioMs = max(time.Since(started).Milliseconds(), 1)
			}
			s.pushAudio(chunk)
		}
		index++
	}

	if m.deps.History != nil && opts.ParticipantID != "" {
		if err := m.deps.History.Append(ctx, opts.ParticipantID, userText, response.String()); err != nil {
			m.logger.Warnf("session %s: could not store exchange: %v", s.ID, err)
		}
	}

	s.finish(Metrics{
		TranscribeTimeMs:    transcribeMs,
		FirstAudioLatencyMs: firstAudioMs,
		TotalTimeMs:         time.Since(started).Milliseconds(),
		SentenceCount:       index,
	})
	m.logger.Infof("session %s complete: %d sentences in %s", s.ID, index, time.Since(started))
}

// voice synthesizes one sentence and attaches its mouth cues. A failed
// synthesis only costs that sentence its audio.
func (m *Manager) voice(ctx context.Context, sessionID, sentence string, index int, opts Options) (AudioChunk, bool) {
	res, err := m.deps.Synthesizer.Synthesize(ctx, tts.Request{
		Text:          sentence,
		VoiceID:       opts.VoiceID,
		Speed:         opts.Speed,
		WithAlignment: opts.LipSyncMethod == Timestamps,
	})
	if err != nil {
		m.logger.Warnf("session %s: synthesis failed for sentence %d: %v", sessionID, index, err)
		return AudioChunk{}, false
	}
	if res == nil {
		m.logger.Warnf("session %s: synthesis returned nothing for sentence %d", sessionID, index)
		return AudioChunk{}, false
	}

	encoded := res.Base64
	if encoded == "" {
		encoded = base64.StdEncoding.EncodeToString(res.Audio)
	}
	chunk := AudioChunk{
		Audio:         encoded,
		ContentType:   res.ContentType,
		SentenceIndex: index,
		ChunkIndex:    0,
		IsFinal:       true,
	}
	if cues := cuesFor(res, sentence); len(cues) > 0 {
		chunk.LipSyncData = lipsync.RemapShapes(cues, opts.MouthShapeCount)
	}
	return chunk, true
}

// cuesFor prefers provider timing and estimates from the audio when the
// alignment is missing or yields no usable cues.
func cuesFor(res *tts.Result, sentence string) []lipsync.Cue {
	if !res.Alignment.Empty() {
		cues := lipsync.CuesFromAlignment(lipsync.Alignment{
			Chars:  res.Alignment.Chars,
			Starts: res.Alignment.Starts,
			Ends:   res.Alignment.Ends,
		})
		if len(cues) > 0 {
			return cues
		}
	}
	return lipsync.EstimateCues(res.Audio, sentence)
}
