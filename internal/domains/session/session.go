package session

import (
	"context"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"github.com/xpanvictor/xarvis-voice/pkg/lipsync"
)

type Phase string

const (
	CREATED   Phase = "created"
	PRODUCING Phase = "producing"
	COMPLETE  Phase = "complete"
	REAPED    Phase = "reaped"
)

type Event string

const (
	PRODUCE Event = "produce"
	FINISH  Event = "finish"
	REAP    Event = "reap"
)

type LipSyncMethod string

const (
	Timestamps LipSyncMethod = "timestamps"
	Amplitude  LipSyncMethod = "amplitude"
)

type Options struct {
	MouthShapeCount int
	LipSyncMethod   LipSyncMethod
	VoiceID         string
	ParticipantID   string
	Speed           float64
	SubjectID       string
	// Filename hints the upload's container format to the transcriber.
	Filename string
}

func (o Options) normalize() Options {
	if o.MouthShapeCount <= 0 {
		o.MouthShapeCount = lipsync.DefaultShapeCount
	}
	if o.LipSyncMethod != Amplitude {
		o.LipSyncMethod = Timestamps
	}
	if o.Speed < 0 {
		o.Speed = 0
	}
	return o
}

type TextChunk struct {
	Text          string `json:"text"`
	SentenceIndex int    `json:"sentenceIndex"`
}

type AudioChunk struct {
	Audio         string                `json:"audio"`
	ContentType   string                `json:"contentType,omitempty"`
	LipSyncData   []lipsync.RemappedCue `json:"lipSyncData"`
	SentenceIndex int                   `json:"sentenceIndex"`
	ChunkIndex    int                   `json:"chunkIndex"`
	IsFinal       bool                  `json:"isFinal"`
}

type Transcript struct {
	UserText         string `json:"userText"`
	TranscribeTimeMs int64  `json:"transcribeTimeMs"`
}

type Metrics struct {
	TranscribeTimeMs    int64 `json:"transcribeTimeMs"`
	FirstAudioLatencyMs int64 `json:"firstAudioLatencyMs"`
	TotalTimeMs         int64 `json:"totalTimeMs"`
	SentenceCount       int   `json:"sentenceCount"`
}

// PollResult is everything produced since the previous poll.
type PollResult struct {
	Transcript  *Transcript  `json:"transcript"`
	TextChunks  []TextChunk  `json:"textChunks"`
	AudioChunks []AudioChunk `json:"audioChunks"`
	IsComplete  bool         `json:"isComplete"`
	Error       *string      `json:"error"`
	Metrics     *Metrics     `json:"metrics"`
}

// task is the handle of the producer goroutine.
type task struct {
	done   chan struct{}
	cancel context.CancelFunc
}

// Session holds one request's output queues. All fields behind mu; the
// queues are only ever appended to or swapped out whole.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	textQueue  []TextChunk
	audioQueue []AudioChunk
	transcript *Transcript
	errMsg     *string
	metrics    *Metrics

	state *fsm.FSM
	task  *task
}

func newSession(id string, createdAt time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: createdAt,
		state: fsm.NewFSM(
			string(CREATED),
			fsm.Events{
				{Name: string(PRODUCE), Src: []string{string(CREATED)}, Dst: string(PRODUCING)},
				{Name: string(FINISH), Src: []string{string(CREATED), string(PRODUCING)}, Dst: string(COMPLETE)},
				{Name: string(REAP), Src: []string{string(PRODUCING), string(COMPLETE)}, Dst: string(REAPED)},
			},
			fsm.Callbacks{},
		),
	}
}

func (s *Session) Phase() Phase {
	return Phase(s.state.Current())
}

// transition ignores illegal moves; the phase only ever moves forward.
func (s *Session) transition(e Event) {
	_ = s.state.Event(context.Background(), string(e))
}

func (s *Session) pushText(c TextChunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textQueue = append(s.textQueue, c)
}

func (s *Session) pushAudio(c AudioChunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioQueue = append(s.audioQueue, c)
}

func (s *Session) setTranscript(t Transcript) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = &t
}

// fail records msg and completes the session. The first error wins.
func (s *Session) fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.errMsg == nil {
		s.errMsg = &msg
	}
	s.transition(FINISH)
}

func (s *Session) finish(m Metrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = &m
	s.transition(FINISH)
}

// drain empties both queues in one step. The bool reports whether the
// session has nothing left to give and can be dropped.
func (s *Session) drain() (PollResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := PollResult{
		TextChunks:  s.textQueue,
		AudioChunks: s.audioQueue,
		IsComplete:  s.Phase() == COMPLETE,
	}
	if res.TextChunks == nil {
		res.TextChunks = []TextChunk{}
	}
	if res.AudioChunks == nil {
		res.AudioChunks = []AudioChunk{}
	}
	if s.transcript != nil {
		t := *s.transcript
		res.Transcript = &t
	}
	if s.errMsg != nil {
		e := *s.errMsg
		res.Error = &e
	}
	if s.metrics != nil {
		m := *s.metrics
		res.Metrics = &m
	}
	s.textQueue = nil
	s.audioQueue = nil
	return res, res.IsComplete
}
