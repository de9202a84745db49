package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xpanvictor/xarvis-voice/internal/domains/profile"
	"github.com/xpanvictor/xarvis-voice/pkg/Logger"
	"github.com/xpanvictor/xarvis-voice/pkg/assistant"
	"github.com/xpanvictor/xarvis-voice/pkg/io/stt"
	"github.com/xpanvictor/xarvis-voice/pkg/io/tts"
)

// HistoryStore is the slice of the conversation cache the pipeline needs.
type HistoryStore interface {
	History(ctx context.Context, participantID string) ([]assistant.Message, error)
	Append(ctx context.Context, participantID, userText, assistantText string) error
}

type Dependencies struct {
	Transcriber stt.Transcriber
	Generator   assistant.Generator
	Synthesizer tts.Synthesizer
	History     HistoryStore
	Profiles    profile.ContextProvider
	Logger      *Logger.Logger
}

// Manager owns the session registry. A session lives from Start until the
// poll that drains it after completion (or until Sweep drops it).
type Manager struct {
	deps   Dependencies
	logger *Logger.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session

	producers sync.WaitGroup
}

func NewManager(deps Dependencies) *Manager {
	logger := deps.Logger
	if logger == nil {
		logger = Logger.Nop()
	}
	if deps.Profiles == nil {
		deps.Profiles = profile.NoContext{}
	}
	return &Manager{
		deps:     deps,
		logger:   logger.Named("session"),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Start registers a session and launches its producer. It returns as soon as
// the producer is scheduled; the request context is not handed to it.
func (m *Manager) Start(_ context.Context, audio []byte, opts Options) (string, error) {
	if len(audio) == 0 {
		return "", ErrEmptyAudio
	}
	opts = opts.normalize()

	now := m.now()
	s := newSession(newID(now), now)

	ctx, cancel := context.WithCancel(context.Background())
	s.task = &task{done: make(chan struct{}), cancel: cancel}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	s.transition(PRODUCE)
	m.producers.Add(1)
	go m.produce(ctx, s, audio, opts)

	m.logger.Infof("session %s started (%d bytes, method=%s, shapes=%d)", s.ID, len(audio), opts.LipSyncMethod, opts.MouthShapeCount)
	return s.ID, nil
}

// Poll drains whatever the producer has queued. A completed session is
// removed by the poll that empties it, so the next poll reports not found.
func (m *Manager) Poll(sessionID string) (PollResult, error) {
	s := m.lookup(sessionID)
	if s == nil {
		return PollResult{}, ErrSessionNotFound
	}
	res, done := s.drain()
	if done {
		m.remove(s)
	}
	return res, nil
}

// Done is closed when the session's producer returns.
func (m *Manager) Done(sessionID string) (<-chan struct{}, error) {
	s := m.lookup(sessionID)
	if s == nil {
		return nil, ErrSessionNotFound
	}
	return s.task.done, nil
}

// Sweep drops sessions older than maxAge whatever their phase, cancelling
// producers that are still running, and returns how many were removed.
func (m *Manager) Sweep(maxAge time.Duration) int {
	cutoff := m.now().Add(-maxAge)

	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		if s.CreatedAt.Before(cutoff) {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.transition(REAP)
		s.task.cancel()
	}
	if len(stale) > 0 {
		m.logger.Infof("swept %d sessions older than %s", len(stale), maxAge)
	}
	return len(stale)
}

// RunSweeper calls Sweep every interval until ctx ends.
func (m *Manager) RunSweeper(ctx context.Context, interval, maxAge time.Duration) {
	if interval <= 0 || maxAge <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(maxAge)
		}
	}
}

// Shutdown waits for running producers, or for ctx.
func (m *Manager) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.producers.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("session: producers still running: %w", ctx.Err())
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) lookup(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

func (m *Manager) remove(s *Session) {
	m.mu.Lock()
	if cur, ok := m.sessions[s.ID]; ok && cur == s {
		delete(m.sessions, s.ID)
	}
	m.mu.Unlock()
	s.transition(REAP)
}

// newID is creation time in unix millis plus a random suffix.
func newID(t time.Time) string {
	return fmt.Sprintf("%d-%s", t.UnixMilli(), uuid.NewString()[:8])
}
