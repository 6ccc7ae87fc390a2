package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mvbarros/audioclin/internal/repository"
	"github.com/mvbarros/audioclin/pkg/audiogram"
)

// Manager tracks the open editing sessions, one per exam. Opening an exam
// that already has a session returns the existing one, so all writes for an
// exam funnel through a single store.
type Manager struct {
	repo repository.ExamRepository

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a session manager backed by the given repository.
func NewManager(repo repository.ExamRepository) *Manager {
	return &Manager{
		repo:     repo,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Open returns the editing session for an exam, creating and hydrating it
// from persisted state on first use.
func (m *Manager) Open(ctx context.Context, examID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[examID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	exam, err := m.repo.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	s := &Session{examID: examID, repo: m.repo}
	*s.store.Map(audiogram.EarRight, audiogram.ConductionAir) = exam.RightAir
	*s.store.Map(audiogram.EarLeft, audiogram.ConductionAir) = exam.LeftAir
	*s.store.Map(audiogram.EarRight, audiogram.ConductionBone) = exam.RightBone
	*s.store.Map(audiogram.EarLeft, audiogram.ConductionBone) = exam.LeftBone
	s.speechSRTRight = exam.SpeechSRTRight
	s.speechSRTLeft = exam.SpeechSRTLeft
	s.speechIPRFRight = exam.SpeechIPRFRight
	s.speechIPRFLeft = exam.SpeechIPRFLeft
	s.maskingRight = exam.MaskingRight
	s.maskingLeft = exam.MaskingLeft

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have opened the same exam while we were loading.
	if existing, ok := m.sessions[examID]; ok {
		return existing, nil
	}
	m.sessions[examID] = s
	log.Info().Str("examID", examID.String()).Msg("Editing session opened")
	return s, nil
}

// Close discards an exam's session, if any. Used when a check-in is cancelled.
func (m *Manager) Close(examID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, examID)
}
