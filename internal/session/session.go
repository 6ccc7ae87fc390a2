package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mvbarros/audioclin/internal/repository"
	"github.com/mvbarros/audioclin/pkg/audiogram"
	"github.com/mvbarros/audioclin/pkg/models"
)

// Session is the single writer for one exam's threshold data while it is
// being edited. It owns the four threshold maps, applies accepted snap output,
// and captures a synchronous snapshot when the exam is saved. A failed save
// leaves the in-memory state intact so the examiner can retry without
// re-entering data.
type Session struct {
	examID uuid.UUID
	repo   repository.ExamRepository

	mu    sync.Mutex
	store audiogram.Store

	speechSRTRight  *string
	speechSRTLeft   *string
	speechIPRFRight *string
	speechIPRFLeft  *string
	maskingRight    *string
	maskingLeft     *string
}

// Plot snaps one pointer click and, when it resolves to a valid point,
// applies it to the selected pane. A rejected click is a no-op, not an error.
func (s *Session) Plot(ear audiogram.Ear, conduction audiogram.Conduction, x, y, renderedWidth, renderedHeight float64) (audiogram.Point, bool) {
	point, ok := audiogram.Snap(x, y, renderedWidth, renderedHeight)
	if !ok {
		return audiogram.Point{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.SetPoint(ear, conduction, point) {
		return audiogram.Point{}, false
	}
	return point, true
}

// Points returns the selected pane's thresholds in ascending frequency order.
func (s *Session) Points(ear audiogram.Ear, conduction audiogram.Conduction) []audiogram.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Points(ear, conduction)
}

// RenderPane renders the selected pane from the current threshold state.
func (s *Session) RenderPane(ear audiogram.Ear, conduction audiogram.Conduction, readonly bool) string {
	return audiogram.RenderPane(ear, conduction, s.Points(ear, conduction), readonly)
}

// RenderReport renders the printable two-ear report from a snapshot of the
// current threshold state.
func (s *Session) RenderReport() string {
	s.mu.Lock()
	snapshot := s.store
	s.mu.Unlock()
	return audiogram.RenderReport(&snapshot)
}

// Averages returns the per-ear pure-tone averages, nil when undefined.
func (s *Session) Averages() (right, left *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if avg, ok := audiogram.PureToneAverage(s.store.Map(audiogram.EarRight, audiogram.ConductionAir)); ok {
		right = &avg
	}
	if avg, ok := audiogram.PureToneAverage(s.store.Map(audiogram.EarLeft, audiogram.ConductionAir)); ok {
		left = &avg
	}
	return right, left
}

// SpeechFields carries the pass-through speech audiometry and masking values.
type SpeechFields struct {
	SRTRight, SRTLeft   *string
	IPRFRight, IPRFLeft *string
	MaskingRight        *string
	MaskingLeft         *string
}

// SetSpeech stores the pass-through fields; they are persisted verbatim on
// save and never enter the status computation.
func (s *Session) SetSpeech(fields SpeechFields) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speechSRTRight = fields.SRTRight
	s.speechSRTLeft = fields.SRTLeft
	s.speechIPRFRight = fields.IPRFRight
	s.speechIPRFLeft = fields.IPRFLeft
	s.maskingRight = fields.MaskingRight
	s.maskingLeft = fields.MaskingLeft
}

// Save captures a snapshot of the threshold maps and pass-through fields,
// derives the exam status from the air-conduction data, and hands the
// snapshot to the repository as one atomic write. The snapshot is taken
// synchronously at the moment of the call; edits after Save returns do not
// leak into it. On persistence failure the session state is unchanged.
func (s *Session) Save(ctx context.Context) (*models.ExamResults, error) {
	s.mu.Lock()
	results := &models.ExamResults{
		RightAir:        *s.store.Map(audiogram.EarRight, audiogram.ConductionAir),
		LeftAir:         *s.store.Map(audiogram.EarLeft, audiogram.ConductionAir),
		RightBone:       *s.store.Map(audiogram.EarRight, audiogram.ConductionBone),
		LeftBone:        *s.store.Map(audiogram.EarLeft, audiogram.ConductionBone),
		SpeechSRTRight:  s.speechSRTRight,
		SpeechSRTLeft:   s.speechSRTLeft,
		SpeechIPRFRight: s.speechIPRFRight,
		SpeechIPRFLeft:  s.speechIPRFLeft,
		MaskingRight:    s.maskingRight,
		MaskingLeft:     s.maskingLeft,
	}
	s.mu.Unlock()

	results.Status = audiogram.Classify(&results.RightAir, &results.LeftAir)

	if err := s.repo.SaveResults(ctx, s.examID, results); err != nil {
		log.Error().Err(err).Str("examID", s.examID.String()).Msg("Failed to persist exam results")
		return nil, err
	}

	log.Info().
		Str("examID", s.examID.String()).
		Str("status", string(results.Status)).
		Int("rightAirPoints", results.RightAir.Len()).
		Int("leftAirPoints", results.LeftAir.Len()).
		Msg("Exam results saved")

	return results, nil
}
