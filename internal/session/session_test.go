package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mvbarros/audioclin/pkg/audiogram"
	"github.com/mvbarros/audioclin/pkg/models"
)

// MockExamRepository implements repository.ExamRepository for testing
type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	args := m.Called(ctx, exam)
	return args.Error(0)
}

func (m *MockExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exam), args.Error(1)
}

func (m *MockExamRepository) ListByDate(ctx context.Context, companyID uuid.UUID, date time.Time) ([]*models.Exam, error) {
	args := m.Called(ctx, companyID, date)
	return args.Get(0).([]*models.Exam), args.Error(1)
}

func (m *MockExamRepository) SaveResults(ctx context.Context, id uuid.UUID, results *models.ExamResults) error {
	args := m.Called(ctx, id, results)
	return args.Error(0)
}

func (m *MockExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func openSession(t *testing.T, repo *MockExamRepository, exam *models.Exam) *Session {
	t.Helper()
	examID := uuid.New()
	exam.ID = examID.String()
	repo.On("GetByID", mock.Anything, examID).Return(exam, nil).Once()

	mgr := NewManager(repo)
	s, err := mgr.Open(context.Background(), examID)
	require.NoError(t, err)
	return s
}

func TestSession_PlotAppliesSnappedPoint(t *testing.T) {
	repo := &MockExamRepository{}
	s := openSession(t, repo, &models.Exam{})

	p, ok := s.Plot(audiogram.EarRight, audiogram.ConductionAir,
		audiogram.FrequencyToX(1000), audiogram.IntensityToY(40),
		audiogram.SurfaceWidth, audiogram.SurfaceHeight)

	assert.True(t, ok)
	assert.Equal(t, audiogram.Point{Frequency: 1000, Intensity: 40}, p)
	assert.Equal(t, []audiogram.Point{{Frequency: 1000, Intensity: 40}},
		s.Points(audiogram.EarRight, audiogram.ConductionAir))
	repo.AssertExpectations(t)
}

func TestSession_PlotRejectsOutOfRangeClick(t *testing.T) {
	repo := &MockExamRepository{}
	s := openSession(t, repo, &models.Exam{})

	_, ok := s.Plot(audiogram.EarRight, audiogram.ConductionAir,
		audiogram.FrequencyToX(1000), 0,
		audiogram.SurfaceWidth, audiogram.SurfaceHeight)

	assert.False(t, ok)
	assert.Empty(t, s.Points(audiogram.EarRight, audiogram.ConductionAir))
}

func TestSession_HydratesFromPersistedExam(t *testing.T) {
	repo := &MockExamRepository{}
	exam := &models.Exam{}
	exam.RightAir.Set(500, 30)
	exam.RightAir.Set(1000, 30)
	exam.RightAir.Set(2000, 30)

	s := openSession(t, repo, exam)

	right, left := s.Averages()
	require.NotNil(t, right)
	assert.Equal(t, 30, *right)
	assert.Nil(t, left)
}

func TestSession_SaveDerivesStatusFromAirData(t *testing.T) {
	repo := &MockExamRepository{}
	s := openSession(t, repo, &models.Exam{})

	for _, f := range []int{500, 1000, 2000} {
		p, ok := s.Plot(audiogram.EarLeft, audiogram.ConductionAir,
			audiogram.FrequencyToX(f), audiogram.IntensityToY(40),
			audiogram.SurfaceWidth, audiogram.SurfaceHeight)
		require.True(t, ok)
		require.Equal(t, 40, p.Intensity)
	}
	// Bone data must not influence the status.
	s.Plot(audiogram.EarRight, audiogram.ConductionBone,
		audiogram.FrequencyToX(1000), audiogram.IntensityToY(80),
		audiogram.SurfaceWidth, audiogram.SurfaceHeight)

	repo.On("SaveResults", mock.Anything, mock.Anything, mock.AnythingOfType("*models.ExamResults")).Return(nil).Once()

	results, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, audiogram.StatusAltered, results.Status)
	assert.Equal(t, 3, results.LeftAir.Len())
	assert.Equal(t, 1, results.RightBone.Len())
	repo.AssertExpectations(t)
}

func TestSession_SaveEmptyExamIsNormal(t *testing.T) {
	repo := &MockExamRepository{}
	s := openSession(t, repo, &models.Exam{})

	repo.On("SaveResults", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	results, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, audiogram.StatusNormal, results.Status)
}

func TestSession_FailedSaveRetainsState(t *testing.T) {
	repo := &MockExamRepository{}
	s := openSession(t, repo, &models.Exam{})

	s.Plot(audiogram.EarRight, audiogram.ConductionAir,
		audiogram.FrequencyToX(2000), audiogram.IntensityToY(55),
		audiogram.SurfaceWidth, audiogram.SurfaceHeight)

	repo.On("SaveResults", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	_, err := s.Save(context.Background())
	assert.Error(t, err)

	// The edits survive the failure; a retry can succeed without re-entry.
	assert.Equal(t, []audiogram.Point{{Frequency: 2000, Intensity: 55}},
		s.Points(audiogram.EarRight, audiogram.ConductionAir))

	repo.On("SaveResults", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	_, err = s.Save(context.Background())
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSession_SpeechFieldsPassThrough(t *testing.T) {
	repo := &MockExamRepository{}
	s := openSession(t, repo, &models.Exam{})

	srt := "15"
	iprf := "100"
	s.SetSpeech(SpeechFields{SRTRight: &srt, IPRFRight: &iprf})

	var saved *models.ExamResults
	repo.On("SaveResults", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(2).(*models.ExamResults)
		}).Return(nil).Once()

	_, err := s.Save(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved.SpeechSRTRight)
	assert.Equal(t, "15", *saved.SpeechSRTRight)
	require.NotNil(t, saved.SpeechIPRFRight)
	assert.Equal(t, "100", *saved.SpeechIPRFRight)
	assert.Nil(t, saved.SpeechSRTLeft)
}

func TestManager_ReusesOpenSession(t *testing.T) {
	repo := &MockExamRepository{}
	examID := uuid.New()
	repo.On("GetByID", mock.Anything, examID).Return(&models.Exam{ID: examID.String()}, nil).Once()

	mgr := NewManager(repo)
	first, err := mgr.Open(context.Background(), examID)
	require.NoError(t, err)
	second, err := mgr.Open(context.Background(), examID)
	require.NoError(t, err)

	assert.Same(t, first, second)
	repo.AssertExpectations(t)
}
