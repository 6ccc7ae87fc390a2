package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mvbarros/audioclin/pkg/models"
)

// ExamRepository defines the interface for audiometric exam data operations
type ExamRepository interface {
	Create(ctx context.Context, exam *models.Exam) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Exam, error)
	ListByDate(ctx context.Context, companyID uuid.UUID, date time.Time) ([]*models.Exam, error)
	SaveResults(ctx context.Context, id uuid.UUID, results *models.ExamResults) error
	Delete(ctx context.Context, id uuid.UUID) error
}
