package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mvbarros/audioclin/internal/repository"
	"github.com/mvbarros/audioclin/pkg/audiogram"
	"github.com/mvbarros/audioclin/pkg/models"
)

// PostgresExamRepository implements ExamRepository for PostgreSQL
type PostgresExamRepository struct {
	db *sql.DB
}

// NewPostgresExamRepository creates a new PostgreSQL exam repository
func NewPostgresExamRepository(db *sql.DB) repository.ExamRepository {
	return &PostgresExamRepository{db: db}
}

// Create inserts a new exam record (a check-in: empty thresholds, normal status)
func (r *PostgresExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	query := `
		INSERT INTO audiometric_exams (id, company_id, employee_id, professional_id, exam_type, exam_date, result_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		exam.ID,
		exam.CompanyID,
		exam.EmployeeID,
		exam.ProfessionalID,
		exam.ExamType,
		exam.ExamDate,
		exam.Status,
		exam.CreatedAt,
		exam.UpdatedAt)

	return err
}

const examColumns = `
	e.id, e.company_id, e.employee_id, e.professional_id, e.exam_type, e.exam_date, e.result_status,
	e.thresholds_od_air, e.thresholds_oe_air, e.thresholds_od_bone, e.thresholds_oe_bone,
	e.speech_srt_od, e.speech_srt_oe, e.speech_iprf_od, e.speech_iprf_oe,
	e.masking_od, e.masking_oe,
	e.created_at, e.updated_at,
	emp.full_name, emp.cpf, emp.sector, emp.job_role`

// GetByID retrieves an exam by ID, with the employee summary joined in
func (r *PostgresExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Exam, error) {
	query := `
		SELECT ` + examColumns + `
		FROM audiometric_exams e
		JOIN employees emp ON emp.id = e.employee_id
		WHERE e.id = $1`

	return scanExam(r.db.QueryRowContext(ctx, query, id))
}

// ListByDate retrieves a company's exams for one day, ordered by check-in time
func (r *PostgresExamRepository) ListByDate(ctx context.Context, companyID uuid.UUID, date time.Time) ([]*models.Exam, error) {
	query := `
		SELECT ` + examColumns + `
		FROM audiometric_exams e
		JOIN employees emp ON emp.id = e.employee_id
		WHERE e.company_id = $1 AND e.exam_date = $2::date
		ORDER BY e.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, companyID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []*models.Exam
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, exam)
	}

	return exams, rows.Err()
}

// SaveResults stores a finalized exam snapshot: the four threshold maps, the
// pass-through speech/masking fields and the derived status
func (r *PostgresExamRepository) SaveResults(ctx context.Context, id uuid.UUID, results *models.ExamResults) error {
	rightAir, err := json.Marshal(results.RightAir)
	if err != nil {
		return fmt.Errorf("failed to marshal right air thresholds: %w", err)
	}
	leftAir, err := json.Marshal(results.LeftAir)
	if err != nil {
		return fmt.Errorf("failed to marshal left air thresholds: %w", err)
	}
	rightBone, err := json.Marshal(results.RightBone)
	if err != nil {
		return fmt.Errorf("failed to marshal right bone thresholds: %w", err)
	}
	leftBone, err := json.Marshal(results.LeftBone)
	if err != nil {
		return fmt.Errorf("failed to marshal left bone thresholds: %w", err)
	}

	query := `
		UPDATE audiometric_exams
		SET thresholds_od_air = $1, thresholds_oe_air = $2,
		    thresholds_od_bone = $3, thresholds_oe_bone = $4,
		    speech_srt_od = $5, speech_srt_oe = $6,
		    speech_iprf_od = $7, speech_iprf_oe = $8,
		    masking_od = $9, masking_oe = $10,
		    result_status = $11, updated_at = NOW()
		WHERE id = $12`

	res, err := r.db.ExecContext(ctx, query,
		string(rightAir), string(leftAir), string(rightBone), string(leftBone),
		results.SpeechSRTRight, results.SpeechSRTLeft,
		results.SpeechIPRFRight, results.SpeechIPRFLeft,
		results.MaskingRight, results.MaskingLeft,
		results.Status, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an exam (used to cancel a check-in)
func (r *PostgresExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM audiometric_exams WHERE id = $1`, id)
	return err
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanExam(row scanner) (*models.Exam, error) {
	var exam models.Exam
	var employee models.Employee
	var rightAir, leftAir, rightBone, leftBone sql.NullString
	var srtOD, srtOE, iprfOD, iprfOE, maskOD, maskOE sql.NullString
	var cpf, sector, jobRole sql.NullString

	err := row.Scan(
		&exam.ID,
		&exam.CompanyID,
		&exam.EmployeeID,
		&exam.ProfessionalID,
		&exam.ExamType,
		&exam.ExamDate,
		&exam.Status,
		&rightAir,
		&leftAir,
		&rightBone,
		&leftBone,
		&srtOD,
		&srtOE,
		&iprfOD,
		&iprfOE,
		&maskOD,
		&maskOE,
		&exam.CreatedAt,
		&exam.UpdatedAt,
		&employee.FullName,
		&cpf,
		&sector,
		&jobRole)

	if err != nil {
		return nil, err
	}

	if err := hydrateThresholds(&exam.RightAir, rightAir); err != nil {
		return nil, fmt.Errorf("failed to unmarshal right air thresholds: %w", err)
	}
	if err := hydrateThresholds(&exam.LeftAir, leftAir); err != nil {
		return nil, fmt.Errorf("failed to unmarshal left air thresholds: %w", err)
	}
	if err := hydrateThresholds(&exam.RightBone, rightBone); err != nil {
		return nil, fmt.Errorf("failed to unmarshal right bone thresholds: %w", err)
	}
	if err := hydrateThresholds(&exam.LeftBone, leftBone); err != nil {
		return nil, fmt.Errorf("failed to unmarshal left bone thresholds: %w", err)
	}

	exam.SpeechSRTRight = nullableString(srtOD)
	exam.SpeechSRTLeft = nullableString(srtOE)
	exam.SpeechIPRFRight = nullableString(iprfOD)
	exam.SpeechIPRFLeft = nullableString(iprfOE)
	exam.MaskingRight = nullableString(maskOD)
	exam.MaskingLeft = nullableString(maskOE)

	employee.ID = exam.EmployeeID
	if cpf.Valid {
		employee.CPF = cpf.String
	}
	if sector.Valid {
		employee.Sector = sector.String
	}
	if jobRole.Valid {
		employee.JobRole = jobRole.String
	}
	exam.Employee = &employee

	return &exam, nil
}

func hydrateThresholds(m *audiogram.ThresholdMap, raw sql.NullString) error {
	if !raw.Valid {
		return nil
	}
	return json.Unmarshal([]byte(raw.String), m)
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
