package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mvbarros/audioclin/internal/repository"
	"github.com/mvbarros/audioclin/internal/session"
	"github.com/mvbarros/audioclin/internal/storage"
	"github.com/mvbarros/audioclin/pkg/audiogram"
	"github.com/mvbarros/audioclin/pkg/models"
)

// ExamHandler handles audiometric exam HTTP requests
type ExamHandler struct {
	repo     repository.ExamRepository
	sessions *session.Manager
	reports  storage.ReportStorage
}

// NewExamHandler creates a new exam handler
func NewExamHandler(repo repository.ExamRepository, sessions *session.Manager, reports storage.ReportStorage) *ExamHandler {
	return &ExamHandler{
		repo:     repo,
		sessions: sessions,
		reports:  reports,
	}
}

// CreateExam performs a check-in: a new exam queued for an employee
func (h *ExamHandler) CreateExam(ctx context.Context, req *models.CreateExamRequest) (*models.CreateExamResponse, error) {
	log.Info().Str("employeeID", req.Body.EmployeeID).Str("examType", req.Body.ExamType).Msg("Creating new exam")

	examDate, err := time.Parse("2006-01-02", req.Body.ExamDate)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid exam date", err)
	}
	if _, err := uuid.Parse(req.Body.CompanyID); err != nil {
		return nil, huma.Error400BadRequest("Invalid company ID", err)
	}
	if _, err := uuid.Parse(req.Body.EmployeeID); err != nil {
		return nil, huma.Error400BadRequest("Invalid employee ID", err)
	}

	now := time.Now()
	exam := &models.Exam{
		ID:             uuid.New().String(),
		CompanyID:      req.Body.CompanyID,
		EmployeeID:     req.Body.EmployeeID,
		ProfessionalID: req.Body.ProfessionalID,
		ExamType:       req.Body.ExamType,
		ExamDate:       examDate,
		Status:         audiogram.StatusNormal,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.repo.Create(ctx, exam); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create exam", err)
	}

	log.Info().Str("examID", exam.ID).Msg("Exam check-in created")
	return &models.CreateExamResponse{Body: summarize(exam)}, nil
}

// ListDailyExams returns one day's exam queue for a company
func (h *ExamHandler) ListDailyExams(ctx context.Context, req *models.ListDailyExamsRequest) (*models.ListDailyExamsResponse, error) {
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid company ID", err)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid date", err)
	}

	exams, err := h.repo.ListByDate(ctx, companyID, date)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load exam queue", err)
	}

	body := models.ListDailyExamsResponseBody{
		Exams: make([]models.ExamSummary, 0, len(exams)),
		Total: len(exams),
	}
	for _, exam := range exams {
		summary := summarize(exam)
		if summary.Done {
			body.Done++
		}
		body.Exams = append(body.Exams, summary)
	}

	return &models.ListDailyExamsResponse{Body: body}, nil
}

// GetExam returns one exam with its threshold maps and derived averages
func (h *ExamHandler) GetExam(ctx context.Context, req *models.GetExamRequest) (*models.GetExamResponse, error) {
	examID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid exam ID", err)
	}

	exam, err := h.repo.GetByID(ctx, examID)
	if err != nil {
		return nil, huma.Error404NotFound("Exam not found", err)
	}

	body := models.GetExamResponseBody{Exam: exam}
	if avg, ok := audiogram.PureToneAverage(&exam.RightAir); ok {
		body.RightPTA = &avg
	}
	if avg, ok := audiogram.PureToneAverage(&exam.LeftAir); ok {
		body.LeftPTA = &avg
	}

	return &models.GetExamResponse{Body: body}, nil
}

// PlotPoint snaps one pointer click into the exam's editing session. A click
// that does not resolve to a valid point returns accepted=false, not an error.
func (h *ExamHandler) PlotPoint(ctx context.Context, req *models.PlotPointRequest) (*models.PlotPointResponse, error) {
	examID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid exam ID", err)
	}

	sess, err := h.sessions.Open(ctx, examID)
	if err != nil {
		return nil, huma.Error404NotFound("Exam not found", err)
	}

	point, ok := sess.Plot(req.Body.Ear, req.Body.Conduction,
		req.Body.X, req.Body.Y, req.Body.RenderedWidth, req.Body.RenderedHeight)
	if !ok {
		log.Debug().Str("examID", req.ID).Msg("Click outside the valid range, dropped")
		return &models.PlotPointResponse{Body: models.PlotPointResponseBody{Accepted: false}}, nil
	}

	log.Info().
		Str("examID", req.ID).
		Str("ear", string(req.Body.Ear)).
		Str("conduction", string(req.Body.Conduction)).
		Int("freq", point.Frequency).
		Int("db", point.Intensity).
		Msg("Threshold plotted")

	return &models.PlotPointResponse{Body: models.PlotPointResponseBody{Accepted: true, Point: &point}}, nil
}

// SaveExam finalizes the exam: snapshot thresholds, derive status, persist
func (h *ExamHandler) SaveExam(ctx context.Context, req *models.SaveExamRequest) (*models.SaveExamResponse, error) {
	examID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid exam ID", err)
	}

	sess, err := h.sessions.Open(ctx, examID)
	if err != nil {
		return nil, huma.Error404NotFound("Exam not found", err)
	}

	sess.SetSpeech(session.SpeechFields{
		SRTRight:     req.Body.SpeechSRTRight,
		SRTLeft:      req.Body.SpeechSRTLeft,
		IPRFRight:    req.Body.SpeechIPRFRight,
		IPRFLeft:     req.Body.SpeechIPRFLeft,
		MaskingRight: req.Body.MaskingRight,
		MaskingLeft:  req.Body.MaskingLeft,
	})

	results, err := sess.Save(ctx)
	if err != nil {
		// The session keeps all entered data; the examiner can retry.
		return nil, huma.Error500InternalServerError("Failed to save exam. Your entries are retained, please try again.", err)
	}

	body := models.SaveExamResponseBody{Status: results.Status}
	if avg, ok := audiogram.PureToneAverage(&results.RightAir); ok {
		body.RightPTA = &avg
	}
	if avg, ok := audiogram.PureToneAverage(&results.LeftAir); ok {
		body.LeftPTA = &avg
	}

	return &models.SaveExamResponse{Body: body}, nil
}

// CancelExam removes a pending exam from the queue
func (h *ExamHandler) CancelExam(ctx context.Context, req *models.CancelExamRequest) (*models.CancelExamResponse, error) {
	examID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid exam ID", err)
	}

	exam, err := h.repo.GetByID(ctx, examID)
	if err != nil {
		return nil, huma.Error404NotFound("Exam not found", err)
	}
	if exam.HasResults() {
		return nil, huma.Error409Conflict("Exam already has results",
			fmt.Errorf("exam %s has threshold data", req.ID))
	}

	if err := h.repo.Delete(ctx, examID); err != nil {
		return nil, huma.Error500InternalServerError("Failed to cancel exam", err)
	}
	h.sessions.Close(examID)

	log.Info().Str("examID", req.ID).Msg("Exam check-in cancelled")
	resp := &models.CancelExamResponse{}
	resp.Body.Message = "Exam removed from the queue"
	return resp, nil
}

// ExportReport renders the printable report, stores it, and returns a
// pre-signed download URL
func (h *ExamHandler) ExportReport(ctx context.Context, req *models.ExportReportRequest) (*models.ExportReportResponse, error) {
	examID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid exam ID", err)
	}

	sess, err := h.sessions.Open(ctx, examID)
	if err != nil {
		return nil, huma.Error404NotFound("Exam not found", err)
	}

	key := fmt.Sprintf("reports/%s.svg", examID)
	if err := h.reports.UploadReport(ctx, key, []byte(sess.RenderReport())); err != nil {
		return nil, huma.Error500InternalServerError("Failed to store report", err)
	}

	url, err := h.reports.GenerateDownloadURL(ctx, key)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate report URL", err)
	}

	log.Info().Str("examID", req.ID).Str("reportKey", key).Msg("Report exported")
	return &models.ExportReportResponse{Body: models.ExportReportResponseBody{
		ReportURL: url,
		ExpiresIn: int((24 * time.Hour).Seconds()),
	}}, nil
}

// RenderAudiogram serves one pane of an exam's audiogram as SVG. It is a
// plain chi handler because the response is an image, not JSON.
func (h *ExamHandler) RenderAudiogram(w http.ResponseWriter, r *http.Request) {
	examID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid exam ID", http.StatusBadRequest)
		return
	}

	ear := audiogram.Ear(r.URL.Query().Get("ear"))
	if ear != audiogram.EarRight && ear != audiogram.EarLeft {
		http.Error(w, "ear must be right or left", http.StatusBadRequest)
		return
	}
	conduction := audiogram.Conduction(r.URL.Query().Get("conduction"))
	if conduction != audiogram.ConductionAir && conduction != audiogram.ConductionBone {
		http.Error(w, "conduction must be air or bone", http.StatusBadRequest)
		return
	}
	readonly := r.URL.Query().Get("readonly") == "true"

	sess, err := h.sessions.Open(r.Context(), examID)
	if err != nil {
		http.Error(w, "exam not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprint(w, sess.RenderPane(ear, conduction, readonly))
}

func summarize(exam *models.Exam) models.ExamSummary {
	return models.ExamSummary{
		ID:        exam.ID,
		ExamType:  exam.ExamType,
		Status:    exam.Status,
		Done:      exam.HasResults(),
		ExamDate:  exam.ExamDate,
		CreatedAt: exam.CreatedAt,
		Employee:  exam.Employee,
	}
}
