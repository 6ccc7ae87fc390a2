package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/mvbarros/audioclin/internal/api/handlers"
	"github.com/mvbarros/audioclin/internal/repository"
	"github.com/mvbarros/audioclin/internal/session"
	"github.com/mvbarros/audioclin/internal/storage"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(router *chi.Mux, api huma.API, examRepo repository.ExamRepository, sessions *session.Manager, reports storage.ReportStorage) {
	// Initialize handlers
	examHandler := handlers.NewExamHandler(examRepo, sessions, reports)

	huma.Register(api, huma.Operation{
		OperationID: "createExam",
		Method:      http.MethodPost,
		Path:        "/api/exams",
		Summary:     "Check in a patient",
		Description: "Creates a new audiometric exam and queues it for the day",
		Tags:        []string{"Exams"},
	}, examHandler.CreateExam)

	huma.Register(api, huma.Operation{
		OperationID: "listDailyExams",
		Method:      http.MethodGet,
		Path:        "/api/exams",
		Summary:     "List the daily queue",
		Description: "Returns a company's exams for one day, ordered by check-in time",
		Tags:        []string{"Exams"},
	}, examHandler.ListDailyExams)

	huma.Register(api, huma.Operation{
		OperationID: "getExam",
		Method:      http.MethodGet,
		Path:        "/api/exams/{id}",
		Summary:     "Get an exam",
		Description: "Returns the full exam record with threshold maps and pure-tone averages",
		Tags:        []string{"Exams"},
	}, examHandler.GetExam)

	huma.Register(api, huma.Operation{
		OperationID: "plotPoint",
		Method:      http.MethodPost,
		Path:        "/api/exams/{id}/plot",
		Summary:     "Plot a threshold point",
		Description: "Snaps a pointer click to the nearest valid (frequency, intensity) pair and applies it to the exam",
		Tags:        []string{"Audiogram"},
	}, examHandler.PlotPoint)

	huma.Register(api, huma.Operation{
		OperationID: "saveExam",
		Method:      http.MethodPut,
		Path:        "/api/exams/{id}",
		Summary:     "Save an exam",
		Description: "Persists the exam's thresholds and speech fields and derives its status",
		Tags:        []string{"Exams"},
	}, examHandler.SaveExam)

	huma.Register(api, huma.Operation{
		OperationID: "cancelExam",
		Method:      http.MethodDelete,
		Path:        "/api/exams/{id}",
		Summary:     "Cancel a check-in",
		Description: "Removes a pending exam from the daily queue",
		Tags:        []string{"Exams"},
	}, examHandler.CancelExam)

	huma.Register(api, huma.Operation{
		OperationID: "exportReport",
		Method:      http.MethodPost,
		Path:        "/api/exams/{id}/report",
		Summary:     "Export the printable report",
		Description: "Renders the two-ear report, stores it, and returns a download URL",
		Tags:        []string{"Audiogram"},
	}, examHandler.ExportReport)

	// SVG pane rendering bypasses huma: the response is an image.
	router.Get("/api/exams/{id}/audiogram.svg", examHandler.RenderAudiogram)
}
