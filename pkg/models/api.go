package models

import (
	"time"

	"github.com/mvbarros/audioclin/pkg/audiogram"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// CreateExamRequest represents a check-in: a new exam queued for an employee
type CreateExamRequest struct {
	Body struct {
		CompanyID      string `json:"company_id" required:"true" doc:"Company (tenant) identifier"`
		EmployeeID     string `json:"employee_id" required:"true" doc:"Employee (patient) identifier"`
		ProfessionalID string `json:"professional_id" required:"true" doc:"Examining professional identifier"`
		ExamType       string `json:"exam_type" enum:"admissional,periodico,demissional,mudanca_risco,retorno_trabalho" required:"true" doc:"Occupational exam type"`
		ExamDate       string `json:"exam_date" format:"date" required:"true" doc:"Exam date (YYYY-MM-DD)"`
	}
}

// ExamSummary is one entry of the daily queue
type ExamSummary struct {
	ID        string           `json:"id" doc:"Exam unique identifier"`
	ExamType  string           `json:"exam_type" doc:"Occupational exam type"`
	Status    audiogram.Status `json:"result_status" enum:"normal,altered" doc:"Derived exam status"`
	Done      bool             `json:"done" doc:"Whether threshold data has been entered"`
	ExamDate  time.Time        `json:"exam_date" doc:"Scheduled exam date"`
	CreatedAt time.Time        `json:"created_at" doc:"Check-in timestamp"`
	Employee  *Employee        `json:"employee,omitempty" doc:"Patient summary"`
}

// CreateExamResponse represents the response from a check-in
type CreateExamResponse struct {
	Body ExamSummary
}

// ListDailyExamsRequest represents a request for one day's exam queue
type ListDailyExamsRequest struct {
	CompanyID string `query:"company_id" required:"true" doc:"Company (tenant) identifier"`
	Date      string `query:"date" format:"date" required:"true" doc:"Queue date (YYYY-MM-DD)"`
}

// ListDailyExamsResponseBody is the body of the daily queue response
type ListDailyExamsResponseBody struct {
	Exams []ExamSummary `json:"exams" doc:"Exams ordered by check-in time"`
	Done  int           `json:"done" doc:"Exams with threshold data entered"`
	Total int           `json:"total" doc:"Total exams for the day"`
}

// ListDailyExamsResponse represents the daily queue
type ListDailyExamsResponse struct {
	Body ListDailyExamsResponseBody
}

// GetExamRequest represents a request to load one exam
type GetExamRequest struct {
	ID string `path:"id" doc:"Exam ID"`
}

// GetExamResponseBody is the body of the exam detail response
type GetExamResponseBody struct {
	Exam     *Exam `json:"exam" doc:"Full exam record including threshold maps"`
	RightPTA *int  `json:"right_pta,omitempty" doc:"Right-ear pure-tone average in dB HL; absent when undefined"`
	LeftPTA  *int  `json:"left_pta,omitempty" doc:"Left-ear pure-tone average in dB HL; absent when undefined"`
}

// GetExamResponse represents the exam detail response
type GetExamResponse struct {
	Body GetExamResponseBody
}

// PlotPointRequest carries one pointer click on an audiogram pane
type PlotPointRequest struct {
	ID   string `path:"id" doc:"Exam ID"`
	Body struct {
		Ear            audiogram.Ear        `json:"ear" enum:"right,left" required:"true" doc:"Which ear's pane was clicked"`
		Conduction     audiogram.Conduction `json:"conduction" enum:"air,bone" required:"true" doc:"Active conduction mode"`
		X              float64              `json:"x" required:"true" doc:"Pointer X in rendered-surface coordinates"`
		Y              float64              `json:"y" required:"true" doc:"Pointer Y in rendered-surface coordinates"`
		RenderedWidth  float64              `json:"rendered_width" minimum:"1" required:"true" doc:"Actual rendered surface width in pixels"`
		RenderedHeight float64              `json:"rendered_height" minimum:"1" required:"true" doc:"Actual rendered surface height in pixels"`
	}
}

// PlotPointResponseBody is the body of the plot response
type PlotPointResponseBody struct {
	Accepted bool             `json:"accepted" doc:"Whether the click snapped to a valid point"`
	Point    *audiogram.Point `json:"point,omitempty" doc:"The accepted point, when any"`
}

// PlotPointResponse represents the outcome of a plotted click
type PlotPointResponse struct {
	Body PlotPointResponseBody
}

// SaveExamRequest finalizes an exam: speech audiometry and masking fields are
// passed through verbatim; thresholds and status come from the editing session
type SaveExamRequest struct {
	ID   string `path:"id" doc:"Exam ID"`
	Body struct {
		SpeechSRTRight  *string `json:"speech_srt_od,omitempty" maxLength:"10" doc:"Right-ear speech recognition threshold (dB)"`
		SpeechSRTLeft   *string `json:"speech_srt_oe,omitempty" maxLength:"10" doc:"Left-ear speech recognition threshold (dB)"`
		SpeechIPRFRight *string `json:"speech_iprf_od,omitempty" maxLength:"10" doc:"Right-ear word recognition score (%)"`
		SpeechIPRFLeft  *string `json:"speech_iprf_oe,omitempty" maxLength:"10" doc:"Left-ear word recognition score (%)"`
		MaskingRight    *string `json:"masking_od,omitempty" maxLength:"10" doc:"Right-ear masking level, free text, never computed"`
		MaskingLeft     *string `json:"masking_oe,omitempty" maxLength:"10" doc:"Left-ear masking level, free text, never computed"`
	}
}

// SaveExamResponseBody is the body of the save response
type SaveExamResponseBody struct {
	Status   audiogram.Status `json:"result_status" enum:"normal,altered" doc:"Status derived at save time"`
	RightPTA *int             `json:"right_pta,omitempty" doc:"Right-ear pure-tone average; absent when undefined"`
	LeftPTA  *int             `json:"left_pta,omitempty" doc:"Left-ear pure-tone average; absent when undefined"`
}

// SaveExamResponse represents the save outcome
type SaveExamResponse struct {
	Body SaveExamResponseBody
}

// CancelExamRequest represents removal of a pending exam from the queue
type CancelExamRequest struct {
	ID string `path:"id" doc:"Exam ID"`
}

// CancelExamResponse confirms the removal
type CancelExamResponse struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation message"`
	}
}

// ExportReportRequest represents a request to export the printable report
type ExportReportRequest struct {
	ID string `path:"id" doc:"Exam ID"`
}

// ExportReportResponseBody is the body of the report export response
type ExportReportResponseBody struct {
	ReportURL string `json:"report_url" doc:"Pre-signed download URL for the rendered report"`
	ExpiresIn int    `json:"expires_in" doc:"URL expiration time in seconds"`
}

// ExportReportResponse represents the exported report location
type ExportReportResponse struct {
	Body ExportReportResponseBody
}
