package models

import (
	"time"

	"github.com/mvbarros/audioclin/pkg/audiogram"
)

// Exam types accepted for occupational audiometric exams.
const (
	ExamTypeAdmission    = "admissional"
	ExamTypePeriodic     = "periodico"
	ExamTypeDismissal    = "demissional"
	ExamTypeRiskChange   = "mudanca_risco"
	ExamTypeReturnToWork = "retorno_trabalho"
)

// Employee carries the patient fields joined into exam reads for queue and
// report display.
type Employee struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	CPF      string `json:"cpf,omitempty"`
	Sector   string `json:"sector,omitempty"`
	JobRole  string `json:"job_role,omitempty"`
}

// Exam represents one audiometric exam record (for internal use).
type Exam struct {
	ID             string           `json:"id"`
	CompanyID      string           `json:"company_id"`
	EmployeeID     string           `json:"employee_id"`
	ProfessionalID string           `json:"professional_id"`
	ExamType       string           `json:"exam_type"`
	ExamDate       time.Time        `json:"exam_date"`
	Status         audiogram.Status `json:"result_status"`

	RightAir  audiogram.ThresholdMap `json:"thresholds_od_air"`
	LeftAir   audiogram.ThresholdMap `json:"thresholds_oe_air"`
	RightBone audiogram.ThresholdMap `json:"thresholds_od_bone"`
	LeftBone  audiogram.ThresholdMap `json:"thresholds_oe_bone"`

	// Speech audiometry and masking are pass-through fields: entered by the
	// examiner, persisted verbatim, never computed.
	SpeechSRTRight  *string `json:"speech_srt_od,omitempty"`
	SpeechSRTLeft   *string `json:"speech_srt_oe,omitempty"`
	SpeechIPRFRight *string `json:"speech_iprf_od,omitempty"`
	SpeechIPRFLeft  *string `json:"speech_iprf_oe,omitempty"`
	MaskingRight    *string `json:"masking_od,omitempty"`
	MaskingLeft     *string `json:"masking_oe,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Employee *Employee `json:"employee,omitempty"`
}

// HasResults reports whether the exam already has plotted right-ear air data,
// which is what marks a queue entry as done.
func (e *Exam) HasResults() bool {
	return e.RightAir.Len() > 0
}

// ExamResults is the snapshot handed to the repository on save: the four
// finalized threshold maps, the pass-through fields, and the derived status.
type ExamResults struct {
	RightAir  audiogram.ThresholdMap
	LeftAir   audiogram.ThresholdMap
	RightBone audiogram.ThresholdMap
	LeftBone  audiogram.ThresholdMap

	SpeechSRTRight  *string
	SpeechSRTLeft   *string
	SpeechIPRFRight *string
	SpeechIPRFLeft  *string
	MaskingRight    *string
	MaskingLeft     *string

	Status audiogram.Status
}
