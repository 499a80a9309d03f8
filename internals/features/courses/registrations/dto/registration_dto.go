package dto

import (
	"time"

	"github.com/google/uuid"

	"kursusku_backend/internals/features/courses/registrations/model"
)

type RegistrationResponse struct {
	RegistrationID       uuid.UUID  `json:"registration_id"`
	RegistrationUserID   uuid.UUID  `json:"registration_user_id"`
	RegistrationCourseID uuid.UUID  `json:"registration_course_id"`
	TotalLectures        int        `json:"registration_total_lectures"`
	LecturesCompleted    int        `json:"registration_lectures_completed"`
	EntranceTestDone     bool       `json:"registration_entrance_test_done"`
	SurveyDone           bool       `json:"registration_survey_done"`
	AllSectionsDone      bool       `json:"registration_all_sections_done"`
	FinalExamDone        bool       `json:"registration_final_exam_done"`
	CourseDone           bool       `json:"registration_course_done"`
	CertificateID        *uuid.UUID `json:"registration_certificate_id,omitempty"`
	CreatedAt            time.Time  `json:"registration_created_at"`
}

func ToRegistrationResponse(m *model.RegistrationModel) *RegistrationResponse {
	return &RegistrationResponse{
		RegistrationID:       m.RegistrationID,
		RegistrationUserID:   m.RegistrationUserID,
		RegistrationCourseID: m.RegistrationCourseID,
		TotalLectures:        m.RegistrationTotalLectures,
		LecturesCompleted:    m.RegistrationLecturesCompleted,
		EntranceTestDone:     m.RegistrationEntranceTestDone,
		SurveyDone:           m.RegistrationSurveyDone,
		AllSectionsDone:      m.RegistrationAllSectionsDone,
		FinalExamDone:        m.RegistrationFinalExamDone,
		CourseDone:           m.RegistrationCourseDone,
		CertificateID:        m.RegistrationCertificateID,
		CreatedAt:            m.RegistrationCreatedAt,
	}
}

type RecordWatchRequest struct {
	WatchedSeconds int `json:"watched_seconds" validate:"min=0"`
}

// SectionView: gabungan SectionProgress × section × tes review (read-only,
// untuk halaman daftar materi).
type SectionView struct {
	SectionProgressID uuid.UUID           `json:"section_progress_id"`
	SectionID         uuid.UUID           `json:"section_id"`
	SectionTitle      string              `json:"section_title"`
	SectionPosition   int                 `json:"section_position"`
	VideoURL          *string             `json:"video_url,omitempty"`
	WatchedSeconds    int                 `json:"watched_seconds"`
	TotalSeconds      *int                `json:"total_seconds,omitempty"`
	WatchedPercent    int                 `json:"watched_percent"`
	Status            model.SectionStatus `json:"status"`
	VideoDone         bool                `json:"video_done"`
	ReviewDone        bool                `json:"review_done"`
	SectionDone       bool                `json:"section_done"`

	ReviewTestID            *uuid.UUID `json:"review_test_id,omitempty"`
	ReviewTestTitle         *string    `json:"review_test_title,omitempty"`
	ReviewTestQuestionCount *int       `json:"review_test_question_count,omitempty"`
}
