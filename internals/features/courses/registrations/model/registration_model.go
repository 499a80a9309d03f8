package model

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationModel: satu baris per (user, course).
type RegistrationModel struct {
	RegistrationID       uuid.UUID `gorm:"column:registration_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"registration_id"`
	RegistrationUserID   uuid.UUID `gorm:"column:registration_user_id;type:uuid;not null;uniqueIndex:idx_registration_user_course" json:"registration_user_id"`
	RegistrationCourseID uuid.UUID `gorm:"column:registration_course_id;type:uuid;not null;uniqueIndex:idx_registration_user_course" json:"registration_course_id"`

	RegistrationTotalLectures     int `gorm:"column:registration_total_lectures;default:0" json:"registration_total_lectures"`
	RegistrationLecturesCompleted int `gorm:"column:registration_lectures_completed;default:0" json:"registration_lectures_completed"`

	// Flag agregat level registrasi. Sekali true tidak pernah diturunkan.
	RegistrationEntranceTestDone bool `gorm:"column:registration_entrance_test_done;default:false" json:"registration_entrance_test_done"`
	RegistrationSurveyDone       bool `gorm:"column:registration_survey_done;default:false" json:"registration_survey_done"`
	RegistrationAllSectionsDone  bool `gorm:"column:registration_all_sections_done;default:false" json:"registration_all_sections_done"`
	RegistrationFinalExamDone    bool `gorm:"column:registration_final_exam_done;default:false" json:"registration_final_exam_done"`
	RegistrationCourseDone       bool `gorm:"column:registration_course_done;default:false" json:"registration_course_done"`

	RegistrationCertificateID *uuid.UUID `gorm:"column:registration_certificate_id;type:uuid" json:"registration_certificate_id,omitempty"`

	RegistrationCreatedAt time.Time  `gorm:"column:registration_created_at;autoCreateTime" json:"registration_created_at"`
	RegistrationUpdatedAt *time.Time `gorm:"column:registration_updated_at;autoUpdateTime" json:"registration_updated_at,omitempty"`
}

func (RegistrationModel) TableName() string {
	return "course_registrations"
}
