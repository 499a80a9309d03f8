package model

import (
	"time"

	"github.com/google/uuid"
)

// Jenis tes dalam satu kursus.
const (
	TestTypeEntrance      = "ENTRANCE"
	TestTypeLectureReview = "LECTURE_REVIEW"
	TestTypeFinalExam     = "FINAL_EXAM"
	TestTypeSurvey        = "SURVEY"
)

type TestModel struct {
	TestID       uuid.UUID `gorm:"column:test_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"test_id"`
	TestCourseID uuid.UUID `gorm:"column:test_course_id;type:uuid;not null" json:"test_course_id"`

	// Diisi untuk tes review yang menempel ke satu section.
	TestCourseSectionID *uuid.UUID `gorm:"column:test_course_section_id;type:uuid" json:"test_course_section_id,omitempty"`

	TestType  string `gorm:"column:test_type;type:varchar(32);not null" json:"test_type"`
	TestTitle string `gorm:"column:test_title;type:varchar(255);not null" json:"test_title"`

	TestCreatedAt time.Time  `gorm:"column:test_created_at;autoCreateTime" json:"test_created_at"`
	TestUpdatedAt *time.Time `gorm:"column:test_updated_at;autoUpdateTime" json:"test_updated_at,omitempty"`
}

func (TestModel) TableName() string {
	return "tests"
}
