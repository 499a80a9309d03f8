package model

import (
	"time"

	"github.com/google/uuid"
)

type CourseSectionModel struct {
	CourseSectionID       uuid.UUID `gorm:"column:course_section_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"course_section_id"`
	CourseSectionCourseID uuid.UUID `gorm:"column:course_section_course_id;type:uuid;not null" json:"course_section_course_id"`
	CourseSectionTitle    string    `gorm:"column:course_section_title;type:varchar(255);not null" json:"course_section_title"`
	CourseSectionPosition int       `gorm:"column:course_section_position;not null" json:"course_section_position"`

	CourseSectionVideoURL             *string `gorm:"column:course_section_video_url;type:text" json:"course_section_video_url,omitempty"`
	CourseSectionVideoDurationSeconds *int    `gorm:"column:course_section_video_duration_seconds" json:"course_section_video_duration_seconds,omitempty"`

	// Tes review yang terhubung ke section ini (opsional).
	CourseSectionTestID *uuid.UUID `gorm:"column:course_section_test_id;type:uuid" json:"course_section_test_id,omitempty"`

	CourseSectionCreatedAt time.Time  `gorm:"column:course_section_created_at;autoCreateTime" json:"course_section_created_at"`
	CourseSectionUpdatedAt *time.Time `gorm:"column:course_section_updated_at;autoUpdateTime" json:"course_section_updated_at,omitempty"`
}

func (CourseSectionModel) TableName() string {
	return "course_sections"
}
