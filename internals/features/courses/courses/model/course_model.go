package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseModel struct {
	CourseID          uuid.UUID `gorm:"column:course_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"course_id"`
	CourseTitle       string    `gorm:"column:course_title;type:varchar(255);not null" json:"course_title"`
	CourseDescription string    `gorm:"column:course_description;type:text" json:"course_description"`
	CourseImageURL    *string   `gorm:"column:course_image_url;type:text" json:"course_image_url,omitempty"`

	// Counter disimpan, bukan diturunkan. Update selalu lewat
	// UPDATE ... SET x = x + 1 (atomic), jangan read-then-write.
	CourseTotalSections     int `gorm:"column:course_total_sections;default:0" json:"course_total_sections"`
	CourseRegistrationCount int `gorm:"column:course_registration_count;default:0" json:"course_registration_count"`
	CourseViewCount         int `gorm:"column:course_view_count;default:0" json:"course_view_count"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt *time.Time     `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at,omitempty"`
	DeletedAt       gorm.DeletedAt `gorm:"column:course_deleted_at" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string {
	return "courses"
}
