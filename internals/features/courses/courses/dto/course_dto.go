package dto

import (
	"time"

	"github.com/google/uuid"

	"kursusku_backend/internals/features/courses/courses/model"
)

type CourseResponse struct {
	CourseID                uuid.UUID `json:"course_id"`
	CourseTitle             string    `json:"course_title"`
	CourseDescription       string    `json:"course_description"`
	CourseImageURL          *string   `json:"course_image_url,omitempty"`
	CourseTotalSections     int       `json:"course_total_sections"`
	CourseRegistrationCount int       `json:"course_registration_count"`
	CourseViewCount         int       `json:"course_view_count"`
	CourseCreatedAt         time.Time `json:"course_created_at"`
}

func ToCourseResponse(m *model.CourseModel) *CourseResponse {
	return &CourseResponse{
		CourseID:                m.CourseID,
		CourseTitle:             m.CourseTitle,
		CourseDescription:       m.CourseDescription,
		CourseImageURL:          m.CourseImageURL,
		CourseTotalSections:     m.CourseTotalSections,
		CourseRegistrationCount: m.CourseRegistrationCount,
		CourseViewCount:         m.CourseViewCount,
		CourseCreatedAt:         m.CourseCreatedAt,
	}
}

type CourseSectionResponse struct {
	CourseSectionID                   uuid.UUID  `json:"course_section_id"`
	CourseSectionTitle                string     `json:"course_section_title"`
	CourseSectionPosition             int        `json:"course_section_position"`
	CourseSectionVideoURL             *string    `json:"course_section_video_url,omitempty"`
	CourseSectionVideoDurationSeconds *int       `json:"course_section_video_duration_seconds,omitempty"`
	CourseSectionTestID               *uuid.UUID `json:"course_section_test_id,omitempty"`
}

func ToCourseSectionResponse(m *model.CourseSectionModel) *CourseSectionResponse {
	return &CourseSectionResponse{
		CourseSectionID:                   m.CourseSectionID,
		CourseSectionTitle:                m.CourseSectionTitle,
		CourseSectionPosition:             m.CourseSectionPosition,
		CourseSectionVideoURL:             m.CourseSectionVideoURL,
		CourseSectionVideoDurationSeconds: m.CourseSectionVideoDurationSeconds,
		CourseSectionTestID:               m.CourseSectionTestID,
	}
}
