package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "kursusku_backend/internals/features/courses/courses/model"
	"kursusku_backend/internals/features/courses/registrations/model"
	helper "kursusku_backend/internals/helpers"
)

type EnrollmentService struct {
	DB *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{DB: db}
}

// Enroll membuat registrasi + snapshot satu baris SectionProgress per section
// yang ada SAAT INI. Section yang ditambahkan setelahnya tidak mendapat baris
// untuk registrasi lama. Counter pendaftar kursus dinaikkan dengan UPDATE
// atomic, bukan read-then-write.
func (s *EnrollmentService) Enroll(ctx context.Context, courseID, userID, actorID uuid.UUID) (*model.RegistrationModel, error) {
	var created *model.RegistrationModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course courseModel.CourseModel
		if err := tx.First(&course, "course_id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: course %s", helper.ErrNotFound, courseID)
			}
			return err
		}

		var existing int64
		if err := tx.Model(&model.RegistrationModel{}).
			Where("registration_user_id = ? AND registration_course_id = ?", userID, courseID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: user sudah terdaftar di kursus ini", helper.ErrPreconditionFailed)
		}

		var sections []courseModel.CourseSectionModel
		if err := tx.
			Where("course_section_course_id = ?", courseID).
			Order("course_section_position ASC").
			Find(&sections).Error; err != nil {
			return err
		}

		registration := model.RegistrationModel{
			RegistrationID:            uuid.New(),
			RegistrationUserID:        userID,
			RegistrationCourseID:      courseID,
			RegistrationTotalLectures: course.CourseTotalSections,
		}
		if err := tx.Create(&registration).Error; err != nil {
			return err
		}

		for i := range sections {
			row := model.SectionProgressModel{
				SectionProgressID:             uuid.New(),
				SectionProgressRegistrationID: registration.RegistrationID,
				SectionProgressSectionID:      sections[i].CourseSectionID,
				SectionProgressTotalSeconds:   sections[i].CourseSectionVideoDurationSeconds,
				SectionProgressStatus:         model.SectionNotStarted,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&courseModel.CourseModel{}).
			Where("course_id = ?", courseID).
			UpdateColumn("course_registration_count", gorm.Expr("course_registration_count + 1")).Error; err != nil {
			return err
		}

		log.Printf("[INFO] enroll course=%s user=%s actor=%s sections=%d",
			courseID, userID, actorID, len(sections))
		created = &registration
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
