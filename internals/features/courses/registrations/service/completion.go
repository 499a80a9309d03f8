package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/courses/registrations/model"
	testModel "kursusku_backend/internals/features/courses/tests/model"
	helper "kursusku_backend/internals/helpers"
)

// CompletionService melipat hasil tes yang lulus ke flag penyelesaian
// level registrasi. Memenuhi tests/service.CompletionSink; dipanggil mesin
// penilaian di dalam transaksi insert attempt.
type CompletionService struct{}

func NewCompletionService() *CompletionService {
	return &CompletionService{}
}

func (s *CompletionService) ApplyPassedTest(tx *gorm.DB, test *testModel.TestModel, userID uuid.UUID) error {
	var registration model.RegistrationModel
	err := tx.
		Where("registration_course_id = ? AND registration_user_id = ?", test.TestCourseID, userID).
		First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: registrasi course %s user %s", helper.ErrNotFound, test.TestCourseID, userID)
		}
		return err
	}

	switch test.TestType {
	case testModel.TestTypeEntrance:
		return tx.Model(&model.RegistrationModel{}).
			Where("registration_id = ?", registration.RegistrationID).
			Update("registration_entrance_test_done", true).Error

	case testModel.TestTypeLectureReview:
		return s.applyReviewPassed(tx, test, &registration)

	case testModel.TestTypeFinalExam:
		// Lulus ujian akhir langsung menyelesaikan kursus, TANPA melihat
		// status entrance test atau section. Perilaku produksi yang
		// dipertahankan; lihat test final-exam short-circuit.
		return tx.Model(&model.RegistrationModel{}).
			Where("registration_id = ?", registration.RegistrationID).
			Updates(map[string]interface{}{
				"registration_final_exam_done": true,
				"registration_course_done":     true,
			}).Error

	case testModel.TestTypeSurvey:
		return tx.Model(&model.RegistrationModel{}).
			Where("registration_id = ?", registration.RegistrationID).
			Update("registration_survey_done", true).Error

	default:
		log.Printf("[WARNING] tipe tes tidak dikenali, diabaikan: %q (test=%s)", test.TestType, test.TestID)
		return nil
	}
}

// applyReviewPassed mencari SectionProgress milik tes review ini.
// Jalur utama: tes menunjuk section-nya (test_course_section_id).
// Jalur legacy: scan section registrasi yang kolom course_section_test_id-nya
// menunjuk tes ini.
func (s *CompletionService) applyReviewPassed(tx *gorm.DB, test *testModel.TestModel, registration *model.RegistrationModel) error {
	var sp model.SectionProgressModel
	found := false

	if test.TestCourseSectionID != nil {
		err := tx.
			Where("section_progress_registration_id = ? AND section_progress_section_id = ?",
				registration.RegistrationID, *test.TestCourseSectionID).
			First(&sp).Error
		if err == nil {
			found = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if !found {
		err := tx.
			Joins("JOIN course_sections AS cs ON cs.course_section_id = section_progress.section_progress_section_id").
			Where("section_progress.section_progress_registration_id = ? AND cs.course_section_test_id = ?",
				registration.RegistrationID, test.TestID).
			First(&sp).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[WARNING] review test %s tidak terhubung ke section manapun di registrasi %s",
					test.TestID, registration.RegistrationID)
				return nil
			}
			return err
		}
		found = true
	}

	sp.SectionProgressStatus = sp.SectionProgressStatus.MarkReviewDone()
	if err := tx.Save(&sp).Error; err != nil {
		return err
	}

	return refreshRegistrationAggregates(tx, registration.RegistrationID)
}
