package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kursusku_backend/internals/databases/testdb"
	"kursusku_backend/internals/features/courses/registrations/model"
	testModel "kursusku_backend/internals/features/courses/tests/model"
	helper "kursusku_backend/internals/helpers"
)

func seedRegistration(t *testing.T, db *gorm.DB, sections int) (uuid.UUID, uuid.UUID, model.RegistrationModel, []model.SectionProgressModel) {
	t.Helper()

	courseID, userID, rows := enrollOne(t, db, sections)

	var registration model.RegistrationModel
	require.NoError(t, db.
		Where("registration_course_id = ? AND registration_user_id = ?", courseID, userID).
		First(&registration).Error)
	return courseID, userID, registration, rows
}

func reloadRegistration(t *testing.T, db *gorm.DB, id uuid.UUID) model.RegistrationModel {
	t.Helper()
	var registration model.RegistrationModel
	require.NoError(t, db.First(&registration, "registration_id = ?", id).Error)
	return registration
}

func TestApplyPassedEntranceTest(t *testing.T) {
	db := testdb.Open(t)
	svc := NewCompletionService()

	courseID, userID, registration, _ := seedRegistration(t, db, 1)

	test := &testModel.TestModel{
		TestID:       uuid.New(),
		TestCourseID: courseID,
		TestType:     testModel.TestTypeEntrance,
		TestTitle:    "Placement",
	}
	require.NoError(t, svc.ApplyPassedTest(db, test, userID))

	got := reloadRegistration(t, db, registration.RegistrationID)
	assert.True(t, got.RegistrationEntranceTestDone)
	assert.False(t, got.RegistrationCourseDone)
}

func TestApplyPassedReviewViaSectionLink(t *testing.T) {
	db := testdb.Open(t)
	svc := NewCompletionService()

	courseID, userID, registration, rows := seedRegistration(t, db, 2)
	sectionID := rows[0].SectionProgressSectionID

	test := &testModel.TestModel{
		TestID:              uuid.New(),
		TestCourseID:        courseID,
		TestCourseSectionID: &sectionID,
		TestType:            testModel.TestTypeLectureReview,
		TestTitle:           "Review Bab 1",
	}
	require.NoError(t, svc.ApplyPassedTest(db, test, userID))

	got := reloadProgress(t, db, rows[0].SectionProgressID)
	assert.Equal(t, model.SectionReviewComplete, got.SectionProgressStatus)

	// Review saja belum menyelesaikan section.
	reg := reloadRegistration(t, db, registration.RegistrationID)
	assert.Equal(t, 0, reg.RegistrationLecturesCompleted)
}

// Data lama: tes tidak menunjuk section, tapi section menunjuk tes.
func TestApplyPassedReviewViaLegacyLink(t *testing.T) {
	db := testdb.Open(t)
	svc := NewCompletionService()

	courseID, userID, _, rows := seedRegistration(t, db, 1)

	testID := uuid.New()
	require.NoError(t, db.Exec(
		`UPDATE course_sections SET course_section_test_id = ? WHERE course_section_id = ?`,
		testID, rows[0].SectionProgressSectionID).Error)

	test := &testModel.TestModel{
		TestID:       testID,
		TestCourseID: courseID,
		TestType:     testModel.TestTypeLectureReview,
		TestTitle:    "Review lama",
	}
	require.NoError(t, svc.ApplyPassedTest(db, test, userID))

	got := reloadProgress(t, db, rows[0].SectionProgressID)
	assert.Equal(t, model.SectionReviewComplete, got.SectionProgressStatus)
}

// Review yang tidak terhubung ke section manapun bukan error:
// attempt-nya tetap tersimpan, cuma tidak menggerakkan progres.
func TestApplyPassedReviewUnlinked(t *testing.T) {
	db := testdb.Open(t)
	svc := NewCompletionService()

	courseID, userID, registration, _ := seedRegistration(t, db, 1)

	test := &testModel.TestModel{
		TestID:       uuid.New(),
		TestCourseID: courseID,
		TestType:     testModel.TestTypeLectureReview,
		TestTitle:    "Review yatim",
	}
	require.NoError(t, svc.ApplyPassedTest(db, test, userID))

	got := reloadRegistration(t, db, registration.RegistrationID)
	assert.Equal(t, 0, got.RegistrationLecturesCompleted)
}

func TestApplyPassedReviewCompletesSection(t *testing.T) {
	db := testdb.Open(t)
	completion := NewCompletionService()
	progress := NewProgressService(db)

	courseID, userID, registration, rows := seedRegistration(t, db, 1)
	sectionID := rows[0].SectionProgressSectionID

	// Video dulu sampai lewat ambang, lalu review lulus.
	require.NoError(t, progress.RecordWatch(context.Background(), rows[0].SectionProgressID, 150, userID))

	test := &testModel.TestModel{
		TestID:              uuid.New(),
		TestCourseID:        courseID,
		TestCourseSectionID: &sectionID,
		TestType:            testModel.TestTypeLectureReview,
		TestTitle:           "Review Bab 1",
	}
	require.NoError(t, completion.ApplyPassedTest(db, test, userID))

	sp := reloadProgress(t, db, rows[0].SectionProgressID)
	assert.Equal(t, model.SectionComplete, sp.SectionProgressStatus)

	reg := reloadRegistration(t, db, registration.RegistrationID)
	assert.Equal(t, 1, reg.RegistrationLecturesCompleted)
	assert.True(t, reg.RegistrationAllSectionsDone)
	// Agregat section tidak otomatis menyelesaikan kursus.
	assert.False(t, reg.RegistrationCourseDone)
}

// Lulus ujian akhir langsung menandai kursus selesai, terlepas dari
// entrance test dan progres section.
func TestApplyPassedFinalExamShortCircuit(t *testing.T) {
	db := testdb.Open(t)
	svc := NewCompletionService()

	courseID, userID, registration, _ := seedRegistration(t, db, 3)

	test := &testModel.TestModel{
		TestID:       uuid.New(),
		TestCourseID: courseID,
		TestType:     testModel.TestTypeFinalExam,
		TestTitle:    "Ujian Akhir",
	}
	require.NoError(t, svc.ApplyPassedTest(db, test, userID))

	got := reloadRegistration(t, db, registration.RegistrationID)
	assert.True(t, got.RegistrationFinalExamDone)
	assert.True(t, got.RegistrationCourseDone)
	assert.False(t, got.RegistrationEntranceTestDone)
	assert.False(t, got.RegistrationAllSectionsDone)
}

func TestApplyPassedSurvey(t *testing.T) {
	db := testdb.Open(t)
	svc := NewCompletionService()

	courseID, userID, registration, _ := seedRegistration(t, db, 1)

	test := &testModel.TestModel{
		TestID:       uuid.New(),
		TestCourseID: courseID,
		TestType:     testModel.TestTypeSurvey,
		TestTitle:    "Survei",
	}
	require.NoError(t, svc.ApplyPassedTest(db, test, userID))

	got := reloadRegistration(t, db, registration.RegistrationID)
	assert.True(t, got.RegistrationSurveyDone)
	assert.False(t, got.RegistrationCourseDone)
}

func TestApplyPassedUnknownTypeIgnored(t *testing.T) {
	db := testdb.Open(t)
	svc := NewCompletionService()

	courseID, userID, registration, _ := seedRegistration(t, db, 1)

	test := &testModel.TestModel{
		TestID:       uuid.New(),
		TestCourseID: courseID,
		TestType:     "TIPE_BARU",
		TestTitle:    "?",
	}
	require.NoError(t, svc.ApplyPassedTest(db, test, userID))

	got := reloadRegistration(t, db, registration.RegistrationID)
	assert.False(t, got.RegistrationEntranceTestDone)
	assert.False(t, got.RegistrationSurveyDone)
	assert.False(t, got.RegistrationFinalExamDone)
	assert.False(t, got.RegistrationCourseDone)
}

func TestApplyPassedWithoutRegistration(t *testing.T) {
	db := testdb.Open(t)
	svc := NewCompletionService()

	test := &testModel.TestModel{
		TestID:       uuid.New(),
		TestCourseID: uuid.New(),
		TestType:     testModel.TestTypeEntrance,
		TestTitle:    "Placement",
	}
	err := svc.ApplyPassedTest(db, test, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}
