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

func enrollOne(t *testing.T, db *gorm.DB, sections int) (uuid.UUID, uuid.UUID, []model.SectionProgressModel) {
	t.Helper()

	courseID, _ := seedCourse(t, db, sections)
	userID := uuid.New()

	registration, err := NewEnrollmentService(db).Enroll(context.Background(), courseID, userID, userID)
	require.NoError(t, err)

	// Baris snapshot diurutkan mengikuti posisi section-nya.
	var rows []model.SectionProgressModel
	require.NoError(t, db.
		Table("section_progress").
		Joins("JOIN course_sections ON course_sections.course_section_id = section_progress.section_progress_section_id").
		Where("section_progress.section_progress_registration_id = ?", registration.RegistrationID).
		Order("course_sections.course_section_position ASC").
		Find(&rows).Error)
	require.Len(t, rows, sections)
	return courseID, userID, rows
}

func reloadProgress(t *testing.T, db *gorm.DB, id uuid.UUID) model.SectionProgressModel {
	t.Helper()
	var sp model.SectionProgressModel
	require.NoError(t, db.First(&sp, "section_progress_id = ?", id).Error)
	return sp
}

func TestRecordWatchThresholdStrict(t *testing.T) {
	db := testdb.Open(t)
	svc := NewProgressService(db)

	_, userID, rows := enrollOne(t, db, 1)
	sp := rows[0]

	// 90/300 = tepat 30%: belum selesai (ambang strict >).
	require.NoError(t, svc.RecordWatch(context.Background(), sp.SectionProgressID, 90, userID))
	got := reloadProgress(t, db, sp.SectionProgressID)
	assert.Equal(t, model.SectionWatching, got.SectionProgressStatus)
	assert.Equal(t, 90, got.SectionProgressWatchedSeconds)
	assert.Equal(t, 30, got.SectionProgressWatchedPercent)

	// 93/300 = 31%: lewat ambang.
	require.NoError(t, svc.RecordWatch(context.Background(), sp.SectionProgressID, 93, userID))
	got = reloadProgress(t, db, sp.SectionProgressID)
	assert.Equal(t, model.SectionVideoComplete, got.SectionProgressStatus)
	assert.Equal(t, 31, got.SectionProgressWatchedPercent)
}

func TestRecordWatchLastWriteWins(t *testing.T) {
	db := testdb.Open(t)
	svc := NewProgressService(db)

	_, userID, rows := enrollOne(t, db, 1)
	sp := rows[0]

	require.NoError(t, svc.RecordWatch(context.Background(), sp.SectionProgressID, 60, userID))
	// Mundur: posisi baru menimpa, bukan diakumulasi.
	require.NoError(t, svc.RecordWatch(context.Background(), sp.SectionProgressID, 10, userID))

	got := reloadProgress(t, db, sp.SectionProgressID)
	assert.Equal(t, 10, got.SectionProgressWatchedSeconds)
	assert.Equal(t, 3, got.SectionProgressWatchedPercent)
}

func TestRecordWatchFrozenAfterVideoDone(t *testing.T) {
	db := testdb.Open(t)
	svc := NewProgressService(db)

	_, userID, rows := enrollOne(t, db, 1)
	sp := rows[0]

	require.NoError(t, svc.RecordWatch(context.Background(), sp.SectionProgressID, 150, userID))
	got := reloadProgress(t, db, sp.SectionProgressID)
	require.True(t, got.SectionProgressStatus.VideoDone())

	// Setelah selesai, panggilan berikutnya no-op.
	require.NoError(t, svc.RecordWatch(context.Background(), sp.SectionProgressID, 5, userID))
	got = reloadProgress(t, db, sp.SectionProgressID)
	assert.Equal(t, 150, got.SectionProgressWatchedSeconds)
	assert.Equal(t, 50, got.SectionProgressWatchedPercent)
	assert.True(t, got.SectionProgressStatus.VideoDone())
}

func TestRecordWatchNotFound(t *testing.T) {
	db := testdb.Open(t)
	svc := NewProgressService(db)

	err := svc.RecordWatch(context.Background(), uuid.New(), 10, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestRecordWatchRefreshesAggregates(t *testing.T) {
	db := testdb.Open(t)
	svc := NewProgressService(db)

	courseID, userID, rows := enrollOne(t, db, 2)

	// Video selesai saja belum menyelesaikan section (review masih kurang),
	// jadi lecturesCompleted tetap 0.
	require.NoError(t, svc.RecordWatch(context.Background(), rows[0].SectionProgressID, 200, userID))

	var registration model.RegistrationModel
	require.NoError(t, db.
		Where("registration_course_id = ? AND registration_user_id = ?", courseID, userID).
		First(&registration).Error)
	assert.Equal(t, 2, registration.RegistrationTotalLectures)
	assert.Equal(t, 0, registration.RegistrationLecturesCompleted)
	assert.False(t, registration.RegistrationAllSectionsDone)
}

func TestLecturesAndTests(t *testing.T) {
	db := testdb.Open(t)
	svc := NewProgressService(db)

	courseID, userID, rows := enrollOne(t, db, 2)

	// Pasang tes review di section pertama.
	reviewTestID := uuid.New()
	require.NoError(t, db.Create(&testModel.TestModel{
		TestID:       reviewTestID,
		TestCourseID: courseID,
		TestType:     testModel.TestTypeLectureReview,
		TestTitle:    "Review Bab 1",
	}).Error)
	require.NoError(t, db.Exec(
		`UPDATE course_sections SET course_section_test_id = ? WHERE course_section_id = ?`,
		reviewTestID, rows[0].SectionProgressSectionID).Error)
	for i := 0; i < 4; i++ {
		require.NoError(t, db.Create(&testModel.QuestionModel{
			QuestionID:         uuid.New(),
			QuestionTestID:     reviewTestID,
			QuestionType:       testModel.QuestionTypeSingleSelect,
			QuestionOrderIndex: i,
			QuestionText:       "Soal",
		}).Error)
	}

	require.NoError(t, svc.RecordWatch(context.Background(), rows[0].SectionProgressID, 120, userID))

	views, err := svc.LecturesAndTests(context.Background(), courseID, userID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Urut posisi.
	assert.Equal(t, 1, views[0].SectionPosition)
	assert.Equal(t, 2, views[1].SectionPosition)

	first := views[0]
	assert.True(t, first.VideoDone)
	assert.False(t, first.ReviewDone)
	assert.Equal(t, 120, first.WatchedSeconds)
	require.NotNil(t, first.ReviewTestID)
	assert.Equal(t, reviewTestID, *first.ReviewTestID)
	require.NotNil(t, first.ReviewTestTitle)
	assert.Equal(t, "Review Bab 1", *first.ReviewTestTitle)
	require.NotNil(t, first.ReviewTestQuestionCount)
	assert.Equal(t, 4, *first.ReviewTestQuestionCount)

	second := views[1]
	assert.Equal(t, model.SectionNotStarted, second.Status)
	assert.Nil(t, second.ReviewTestID)
}

// Tes review yang menunjuk section lewat test_course_section_id (tanpa
// kolom legacy di section) tetap muncul di tampilan materi.
func TestLecturesAndTestsPrimaryLinkedReview(t *testing.T) {
	db := testdb.Open(t)
	svc := NewProgressService(db)

	courseID, userID, rows := enrollOne(t, db, 1)
	sectionID := rows[0].SectionProgressSectionID

	reviewTestID := uuid.New()
	require.NoError(t, db.Create(&testModel.TestModel{
		TestID:              reviewTestID,
		TestCourseID:        courseID,
		TestCourseSectionID: &sectionID,
		TestType:            testModel.TestTypeLectureReview,
		TestTitle:           "Review Bab 1",
	}).Error)
	require.NoError(t, db.Create(&testModel.QuestionModel{
		QuestionID:         uuid.New(),
		QuestionTestID:     reviewTestID,
		QuestionType:       testModel.QuestionTypeSingleSelect,
		QuestionOrderIndex: 0,
		QuestionText:       "Soal",
	}).Error)

	views, err := svc.LecturesAndTests(context.Background(), courseID, userID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	require.NotNil(t, views[0].ReviewTestID)
	assert.Equal(t, reviewTestID, *views[0].ReviewTestID)
	require.NotNil(t, views[0].ReviewTestTitle)
	assert.Equal(t, "Review Bab 1", *views[0].ReviewTestTitle)
	require.NotNil(t, views[0].ReviewTestQuestionCount)
	assert.Equal(t, 1, *views[0].ReviewTestQuestionCount)
}

// Kalau kedua arah terisi, jalur utama (test_course_section_id) menang —
// konsisten dengan urutan resolve di aggregator kelulusan.
func TestLecturesAndTestsPrimaryLinkWinsOverLegacy(t *testing.T) {
	db := testdb.Open(t)
	svc := NewProgressService(db)

	courseID, userID, rows := enrollOne(t, db, 1)
	sectionID := rows[0].SectionProgressSectionID

	primaryID := uuid.New()
	require.NoError(t, db.Create(&testModel.TestModel{
		TestID:              primaryID,
		TestCourseID:        courseID,
		TestCourseSectionID: &sectionID,
		TestType:            testModel.TestTypeLectureReview,
		TestTitle:           "Review baru",
	}).Error)

	legacyID := uuid.New()
	require.NoError(t, db.Create(&testModel.TestModel{
		TestID:       legacyID,
		TestCourseID: courseID,
		TestType:     testModel.TestTypeLectureReview,
		TestTitle:    "Review lama",
	}).Error)
	require.NoError(t, db.Exec(
		`UPDATE course_sections SET course_section_test_id = ? WHERE course_section_id = ?`,
		legacyID, sectionID).Error)

	views, err := svc.LecturesAndTests(context.Background(), courseID, userID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	require.NotNil(t, views[0].ReviewTestID)
	assert.Equal(t, primaryID, *views[0].ReviewTestID)
}

func TestLecturesAndTestsWithoutRegistration(t *testing.T) {
	db := testdb.Open(t)
	svc := NewProgressService(db)

	_, err := svc.LecturesAndTests(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}
