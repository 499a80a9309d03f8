package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/courses/registrations/dto"
	"kursusku_backend/internals/features/courses/registrations/model"
	testModel "kursusku_backend/internals/features/courses/tests/model"
	helper "kursusku_backend/internals/helpers"
)

type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

// RecordWatch menyimpan posisi tonton (last-write-wins, bukan akumulasi).
// Setelah video selesai, nilai tonton dibekukan: panggilan berikutnya no-op.
// Ambang selesai memakai strict > (31% lolos, 30% pas tidak).
func (s *ProgressService) RecordWatch(ctx context.Context, sectionProgressID uuid.UUID, watchedSeconds int, actorID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sp model.SectionProgressModel
		if err := tx.First(&sp, "section_progress_id = ?", sectionProgressID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: section progress %s", helper.ErrNotFound, sectionProgressID)
			}
			return err
		}

		if sp.SectionProgressStatus.VideoDone() {
			return nil
		}

		sp.SectionProgressWatchedSeconds = watchedSeconds
		sp.SectionProgressStatus = sp.SectionProgressStatus.StartWatching()

		crossed := false
		if sp.SectionProgressTotalSeconds != nil && *sp.SectionProgressTotalSeconds > 0 {
			sp.SectionProgressWatchedPercent = watchedSeconds * 100 / *sp.SectionProgressTotalSeconds
			if sp.SectionProgressWatchedPercent > constants.VideoCompletionPercent {
				sp.SectionProgressStatus = sp.SectionProgressStatus.MarkVideoDone()
				crossed = true
			}
		}

		if err := tx.Save(&sp).Error; err != nil {
			return err
		}

		if crossed {
			log.Printf("[INFO] video selesai sp=%s actor=%s percent=%d",
				sectionProgressID, actorID, sp.SectionProgressWatchedPercent)
			return refreshRegistrationAggregates(tx, sp.SectionProgressRegistrationID)
		}
		return nil
	})
}

type sectionViewRow struct {
	SectionProgressID uuid.UUID           `gorm:"column:section_progress_id"`
	WatchedSeconds    int                 `gorm:"column:section_progress_watched_seconds"`
	TotalSeconds      *int                `gorm:"column:section_progress_total_seconds"`
	WatchedPercent    int                 `gorm:"column:section_progress_watched_percent"`
	Status            model.SectionStatus `gorm:"column:section_progress_status"`

	SectionID       uuid.UUID  `gorm:"column:course_section_id"`
	SectionTitle    string     `gorm:"column:course_section_title"`
	SectionPosition int        `gorm:"column:course_section_position"`
	VideoURL        *string    `gorm:"column:course_section_video_url"`
	ReviewTestID    *uuid.UUID `gorm:"column:course_section_test_id"`
}

// LecturesAndTests: tampilan urut materi + tes review untuk satu registrasi.
// Murni read-side, tidak ada mutasi.
func (s *ProgressService) LecturesAndTests(ctx context.Context, courseID, userID uuid.UUID) ([]dto.SectionView, error) {
	var registration model.RegistrationModel
	err := s.DB.WithContext(ctx).
		Where("registration_course_id = ? AND registration_user_id = ?", courseID, userID).
		First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: registrasi course %s", helper.ErrNotFound, courseID)
		}
		return nil, err
	}

	var rows []sectionViewRow
	if err := s.DB.WithContext(ctx).
		Table("section_progress AS sp").
		Select(`sp.section_progress_id,
			sp.section_progress_watched_seconds,
			sp.section_progress_total_seconds,
			sp.section_progress_watched_percent,
			sp.section_progress_status,
			cs.course_section_id,
			cs.course_section_title,
			cs.course_section_position,
			cs.course_section_video_url,
			cs.course_section_test_id`).
		Joins("JOIN course_sections AS cs ON cs.course_section_id = sp.section_progress_section_id").
		Where("sp.section_progress_registration_id = ?", registration.RegistrationID).
		Order("cs.course_section_position ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	// Tes review di-resolve dua arah, sama seperti aggregator kelulusan:
	// jalur utama tes menunjuk section (test_course_section_id), jalur
	// legacy section menunjuk tes (course_section_test_id). Jalur utama
	// menang kalau keduanya terisi.
	sectionIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		sectionIDs = append(sectionIDs, r.SectionID)
	}

	reviewBySection := map[uuid.UUID]uuid.UUID{}
	titles := map[uuid.UUID]string{}
	if len(sectionIDs) > 0 {
		var linked []testModel.TestModel
		if err := s.DB.WithContext(ctx).
			Where("test_course_section_id IN ? AND test_type = ?",
				sectionIDs, testModel.TestTypeLectureReview).
			Find(&linked).Error; err != nil {
			return nil, err
		}
		for i := range linked {
			if sid := linked[i].TestCourseSectionID; sid != nil {
				reviewBySection[*sid] = linked[i].TestID
				titles[linked[i].TestID] = linked[i].TestTitle
			}
		}
	}

	legacyIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		if _, ok := reviewBySection[r.SectionID]; ok || r.ReviewTestID == nil {
			continue
		}
		reviewBySection[r.SectionID] = *r.ReviewTestID
		legacyIDs = append(legacyIDs, *r.ReviewTestID)
	}
	if len(legacyIDs) > 0 {
		var tests []testModel.TestModel
		if err := s.DB.WithContext(ctx).
			Where("test_id IN ?", legacyIDs).
			Find(&tests).Error; err != nil {
			return nil, err
		}
		for i := range tests {
			titles[tests[i].TestID] = tests[i].TestTitle
		}
	}

	counts := map[uuid.UUID]int{}
	if len(reviewBySection) > 0 {
		testIDs := make([]uuid.UUID, 0, len(reviewBySection))
		for _, id := range reviewBySection {
			testIDs = append(testIDs, id)
		}

		type questionCount struct {
			TestID uuid.UUID `gorm:"column:question_test_id"`
			Total  int       `gorm:"column:total"`
		}
		var qc []questionCount
		if err := s.DB.WithContext(ctx).
			Model(&testModel.QuestionModel{}).
			Select("question_test_id, COUNT(*) AS total").
			Where("question_test_id IN ?", testIDs).
			Group("question_test_id").
			Scan(&qc).Error; err != nil {
			return nil, err
		}
		for _, q := range qc {
			counts[q.TestID] = q.Total
		}
	}

	views := make([]dto.SectionView, 0, len(rows))
	for _, r := range rows {
		view := dto.SectionView{
			SectionProgressID: r.SectionProgressID,
			SectionID:         r.SectionID,
			SectionTitle:      r.SectionTitle,
			SectionPosition:   r.SectionPosition,
			VideoURL:          r.VideoURL,
			WatchedSeconds:    r.WatchedSeconds,
			TotalSeconds:      r.TotalSeconds,
			WatchedPercent:    r.WatchedPercent,
			Status:            r.Status,
			VideoDone:         r.Status.VideoDone(),
			ReviewDone:        r.Status.ReviewDone(),
			SectionDone:       r.Status.Done(),
		}
		if testID, ok := reviewBySection[r.SectionID]; ok {
			id := testID
			view.ReviewTestID = &id
			if title, ok := titles[testID]; ok {
				view.ReviewTestTitle = &title
			}
			if n, ok := counts[testID]; ok {
				count := n
				view.ReviewTestQuestionCount = &count
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// refreshRegistrationAggregates menghitung ulang agregat registrasi dari
// baris SectionProgress: lecturesCompleted, totalLectures, allSectionsDone.
func refreshRegistrationAggregates(tx *gorm.DB, registrationID uuid.UUID) error {
	var total int64
	if err := tx.Model(&model.SectionProgressModel{}).
		Where("section_progress_registration_id = ?", registrationID).
		Count(&total).Error; err != nil {
		return err
	}

	var done int64
	if err := tx.Model(&model.SectionProgressModel{}).
		Where("section_progress_registration_id = ? AND section_progress_status = ?",
			registrationID, model.SectionComplete).
		Count(&done).Error; err != nil {
		return err
	}

	return tx.Model(&model.RegistrationModel{}).
		Where("registration_id = ?", registrationID).
		Updates(map[string]interface{}{
			"registration_total_lectures":     total,
			"registration_lectures_completed": done,
			"registration_all_sections_done":  total > 0 && done == total,
		}).Error
}
