package model

import (
	"time"

	"github.com/google/uuid"
)

// SectionStatus adalah state machine eksplisit progres satu section.
// Transisi hanya lewat method di bawah; status tidak pernah mundur.
type SectionStatus string

const (
	SectionNotStarted     SectionStatus = "NOT_STARTED"
	SectionWatching       SectionStatus = "WATCHING"
	SectionVideoComplete  SectionStatus = "VIDEO_COMPLETE"
	SectionReviewComplete SectionStatus = "REVIEW_COMPLETE"
	SectionComplete       SectionStatus = "SECTION_COMPLETE"
)

// VideoDone: video sudah melewati ambang tonton.
func (s SectionStatus) VideoDone() bool {
	return s == SectionVideoComplete || s == SectionComplete
}

// ReviewDone: kuis review section sudah lulus.
func (s SectionStatus) ReviewDone() bool {
	return s == SectionReviewComplete || s == SectionComplete
}

// Done: section selesai penuh (video + review).
func (s SectionStatus) Done() bool {
	return s == SectionComplete
}

// StartWatching: NOT_STARTED -> WATCHING; state lain tetap.
func (s SectionStatus) StartWatching() SectionStatus {
	if s == SectionNotStarted {
		return SectionWatching
	}
	return s
}

// MarkVideoDone: transisi saat ambang tonton terlewati.
//
//	NOT_STARTED / WATCHING  -> VIDEO_COMPLETE
//	REVIEW_COMPLETE         -> SECTION_COMPLETE
//	VIDEO_COMPLETE / SECTION_COMPLETE -> tetap
func (s SectionStatus) MarkVideoDone() SectionStatus {
	switch s {
	case SectionNotStarted, SectionWatching:
		return SectionVideoComplete
	case SectionReviewComplete:
		return SectionComplete
	default:
		return s
	}
}

// MarkReviewDone: transisi saat kuis review lulus.
//
//	NOT_STARTED / WATCHING  -> REVIEW_COMPLETE
//	VIDEO_COMPLETE          -> SECTION_COMPLETE
//	REVIEW_COMPLETE / SECTION_COMPLETE -> tetap
func (s SectionStatus) MarkReviewDone() SectionStatus {
	switch s {
	case SectionNotStarted, SectionWatching:
		return SectionReviewComplete
	case SectionVideoComplete:
		return SectionComplete
	default:
		return s
	}
}

// SectionProgressModel: snapshot per (registration, section), dibuat hanya
// saat enrollment. Section yang ditambahkan belakangan TIDAK mendapat baris
// untuk registrasi yang sudah ada.
type SectionProgressModel struct {
	SectionProgressID             uuid.UUID `gorm:"column:section_progress_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"section_progress_id"`
	SectionProgressRegistrationID uuid.UUID `gorm:"column:section_progress_registration_id;type:uuid;not null" json:"section_progress_registration_id"`
	SectionProgressSectionID      uuid.UUID `gorm:"column:section_progress_section_id;type:uuid;not null" json:"section_progress_section_id"`

	SectionProgressWatchedSeconds int  `gorm:"column:section_progress_watched_seconds;default:0" json:"section_progress_watched_seconds"`
	SectionProgressTotalSeconds   *int `gorm:"column:section_progress_total_seconds" json:"section_progress_total_seconds,omitempty"`
	SectionProgressWatchedPercent int  `gorm:"column:section_progress_watched_percent;default:0" json:"section_progress_watched_percent"`

	SectionProgressStatus SectionStatus `gorm:"column:section_progress_status;type:varchar(24);not null;default:'NOT_STARTED'" json:"section_progress_status"`

	SectionProgressCreatedAt time.Time  `gorm:"column:section_progress_created_at;autoCreateTime" json:"section_progress_created_at"`
	SectionProgressUpdatedAt *time.Time `gorm:"column:section_progress_updated_at;autoUpdateTime" json:"section_progress_updated_at,omitempty"`
}

func (SectionProgressModel) TableName() string {
	return "section_progress"
}
