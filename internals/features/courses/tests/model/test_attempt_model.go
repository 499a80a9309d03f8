package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TestAttemptModel append-only: satu baris per submit, tidak pernah di-update.
type TestAttemptModel struct {
	TestAttemptID     uuid.UUID `gorm:"column:test_attempt_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"test_attempt_id"`
	TestAttemptTestID uuid.UUID `gorm:"column:test_attempt_test_id;type:uuid;not null" json:"test_attempt_test_id"`
	TestAttemptUserID uuid.UUID `gorm:"column:test_attempt_user_id;type:uuid;not null" json:"test_attempt_user_id"`

	// Jawaban apa adanya dari user, untuk audit.
	TestAttemptAnswers datatypes.JSON `gorm:"column:test_attempt_answers;type:jsonb" json:"test_attempt_answers"`

	TestAttemptScore          int  `gorm:"column:test_attempt_score;not null" json:"test_attempt_score"`
	TestAttemptCorrectCount   int  `gorm:"column:test_attempt_correct_count;not null" json:"test_attempt_correct_count"`
	TestAttemptTotalQuestions int  `gorm:"column:test_attempt_total_questions;not null" json:"test_attempt_total_questions"`
	TestAttemptPassed         bool `gorm:"column:test_attempt_passed;not null" json:"test_attempt_passed"`

	// 1-based, naik 1 per attempt untuk pasangan (test,user); diisi di
	// transaksi yang sama dengan insert supaya tidak pernah dipakai ulang.
	TestAttemptNumber int `gorm:"column:test_attempt_number;not null" json:"test_attempt_number"`

	// Rincian penilaian per soal.
	TestAttemptDetail datatypes.JSON `gorm:"column:test_attempt_detail;type:jsonb" json:"test_attempt_detail"`

	TestAttemptCreatedAt time.Time `gorm:"column:test_attempt_created_at;autoCreateTime" json:"test_attempt_created_at"`
}

func (TestAttemptModel) TableName() string {
	return "test_attempts"
}
