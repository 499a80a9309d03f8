// Package testdb menyiapkan SQLite in-memory untuk test service.
// Skema ditulis eksplisit karena tag default gen_random_uuid() di model
// adalah DDL Postgres; service selalu mengisi UUID dari aplikasi sehingga
// default-nya tidak dibutuhkan di test.
package testdb

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var schema = []string{
	`CREATE TABLE courses (
		course_id TEXT PRIMARY KEY,
		course_title TEXT NOT NULL,
		course_description TEXT,
		course_image_url TEXT,
		course_total_sections INTEGER NOT NULL DEFAULT 0,
		course_registration_count INTEGER NOT NULL DEFAULT 0,
		course_view_count INTEGER NOT NULL DEFAULT 0,
		course_created_at DATETIME,
		course_updated_at DATETIME,
		course_deleted_at DATETIME
	)`,
	`CREATE TABLE course_sections (
		course_section_id TEXT PRIMARY KEY,
		course_section_course_id TEXT NOT NULL,
		course_section_title TEXT NOT NULL,
		course_section_position INTEGER NOT NULL,
		course_section_video_url TEXT,
		course_section_video_duration_seconds INTEGER,
		course_section_test_id TEXT,
		course_section_created_at DATETIME,
		course_section_updated_at DATETIME
	)`,
	`CREATE TABLE tests (
		test_id TEXT PRIMARY KEY,
		test_course_id TEXT NOT NULL,
		test_course_section_id TEXT,
		test_type TEXT NOT NULL,
		test_title TEXT NOT NULL,
		test_created_at DATETIME,
		test_updated_at DATETIME
	)`,
	`CREATE TABLE test_questions (
		question_id TEXT PRIMARY KEY,
		question_test_id TEXT NOT NULL,
		question_type TEXT NOT NULL,
		question_order_index INTEGER NOT NULL,
		question_text TEXT NOT NULL,
		question_answer_key TEXT,
		question_attachments TEXT,
		question_created_at DATETIME,
		question_updated_at DATETIME
	)`,
	`CREATE TABLE test_attempts (
		test_attempt_id TEXT PRIMARY KEY,
		test_attempt_test_id TEXT NOT NULL,
		test_attempt_user_id TEXT NOT NULL,
		test_attempt_answers TEXT,
		test_attempt_score INTEGER NOT NULL,
		test_attempt_correct_count INTEGER NOT NULL,
		test_attempt_total_questions INTEGER NOT NULL,
		test_attempt_passed BOOLEAN NOT NULL,
		test_attempt_number INTEGER NOT NULL,
		test_attempt_detail TEXT,
		test_attempt_created_at DATETIME
	)`,
	`CREATE TABLE course_registrations (
		registration_id TEXT PRIMARY KEY,
		registration_user_id TEXT NOT NULL,
		registration_course_id TEXT NOT NULL,
		registration_total_lectures INTEGER NOT NULL DEFAULT 0,
		registration_lectures_completed INTEGER NOT NULL DEFAULT 0,
		registration_entrance_test_done BOOLEAN NOT NULL DEFAULT 0,
		registration_survey_done BOOLEAN NOT NULL DEFAULT 0,
		registration_all_sections_done BOOLEAN NOT NULL DEFAULT 0,
		registration_final_exam_done BOOLEAN NOT NULL DEFAULT 0,
		registration_course_done BOOLEAN NOT NULL DEFAULT 0,
		registration_certificate_id TEXT,
		registration_created_at DATETIME,
		registration_updated_at DATETIME,
		UNIQUE (registration_user_id, registration_course_id)
	)`,
	`CREATE TABLE section_progress (
		section_progress_id TEXT PRIMARY KEY,
		section_progress_registration_id TEXT NOT NULL,
		section_progress_section_id TEXT NOT NULL,
		section_progress_watched_seconds INTEGER NOT NULL DEFAULT 0,
		section_progress_total_seconds INTEGER,
		section_progress_watched_percent INTEGER NOT NULL DEFAULT 0,
		section_progress_status TEXT NOT NULL DEFAULT 'NOT_STARTED',
		section_progress_created_at DATETIME,
		section_progress_updated_at DATETIME
	)`,
	`CREATE TABLE certificates (
		certificate_id TEXT PRIMARY KEY,
		certificate_type TEXT NOT NULL,
		certificate_user_id TEXT NOT NULL,
		certificate_course_id TEXT,
		certificate_title TEXT NOT NULL,
		certificate_description TEXT,
		certificate_object_key TEXT NOT NULL,
		certificate_preview_object_key TEXT,
		certificate_issued_at DATETIME NOT NULL,
		certificate_expires_at DATETIME,
		certificate_created_at DATETIME,
		certificate_deleted_at DATETIME
	)`,
}

// Open membuka DB in-memory segar per test.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// :memory: hidup per koneksi; satu koneksi supaya skema tidak hilang.
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}
