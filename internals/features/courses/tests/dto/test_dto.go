package dto

import (
	"time"

	"github.com/google/uuid"
)

// Satu jawaban per soal. SelectedIDs kosong = soal tidak dijawab.
type AnswerSubmission struct {
	QuestionID  uuid.UUID `json:"question_id" validate:"required"`
	SelectedIDs []string  `json:"selected_ids"`
}

type SubmitTestRequest struct {
	Answers []AnswerSubmission `json:"answers" validate:"required,dive"`
}

// Rincian penilaian satu soal; disimpan apa adanya di blob detail attempt.
type QuestionGrading struct {
	QuestionID  uuid.UUID `json:"question_id"`
	SelectedIDs []string  `json:"selected_ids"`
	IsCorrect   bool      `json:"is_correct"`
}

type AttemptResult struct {
	TestAttemptID  uuid.UUID         `json:"test_attempt_id"`
	TestID         uuid.UUID         `json:"test_id"`
	UserID         uuid.UUID         `json:"user_id"`
	Score          int               `json:"score"`
	CorrectCount   int               `json:"correct_count"`
	TotalQuestions int               `json:"total_questions"`
	Passed         bool              `json:"passed"`
	AttemptNumber  int               `json:"attempt_number"`
	Detail         []QuestionGrading `json:"detail"`
	SubmittedAt    time.Time         `json:"submitted_at"`
}

// Tampilan soal untuk peserta: opsi tanpa flag benar/salah,
// lampiran berupa URL bertanda-tangan.
type QuestionChoice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuestionAttachment struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

type QuestionView struct {
	QuestionID  uuid.UUID            `json:"question_id"`
	Type        string               `json:"question_type"`
	OrderIndex  int                  `json:"question_order_index"`
	Text        string               `json:"question_text"`
	Choices     []QuestionChoice     `json:"choices"`
	Attachments []QuestionAttachment `json:"attachments,omitempty"`
}
