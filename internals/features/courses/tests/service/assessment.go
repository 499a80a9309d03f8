package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/courses/tests/dto"
	"kursusku_backend/internals/features/courses/tests/model"
	helper "kursusku_backend/internals/helpers"
)

// CompletionSink menerima sinyal "tes lulus" dari mesin penilaian.
// Implementasinya ada di fitur registrations (aggregator penyelesaian kursus);
// dipanggil di dalam transaksi yang sama dengan insert attempt.
type CompletionSink interface {
	ApplyPassedTest(tx *gorm.DB, test *model.TestModel, userID uuid.UUID) error
}

// AttachmentSigner menandatangani URL lampiran soal (blob di OSS).
type AttachmentSigner interface {
	PresignedGetURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

type AssessmentService struct {
	DB               *gorm.DB
	Completion       CompletionSink
	Signer           AttachmentSigner
	AttachmentBucket string
}

func NewAssessmentService(db *gorm.DB, completion CompletionSink, signer AttachmentSigner, attachmentBucket string) *AssessmentService {
	return &AssessmentService{
		DB:               db,
		Completion:       completion,
		Signer:           signer,
		AttachmentBucket: attachmentBucket,
	}
}

// Submit menilai jawaban terhadap kunci per soal (kesamaan himpunan persis,
// tanpa partial credit), menyimpan attempt baru dengan nomor urut monoton,
// lalu meneruskan kelulusan ke aggregator. Seluruhnya satu transaksi:
// attempt tidak pernah tersimpan setengah jadi.
func (s *AssessmentService) Submit(ctx context.Context, testID, userID, actorID uuid.UUID, answers []dto.AnswerSubmission) (*dto.AttemptResult, error) {
	var result *dto.AttemptResult

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var test model.TestModel
		if err := tx.First(&test, "test_id = ?", testID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: test %s", helper.ErrNotFound, testID)
			}
			return err
		}

		var questions []model.QuestionModel
		if err := tx.
			Where("question_test_id = ?", testID).
			Order("question_order_index ASC").
			Find(&questions).Error; err != nil {
			return err
		}

		submitted := make(map[uuid.UUID][]string, len(answers))
		for _, a := range answers {
			submitted[a.QuestionID] = a.SelectedIDs
		}

		correctCount := 0
		detail := make([]dto.QuestionGrading, 0, len(questions))
		for i := range questions {
			q := &questions[i]
			key := ParseAnswerKey(q.QuestionAnswerKey)

			selected := map[string]struct{}{}
			for _, raw := range submitted[q.QuestionID] {
				if cid := key.CanonicalizeSubmitted(raw); cid != "" {
					selected[cid] = struct{}{}
				}
			}

			// Soal tanpa jawaban = himpunan kosong; benar hanya jika
			// kuncinya juga kosong.
			isCorrect := setsEqual(selected, key.CorrectSet())
			if isCorrect {
				correctCount++
			}
			detail = append(detail, dto.QuestionGrading{
				QuestionID:  q.QuestionID,
				SelectedIDs: submitted[q.QuestionID],
				IsCorrect:   isCorrect,
			})
		}

		total := len(questions)
		score := 0
		if total > 0 {
			score = correctCount * 100 / total
		}
		passed := score >= constants.QuizPassingGrade

		var prior int64
		if err := tx.Model(&model.TestAttemptModel{}).
			Where("test_attempt_test_id = ? AND test_attempt_user_id = ?", testID, userID).
			Count(&prior).Error; err != nil {
			return err
		}

		answersBlob, err := sonic.Marshal(answers)
		if err != nil {
			return err
		}
		detailBlob, err := sonic.Marshal(detail)
		if err != nil {
			return err
		}

		attempt := model.TestAttemptModel{
			TestAttemptID:             uuid.New(),
			TestAttemptTestID:         testID,
			TestAttemptUserID:         userID,
			TestAttemptAnswers:        datatypes.JSON(answersBlob),
			TestAttemptScore:          score,
			TestAttemptCorrectCount:   correctCount,
			TestAttemptTotalQuestions: total,
			TestAttemptPassed:         passed,
			TestAttemptNumber:         int(prior) + 1,
			TestAttemptDetail:         datatypes.JSON(detailBlob),
			TestAttemptCreatedAt:      time.Now(),
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		log.Printf("[INFO] attempt #%d test=%s user=%s actor=%s score=%d passed=%t",
			attempt.TestAttemptNumber, testID, userID, actorID, score, passed)

		if passed && s.Completion != nil {
			if err := s.Completion.ApplyPassedTest(tx, &test, userID); err != nil {
				return err
			}
		}

		result = attemptToResult(&attempt, detail)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Result mengembalikan attempt paling baru untuk (test,user).
func (s *AssessmentService) Result(ctx context.Context, testID, userID uuid.UUID) (*dto.AttemptResult, error) {
	var attempt model.TestAttemptModel
	err := s.DB.WithContext(ctx).
		Where("test_attempt_test_id = ? AND test_attempt_user_id = ?", testID, userID).
		Order("test_attempt_created_at DESC").
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: belum ada attempt untuk test %s", helper.ErrNotFound, testID)
		}
		return nil, err
	}

	var detail []dto.QuestionGrading
	if len(attempt.TestAttemptDetail) > 0 {
		if err := sonic.Unmarshal(attempt.TestAttemptDetail, &detail); err != nil {
			log.Printf("[WARNING] detail attempt %s tidak bisa diparse: %v", attempt.TestAttemptID, err)
			detail = nil
		}
	}
	return attemptToResult(&attempt, detail), nil
}

// Questions mengembalikan daftar soal versi peserta: opsi hasil normalisasi
// kunci dengan flag benar dibuang, lampiran berupa presigned URL.
func (s *AssessmentService) Questions(ctx context.Context, testID uuid.UUID) ([]dto.QuestionView, error) {
	var test model.TestModel
	if err := s.DB.WithContext(ctx).First(&test, "test_id = ?", testID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: test %s", helper.ErrNotFound, testID)
		}
		return nil, err
	}

	var questions []model.QuestionModel
	if err := s.DB.WithContext(ctx).
		Where("question_test_id = ?", testID).
		Order("question_order_index ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}

	views := make([]dto.QuestionView, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		key := ParseAnswerKey(q.QuestionAnswerKey)

		choices := make([]dto.QuestionChoice, 0, len(key.Choices()))
		for _, ch := range key.Choices() {
			choices = append(choices, dto.QuestionChoice{ID: ch.ID, Text: ch.Text})
		}

		views = append(views, dto.QuestionView{
			QuestionID:  q.QuestionID,
			Type:        q.QuestionType,
			OrderIndex:  q.QuestionOrderIndex,
			Text:        q.QuestionText,
			Choices:     choices,
			Attachments: s.signAttachments(ctx, q),
		})
	}
	return views, nil
}

type attachmentMeta struct {
	FileName  string `json:"file_name"`
	ObjectKey string `json:"object_key"`
}

func (s *AssessmentService) signAttachments(ctx context.Context, q *model.QuestionModel) []dto.QuestionAttachment {
	if len(q.QuestionAttachments) == 0 || s.Signer == nil {
		return nil
	}
	var metas []attachmentMeta
	if err := sonic.Unmarshal(q.QuestionAttachments, &metas); err != nil {
		log.Printf("[WARNING] metadata lampiran soal %s tidak bisa diparse: %v", q.QuestionID, err)
		return nil
	}
	out := make([]dto.QuestionAttachment, 0, len(metas))
	for _, m := range metas {
		url, err := s.Signer.PresignedGetURL(ctx, s.AttachmentBucket, m.ObjectKey, 15*time.Minute)
		if err != nil {
			log.Printf("[WARNING] gagal sign lampiran %s: %v", m.ObjectKey, err)
			continue
		}
		out = append(out, dto.QuestionAttachment{FileName: m.FileName, URL: url})
	}
	return out
}

func attemptToResult(m *model.TestAttemptModel, detail []dto.QuestionGrading) *dto.AttemptResult {
	return &dto.AttemptResult{
		TestAttemptID:  m.TestAttemptID,
		TestID:         m.TestAttemptTestID,
		UserID:         m.TestAttemptUserID,
		Score:          m.TestAttemptScore,
		CorrectCount:   m.TestAttemptCorrectCount,
		TotalQuestions: m.TestAttemptTotalQuestions,
		Passed:         m.TestAttemptPassed,
		AttemptNumber:  m.TestAttemptNumber,
		Detail:         detail,
		SubmittedAt:    m.TestAttemptCreatedAt,
	}
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
