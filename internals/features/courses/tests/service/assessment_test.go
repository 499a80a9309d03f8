package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kursusku_backend/internals/databases/testdb"
	"kursusku_backend/internals/features/courses/tests/dto"
	"kursusku_backend/internals/features/courses/tests/model"
	helper "kursusku_backend/internals/helpers"
)

type recordingSink struct {
	calls []uuid.UUID // test id per panggilan
}

func (r *recordingSink) ApplyPassedTest(_ *gorm.DB, test *model.TestModel, _ uuid.UUID) error {
	r.calls = append(r.calls, test.TestID)
	return nil
}

// seedTest membuat satu tes + n soal single-select. Setiap soal punya dua
// opsi; opsi pertama yang benar. Mengembalikan id tes, id soal urut, dan
// id opsi benar per soal.
func seedTest(t *testing.T, db *gorm.DB, n int) (uuid.UUID, []uuid.UUID, []string) {
	t.Helper()

	testID := uuid.New()
	require.NoError(t, db.Create(&model.TestModel{
		TestID:       testID,
		TestCourseID: uuid.New(),
		TestType:     model.TestTypeLectureReview,
		TestTitle:    "Kuis Review",
	}).Error)

	questionIDs := make([]uuid.UUID, 0, n)
	correctIDs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		correct := uuid.New()
		wrong := uuid.New()
		blob := fmt.Sprintf(
			`[{"id":"%s","content":"Benar %d","isCorrect":true},{"id":"%s","content":"Salah %d","isCorrect":false}]`,
			correct, i, wrong, i)

		qid := uuid.New()
		require.NoError(t, db.Create(&model.QuestionModel{
			QuestionID:         qid,
			QuestionTestID:     testID,
			QuestionType:       model.QuestionTypeSingleSelect,
			QuestionOrderIndex: i,
			QuestionText:       fmt.Sprintf("Soal %d", i),
			QuestionAnswerKey:  datatypes.JSON([]byte(blob)),
		}).Error)

		questionIDs = append(questionIDs, qid)
		correctIDs = append(correctIDs, correct.String())
	}
	return testID, questionIDs, correctIDs
}

func TestSubmitAllCorrect(t *testing.T) {
	db := testdb.Open(t)
	sink := &recordingSink{}
	svc := NewAssessmentService(db, sink, nil, "")

	testID, qids, correct := seedTest(t, db, 3)
	userID := uuid.New()

	answers := []dto.AnswerSubmission{
		{QuestionID: qids[0], SelectedIDs: []string{correct[0]}},
		{QuestionID: qids[1], SelectedIDs: []string{correct[1]}},
		{QuestionID: qids[2], SelectedIDs: []string{correct[2]}},
	}

	result, err := svc.Submit(context.Background(), testID, userID, userID, answers)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 3, result.CorrectCount)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.True(t, result.Passed)
	assert.Equal(t, 1, result.AttemptNumber)
	assert.Len(t, sink.calls, 1)
}

func TestSubmitTwoOfThreeFails(t *testing.T) {
	db := testdb.Open(t)
	sink := &recordingSink{}
	svc := NewAssessmentService(db, sink, nil, "")

	testID, qids, correct := seedTest(t, db, 3)
	userID := uuid.New()

	answers := []dto.AnswerSubmission{
		{QuestionID: qids[0], SelectedIDs: []string{correct[0]}},
		{QuestionID: qids[1], SelectedIDs: []string{correct[1]}},
		{QuestionID: qids[2], SelectedIDs: []string{"jawaban-ngawur"}},
	}

	result, err := svc.Submit(context.Background(), testID, userID, userID, answers)
	require.NoError(t, err)

	// 2*100/3 = 66 (integer division), di bawah ambang 70.
	assert.Equal(t, 66, result.Score)
	assert.False(t, result.Passed)
	assert.Empty(t, sink.calls)

	require.Len(t, result.Detail, 3)
	assert.True(t, result.Detail[0].IsCorrect)
	assert.True(t, result.Detail[1].IsCorrect)
	assert.False(t, result.Detail[2].IsCorrect)
}

func TestSubmitExactSetEquality(t *testing.T) {
	db := testdb.Open(t)
	svc := NewAssessmentService(db, nil, nil, "")

	testID := uuid.New()
	require.NoError(t, db.Create(&model.TestModel{
		TestID:       testID,
		TestCourseID: uuid.New(),
		TestType:     model.TestTypeLectureReview,
		TestTitle:    "Multi pilih",
	}).Error)

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	blob := fmt.Sprintf(
		`[{"id":"%s","content":"A","isCorrect":true},{"id":"%s","content":"B","isCorrect":true},{"id":"%s","content":"C","isCorrect":false}]`,
		a, b, c)
	qid := uuid.New()
	require.NoError(t, db.Create(&model.QuestionModel{
		QuestionID:         qid,
		QuestionTestID:     testID,
		QuestionType:       model.QuestionTypeMultipleSelect,
		QuestionOrderIndex: 0,
		QuestionText:       "Pilih semua yang benar",
		QuestionAnswerKey:  datatypes.JSON([]byte(blob)),
	}).Error)

	userID := uuid.New()
	cases := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"persis", []string{a.String(), b.String()}, true},
		{"subset", []string{a.String()}, false},
		{"superset", []string{a.String(), b.String(), c.String()}, false},
		{"kosong", nil, false},
	}
	for _, tc := range cases {
		result, err := svc.Submit(context.Background(), testID, userID, userID,
			[]dto.AnswerSubmission{{QuestionID: qid, SelectedIDs: tc.selected}})
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, result.Detail[0].IsCorrect, tc.name)
	}
}

func TestSubmitMalformedKeyGradesWrong(t *testing.T) {
	db := testdb.Open(t)
	svc := NewAssessmentService(db, nil, nil, "")

	testID := uuid.New()
	require.NoError(t, db.Create(&model.TestModel{
		TestID:       testID,
		TestCourseID: uuid.New(),
		TestType:     model.TestTypeLectureReview,
		TestTitle:    "Kunci rusak",
	}).Error)
	qid := uuid.New()
	require.NoError(t, db.Create(&model.QuestionModel{
		QuestionID:         qid,
		QuestionTestID:     testID,
		QuestionType:       model.QuestionTypeSingleSelect,
		QuestionOrderIndex: 0,
		QuestionText:       "Soal dengan kunci korup",
		QuestionAnswerKey:  datatypes.JSON([]byte(`{"bukan":"kunci"`)),
	}).Error)

	userID := uuid.New()

	// Kunci kosong + jawaban non-kosong = salah.
	result, err := svc.Submit(context.Background(), testID, userID, userID,
		[]dto.AnswerSubmission{{QuestionID: qid, SelectedIDs: []string{"x"}}})
	require.NoError(t, err)
	assert.False(t, result.Detail[0].IsCorrect)
	assert.Equal(t, 0, result.Score)

	// Kunci kosong + jawaban kosong = dua himpunan kosong, benar.
	result, err = svc.Submit(context.Background(), testID, userID, userID,
		[]dto.AnswerSubmission{{QuestionID: qid, SelectedIDs: nil}})
	require.NoError(t, err)
	assert.True(t, result.Detail[0].IsCorrect)
}

func TestSubmitAttemptNumbering(t *testing.T) {
	db := testdb.Open(t)
	svc := NewAssessmentService(db, nil, nil, "")

	testID, qids, correct := seedTest(t, db, 1)
	userID := uuid.New()
	otherUser := uuid.New()

	answers := []dto.AnswerSubmission{{QuestionID: qids[0], SelectedIDs: []string{correct[0]}}}

	for want := 1; want <= 3; want++ {
		result, err := svc.Submit(context.Background(), testID, userID, userID, answers)
		require.NoError(t, err)
		assert.Equal(t, want, result.AttemptNumber)
	}

	// Penomoran per (test,user): user lain mulai dari 1 lagi.
	result, err := svc.Submit(context.Background(), testID, otherUser, otherUser, answers)
	require.NoError(t, err)
	assert.Equal(t, 1, result.AttemptNumber)
}

func TestSubmitTestNotFound(t *testing.T) {
	db := testdb.Open(t)
	svc := NewAssessmentService(db, nil, nil, "")

	_, err := svc.Submit(context.Background(), uuid.New(), uuid.New(), uuid.New(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestResultReturnsLatestAttempt(t *testing.T) {
	db := testdb.Open(t)
	svc := NewAssessmentService(db, nil, nil, "")

	testID, qids, correct := seedTest(t, db, 1)
	userID := uuid.New()

	_, err := svc.Submit(context.Background(), testID, userID, userID,
		[]dto.AnswerSubmission{{QuestionID: qids[0], SelectedIDs: []string{"salah"}}})
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), testID, userID, userID,
		[]dto.AnswerSubmission{{QuestionID: qids[0], SelectedIDs: []string{correct[0]}}})
	require.NoError(t, err)

	result, err := svc.Result(context.Background(), testID, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.AttemptNumber)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)
}

func TestResultNotFound(t *testing.T) {
	db := testdb.Open(t)
	svc := NewAssessmentService(db, nil, nil, "")

	_, err := svc.Result(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestQuestionsHideCorrectFlags(t *testing.T) {
	db := testdb.Open(t)
	svc := NewAssessmentService(db, nil, nil, "")

	testID, qids, _ := seedTest(t, db, 2)

	views, err := svc.Questions(context.Background(), testID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, qids[0], views[0].QuestionID)
	assert.Equal(t, qids[1], views[1].QuestionID)
	for _, v := range views {
		require.Len(t, v.Choices, 2)
		for _, ch := range v.Choices {
			assert.NotEmpty(t, ch.ID)
			assert.NotEmpty(t, ch.Text)
		}
	}
}
