package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	QuestionTypeSingleSelect   = "SINGLE_SELECT"
	QuestionTypeMultipleSelect = "MULTIPLE_SELECT"
)

type QuestionModel struct {
	QuestionID     uuid.UUID `gorm:"column:question_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"question_id"`
	QuestionTestID uuid.UUID `gorm:"column:question_test_id;type:uuid;not null" json:"question_test_id"`

	QuestionType       string `gorm:"column:question_type;type:varchar(32);not null" json:"question_type"`
	QuestionOrderIndex int    `gorm:"column:question_order_index;not null" json:"question_order_index"`
	QuestionText       string `gorm:"column:question_text;type:text;not null" json:"question_text"`

	// Kunci jawaban tersimpan sebagai JSON; dua bentuk lama masih beredar
	// di data, parsing-nya satu pintu di service.ParseAnswerKey.
	QuestionAnswerKey datatypes.JSON `gorm:"column:question_answer_key;type:jsonb" json:"-"`

	// Metadata lampiran (nama file + object key); isi file di OSS.
	QuestionAttachments datatypes.JSON `gorm:"column:question_attachments;type:jsonb" json:"question_attachments,omitempty"`

	QuestionCreatedAt time.Time  `gorm:"column:question_created_at;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt *time.Time `gorm:"column:question_updated_at;autoUpdateTime" json:"question_updated_at,omitempty"`
}

func (QuestionModel) TableName() string {
	return "test_questions"
}
