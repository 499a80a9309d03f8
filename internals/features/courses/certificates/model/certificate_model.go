package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CertificateTypeProfessional     = "PROFESSIONAL"
	CertificateTypeCourseCompletion = "COURSE_COMPLETION"
)

// CertificateModel: artefak PDF + preview di OSS.
// Sertifikat COURSE_COMPLETION immutable: tidak pernah di-soft-delete,
// dan maksimal satu yang hidup per (user, course).
type CertificateModel struct {
	CertificateID     uuid.UUID  `gorm:"column:certificate_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"certificate_id"`
	CertificateType   string     `gorm:"column:certificate_type;type:varchar(32);not null" json:"certificate_type"`
	CertificateUserID uuid.UUID  `gorm:"column:certificate_user_id;type:uuid;not null" json:"certificate_user_id"`
	CertificateCourseID *uuid.UUID `gorm:"column:certificate_course_id;type:uuid" json:"certificate_course_id,omitempty"`

	CertificateTitle       string `gorm:"column:certificate_title;type:varchar(255);not null" json:"certificate_title"`
	CertificateDescription string `gorm:"column:certificate_description;type:text" json:"certificate_description"`

	CertificateObjectKey        string  `gorm:"column:certificate_object_key;type:text;not null" json:"certificate_object_key"`
	CertificatePreviewObjectKey *string `gorm:"column:certificate_preview_object_key;type:text" json:"certificate_preview_object_key,omitempty"`

	CertificateIssuedAt  time.Time  `gorm:"column:certificate_issued_at;not null" json:"certificate_issued_at"`
	CertificateExpiresAt *time.Time `gorm:"column:certificate_expires_at" json:"certificate_expires_at,omitempty"`

	CertificateCreatedAt time.Time      `gorm:"column:certificate_created_at;autoCreateTime" json:"certificate_created_at"`
	DeletedAt            gorm.DeletedAt `gorm:"column:certificate_deleted_at" json:"certificate_deleted_at,omitempty"`
}

func (CertificateModel) TableName() string {
	return "certificates"
}
