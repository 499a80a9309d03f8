package dto

import (
	"time"

	"github.com/google/uuid"

	"kursusku_backend/internals/features/courses/certificates/model"
)

type CertificateResponse struct {
	CertificateID          uuid.UUID  `json:"certificate_id"`
	CertificateType        string     `json:"certificate_type"`
	CertificateCourseID    *uuid.UUID `json:"certificate_course_id,omitempty"`
	CertificateTitle       string     `json:"certificate_title"`
	CertificateDescription string     `json:"certificate_description"`
	CertificateIssuedAt    time.Time  `json:"certificate_issued_at"`
	CertificateExpiresAt   *time.Time `json:"certificate_expires_at,omitempty"`
	CertificateHasPreview  bool       `json:"certificate_has_preview"`
}

func ToCertificateResponse(m *model.CertificateModel) CertificateResponse {
	return CertificateResponse{
		CertificateID:          m.CertificateID,
		CertificateType:        m.CertificateType,
		CertificateCourseID:    m.CertificateCourseID,
		CertificateTitle:       m.CertificateTitle,
		CertificateDescription: m.CertificateDescription,
		CertificateIssuedAt:    m.CertificateIssuedAt,
		CertificateExpiresAt:   m.CertificateExpiresAt,
		CertificateHasPreview:  m.CertificatePreviewObjectKey != nil,
	}
}

type CreateProfessionalCertificateRequest struct {
	CertificateTitle       string     `json:"certificate_title" validate:"required,max=255"`
	CertificateDescription string     `json:"certificate_description" validate:"max=2000"`
	CertificateFileBase64  string     `json:"certificate_file_base64" validate:"required"`
	CertificateFileType    string     `json:"certificate_file_type" validate:"required"`
	CertificateExpiresAt   *time.Time `json:"certificate_expires_at,omitempty"`
}
