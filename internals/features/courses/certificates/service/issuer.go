package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/courses/certificates/model"
	courseModel "kursusku_backend/internals/features/courses/courses/model"
	registrationModel "kursusku_backend/internals/features/courses/registrations/model"
	helper "kursusku_backend/internals/helpers"
)

const (
	previewDPI      = 144
	previewMaxSide  = 960
	previewQuality  = 80
	presignedExpiry = 15 * time.Minute
)

// BlobStore adalah kolaborator penyimpanan artefak (implementasi OSS di
// internals/helpers/oss; fake in-memory di test).
type BlobStore interface {
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
	PresignedGetURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

type IssuerService struct {
	DB       *gorm.DB
	Blob     BlobStore
	Renderer Renderer
	Bucket   string
}

func NewIssuerService(db *gorm.DB, blob BlobStore, renderer Renderer, bucket string) *IssuerService {
	return &IssuerService{DB: db, Blob: blob, Renderer: renderer, Bucket: bucket}
}

// GetOrGenerate: jalur cepat idempoten — sertifikat COURSE_COMPLETION yang
// sudah ada dikembalikan apa adanya, tanpa artefak baru. Kalau belum ada,
// syaratnya registration.courseDone; render + upload terjadi di luar
// transaksi DB (blob yatim saat crash ditoleransi, lihat catatan desain),
// baris sertifikat + backref registrasi ditulis dalam satu transaksi.
func (s *IssuerService) GetOrGenerate(ctx context.Context, userID, courseID uuid.UUID, userName string, actorID uuid.UUID) (*model.CertificateModel, error) {
	var existing model.CertificateModel
	err := s.DB.WithContext(ctx).
		Where("certificate_type = ? AND certificate_user_id = ? AND certificate_course_id = ?",
			model.CertificateTypeCourseCompletion, userID, courseID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var registration registrationModel.RegistrationModel
	err = s.DB.WithContext(ctx).
		Where("registration_course_id = ? AND registration_user_id = ?", courseID, userID).
		First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: registrasi course %s", helper.ErrNotFound, courseID)
		}
		return nil, err
	}
	if !registration.RegistrationCourseDone {
		return nil, fmt.Errorf("%w: kursus belum selesai", helper.ErrPreconditionFailed)
	}

	var course courseModel.CourseModel
	if err := s.DB.WithContext(ctx).First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course %s", helper.ErrNotFound, courseID)
		}
		return nil, err
	}

	issuedAt := time.Now()
	pdfBytes, err := s.Renderer.RenderCertificatePDF(CertificateTemplateParams{
		UserName:    userName,
		CourseTitle: course.CourseTitle,
		IssuedAt:    issuedAt,
	})
	if err != nil {
		return nil, helper.NewExternalError("certificate generation", err)
	}

	certificateID := uuid.New()
	baseKey := fmt.Sprintf("certificates/%s/%s-%s",
		userID, helper.Slugify(course.CourseTitle, 40), certificateID)
	objectKey := baseKey + ".pdf"
	previewKey := baseKey + ".webp"

	if err := s.Blob.Put(ctx, s.Bucket, objectKey, pdfBytes, "application/pdf"); err != nil {
		return nil, helper.NewExternalError("certificate generation", err)
	}

	previewBytes, err := s.renderPreview(pdfBytes)
	if err != nil {
		return nil, helper.NewExternalError("certificate generation", err)
	}
	if err := s.Blob.Put(ctx, s.Bucket, previewKey, previewBytes, "image/webp"); err != nil {
		return nil, helper.NewExternalError("certificate generation", err)
	}

	certificate := model.CertificateModel{
		CertificateID:               certificateID,
		CertificateType:             model.CertificateTypeCourseCompletion,
		CertificateUserID:           userID,
		CertificateCourseID:         &courseID,
		CertificateTitle:            course.CourseTitle,
		CertificateDescription:      fmt.Sprintf("Sertifikat penyelesaian kursus %s", course.CourseTitle),
		CertificateObjectKey:        objectKey,
		CertificatePreviewObjectKey: &previewKey,
		CertificateIssuedAt:         issuedAt,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&certificate).Error; err != nil {
			return err
		}
		return tx.Model(&registrationModel.RegistrationModel{}).
			Where("registration_id = ?", registration.RegistrationID).
			Update("registration_certificate_id", certificate.CertificateID).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] sertifikat terbit cert=%s course=%s user=%s actor=%s",
		certificate.CertificateID, courseID, userID, actorID)
	return &certificate, nil
}

type ProfessionalCertificateInput struct {
	Title       string
	Description string
	FileBytes   []byte
	FileType    string // content type, mis. "application/pdf"
	ExpiresAt   *time.Time
}

// CreateProfessional menyimpan artefak unggahan user. Untuk PDF, preview
// dibuat best-effort: kalau gagal, sertifikat tetap dibuat tanpa preview.
func (s *IssuerService) CreateProfessional(ctx context.Context, userID, actorID uuid.UUID, in ProfessionalCertificateInput) (*model.CertificateModel, error) {
	certificateID := uuid.New()
	ext := ".bin"
	if strings.Contains(in.FileType, "pdf") {
		ext = ".pdf"
	}
	objectKey := fmt.Sprintf("certificates/%s/professional-%s-%s%s",
		userID, helper.Slugify(in.Title, 40), certificateID, ext)

	if err := s.Blob.Put(ctx, s.Bucket, objectKey, in.FileBytes, in.FileType); err != nil {
		return nil, helper.NewExternalError("certificate upload", err)
	}

	var previewKey *string
	if ext == ".pdf" {
		previewBytes, err := s.renderPreview(in.FileBytes)
		if err != nil {
			log.Printf("[WARNING] preview sertifikat profesional gagal (lanjut tanpa preview): %v", err)
		} else {
			key := strings.TrimSuffix(objectKey, ext) + ".webp"
			if err := s.Blob.Put(ctx, s.Bucket, key, previewBytes, "image/webp"); err != nil {
				log.Printf("[WARNING] upload preview gagal (lanjut tanpa preview): %v", err)
			} else {
				previewKey = &key
			}
		}
	}

	certificate := model.CertificateModel{
		CertificateID:               certificateID,
		CertificateType:             model.CertificateTypeProfessional,
		CertificateUserID:           userID,
		CertificateTitle:            in.Title,
		CertificateDescription:      in.Description,
		CertificateObjectKey:        objectKey,
		CertificatePreviewObjectKey: previewKey,
		CertificateIssuedAt:         time.Now(),
		CertificateExpiresAt:        in.ExpiresAt,
	}
	if err := s.DB.WithContext(ctx).Create(&certificate).Error; err != nil {
		return nil, err
	}

	log.Printf("[INFO] sertifikat profesional dibuat cert=%s user=%s actor=%s",
		certificate.CertificateID, userID, actorID)
	return &certificate, nil
}

// Delete soft-delete sertifikat milik actor sendiri. Sertifikat user lain
// tidak dibedakan dari yang tidak ada. COURSE_COMPLETION immutable: ditolak.
func (s *IssuerService) Delete(ctx context.Context, certificateID, actorID uuid.UUID) error {
	var certificate model.CertificateModel
	if err := s.DB.WithContext(ctx).
		First(&certificate, "certificate_id = ? AND certificate_user_id = ?", certificateID, actorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: certificate %s", helper.ErrNotFound, certificateID)
		}
		return err
	}
	if certificate.CertificateType == model.CertificateTypeCourseCompletion {
		return fmt.Errorf("%w: sertifikat penyelesaian kursus tidak bisa dihapus", helper.ErrPreconditionFailed)
	}

	log.Printf("[INFO] soft-delete sertifikat %s oleh %s", certificateID, actorID)
	return s.DB.WithContext(ctx).Delete(&certificate).Error
}

// ArtifactURL: presigned URL artefak, hanya untuk sertifikat milik user.
func (s *IssuerService) ArtifactURL(ctx context.Context, certificateID, userID uuid.UUID) (string, error) {
	var certificate model.CertificateModel
	if err := s.DB.WithContext(ctx).
		First(&certificate, "certificate_id = ? AND certificate_user_id = ?", certificateID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: certificate %s", helper.ErrNotFound, certificateID)
		}
		return "", err
	}
	url, err := s.Blob.PresignedGetURL(ctx, s.Bucket, certificate.CertificateObjectKey, presignedExpiry)
	if err != nil {
		return "", helper.NewExternalError("presign certificate url", err)
	}
	return url, nil
}

func (s *IssuerService) renderPreview(pdfBytes []byte) ([]byte, error) {
	img, err := s.Renderer.RasterizeFirstPage(pdfBytes, previewDPI)
	if err != nil {
		return nil, err
	}
	resized := imaging.Fit(img, previewMaxSide, previewMaxSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, resized, &webp.Options{Lossless: false, Quality: previewQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
