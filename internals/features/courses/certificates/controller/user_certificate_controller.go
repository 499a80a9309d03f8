package controller

import (
	"encoding/base64"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kursusku_backend/internals/features/courses/certificates/dto"
	"kursusku_backend/internals/features/courses/certificates/model"
	"kursusku_backend/internals/features/courses/certificates/service"
	helper "kursusku_backend/internals/helpers"
)

var validate = validator.New()

type UserCertificateController struct {
	Issuer *service.IssuerService
}

func NewUserCertificateController(issuer *service.IssuerService) *UserCertificateController {
	return &UserCertificateController{Issuer: issuer}
}

// GetOrGenerateCourseCertificate
// POST /api/u/courses/:course_id/certificate
func (ctrl *UserCertificateController) GetOrGenerateCourseCertificate(c *fiber.Ctx) error {
	userID := helper.GetUserUUID(c)
	if userID == uuid.Nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}
	courseID, err := helper.ParseUUIDParam(c, "course_id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	certificate, err := ctrl.Issuer.GetOrGenerate(c.Context(), userID, courseID, helper.GetUserName(c), userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Sertifikat berhasil diambil", dto.ToCertificateResponse(certificate))
}

// ListMyCertificates
// GET /api/u/certificates
func (ctrl *UserCertificateController) ListMyCertificates(c *fiber.Ctx) error {
	userID := helper.GetUserUUID(c)
	if userID == uuid.Nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	var certificates []model.CertificateModel
	if err := ctrl.Issuer.DB.WithContext(c.Context()).
		Where("certificate_user_id = ?", userID).
		Order("certificate_issued_at DESC").
		Find(&certificates).Error; err != nil {
		log.Println("[ERROR] gagal mengambil daftar sertifikat:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar sertifikat")
	}

	responses := make([]dto.CertificateResponse, 0, len(certificates))
	for i := range certificates {
		responses = append(responses, dto.ToCertificateResponse(&certificates[i]))
	}
	return helper.Success(c, "Daftar sertifikat berhasil diambil", responses)
}

// CreateProfessionalCertificate
// POST /api/u/certificates/professional
func (ctrl *UserCertificateController) CreateProfessionalCertificate(c *fiber.Ctx) error {
	userID := helper.GetUserUUID(c)
	if userID == uuid.Nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	var req dto.CreateProfessionalCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	fileBytes, err := base64.StdEncoding.DecodeString(req.CertificateFileBase64)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File sertifikat bukan base64 yang valid")
	}

	certificate, err := ctrl.Issuer.CreateProfessional(c.Context(), userID, userID, service.ProfessionalCertificateInput{
		Title:       req.CertificateTitle,
		Description: req.CertificateDescription,
		FileBytes:   fileBytes,
		FileType:    req.CertificateFileType,
		ExpiresAt:   req.CertificateExpiresAt,
	})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Sertifikat berhasil dibuat", dto.ToCertificateResponse(certificate))
}

// DeleteCertificate
// DELETE /api/u/certificates/:id
func (ctrl *UserCertificateController) DeleteCertificate(c *fiber.Ctx) error {
	userID := helper.GetUserUUID(c)
	if userID == uuid.Nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}
	certificateID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	if err := ctrl.Issuer.Delete(c.Context(), certificateID, userID); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Sertifikat berhasil dihapus", nil)
}

// GetCertificateURL
// GET /api/u/certificates/:id/url
func (ctrl *UserCertificateController) GetCertificateURL(c *fiber.Ctx) error {
	userID := helper.GetUserUUID(c)
	if userID == uuid.Nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}
	certificateID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	url, err := ctrl.Issuer.ArtifactURL(c.Context(), certificateID, userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "URL sertifikat berhasil dibuat", fiber.Map{"url": url})
}
