package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kursusku_backend/internals/features/courses/registrations/dto"
	"kursusku_backend/internals/features/courses/registrations/service"
	helper "kursusku_backend/internals/helpers"
)

var validate = validator.New()

type UserRegistrationController struct {
	Enrollment *service.EnrollmentService
	Progress   *service.ProgressService
}

func NewUserRegistrationController(enrollment *service.EnrollmentService, progress *service.ProgressService) *UserRegistrationController {
	return &UserRegistrationController{Enrollment: enrollment, Progress: progress}
}

// =============================
// ➕ Enroll ke kursus (user dari token)
// =============================
func (ctrl *UserRegistrationController) Enroll(c *fiber.Ctx) error {
	courseID, err := helper.ParseUUIDParam(c, "course_id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course id")
	}

	userID := helper.GetUserUUID(c)
	if userID == uuid.Nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User ID not found in token")
	}

	registration, err := ctrl.Enrollment.Enroll(c.UserContext(), courseID, userID, userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Berhasil mendaftar kursus",
		dto.ToRegistrationResponse(registration))
}

// =============================
// 🎬 Simpan progres tonton video
// =============================
func (ctrl *UserRegistrationController) RecordWatch(c *fiber.Ctx) error {
	sectionProgressID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid section progress id")
	}

	var body dto.RecordWatchRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	userID := helper.GetUserUUID(c)
	if err := ctrl.Progress.RecordWatch(c.UserContext(), sectionProgressID, body.WatchedSeconds, userID); err != nil {
		return helper.FromServiceError(c, err)
	}

	return helper.Success(c, "Progres tonton tersimpan", nil)
}

// =============================
// 📄 Daftar materi + tes per kursus
// =============================
func (ctrl *UserRegistrationController) GetLecturesAndTests(c *fiber.Ctx) error {
	courseID, err := helper.ParseUUIDParam(c, "course_id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course id")
	}

	userID := helper.GetUserUUID(c)
	views, err := ctrl.Progress.LecturesAndTests(c.UserContext(), courseID, userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	return helper.Success(c, "Berhasil ambil daftar materi", views)
}
