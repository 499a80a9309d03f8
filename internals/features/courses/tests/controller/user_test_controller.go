package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kursusku_backend/internals/features/courses/tests/dto"
	"kursusku_backend/internals/features/courses/tests/service"
	helper "kursusku_backend/internals/helpers"
)

var validate = validator.New()

type UserTestController struct {
	Assessment *service.AssessmentService
}

func NewUserTestController(assessment *service.AssessmentService) *UserTestController {
	return &UserTestController{Assessment: assessment}
}

// =============================
// 📄 Soal versi peserta (tanpa kunci)
// =============================
func (ctrl *UserTestController) GetQuestions(c *fiber.Ctx) error {
	testID, err := helper.ParseUUIDParam(c, "test_id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid test id")
	}

	questions, err := ctrl.Assessment.Questions(c.UserContext(), testID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	return helper.Success(c, "Berhasil ambil soal", questions)
}

// =============================
// ✍️ Submit jawaban (dinilai otomatis)
// =============================
func (ctrl *UserTestController) Submit(c *fiber.Ctx) error {
	testID, err := helper.ParseUUIDParam(c, "test_id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid test id")
	}

	var body dto.SubmitTestRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	userID := helper.GetUserUUID(c)
	if userID == uuid.Nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User ID not found in token")
	}

	result, err := ctrl.Assessment.Submit(c.UserContext(), testID, userID, userID, body.Answers)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Jawaban dinilai", result)
}

// =============================
// 🔍 Hasil attempt terakhir
// =============================
func (ctrl *UserTestController) GetResult(c *fiber.Ctx) error {
	testID, err := helper.ParseUUIDParam(c, "test_id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid test id")
	}

	userID := helper.GetUserUUID(c)
	result, err := ctrl.Assessment.Result(c.UserContext(), testID, userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	return helper.Success(c, "Berhasil ambil hasil", result)
}
