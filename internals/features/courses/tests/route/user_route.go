package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	registrationService "kursusku_backend/internals/features/courses/registrations/service"
	testController "kursusku_backend/internals/features/courses/tests/controller"
	"kursusku_backend/internals/features/courses/tests/service"
	"kursusku_backend/internals/middlewares"
)

// UserTestRoutes: route ber-login untuk soal, submit, dan hasil.
// signer boleh nil (lampiran tidak diberi URL saat OSS belum dikonfigurasi).
func UserTestRoutes(router fiber.Router, db *gorm.DB, signer service.AttachmentSigner, attachmentBucket string) {
	assessment := service.NewAssessmentService(
		db,
		registrationService.NewCompletionService(),
		signer,
		attachmentBucket,
	)
	ctrl := testController.NewUserTestController(assessment)

	router.Get("/tests/:test_id/questions", ctrl.GetQuestions)
	router.Post("/tests/:test_id/submit", middlewares.SubmitRateLimiter(), ctrl.Submit)
	router.Get("/tests/:test_id/result", ctrl.GetResult)
}
