package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	registrationController "kursusku_backend/internals/features/courses/registrations/controller"
	"kursusku_backend/internals/features/courses/registrations/service"
)

// UserRegistrationRoutes: route ber-login untuk enrollment & progres.
func UserRegistrationRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := registrationController.NewUserRegistrationController(
		service.NewEnrollmentService(db),
		service.NewProgressService(db),
	)

	router.Post("/courses/:course_id/enroll", ctrl.Enroll)
	router.Get("/courses/:course_id/lectures", ctrl.GetLecturesAndTests)
	router.Post("/section-progress/:id/watch", ctrl.RecordWatch)
}
