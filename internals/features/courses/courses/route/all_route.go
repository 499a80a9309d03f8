package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseController "kursusku_backend/internals/features/courses/courses/controller"
)

// AllCourseRoutes: route publik (tanpa login) untuk browsing kursus.
func AllCourseRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := courseController.NewCourseController(db)

	courses := router.Group("/courses")
	courses.Get("/", ctrl.GetAll)
	courses.Get("/:id", ctrl.GetByID)
}
