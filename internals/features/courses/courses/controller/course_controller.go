package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/courses/courses/dto"
	"kursusku_backend/internals/features/courses/courses/model"
	helper "kursusku_backend/internals/helpers"
)

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

// =============================
// 📄 Get All Courses (paged)
// =============================
func (ctrl *CourseController) GetAll(c *fiber.Ctx) error {
	p := helper.ParsePagination(c, "created_at", "desc", helper.DefaultPaginationOpts)

	orderClause, err := p.SafeOrderClause(map[string]string{
		"created_at":    "course_created_at",
		"title":         "course_title",
		"registrations": "course_registration_count",
	}, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid sort parameter")
	}

	var total int64
	if err := ctrl.DB.Model(&model.CourseModel{}).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count courses")
	}

	var courses []model.CourseModel
	if err := ctrl.DB.
		Order(orderClause).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&courses).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	items := make([]*dto.CourseResponse, 0, len(courses))
	for i := range courses {
		items = append(items, dto.ToCourseResponse(&courses[i]))
	}

	return helper.Success(c, "Berhasil ambil daftar kursus", fiber.Map{
		"items": items,
		"meta":  helper.BuildPaginationMeta(total, p),
	})
}

// =============================
// 🔍 Get Course Detail + Sections
// =============================
func (ctrl *CourseController) GetByID(c *fiber.Ctx) error {
	courseID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course id")
	}

	var course model.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch course")
	}

	// View counter: atomic increment, bukan read-then-write.
	if err := ctrl.DB.Model(&model.CourseModel{}).
		Where("course_id = ?", courseID).
		UpdateColumn("course_view_count", gorm.Expr("course_view_count + 1")).Error; err != nil {
		// counter gagal bukan alasan menggagalkan read
		c.Context().Logger().Printf("view count increment failed: %v", err)
	}

	var sections []model.CourseSectionModel
	if err := ctrl.DB.
		Where("course_section_course_id = ?", courseID).
		Order("course_section_position ASC").
		Find(&sections).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch course sections")
	}

	sectionItems := make([]*dto.CourseSectionResponse, 0, len(sections))
	for i := range sections {
		sectionItems = append(sectionItems, dto.ToCourseSectionResponse(&sections[i]))
	}

	return helper.Success(c, "Berhasil ambil detail kursus", fiber.Map{
		"course":   dto.ToCourseResponse(&course),
		"sections": sectionItems,
	})
}
