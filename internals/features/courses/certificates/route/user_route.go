package route

import (
	"github.com/gofiber/fiber/v2"

	"kursusku_backend/internals/features/courses/certificates/controller"
	"kursusku_backend/internals/features/courses/certificates/service"
)

// UserCertificateRoutes: rute sertifikat untuk user login (prefix /api/u).
func UserCertificateRoutes(router fiber.Router, issuer *service.IssuerService) {
	ctrl := controller.NewUserCertificateController(issuer)

	router.Post("/courses/:course_id/certificate", ctrl.GetOrGenerateCourseCertificate)
	router.Get("/certificates", ctrl.ListMyCertificates)
	router.Post("/certificates/professional", ctrl.CreateProfessionalCertificate)
	router.Delete("/certificates/:id", ctrl.DeleteCertificate)
	router.Get("/certificates/:id/url", ctrl.GetCertificateURL)
}
