// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	certificateRoute "kursusku_backend/internals/features/courses/certificates/route"
	certificateService "kursusku_backend/internals/features/courses/certificates/service"
	courseRoute "kursusku_backend/internals/features/courses/courses/route"
	registrationRoute "kursusku_backend/internals/features/courses/registrations/route"
	testRoute "kursusku_backend/internals/features/courses/tests/route"
	ossHelper "kursusku_backend/internals/helpers/oss"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")
	courseRoute.AllCourseRoutes(public, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group (/api/u)...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware())

	registrationRoute.UserRegistrationRoutes(private, db)

	// OSS opsional: tanpa konfigurasi, lampiran soal tampil tanpa URL dan
	// rute sertifikat tidak didaftarkan.
	ossClient, err := ossHelper.NewOSSClientFromEnv()
	if err != nil {
		log.Println("[WARNING] OSS tidak aktif:", err)
		testRoute.UserTestRoutes(private, db, nil, "")
		return
	}

	bucket := configs.OSSBucketName
	testRoute.UserTestRoutes(private, db, ossClient, bucket)

	issuer := certificateService.NewIssuerService(db, ossClient, certificateService.NewPDFRenderer(), bucket)
	certificateRoute.UserCertificateRoutes(private, issuer)
}
