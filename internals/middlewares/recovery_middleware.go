package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware menangkap panic handler supaya server tidak mati;
// panic dicatat dengan reqid untuk korelasi log.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Printf("[ERROR] panic reqid=%v %s %s: %v",
				c.Locals("reqid"), c.Method(), c.Path(), e)
		},
	})
}
