package main

import (
	"log"
	"strings"
	"time"

	"bi-backend/internal/audit"
	"bi-backend/internal/auth"
	"bi-backend/internal/config"
	"bi-backend/internal/database"
	"bi-backend/internal/inventory"
	"bi-backend/internal/mailer"
	"bi-backend/internal/models"
	"bi-backend/internal/report"
	"bi-backend/internal/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	mail := mailer.New(cfg)
	reportSvc := report.NewService(database.DB, mail, cfg.FetchTimeout, cfg.MailTimeout)

	// Kalıcı zamanlanmış işleri açılışta yeniden kur
	registry := scheduler.NewRegistry(database.DB, reportSvc)
	restored := registry.RestoreAll()
	log.Printf("Zamanlanmış rapor işleri yeniden kuruldu: %d", restored)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Rapor verisi ve dışa aktarım (tüm giriş yapmış kullanıcılar)
	protected.Get("/inventory-stocks", inventory.StocksHandler())
	protected.Get("/reports/export", report.ExportReportHandler(reportSvc))

	// Admin routes: e-posta gönderimi ve zamanlama
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/report-email", report.EmailReportHandler(reportSvc))
	adminRoutes.Post("/schedule-report", scheduler.ScheduleReportHandler(registry))
	adminRoutes.Get("/schedule-report", scheduler.ListSchedulesHandler())
	adminRoutes.Delete("/schedule-report", scheduler.CancelScheduleHandler(registry))

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
