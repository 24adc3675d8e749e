package routes

import (
	"umsjevari_go/controllers"
	"umsjevari_go/middleware"
	"umsjevari_go/services"
	"umsjevari_go/services/websocket"
	"umsjevari_go/storage"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, wsHub *websocket.Hub, lineService *services.LineMessagingService, archiveService *services.LogArchiveService) {
	storageService, err := storage.NewStorageService()
	if err != nil {
		logrus.WithError(err).Warn("S3 storage unavailable, images will be stored inline")
		storageService = &storage.StorageService{}
	}

	authController := &controllers.AuthController{}
	admissionController := &controllers.AdmissionController{LineService: lineService}
	importController := &controllers.AdmissionImportController{LineService: lineService, Hub: wsHub}
	noticeController := &controllers.NoticeController{}
	teacherController := &controllers.TeacherController{Storage: storageService}
	galleryController := &controllers.GalleryController{Storage: storageService}
	studentController := &controllers.StudentController{}
	logController := &controllers.LogController{ArchiveService: archiveService}
	healthController := &controllers.HealthController{HealthService: services.NewHealthService()}
	wsController := controllers.NewWebSocketController(wsHub)

	// Health check, outside the API group so load balancers can reach it bare
	app.Get("/health", healthController.GetHealth)

	api := app.Group("/api")

	// Public site content (never errors; degrades to fallback data)
	api.Get("/notices", noticeController.GetNotices)
	api.Get("/teachers", teacherController.GetTeachers)
	api.Get("/gallery", galleryController.GetGallery)

	// Public admission form
	api.Post("/admissions", admissionController.SubmitAdmission)
	api.Post("/admissions/check", admissionController.CheckStatus)

	// Authentication
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Get("/profile", middleware.JWTMiddleware(), authController.GetProfile)

	// Protected routes (require authentication)
	protected := api.Group("/", middleware.JWTMiddleware())

	protected.Get("/profile", authController.GetProfile)
	protected.Put("/profile/password", authController.ChangePassword)
	protected.Post("/auth/logout", authController.Logout)

	// Admission management. Static segments registered before :id so
	// /admissions/import and /admissions/stats are not captured as IDs.
	protected.Post("/admissions/import", importController.ImportAdmissions)
	protected.Get("/admissions/import/template", importController.DownloadTemplate)
	protected.Get("/admissions/import/batches", importController.GetImportBatches)
	protected.Get("/admissions/stats", admissionController.GetAdmissionStats)
	protected.Get("/admissions", admissionController.GetAdmissions)
	protected.Patch("/admissions/:id/status", admissionController.UpdateStatus)
	protected.Delete("/admissions/:id", admissionController.DeleteAdmission)

	// Notice board management
	notices := protected.Group("/notices")
	notices.Post("/", noticeController.CreateNotice)
	notices.Put("/:id", noticeController.UpdateNotice)
	notices.Delete("/:id", noticeController.DeleteNotice)

	// Faculty management
	teachers := protected.Group("/teachers")
	teachers.Post("/", teacherController.CreateTeacher)
	teachers.Put("/:id", teacherController.UpdateTeacher)
	teachers.Delete("/:id", teacherController.DeleteTeacher)

	// Gallery management
	gallery := protected.Group("/gallery")
	gallery.Post("/", galleryController.UploadImage)
	gallery.Put("/:id", galleryController.UpdateImage)
	gallery.Delete("/:id", galleryController.DeleteImage)

	// Student roster
	students := protected.Group("/students")
	students.Get("/", studentController.GetStudents)
	students.Post("/import", studentController.ImportStudents)
	students.Put("/roll", studentController.UpdateRollNumber)
	students.Patch("/:id/roll", studentController.UpdateRollNumberByPath)
	students.Delete("/:id", studentController.DeleteStudent)

	// Activity logs (admin and owner; flush is owner only)
	logs := protected.Group("/logs")
	logs.Get("/", logController.GetLogs)
	logs.Get("/archives", logController.GetArchives)
	logs.Get("/archives/:id/download", logController.DownloadArchive)
	logs.Post("/flush-cache", middleware.RequireOwner(), logController.FlushLogs)

	// WebSocket stats
	protected.Get("/ws/stats", wsController.GetWebSocketStats)

	// WebSocket connection endpoint - use websocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", wsController.WebSocketHandler())
}

// SetupStaticRoutes configures static file serving for the public site
func SetupStaticRoutes(app *fiber.App) {
	app.Static("/", "./public")
}
