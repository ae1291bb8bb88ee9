package router

import (
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/college-directory/config"
	"github.com/sahilchouksey/college-directory/database"
	"github.com/sahilchouksey/college-directory/handlers"
	admin_handlers "github.com/sahilchouksey/college-directory/handlers/admin"
	admission_handlers "github.com/sahilchouksey/college-directory/handlers/admission"
	college_handlers "github.com/sahilchouksey/college-directory/handlers/college"
	cutoff_handlers "github.com/sahilchouksey/college-directory/handlers/cutoff"
	"github.com/sahilchouksey/college-directory/services"
	"github.com/sahilchouksey/college-directory/utils"
	"github.com/sahilchouksey/college-directory/utils/middleware"
	"github.com/sahilchouksey/college-directory/utils/response"
	"gorm.io/gorm"
)

// Options carries the optional collaborators built at startup
type Options struct {
	Env *config.EnviornmentVariable
	// LimiterStorage backs the rate limiter; nil keeps counters in memory
	LimiterStorage fiber.Storage
	// Archiver keeps raw uploads; nil disables archiving
	Archiver services.Archiver
	// LogOutput receives access logs; nil means stdout
	LogOutput io.Writer
}

func SetupRoutes(app *fiber.App, store database.Storage, opts Options) {
	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	env := opts.Env
	if env == nil {
		env = &config.EnviornmentVariable{}
	}

	// Initialize services
	collegeService := services.NewCollegeService(db)
	importLogService := services.NewImportLogService(db)
	importService := services.NewImportService(store, importLogService, opts.Archiver)

	// Initialize handlers
	collegeHandler := college_handlers.NewCollegeHandler(collegeService)
	cutoffHandler := cutoff_handlers.NewCutoffHandler(collegeService)
	admissionHandler := admission_handlers.NewAdmissionHandler(collegeService)
	uploadHandler := admin_handlers.NewUploadHandler(importService)

	// Security middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    env.ALLOWED_ORIGINS,
		RateLimitRequests: env.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   env.RATE_LIMIT_WINDOW,
		Storage:           opts.LimiterStorage,
		LogOutput:         opts.LogOutput,
	})

	// Health
	app.Get("/", utils.MakeHTTPHandleFunc(handlers.HandleRoot, store))
	app.Get("/health", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	api := app.Group("/api")

	// Colleges
	colleges := api.Group("/colleges")
	colleges.Get("/", collegeHandler.ListColleges)
	colleges.Get("/district/:district", collegeHandler.ListByDistrict)
	colleges.Get("/category/:category", collegeHandler.ListByCategory)
	colleges.Get("/:id", collegeHandler.GetCollege)

	// Lookups
	api.Get("/districts", collegeHandler.ListDistricts)
	api.Get("/categories", collegeHandler.ListCategories)
	api.Get("/college-types", collegeHandler.ListCollegeTypes)

	// Cutoffs and admission requirements
	api.Get("/cutoffs/:college_id", cutoffHandler.ListCutoffs)
	api.Get("/admission-requirements/:category", admissionHandler.GetRequirements)

	// Admin
	admin := api.Group("/admin")
	admin.Post("/upload/json", uploadHandler.UploadJSON)
	admin.Post("/upload/csv", uploadHandler.UploadCSV)
	admin.Get("/upload/csv/template", uploadHandler.CSVTemplate)
	admin.Get("/stats", admin_handlers.GetStats(collegeService))
	admin.Get("/imports", admin_handlers.ListImportLogs(importLogService))
	admin.Get("/imports/:id", admin_handlers.GetImportLog(importLogService))

	// Unknown routes get the standard error body
	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route "+c.Method()+" "+c.Path()+" not found")
	})
}
