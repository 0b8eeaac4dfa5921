package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edupanel/admissions-api/api/swagger"
	"github.com/edupanel/admissions-api/internal/handler"
	"github.com/edupanel/admissions-api/internal/middleware"
	"github.com/edupanel/admissions-api/internal/models"
	"github.com/edupanel/admissions-api/internal/repository"
	"github.com/edupanel/admissions-api/internal/service"
	"github.com/edupanel/admissions-api/pkg/cache"
	"github.com/edupanel/admissions-api/pkg/config"
	"github.com/edupanel/admissions-api/pkg/database"
	"github.com/edupanel/admissions-api/pkg/export"
	"github.com/edupanel/admissions-api/pkg/logger"
	corsmiddleware "github.com/edupanel/admissions-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edupanel/admissions-api/pkg/middleware/requestid"
)

// @title Admissions API
// @version 0.1.0
// @description Enquiry funnel and batch student conversion
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	enquiryRepo := repository.NewEnquiryRepository(db)
	academicRepo := repository.NewAcademicRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	enquirySvc := service.NewEnquiryService(enquiryRepo, cacheRepo, validate, logr, cfg.Admissions.ListCacheTTL)
	referenceSvc := service.NewReferenceService(academicRepo, cacheRepo, logr, cfg.Admissions.ReferenceTTL)
	conversionSvc := service.NewConversionService(enquiryRepo, studentRepo, feeRepo, academicRepo, cacheRepo, metricsSvc, validate, logr)
	exportSvc := service.NewExportService(enquiryRepo, export.NewCSVExporter(), export.NewPDFExporter(), logr, cfg.Exports.Title)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: "admissions-api",
	})

	enquiryHandler := handler.NewEnquiryHandler(enquirySvc)
	conversionHandler := handler.NewConversionHandler(conversionSvc)
	referenceHandler := handler.NewReferenceHandler(referenceSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.GET("/enquiries", enquiryHandler.List)
	authed.GET("/enquiries/:id", enquiryHandler.Get)
	authed.GET("/academic-years", referenceHandler.AcademicYears)
	authed.GET("/classes", referenceHandler.Classes)

	if cfg.Exports.Enabled {
		authed.GET("/enquiries/export", exportHandler.Funnel)
	}

	writes := authed.Group("")
	writes.Use(middleware.RequireRoles(models.WriterRoles()...))
	writes.POST("/enquiries", middleware.Audit(auditRepo, "create", "enquiry"), enquiryHandler.Create)
	writes.PUT("/enquiries/:id", middleware.Audit(auditRepo, "update", "enquiry"), enquiryHandler.Update)
	writes.PATCH("/enquiries/:id/status", middleware.Audit(auditRepo, "update_status", "enquiry"), enquiryHandler.UpdateStatus)
	writes.POST("/enquiries/convert", middleware.Audit(auditRepo, "convert", "enquiry"), conversionHandler.Convert)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
