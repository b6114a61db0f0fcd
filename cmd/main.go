package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"maintdesk/internal/caching"
	"maintdesk/internal/config"
	"maintdesk/internal/handlers"
	"maintdesk/internal/holidayapi"
	"maintdesk/internal/jobs"
	"maintdesk/internal/jobs/background"
	"maintdesk/internal/middleware"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
	"maintdesk/internal/services"
	"maintdesk/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database connection
	pool, err := database.NewPool(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to prepare database schema: %v", err)
	}

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Object storage is optional; attachments fail until it is reachable
	var storage services.ObjectStorage
	if minioStorage, err := services.NewMinioStorage(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.UseSSL, cfg.Storage.Bucket); err != nil {
		log.Printf("WARNING: object storage disabled: %v", err)
	} else {
		storage = minioStorage
		if err := storage.EnsureBucketExists(ctx); err != nil {
			log.Printf("WARNING: failed to ensure bucket %q: %v", cfg.Storage.Bucket, err)
		}
	}

	holidayClient := holidayapi.NewClient(cfg.Holiday.APIURL, cfg.Holiday.Country, cfg.Holiday.Timeout)

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	contractRepo := repositories.NewContractRepo(pool)
	assetRepo := repositories.NewAssetRepo(pool)
	eventRepo := repositories.NewEventRepo(pool)
	holidayRepo := repositories.NewHolidayRepo(pool)
	memberRepo := repositories.NewMemberRepo(pool)
	noticeRepo := repositories.NewNoticeRepo(pool)
	notificationRepo := repositories.NewNotificationRepo(pool)
	reportRepo := repositories.NewSupportReportRepo(pool)
	versionRepo := repositories.NewVersionRepo(pool)
	noticeFileRepo := repositories.NewFileRepo(pool, repositories.NoticeFilesTable)
	contractFileRepo := repositories.NewFileRepo(pool, repositories.ContractFilesTable)

	// Create services
	authSvc := services.NewAuthService(userRepo, cacheSvc, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.LoginAttempts, cfg.Auth.LoginWindow)
	notificationSvc := services.NewNotificationService(notificationRepo, userRepo, contractRepo)
	userSvc := services.NewUserService(userRepo, authSvc, notificationSvc)
	holidaySvc := services.NewHolidayService(holidayRepo, holidayClient, cacheSvc)
	eventSvc := services.NewEventService(eventRepo, contractRepo, holidaySvc)
	contractSvc := services.NewContractService(contractRepo, eventSvc, cacheSvc)
	assetSvc := services.NewAssetService(assetRepo)
	excelSvc := services.NewExcelService(contractSvc)
	memberSvc := services.NewMemberService(memberRepo)
	noticeFileSvc := services.NewFileService(services.OwnerNotice, noticeFileRepo, storage)
	contractFileSvc := services.NewFileService(services.OwnerContract, contractFileRepo, storage)
	noticeSvc := services.NewNoticeService(noticeRepo, noticeFileSvc, notificationSvc)
	reportSvc := services.NewSupportReportService(reportRepo)
	versionSvc := services.NewVersionService(versionRepo)
	dashboardSvc := services.NewDashboardService(contractRepo, assetRepo, eventRepo, userRepo, cacheSvc)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userSvc)
	userHandlers := handlers.NewUserHandlers(userSvc)
	contractHandlers := handlers.NewContractHandlers(contractSvc, assetSvc, excelSvc)
	assetHandlers := handlers.NewAssetHandlers(assetSvc)
	eventHandlers := handlers.NewEventHandlers(eventSvc)
	holidayHandlers := handlers.NewHolidayHandlers(holidaySvc)
	memberHandlers := handlers.NewMemberHandlers(memberSvc)
	noticeHandlers := handlers.NewNoticeHandlers(noticeSvc)
	notificationHandlers := handlers.NewNotificationHandlers(notificationSvc)
	reportHandlers := handlers.NewSupportReportHandlers(reportSvc)
	versionHandlers := handlers.NewVersionHandlers(versionSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, storage)
	noticeFileHandlers := handlers.NewFileHandlers(noticeFileSvc, func(ctx context.Context, id int64) error {
		_, err := noticeSvc.Get(ctx, id)
		return err
	})
	contractFileHandlers := handlers.NewFileHandlers(contractFileSvc, func(ctx context.Context, id int64) error {
		_, err := contractSvc.Get(ctx, id)
		return err
	})

	// Background jobs
	scheduler, err := background.NewJobScheduler(
		jobs.NewHolidaySyncJob(holidaySvc, cfg.Holiday.Years),
		jobs.NewContractExpiryJob(notificationSvc),
		background.Options{HolidaySyncCron: cfg.Holiday.SyncCron, SyncOnStart: true},
	)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	jobHandlers := handlers.NewJobHandlers(scheduler, cacheSvc)

	// Echo instance
	e := echo.New()
	e.HideBanner = true

	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)

	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.Server.ClientURL},
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(metrics.Middleware())

	e.GET("/health", healthHandlers.LivenessCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandlers.Login)
	api.POST("/auth/register", authHandlers.Register)

	// Protected routes
	protected := api.Group("", middleware.JWTMiddleware(cfg.Auth.JWTSecret))
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	managers := middleware.RequireRole(models.RoleAdmin, models.RoleManager)

	protected.GET("/auth/me", authHandlers.Me)
	protected.PUT("/auth/me", authHandlers.UpdateMe)
	protected.PUT("/auth/password", authHandlers.ChangePassword)

	users := protected.Group("/users", adminOnly)
	users.GET("", userHandlers.ListUsers)
	users.POST("", userHandlers.CreateUser)
	users.GET("/:username", userHandlers.GetUser)
	users.PUT("/:username", userHandlers.UpdateUser)
	users.POST("/:username/approve", userHandlers.ApproveUser)
	users.POST("/:username/reject", userHandlers.RejectUser)
	users.PUT("/:username/role", userHandlers.UpdateRole)
	users.DELETE("/:username", userHandlers.DeleteUser)

	protected.GET("/contracts", contractHandlers.ListContracts)
	protected.POST("/contracts", contractHandlers.CreateContract)
	protected.GET("/contracts/export", contractHandlers.ExportContracts)
	protected.POST("/contracts/import", contractHandlers.ImportContracts, managers)
	protected.GET("/contracts/:id", contractHandlers.GetContract)
	protected.PUT("/contracts/:id", contractHandlers.UpdateContract)
	protected.DELETE("/contracts/:id", contractHandlers.DeleteContract)
	protected.GET("/contracts/:id/assets", contractHandlers.ListContractAssets)
	protected.POST("/contracts/:id/inspections", eventHandlers.GenerateInspections)
	protected.GET("/contracts/:id/files", contractFileHandlers.ListFiles)
	protected.POST("/contracts/:id/files", contractFileHandlers.UploadFile)
	protected.GET("/contracts/:id/files/:fileId", contractFileHandlers.DownloadFile)
	protected.DELETE("/contracts/:id/files/:fileId", contractFileHandlers.DeleteFile)

	protected.GET("/assets", assetHandlers.ListAssets)
	protected.GET("/assets/:id", assetHandlers.GetAsset)
	protected.PUT("/assets/:id", assetHandlers.UpdateAsset)
	protected.DELETE("/assets/:id", assetHandlers.DeleteAsset)

	protected.GET("/events", eventHandlers.ListEvents)
	protected.POST("/events", eventHandlers.CreateEvent)
	protected.GET("/events/calendar", eventHandlers.Calendar)
	protected.POST("/events/generate/contract-end", eventHandlers.GenerateContractEndEvents)
	protected.GET("/events/:id", eventHandlers.GetEvent)
	protected.PUT("/events/:id", eventHandlers.UpdateEvent)
	protected.PATCH("/events/:id/status", eventHandlers.UpdateEventStatus)
	protected.DELETE("/events/:id", eventHandlers.DeleteEvent)

	protected.GET("/members", memberHandlers.ListMembers)
	protected.POST("/members", memberHandlers.CreateMember)
	protected.GET("/members/summary", memberHandlers.MemberSummary)
	protected.GET("/members/:id", memberHandlers.GetMember)
	protected.PUT("/members/:id", memberHandlers.UpdateMember)
	protected.DELETE("/members/:id", memberHandlers.DeleteMember)

	protected.GET("/holidays", holidayHandlers.ListHolidays)
	protected.POST("/holidays", holidayHandlers.CreateHoliday, managers)
	protected.POST("/holidays/sync", holidayHandlers.SyncHolidays, managers)
	protected.PUT("/holidays/:id", holidayHandlers.UpdateHoliday, managers)
	protected.DELETE("/holidays/:id", holidayHandlers.DeleteHoliday, managers)

	protected.GET("/notices", noticeHandlers.ListNotices)
	protected.POST("/notices", noticeHandlers.CreateNotice, managers)
	protected.GET("/notices/:id", noticeHandlers.GetNotice)
	protected.PUT("/notices/:id", noticeHandlers.UpdateNotice, managers)
	protected.DELETE("/notices/:id", noticeHandlers.DeleteNotice, managers)
	protected.GET("/notices/:id/files", noticeFileHandlers.ListFiles)
	protected.POST("/notices/:id/files", noticeFileHandlers.UploadFile, managers)
	protected.GET("/notices/:id/files/:fileId", noticeFileHandlers.DownloadFile)
	protected.DELETE("/notices/:id/files/:fileId", noticeFileHandlers.DeleteFile, managers)

	protected.GET("/notifications", notificationHandlers.ListNotifications)
	protected.GET("/notifications/unread-count", notificationHandlers.UnreadCount)
	protected.PUT("/notifications/read-all", notificationHandlers.MarkAllRead)
	protected.PUT("/notifications/:id/read", notificationHandlers.MarkRead)
	protected.DELETE("/notifications/:id", notificationHandlers.DeleteNotification)

	protected.GET("/client-support-reports", reportHandlers.ListReports)
	protected.POST("/client-support-reports", reportHandlers.CreateReport)
	protected.GET("/client-support-reports/stats", reportHandlers.MonthlyStats)
	protected.GET("/client-support-reports/:id", reportHandlers.GetReport)
	protected.PUT("/client-support-reports/:id", reportHandlers.UpdateReport)
	protected.DELETE("/client-support-reports/:id", reportHandlers.DeleteReport)

	protected.GET("/version-history", versionHandlers.ListVersions)
	protected.GET("/version-history/:id", versionHandlers.GetVersion)
	protected.POST("/version-history", versionHandlers.CreateVersion, adminOnly)
	protected.PUT("/version-history/:id", versionHandlers.UpdateVersion, adminOnly)
	protected.DELETE("/version-history/:id", versionHandlers.DeleteVersion, adminOnly)

	protected.GET("/dashboard", dashboardHandlers.Stats)

	protected.GET("/jobs", jobHandlers.ListJobs, adminOnly)
	protected.POST("/jobs/:name/run", jobHandlers.RunJob, adminOnly)
	protected.DELETE("/cache", jobHandlers.FlushCache, adminOnly)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Printf("Server starting on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	if err := scheduler.Stop(); err != nil {
		log.Printf("Failed to stop scheduler: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}
