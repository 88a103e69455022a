// @title           Muscat Bay Operations API
// @version         1.0
// @description     Facility operations backend for the Muscat Bay development - water distribution, electricity, STP, fire safety, HVAC and contractor tracking.

// @contact.name   API Support
// @contact.url    https://ops.muscatbay.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      https://ops.muscatbay.com

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	_ "backend/docs"
	"backend/handlers"
	"backend/services"
	"backend/storage"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"https://ops.muscatbay.com",
		"https://dashboard.muscatbay.com",
		"http://localhost:9000",
		"http://localhost:8080",
		"http://localhost:3000",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding", "X-XSRF-TOKEN",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Authorization", "Content-Type", "Content-Disposition",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

var cronRunning int32

func safeGo(
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	fn func(context.Context) error,
	cronLogger *log.Logger,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				if cronLogger != nil {
					cronLogger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				}
			}
		}()

		if err := fn(ctx); err != nil {
			log.Printf("%s failed: %v", name, err)
			if cronLogger != nil {
				cronLogger.Printf("%s failed: %v", name, err)
			}
		} else {
			log.Printf("%s completed successfully", name)
			if cronLogger != nil {
				cronLogger.Printf("%s completed successfully", name)
			}
		}
	}()
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}

func main() {
	db := storage.InitDB()
	gormDB := storage.InitGormDB()

	if err := storage.AutoMigrateAssetTables(gormDB); err != nil {
		log.Fatalf("Failed to migrate asset tables: %v", err)
	}

	// Firebase Cloud Messaging (HTTP v1) for critical finding alerts.
	// Optional: the service is skipped when credentials are missing.
	credentialsPath := os.Getenv("FCM_CREDENTIALS_PATH")
	if credentialsPath == "" {
		credentialsPath = "firebase-credentials.json"
	}
	fcmService, err := services.NewFCMService(credentialsPath, db)
	if err != nil {
		log.Printf("Warning: Failed to initialize FCM service: %v. Push notifications will be disabled.", err)
		fcmService = nil
	} else {
		log.Println("FCM service initialized successfully")
	}

	// Daily maintenance at 02:30 Muscat time (server runs in Asia/Muscat).
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)

	cronLogFile, err := os.OpenFile("cron_errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Failed to open cron error log file: %v", err)
	}
	cronLogger := log.New(cronLogFile, "CRON_ERROR: ", log.LstdFlags)

	_, err = c.AddFunc("30 2 * * *", func() {
		if !atomic.CompareAndSwapInt32(&cronRunning, 0, 1) {
			log.Println("Previous cron still running. Skipping this run.")
			if cronLogger != nil {
				cronLogger.Println("Previous cron still running. Skipping this run.")
			}
			return
		}
		defer atomic.StoreInt32(&cronRunning, 0)

		log.Println("Starting daily maintenance cron job")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		var wg sync.WaitGroup

		safeGo(ctx, &wg, "CleanupExpiredSessions", func(ctx context.Context) error {
			return storage.CleanupExpiredSessions(db)
		}, cronLogger)

		safeGo(ctx, &wg, "MarkExpiredContracts", func(ctx context.Context) error {
			expired, err := handlers.MarkExpiredContracts(gormDB)
			if err != nil {
				return err
			}
			if expired > 0 {
				log.Printf("Marked %d contracts as expired", expired)
			}
			return nil
		}, cronLogger)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Println("All cron jobs finished")
		case <-ctx.Done():
			log.Println("Cron timeout reached, jobs cancelled")
			if cronLogger != nil {
				cronLogger.Println("Cron timeout reached, jobs cancelled")
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule daily maintenance cron job: %v", err)
	}

	c.Start()

	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.Use(cors.New(CORSConfig()))

	r.GET("/api/health", HealthCheck)

	// ==================== 1. AUTH & SESSIONS ====================
	r.POST("/api/login", handlers.LoginHandler(db))
	r.POST("/api/refresh-token", handlers.RefreshTokenHandler(db))
	r.POST("/api/validate-session", handlers.ValidateSession(db))
	r.GET("/api/session", handlers.GetSessionHandler(db))
	r.DELETE("/api/session/:user_id", handlers.DeleteSessionHandler(db))
	r.POST("/api/logout-device", handlers.LogoutDeviceHandler(db))
	r.POST("/api/users", handlers.AdminRequired(db), handlers.CreateUserHandler(db))
	r.PUT("/api/users/:user_id/suspend", handlers.AdminRequired(db), handlers.SuspendUserHandler(db))
	r.POST("/api/users/fcm-token", handlers.SaveFCMTokenHandler(fcmService))
	r.DELETE("/api/users/fcm-token", handlers.RemoveFCMTokenHandler(fcmService))
	r.POST("/api/users/:user_id/notify", handlers.AdminRequired(db), handlers.NotifyUserHandler(fcmService))

	// ==================== 2. WATER DISTRIBUTION ====================
	r.GET("/api/water/meters", handlers.GetWaterMeters(db))
	r.GET("/api/water/hierarchy", handlers.GetWaterHierarchy(db))
	r.GET("/api/water/zones", handlers.GetWaterZones(db))
	r.GET("/api/water/zones/:zone/analysis", handlers.GetZoneAnalysis(db))
	r.GET("/api/water/consumption-by-type", handlers.GetConsumptionByType(db))

	// ==================== 3. DAILY CONSUMPTION ====================
	r.GET("/api/water/daily", handlers.GetDailyConsumption(db))
	r.GET("/api/water/daily/metrics", handlers.GetDailyMetrics(db))
	r.GET("/api/water/daily/trend", handlers.GetDailyTrend(db))
	r.GET("/api/water/daily/zones", handlers.GetDailyZoneBreakdown(db))
	r.GET("/api/water/daily/top-consumers", handlers.GetTopDailyConsumers(db))

	// ==================== 4. ELECTRICITY ====================
	r.GET("/api/electricity/meters", handlers.GetElectricityMeters(db))
	r.GET("/api/electricity/analysis", handlers.GetElectricityAnalysis(db))

	// ==================== 5. STP OPERATIONS ====================
	r.GET("/api/stp/operations", handlers.GetSTPOperations(db))
	r.GET("/api/stp/metrics", handlers.GetSTPMetrics(db))
	r.GET("/api/stp/monthly", handlers.GetSTPMonthlySummary(db))

	// ==================== 6. FIRE SAFETY & PPM ====================
	r.GET("/api/firefighting/stats", handlers.GetFirefightingStats(gormDB))
	r.GET("/api/firefighting/equipment", handlers.GetEquipment(gormDB))
	r.GET("/api/firefighting/equipment/:id", handlers.GetEquipmentByID(gormDB))
	r.POST("/api/firefighting/equipment", handlers.AdminRequired(db), handlers.CreateEquipment(gormDB))
	r.PUT("/api/firefighting/equipment/:id/status", handlers.AdminRequired(db), handlers.UpdateEquipmentStatus(gormDB))
	r.GET("/api/firefighting/equipment/:id/qr", handlers.GenerateEquipmentQR(gormDB))
	r.GET("/api/firefighting/equipment-types", handlers.GetEquipmentTypes(gormDB))
	r.GET("/api/firefighting/locations", handlers.GetPPMLocations(gormDB))
	r.GET("/api/firefighting/ppm", handlers.GetPPMRecords(gormDB))
	r.POST("/api/firefighting/ppm", handlers.CreatePPMRecord(gormDB))
	r.POST("/api/firefighting/findings", handlers.CreateFinding(gormDB, fcmService))
	r.PUT("/api/firefighting/findings/:id/status", handlers.UpdateFindingStatus(gormDB))

	// ==================== 7. HVAC MAINTENANCE ====================
	r.GET("/api/hvac", handlers.GetHVACRecords(gormDB))
	r.GET("/api/hvac/summary", handlers.GetHVACSummary(gormDB))
	r.POST("/api/hvac", handlers.AdminRequired(db), handlers.CreateHVACRecord(gormDB))
	r.PUT("/api/hvac/:id", handlers.AdminRequired(db), handlers.UpdateHVACRecord(gormDB))

	// ==================== 8. CONTRACTOR TRACKER ====================
	r.GET("/api/contractor", handlers.GetContracts(gormDB))
	r.GET("/api/contractor/summary", handlers.GetContractorSummary(gormDB))
	r.POST("/api/contractor", handlers.AdminRequired(db), handlers.CreateContract(gormDB))
	r.PUT("/api/contractor/:id", handlers.AdminRequired(db), handlers.UpdateContract(gormDB))

	// ==================== 9. EXPORTS ====================
	r.GET("/api/export/water-meters.csv", handlers.ExportWaterMetersCSV)
	r.GET("/api/export/water-meters.xlsx", handlers.ExportWaterMetersXLSX)
	r.GET("/api/export/daily-consumption.csv", handlers.ExportDailyConsumptionCSV)
	r.GET("/api/export/stp-operations.csv", handlers.ExportSTPOperationsCSV)
	r.GET("/api/export/water-loss.pdf", handlers.GenerateWaterLossPDF(db))

	// ==================== 10. SWAGGER ====================
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}

	portInt, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cronCtx := c.Stop()
	select {
	case <-cronCtx.Done():
	case <-time.After(10 * time.Second):
		log.Println("Timed out waiting for running cron jobs")
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
