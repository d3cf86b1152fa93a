package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tenantscope/dashboard/internal/application/services"
	"github.com/tenantscope/dashboard/internal/bootstrap"
	"github.com/tenantscope/dashboard/internal/infrastructure/snapshot"
	"github.com/tenantscope/dashboard/internal/interfaces/middleware"
	"github.com/tenantscope/dashboard/internal/interfaces/rest"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("📦 Loaded configuration from .env")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	snapshotPath := os.Getenv("SNAPSHOT_PATH")
	if snapshotPath == "" {
		snapshotPath = "data/tenant_snapshot.json"
	}

	// Open the collected tenant snapshot
	store, err := snapshot.Open(snapshotPath)
	if err != nil {
		log.Fatalf("Failed to open snapshot %s: %v", snapshotPath, err)
	}
	info := store.Info()
	log.Printf("✅ Snapshot loaded: tenant %q, %d datasets, collected %s",
		info.TenantName, len(info.Datasets), info.CollectedAt.Format(time.RFC3339))

	// Periodic snapshot reload picks up fresh collector output
	if spec := os.Getenv("RELOAD_CRON"); spec != "" {
		if err := store.ScheduleReload(spec); err != nil {
			log.Printf("⚠️  Warning: invalid RELOAD_CRON %q: %v", spec, err)
		} else {
			log.Printf("🔧 Snapshot reload scheduled: %s", spec)
		}
	}

	// Initialize service manager
	svcMgr := services.NewServiceManager(store)
	log.Println("🔧 Service manager initialized")

	// Register builtin dashboard views
	if err := bootstrap.RegisterBuiltinViews(svcMgr.Views); err != nil {
		log.Fatalf("Failed to register builtin views: %v", err)
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Cors())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"server": "golang",
		})
	})

	// Initialize handlers
	viewHandler := rest.NewViewHandler(svcMgr)
	tableHandler := rest.NewTableHandler(svcMgr)
	dataHandler := rest.NewDataHandler(svcMgr)
	analyticsHandler := rest.NewAnalyticsHandler(svcMgr)
	exportHandler := rest.NewExportHandler(svcMgr)
	snapshotHandler := rest.NewSnapshotHandler(svcMgr)

	api := router.Group("/api")
	{
		api.GET("/snapshot", snapshotHandler.Info)

		api.GET("/views", viewHandler.GetViews)
		api.GET("/views/:view/table", viewHandler.RenderView)

		table := api.Group("/table/:container")
		{
			table.POST("/sort", tableHandler.SetSort)
			table.POST("/page", tableHandler.SetPage)
			table.POST("/filter/text", tableHandler.SetTextFilter)
			table.POST("/filter/toggle", tableHandler.ToggleSelection)
			table.DELETE("/filter/:key", tableHandler.ClearColumnFilter)
			table.DELETE("/state", tableHandler.Reset)
		}

		api.POST("/data/query", dataHandler.Query)
		api.GET("/data/:view/search", dataHandler.Search)

		api.GET("/analytics/:view/summary", analyticsHandler.Summary)
		api.GET("/analytics/:view/count", analyticsHandler.Count)

		api.GET("/export/:container/csv", exportHandler.DownloadCSV)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("🚀 Dashboard server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	store.StopReload()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}

	log.Println("✅ Server stopped")
}
