package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/leave-analyzer/internal/config"
	appHTTP "github.com/cmlabs-hris/leave-analyzer/internal/handler/http"
	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/database"
	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/holiday"
	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/storage"
	"github.com/cmlabs-hris/leave-analyzer/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/leave-analyzer/internal/service/attendance"
	"github.com/cmlabs-hris/leave-analyzer/internal/service/file"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.App.Env, cfg.App.LogLevel, version)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	holidays, err := holiday.Load(cfg.Upload.HolidaysFile)
	if err != nil {
		log.Fatal("Failed to load holiday calendar: ", err)
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage types: ", cfg.Storage.Type)
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	fileService := file.NewFileService(fileStorage)
	classifier := attendanceService.NewClassifier(holidays, time.Now)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		classifier,
		spreadsheet.NewReader(),
		spreadsheet.NewReportWriter(),
		fileService,
		cfg.MaxUploadBytes(),
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, cfg.MaxUploadBytes())

	router := appHTTP.NewRouter(JWTService, attendanceHandler, appHTTP.RouterConfig{
		FrontendURL: cfg.App.FrontendURL,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "holidays", len(holidays.Dates()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}
