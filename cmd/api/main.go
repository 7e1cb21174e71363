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
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/config"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/attendance"
	appHTTP "github.com/cmlabs-hris/hrm-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/llm"
	"github.com/cmlabs-hris/hrm-backend-go/internal/repository/postgresql"
	aiService "github.com/cmlabs-hris/hrm-backend-go/internal/service/ai"
	attendanceService "github.com/cmlabs-hris/hrm-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hrm-backend-go/internal/service/auth"
	departmentService "github.com/cmlabs-hris/hrm-backend-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/hrm-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/hrm-backend-go/internal/service/leave"
	oplogService "github.com/cmlabs-hris/hrm-backend-go/internal/service/oplog"
	reportService "github.com/cmlabs-hris/hrm-backend-go/internal/service/report"
	salaryService "github.com/cmlabs-hris/hrm-backend-go/internal/service/salary"
	userService "github.com/cmlabs-hris/hrm-backend-go/internal/service/user"
)

const operationLogQueueSize = 1024

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			log.Fatal("Error running migrations: ", err)
		}
	}

	// Repositories
	txManager := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	operationLogRepo := postgresql.NewOperationLogRepository(db)

	// Infrastructure
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	rules, err := attendance.NewRules(cfg.Attendance.Timezone, cfg.Attendance.WorkStart, cfg.Attendance.WorkEnd)
	if err != nil {
		log.Fatal("Invalid attendance rules: ", err)
	}

	var memo cache.Cache
	switch cfg.Cache.Driver {
	case "redis":
		redisCache, err := cache.NewRedis(cfg.Redis, cfg.Cache.TTL)
		if err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		defer redisCache.Close()
		memo = redisCache
	default:
		memo = cache.NewMemory(cfg.Cache.TTL)
	}

	if cfg.AI.APIKey == "" {
		slog.Warn("AI_API_KEY is empty, AI features will use rule-based answers")
	}
	llmClient := llm.NewClient(cfg.AI)

	// Services
	authSvc := serviceAuth.NewAuthService(txManager, userRepo, JWTService, JWTRepository)
	if err := authSvc.EnsureAdmin(ctx, cfg.App.AdminUsername, cfg.App.AdminPassword); err != nil {
		log.Fatal("Failed to bootstrap admin account: ", err)
	}
	userSvc := userService.NewUserService(userRepo)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, departmentRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, rules, cfg.Attendance.AbsenceCutoffHour)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo, emailService, rules.Location)
	salarySvc := salaryService.NewSalaryService(salaryRepo, employeeRepo, attendanceRepo)
	aiSvc := aiService.NewAIService(llmClient, memo, employeeRepo, departmentRepo, attendanceRepo, salaryRepo, rules.Location)
	reportSvc := reportService.NewReportService(employeeRepo, salaryRepo, attendanceRepo, rules.Location)
	operationLogSvc := oplogService.NewOperationLogService(operationLogRepo, operationLogQueueSize)

	// Scheduled jobs
	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	if cfg.Cache.Driver == "memory" {
		cron.NewCacheJobs(aiSvc).RegisterJobs(scheduler)
	}
	scheduler.Start(ctx)

	router := appHTTP.NewRouter(cfg.App, JWTService, operationLogSvc, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(JWTService, authSvc),
		User:         appHTTP.NewUserHandler(userSvc),
		Department:   appHTTP.NewDepartmentHandler(departmentSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Salary:       appHTTP.NewSalaryHandler(salarySvc),
		AI:           appHTTP.NewAIHandler(aiSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		OperationLog: appHTTP.NewOperationLogHandler(operationLogSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
	operationLogSvc.Close()
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
