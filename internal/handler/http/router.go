package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hrm-backend-go/internal/config"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/oplog"
	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrm-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers bundles every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth         AuthHandler
	User         UserHandler
	Department   DepartmentHandler
	Employee     EmployeeHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Salary       SalaryHandler
	AI           AIHandler
	Report       ReportHandler
	OperationLog OperationLogHandler
}

func NewRouter(app config.AppConfig, JWTService jwt.Service, operationLogService oplog.OperationLogService, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrm-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.OperationLog(operationLogService))

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}", h.User.Update)
				r.Delete("/{id}", h.User.Delete)
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Department.List)
				r.Get("/tree", h.Department.Tree)
				r.Get("/{id}", h.Department.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDepartmentManage))
					r.Post("/", h.Department.Create)
					r.Put("/{id}", h.Department.Update)
					r.Delete("/{id}", h.Department.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Get("/all", h.Employee.All)
				r.Get("/department/{departmentID}", h.Employee.ListByDepartment)
				r.Get("/{id}", h.Employee.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceCheck)).Post("/checkin", h.Attendance.CheckIn)
				r.With(middleware.RequirePermission(user.PermissionAttendanceCheck)).Post("/checkout", h.Attendance.CheckOut)
				r.Get("/records", h.Attendance.List)
				r.Get("/statistics", h.Attendance.Statistics)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/apply", h.Leave.Apply)
				r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Put("/{id}/approve", h.Leave.Approve)
				r.Get("/records", h.Leave.List)
				r.Get("/employee/{employeeID}", h.Leave.ListByEmployee)
			})

			r.Route("/salary", func(r chi.Router) {
				r.Get("/records", h.Salary.List)
				r.Get("/employee/{employeeID}", h.Salary.GetByEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSalaryManage))
					r.Post("/calculate", h.Salary.Calculate)
					r.Post("/calculate-all", h.Salary.CalculateAll)
					r.Put("/{id}/pay", h.Salary.MarkPaid)
				})
			})

			r.Route("/ai", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAIUse))
				r.Post("/chat", h.AI.Chat)
				r.Post("/analyze/turnover", h.AI.AnalyzeTurnover)
				r.Post("/analyze/salary", h.AI.AnalyzeSalary)
				r.Post("/report/generate", h.AI.GenerateReport)
			})

			r.With(middleware.RequirePermission(user.PermissionReportExport)).Get("/reports/export", h.Report.Export)
			r.With(middleware.RequireAdmin).Get("/operation-logs", h.OperationLog.List)
		})
	})
	return r
}
