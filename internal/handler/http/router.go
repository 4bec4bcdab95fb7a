package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gestionale-hr/gestionale-backend-go/internal/handler/http/middleware"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Master     MasterHandler
	Shift      ShiftHandler
	Attendance AttendanceHandler
	Payslip    PayslipHandler
}

func NewRouter(jwtService jwt.Service, frontendURL string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "gestionale-hr"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/sites", func(r chi.Router) {
				r.Get("/", h.Master.ListSites)
				r.Get("/{id}", h.Master.GetSite)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.Master.CreateSite)
					r.Put("/{id}", h.Master.UpdateSite)
					r.Delete("/{id}", h.Master.DeleteSite)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Get("/{id}", h.Employee.GetEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Shift.ListShifts)
				r.Get("/{id}", h.Shift.GetShift)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Shift.CreateShift)
					r.Put("/{id}", h.Shift.UpdateShift)
					r.Delete("/{id}", h.Shift.DeleteShift)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", h.Attendance.ListAttendance)
				r.Get("/{id}", h.Attendance.GetAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/generate", h.Attendance.GenerateRange)
					r.Post("/{id}/confirm", h.Attendance.Confirm)
					r.Post("/{id}/absent", h.Attendance.MarkAbsent)
				})
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.Payslip.ListPayslips)
				r.Get("/{id}", h.Payslip.GetPayslip)
				r.Post("/generate", h.Payslip.GeneratePayslip)
				r.Post("/{id}/pay", h.Payslip.MarkPaid)
			})
		})
	})
	return r
}
