package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gestionale-hr/gestionale-backend-go/internal/config"
	appHTTP "github.com/gestionale-hr/gestionale-backend-go/internal/handler/http"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/cron"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/database"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/jwt"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/timeclock"
	"github.com/gestionale-hr/gestionale-backend-go/internal/repository/postgresql"
	attendanceService "github.com/gestionale-hr/gestionale-backend-go/internal/service/attendance"
	authService "github.com/gestionale-hr/gestionale-backend-go/internal/service/auth"
	employeeService "github.com/gestionale-hr/gestionale-backend-go/internal/service/employee"
	"github.com/gestionale-hr/gestionale-backend-go/internal/service/master"
	payslipService "github.com/gestionale-hr/gestionale-backend-go/internal/service/payslip"
	shiftService "github.com/gestionale-hr/gestionale-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	clock, err := timeclock.NewClock(cfg.App.Timezone)
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		return
	}

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)

	// Services
	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := authService.NewAuthService(db, userRepo, companyRepo, jwtSvc, cfg.App.Timezone)
	siteSvc := master.NewSiteService(siteRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, shiftRepo, employeeRepo, clock)
	shiftSvc := shiftService.NewShiftService(shiftRepo, employeeRepo, attendanceSvc)
	payslipSvc := payslipService.NewPayslipService(payslipRepo, employeeRepo)

	// Handlers
	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, jwtSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Master:     appHTTP.NewMasterHandler(siteSvc),
		Shift:      appHTTP.NewShiftHandler(shiftSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Payslip:    appHTTP.NewPayslipHandler(payslipSvc),
	}

	router := appHTTP.NewRouter(jwtSvc, cfg.App.FrontendURL, handlers)

	// Background jobs
	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewAttendanceJobs(attendanceSvc, companyRepo, clock).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal(err)
	}
}
