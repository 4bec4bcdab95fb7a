package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/attendance"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/company"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/timeclock"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	companyRepo       company.CompanyRepository
	clock             timeclock.Clock
}

func NewAttendanceJobs(
	attendanceService attendance.AttendanceService,
	companyRepo company.CompanyRepository,
	clock timeclock.Clock,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		companyRepo:       companyRepo,
		clock:             clock,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("derive_yesterday_attendance", 1*time.Hour, j.DeriveYesterdayAttendance)
}

// DeriveYesterdayAttendance walks every company and derives attendance for
// yesterday's shifts. Records already present are left untouched
// (overwrite=false), so a re-run after a partial failure only fills gaps.
func (j *AttendanceJobs) DeriveYesterdayAttendance(ctx context.Context) error {
	// Only run during the first hour of the day in the operating timezone.
	if j.clock.Now().Hour() != 1 {
		return nil
	}

	yesterday := j.clock.DateOf(j.clock.Now().AddDate(0, 0, -1))
	slog.Info("Cron: deriving attendance", "date", yesterday)

	companyIDs, err := j.companyRepo.ListIDs(ctx)
	if err != nil {
		return err
	}

	req := attendance.GenerateRangeRequest{
		DateFrom:  yesterday,
		DateTo:    yesterday,
		Overwrite: false,
	}

	for _, companyID := range companyIDs {
		result, err := j.attendanceService.GenerateRangeForCompany(ctx, companyID, req)
		if err != nil {
			slog.Error("Cron: attendance derivation failed", "company_id", companyID, "error", err)
			continue
		}
		if result.Generated > 0 || len(result.Errors) > 0 {
			slog.Info("Cron: attendance derived",
				"company_id", companyID,
				"generated", result.Generated,
				"skipped", result.Skipped,
				"failed", len(result.Errors),
			)
		}
	}

	return nil
}
