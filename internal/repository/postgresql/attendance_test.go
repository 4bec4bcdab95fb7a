package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/attendance"
	"github.com/gestionale-hr/gestionale-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func derivedAttendance(companyID, employeeID, shiftID string, date time.Time) attendance.Attendance {
	entry := time.Date(date.Year(), date.Month(), date.Day(), 9, 0, 0, 0, time.UTC)
	exit := time.Date(date.Year(), date.Month(), date.Day(), 17, 0, 0, 0, time.UTC)
	return attendance.Attendance{
		CompanyID:     companyID,
		EmployeeID:    employeeID,
		Date:          date,
		ShiftID:       &shiftID,
		EntryTime:     &entry,
		ExitTime:      &exit,
		WorkedHours:   7.5,
		OvertimeHours: 0,
		Status:        attendance.StatusConfirmed,
	}
}

// ===== ATTENDANCE REPOSITORY TESTS =====

func TestAttendanceRepository_UpsertGenerated_InsertThenUpdate(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()
	truncateAllTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	shiftID := createTestShift(t, ctx, companyID, employeeID, date)
	repo := postgresql.NewAttendanceRepository(db)

	att := derivedAttendance(companyID, employeeID, shiftID, date)

	saved, inserted, err := repo.UpsertGenerated(ctx, att)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotEmpty(t, saved.ID)

	// Rederiving the same shift lands on the update path of the same row.
	att.WorkedHours = 9.5
	att.OvertimeHours = 1.5
	again, inserted, err := repo.UpsertGenerated(ctx, att)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, saved.ID, again.ID)

	var count int
	err = db.QueryRow(ctx,
		"SELECT COUNT(*) FROM attendances WHERE shift_id = $1", shiftID,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := repo.GetByShift(ctx, employeeID, date, shiftID, companyID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 9.5, got.WorkedHours)
	assert.Equal(t, 1.5, got.OvertimeHours)
	assert.True(t, got.GeneratedFromShift)
}

func TestAttendanceRepository_UpsertGenerated_PreservesModifiedStatus(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()
	truncateAllTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	shiftID := createTestShift(t, ctx, companyID, employeeID, date)
	repo := postgresql.NewAttendanceRepository(db)

	saved, _, err := repo.UpsertGenerated(ctx, derivedAttendance(companyID, employeeID, shiftID, date))
	require.NoError(t, err)

	// Manual correction after derivation.
	_, err = db.Exec(ctx, "UPDATE attendances SET status = 'modified' WHERE id = $1", saved.ID)
	require.NoError(t, err)

	att := derivedAttendance(companyID, employeeID, shiftID, date)
	att.WorkedHours = 8.0
	again, inserted, err := repo.UpsertGenerated(ctx, att)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, attendance.StatusModified, again.Status)

	got, err := repo.GetByShift(ctx, employeeID, date, shiftID, companyID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.StatusModified, got.Status)
	assert.Equal(t, 8.0, got.WorkedHours) // hours still refreshed
}

func TestAttendanceRepository_UpsertGenerated_ConcurrentSingleRow(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()
	truncateAllTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	shiftID := createTestShift(t, ctx, companyID, employeeID, date)
	repo := postgresql.NewAttendanceRepository(db)

	type result struct {
		inserted bool
		err      error
	}
	results := make(chan result, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, inserted, err := repo.UpsertGenerated(ctx, derivedAttendance(companyID, employeeID, shiftID, date))
			results <- result{inserted, err}
		}()
	}
	wg.Wait()
	close(results)

	inserts := 0
	for res := range results {
		require.NoError(t, res.err)
		if res.inserted {
			inserts++
		}
	}
	assert.Equal(t, 1, inserts) // the loser of the insert race updates

	var count int
	err := db.QueryRow(ctx,
		"SELECT COUNT(*) FROM attendances WHERE shift_id = $1", shiftID,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAttendanceRepository_GetByShift_NoRecord(t *testing.T) {
	db := requireTestDB(t)
	ctx := context.Background()
	truncateAllTables(t, ctx)

	companyID := createTestCompany(t, ctx)
	employeeID := createTestEmployee(t, ctx, companyID)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	shiftID := createTestShift(t, ctx, companyID, employeeID, date)

	got, err := postgresql.NewAttendanceRepository(db).GetByShift(ctx, employeeID, date, shiftID, companyID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
