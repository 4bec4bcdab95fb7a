package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/attendance"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/shift"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAttendanceService captures the requests the handler forwards.
type stubAttendanceService struct {
	confirmReq *attendance.ConfirmRequest
	absentReq  *attendance.MarkAbsentRequest
}

func (s *stubAttendanceService) DeriveFromShift(_ context.Context, _ shift.Shift, _ bool) (attendance.Outcome, error) {
	return attendance.OutcomeGenerated, nil
}

func (s *stubAttendanceService) GenerateRange(_ context.Context, _ attendance.GenerateRangeRequest) (attendance.GenerateRangeResponse, error) {
	return attendance.GenerateRangeResponse{}, nil
}

func (s *stubAttendanceService) GenerateRangeForCompany(_ context.Context, _ string, _ attendance.GenerateRangeRequest) (attendance.GenerateRangeResponse, error) {
	return attendance.GenerateRangeResponse{}, nil
}

func (s *stubAttendanceService) Confirm(_ context.Context, req attendance.ConfirmRequest) (attendance.AttendanceResponse, error) {
	s.confirmReq = &req
	return attendance.AttendanceResponse{ID: req.ID, Status: string(attendance.StatusConfirmed)}, nil
}

func (s *stubAttendanceService) MarkAbsent(_ context.Context, req attendance.MarkAbsentRequest) (attendance.AttendanceResponse, error) {
	s.absentReq = &req
	return attendance.AttendanceResponse{ID: req.ID, Status: string(attendance.StatusAbsent)}, nil
}

func (s *stubAttendanceService) ListAttendance(_ context.Context, _ attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{}, nil
}

func (s *stubAttendanceService) GetAttendance(_ context.Context, _ string) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func attendanceRequest(method, target, attendanceID string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", attendanceID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// ===== ATTENDANCE HANDLER TESTS =====

func TestAttendanceHandler_Confirm_EmptyBody(t *testing.T) {
	t.Parallel()
	stub := &stubAttendanceService{}
	handler := NewAttendanceHandler(stub)

	req := attendanceRequest(http.MethodPost, "/api/v1/attendances/abc/confirm", "abc", nil)
	rec := httptest.NewRecorder()
	handler.Confirm(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.confirmReq)
	assert.Equal(t, "abc", stub.confirmReq.ID)
	assert.Nil(t, stub.confirmReq.EntryTime)
	assert.Nil(t, stub.confirmReq.ExitTime)
	assert.Nil(t, stub.confirmReq.Note)
}

func TestAttendanceHandler_Confirm_MalformedBody(t *testing.T) {
	t.Parallel()
	stub := &stubAttendanceService{}
	handler := NewAttendanceHandler(stub)

	req := attendanceRequest(http.MethodPost, "/api/v1/attendances/abc/confirm", "abc", []byte("{not json"))
	rec := httptest.NewRecorder()
	handler.Confirm(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, stub.confirmReq)
}

func TestAttendanceHandler_Confirm_WithOverrides(t *testing.T) {
	t.Parallel()
	stub := &stubAttendanceService{}
	handler := NewAttendanceHandler(stub)

	body, _ := json.Marshal(map[string]string{"entry_time": "09:00", "note": "checked"})
	req := attendanceRequest(http.MethodPost, "/api/v1/attendances/abc/confirm", "abc", body)
	rec := httptest.NewRecorder()
	handler.Confirm(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.confirmReq)
	require.NotNil(t, stub.confirmReq.EntryTime)
	assert.Equal(t, "09:00", *stub.confirmReq.EntryTime)
}

func TestAttendanceHandler_MarkAbsent_EmptyBody(t *testing.T) {
	t.Parallel()
	stub := &stubAttendanceService{}
	handler := NewAttendanceHandler(stub)

	req := attendanceRequest(http.MethodPost, "/api/v1/attendances/abc/absent", "abc", nil)
	rec := httptest.NewRecorder()
	handler.MarkAbsent(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.absentReq)
	assert.Equal(t, "abc", stub.absentReq.ID)
	assert.Nil(t, stub.absentReq.Note)
}

func TestAttendanceHandler_MarkAbsent_MalformedBody(t *testing.T) {
	t.Parallel()
	stub := &stubAttendanceService{}
	handler := NewAttendanceHandler(stub)

	req := attendanceRequest(http.MethodPost, "/api/v1/attendances/abc/absent", "abc", []byte("[["))
	rec := httptest.NewRecorder()
	handler.MarkAbsent(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, stub.absentReq)
}
