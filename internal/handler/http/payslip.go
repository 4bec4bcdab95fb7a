package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/payslip"
	"github.com/gestionale-hr/gestionale-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayslipHandler interface {
	GeneratePayslip(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payslipService payslip.PayslipService
}

func NewPayslipHandler(payslipService payslip.PayslipService) PayslipHandler {
	return &payslipHandlerImpl{
		payslipService: payslipService,
	}
}

func (h *payslipHandlerImpl) GeneratePayslip(w http.ResponseWriter, r *http.Request) {
	var req payslip.GeneratePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payslipService.GeneratePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip generated successfully", result)
}

func (h *payslipHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payslipService.GetPayslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payslipHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	filter := payslip.PayslipFilter{}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if m := r.URL.Query().Get("month"); m != "" {
		if monthNum, err := strconv.Atoi(m); err == nil {
			filter.Month = &monthNum
		}
	}
	if y := r.URL.Query().Get("year"); y != "" {
		if yearNum, err := strconv.Atoi(y); err == nil {
			filter.Year = &yearNum
		}
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	result, err := h.payslipService.ListPayslips(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payslipHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payslipService.MarkPaid(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip marked as paid", result)
}
