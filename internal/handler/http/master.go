package http

import (
	"encoding/json"
	"net/http"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/master/site"
	"github.com/gestionale-hr/gestionale-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	CreateSite(w http.ResponseWriter, r *http.Request)
	GetSite(w http.ResponseWriter, r *http.Request)
	ListSites(w http.ResponseWriter, r *http.Request)
	UpdateSite(w http.ResponseWriter, r *http.Request)
	DeleteSite(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	siteService site.SiteService
}

func NewMasterHandler(siteService site.SiteService) MasterHandler {
	return &masterHandlerImpl{
		siteService: siteService,
	}
}

func (h *masterHandlerImpl) CreateSite(w http.ResponseWriter, r *http.Request) {
	var req site.CreateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.siteService.CreateSite(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Site created successfully", result)
}

func (h *masterHandlerImpl) GetSite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.siteService.GetSite(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListSites(w http.ResponseWriter, r *http.Request) {
	result, err := h.siteService.ListSites(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateSite(w http.ResponseWriter, r *http.Request) {
	var req site.UpdateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.siteService.UpdateSite(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Site updated successfully", result)
}

func (h *masterHandlerImpl) DeleteSite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.siteService.DeleteSite(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Site deleted successfully", nil)
}
