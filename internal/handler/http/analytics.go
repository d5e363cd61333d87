package http

import (
	"fmt"
	"net/http"

	"github.com/salescope/salestracker-backend-go/internal/domain/analytics"
	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/handler/http/response"
)

type AnalyticsHandler interface {
	SalesData(w http.ResponseWriter, r *http.Request)
	Trends(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{
		analyticsService: analyticsService,
	}
}

// periodQueryFromRequest collects the reporting window parameters from
// the query string. Resolution against settings happens in the service.
func periodQueryFromRequest(r *http.Request) period.Query {
	q := r.URL.Query()
	return period.Query{
		Period:  q.Get("period"),
		Anchor:  q.Get("anchor"),
		Year:    q.Get("year"),
		Month:   q.Get("month"),
		Quarter: q.Get("quarter"),
		Start:   q.Get("start"),
		End:     q.Get("end"),
	}
}

// SalesData implements AnalyticsHandler
func (h *analyticsHandlerImpl) SalesData(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.SalesData(r.Context(), periodQueryFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Trends implements AnalyticsHandler
func (h *analyticsHandlerImpl) Trends(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.Trends(r.Context(), periodQueryFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Dashboard implements AnalyticsHandler
func (h *analyticsHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.Dashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportCSV implements AnalyticsHandler. Unlike the JSON endpoints it
// streams the file directly instead of wrapping it in the envelope.
func (h *analyticsHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	export, err := h.analyticsService.ExportCSV(r.Context(), periodQueryFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Content)
}
