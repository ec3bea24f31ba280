package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"locagest-backend/internal/service"
)

type ReportHandler struct {
	reports service.RevenueService
}

func NewReportHandler(reports service.RevenueService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// EquipmentReport handles GET /equipment/{id}/revenue with optional
// month=1..12 and year=YYYY query parameters.
func (h *ReportHandler) EquipmentReport(w http.ResponseWriter, r *http.Request) {
	var month *time.Month
	var year *int

	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "month must be between 1 and 12", Field: "month"})
			return
		}
		mv := time.Month(m)
		month = &mv
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1970 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "year is not valid", Field: "year"})
			return
		}
		year = &y
	}

	report, err := h.reports.EquipmentReport(r.Context(), mux.Vars(r)["id"], month, year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
